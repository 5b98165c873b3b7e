package game

import (
	"math"

	"github.com/robalobadob/vocabdrill/internal/words"
)

// Tiers splits a score-sorted pool into the words that need practice
// (Priority) and the rest (Other). Both slices alias the input.
type Tiers struct {
	Priority []words.Word
	Other    []words.Word
}

// Len is the total number of words across both tiers.
func (t Tiers) Len() int { return len(t.Priority) + len(t.Other) }

// Partition places the lowest-scoring floor(N*fraction) words of pool in the
// priority tier, at least one when the pool is non-empty. pool must already
// be ordered by ascending score.
func Partition(pool []words.Word, fraction float64) Tiers {
	n := len(pool)
	if n == 0 {
		return Tiers{}
	}
	cutoff := int(math.Floor(float64(n) * fraction))
	if cutoff == 0 {
		cutoff = 1
	}
	if cutoff > n {
		cutoff = n
	}
	return Tiers{Priority: pool[:cutoff], Other: pool[cutoff:]}
}
