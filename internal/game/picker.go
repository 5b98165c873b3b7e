package game

import "github.com/robalobadob/vocabdrill/internal/words"

// PickWeighted draws one word: with probability bias from the priority tier,
// otherwise from the other tier, falling back to whichever tier is non-empty.
// ok is false only when both tiers are empty.
func PickWeighted(t Tiers, rng Rand, bias float64) (w words.Word, ok bool) {
	first, second := t.Other, t.Priority
	if rng.Float64() < bias {
		first, second = t.Priority, t.Other
	}
	switch {
	case len(first) > 0:
		return first[rng.IntN(len(first))], true
	case len(second) > 0:
		return second[rng.IntN(len(second))], true
	}
	return words.Word{}, false
}

// sample draws k distinct words from from, uniformly and without
// replacement. from is not modified.
func sample(rng Rand, from []words.Word, k int) []words.Word {
	if k > len(from) {
		k = len(from)
	}
	if k <= 0 {
		return nil
	}
	buf := append([]words.Word(nil), from...)
	// partial Fisher-Yates
	for i := 0; i < k; i++ {
		j := i + rng.IntN(len(buf)-i)
		buf[i], buf[j] = buf[j], buf[i]
	}
	return buf[:k]
}

// shuffle permutes ws in place.
func shuffle[T any](rng Rand, ws []T) {
	rng.Shuffle(len(ws), func(i, j int) { ws[i], ws[j] = ws[j], ws[i] })
}
