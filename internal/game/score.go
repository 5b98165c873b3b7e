package game

import (
	"context"

	"github.com/robalobadob/vocabdrill/internal/words"
)

// Outcome is one attempt at a word.
type Outcome struct {
	WordID  int64 `json:"word_id"`
	Success bool  `json:"success"`
}

// Delta is the score change the outcome applies.
func (o Outcome) Delta() int {
	if o.Success {
		return 1
	}
	return -1
}

// ScoreAdder applies a relative score delta at the storage layer and returns
// the stored result.
type ScoreAdder interface {
	AddScore(ctx context.Context, id int64, delta int) (int, error)
}

// ScoreSwapper is storage that can only compare-and-set absolute scores.
type ScoreSwapper interface {
	Get(ctx context.Context, id int64) (words.Word, error)
	CompareAndSetScore(ctx context.Context, id int64, prev, next int) (bool, error)
}

// CompareAndSwapScores builds a ScoreAdder from compare-and-set storage: it
// re-reads and retries until its swap lands, so no concurrent delta is lost.
// Only context cancellation stops the loop.
func CompareAndSwapScores(st ScoreSwapper) ScoreAdder {
	return casAdder{st: st}
}

type casAdder struct {
	st ScoreSwapper
}

func (c casAdder) AddScore(ctx context.Context, id int64, delta int) (int, error) {
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		w, err := c.st.Get(ctx, id)
		if err != nil {
			return 0, err
		}
		next := w.Score + delta
		ok, err := c.st.CompareAndSetScore(ctx, id, w.Score, next)
		if err != nil {
			return 0, err
		}
		if ok {
			return next, nil
		}
	}
}
