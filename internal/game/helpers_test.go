package game

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robalobadob/vocabdrill/internal/store"
	"github.com/robalobadob/vocabdrill/internal/words"
)

// fixedRand returns f from Float64, 0 from IntN and never shuffles.
type fixedRand struct{ f float64 }

func (r fixedRand) Float64() float64            { return r.f }
func (r fixedRand) IntN(int) int                { return 0 }
func (r fixedRand) Shuffle(int, func(i, j int)) {}

// pool builds n words with ids 1..n and scores equal to their index.
func pool(n int) []words.Word {
	out := make([]words.Word, n)
	for i := range out {
		out[i] = words.Word{
			ID:          int64(i + 1),
			Term:        fmt.Sprintf("term-%d", i+1),
			Translation: fmt.Sprintf("translation-%d", i+1),
			Score:       i,
		}
	}
	return out
}

// seededStore returns a memory store holding n words.
func seededStore(t *testing.T, n int) store.Store {
	t.Helper()
	st := store.NewMemoryStore()
	for i := 0; i < n; i++ {
		_, err := st.Create(context.Background(), words.Pair{
			Term:        fmt.Sprintf("term-%d", i),
			Translation: fmt.Sprintf("translation-%d", i),
		})
		require.NoError(t, err)
	}
	return st
}

func newEngine(t *testing.T, st Store, opts ...Option) *Engine {
	t.Helper()
	e, err := New(st, append([]Option{WithRand(NewRand(42))}, opts...)...)
	require.NoError(t, err)
	return e
}

// failingStore fails every call with err.
type failingStore struct{ err error }

func (f failingStore) Snapshot(context.Context) ([]words.Word, error) { return nil, f.err }
func (f failingStore) AddScore(context.Context, int64, int) (int, error) {
	return 0, f.err
}
