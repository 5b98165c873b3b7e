package game

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/vocabdrill/internal/words"
)

// pairIDs returns the set of pair ids on one side, failing on duplicates.
func pairIDs(t *testing.T, cards []Card) map[int64]bool {
	t.Helper()
	seen := make(map[int64]bool, len(cards))
	for _, c := range cards {
		assert.False(t, seen[c.PairID], "duplicate pair id %d", c.PairID)
		assert.Equal(t, c.ID, c.PairID)
		seen[c.PairID] = true
	}
	return seen
}

func TestStandardSetRequiresTwoWords(t *testing.T) {
	e := newEngine(t, seededStore(t, 1))
	_, err := e.BuildMatchSet(context.Background(), false)

	var ie *InsufficientPoolError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, 2, ie.Min)
	assert.Equal(t, "at least 2 word pairs required", err.Error())
}

func TestStandardSetEmptyPool(t *testing.T) {
	e := newEngine(t, seededStore(t, 0))
	_, err := e.BuildMatchSet(context.Background(), false)
	var ie *InsufficientPoolError
	assert.ErrorAs(t, err, &ie)
}

func TestStandardSetSizes(t *testing.T) {
	for _, n := range []int{2, 3, 5, 9, 10, 11, 12, 25, 100} {
		t.Run(fmt.Sprintf("pool=%d", n), func(t *testing.T) {
			e := newEngine(t, seededStore(t, n))
			for trial := 0; trial < 50; trial++ {
				set, err := e.BuildMatchSet(context.Background(), false)
				require.NoError(t, err)

				want := min(n, 10)
				assert.Equal(t, want, set.TotalPairs)
				require.Len(t, set.FrontCards, want)
				require.Len(t, set.BackCards, want)
				assert.Equal(t, pairIDs(t, set.FrontCards), pairIDs(t, set.BackCards))
			}
		})
	}
}

func TestStandardSetTakesPriorityCap(t *testing.T) {
	// 20 words, distinct scores: priority tier holds the 8 lowest.
	p := pool(20)
	set, err := standardSet(p, DefaultParams(), NewRand(3))
	require.NoError(t, err)
	require.Len(t, set, 10)

	fromPriority := 0
	for _, w := range set {
		if w.Score < 8 {
			fromPriority++
		}
	}
	assert.Equal(t, 7, fromPriority)
}

func TestStandardSetSkewedTiersTopsUp(t *testing.T) {
	params := DefaultParams()
	params.PriorityCap = 2
	params.TierFraction = 0.9 // priority 9 of 10, other only 1

	set, err := standardSet(pool(10), params, NewRand(5))
	require.NoError(t, err)
	assert.Len(t, set, 10, "top-up must fill from the remaining pool")

	seen := map[int64]bool{}
	for _, w := range set {
		assert.False(t, seen[w.ID])
		seen[w.ID] = true
	}
}

func TestStandardSetTruncatesToSetSize(t *testing.T) {
	params := DefaultParams()
	params.PriorityCap = 15
	params.TierFraction = 1

	set, err := standardSet(pool(30), params, NewRand(9))
	require.NoError(t, err)
	assert.Len(t, set, params.SetSize)
}

func TestDailySetRequiresTen(t *testing.T) {
	e := newEngine(t, seededStore(t, 9))
	_, err := e.BuildMatchSet(context.Background(), true)

	var ie *InsufficientPoolError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, 10, ie.Min)
	assert.Equal(t, 9, ie.Have)
	assert.Equal(t, "at least 10 word pairs required", err.Error())
}

func TestDailySetOfTenIsWholePool(t *testing.T) {
	ctx := context.Background()
	st := seededStore(t, 10)
	e := newEngine(t, st)

	snap, err := st.Snapshot(ctx)
	require.NoError(t, err)
	all := map[int64]bool{}
	for _, w := range snap {
		all[w.ID] = true
	}

	set, err := e.BuildMatchSet(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 10, set.TotalPairs)
	assert.Equal(t, all, pairIDs(t, set.FrontCards))
}

func TestDailySetUniformOverLargePool(t *testing.T) {
	ctx := context.Background()
	const poolSize, trials = 1000, 2000
	e := newEngine(t, seededStore(t, poolSize))

	counts := map[int64]int{}
	for i := 0; i < trials; i++ {
		set, err := e.BuildMatchSet(ctx, true)
		require.NoError(t, err)
		require.Equal(t, 10, set.TotalPairs)
		for id := range pairIDs(t, set.FrontCards) {
			counts[id]++
		}
	}

	// each word is expected 20 times; a uniform draw covers the pool and
	// keeps every count far below the tail.
	assert.Greater(t, len(counts), poolSize*98/100)
	for id, c := range counts {
		assert.Less(t, c, 50, "word %d drawn %d times", id, c)
	}
}

func TestDealPairsTermsAndTranslations(t *testing.T) {
	ws := pool(6)
	set := Deal(ws, NewRand(11))
	require.Equal(t, 6, set.TotalPairs)

	byID := map[int64]words.Word{}
	for _, w := range ws {
		byID[w.ID] = w
	}
	for _, c := range set.FrontCards {
		assert.Equal(t, byID[c.PairID].Term, c.Text)
	}
	for _, c := range set.BackCards {
		assert.Equal(t, byID[c.PairID].Translation, c.Text)
	}
}

func TestDealShufflesSidesIndependently(t *testing.T) {
	ws := pool(10)
	rng := NewRand(13)
	aligned := 0
	for i := 0; i < 20; i++ {
		set := Deal(ws, rng)
		same := true
		for j := range set.FrontCards {
			if set.FrontCards[j].PairID != set.BackCards[j].PairID {
				same = false
				break
			}
		}
		if same {
			aligned++
		}
	}
	assert.Less(t, aligned, 2)
}
