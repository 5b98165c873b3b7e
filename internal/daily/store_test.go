package daily

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/vocabdrill/internal/database"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.OpenMigrated(context.Background(), database.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewStore(db)
}

func TestIncrementCountsPerPlayerDateAndMode(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	n, err := s.Attempts(ctx, "p1", "2026-10-15", ModeType)
	require.NoError(t, err)
	assert.Zero(t, n)

	for want := 1; want <= 3; want++ {
		n, err := s.Increment(ctx, "p1", "2026-10-15", ModeType)
		require.NoError(t, err)
		assert.Equal(t, want, n)
	}

	n, err = s.Increment(ctx, "p1", "2026-10-15", ModeMatch)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = s.Increment(ctx, "p2", "2026-10-15", ModeType)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = s.Attempts(ctx, "p1", "2026-10-16", ModeType)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestIncrementConcurrent(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Increment(ctx, "p1", "2026-10-15", ModeType)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	n, err := s.Attempts(ctx, "p1", "2026-10-15", ModeType)
	require.NoError(t, err)
	assert.Equal(t, 100, n)
}

func TestPrune(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	for _, d := range []string{"2026-10-01", "2026-10-07", "2026-10-08", "2026-10-15"} {
		_, err := s.Increment(ctx, "p1", d, ModeType)
		require.NoError(t, err)
	}

	n, err := s.Prune(ctx, "2026-10-08")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	left, err := s.Attempts(ctx, "p1", "2026-10-08", ModeType)
	require.NoError(t, err)
	assert.Equal(t, 1, left)
}

func TestDateKeyIsUTC(t *testing.T) {
	loc := time.FixedZone("UTC+10", 10*3600)
	assert.Equal(t, "2026-10-14", DateKey(time.Date(2026, 10, 15, 5, 0, 0, 0, loc)))
}

func TestNewProgress(t *testing.T) {
	assert.False(t, NewProgress("d", ModeType, 49, 50).Completed)
	assert.True(t, NewProgress("d", ModeType, 50, 50).Completed)
	assert.True(t, ModeMatch.Valid())
	assert.False(t, Mode("speed").Valid())
}
