package store

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"

	"github.com/robalobadob/vocabdrill/internal/words"
)

func TestIsUniqueConstraintErr(t *testing.T) {
	cases := map[string]struct {
		err  error
		want bool
	}{
		"nil":            {nil, false},
		"sqlite unique":  {sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}, true},
		"sqlite pk":      {sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintPrimaryKey}, true},
		"sqlite wrapped": {fmt.Errorf("insert: %w", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}), true},
		"sqlite notnull": {sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintNotNull}, false},
		"pq unique":      {&pq.Error{Code: "23505"}, true},
		"pq fk":          {&pq.Error{Code: "23503"}, false},
		"plain message":  {errors.New("UNIQUE constraint failed: words.term_key"), true},
		"other":          {errors.New("disk I/O error"), false},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.want, isUniqueConstraintErr(tc.err))
		})
	}
}

type stubResult struct {
	n   int64
	err error
}

func (r stubResult) LastInsertId() (int64, error) { return 0, nil }
func (r stubResult) RowsAffected() (int64, error) { return r.n, r.err }

func TestAffectedOne(t *testing.T) {
	assert.NoError(t, affectedOne(stubResult{n: 1}))
	assert.ErrorIs(t, affectedOne(stubResult{n: 0}), words.ErrNotFound)

	boom := errors.New("rows affected unsupported")
	err := affectedOne(stubResult{err: boom})
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, words.ErrNotFound)
}

func TestSearchHonoursCancelledContext(t *testing.T) {
	backends(t, func(t *testing.T, st Store) {
		mustCreate(t, st, "a", "1")

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := st.Search(ctx, "a", 0)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
