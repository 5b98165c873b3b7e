// internal/store/store.go
//
// Store defines the durable word collection used by the game engine and
// the admin surface. Implementations may be backed by memory (memory.go)
// or SQL (sql.go, sqlite3 and postgres).

package store

import (
	"context"

	"github.com/robalobadob/vocabdrill/internal/words"
)

// Store is the persistence interface for word records.
type Store interface {
	// Snapshot returns every word ordered by ascending score (ties by id).
	Snapshot(ctx context.Context) ([]words.Word, error)

	// Get retrieves a word by id, or words.ErrNotFound.
	Get(ctx context.Context, id int64) (words.Word, error)

	// Create validates and inserts a pair. Returns words.ErrDuplicate when
	// the term already exists ignoring case, words.ErrInvalid on empty input.
	Create(ctx context.Context, p words.Pair) (words.Word, error)

	// AddScore applies a relative delta against the stored score and returns
	// the new value. Returns words.ErrNotFound for unknown ids.
	AddScore(ctx context.Context, id int64, delta int) (int, error)

	// CompareAndSetScore writes next only if the stored score equals prev.
	CompareAndSetScore(ctx context.Context, id int64, prev, next int) (bool, error)

	// Search matches term or translation case-insensitively.
	Search(ctx context.Context, q string, limit int) ([]words.Word, error)

	// Delete removes a word by id, or returns words.ErrNotFound.
	Delete(ctx context.Context, id int64) error

	Close() error
}
