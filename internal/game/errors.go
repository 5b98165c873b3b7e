package game

import (
	"errors"
	"fmt"

	"github.com/robalobadob/vocabdrill/internal/words"
)

var (
	// ErrEmptyPool means no words exist; callers should send the player to
	// word import instead of rendering a game.
	ErrEmptyPool = errors.New("no words in pool")

	// ErrNotFound means an outcome referenced an unknown word id.
	ErrNotFound = words.ErrNotFound
)

// InsufficientPoolError means the pool exists but is smaller than the mode needs.
type InsufficientPoolError struct {
	Min  int // minimum pool size for the mode
	Have int // pool size seen
}

func (e *InsufficientPoolError) Error() string {
	return fmt.Sprintf("at least %d word pairs required", e.Min)
}

// StorageError wraps an unexpected persistence failure. It is not retried.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *StorageError) Unwrap() error { return e.Err }
