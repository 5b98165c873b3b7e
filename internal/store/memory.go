// internal/store/memory.go
//
// In-memory implementation of the Store interface.
// Used for development, tests, and DB_DRIVER=memory deployments where
// durability is not required.
//
// Characteristics:
//   - Words keyed by id in a map, with a secondary index on the term key.
//   - Concurrency-safe via RWMutex (snapshots share the read lock, writes are exclusive).
//   - Score deltas are applied under the write lock, so concurrent outcomes never lose updates.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"sync"

	"github.com/robalobadob/vocabdrill/internal/words"
)

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu     sync.RWMutex
	nextID int64
	byID   map[int64]*words.Word // keyed by Word.ID
	byKey  map[string]int64      // words.Key(term) -> id
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{
		byID:  make(map[int64]*words.Word),
		byKey: make(map[string]int64),
	}
}

// Snapshot copies every word, ordered by ascending score.
func (m *memory) Snapshot(ctx context.Context) ([]words.Word, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	out := make([]words.Word, 0, len(m.byID))
	for _, w := range m.byID {
		out = append(out, *w)
	}
	m.mu.RUnlock()
	words.SortByScore(out)
	return out, nil
}

// Get looks up a word by id.
func (m *memory) Get(ctx context.Context, id int64) (words.Word, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if w, ok := m.byID[id]; ok {
		return *w, nil
	}
	return words.Word{}, words.ErrNotFound
}

// Create inserts a new pair, rejecting case-insensitive duplicates.
func (m *memory) Create(ctx context.Context, p words.Pair) (words.Word, error) {
	p, err := words.Validate(p)
	if err != nil {
		return words.Word{}, err
	}
	key := words.Key(p.Term)

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byKey[key]; ok {
		return words.Word{}, words.ErrDuplicate
	}
	m.nextID++
	w := &words.Word{ID: m.nextID, Term: p.Term, Translation: p.Translation}
	m.byID[w.ID] = w
	m.byKey[key] = w.ID
	return *w, nil
}

// AddScore applies delta to the stored score and returns the new value.
func (m *memory) AddScore(ctx context.Context, id int64, delta int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.byID[id]
	if !ok {
		return 0, words.ErrNotFound
	}
	w.Score += delta
	return w.Score, nil
}

// CompareAndSetScore sets the score to next only if it still equals prev.
func (m *memory) CompareAndSetScore(ctx context.Context, id int64, prev, next int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.byID[id]
	if !ok {
		return false, words.ErrNotFound
	}
	if w.Score != prev {
		return false, nil
	}
	w.Score = next
	return true, nil
}

// Search returns words whose term or translation contains q, ordered by
// ascending score. limit <= 0 means no limit.
func (m *memory) Search(ctx context.Context, q string, limit int) ([]words.Word, error) {
	all, err := m.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]words.Word, 0, len(all))
	for _, w := range all {
		if !w.Matches(q) {
			continue
		}
		out = append(out, w)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// Delete removes a word by id.
func (m *memory) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.byID[id]
	if !ok {
		return words.ErrNotFound
	}
	delete(m.byKey, words.Key(w.Term))
	delete(m.byID, id)
	return nil
}

// Close is a no-op for the memory store.
func (m *memory) Close() error { return nil }
