// internal/words/words.go
//
// Word records shared by the store, the selection engine and the HTTP layer.
//
// Responsibilities:
//   - Define Word (term + translation + mastery score).
//   - Normalise and validate term/translation input before creation.
//   - Provide the case-insensitive uniqueness key for terms.
//   - Declare the sentinel errors every Store implementation reports.
//
// Constraints:
//   • Term and translation are 1..MaxLen characters after trimming.
//   • Terms are unique case-insensitively (Key folds case and surrounding space).
//   • Score starts at 0 and is unbounded in either direction.

package words

import (
	"errors"
	"sort"
	"strings"
	"unicode/utf8"
)

var (
	// ErrNotFound is returned when a word id does not exist.
	ErrNotFound = errors.New("word not found")

	// ErrDuplicate is returned when a term already exists (case-insensitive).
	ErrDuplicate = errors.New("word already exists")

	// ErrInvalid is returned when a term or translation is empty or too long.
	ErrInvalid = errors.New("term and translation must be 1 to 100 characters")
)

// MaxLen is the longest term or translation accepted, in characters.
const MaxLen = 100

// Word is one term/translation pair with its mastery score.
type Word struct {
	ID          int64  `json:"id" db:"id"`
	Term        string `json:"term" db:"term"`
	Translation string `json:"translation" db:"translation"`
	Score       int    `json:"score" db:"score"`
}

// Pair is creation input for a new word.
type Pair struct {
	Term        string `json:"term"`
	Translation string `json:"translation"`
}

// Normalize trims surrounding whitespace from both sides of the pair.
func (p Pair) Normalize() Pair {
	return Pair{
		Term:        strings.TrimSpace(p.Term),
		Translation: strings.TrimSpace(p.Translation),
	}
}

// Validate normalises p and reports ErrInvalid if either side is empty or
// longer than MaxLen characters.
func Validate(p Pair) (Pair, error) {
	p = p.Normalize()
	if p.Term == "" || p.Translation == "" {
		return p, ErrInvalid
	}
	if utf8.RuneCountInString(p.Term) > MaxLen || utf8.RuneCountInString(p.Translation) > MaxLen {
		return p, ErrInvalid
	}
	return p, nil
}

// Key returns the uniqueness key for a term: trimmed and lowercased.
func Key(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

// SortByScore orders ws by ascending score, breaking ties by id so that
// snapshots are stable across calls.
func SortByScore(ws []Word) {
	sort.SliceStable(ws, func(i, j int) bool {
		if ws[i].Score == ws[j].Score {
			return ws[i].ID < ws[j].ID
		}
		return ws[i].Score < ws[j].Score
	})
}

// Matches reports whether q occurs in the term or translation, ignoring case.
// An empty query matches everything.
func (w Word) Matches(q string) bool {
	q = Key(q)
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(w.Term), q) ||
		strings.Contains(strings.ToLower(w.Translation), q)
}

// IDs returns the ids of ws in order.
func IDs(ws []Word) []int64 {
	out := make([]int64, len(ws))
	for i, w := range ws {
		out[i] = w.ID
	}
	return out
}
