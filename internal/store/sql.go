// internal/store/sql.go
//
// SQL implementation of the Store interface on top of sqlx.
// One query set serves sqlite3 and postgres: placeholders are written as "?"
// and rebound for the driver.
//
// Score updates use a relative write (score = score + ?) with RETURNING, so
// concurrent outcomes for the same word are applied by the database itself and
// never race on a cached copy.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"

	"github.com/robalobadob/vocabdrill/internal/words"
)

type sqlStore struct {
	db *sqlx.DB
}

// NewSQLStore wraps an open, migrated database handle.
func NewSQLStore(db *sqlx.DB) Store {
	return &sqlStore{db: db}
}

const wordColumns = `id, term, translation, score`

// pgUniqueViolation is the SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

func (s *sqlStore) Snapshot(ctx context.Context) ([]words.Word, error) {
	out := []words.Word{}
	if err := s.db.SelectContext(ctx, &out,
		`SELECT `+wordColumns+` FROM words ORDER BY score ASC, id ASC`); err != nil {
		return nil, fmt.Errorf("snapshot words: %w", err)
	}
	return out, nil
}

func (s *sqlStore) Get(ctx context.Context, id int64) (words.Word, error) {
	var w words.Word
	err := s.db.GetContext(ctx, &w, s.db.Rebind(`SELECT `+wordColumns+` FROM words WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return words.Word{}, words.ErrNotFound
	}
	if err != nil {
		return words.Word{}, fmt.Errorf("get word %d: %w", id, err)
	}
	return w, nil
}

func (s *sqlStore) Create(ctx context.Context, p words.Pair) (words.Word, error) {
	p, err := words.Validate(p)
	if err != nil {
		return words.Word{}, err
	}

	w := words.Word{Term: p.Term, Translation: p.Translation}
	err = s.db.QueryRowxContext(ctx, s.db.Rebind(
		`INSERT INTO words (term, term_key, translation, score) VALUES (?, ?, ?, 0) RETURNING id`),
		p.Term, words.Key(p.Term), p.Translation,
	).Scan(&w.ID)
	if err != nil {
		if isUniqueConstraintErr(err) {
			return words.Word{}, words.ErrDuplicate
		}
		return words.Word{}, fmt.Errorf("insert word: %w", err)
	}
	return w, nil
}

func (s *sqlStore) AddScore(ctx context.Context, id int64, delta int) (int, error) {
	var score int
	err := s.db.QueryRowxContext(ctx, s.db.Rebind(
		`UPDATE words SET score = score + ? WHERE id = ? RETURNING score`), delta, id,
	).Scan(&score)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, words.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("add score to word %d: %w", id, err)
	}
	return score, nil
}

func (s *sqlStore) CompareAndSetScore(ctx context.Context, id int64, prev, next int) (bool, error) {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(
		`UPDATE words SET score = ? WHERE id = ? AND score = ?`), next, id, prev)
	if err != nil {
		return false, fmt.Errorf("swap score of word %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 1 {
		return true, nil
	}
	// Either the score moved or the row is gone; tell them apart.
	if _, err := s.Get(ctx, id); err != nil {
		return false, err
	}
	return false, nil
}

func (s *sqlStore) Search(ctx context.Context, q string, limit int) ([]words.Word, error) {
	pattern := "%" + escapeLike(words.Key(q)) + "%"
	query := `SELECT ` + wordColumns + ` FROM words
		WHERE term_key LIKE ? ESCAPE '\' OR LOWER(translation) LIKE ? ESCAPE '\'
		ORDER BY score ASC, id ASC`
	args := []any{pattern, pattern}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	out := []words.Word{}
	if err := s.db.SelectContext(ctx, &out, s.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("search words: %w", err)
	}
	return out, nil
}

func (s *sqlStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM words WHERE id = ?`), id)
	if err != nil {
		return fmt.Errorf("delete word %d: %w", id, err)
	}
	if err := affectedOne(res); err != nil {
		return fmt.Errorf("delete word %d: %w", id, err)
	}
	return nil
}

// affectedOne maps a zero row count to ErrNotFound.
func affectedOne(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return words.ErrNotFound
	}
	return nil
}

func (s *sqlStore) Close() error { return s.db.Close() }

// isUniqueConstraintErr reports whether err is a unique-key violation from
// either driver. The message match covers errors wrapped beyond errors.As.
func isUniqueConstraintErr(err error) bool {
	if err == nil {
		return false
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		switch liteErr.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return true
		}
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == pgUniqueViolation
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate key")
}

// escapeLike escapes LIKE wildcards in user input.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
