package daily

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Store persists attempt counters in daily_attempts.
type Store struct{ db *sqlx.DB }

func NewStore(db *sqlx.DB) *Store { return &Store{db: db} }

// Attempts returns the count for player/date/mode, zero when none recorded.
func (s *Store) Attempts(ctx context.Context, playerID, date string, mode Mode) (int, error) {
	var n int
	err := s.db.GetContext(ctx, &n, s.db.Rebind(
		`SELECT COALESCE(SUM(attempts), 0) FROM daily_attempts WHERE player_id=? AND date=? AND mode=?`),
		playerID, date, string(mode),
	)
	if err != nil {
		return 0, fmt.Errorf("read attempts: %w", err)
	}
	return n, nil
}

// Increment adds one attempt and returns the new count.
func (s *Store) Increment(ctx context.Context, playerID, date string, mode Mode) (int, error) {
	var n int
	err := s.db.QueryRowxContext(ctx, s.db.Rebind(
		`INSERT INTO daily_attempts (player_id, date, mode, attempts) VALUES (?, ?, ?, 1)
		ON CONFLICT (player_id, date, mode) DO UPDATE SET attempts = daily_attempts.attempts + 1
		RETURNING attempts`),
		playerID, date, string(mode),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("increment attempts: %w", err)
	}
	return n, nil
}

// Prune deletes counters for dates before the given date key and returns
// how many rows went away.
func (s *Store) Prune(ctx context.Context, before string) (int64, error) {
	res, err := s.db.ExecContext(ctx, s.db.Rebind(`DELETE FROM daily_attempts WHERE date < ?`), before)
	if err != nil {
		return 0, fmt.Errorf("prune attempts: %w", err)
	}
	return res.RowsAffected()
}
