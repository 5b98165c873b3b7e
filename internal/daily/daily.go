// Package daily tracks how many daily-challenge attempts each player has
// made per UTC day and per game mode.
package daily

import "time"

// Mode names a daily challenge.
type Mode string

const (
	ModeType  Mode = "type"
	ModeMatch Mode = "match"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool { return m == ModeType || m == ModeMatch }

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Progress is a player's standing in one daily challenge.
type Progress struct {
	Date      string `json:"date"`
	Mode      Mode   `json:"mode"`
	Attempts  int    `json:"attempts"`
	Limit     int    `json:"limit"`
	Completed bool   `json:"completed"`
}

// NewProgress derives completion from attempts and limit.
func NewProgress(date string, mode Mode, attempts, limit int) Progress {
	return Progress{
		Date:      date,
		Mode:      mode,
		Attempts:  attempts,
		Limit:     limit,
		Completed: attempts >= limit,
	}
}
