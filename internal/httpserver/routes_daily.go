// internal/httpserver/routes_daily.go
//
// HTTP routes for the daily challenges.
//   - GET /game/type/daily               → one word, until today's typing limit is reached
//   - GET /game/match?daily_challenge=true → uniform 10-pair set, DailyMatchLimit times a day
//
// Typing attempts are counted by POST /score with "daily":"type"; a match set
// counts as an attempt when it is dealt. Counters are per player (signed
// cookie), per UTC date and per mode, and persisted through Counter.

package httpserver

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/vocabdrill/internal/daily"
	"github.com/robalobadob/vocabdrill/internal/game"
)

// typeDailyRes is returned by /game/type/daily.
type typeDailyRes struct {
	*wordRes
	Progress daily.Progress `json:"progress"`
}

// matchDailyRes is returned by /game/match?daily_challenge=true.
type matchDailyRes struct {
	*game.MatchSet
	Progress daily.Progress `json:"progress"`
}

// progress reads today's standing for player pid.
func (s *Server) progress(ctx context.Context, pid string, mode daily.Mode, limit int) (daily.Progress, error) {
	date := daily.DateKey(s.opts.Now())
	n, err := s.counter.Attempts(ctx, pid, date, mode)
	if err != nil {
		return daily.Progress{}, err
	}
	return daily.NewProgress(date, mode, n, limit), nil
}

// countAttempt adds one attempt for player pid.
func (s *Server) countAttempt(ctx context.Context, pid string, mode daily.Mode, limit int) (daily.Progress, error) {
	date := daily.DateKey(s.opts.Now())
	n, err := s.counter.Increment(ctx, pid, date, mode)
	if err != nil {
		return daily.Progress{}, err
	}
	return daily.NewProgress(date, mode, n, limit), nil
}

// recordAttempt counts one attempt for the requesting player.
func (s *Server) recordAttempt(w http.ResponseWriter, r *http.Request, mode daily.Mode, limit int) (daily.Progress, error) {
	return s.countAttempt(r.Context(), s.playerID(w, r), mode, limit)
}

// handleTypeDaily serves the typing daily challenge.
// Once the limit is reached it answers {"progress":{"completed":true,...}} without a word.
func (s *Server) handleTypeDaily(w http.ResponseWriter, r *http.Request) {
	p, err := s.progress(r.Context(), s.playerID(w, r), daily.ModeType, s.opts.DailyTypeLimit)
	if err != nil {
		log.Error().Err(err).Msg("read daily progress")
		writeError(w, http.StatusInternalServerError, "storage_error", "storage failure")
		return
	}
	if p.Completed {
		writeJSON(w, http.StatusOK, typeDailyRes{Progress: p})
		return
	}

	word, err := s.engine.PickOne(r.Context())
	if err != nil {
		s.writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, typeDailyRes{
		wordRes:  &wordRes{WordID: word.ID, Term: word.Term, Translation: word.Translation},
		Progress: p,
	})
}

// handleMatchDaily serves the matching daily challenge.
func (s *Server) handleMatchDaily(w http.ResponseWriter, r *http.Request) {
	pid := s.playerID(w, r)
	p, err := s.progress(r.Context(), pid, daily.ModeMatch, s.opts.DailyMatchLimit)
	if err != nil {
		log.Error().Err(err).Msg("read daily progress")
		writeError(w, http.StatusInternalServerError, "storage_error", "storage failure")
		return
	}
	if p.Completed {
		writeJSON(w, http.StatusOK, matchDailyRes{Progress: p})
		return
	}

	set, err := s.engine.BuildMatchSet(r.Context(), true)
	if err != nil {
		s.writeGameError(w, err)
		return
	}
	if p, err = s.countAttempt(r.Context(), pid, daily.ModeMatch, s.opts.DailyMatchLimit); err != nil {
		log.Error().Err(err).Msg("record daily attempt")
		writeError(w, http.StatusInternalServerError, "storage_error", "storage failure")
		return
	}
	// The increment decides: concurrent requests may all have read a count
	// under the limit, but only the ones the counter admits get a set.
	if p.Attempts > p.Limit {
		writeJSON(w, http.StatusOK, matchDailyRes{
			Progress: daily.NewProgress(p.Date, daily.ModeMatch, p.Limit, p.Limit),
		})
		return
	}
	writeJSON(w, http.StatusOK, matchDailyRes{MatchSet: set, Progress: p})
}
