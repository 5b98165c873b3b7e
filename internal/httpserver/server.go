// internal/httpserver/server.go
//
// HTTP server wiring for the vocabdrill backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health", "/words".
//   - Game endpoints: GET /game/type, GET /game/match, POST /score.
//   - Daily Challenge endpoints: mounted under /game/type/daily and ?daily_challenge=true.
//   - Admin endpoints (admin key): /admin/words.
//
// Notes:
//   - Selection-size conditions (empty or too small pool) answer 409 with guidance text;
//     they are normal states of a fresh install and only logged at debug level.
//   - Players are identified by a signed cookie (player.go); no accounts exist.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/vocabdrill/internal/daily"
	"github.com/robalobadob/vocabdrill/internal/game"
	"github.com/robalobadob/vocabdrill/internal/store"
)

// Counter records daily-challenge attempts per player.
type Counter interface {
	Attempts(ctx context.Context, playerID, date string, mode daily.Mode) (int, error)
	Increment(ctx context.Context, playerID, date string, mode daily.Mode) (int, error)
}

// Options carries the server settings that come from configuration.
type Options struct {
	ClientOrigin    string
	PlayerSecret    string
	AdminKeyHash    string // bcrypt hash; empty disables /admin
	Production      bool   // Secure + SameSite=None cookies
	DailyTypeLimit  int
	DailyMatchLimit int
	Now             func() time.Time // defaults to time.Now
}

// Server bundles router, engine, word store and daily counter.
type Server struct {
	r       *chi.Mux
	engine  *game.Engine
	words   store.Store
	counter Counter
	opts    Options
}

// New constructs a Server, installs middleware, and registers routes.
func New(engine *game.Engine, words store.Store, counter Counter, opts Options) *Server {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	s := &Server{r: chi.NewRouter(), engine: engine, words: words, counter: counter, opts: opts}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(accessLog(log.Logger)...)        // zerolog access log
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(cors(opts.ClientOrigin))         // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"vocabdrill","endpoints":["/health","/words","GET /game/type","GET /game/type/daily","GET /game/match","POST /score","/admin/words"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.r.Get("/words", s.handleSnapshot)
	s.r.Get("/game/type", s.handleTypeGame)
	s.r.Get("/game/type/daily", s.handleTypeDaily)
	s.r.Get("/game/match", s.handleMatchGame)
	s.r.Post("/score", s.handleScore)

	s.mountAdmin()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", r.URL.Path)
	})

	return s
}

// Handler exposes the router (useful for tests and http.Server).
func (s *Server) Handler() http.Handler { return s.r }

// Start begins serving HTTP on addr and shuts down gracefully when ctx ends.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// ------------------------------ GAME ---------------------------------------

// wordRes is one word for the typing game.
type wordRes struct {
	WordID      int64  `json:"word_id"`
	Term        string `json:"term"`
	Translation string `json:"translation"`
}

// handleSnapshot lists the whole pool ordered by ascending score.
func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	pool, err := s.engine.Snapshot(r.Context())
	if err != nil {
		s.writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pool)
}

// handleTypeGame picks one word, biased toward low scores.
func (s *Server) handleTypeGame(w http.ResponseWriter, r *http.Request) {
	word, err := s.engine.PickOne(r.Context())
	if err != nil {
		s.writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wordRes{WordID: word.ID, Term: word.Term, Translation: word.Translation})
}

// handleMatchGame deals a card-matching game; ?daily_challenge=true switches
// to the once-a-day uniform set.
func (s *Server) handleMatchGame(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("daily_challenge") == "true" {
		s.handleMatchDaily(w, r)
		return
	}
	set, err := s.engine.BuildMatchSet(r.Context(), false)
	if err != nil {
		s.writeGameError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, set)
}

// scoreReq is the POST /score payload. Pointers tell missing from zero.
type scoreReq struct {
	WordID  *int64     `json:"word_id"`
	Success *bool      `json:"success"`
	Daily   daily.Mode `json:"daily,omitempty"` // "type" counts toward the typing daily challenge
}

type scoreRes struct {
	Status   string          `json:"status"`
	NewScore int             `json:"new_score"`
	Progress *daily.Progress `json:"progress,omitempty"`
}

// handleScore applies one attempt outcome to a word's score.
func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req scoreReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}
	if req.WordID == nil || req.Success == nil {
		writeError(w, http.StatusBadRequest, "missing_fields", "missing word_id or success status")
		return
	}
	if req.Daily != "" && req.Daily != daily.ModeType {
		writeError(w, http.StatusBadRequest, "bad_daily", "daily must be \"type\" or omitted")
		return
	}

	score, err := s.engine.ApplyOutcome(r.Context(), *req.WordID, *req.Success)
	if err != nil {
		s.writeGameError(w, err)
		return
	}
	res := scoreRes{Status: "success", NewScore: score}

	if req.Daily == daily.ModeType {
		p, err := s.recordAttempt(w, r, daily.ModeType, s.opts.DailyTypeLimit)
		if err != nil {
			log.Warn().Err(err).Int64("wordId", *req.WordID).Msg("record daily attempt")
		} else {
			res.Progress = &p
		}
	}
	writeJSON(w, http.StatusOK, res)
}

// writeGameError maps engine errors onto HTTP responses.
func (s *Server) writeGameError(w http.ResponseWriter, err error) {
	var insufficient *game.InsufficientPoolError
	switch {
	case errors.Is(err, game.ErrEmptyPool):
		log.Debug().Msg("empty word pool")
		writeError(w, http.StatusConflict, "empty_pool", "No words found. Please add words to play this game.")
	case errors.As(err, &insufficient):
		log.Debug().Int("min", insufficient.Min).Int("have", insufficient.Have).Msg("word pool too small")
		writeJSON(w, http.StatusConflict, map[string]any{
			"error":   "insufficient_pool",
			"message": insufficient.Error(),
			"min":     insufficient.Min,
		})
	case errors.Is(err, game.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", "word not found")
	default:
		log.Error().Err(err).Msg("game request failed")
		writeError(w, http.StatusInternalServerError, "storage_error", "storage failure")
	}
}

// ------------------------------- util --------------------------------------

// writeJSON encodes v with status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes {"error":code,"message":msg}.
func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, map[string]string{"error": code, "message": msg})
}
