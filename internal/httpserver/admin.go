// internal/httpserver/admin.go
//
// Word-pool management behind a bearer admin key.
//   - GET    /admin/words?q=&limit= → search (empty q lists everything)
//   - POST   /admin/words           → bulk import {"pairs":[{"term":"..","translation":".."}]}
//   - DELETE /admin/words/{id}      → remove one word
//
// The key itself is never stored: ADMIN_KEY_HASH holds its bcrypt hash
// (see `vocabdrill admin-hash`). With no hash configured the routes answer 404.

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/robalobadob/vocabdrill/internal/words"
)

const maxImportPairs = 1000

// HashAdminKey returns the bcrypt hash to put in ADMIN_KEY_HASH.
func HashAdminKey(key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", errors.New("admin key is empty")
	}
	b, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	return string(b), err
}

func (s *Server) mountAdmin() {
	s.r.Route("/admin", func(r chi.Router) {
		r.Use(s.requireAdmin)
		r.Get("/words", s.handleAdminSearch)
		r.Post("/words", s.handleAdminImport)
		r.Delete("/words/{id}", s.handleAdminDelete)
	})
}

// requireAdmin checks "Authorization: Bearer <key>" against the configured hash.
func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.opts.AdminKeyHash == "" {
			writeError(w, http.StatusNotFound, "not_found", r.URL.Path)
			return
		}
		key, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || key == "" ||
			bcrypt.CompareHashAndPassword([]byte(s.opts.AdminKeyHash), []byte(key)) != nil {
			writeError(w, http.StatusUnauthorized, "unauthorized", "invalid admin key")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleAdminSearch(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "bad_limit", "limit must be a non-negative integer")
			return
		}
		limit = n
	}
	found, err := s.words.Search(r.Context(), r.URL.Query().Get("q"), limit)
	if err != nil {
		log.Error().Err(err).Msg("search words")
		writeError(w, http.StatusInternalServerError, "storage_error", "storage failure")
		return
	}
	writeJSON(w, http.StatusOK, found)
}

type importReq struct {
	Pairs []words.Pair `json:"pairs"`
}

type importError struct {
	Index   int    `json:"index"`
	Term    string `json:"term"`
	Message string `json:"message"`
}

type importRes struct {
	Added      []words.Word  `json:"added"`
	Duplicates []string      `json:"duplicates"`
	Errors     []importError `json:"errors"`
}

// handleAdminImport adds every valid pair; duplicates and invalid rows are
// reported per entry and never abort the batch.
func (s *Server) handleAdminImport(w http.ResponseWriter, r *http.Request) {
	var req importReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}
	if len(req.Pairs) == 0 {
		writeError(w, http.StatusBadRequest, "no_pairs", "pairs must not be empty")
		return
	}
	if len(req.Pairs) > maxImportPairs {
		writeError(w, http.StatusRequestEntityTooLarge, "too_many_pairs", "at most "+strconv.Itoa(maxImportPairs)+" pairs per request")
		return
	}

	res := importRes{Added: []words.Word{}, Duplicates: []string{}, Errors: []importError{}}
	for i, p := range req.Pairs {
		wd, err := s.words.Create(r.Context(), p)
		switch {
		case err == nil:
			res.Added = append(res.Added, wd)
		case errors.Is(err, words.ErrDuplicate):
			res.Duplicates = append(res.Duplicates, p.Normalize().Term)
		case errors.Is(err, words.ErrInvalid):
			res.Errors = append(res.Errors, importError{Index: i, Term: p.Term, Message: err.Error()})
		default:
			log.Error().Err(err).Int("index", i).Msg("import word")
			res.Errors = append(res.Errors, importError{Index: i, Term: p.Term, Message: "storage failure"})
		}
	}
	log.Info().
		Int("added", len(res.Added)).
		Int("duplicates", len(res.Duplicates)).
		Int("errors", len(res.Errors)).
		Msg("words imported")

	status := http.StatusOK
	if len(res.Added) > 0 {
		status = http.StatusCreated
	}
	writeJSON(w, status, res)
}

func (s *Server) handleAdminDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_id", "id must be an integer")
		return
	}
	if err := s.words.Delete(r.Context(), id); err != nil {
		if errors.Is(err, words.ErrNotFound) {
			writeError(w, http.StatusNotFound, "not_found", "word not found")
			return
		}
		log.Error().Err(err).Int64("wordId", id).Msg("delete word")
		writeError(w, http.StatusInternalServerError, "storage_error", "storage failure")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
