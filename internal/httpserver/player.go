package httpserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	playerCookieName = "vocabdrill_player"
	playerTTL        = 180 * 24 * time.Hour
)

// playerID returns the id carried by the signed player cookie, issuing a new
// player (and cookie) when it is missing, expired, or tampered with.
// Daily-challenge counters are keyed by this id.
func (s *Server) playerID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(playerCookieName); err == nil && c.Value != "" {
		if id, err := s.parsePlayerToken(c.Value); err == nil {
			return id
		}
	}

	id := uuid.NewString()
	now := s.opts.Now()
	tok, err := s.signPlayerToken(id, now)
	if err != nil {
		// the id still works for this request; the next one gets a new player
		return id
	}
	sameSite := http.SameSiteLaxMode
	if s.opts.Production {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     playerCookieName,
		Value:    tok,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.opts.Production,
		SameSite: sameSite,
		Expires:  now.Add(playerTTL),
	})
	return id
}

// signPlayerToken creates an HS256 JWT whose subject is the player id.
func (s *Server) signPlayerToken(id string, now time.Time) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   id,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(playerTTL)),
	})
	return t.SignedString([]byte(s.opts.PlayerSecret))
}

// parsePlayerToken verifies tok and returns its subject.
func (s *Server) parsePlayerToken(tok string) (string, error) {
	var claims jwt.RegisteredClaims
	t, err := jwt.ParseWithClaims(tok, &claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.opts.PlayerSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.opts.Now),
	)
	if err != nil || !t.Valid {
		return "", errors.New("invalid player token")
	}
	if _, err := uuid.Parse(claims.Subject); err != nil {
		return "", errors.New("invalid player id")
	}
	return claims.Subject, nil
}
