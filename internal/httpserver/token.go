// internal/httpserver/token.go
//
// Session tokens for the HTTP host.
//
// POST /session/new hands the client an HS256 JWT binding the session ID.
// Every later request must present it (Authorization: Bearer or cookie), so
// clients cannot drive sessions they did not create by guessing IDs.
// There are no accounts; the token carries nothing but the session.

package httpserver

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	sessionCookieName = "gridle_session"
	sessionTokenTTL   = 24 * time.Hour
)

var errBadToken = errors.New("httpserver: invalid session token")

// signSessionToken creates an HS256 JWT whose sid claim is the session ID.
func (s *Server) signSessionToken(sessionID string) (string, time.Time, error) {
	exp := time.Now().Add(sessionTokenTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": sessionID,
		"exp": exp.Unix(),
		"iat": time.Now().Unix(),
	})
	ss, err := t.SignedString(s.secret)
	return ss, exp, err
}

// sessionIDFromToken verifies the token and extracts the sid claim.
func (s *Server) sessionIDFromToken(tokenStr string) (string, error) {
	claims := jwt.MapClaims{}
	t, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil || !t.Valid {
		return "", errBadToken
	}
	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", errBadToken
	}
	return sid, nil
}

// bearerOrCookie extracts a token from the Authorization header or the
// session cookie.
func bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(sessionCookieName); err == nil {
		return c.Value
	}
	return ""
}

// setSessionCookie mirrors the token into a cookie for browser clients that
// prefer credentialed requests over storing the token themselves.
func setSessionCookie(w http.ResponseWriter, token string, exp time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  exp,
	})
}
