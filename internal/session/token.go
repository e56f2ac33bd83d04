package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenExpired reports whether token is a JWT whose expiry has already
// passed. The signature is not verified; this is only a local fast path to
// skip a validation round-trip that is guaranteed to fail. Opaque tokens and
// tokens without an exp claim are never considered expired here — the server
// stays the authority.
func tokenExpired(token string, now time.Time) bool {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
