package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ExpirySkew is subtracted from a token's nominal expiry everywhere a
// session's validity is judged, so the gateway never races the backend's
// own expiry check.
const ExpirySkew = 60 * time.Second

// Session pairs an authenticated User with its bearer token and the
// absolute instant the token stops being usable. Sessions are immutable
// values; renewal or profile changes produce a new Session.
type Session struct {
	Token     string    `json:"token"`
	User      User      `json:"user"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Valid reports whether the session is still usable at the given instant,
// skew included. An expired session is equivalent to no session.
func (s *Session) Valid(now time.Time) bool {
	if s == nil || s.Token == "" {
		return false
	}
	return now.Before(s.ExpiresAt.Add(-ExpirySkew))
}

// AuthHeaders returns the headers to attach to an upstream call: empty when
// there is no session, otherwise the bearer token. Pure, no I/O.
func (s *Session) AuthHeaders() map[string]string {
	if s == nil || s.Token == "" {
		return map[string]string{}
	}
	return map[string]string{"Authorization": "Bearer " + s.Token}
}

// WithUser returns a copy of the session carrying a replaced user snapshot.
func (s Session) WithUser(u User) Session {
	s.User = u
	return s
}

// TokenExpiry extracts the exp claim from a JWT without verifying the
// signature (verification belongs to the backend that issued it). Malformed
// tokens or tokens without an exp claim return (zero, false) so the caller
// degrades to "no session" instead of failing.
func TokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
