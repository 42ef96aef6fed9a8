// Package session holds authenticated console sessions. Sessions are
// explicit values handed to whoever needs them; nothing in this codebase
// reads ambient auth state. There is no refresh flow: when the platform
// token expires the session is dropped and the operator signs in again.
package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Session is one signed-in operator.
type Session struct {
	ID          string    `json:"id"`
	Token       string    `json:"token"`
	TokenExpiry time.Time `json:"token_expiry"`
	UserID      string    `json:"user_id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Role        string    `json:"role"`
}

// Identity is the account information captured at sign-in.
type Identity struct {
	UserID   string
	Username string
	Email    string
	Role     string
}

func (s Session) Expired() bool {
	return time.Now().After(s.TokenExpiry)
}

// TTL returns how long the session has left.
func (s Session) TTL() time.Duration {
	return time.Until(s.TokenExpiry)
}

// IsAdmin reports whether the session may use the admin screens.
func (s Session) IsAdmin() bool {
	return s.Role == "admin"
}

// tokenExpiry reads the exp claim without verifying the signature. The
// platform signed the token and verifies it on every call; the console
// only needs the expiry for its parallel timestamp.
func tokenExpiry(token string) (time.Time, bool) {
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
