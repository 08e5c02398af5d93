package domain

import "time"

// Session holds a customer access token and its expiry. A session whose
// expiry is in the past is treated as absent; the token and expiry are
// always stored and cleared together.
type Session struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Valid reports whether the session carries a token that has not expired.
func (s *Session) Valid(now time.Time) bool {
	return s.AccessToken != "" && s.ExpiresAt.After(now)
}

// AuthResult is the outcome of an authentication operation. Domain-level
// failures (bad credentials, duplicate email) are carried as a message,
// never as a Go error.
type AuthResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}
