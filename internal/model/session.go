package model

import "time"

// SessionKind distinguishes a fully authenticated session from one that
// has only verified an email but lacks a completed profile.
type SessionKind string

const (
	// SessionEstablished is a session for a known user.
	SessionEstablished SessionKind = "established"
	// SessionSetupPending carries a verified email claim for which no
	// user record exists yet.
	SessionSetupPending SessionKind = "setup_pending"
)

// Session represents a browser's authenticated or semi-authenticated
// state. TokenHash is the SHA-256 of the opaque token carried in the
// signed cookie; the raw token is never persisted or logged.
type Session struct {
	ID        int64
	TokenHash string
	Email     string
	Kind      SessionKind
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the session has passed its store-owned expiry.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
