package auth

import (
	"context"
	"time"
)

// Session is a login bound to an opaque bearer token. Only the keyed hash of
// the token is kept. Rows are never deleted, only revoked.
type Session struct {
	ID        string
	TokenHash string
	Trusted   bool
	IPAddress string
	UserAgent string
	CreatedAt time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
}

// IsValid reports whether the session is unrevoked and unexpired at now.
func (s *Session) IsValid(now time.Time) bool {
	return s.RevokedAt == nil && now.Before(s.ExpiresAt)
}

// SessionRepository persists sessions. Lookups that match nothing return a
// nil session and a nil error.
type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	FindValidByTokenHash(ctx context.Context, tokenHash string, now time.Time) (*Session, error)
	RevokeByTokenHash(ctx context.Context, tokenHash string, now time.Time) (int64, error)
	RevokeAllValid(ctx context.Context, now time.Time) (int64, error)
}
