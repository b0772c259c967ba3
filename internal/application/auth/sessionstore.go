package auth

import (
	"context"
	"fmt"
	"time"

	"hungrylist/internal/domain/auth"
	"hungrylist/internal/shared/biztime"
	"hungrylist/internal/shared/config"
	"hungrylist/internal/shared/id"
	"hungrylist/internal/shared/logger"
)

// TokenIssuer mints opaque tokens and derives their keyed hash.
type TokenIssuer interface {
	Generate() (plainToken string, tokenHash string, err error)
	HashToken(token string) string
}

// IssuedSession is a freshly created session together with the plain token.
// The token exists only here; it is never persisted.
type IssuedSession struct {
	Token   string
	Session *auth.Session
}

// SessionStore issues, validates and revokes sessions.
type SessionStore struct {
	repo   auth.SessionRepository
	tokens TokenIssuer
	clock  biztime.Clock
	ttl    config.SessionConfig
	newID  id.Generator
	logger logger.Interface
}

func NewSessionStore(
	repo auth.SessionRepository,
	tokens TokenIssuer,
	clock biztime.Clock,
	ttl config.SessionConfig,
	newID id.Generator,
	log logger.Interface,
) *SessionStore {
	if newID == nil {
		newID = id.New
	}
	return &SessionStore{repo: repo, tokens: tokens, clock: clock, ttl: ttl, newID: newID, logger: log}
}

func (s *SessionStore) Create(ctx context.Context, clientID, userAgent string, trusted bool) (*IssuedSession, error) {
	plain, hash, err := s.tokens.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate session token: %w", err)
	}

	now := s.clock.Now()
	session := &auth.Session{
		ID:        s.newID(),
		TokenHash: hash,
		Trusted:   trusted,
		IPAddress: NormalizeClientID(clientID),
		UserAgent: userAgent,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl.TTL(trusted)),
	}
	if err := s.repo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}

	s.logger.Infow("session created", "session_id", session.ID, "trusted", trusted, "expires_at", session.ExpiresAt)
	return &IssuedSession{Token: plain, Session: session}, nil
}

// Validate returns the session behind token when it is unrevoked and
// unexpired. Unknown, revoked and expired tokens all yield ok=false.
func (s *SessionStore) Validate(ctx context.Context, token string) (session *auth.Session, ok bool, err error) {
	if token == "" {
		return nil, false, nil
	}
	session, err = s.repo.FindValidByTokenHash(ctx, s.tokens.HashToken(token), s.clock.Now())
	if err != nil {
		return nil, false, fmt.Errorf("look up session: %w", err)
	}
	if session == nil {
		return nil, false, nil
	}
	return session, true, nil
}

// Revoke ends the session behind token. Unknown or already revoked tokens
// are a no-op.
func (s *SessionStore) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if _, err := s.repo.RevokeByTokenHash(ctx, s.tokens.HashToken(token), s.clock.Now()); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

// RevokeAll ends every currently valid session and returns how many.
func (s *SessionStore) RevokeAll(ctx context.Context) (int64, error) {
	n, err := s.repo.RevokeAllValid(ctx, s.clock.Now())
	if err != nil {
		return 0, fmt.Errorf("revoke all sessions: %w", err)
	}
	s.logger.Infow("all sessions revoked", "count", n)
	return n, nil
}

// ExpiresIn is the lifetime a new session of the given trust level gets.
func (s *SessionStore) ExpiresIn(trusted bool) time.Duration {
	return s.ttl.TTL(trusted)
}
