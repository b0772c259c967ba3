package auth

import (
	"context"
	"time"

	"hungrylist/internal/domain/auth"
	"hungrylist/internal/shared/errors"
	"hungrylist/internal/shared/logger"
)

// PINVerifier checks a candidate against the household PIN.
type PINVerifier interface {
	Verify(candidate string) bool
}

type LoginCommand struct {
	PIN       string
	Trusted   bool
	ClientID  string
	UserAgent string
}

type LoginResult struct {
	Token     string
	Trusted   bool
	ExpiresAt time.Time
	MaxAge    time.Duration
}

// Service is the login flow: lockout check, PIN check, then a session.
type Service struct {
	guard    *LockoutGuard
	sessions *SessionStore
	verifier PINVerifier
	logger   logger.Interface
}

func NewService(guard *LockoutGuard, sessions *SessionStore, verifier PINVerifier, log logger.Interface) *Service {
	return &Service{guard: guard, sessions: sessions, verifier: verifier, logger: log}
}

// Login returns AUTH_IP_BLOCKED while the client is locked out (even for the
// right PIN) and INVALID_PIN with the remaining attempts for a wrong one.
func (s *Service) Login(ctx context.Context, cmd LoginCommand) (*LoginResult, error) {
	clientID := NormalizeClientID(cmd.ClientID)

	status, _, err := s.guard.CheckStatus(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if status.Blocked {
		s.logger.Warnw("login refused, client blocked", "client_id", clientID)
		return nil, errors.NewIPBlockedError(*status.BlockedUntil)
	}

	if !s.verifier.Verify(cmd.PIN) {
		outcome, err := s.guard.RecordFailure(ctx, clientID)
		if err != nil {
			return nil, err
		}
		if outcome.Blocked {
			return nil, errors.NewIPBlockedError(*outcome.BlockedUntil)
		}
		s.logger.Infow("invalid pin", "client_id", clientID, "remaining_attempts", outcome.RemainingAttempts)
		return nil, errors.NewInvalidCredentialError(outcome.RemainingAttempts)
	}

	if err := s.guard.Clear(ctx, clientID); err != nil {
		return nil, err
	}

	issued, err := s.sessions.Create(ctx, clientID, cmd.UserAgent, cmd.Trusted)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Token:     issued.Token,
		Trusted:   issued.Session.Trusted,
		ExpiresAt: issued.Session.ExpiresAt,
		MaxAge:    s.sessions.ExpiresIn(cmd.Trusted),
	}, nil
}

// Authenticate resolves a token to its session or returns AUTH_REQUIRED.
func (s *Service) Authenticate(ctx context.Context, token string) (*auth.Session, error) {
	session, ok, err := s.sessions.Validate(ctx, token)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.NewAuthRequiredError()
	}
	return session, nil
}

func (s *Service) Logout(ctx context.Context, token string) error {
	return s.sessions.Revoke(ctx, token)
}

func (s *Service) LogoutAll(ctx context.Context) (int64, error) {
	return s.sessions.RevokeAll(ctx)
}
