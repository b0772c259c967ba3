// Package auth holds the credential lockout and session lifecycle services.
package auth

import (
	"context"
	"fmt"
	"time"

	"hungrylist/internal/domain/auth"
	"hungrylist/internal/shared/biztime"
	"hungrylist/internal/shared/db"
	"hungrylist/internal/shared/logger"
)

// LockStatus is the outcome of CheckStatus.
type LockStatus struct {
	Blocked      bool
	BlockedUntil *time.Time
}

// FailureOutcome is the outcome of RecordFailure.
type FailureOutcome struct {
	RemainingAttempts int
	Blocked           bool
	BlockedUntil      *time.Time
}

// LockoutGuard counts failed PIN checks per client and blocks a client for a
// fixed window once the threshold is reached. State lives only in the store.
type LockoutGuard struct {
	repo   auth.FailureRepository
	tx     db.Transactor
	clock  biztime.Clock
	policy auth.LockoutPolicy
	logger logger.Interface
}

func NewLockoutGuard(
	repo auth.FailureRepository,
	tx db.Transactor,
	clock biztime.Clock,
	policy auth.LockoutPolicy,
	log logger.Interface,
) *LockoutGuard {
	return &LockoutGuard{repo: repo, tx: tx, clock: clock, policy: policy, logger: log}
}

// CheckStatus reports whether clientID is blocked. A block whose window has
// passed is cleared here; cleared reports that this call deleted the record.
func (g *LockoutGuard) CheckStatus(ctx context.Context, clientID string) (status LockStatus, cleared bool, err error) {
	clientID = NormalizeClientID(clientID)

	err = g.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		record, err := g.repo.Get(ctx, clientID)
		if err != nil {
			return err
		}
		if record == nil {
			return nil
		}

		now := g.clock.Now()
		if record.BlockLapsed(now) {
			if err := g.repo.Delete(ctx, clientID); err != nil {
				return err
			}
			cleared = true
			return nil
		}
		if record.IsBlocked(now) {
			until := *record.BlockedUntil
			status = LockStatus{Blocked: true, BlockedUntil: &until}
		}
		return nil
	})
	if err != nil {
		return LockStatus{}, false, fmt.Errorf("check lockout status: %w", err)
	}

	if cleared {
		g.logger.Infow("lockout window lapsed, failure record cleared", "client_id", clientID)
	}
	return status, cleared, nil
}

// RecordFailure counts one failed check. The read-modify-write runs in a
// single store transaction under a row lock, so concurrent failures are
// never under-counted.
func (g *LockoutGuard) RecordFailure(ctx context.Context, clientID string) (FailureOutcome, error) {
	clientID = NormalizeClientID(clientID)

	var outcome FailureOutcome
	err := g.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		now := g.clock.Now()

		record, err := g.repo.GetForUpdate(ctx, clientID, now)
		if err != nil {
			return err
		}

		switch {
		case record == nil || record.BlockLapsed(now):
			record = auth.NewFailureRecord(clientID, now)
			if record.FailureCount >= g.policy.MaxFailures {
				until := now.Add(g.policy.BlockDuration)
				record.BlockedUntil = &until
			}
		default:
			record.RegisterFailure(now, g.policy)
		}

		if err := g.repo.Save(ctx, record); err != nil {
			return err
		}

		outcome = FailureOutcome{
			RemainingAttempts: record.RemainingAttempts(g.policy),
			Blocked:           record.IsBlocked(now),
		}
		if outcome.Blocked {
			until := *record.BlockedUntil
			outcome.BlockedUntil = &until
		}
		return nil
	})
	if err != nil {
		return FailureOutcome{}, fmt.Errorf("record credential failure: %w", err)
	}

	if outcome.Blocked {
		g.logger.Warnw("client blocked after repeated failures",
			"client_id", clientID, "blocked_until", outcome.BlockedUntil)
	}
	return outcome, nil
}

// Clear forgets every failure of clientID.
func (g *LockoutGuard) Clear(ctx context.Context, clientID string) error {
	if err := g.repo.Delete(ctx, NormalizeClientID(clientID)); err != nil {
		return fmt.Errorf("clear failure record: %w", err)
	}
	return nil
}
