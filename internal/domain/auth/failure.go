package auth

import (
	"context"
	"time"
)

// UnknownClientID is the shared bucket for callers without an address.
const UnknownClientID = "unknown"

// LockoutPolicy is the threshold and block window applied per client.
type LockoutPolicy struct {
	MaxFailures   int
	BlockDuration time.Duration
}

// DefaultLockoutPolicy blocks a client for 6 hours after 3 failures.
var DefaultLockoutPolicy = LockoutPolicy{MaxFailures: 3, BlockDuration: 6 * time.Hour}

// FailureRecord counts failed credential checks for one client.
type FailureRecord struct {
	ClientID      string
	FailureCount  int
	FirstFailedAt time.Time
	LastFailedAt  time.Time
	BlockedUntil  *time.Time
}

// NewFailureRecord starts a record at count 1.
func NewFailureRecord(clientID string, now time.Time) *FailureRecord {
	return &FailureRecord{
		ClientID:      clientID,
		FailureCount:  1,
		FirstFailedAt: now,
		LastFailedAt:  now,
	}
}

// IsBlocked reports whether the block window is still open at now.
func (r *FailureRecord) IsBlocked(now time.Time) bool {
	return r.BlockedUntil != nil && now.Before(*r.BlockedUntil)
}

// BlockLapsed reports whether a block was set and has passed.
func (r *FailureRecord) BlockLapsed(now time.Time) bool {
	return r.BlockedUntil != nil && !now.Before(*r.BlockedUntil)
}

// RegisterFailure bumps the counter and opens the block window once the
// threshold is reached. It returns true when the record is now blocked.
func (r *FailureRecord) RegisterFailure(now time.Time, policy LockoutPolicy) bool {
	r.FailureCount++
	r.LastFailedAt = now
	if r.FailureCount >= policy.MaxFailures {
		until := now.Add(policy.BlockDuration)
		r.BlockedUntil = &until
		return true
	}
	return false
}

// RemainingAttempts is how many more failures are allowed before a block.
func (r *FailureRecord) RemainingAttempts(policy LockoutPolicy) int {
	if remaining := policy.MaxFailures - r.FailureCount; remaining > 0 {
		return remaining
	}
	return 0
}

// FailureRepository persists failure records. Get returns nil, nil when the
// client has none.
type FailureRepository interface {
	Get(ctx context.Context, clientID string) (*FailureRecord, error)
	// GetForUpdate is Get under a row lock held until the surrounding
	// transaction ends. It must be called inside one.
	GetForUpdate(ctx context.Context, clientID string, now time.Time) (*FailureRecord, error)
	Save(ctx context.Context, record *FailureRecord) error
	Delete(ctx context.Context, clientID string) error
}
