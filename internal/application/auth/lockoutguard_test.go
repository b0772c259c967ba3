package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hungrylist/internal/domain/auth"
	"hungrylist/internal/shared/biztime"
	"hungrylist/internal/shared/db"
	"hungrylist/internal/shared/logger"
)

var lockoutStart = time.Date(2026, 2, 12, 21, 0, 0, 0, time.UTC)

func newTestGuard() (*LockoutGuard, *memFailureRepository, *biztime.ManualClock) {
	repo := newMemFailureRepository()
	clock := biztime.NewManualClock(lockoutStart)
	guard := NewLockoutGuard(repo, db.PassthroughTransactor{}, clock, auth.DefaultLockoutPolicy, logger.NewDiscard())
	return guard, repo, clock
}

func TestLockoutGuard_ThirdFailureBlocksForSixHours(t *testing.T) {
	guard, _, clock := newTestGuard()
	ctx := context.Background()

	out, err := guard.RecordFailure(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, 2, out.RemainingAttempts)
	assert.False(t, out.Blocked)

	clock.Advance(time.Minute)
	out, err = guard.RecordFailure(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, 1, out.RemainingAttempts)

	clock.Advance(time.Minute)
	third := clock.Now()
	out, err = guard.RecordFailure(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, out.Blocked)
	assert.Equal(t, 0, out.RemainingAttempts)
	require.NotNil(t, out.BlockedUntil)
	assert.Equal(t, third.Add(6*time.Hour), *out.BlockedUntil)

	status, cleared, err := guard.CheckStatus(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, cleared)
	assert.True(t, status.Blocked)
	assert.Equal(t, third.Add(6*time.Hour), *status.BlockedUntil)
}

func TestLockoutGuard_LazyExpiry(t *testing.T) {
	guard, repo, clock := newTestGuard()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := guard.RecordFailure(ctx, "c1")
		require.NoError(t, err)
	}
	until := lockoutStart.Add(6 * time.Hour)

	clock.Set(until.Add(-time.Millisecond))
	status, cleared, err := guard.CheckStatus(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, status.Blocked)
	assert.False(t, cleared)

	clock.Set(until)
	status, cleared, err = guard.CheckStatus(ctx, "c1")
	require.NoError(t, err)
	assert.False(t, status.Blocked)
	assert.True(t, cleared)

	rec, err := repo.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Nil(t, rec)

	out, err := guard.RecordFailure(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 2, out.RemainingAttempts)
}

func TestLockoutGuard_ClearRestartsCount(t *testing.T) {
	guard, _, _ := newTestGuard()
	ctx := context.Background()

	_, err := guard.RecordFailure(ctx, "c1")
	require.NoError(t, err)
	_, err = guard.RecordFailure(ctx, "c1")
	require.NoError(t, err)

	require.NoError(t, guard.Clear(ctx, "c1"))

	out, err := guard.RecordFailure(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 2, out.RemainingAttempts)
}

func TestLockoutGuard_ClientsAreIsolated(t *testing.T) {
	guard, _, _ := newTestGuard()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := guard.RecordFailure(ctx, "blocked-client")
		require.NoError(t, err)
	}

	status, _, err := guard.CheckStatus(ctx, "other-client")
	require.NoError(t, err)
	assert.False(t, status.Blocked)
}

func TestLockoutGuard_EmptyClientSharesUnknownBucket(t *testing.T) {
	guard, repo, _ := newTestGuard()
	ctx := context.Background()

	_, err := guard.RecordFailure(ctx, "")
	require.NoError(t, err)
	_, err = guard.RecordFailure(ctx, "   ")
	require.NoError(t, err)

	rec, err := repo.Get(ctx, auth.UnknownClientID)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, 2, rec.FailureCount)
}

func TestLockoutGuard_RecordFailureReadsUnderLock(t *testing.T) {
	guard, repo, _ := newTestGuard()
	ctx := context.Background()

	_, err := guard.RecordFailure(ctx, "10.0.0.9")
	require.NoError(t, err)
	_, err = guard.RecordFailure(ctx, "10.0.0.9")
	require.NoError(t, err)

	assert.Equal(t, 2, repo.locked)
}
