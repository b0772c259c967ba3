package auth

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hungrylist/internal/domain/auth"
	"hungrylist/internal/infrastructure/database/dbtest"
	"hungrylist/internal/infrastructure/repository"
	"hungrylist/internal/shared/biztime"
	"hungrylist/internal/shared/db"
	"hungrylist/internal/shared/logger"
)

func TestLockoutGuard_ConcurrentFailuresAreAllCounted(t *testing.T) {
	gdb := dbtest.Open(t)
	repo := repository.NewAuthFailureRepository(gdb)
	policy := auth.LockoutPolicy{MaxFailures: 100, BlockDuration: time.Hour}
	guard := NewLockoutGuard(repo, db.NewTransactionManager(gdb), biztime.SystemClock{}, policy, logger.NewDiscard())
	ctx := context.Background()

	const attempts = 20
	var wg sync.WaitGroup
	errs := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := guard.RecordFailure(ctx, "10.1.1.1"); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	rec, err := repo.Get(ctx, "10.1.1.1")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, attempts, rec.FailureCount)
}
