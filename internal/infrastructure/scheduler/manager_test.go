package scheduler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hungrylist/internal/shared/logger"
)

type mockBackupJob struct {
	RunScheduledFunc func(ctx context.Context) error
	CatchUpFunc      func(ctx context.Context) error
}

func (m *mockBackupJob) RunScheduled(ctx context.Context) error {
	if m.RunScheduledFunc != nil {
		return m.RunScheduledFunc(ctx)
	}
	return nil
}

func (m *mockBackupJob) CatchUp(ctx context.Context) error {
	if m.CatchUpFunc != nil {
		return m.CatchUpFunc(ctx)
	}
	return nil
}

func TestSchedulerManager_RegisterBackupJob(t *testing.T) {
	m, err := NewSchedulerManager(logger.NewDiscard())
	require.NoError(t, err)

	require.NoError(t, m.RegisterBackupJob(&mockBackupJob{}, ""))
	jobs := m.Jobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, "monthly-backup", jobs[0].Name())
	assert.ElementsMatch(t, []string{"backup", "scheduled"}, jobs[0].Tags())

	m.Start()
	assert.True(t, m.started)
	require.NoError(t, m.Stop())
	assert.False(t, m.started)
}

func TestSchedulerManager_InvalidCron(t *testing.T) {
	m, err := NewSchedulerManager(logger.NewDiscard())
	require.NoError(t, err)

	assert.Error(t, m.RegisterBackupJob(&mockBackupJob{}, "every day please"))
}

func TestSchedulerManager_RunAndCatchUpSwallowErrors(t *testing.T) {
	m, err := NewSchedulerManager(logger.NewDiscard())
	require.NoError(t, err)

	var ran, caught bool
	job := &mockBackupJob{
		RunScheduledFunc: func(context.Context) error { ran = true; return errors.New("disk full") },
		CatchUpFunc:      func(context.Context) error { caught = true; return errors.New("db down") },
	}

	m.runBackup(context.Background(), job)
	m.CatchUpBackup(context.Background(), job)
	assert.True(t, ran)
	assert.True(t, caught)
}
