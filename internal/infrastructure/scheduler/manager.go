// Package scheduler runs the periodic jobs using gocron v2.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"hungrylist/internal/shared/biztime"
	"hungrylist/internal/shared/logger"
)

// DefaultBackupCron fires at 03:00 on the first day of each month.
const DefaultBackupCron = "0 3 1 * *"

// BackupJob is the archiver surface the scheduler drives.
type BackupJob interface {
	// RunScheduled takes a scheduled backup.
	RunScheduled(ctx context.Context) error
	// CatchUp takes a scheduled backup if the current month still lacks one
	// and today is the first of the month.
	CatchUp(ctx context.Context) error
}

// SchedulerManager owns the single gocron scheduler of the process.
type SchedulerManager struct {
	scheduler gocron.Scheduler
	logger    logger.Interface

	started   bool
	startedMu sync.RWMutex
}

// NewSchedulerManager evaluates cron expressions in the business timezone.
func NewSchedulerManager(log logger.Interface) (*SchedulerManager, error) {
	scheduler, err := gocron.NewScheduler(
		gocron.WithLocation(biztime.Location()),
	)
	if err != nil {
		return nil, err
	}

	return &SchedulerManager{
		scheduler: scheduler,
		logger:    log,
	}, nil
}

// RegisterBackupJob schedules job on cronExpr (five-field cron).
func (m *SchedulerManager) RegisterBackupJob(job BackupJob, cronExpr string) error {
	if cronExpr == "" {
		cronExpr = DefaultBackupCron
	}

	_, err := m.scheduler.NewJob(
		gocron.CronJob(cronExpr, false),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
			defer cancel()
			m.runBackup(ctx, job)
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("backup", "scheduled"),
		gocron.WithName("monthly-backup"),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered backup job", "cron", cronExpr)
	return nil
}

func (m *SchedulerManager) runBackup(ctx context.Context, job BackupJob) {
	startTime := time.Now()
	if err := job.RunScheduled(ctx); err != nil {
		m.logger.Errorw("scheduled backup failed",
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}
	m.logger.Infow("scheduled backup completed", "duration", time.Since(startTime))
}

// CatchUpBackup runs the startup check once. Failures are logged, not
// returned: a missed backup must not keep the server from starting.
func (m *SchedulerManager) CatchUpBackup(ctx context.Context, job BackupJob) {
	if err := job.CatchUp(ctx); err != nil {
		m.logger.Errorw("startup backup check failed", "error", err)
	}
}

// Start starts the scheduler and all registered jobs.
func (m *SchedulerManager) Start() {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if m.started {
		return
	}

	m.scheduler.Start()
	m.started = true
	jobs := m.Jobs()
	m.logger.Infow("scheduler manager started", "job_count", len(jobs))
	for _, job := range jobs {
		if next, err := job.NextRun(); err == nil && !next.IsZero() {
			m.logger.Infow("job scheduled", "job", job.Name(), "next_run", next)
		}
	}
}

// Stop waits for running jobs to complete before returning.
func (m *SchedulerManager) Stop() error {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if !m.started {
		return nil
	}

	err := m.scheduler.Shutdown()
	m.started = false
	if err != nil {
		m.logger.Errorw("scheduler manager shutdown with error", "error", err)
		return err
	}

	m.logger.Infow("scheduler manager stopped")
	return nil
}

// Jobs returns all registered jobs.
func (m *SchedulerManager) Jobs() []gocron.Job {
	return m.scheduler.Jobs()
}
