// Package scheduler runs housekeeping batch jobs using gocron v2.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/biztime"
	"github.com/soripaulos/medical-quiz-app-sub001/internal/shared/logger"
)

// BatchJob is a scheduled batch that reports how many items it processed.
type BatchJob interface {
	Name() string
	RunBatch(ctx context.Context) (int, error)
}

// JobRunRecorder observes finished batch runs (metrics).
type JobRunRecorder interface {
	JobRun(job string, processed int, err error, elapsed time.Duration)
}

// SchedulerManager owns the single gocron scheduler of the worker process.
type SchedulerManager struct {
	scheduler gocron.Scheduler
	logger    logger.Interface
	recorder  JobRunRecorder

	started   bool
	startedMu sync.RWMutex
}

// NewSchedulerManager initializes gocron with the business timezone for cron expressions.
func NewSchedulerManager(log logger.Interface, recorder JobRunRecorder) (*SchedulerManager, error) {
	scheduler, err := gocron.NewScheduler(
		gocron.WithLocation(biztime.Location()),
	)
	if err != nil {
		return nil, err
	}

	return &SchedulerManager{
		scheduler: scheduler,
		logger:    log,
		recorder:  recorder,
	}, nil
}

// RegisterIntervalJob runs job every interval, starting immediately.
// Runs never overlap; a slow run reschedules the next tick.
func (m *SchedulerManager) RegisterIntervalJob(job BatchJob, interval, timeout time.Duration) error {
	_, err := m.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			m.RunOnce(ctx, job)
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("housekeeping"),
		gocron.WithName(job.Name()),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered interval job", "job", job.Name(), "interval", interval.String())
	return nil
}

// RegisterCronJob runs job on a crontab schedule in the business timezone.
func (m *SchedulerManager) RegisterCronJob(job BatchJob, crontab string, timeout time.Duration) error {
	_, err := m.scheduler.NewJob(
		gocron.CronJob(crontab, false),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			m.RunOnce(ctx, job)
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("housekeeping"),
		gocron.WithName(job.Name()),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered cron job", "job", job.Name(), "schedule", crontab)
	return nil
}

// RunOnce executes one batch and logs the outcome.
func (m *SchedulerManager) RunOnce(ctx context.Context, job BatchJob) {
	m.logger.Debugw("batch job started", "job", job.Name())

	startTime := biztime.NowUTC()
	count, err := job.RunBatch(ctx)
	elapsed := time.Since(startTime)

	if m.recorder != nil {
		m.recorder.JobRun(job.Name(), count, err, elapsed)
	}

	if err != nil {
		// shutdown cancels the context; not worth an error line
		if ctx.Err() != nil {
			return
		}
		m.logger.Errorw("batch job failed",
			"job", job.Name(),
			"error", err,
			"duration", elapsed,
		)
		return
	}

	if count > 0 {
		m.logger.Infow("batch job processed items",
			"job", job.Name(),
			"count", count,
			"duration", elapsed,
		)
	} else {
		m.logger.Debugw("batch job found nothing to process",
			"job", job.Name(),
			"duration", elapsed,
		)
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
	m.logger.Infow("scheduler manager started", "job_count", len(m.scheduler.Jobs()))
}

// Stop waits for running jobs to complete before returning.
func (m *SchedulerManager) Stop() error {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if !m.started {
		return nil
	}

	m.logger.Infow("stopping scheduler manager")

	err := m.scheduler.Shutdown()
	m.started = false

	if err != nil {
		m.logger.Errorw("scheduler manager shutdown with error", "error", err)
		return err
	}

	m.logger.Infow("scheduler manager stopped")
	return nil
}

// IsStarted returns whether the scheduler is running.
func (m *SchedulerManager) IsStarted() bool {
	m.startedMu.RLock()
	defer m.startedMu.RUnlock()
	return m.started
}

// Jobs returns all registered jobs for inspection.
func (m *SchedulerManager) Jobs() []gocron.Job {
	return m.scheduler.Jobs()
}
