package scheduler

import (
	"errors"
	"strings"
	"sync"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrEmptyJobName  = errors.New("job name is required")
	ErrEmptyCronExpr = errors.New("cron expression is required")
)

// Scheduler wraps a gocron scheduler for background maintenance jobs.
type Scheduler struct {
	scheduler gocron.Scheduler
	log       *zap.Logger
	stopOnce  sync.Once
	stopErr   error
}

func New(log *zap.Logger, options ...gocron.SchedulerOption) (*Scheduler, error) {
	log = log.With(zap.String("component", "scheduler"))

	options = append([]gocron.SchedulerOption{
		gocron.WithGlobalJobOptions(
			gocron.WithEventListeners(
				gocron.AfterJobRunsWithPanic(func(jobID uuid.UUID, jobName string, recoverData any) {
					log.Error("Scheduler job panicked",
						zap.String("job_id", jobID.String()),
						zap.String("job_name", jobName),
						zap.Any("panic", recoverData),
					)
				}),
			),
		),
	}, options...)

	sched, err := gocron.NewScheduler(options...)
	if err != nil {
		return nil, err
	}

	return &Scheduler{scheduler: sched, log: log}, nil
}

// AddJob registers a cron-based job. A run that overlaps the previous one waits for it.
func (s *Scheduler) AddJob(name, cronExpr string, task func()) (gocron.Job, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyJobName
	}
	if strings.TrimSpace(cronExpr) == "" {
		return nil, ErrEmptyCronExpr
	}

	jobLog := s.log.With(zap.String("job_name", name), zap.String("cron", cronExpr))

	wrapped := func() {
		jobLog.Debug("Scheduler job started")
		task()
		jobLog.Debug("Scheduler job completed")
	}

	job, err := s.scheduler.NewJob(
		gocron.CronJob(cronExpr, false),
		gocron.NewTask(wrapped),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeWait),
	)
	if err != nil {
		jobLog.Error("Failed to register scheduler job", zap.Error(err))
		return nil, err
	}

	jobLog.Info("Scheduler job registered")
	return job, nil
}

func (s *Scheduler) Start() {
	s.log.Info("Scheduler starting", zap.Int("jobs", len(s.scheduler.Jobs())))
	s.scheduler.Start()
}

// Stop shuts the scheduler down and waits for running jobs. Safe to call more than once.
func (s *Scheduler) Stop() error {
	s.stopOnce.Do(func() {
		s.log.Info("Scheduler stopping")
		s.stopErr = s.scheduler.Shutdown()
	})
	return s.stopErr
}
