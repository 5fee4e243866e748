// Package scheduler runs periodic maintenance jobs on gocron.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/samber/oops"
)

// Task is one run of a periodic job.
type Task func(ctx context.Context) error

// Scheduler wraps a gocron scheduler whose jobs share one lifecycle context.
type Scheduler struct {
	cron   gocron.Scheduler
	logger *slog.Logger
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a stopped scheduler.
func New(logger *slog.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "scheduler")

	cron, err := gocron.NewScheduler(
		gocron.WithLocation(time.UTC),
		gocron.WithLogger(slogLogger{logger}),
	)
	if err != nil {
		return nil, oops.With("context", "creating scheduler").Wrap(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{cron: cron, logger: logger, ctx: ctx, cancel: cancel}, nil
}

// Every registers task to run once per interval. A run still in progress
// when the next one is due causes that run to be skipped.
func (s *Scheduler) Every(name string, interval time.Duration, task Task) error {
	_, err := s.cron.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			start := time.Now()
			if err := task(s.ctx); err != nil {
				s.logger.Error("Job failed", "job", name, "error", err)
				return
			}
			s.logger.Debug("Job finished", "job", name, "duration", time.Since(start))
		}),
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return oops.With("job", name, "interval", interval).Wrap(err)
	}

	s.logger.Info("Job scheduled", "job", name, "interval", interval)
	return nil
}

// Run starts the scheduler and blocks until ctx is done.
func (s *Scheduler) Run(ctx context.Context) error {
	s.cron.Start()
	<-ctx.Done()
	return s.Shutdown()
}

// Shutdown stops the scheduler and cancels running jobs.
func (s *Scheduler) Shutdown() error {
	s.cancel()
	if err := s.cron.Shutdown(); err != nil {
		return oops.With("context", "stopping scheduler").Wrap(err)
	}
	return nil
}

// slogLogger adapts slog to gocron.Logger.
type slogLogger struct {
	logger *slog.Logger
}

func (l slogLogger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }
func (l slogLogger) Info(msg string, args ...any)  { l.logger.Info(msg, args...) }
func (l slogLogger) Warn(msg string, args ...any)  { l.logger.Warn(msg, args...) }
func (l slogLogger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }
