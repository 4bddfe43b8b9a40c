// Package scheduler runs a job on a cron schedule until its context is cancelled.
package scheduler

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Job is one scheduled unit of work. Errors are logged and never stop the schedule.
type Job func(ctx context.Context) error

// Options configures a Scheduler
type Options struct {
	RunOnStart bool // Run the job once before waiting for the first tick
	Logger     *zap.Logger
}

// Scheduler triggers a Job from a standard five-field cron expression.
// Overlapping ticks are skipped while a run is in progress.
type Scheduler struct {
	spec     string
	schedule cron.Schedule
	job      Job
	opts     Options
	logger   *zap.Logger
	runs     atomic.Int64
	failures atomic.Int64
}

// New validates spec and creates a Scheduler
func New(spec string, job Job, opts Options) (*Scheduler, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", spec, err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		spec:     spec,
		schedule: schedule,
		job:      job,
		opts:     opts,
		logger:   logger.With(zap.String("schedule", spec)),
	}, nil
}

// Next returns the first activation time after t
func (s *Scheduler) Next(t time.Time) time.Time {
	return s.schedule.Next(t)
}

// Runs returns how many times the job has been started
func (s *Scheduler) Runs() int64 {
	return s.runs.Load()
}

// Failures returns how many runs returned an error
func (s *Scheduler) Failures() int64 {
	return s.failures.Load()
}

// Run blocks until ctx is cancelled, then waits for a running job to finish.
func (s *Scheduler) Run(ctx context.Context) error {
	cronLogger := &cronLogger{sugar: s.logger.Sugar()}
	c := cron.New(
		cron.WithLogger(cronLogger),
		cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
	)
	c.Schedule(s.schedule, cron.FuncJob(func() { s.runOnce(ctx) }))

	if s.opts.RunOnStart {
		s.runOnce(ctx)
	}

	c.Start()
	s.logger.Info("scheduler started", zap.Time("next", s.Next(time.Now())))

	<-ctx.Done()
	s.logger.Info("scheduler stopping")
	<-c.Stop().Done()
	s.logger.Info("scheduler stopped", zap.Int64("runs", s.Runs()), zap.Int64("failures", s.Failures()))
	return nil
}

func (s *Scheduler) runOnce(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	n := s.runs.Add(1)
	start := time.Now()
	if err := s.job(ctx); err != nil {
		s.failures.Add(1)
		s.logger.Error("scheduled run failed", zap.Int64("run", n), zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return
	}
	s.logger.Info("scheduled run finished", zap.Int64("run", n), zap.Duration("elapsed", time.Since(start)))
}

// cronLogger adapts zap to cron.Logger
type cronLogger struct {
	sugar *zap.SugaredLogger
}

func (l *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.sugar.Debugw(msg, keysAndValues...)
}

func (l *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.sugar.Errorw(msg, append(keysAndValues, "error", err)...)
}
