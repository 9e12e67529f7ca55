// Package scheduler repeats pipeline runs on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/agentstation/foodsync/pkg/constants"
	"github.com/agentstation/foodsync/pkg/errors"
	"github.com/agentstation/foodsync/pkg/logging"
)

// Job is one scheduled unit of work.
type Job func(ctx context.Context) error

// Scheduler runs a job on a standard five-field cron schedule. A run that
// is due while the previous one is still going is skipped.
type Scheduler struct {
	cron    *cron.Cron
	spec    string
	job     cron.Job
	timeout time.Duration
	logger  *zerolog.Logger
	ctx     context.Context
	cancel  context.CancelFunc
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(s *Scheduler) {
		s.logger = logger
	}
}

// WithTimeout bounds every run.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Scheduler) {
		s.timeout = timeout
	}
}

// WithLocation interprets the schedule in the given time zone.
func WithLocation(loc *time.Location) Option {
	return func(s *Scheduler) {
		s.cron = cron.New(cron.WithLocation(loc))
	}
}

// New creates a scheduler for spec. An empty spec means the default
// nightly schedule.
func New(spec string, job Job, opts ...Option) (*Scheduler, error) {
	if spec == "" {
		spec = constants.DefaultSchedule
	}
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, errors.NewConfigError("scheduler", fmt.Sprintf("invalid schedule %q", spec), err)
	}

	s := &Scheduler{
		cron:    cron.New(),
		spec:    spec,
		timeout: constants.RunTimeout,
		logger:  logging.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.job = cron.NewChain(
		cron.Recover(cronLogger{s.logger}),
		cron.SkipIfStillRunning(cronLogger{s.logger}),
	).Then(cron.FuncJob(func() { s.run(job) }))
	s.cron.Schedule(schedule, s.job)

	return s, nil
}

// Spec returns the cron expression.
func (s *Scheduler) Spec() string {
	return s.spec
}

// Next returns the next activation time after now.
func (s *Scheduler) Next(now time.Time) time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Schedule.Next(now)
}

// Start starts the scheduler in the background.
func (s *Scheduler) Start() {
	s.logger.Info().Str("schedule", s.spec).Msg("Starting scheduler")
	s.cron.Start()
}

// RunNow runs the job immediately, subject to the same overlap guard as
// scheduled runs.
func (s *Scheduler) RunNow() {
	s.job.Run()
}

// Stop stops scheduling, cancels a running job and waits for it to return
// or for ctx to end.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.logger.Info().Msg("Stopping scheduler")
	done := s.cron.Stop()
	s.cancel()
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Scheduler) run(job Job) {
	ctx := s.ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	s.logger.Info().Msg("Scheduled run started")
	if err := job(ctx); err != nil {
		s.logger.Error().Err(err).Dur("duration", time.Since(start)).Msg("Scheduled run failed")
		return
	}
	s.logger.Info().Dur("duration", time.Since(start)).Msg("Scheduled run finished")
}

// cronLogger adapts zerolog to the logger interface of the cron package.
type cronLogger struct {
	logger *zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
