package scheduler

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/gatewarden-bot/gatewarden/pkg/utils/logging"
)

// DefaultMaxInitialDelay caps the random start offset so long-period jobs
// still begin within a minute of process start.
const DefaultMaxInitialDelay = time.Minute

// ErrorReporter receives background task failures tagged with the task name
type ErrorReporter interface {
	ReportTaskError(ctx context.Context, taskName string, err error)
}

// Task is a single run of a periodic job
type Task func(ctx context.Context) error

type job struct {
	name   string
	period time.Duration
	task   Task
}

// Scheduler runs named tasks on fixed periods. Each job starts after a
// uniform random delay in [0, min(period, max initial delay)) so jobs do not
// herd at process start. A run that overruns its period triggers a single
// immediate catch-up tick; missed ticks are never replayed as a burst.
type Scheduler struct {
	reporter        ErrorReporter
	jobs            []job
	maxInitialDelay time.Duration
	jitter          func(max time.Duration) time.Duration
}

// Option is a functional option for Scheduler configuration
type Option func(*Scheduler)

// WithMaxInitialDelay overrides the cap on the random start offset
func WithMaxInitialDelay(d time.Duration) Option {
	return func(s *Scheduler) {
		s.maxInitialDelay = d
	}
}

// WithJitterFunc overrides the random offset source (tests)
func WithJitterFunc(f func(max time.Duration) time.Duration) Option {
	return func(s *Scheduler) {
		s.jitter = f
	}
}

// New creates a Scheduler routing task failures to reporter
func New(reporter ErrorReporter, opts ...Option) *Scheduler {
	s := &Scheduler{
		reporter:        reporter,
		maxInitialDelay: DefaultMaxInitialDelay,
		jitter: func(max time.Duration) time.Duration {
			if max <= 0 {
				return 0
			}
			return rand.N(max)
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register adds a named periodic job. Must be called before Run.
func (s *Scheduler) Register(name string, period time.Duration, task Task) {
	s.jobs = append(s.jobs, job{name: name, period: period, task: task})
}

// Run starts all registered jobs and blocks until ctx is cancelled
func (s *Scheduler) Run(ctx context.Context) {
	var wg sync.WaitGroup
	for _, j := range s.jobs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.runJob(ctx, j)
		}()
	}
	wg.Wait()
}

func (s *Scheduler) runJob(ctx context.Context, j job) {
	delay := s.jitter(min(j.period, s.maxInitialDelay))
	logging.From(ctx).Info("scheduled task registered",
		"task", j.name, "period", j.period.String(), "initial_delay", delay.String())

	next := time.Now().Add(delay)
	timer := time.NewTimer(delay)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		logging.From(ctx).Info("running scheduled task", "task", j.name)
		if err := j.task(ctx); err != nil {
			s.reporter.ReportTaskError(ctx, j.name, err)
		}

		next = next.Add(j.period)
		if now := time.Now(); next.Before(now) {
			// The run overran the period; fire once immediately instead of
			// replaying every missed tick.
			next = now
		}
		timer.Reset(time.Until(next))
	}
}
