package scheduler_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/gatewarden-bot/gatewarden/pkg/service/scheduler"
)

type recordingReporter struct {
	mu    sync.Mutex
	tasks []string
	errs  []error
}

func (r *recordingReporter) ReportTaskError(ctx context.Context, taskName string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks = append(r.tasks, taskName)
	r.errs = append(r.errs, err)
}

func (r *recordingReporter) reported() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.tasks...)
}

func noJitter(max time.Duration) time.Duration { return 0 }

func TestScheduler_PeriodicRuns(t *testing.T) {
	reporter := &recordingReporter{}
	s := scheduler.New(reporter, scheduler.WithJitterFunc(noJitter))

	var mu sync.Mutex
	var runs []time.Time
	s.Register("tick", 30*time.Millisecond, func(ctx context.Context) error {
		mu.Lock()
		defer mu.Unlock()
		runs = append(runs, time.Now())
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 160*time.Millisecond)
	defer cancel()
	s.Run(ctx)

	mu.Lock()
	defer mu.Unlock()
	if len(runs) < 3 {
		t.Fatalf("expected at least 3 runs, got %d", len(runs))
	}
	for i := 1; i < len(runs); i++ {
		gap := runs[i].Sub(runs[i-1])
		if gap < 20*time.Millisecond || gap > 70*time.Millisecond {
			t.Errorf("run %d spaced %v from previous, want ~30ms", i, gap)
		}
	}
	gt.Array(t, reporter.reported()).Length(0)
}

func TestScheduler_InitialJitterBound(t *testing.T) {
	var gotMax time.Duration
	s := scheduler.New(&recordingReporter{},
		scheduler.WithJitterFunc(func(max time.Duration) time.Duration {
			gotMax = max
			return 0
		}))

	s.Register("long-period", time.Hour, func(ctx context.Context) error { return nil })

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	s.Run(ctx)

	// A period longer than the cap draws the offset from [0, 60s)
	gt.Value(t, gotMax).Equal(scheduler.DefaultMaxInitialDelay)
}

func TestScheduler_JitterUsesPeriodWhenShorter(t *testing.T) {
	var gotMax time.Duration
	s := scheduler.New(&recordingReporter{},
		scheduler.WithJitterFunc(func(max time.Duration) time.Duration {
			gotMax = max
			return 0
		}))

	s.Register("short-period", 20*time.Millisecond, func(ctx context.Context) error { return nil })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()
	s.Run(ctx)

	gt.Value(t, gotMax).Equal(20 * time.Millisecond)
}

func TestScheduler_OverrunCatchesUpOnce(t *testing.T) {
	reporter := &recordingReporter{}
	s := scheduler.New(reporter, scheduler.WithJitterFunc(noJitter))

	var mu sync.Mutex
	var runs []time.Time
	s.Register("slow-once", 30*time.Millisecond, func(ctx context.Context) error {
		mu.Lock()
		n := len(runs)
		runs = append(runs, time.Now())
		mu.Unlock()
		if n == 0 {
			// First run overruns two full periods
			time.Sleep(70 * time.Millisecond)
		}
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	s.Run(ctx)

	mu.Lock()
	defer mu.Unlock()
	if len(runs) < 3 {
		t.Fatalf("expected at least 3 runs, got %d", len(runs))
	}

	// The overrun triggers one immediate catch-up tick, not a burst
	catchUp := runs[1].Sub(runs[0])
	if catchUp < 70*time.Millisecond || catchUp > 110*time.Millisecond {
		t.Errorf("catch-up run %v after first start, want right after the 70ms overrun", catchUp)
	}
	afterCatchUp := runs[2].Sub(runs[1])
	if afterCatchUp < 20*time.Millisecond {
		t.Errorf("run after catch-up only %v later, looks like a burst", afterCatchUp)
	}
}

func TestScheduler_ErrorsGoToReporterAndLoopContinues(t *testing.T) {
	reporter := &recordingReporter{}
	s := scheduler.New(reporter, scheduler.WithJitterFunc(noJitter))

	var mu sync.Mutex
	count := 0
	s.Register("flaky", 20*time.Millisecond, func(ctx context.Context) error {
		mu.Lock()
		defer mu.Unlock()
		count++
		if count == 1 {
			return errors.New("boom")
		}
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 110*time.Millisecond)
	defer cancel()
	s.Run(ctx)

	mu.Lock()
	total := count
	mu.Unlock()

	if total < 3 {
		t.Fatalf("scheduler stopped after error, got %d runs", total)
	}
	names := reporter.reported()
	gt.Array(t, names).Length(1)
	gt.Value(t, names[0]).Equal("flaky")
}
