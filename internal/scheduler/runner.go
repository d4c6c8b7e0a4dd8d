// Package scheduler drives the three background sweeps: the daily recurring
// transaction sweep, the six-hourly budget check, and the monthly report run.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Job is one scheduled sweep. Run is given the tick time so the sweep's
// calendar math does not drift from its schedule.
type Job interface {
	Name() string
	Run(ctx context.Context, now time.Time) error
}

// Runner owns the goroutines that fire the sweeps on their schedules.
type Runner struct {
	recurring      Job
	budget         Job
	report         Job
	budgetInterval time.Duration
	logger         *logrus.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewRunner(recurring, budget, report Job, budgetInterval time.Duration, logger *logrus.Logger) *Runner {
	return &Runner{
		recurring:      recurring,
		budget:         budget,
		report:         report,
		budgetInterval: budgetInterval,
		logger:         logger,
	}
}

// Start launches the schedule goroutines. The recurring sweep fires daily at
// midnight UTC, the budget check on a fixed interval with an immediate first
// run, and the report job at midnight UTC on the first of each month.
func (r *Runner) Start(ctx context.Context) {
	ctx, r.cancel = context.WithCancel(ctx)

	r.wg.Add(3)
	go r.runAt(ctx, r.recurring, nextMidnight)
	go r.runEvery(ctx, r.budget, r.budgetInterval)
	go r.runAt(ctx, r.report, nextMonthStart)
}

// Stop cancels the schedules and waits for any in-flight sweep to finish.
func (r *Runner) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
	r.wg.Wait()
}

// runEvery fires the job immediately and then on every tick.
func (r *Runner) runEvery(ctx context.Context, job Job, interval time.Duration) {
	defer r.wg.Done()

	r.fire(ctx, job, time.Now())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			r.fire(ctx, job, now)
		}
	}
}

// runAt fires the job whenever the clock reaches the time computed by next.
func (r *Runner) runAt(ctx context.Context, job Job, next func(time.Time) time.Time) {
	defer r.wg.Done()

	for {
		fireAt := next(time.Now())
		timer := time.NewTimer(time.Until(fireAt))

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case now := <-timer.C:
			r.fire(ctx, job, now)
		}
	}
}

func (r *Runner) fire(ctx context.Context, job Job, now time.Time) {
	start := time.Now()
	err := job.Run(ctx, now)
	entry := r.logger.WithFields(logrus.Fields{
		"job":         job.Name(),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	if err != nil {
		entry.WithError(err).Error("scheduled job failed")
		return
	}
	entry.Info("scheduled job complete")
}

// nextMidnight returns the next 00:00 UTC strictly after t.
func nextMidnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day()+1, 0, 0, 0, 0, time.UTC)
}

// nextMonthStart returns 00:00 UTC on the first of the next month.
func nextMonthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, time.UTC)
}
