// Package task runs the artificial-delay jobs behind the dashboard's
// simulated long-running actions: the index-advisor scan, report
// generation, and optimizer analysis all take a visible moment to complete
// even though no remote work happens.
//
// Each job is an explicit goroutine bound to a context. If the context is
// cancelled before the delay elapses — the client went away, or the server
// is shutting down — the completion callback never fires, so teardown is a
// defined no-op rather than a callback racing against discarded state.
package task

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Runner schedules delayed completion callbacks. The zero delay is valid
// and makes completions effectively synchronous, which tests rely on.
type Runner struct {
	delay  time.Duration
	logger *slog.Logger

	wg sync.WaitGroup
}

// NewRunner creates a Runner whose jobs complete after delay. A nil logger
// falls back to slog.Default().
func NewRunner(delay time.Duration, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{delay: delay, logger: logger}
}

// Run schedules complete to be called once the runner's delay has elapsed,
// unless ctx is cancelled first. name identifies the job in logs.
func (r *Runner) Run(ctx context.Context, name string, complete func()) {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		timer := time.NewTimer(r.delay)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			r.logger.Debug("simulated job cancelled",
				slog.String("job", name),
				slog.String("reason", ctx.Err().Error()),
			)
		case <-timer.C:
			complete()
			r.logger.Debug("simulated job completed", slog.String("job", name))
		}
	}()
}

// Delay blocks for the runner's configured delay, returning early with
// ctx.Err() if ctx is cancelled first. Used by request-scoped simulations
// where the caller waits for the result in-line.
func (r *Runner) Delay(ctx context.Context) error {
	timer := time.NewTimer(r.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Wait blocks until every scheduled job has either completed or observed
// cancellation. Called during graceful shutdown.
func (r *Runner) Wait() { r.wg.Wait() }
