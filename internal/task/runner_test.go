package task_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kingtech/dboptima/internal/task"
)

func TestRun_CompletesAfterDelay(t *testing.T) {
	r := task.NewRunner(0, nil)

	var done atomic.Bool
	r.Run(context.Background(), "test-job", func() { done.Store(true) })
	r.Wait()

	if !done.Load() {
		t.Error("completion callback never fired")
	}
}

func TestRun_CancelledContextSkipsCompletion(t *testing.T) {
	// A long delay guarantees cancellation wins the race.
	r := task.NewRunner(time.Minute, nil)

	ctx, cancel := context.WithCancel(context.Background())
	var done atomic.Bool
	r.Run(ctx, "test-job", func() { done.Store(true) })
	cancel()
	r.Wait()

	if done.Load() {
		t.Error("completion callback fired despite cancellation")
	}
}

func TestRun_MultipleJobs(t *testing.T) {
	r := task.NewRunner(0, nil)

	var n atomic.Int32
	for i := 0; i < 5; i++ {
		r.Run(context.Background(), "test-job", func() { n.Add(1) })
	}
	r.Wait()

	if n.Load() != 5 {
		t.Errorf("completions = %d, want 5", n.Load())
	}
}

func TestDelay(t *testing.T) {
	r := task.NewRunner(0, nil)
	if err := r.Delay(context.Background()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestDelay_Cancelled(t *testing.T) {
	r := task.NewRunner(time.Minute, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := r.Delay(ctx); err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
