package workload

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/agbru/sqrace/internal/progress"
)

// DefaultWorkers is the default in-flight bound for the pooled runner.
const DefaultWorkers = 10

// PooledRunner bounds the number of units in flight with a weighted
// semaphore. It sits between the sequential and concurrent extremes:
// wall-clock time is roughly ceil(count/workers) delay intervals.
type PooledRunner struct {
	workers int
}

// NewPooledRunner creates a pooled runner with the given in-flight bound.
// Non-positive values fall back to DefaultWorkers.
func NewPooledRunner(workers int) *PooledRunner {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &PooledRunner{workers: workers}
}

// Name returns the strategy identifier.
func (r *PooledRunner) Name() string {
	return fmt.Sprintf("Pooled (%d workers)", r.workers)
}

// Workers returns the configured in-flight bound.
func (r *PooledRunner) Workers() int { return r.workers }

// Run behaves like the concurrent runner but each unit first acquires a
// semaphore slot, so at most Workers units wait out their delays at once.
// Cancellation interrupts both waiting acquirers and in-flight delays.
func (r *PooledRunner) Run(ctx context.Context, count int, unit UnitFunc, report progress.ProgressCallback) ([]uint64, error) {
	sem := semaphore.NewWeighted(int64(r.workers))
	return runGrouped(ctx, count, unit, report, func(g *errgroup.Group, gctx context.Context, task func() error) {
		g.Go(func() error {
			if err := sem.Acquire(gctx, 1); err != nil {
				return err
			}
			defer sem.Release(1)
			return task()
		})
	})
}
