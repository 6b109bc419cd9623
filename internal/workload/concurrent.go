package workload

import (
	"context"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/agbru/sqrace/internal/errors"
	"github.com/agbru/sqrace/internal/progress"
)

// ConcurrentRunner launches every unit at once as its own goroutine.
// Because the artificial delay is the only suspension point and all delays
// are identical, every unit becomes ready at roughly the same instant: the
// whole run takes about one delay interval regardless of count.
type ConcurrentRunner struct{}

// NewConcurrentRunner creates a concurrent runner.
func NewConcurrentRunner() *ConcurrentRunner { return &ConcurrentRunner{} }

// Name returns the strategy identifier.
func (*ConcurrentRunner) Name() string { return "Concurrent" }

// Run launches all count units and collects results in completion order.
// The completion channel is sized to count so producers never block on a
// slow consumer. A unit error cancels the group context, interrupting the
// delays of all outstanding units (fail-fast); results collected before the
// failure are returned alongside the error.
func (*ConcurrentRunner) Run(ctx context.Context, count int, unit UnitFunc, report progress.ProgressCallback) ([]uint64, error) {
	return runGrouped(ctx, count, unit, report, func(g *errgroup.Group, _ context.Context, task func() error) {
		g.Go(task)
	})
}

// runGrouped is the shared collection loop for the concurrent and pooled
// runners: launch producers through the errgroup, drain the completion
// channel as units retire, and surface the first unit error. The launch
// hook receives the group context so it can bound admission with
// cancellation-aware primitives.
func runGrouped(ctx context.Context, count int, unit UnitFunc, report progress.ProgressCallback, launch func(*errgroup.Group, context.Context, func() error)) ([]uint64, error) {
	if report == nil {
		report = progress.NopCallback
	}

	g, ctx := errgroup.WithContext(ctx)
	completions := make(chan uint64, count)

	for i := 0; i < count; i++ {
		launch(g, ctx, func() error {
			v, err := unit(ctx, i)
			if err != nil {
				return apperrors.WrapError(err, "unit %d", i)
			}
			completions <- v
			return nil
		})
	}

	done := make(chan error, 1)
	go func() {
		done <- g.Wait()
		close(completions)
	}()

	retired := progress.NewCounter(count)
	results := make([]uint64, 0, count)
	for v := range completions {
		results = append(results, v)
		report(retired.Increment(), retired.Total())
	}
	return results, <-done
}
