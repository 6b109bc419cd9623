package workload

import (
	"context"

	"github.com/agbru/sqrace/internal/progress"
)

// Runner executes a workload of count units and returns the collected
// results. The returned slice ordering is runner-specific: the sequential
// runner preserves input order, the concurrent and pooled runners return
// results in completion order. Callers comparing runs must treat results
// as a multiset.
//
// The callback is invoked once per retired unit with the new completed
// count; pass progress.NopCallback to disable reporting.
type Runner interface {
	// Name returns the display identifier of the strategy (e.g. "Sequential").
	Name() string
	// Run processes all count units with the given unit function.
	Run(ctx context.Context, count int, unit UnitFunc, report progress.ProgressCallback) ([]uint64, error)
}
