package workload

import (
	"context"

	apperrors "github.com/agbru/sqrace/internal/errors"
	"github.com/agbru/sqrace/internal/progress"
)

// SequentialRunner processes units strictly one at a time in input order.
// Total wall-clock time is the sum of all unit delays, which is the point:
// it is the baseline the concurrent strategies are contrasted against.
type SequentialRunner struct{}

// NewSequentialRunner creates a sequential runner.
func NewSequentialRunner() *SequentialRunner { return &SequentialRunner{} }

// Name returns the strategy identifier.
func (*SequentialRunner) Name() string { return "Sequential" }

// Run executes units in input order. The result slice is position-preserving:
// result[i] corresponds to input i. The first unit error aborts the remaining
// sequence (fail-fast); the units completed so far are returned alongside
// the error.
func (*SequentialRunner) Run(ctx context.Context, count int, unit UnitFunc, report progress.ProgressCallback) ([]uint64, error) {
	if report == nil {
		report = progress.NopCallback
	}
	results := make([]uint64, 0, count)
	for i := 0; i < count; i++ {
		v, err := unit(ctx, i)
		if err != nil {
			return results, apperrors.WrapError(err, "unit %d", i)
		}
		results = append(results, v)
		report(i+1, count)
	}
	return results, nil
}
