package workload

import (
	"context"
	"time"
)

// DefaultDelay is the artificial per-unit delay used by the demonstration.
const DefaultDelay = 200 * time.Millisecond

// DefaultCount is the default number of workload units.
const DefaultCount = 50

// UnitFunc computes one workload unit: given the input value, it returns
// the unit's result. Implementations are expected to honor context
// cancellation during any internal waiting.
type UnitFunc func(ctx context.Context, input int) (uint64, error)

// SquareUnit returns the canonical workload unit: wait the given delay,
// then square the input. The wait is interrupted by context cancellation.
func SquareUnit(delay time.Duration) UnitFunc {
	return func(ctx context.Context, input int) (uint64, error) {
		if err := sleepContext(ctx, delay); err != nil {
			return 0, err
		}
		v := uint64(input)
		return v * v, nil
	}
}

// sleepContext blocks for d or until the context is done, whichever comes
// first. Returns the context error on early wakeup.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
