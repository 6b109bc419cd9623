package workload

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestSequentialRunner_OrderPreserved(t *testing.T) {
	runner := NewSequentialRunner()

	results, err := runner.Run(context.Background(), 10, SquareUnit(0), nil)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(results) != 10 {
		t.Fatalf("len(results) = %d, want 10", len(results))
	}
	for i, v := range results {
		want := uint64(i) * uint64(i)
		if v != want {
			t.Errorf("results[%d] = %d, want %d", i, v, want)
		}
	}
}

func TestSequentialRunner_EmptyRun(t *testing.T) {
	runner := NewSequentialRunner()

	results, err := runner.Run(context.Background(), 0, SquareUnit(time.Hour), nil)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("len(results) = %d, want 0", len(results))
	}
}

func TestSequentialRunner_ProgressAdvancesPerUnit(t *testing.T) {
	runner := NewSequentialRunner()

	var reported []int
	_, err := runner.Run(context.Background(), 5, SquareUnit(0), func(completed, total int) {
		if total != 5 {
			t.Errorf("total = %d, want 5", total)
		}
		reported = append(reported, completed)
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	want := []int{1, 2, 3, 4, 5}
	if len(reported) != len(want) {
		t.Fatalf("got %d progress reports, want %d", len(reported), len(want))
	}
	for i := range want {
		if reported[i] != want[i] {
			t.Errorf("report[%d] = %d, want %d", i, reported[i], want[i])
		}
	}
}

func TestSequentialRunner_FailFast(t *testing.T) {
	runner := NewSequentialRunner()
	unitErr := errors.New("unit exploded")
	calls := 0
	unit := func(ctx context.Context, input int) (uint64, error) {
		calls++
		if input == 3 {
			return 0, unitErr
		}
		return uint64(input) * uint64(input), nil
	}

	results, err := runner.Run(context.Background(), 10, unit, nil)

	if !errors.Is(err, unitErr) {
		t.Fatalf("Run error = %v, want wrapped unit error", err)
	}
	if calls != 4 {
		t.Errorf("unit called %d times, want 4 (abort after first failure)", calls)
	}
	if len(results) != 3 {
		t.Errorf("len(results) = %d, want 3 completed units before the failure", len(results))
	}
}

func TestSequentialRunner_Cancellation(t *testing.T) {
	runner := NewSequentialRunner()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Run(ctx, 5, SquareUnit(time.Second), nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run error = %v, want context.Canceled", err)
	}
}
