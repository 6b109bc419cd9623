package orchestration

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/agbru/sqrace/internal/errors"
	"github.com/agbru/sqrace/internal/format"
	"github.com/agbru/sqrace/internal/logging"
	"github.com/agbru/sqrace/internal/metrics"
	"github.com/agbru/sqrace/internal/progress"
	"github.com/agbru/sqrace/internal/workload"
)

// tracerName identifies the orchestration spans.
const tracerName = "github.com/agbru/sqrace/internal/orchestration"

// ProgressBufferSlack pads the progress channel beyond the unit count so a
// slow display consumer never blocks a runner's retirement path.
const ProgressBufferSlack = 8

// RunSpec carries the workload parameters for a set of runs.
type RunSpec struct {
	// Count is the number of workload units.
	Count int
	// Delay is the artificial per-unit delay.
	Delay time.Duration
	// Logger, when non-nil, receives a debug entry per progress update.
	Logger logging.Logger
}

// ExecuteRuns executes each runner in turn against the same workload and
// collects the outcomes. Runs are deliberately serial so their wall-clock
// durations can be compared; the concurrency under measurement lives inside
// each runner.
//
// Parameters:
//   - ctx: The context for cancellation and deadlines, shared by all runs.
//   - runners: The runner strategies to execute, in order.
//   - spec: The workload parameters (unit count, delay).
//   - reporter: The progress reporter (use NullProgressReporter for quiet mode).
//   - runMetrics: Collectors updated per unit and per run; may be nil.
//   - out: The io.Writer for progress display.
//
// Returns:
//   - []RunResult: One result per runner, in execution order.
func ExecuteRuns(ctx context.Context, runners []workload.Runner, spec RunSpec, reporter ProgressReporter, runMetrics *metrics.RunMetrics, out io.Writer) []RunResult {
	tracer := otel.Tracer(tracerName)
	results := make([]RunResult, 0, len(runners))

	for i, runner := range runners {
		runCtx, span := tracer.Start(ctx, "workload.run",
			trace.WithAttributes(
				attribute.String("runner", runner.Name()),
				attribute.Int("units", spec.Count),
			))

		progressChan := make(chan progress.ProgressUpdate, spec.Count+ProgressBufferSlack)
		var displayWg sync.WaitGroup
		displayWg.Add(1)
		go reporter.DisplayProgress(&displayWg, progressChan, spec.Count, out)

		subject := progress.NewProgressSubject()
		subject.Attach(progress.NewChannelObserver(progressChan))
		var debugObserver progress.ProgressObserver = progress.NewNoOpObserver()
		if spec.Logger != nil {
			debugObserver = progress.NewLoggingObserver(spec.Logger)
		}
		subject.Attach(debugObserver)

		runnerIndex := i
		report := func(completed, total int) {
			if runMetrics != nil {
				runMetrics.UnitCompleted(runner.Name())
			}
			subject.Notify(progress.ProgressUpdate{
				RunnerIndex: runnerIndex,
				Completed:   completed,
				Total:       total,
			})
		}

		startTime := time.Now()
		values, err := runner.Run(runCtx, spec.Count, workload.SquareUnit(spec.Delay), report)
		elapsed := time.Since(startTime)

		close(progressChan)
		displayWg.Wait()

		if runMetrics != nil {
			runMetrics.RunFinished(runner.Name(), elapsed, err)
		}
		if err != nil {
			err = classifyRunError(runner.Name(), err, elapsed)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()

		results = append(results, RunResult{
			Name:     runner.Name(),
			Values:   values,
			Duration: elapsed,
			Err:      err,
		})
	}

	return results
}

// classifyRunError maps a raw runner error to the structured error types:
// deadline errors become TimeoutError, everything else is wrapped in a
// RunError. Context sentinels stay reachable through the unwrap chain.
func classifyRunError(name string, err error, elapsed time.Duration) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.TimeoutError{Operation: name, Elapsed: elapsed}
	}
	return apperrors.RunError{Cause: err}
}

// GetRunnersToRun resolves the configured strategy name into the concrete
// runners to execute. "all" selects every strategy in comparison order.
func GetRunnersToRun(strategy string, factory workload.RunnerFactory) []workload.Runner {
	if strategy == workload.StrategyAll {
		return factory.GetAll()
	}
	if runner, ok := factory.Get(strategy); ok {
		return []workload.Runner{runner}
	}
	// Config validation rejects unknown names before this point.
	return factory.GetAll()
}

// AnalyzeComparisonResults processes the results from multiple runs and
// generates a summary report.
//
// It sorts the results by execution time, validates that all successful runs
// produced the same result multiset, displays a comparative table, and
// reports the speedup of the fastest run over the slowest. It handles the
// logic for determining global success or failure based on the individual
// outcomes.
//
// Parameters:
//   - results: The slice of run results to analyze.
//   - presenter: The result presenter for display formatting.
//   - errorHandler: Maps a terminal error to an exit code.
//   - out: The io.Writer for the summary report.
//
// Returns:
//   - int: An exit code indicating success (0) or the type of failure.
func AnalyzeComparisonResults(results []RunResult, presenter ResultPresenter, errorHandler ErrorHandler, out io.Writer) int {
	sort.Slice(results, func(i, j int) bool {
		if (results[i].Err == nil) != (results[j].Err == nil) {
			return results[i].Err == nil
		}
		return results[i].Duration < results[j].Duration
	})

	var firstValid *RunResult
	var firstError error
	successCount := 0

	for i := range results {
		if results[i].Err != nil {
			if firstError == nil {
				firstError = results[i].Err
			}
		} else {
			successCount++
			if firstValid == nil {
				firstValid = &results[i]
			}
		}
	}

	presenter.PresentComparisonTable(results, out)

	if successCount == 0 {
		fmt.Fprintf(out, "\nGlobal Status: Failure. No runner could complete the workload.\n")
		return errorHandler.HandleError(firstError, 0, out)
	}

	reference := sortedValues(firstValid.Values)
	for _, res := range results {
		if res.Err == nil && !slices.Equal(sortedValues(res.Values), reference) {
			fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! An inconsistency was detected between the result sets of the runners.\n")
			return apperrors.ExitErrorMismatch
		}
	}

	fmt.Fprintf(out, "\nGlobal Status: Success. All runners produced the same result multiset.\n")
	if successCount > 1 {
		fastest := results[0]
		slowest := results[successCount-1]
		if fastest.Duration > 0 {
			fmt.Fprintf(out, "Speedup: %.1fx (%s %s vs %s %s)\n",
				float64(slowest.Duration)/float64(fastest.Duration),
				fastest.Name, format.FormatExecutionDuration(fastest.Duration),
				slowest.Name, format.FormatExecutionDuration(slowest.Duration))
		}
	}
	return apperrors.ExitSuccess
}

// sortedValues returns an ascending copy for multiset comparison.
func sortedValues(values []uint64) []uint64 {
	out := append([]uint64(nil), values...)
	slices.Sort(out)
	return out
}
