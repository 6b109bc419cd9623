package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/signal"
	"syscall"

	"github.com/agbru/sqrace/internal/cli"
	apperrors "github.com/agbru/sqrace/internal/errors"
	"github.com/agbru/sqrace/internal/format"
	"github.com/agbru/sqrace/internal/logging"
	"github.com/agbru/sqrace/internal/metrics"
	"github.com/agbru/sqrace/internal/orchestration"
	"github.com/agbru/sqrace/internal/server"
	"github.com/agbru/sqrace/internal/sysmon"
	"github.com/agbru/sqrace/internal/tui"
)

// runWorkload orchestrates the CLI execution: lifecycle setup, the runs
// themselves, and the final analysis.
func (a *Application) runWorkload(ctx context.Context, out io.Writer) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	runMetrics := metrics.New()
	a.serveMetricsIfEnabled(ctx, runMetrics)

	runnersToRun := orchestration.GetRunnersToRun(a.Config.Runner, a.Factory)

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(runnersToRun, out)
	}

	// Choose progress reporter based on quiet mode
	var progressReporter orchestration.ProgressReporter
	progressOut := out
	if a.Config.Quiet {
		progressOut = io.Discard
		progressReporter = orchestration.NullProgressReporter{}
	} else {
		progressReporter = cli.CLIProgressReporter{}
	}

	spec := orchestration.RunSpec{Count: a.Config.Count, Delay: a.Config.Delay}
	if a.Config.Verbose {
		spec.Logger = logging.NewDefaultLogger()
	}
	results := orchestration.ExecuteRuns(ctx, runnersToRun, spec, progressReporter, runMetrics, progressOut)

	if a.Config.Quiet {
		cli.DisplayQuietResult(out, results)
		return quietExitCode(results)
	}

	exitCode := orchestration.AnalyzeComparisonResults(results, cli.CLIResultPresenter{}, cli.CLIResultPresenter{}, out)

	if a.Config.Verbose {
		a.printDiagnostics(out)
	}

	return exitCode
}

// runTUI launches the interactive TUI.
func (a *Application) runTUI(ctx context.Context) int {
	ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
	defer cancelTimeout()
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	runMetrics := metrics.New()
	a.serveMetricsIfEnabled(ctx, runMetrics)

	runnersToRun := orchestration.GetRunnersToRun(a.Config.Runner, a.Factory)
	return tui.Run(ctx, runnersToRun, a.Config, Version, runMetrics)
}

// serveMetricsIfEnabled starts the Prometheus endpoint in the background when
// --metrics-addr is set. The server stops with the run context.
func (a *Application) serveMetricsIfEnabled(ctx context.Context, runMetrics *metrics.RunMetrics) {
	if a.Config.MetricsAddr == "" {
		return
	}
	logger := logging.NewLogger(a.ErrWriter, "metrics")
	srvMetrics := server.NewMetrics(runMetrics.Registry())
	go func() {
		if err := server.Serve(ctx, a.Config.MetricsAddr, srvMetrics, logger); err != nil {
			logger.Error("metrics server stopped", err,
				logging.String("addr", a.Config.MetricsAddr))
		}
	}()
}

// quietExitCode derives the exit code from raw results without the analysis
// report: quiet mode prints one line per run and nothing else. Interrupts
// and deadline expiry map to their distinct codes, as in the non-quiet path.
func quietExitCode(results []orchestration.RunResult) int {
	for _, res := range results {
		if res.Err != nil {
			switch {
			case errors.Is(res.Err, context.Canceled):
				return apperrors.ExitErrorCanceled
			case errors.Is(res.Err, context.DeadlineExceeded):
				return apperrors.ExitErrorTimeout
			}
			return apperrors.ExitErrorGeneric
		}
	}
	return apperrors.ExitSuccess
}

// printDiagnostics writes process and system statistics after a verbose run.
func (a *Application) printDiagnostics(out io.Writer) {
	snap := metrics.NewMemoryCollector().Snapshot()
	fmt.Fprintf(out, "\n--- Diagnostics ---\n")
	fmt.Fprintf(out, "Heap: %s in use, %s from OS, %d objects\n",
		format.FormatBytes(snap.HeapAlloc), format.FormatBytes(snap.HeapSys), snap.HeapObjects)
	fmt.Fprintf(out, "GC: %d cycles, %.2fms total pause\n", snap.NumGC, float64(snap.PauseTotalNs)/1e6)
	fmt.Fprintf(out, "Goroutines: %d\n", snap.Goroutines)

	sys := sysmon.Sample()
	fmt.Fprintf(out, "System: CPU %.1f%%, memory %.1f%%\n", sys.CPUPercent, sys.MemPercent)
}
