package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/sqrace/internal/config"
	"github.com/agbru/sqrace/internal/format"
	"github.com/agbru/sqrace/internal/orchestration"
	"github.com/agbru/sqrace/internal/ui"
	"github.com/agbru/sqrace/internal/workload"
)

// PrintExecutionConfig displays the current execution configuration to the user.
// It shows the workload size, per-unit delay, timeout, and environment details.
//
// Parameters:
//   - cfg: The application configuration.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Squaring %s%d%s units with a per-unit delay of %s%s%s and a timeout of %s%s%s.\n",
		ui.ColorPrimary(), cfg.Count, ui.ColorReset(),
		ui.ColorWarning(), cfg.Delay, ui.ColorReset(),
		ui.ColorWarning(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorInfo(), runtime.NumCPU(), ui.ColorReset(), ui.ColorInfo(), runtime.Version(), ui.ColorReset())
}

// PrintExecutionMode displays the execution mode (single runner vs comparison).
//
// Parameters:
//   - runners: The slice of runners that will be executed.
//   - out: The writer for standard output.
func PrintExecutionMode(runners []workload.Runner, out io.Writer) {
	var modeDesc string
	if len(runners) > 1 {
		modeDesc = "Comparison of all runner strategies"
	} else {
		modeDesc = fmt.Sprintf("Single run with the %s%s%s strategy",
			ui.ColorSuccess(), runners[0].Name(), ui.ColorReset())
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}

// FormatQuietResult formats a single run outcome as one machine-friendly line.
//
// Parameters:
//   - res: The run result to format.
//
// Returns:
//   - string: "<name>\t<duration>\t<status>" with a trailing newline.
func FormatQuietResult(res orchestration.RunResult) string {
	status := "ok"
	if res.Err != nil {
		status = "error"
	}
	return fmt.Sprintf("%s\t%s\t%s\n", res.Name, format.FormatExecutionDuration(res.Duration), status)
}

// DisplayQuietResult writes one line per run, without colors or decoration.
// Intended for scripting, where the comparison table would be noise.
func DisplayQuietResult(out io.Writer, results []orchestration.RunResult) {
	for _, res := range results {
		fmt.Fprint(out, FormatQuietResult(res))
	}
}
