package config

import (
	"flag"
	"fmt"
	"io"
	"slices"
	"time"

	apperrors "github.com/agbru/sqrace/internal/errors"
	"github.com/agbru/sqrace/internal/workload"
)

// EnvPrefix is prepended to every environment variable the application reads.
const EnvPrefix = "SQRACE_"

// DefaultTimeout bounds a full invocation (all runs combined).
const DefaultTimeout = 5 * time.Minute

// AppConfig holds the complete runtime configuration, resolved from CLI
// flags, environment variables, and defaults (in that priority order).
type AppConfig struct {
	// Count is the number of workload units N; inputs are 0..N-1.
	Count int
	// Delay is the artificial per-unit delay.
	Delay time.Duration
	// Runner selects the strategy: sequential, concurrent, pooled, or all.
	Runner string
	// Workers is the in-flight bound for the pooled runner.
	Workers int
	// Timeout bounds the whole invocation.
	Timeout time.Duration
	// Quiet suppresses banners and progress display; only the summary is printed.
	Quiet bool
	// Verbose adds environment and system resource details to the output.
	Verbose bool
	// TUI enables the interactive progress dashboard.
	TUI bool
	// MetricsAddr, when non-empty, serves Prometheus metrics on this address.
	MetricsAddr string
	// NoColor disables ANSI color output.
	NoColor bool
	// Completion requests a shell completion script (bash, zsh, fish).
	Completion string
}

// ParseConfig parses command-line arguments into an AppConfig, applying
// environment overrides for flags that were not set explicitly and
// validating the result.
//
// Parameters:
//   - programName: The binary name used in usage output.
//   - args: The command-line arguments (without the program name).
//   - errWriter: The writer for usage and parse errors.
//   - availableRunners: The accepted values for the --runner flag.
//
// Returns:
//   - AppConfig: The resolved configuration.
//   - error: flag.ErrHelp when help was requested, or a ConfigError.
func ParseConfig(programName string, args []string, errWriter io.Writer, availableRunners []string) (AppConfig, error) {
	cfg := AppConfig{}
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	fs.IntVar(&cfg.Count, "n", workload.DefaultCount, "number of workload units (inputs 0..n-1)")
	fs.IntVar(&cfg.Count, "count", workload.DefaultCount, "alias for -n")
	fs.DurationVar(&cfg.Delay, "delay", workload.DefaultDelay, "artificial delay per unit")
	fs.StringVar(&cfg.Runner, "runner", workload.StrategyAll, fmt.Sprintf("strategy to run (%v)", availableRunners))
	fs.IntVar(&cfg.Workers, "workers", workload.DefaultWorkers, "in-flight bound for the pooled runner")
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "overall timeout for the invocation")
	fs.BoolVar(&cfg.Quiet, "q", false, "suppress progress display and banners")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "alias for -q")
	fs.BoolVar(&cfg.Verbose, "v", false, "verbose output (environment and resource details)")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "alias for -v")
	fs.BoolVar(&cfg.TUI, "tui", false, "interactive progress dashboard")
	fs.StringVar(&cfg.MetricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (e.g. :9090)")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "disable ANSI colors")
	fs.StringVar(&cfg.Completion, "completion", "", "print a shell completion script (bash, zsh, fish)")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	applyEnvOverrides(&cfg, fs)

	if err := cfg.Validate(availableRunners); err != nil {
		fmt.Fprintf(errWriter, "%v\n", err)
		return AppConfig{}, apperrors.ConfigError{Message: err.Error()}
	}
	return cfg, nil
}

// Validate checks the configuration for invalid values, returning a
// ValidationError naming the first offending field.
func (c AppConfig) Validate(availableRunners []string) error {
	if c.Count < 0 {
		return apperrors.ValidationError{Field: "count", Message: fmt.Sprintf("must be >= 0, got %d", c.Count)}
	}
	if c.Delay < 0 {
		return apperrors.ValidationError{Field: "delay", Message: fmt.Sprintf("must be >= 0, got %s", c.Delay)}
	}
	if c.Workers <= 0 {
		return apperrors.ValidationError{Field: "workers", Message: fmt.Sprintf("must be > 0, got %d", c.Workers)}
	}
	if c.Timeout <= 0 {
		return apperrors.ValidationError{Field: "timeout", Message: fmt.Sprintf("must be > 0, got %s", c.Timeout)}
	}
	if len(availableRunners) > 0 && !slices.Contains(availableRunners, c.Runner) {
		return apperrors.ValidationError{Field: "runner", Message: fmt.Sprintf("unknown runner %q, expected one of %v", c.Runner, availableRunners)}
	}
	return nil
}
