// Package app wires configuration, orchestration, and presentation into the
// runnable application. It owns mode dispatch (CLI, TUI, completion), the
// execution lifecycle (timeout, signals), and process exit codes.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/agbru/sqrace/internal/cli"
	"github.com/agbru/sqrace/internal/config"
	apperrors "github.com/agbru/sqrace/internal/errors"
	"github.com/agbru/sqrace/internal/ui"
	"github.com/agbru/sqrace/internal/workload"
)

// Application represents the sqrace application instance.
type Application struct {
	Config    config.AppConfig
	Factory   workload.RunnerFactory
	ErrWriter io.Writer
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets a custom RunnerFactory for the application.
func WithFactory(f workload.RunnerFactory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}

	programName := "sqrace"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	// The factory needs the parsed worker count, so validation uses the
	// strategy names of a throwaway default factory.
	availableRunners := workload.NewFactory(workload.DefaultWorkers).List()

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, availableRunners)
	if err != nil {
		return nil, err
	}

	if app.Factory == nil {
		app.Factory = workload.NewFactory(cfg.Workers)
	}

	app.Config = cfg
	return app, nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	switch {
	case a.Config.Verbose:
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case a.Config.Quiet:
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	ui.InitTheme(a.Config.NoColor)

	if a.Config.TUI {
		return a.runTUI(ctx)
	}

	return a.runWorkload(ctx, out)
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	availableRunners := a.Factory.List()
	if err := cli.GenerateCompletion(out, a.Config.Completion, availableRunners); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

// StartupExitCode maps an error from New to a process exit code.
// Configuration and validation failures map to ExitErrorConfig; anything
// else (malformed flags, unexpected parse failures) is a generic error.
func StartupExitCode(err error) int {
	var cfgErr apperrors.ConfigError
	var valErr apperrors.ValidationError
	if errors.As(err, &cfgErr) || errors.As(err, &valErr) {
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitErrorGeneric
}
