package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorTimeout  = 2   // Indicates the operation timed out.
	ExitErrorMismatch = 3   // Indicates a result mismatch between runners.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// RunError encapsulates a workload run error while preserving the original
// cause. This allows for structured error handling and inspection of what
// went wrong during a run.
type RunError struct {
	// Cause is the underlying error that triggered this run error.
	Cause error
}

// Error returns the error message from the underlying cause.
func (e RunError) Error() string { return e.Cause.Error() }

// Unwrap returns the original wrapped error, allowing for error chain
// inspection (e.g., using errors.Is or errors.As).
func (e RunError) Unwrap() error { return e.Cause }

// TimeoutError represents a run timeout. It captures the operation name and
// how long the operation had been running when the deadline fired.
type TimeoutError struct {
	// Operation is the name of the operation that timed out.
	Operation string
	// Elapsed is the running time at the moment of the timeout.
	Elapsed time.Duration
}

// Error returns a formatted message describing the timeout.
func (e TimeoutError) Error() string {
	return fmt.Sprintf("operation %q timed out after %s", e.Operation, e.Elapsed)
}

// Unwrap identifies every TimeoutError as a deadline exceeded, so callers
// can keep using errors.Is(err, context.DeadlineExceeded).
func (e TimeoutError) Unwrap() error { return context.DeadlineExceeded }

// ValidationError represents an input validation failure. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// This allows the wrapped error to be unwrapped with errors.Unwrap() and
// checked with errors.Is() and errors.As().
//
// Parameters:
//   - err: The error to wrap.
//   - format: A format string for the context message.
//   - args: Arguments for the format string.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline
// exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// ColorProvider supplies ANSI color codes for error reporting. It decouples
// this package from the UI theme implementation.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

// HandleRunError reports a failed run to the user and maps the error to an
// exit code. Timeouts and cancellations get dedicated codes so scripts can
// distinguish them from workload failures.
//
// Parameters:
//   - err: The error returned by the run.
//   - elapsed: How long the run had been going when it failed.
//   - out: The writer for the error report.
//   - colors: The color provider for the report.
//
// Returns:
//   - int: The process exit code corresponding to the error class.
func HandleRunError(err error, elapsed time.Duration, out io.Writer, colors ColorProvider) int {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintf(out, "%sRun timed out after %s.%s\n", colors.Red(), elapsed, colors.Reset())
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		fmt.Fprintf(out, "%sRun canceled after %s.%s\n", colors.Yellow(), elapsed, colors.Reset())
		return ExitErrorCanceled
	case err != nil:
		fmt.Fprintf(out, "%sRun failed: %v%s\n", colors.Red(), err, colors.Reset())
		return ExitErrorGeneric
	}
	return ExitSuccess
}
