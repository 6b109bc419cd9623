package app

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"strings"
	"testing"
	"time"

	apperrors "github.com/agbru/sqrace/internal/errors"
	"github.com/agbru/sqrace/internal/orchestration"
)

func TestNew_Defaults(t *testing.T) {
	var errBuf bytes.Buffer
	application, err := New([]string{"sqrace"}, &errBuf)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	if application.Config.Count != 50 {
		t.Errorf("default count = %d, want 50", application.Config.Count)
	}
	if application.Config.Delay != 200*time.Millisecond {
		t.Errorf("default delay = %s, want 200ms", application.Config.Delay)
	}
	if application.Factory == nil {
		t.Fatal("factory should be initialized")
	}
}

func TestNew_InvalidFlag(t *testing.T) {
	var errBuf bytes.Buffer
	_, err := New([]string{"sqrace", "--no-such-flag"}, &errBuf)
	if err == nil {
		t.Fatal("expected an error for an unknown flag")
	}
}

func TestNew_InvalidRunner(t *testing.T) {
	var errBuf bytes.Buffer
	_, err := New([]string{"sqrace", "--runner", "warp"}, &errBuf)
	if err == nil {
		t.Fatal("expected an error for an unknown runner")
	}
	var cfgErr apperrors.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Errorf("expected a ConfigError, got %T", err)
	}
}

func TestRun_Quiet(t *testing.T) {
	var out, errBuf bytes.Buffer
	application, err := New([]string{"sqrace", "-q", "-n", "4", "--delay", "1ms"}, &errBuf)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	code := application.Run(context.Background(), &out)
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, stderr: %s", code, errBuf.String())
	}

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Errorf("quiet mode should print one line per runner, got %d:\n%s", len(lines), out.String())
	}
	for _, line := range lines {
		if !strings.HasSuffix(line, "\tok") {
			t.Errorf("quiet line should end with ok, got %q", line)
		}
	}
}

func TestRun_SingleRunner(t *testing.T) {
	var out, errBuf bytes.Buffer
	application, err := New([]string{"sqrace", "-n", "3", "--delay", "1ms", "--runner", "sequential", "--no-color"}, &errBuf)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	code := application.Run(context.Background(), &out)
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d, output: %s", code, out.String())
	}

	for _, want := range []string{"Execution Configuration", "Single run with the Sequential strategy", "Global Status: Success"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestRun_Completion(t *testing.T) {
	var out, errBuf bytes.Buffer
	application, err := New([]string{"sqrace", "--completion", "bash"}, &errBuf)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	code := application.Run(context.Background(), &out)
	if code != apperrors.ExitSuccess {
		t.Fatalf("exit code = %d", code)
	}
	if !strings.Contains(out.String(), "_sqrace_completions") {
		t.Error("completion output should contain the bash function")
	}
}

func TestRun_Completion_Unsupported(t *testing.T) {
	var out, errBuf bytes.Buffer
	application, err := New([]string{"sqrace", "--completion", "tcsh"}, &errBuf)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	if code := application.Run(context.Background(), &out); code != apperrors.ExitErrorConfig {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorConfig)
	}
	if !strings.Contains(errBuf.String(), "unsupported shell") {
		t.Errorf("stderr should report the unsupported shell, got %q", errBuf.String())
	}
}

func TestQuietExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, apperrors.ExitSuccess},
		{"timeout", context.DeadlineExceeded, apperrors.ExitErrorTimeout},
		{"classified timeout", apperrors.TimeoutError{Operation: "Sequential", Elapsed: time.Second}, apperrors.ExitErrorTimeout},
		{"canceled", context.Canceled, apperrors.ExitErrorCanceled},
		{"wrapped canceled", apperrors.RunError{Cause: context.Canceled}, apperrors.ExitErrorCanceled},
		{"generic", errors.New("boom"), apperrors.ExitErrorGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := []orchestration.RunResult{{Name: "Sequential", Err: tt.err}}
			if got := quietExitCode(results); got != tt.want {
				t.Errorf("quietExitCode = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestStartupExitCode(t *testing.T) {
	cfgErr := apperrors.ConfigError{Message: "unknown runner"}
	if got := StartupExitCode(cfgErr); got != apperrors.ExitErrorConfig {
		t.Errorf("ConfigError exit code = %d, want %d", got, apperrors.ExitErrorConfig)
	}

	valErr := apperrors.ValidationError{Field: "count", Message: "must be >= 0"}
	if got := StartupExitCode(valErr); got != apperrors.ExitErrorConfig {
		t.Errorf("ValidationError exit code = %d, want %d", got, apperrors.ExitErrorConfig)
	}

	if got := StartupExitCode(errors.New("flag provided but not defined")); got != apperrors.ExitErrorGeneric {
		t.Errorf("generic exit code = %d, want %d", got, apperrors.ExitErrorGeneric)
	}
}

func TestStartupExitCode_FromNew(t *testing.T) {
	var errBuf bytes.Buffer
	_, err := New([]string{"sqrace", "--runner", "warp"}, &errBuf)
	if err == nil {
		t.Fatal("expected an error for an unknown runner")
	}
	if got := StartupExitCode(err); got != apperrors.ExitErrorConfig {
		t.Errorf("unknown runner exit code = %d, want %d", got, apperrors.ExitErrorConfig)
	}
}

func TestHasVersionFlag(t *testing.T) {
	if !HasVersionFlag([]string{"-V"}) || !HasVersionFlag([]string{"--version"}) {
		t.Error("version flags should be detected")
	}
	if HasVersionFlag([]string{"-n", "10"}) {
		t.Error("unrelated flags should not trigger version output")
	}
	if HasVersionFlag([]string{"--", "--version"}) {
		t.Error("arguments after -- are not flags")
	}
}

func TestPrintVersion(t *testing.T) {
	var buf bytes.Buffer
	PrintVersion(&buf)
	if !strings.Contains(buf.String(), "sqrace") {
		t.Errorf("version banner = %q", buf.String())
	}
}

func TestIsHelpError(t *testing.T) {
	if !IsHelpError(flag.ErrHelp) {
		t.Error("flag.ErrHelp should be a help error")
	}
	if IsHelpError(errors.New("boom")) {
		t.Error("arbitrary errors are not help errors")
	}
}
