package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	apperrors "github.com/agbru/sqrace/internal/errors"
	"github.com/agbru/sqrace/internal/orchestration"
	"github.com/agbru/sqrace/internal/ui"
)

func init() {
	// Deterministic output for string assertions.
	ui.SetTheme(ui.NoColorTheme)
}

func TestPresentComparisonTable(t *testing.T) {
	var buf bytes.Buffer
	results := []orchestration.RunResult{
		{Name: "Concurrent", Values: []uint64{0, 1, 4, 9}, Duration: 210 * time.Millisecond},
		{Name: "Sequential", Values: []uint64{0, 1, 4, 9}, Duration: 810 * time.Millisecond},
		{Name: "Pooled (10 workers)", Err: errors.New("boom"), Duration: 100 * time.Millisecond},
	}

	CLIResultPresenter{}.PresentComparisonTable(results, &buf)
	out := buf.String()

	for _, want := range []string{"Comparison Summary", "Runner", "Duration", "Throughput", "Status",
		"Concurrent", "Sequential", "Pooled (10 workers)", "Success", "Failure (boom)", "210ms"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
}

func TestPresentComparisonTable_ZeroDuration(t *testing.T) {
	var buf bytes.Buffer
	results := []orchestration.RunResult{
		{Name: "Sequential", Values: []uint64{}, Duration: 0},
	}

	CLIResultPresenter{}.PresentComparisonTable(results, &buf)

	if !strings.Contains(buf.String(), "< 1µs") {
		t.Errorf("zero duration should render as < 1µs, got:\n%s", buf.String())
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("abc", 3); got != "abc   " {
		t.Errorf("padRight(abc, 3) = %q", got)
	}
	if got := padRight("abc", 0); got != "abc" {
		t.Errorf("padRight(abc, 0) = %q", got)
	}
	if got := padRight("abc", -2); got != "abc" {
		t.Errorf("padRight(abc, -2) = %q", got)
	}
}

func TestHandleError_ExitCodes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"timeout", context.DeadlineExceeded, apperrors.ExitErrorTimeout},
		{"canceled", context.Canceled, apperrors.ExitErrorCanceled},
		{"generic", errors.New("boom"), apperrors.ExitErrorGeneric},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			got := CLIResultPresenter{}.HandleError(tt.err, time.Second, &buf)
			if got != tt.want {
				t.Errorf("HandleError(%v) = %d, want %d", tt.err, got, tt.want)
			}
			if buf.Len() == 0 {
				t.Error("error handling should produce output")
			}
		})
	}
}

func TestFormatQuietResult(t *testing.T) {
	ok := FormatQuietResult(orchestration.RunResult{Name: "Sequential", Duration: 10 * time.Second})
	if ok != "Sequential\t10s\tok\n" {
		t.Errorf("quiet line = %q", ok)
	}
	failed := FormatQuietResult(orchestration.RunResult{Name: "Concurrent", Duration: time.Second, Err: errors.New("boom")})
	if !strings.HasSuffix(failed, "\terror\n") {
		t.Errorf("failed quiet line = %q", failed)
	}
}

func TestDisplayQuietResult(t *testing.T) {
	var buf bytes.Buffer
	DisplayQuietResult(&buf, []orchestration.RunResult{
		{Name: "Sequential", Duration: time.Second},
		{Name: "Concurrent", Duration: 200 * time.Millisecond},
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), buf.String())
	}
}
