package orchestration

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	apperrors "github.com/agbru/sqrace/internal/errors"
	"github.com/agbru/sqrace/internal/metrics"
	"github.com/agbru/sqrace/internal/progress"
	"github.com/agbru/sqrace/internal/workload"
)

// recordingReporter counts the updates it receives.
type recordingReporter struct {
	mu      sync.Mutex
	updates []progress.ProgressUpdate
}

func (r *recordingReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, _ int, _ io.Writer) {
	defer wg.Done()
	for u := range progressChan {
		r.mu.Lock()
		r.updates = append(r.updates, u)
		r.mu.Unlock()
	}
}

// tablePresenter records that the table was presented.
type tablePresenter struct {
	presented bool
}

func (p *tablePresenter) PresentComparisonTable(results []RunResult, out io.Writer) {
	p.presented = true
}

type codeErrorHandler struct{ code int }

func (h codeErrorHandler) HandleError(error, time.Duration, io.Writer) int { return h.code }

func TestExecuteRuns_AllRunners(t *testing.T) {
	factory := workload.NewFactory(4)
	reporter := &recordingReporter{}

	results := ExecuteRuns(context.Background(), factory.GetAll(),
		RunSpec{Count: 10, Delay: time.Millisecond}, reporter, metrics.New(), io.Discard)

	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}
	for _, res := range results {
		if res.Err != nil {
			t.Errorf("%s returned error: %v", res.Name, res.Err)
		}
		if len(res.Values) != 10 {
			t.Errorf("%s produced %d values, want 10", res.Name, len(res.Values))
		}
		if res.Duration <= 0 {
			t.Errorf("%s has non-positive duration", res.Name)
		}
	}

	// Every runner reports each retirement exactly once.
	if len(reporter.updates) != 30 {
		t.Errorf("received %d progress updates, want 30", len(reporter.updates))
	}
}

func TestExecuteRuns_EmptyWorkload(t *testing.T) {
	factory := workload.NewFactory(4)

	reporter := ProgressReporterFunc(func(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, _ int, _ io.Writer) {
		defer wg.Done()
		DrainChannel(progressChan)
	})

	results := ExecuteRuns(context.Background(), factory.GetAll(),
		RunSpec{Count: 0, Delay: time.Hour}, reporter, nil, io.Discard)

	for _, res := range results {
		if res.Err != nil {
			t.Errorf("%s returned error for empty workload: %v", res.Name, res.Err)
		}
		if len(res.Values) != 0 {
			t.Errorf("%s produced %d values for empty workload, want 0", res.Name, len(res.Values))
		}
	}
}

func TestExecuteRuns_Timeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	results := ExecuteRuns(ctx, []workload.Runner{workload.NewSequentialRunner()},
		RunSpec{Count: 100, Delay: 50 * time.Millisecond}, NullProgressReporter{}, nil, io.Discard)

	if len(results) != 1 {
		t.Fatalf("len(results) = %d, want 1", len(results))
	}
	if !apperrors.IsContextError(results[0].Err) {
		t.Errorf("expected a context error, got %v", results[0].Err)
	}
}

func TestGetRunnersToRun(t *testing.T) {
	factory := workload.NewFactory(4)

	if got := GetRunnersToRun(workload.StrategyAll, factory); len(got) != 3 {
		t.Errorf("all strategy should return 3 runners, got %d", len(got))
	}
	got := GetRunnersToRun(workload.StrategySequential, factory)
	if len(got) != 1 || got[0].Name() != "Sequential" {
		t.Errorf("sequential strategy should return the sequential runner, got %v", got)
	}
}

func TestAnalyzeComparisonResults_Success(t *testing.T) {
	var buf bytes.Buffer
	presenter := &tablePresenter{}

	results := []RunResult{
		{Name: "Sequential", Values: []uint64{0, 1, 4}, Duration: 600 * time.Millisecond},
		{Name: "Concurrent", Values: []uint64{4, 0, 1}, Duration: 200 * time.Millisecond},
	}

	code := AnalyzeComparisonResults(results, presenter, codeErrorHandler{code: 1}, &buf)

	if code != apperrors.ExitSuccess {
		t.Errorf("exit code = %d, want success", code)
	}
	if !presenter.presented {
		t.Error("comparison table should be presented")
	}
	if !strings.Contains(buf.String(), "Success") {
		t.Errorf("output should report success, got: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "3.0x") {
		t.Errorf("output should report the 3.0x speedup, got: %s", buf.String())
	}
}

func TestAnalyzeComparisonResults_Mismatch(t *testing.T) {
	var buf bytes.Buffer

	results := []RunResult{
		{Name: "Sequential", Values: []uint64{0, 1, 4}, Duration: time.Second},
		{Name: "Concurrent", Values: []uint64{0, 1, 5}, Duration: 200 * time.Millisecond},
	}

	code := AnalyzeComparisonResults(results, &tablePresenter{}, codeErrorHandler{code: 1}, &buf)

	if code != apperrors.ExitErrorMismatch {
		t.Errorf("exit code = %d, want %d", code, apperrors.ExitErrorMismatch)
	}
	if !strings.Contains(buf.String(), "inconsistency") {
		t.Errorf("output should report the inconsistency, got: %s", buf.String())
	}
}

func TestAnalyzeComparisonResults_AllFailed(t *testing.T) {
	var buf bytes.Buffer

	results := []RunResult{
		{Name: "Sequential", Err: errors.New("boom"), Duration: time.Second},
	}

	code := AnalyzeComparisonResults(results, &tablePresenter{}, codeErrorHandler{code: 42}, &buf)

	if code != 42 {
		t.Errorf("exit code = %d, want the error handler's code", code)
	}
	if !strings.Contains(buf.String(), "Failure") {
		t.Errorf("output should report failure, got: %s", buf.String())
	}
}

func TestAnalyzeComparisonResults_SortsByDuration(t *testing.T) {
	results := []RunResult{
		{Name: "Slow", Values: []uint64{0}, Duration: time.Second},
		{Name: "Failed", Err: errors.New("boom"), Duration: time.Millisecond},
		{Name: "Fast", Values: []uint64{0}, Duration: 100 * time.Millisecond},
	}

	AnalyzeComparisonResults(results, &tablePresenter{}, codeErrorHandler{code: 1}, io.Discard)

	if results[0].Name != "Fast" || results[1].Name != "Slow" || results[2].Name != "Failed" {
		t.Errorf("results should be sorted success-first then by duration, got %s, %s, %s",
			results[0].Name, results[1].Name, results[2].Name)
	}
}
