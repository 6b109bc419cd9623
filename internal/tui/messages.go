package tui

import (
	"time"

	"github.com/agbru/sqrace/internal/orchestration"
)

// ProgressMsg carries an aggregated progress snapshot for one runner.
type ProgressMsg struct {
	RunnerIndex int
	Completed   int
	Total       int
	Fraction    float64
	Throughput  float64
	ETA         time.Duration
}

// ProgressDoneMsg signals that a runner's progress channel has closed.
type ProgressDoneMsg struct {
	RunnerIndex int
}

// ComparisonResultsMsg carries the analyzed run results for display.
type ComparisonResultsMsg struct {
	Results []orchestration.RunResult
}

// ErrorMsg carries a terminal error from the analysis phase.
type ErrorMsg struct {
	Err      error
	Duration time.Duration
}

// RunsCompleteMsg signals that the orchestration has finished.
// Generation guards against stale messages after a restart.
type RunsCompleteMsg struct {
	ExitCode   int
	Generation uint64
}

// ContextCancelledMsg signals that the session context was cancelled.
type ContextCancelledMsg struct {
	Err        error
	Generation uint64
}

// TickMsg drives the periodic refresh of the elapsed time and system stats.
type TickMsg time.Time

// SysStatsMsg carries a system monitoring sample.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
}
