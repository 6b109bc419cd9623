package orchestration

import (
	"time"

	"github.com/agbru/sqrace/internal/format"
	"github.com/agbru/sqrace/internal/progress"
)

// ProgressAggregator turns raw unit-count updates into display metrics.
// It wraps format.CountProgress and provides a higher-level API for
// consuming progress updates from a channel. Both CLI and TUI use this to
// avoid duplicating the aggregation setup and update logic.
type ProgressAggregator struct {
	state *format.CountProgress
	total int
}

// NewProgressAggregator creates a new aggregator for the given unit total.
// Returns nil for a negative total.
func NewProgressAggregator(total int) *ProgressAggregator {
	if total < 0 {
		return nil
	}
	return &ProgressAggregator{
		state: format.NewCountProgress(total),
		total: total,
	}
}

// AggregatedProgress holds the result of processing a single progress update.
type AggregatedProgress struct {
	// Completed is the number of units retired so far.
	Completed int
	// Total is the fixed unit count of the run.
	Total int
	// Fraction is the completion fraction (0.0 to 1.0).
	Fraction float64
	// Throughput is the average completion rate in units per second.
	Throughput float64
	// Elapsed is the wall-clock time since the run started.
	Elapsed time.Duration
	// ETA is the estimated time remaining based on the smoothed rate.
	ETA time.Duration
}

// Update processes a single progress update and returns the aggregated result.
func (a *ProgressAggregator) Update(update progress.ProgressUpdate) AggregatedProgress {
	a.state.Update(update.Completed)
	return a.Snapshot()
}

// Snapshot returns the current aggregated view without applying an update.
// Useful for periodic refresh between updates (e.g., CLI ticker).
func (a *ProgressAggregator) Snapshot() AggregatedProgress {
	return AggregatedProgress{
		Completed:  a.state.Completed(),
		Total:      a.state.Total(),
		Fraction:   a.state.Fraction(),
		Throughput: a.state.Throughput(),
		Elapsed:    a.state.Elapsed(),
		ETA:        a.state.ETA(),
	}
}

// Total returns the unit total being tracked.
func (a *ProgressAggregator) Total() int { return a.total }

// DrainChannel reads all updates from the channel without processing.
// Use this when updates should be discarded.
func DrainChannel(progressChan <-chan progress.ProgressUpdate) {
	for range progressChan {
	}
}
