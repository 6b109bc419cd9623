package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/sqrace/internal/format"
	"github.com/agbru/sqrace/internal/orchestration"
	"github.com/agbru/sqrace/internal/progress"
)

const (
	// ProgressRefreshRate defines the refresh frequency of the progress bar.
	// Matches the default per-unit delay so the display advances roughly once
	// per retired unit in the sequential run.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// Spinner is an interface that abstracts the behavior of a terminal spinner.
// This allows for the decoupling of the `DisplayProgress` function from a
// specific spinner implementation, facilitating easier testing and maintenance.
// It defines the essential controls for a spinner: starting, stopping, and
// updating its status message.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	//
	// Parameters:
	//   - suffix: The text string to display.
	UpdateSuffix(suffix string)
}

// realSpinner is a wrapper for the `spinner.Spinner` that implements the
// `Spinner` interface. This adapter allows the `spinner` library to be used
// within the application's CLI framework.
type realSpinner struct {
	s *spinner.Spinner
}

// Start begins the spinner animation.
func (rs *realSpinner) Start() {
	rs.s.Start()
}

// Stop halts the spinner animation.
func (rs *realSpinner) Stop() {
	rs.s.Stop()
}

// UpdateSuffix sets the text that is displayed after the spinner.
//
// Parameters:
//   - suffix: The string to display.
func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Suffix = suffix
}

var newSpinner = func(options ...spinner.Option) Spinner {
	// Using the same interval as ProgressRefreshRate to synchronize
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// DisplayProgress renders a spinner with a live progress bar, unit counter,
// throughput, and ETA while a run is in flight. It consumes updates from
// progressChan until the channel is closed and signals wg when done.
//
// A ticker refreshes the display between updates so the ETA keeps counting
// down even when no unit has retired since the last event.
//
// Parameters:
//   - wg: The WaitGroup signalled on completion.
//   - progressChan: The channel of unit-count updates for the current run.
//   - total: The number of units in the run.
//   - out: The writer receiving the spinner output.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, total int, out io.Writer) {
	defer wg.Done()

	aggregator := orchestration.NewProgressAggregator(total)
	if aggregator == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	sp := newSpinner(spinner.WithWriter(out))
	sp.UpdateSuffix(renderProgressLine(aggregator.Snapshot()))
	sp.Start()
	defer sp.Stop()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				sp.UpdateSuffix(renderProgressLine(aggregator.Snapshot()))
				return
			}
			sp.UpdateSuffix(renderProgressLine(aggregator.Update(update)))
		case <-ticker.C:
			sp.UpdateSuffix(renderProgressLine(aggregator.Snapshot()))
		}
	}
}

// renderProgressLine composes the spinner suffix from an aggregated snapshot.
func renderProgressLine(ap orchestration.AggregatedProgress) string {
	return fmt.Sprintf(" %s | %s | %s elapsed",
		format.FormatProgressBarWithETA(ap.Fraction, ap.ETA, ProgressBarWidth),
		format.FormatUnitCount(ap.Completed, ap.Total, ap.Throughput),
		ap.Elapsed.Truncate(100*time.Millisecond))
}
