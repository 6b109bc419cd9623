package format

import (
	"fmt"
	"strings"
	"time"
)

// etaSmoothingFactor controls the exponential smoothing of the completion
// rate used for ETA estimation. Higher values react faster to rate changes
// at the cost of a jumpier estimate.
const etaSmoothingFactor = 0.3

// CountProgress tracks completed workload units out of a fixed total and
// derives display metrics from them: completion fraction, elapsed time,
// throughput, and a smoothed ETA.
//
// The counter is monotonic: updates never move it backwards and it is
// clamped to the total. A single display goroutine owns the state, so no
// locking is performed.
type CountProgress struct {
	completed  int
	total      int
	startTime  time.Time
	lastTime   time.Time
	lastCount  int
	unitsRate  float64 // smoothed units per second
}

// NewCountProgress creates a progress state for the given total unit count.
// A zero or negative total yields a state that reports immediate completion,
// matching the 0/0 contract for empty runs.
func NewCountProgress(total int) *CountProgress {
	now := time.Now()
	if total < 0 {
		total = 0
	}
	return &CountProgress{
		total:     total,
		startTime: now,
		lastTime:  now,
	}
}

// Update records the current completed-unit count and refreshes the smoothed
// completion rate. Counts below the current value or above the total are
// clamped.
func (p *CountProgress) Update(completed int) {
	if completed < p.completed {
		completed = p.completed
	}
	if completed > p.total {
		completed = p.total
	}

	now := time.Now()
	dt := now.Sub(p.lastTime).Seconds()
	if dt > 0 && completed > p.lastCount {
		instant := float64(completed-p.lastCount) / dt
		if p.unitsRate == 0 {
			p.unitsRate = instant
		} else {
			p.unitsRate = etaSmoothingFactor*instant + (1-etaSmoothingFactor)*p.unitsRate
		}
		p.lastTime = now
		p.lastCount = completed
	}
	p.completed = completed
}

// Completed returns the current completed-unit count.
func (p *CountProgress) Completed() int { return p.completed }

// Total returns the fixed total unit count.
func (p *CountProgress) Total() int { return p.total }

// Fraction returns the completion fraction in [0, 1]. An empty run is
// considered complete.
func (p *CountProgress) Fraction() float64 {
	if p.total == 0 {
		return 1.0
	}
	return float64(p.completed) / float64(p.total)
}

// Elapsed returns the time since the progress state was created.
func (p *CountProgress) Elapsed() time.Duration {
	return time.Since(p.startTime)
}

// Throughput returns the average completion rate in units per second since
// the start of the run.
func (p *CountProgress) Throughput() float64 {
	elapsed := p.Elapsed().Seconds()
	if elapsed <= 0 {
		return 0
	}
	return float64(p.completed) / elapsed
}

// ETA estimates the remaining time from the smoothed completion rate.
// Returns 0 when no estimate is available yet (no completed units or no
// observed rate).
func (p *CountProgress) ETA() time.Duration {
	remaining := p.total - p.completed
	if remaining <= 0 || p.unitsRate <= 0 {
		return 0
	}
	return time.Duration(float64(remaining) / p.unitsRate * float64(time.Second))
}

// FormatETA renders an ETA duration in a compact human form ("45s", "2m30s",
// "1h15m"). Zero or negative ETAs render as "calculating..." since no
// estimate is available yet.
func FormatETA(eta time.Duration) string {
	if eta <= 0 {
		return "calculating..."
	}
	if eta < time.Second {
		return "< 1s"
	}

	eta = eta.Round(time.Second)
	h := int(eta.Hours())
	m := int(eta.Minutes()) % 60
	s := int(eta.Seconds()) % 60

	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh%dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	case m > 0 && s > 0:
		return fmt.Sprintf("%dm%ds", m, s)
	case m > 0:
		return fmt.Sprintf("%dm", m)
	default:
		return fmt.Sprintf("%ds", s)
	}
}

// ProgressBar generates a string representing a textual progress bar.
//
// Parameters:
//   - progress: The normalized progress value (0.0 to 1.0).
//   - width: The total character width of the progress bar.
//
// Returns:
//   - string: A string representation of the progress bar.
func ProgressBar(progress float64, width int) string {
	if progress > 1.0 {
		progress = 1.0
	}
	if progress < 0.0 {
		progress = 0.0
	}
	count := int(progress * float64(width))
	var builder strings.Builder
	builder.Grow(width)
	for i := 0; i < width; i++ {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}

// FormatProgressBarWithETA renders a progress bar with percentage and ETA,
// suitable for a single status line.
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("[%s] %.1f%% | ETA: %s", ProgressBar(progress, width), progress*100, FormatETA(eta))
}

// FormatUnitCount renders the "completed/total" counter with throughput,
// the per-unit counterpart of FormatProgressBarWithETA.
func FormatUnitCount(completed, total int, unitsPerSecond float64) string {
	return fmt.Sprintf("%d/%d units | %s", completed, total, FormatThroughput(unitsPerSecond))
}
