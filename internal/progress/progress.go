package progress

import (
	"sync"
	"sync/atomic"

	"github.com/agbru/sqrace/internal/logging"
)

// ProgressUpdate carries a single progress notification from a runner.
// Completed counts retired workload units; it is monotonically increasing
// within a run and never exceeds Total.
type ProgressUpdate struct {
	// RunnerIndex identifies which runner sent the update.
	RunnerIndex int
	// Completed is the number of units retired so far.
	Completed int
	// Total is the fixed number of units in the run.
	Total int
}

// ProgressCallback is invoked by a runner each time a unit retires.
type ProgressCallback func(completed, total int)

// NopCallback discards progress notifications. Runners accept it in place
// of a nil check at every retirement.
func NopCallback(int, int) {}

// ProgressObserver receives progress updates from a subject.
type ProgressObserver interface {
	OnProgress(update ProgressUpdate)
}

// ProgressSubject fans progress updates out to a set of observers.
// Attach and Notify are safe for concurrent use.
type ProgressSubject struct {
	mu        sync.RWMutex
	observers []ProgressObserver
}

// NewProgressSubject creates an empty subject.
func NewProgressSubject() *ProgressSubject {
	return &ProgressSubject{}
}

// Attach registers an observer.
func (s *ProgressSubject) Attach(o ProgressObserver) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// Notify delivers the update to every attached observer.
func (s *ProgressSubject) Notify(update ProgressUpdate) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, o := range s.observers {
		o.OnProgress(update)
	}
}

// ChannelObserver forwards updates to a channel, typically consumed by a
// display goroutine.
type ChannelObserver struct {
	ch chan<- ProgressUpdate
}

// NewChannelObserver creates an observer writing to ch. The channel should
// be buffered generously enough for the expected update volume; sends block
// otherwise.
func NewChannelObserver(ch chan<- ProgressUpdate) *ChannelObserver {
	return &ChannelObserver{ch: ch}
}

// OnProgress sends the update on the channel.
func (o *ChannelObserver) OnProgress(update ProgressUpdate) {
	o.ch <- update
}

// LoggingObserver logs each update at debug level.
type LoggingObserver struct {
	logger logging.Logger
}

// NewLoggingObserver creates an observer logging through the given logger.
func NewLoggingObserver(logger logging.Logger) *LoggingObserver {
	return &LoggingObserver{logger: logger}
}

// OnProgress logs the update.
func (o *LoggingObserver) OnProgress(update ProgressUpdate) {
	o.logger.Debug("progress",
		logging.Int("runner", update.RunnerIndex),
		logging.Int("completed", update.Completed),
		logging.Int("total", update.Total),
	)
}

// NoOpObserver discards updates.
type NoOpObserver struct{}

// NewNoOpObserver creates a no-op observer.
func NewNoOpObserver() *NoOpObserver { return &NoOpObserver{} }

// OnProgress does nothing.
func (*NoOpObserver) OnProgress(ProgressUpdate) {}

// Counter is a concurrency-safe monotonic counter of retired units.
// Runners use it to produce the completed counts carried by updates.
type Counter struct {
	completed atomic.Int64
	total     int
}

// NewCounter creates a counter for the given total.
func NewCounter(total int) *Counter {
	return &Counter{total: total}
}

// Increment retires one unit and returns the new completed count.
func (c *Counter) Increment() int {
	return int(c.completed.Add(1))
}

// Completed returns the current completed count.
func (c *Counter) Completed() int {
	return int(c.completed.Load())
}

// Total returns the fixed total.
func (c *Counter) Total() int { return c.total }
