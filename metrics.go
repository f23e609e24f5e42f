package dirwatch

import "time"

// MetricsProvider allows integration with metrics systems like Prometheus, StatsD, etc.
// Implement this interface to receive callbacks on key watcher events.
// Callbacks may run on the event loop goroutine and must not block.
type MetricsProvider interface {
	// OnStateChange is called when the watcher transitions between states.
	OnStateChange(from, to State)

	// OnEventDispatched is called once per translated event with the number
	// of handlers that were invoked for it.
	OnEventDispatched(kind Kind, delivered int)

	// OnOverflow is called for every overflow marker drained for dir.
	OnOverflow(dir string)

	// OnDirectoryInvalidated is called when a directory is deactivated
	// because its handle became invalid.
	OnDirectoryInvalidated(dir string)

	// OnListenerFailure is called when a handler could not be delivered to
	// or did not complete. Reason is "unresolved", "timeout" or "panic".
	OnListenerFailure(reason string)

	// OnBatchProcessed is called after each drained batch with the number of
	// translated events and the time spent dispatching them.
	OnBatchProcessed(events int, duration time.Duration)
}

// NoOpMetricsProvider is a no-op implementation of MetricsProvider.
// Use this as an embedded type to implement only the methods you need.
type NoOpMetricsProvider struct{}

func (NoOpMetricsProvider) OnStateChange(_, _ State)                {}
func (NoOpMetricsProvider) OnEventDispatched(_ Kind, _ int)         {}
func (NoOpMetricsProvider) OnOverflow(_ string)                     {}
func (NoOpMetricsProvider) OnDirectoryInvalidated(_ string)         {}
func (NoOpMetricsProvider) OnListenerFailure(_ string)              {}
func (NoOpMetricsProvider) OnBatchProcessed(_ int, _ time.Duration) {}
