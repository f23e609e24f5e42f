package dirwatch

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// waitFor polls a condition until it returns true or timeout is reached.
func waitFor(t *testing.T, timeout time.Duration, condition func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return condition()
}

// recorder collects events delivered to a handler.
type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) handle(_ context.Context, e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

func (r *recorder) all() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

// recordingMetrics counts MetricsProvider callbacks.
type recordingMetrics struct {
	NoOpMetricsProvider

	mu          sync.Mutex
	transitions []State
	overflows   atomic.Int32
	invalidated atomic.Int32
	failures    atomic.Int32
	dispatched  atomic.Int32
}

func (m *recordingMetrics) OnStateChange(_, to State) {
	m.mu.Lock()
	m.transitions = append(m.transitions, to)
	m.mu.Unlock()
}

func (m *recordingMetrics) OnEventDispatched(_ Kind, _ int) { m.dispatched.Add(1) }
func (m *recordingMetrics) OnOverflow(_ string)             { m.overflows.Add(1) }
func (m *recordingMetrics) OnDirectoryInvalidated(_ string) { m.invalidated.Add(1) }
func (m *recordingMetrics) OnListenerFailure(_ string)      { m.failures.Add(1) }

func (m *recordingMetrics) states() []State {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]State, len(m.transitions))
	copy(out, m.transitions)
	return out
}

// newTestWatcher creates a Watcher over a MemorySource with no settle delay.
// It returns the watcher, its source and the canonical watched directory.
func newTestWatcher(t *testing.T, opts ...Option) (*Watcher, *MemorySource, string) {
	t.Helper()
	source := NewMemorySource()
	all := append([]Option{WithSource(source), WithSettleDelay(0)}, opts...)
	w, err := New(t.TempDir(), all...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = w.Stop() //nolint:errcheck // Cleanup
	})
	return w, source, w.Directories()[0].Path()
}

func mustStart(t *testing.T, w *Watcher) {
	t.Helper()
	if err := w.Start(0); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
}
