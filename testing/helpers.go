// Package testing provides test utilities and helpers for dirwatch testing.
package testing

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/zoobzio/dirwatch"
)

// WaitFor polls a condition until it returns true or timeout is reached.
// Returns true if the condition was met, false if timeout occurred.
func WaitFor(t *testing.T, timeout time.Duration, condition func() bool) bool {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return false
}

// WaitForState waits until the watcher reaches the expected state or timeout occurs.
func WaitForState(t *testing.T, w *dirwatch.Watcher, expected dirwatch.State, timeout time.Duration) bool {
	t.Helper()
	return WaitFor(t, timeout, func() bool {
		return w.State() == expected
	})
}

// RequireState fails the test immediately if the watcher is not in the expected state.
func RequireState(t *testing.T, w *dirwatch.Watcher, expected dirwatch.State) {
	t.Helper()
	if got := w.State(); got != expected {
		t.Fatalf("expected state %s, got %s", expected, got)
	}
}

// Recorder collects events delivered to its Handle method.
type Recorder struct {
	mu     sync.Mutex
	events []dirwatch.Event
}

// Handle is a dirwatch.Handler that records e.
func (r *Recorder) Handle(_ context.Context, e dirwatch.Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

// Events returns a copy of the recorded events in delivery order.
func (r *Recorder) Events() []dirwatch.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]dirwatch.Event, len(r.events))
	copy(out, r.events)
	return out
}

// Len returns the number of recorded events.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

// Paths returns the recorded event paths in delivery order.
func (r *Recorder) Paths() []string {
	events := r.Events()
	paths := make([]string, len(events))
	for i, e := range events {
		paths[i] = e.Path
	}
	return paths
}

// NewTestWatcher creates a started watcher over a MemorySource with no
// settle delay, watching a fresh temporary directory. The watcher is
// stopped when the test ends. Returns the watcher, the source for emitting
// events and the canonical watched directory.
func NewTestWatcher(t *testing.T, opts ...dirwatch.Option) (*dirwatch.Watcher, *dirwatch.MemorySource, string) {
	t.Helper()
	source := dirwatch.NewMemorySource()
	all := append([]dirwatch.Option{dirwatch.WithSource(source), dirwatch.WithSettleDelay(0)}, opts...)
	w, err := dirwatch.New(t.TempDir(), all...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() {
		_ = w.Stop() //nolint:errcheck // Cleanup
	})
	return w, source, w.Directories()[0].Path()
}
