package dirwatch

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
)

// dispatcher routes one translated event to the listeners registered for
// its kind, in registration order.
type dispatcher struct {
	listeners *listenerRegistry
	clock     clockz.Clock
	timeout   time.Duration
	metrics   MetricsProvider

	// halted is set once Stop has returned or given up; no handler starts
	// after that.
	halted *atomic.Bool

	// fail records a non-fatal error.
	fail func(error)
}

// dispatch delivers event and returns the number of handlers invoked.
func (d *dispatcher) dispatch(ctx context.Context, event Event) int {
	entries := d.listeners.listenersFor(event.Kind)

	var (
		eventPath string
		pathErr   error
		resolved  bool
	)

	delivered := 0
	for _, entry := range entries {
		if d.halted.Load() {
			break
		}

		if entry.target != "" {
			if !resolved {
				eventPath, pathErr = Canonicalize(event.Path)
				resolved = true
			}
			match, err := d.matches(eventPath, pathErr, entry.target)
			if err != nil {
				d.unresolved(entry, event, err)
				continue
			}
			if !match {
				continue
			}
		}

		d.invoke(ctx, entry, event)
		delivered++
	}

	d.metrics.OnEventDispatched(event.Kind, delivered)
	return delivered
}

// matches compares the canonical event path with the canonical target.
func (d *dispatcher) matches(eventPath string, pathErr error, target string) (bool, error) {
	if pathErr != nil {
		return false, pathErr
	}
	canonicalTarget, err := Canonicalize(target)
	if err != nil {
		return false, err
	}
	return eventPath == canonicalTarget, nil
}

// unresolved reports a target comparison that failed. The event is skipped
// for that listener only.
func (d *dispatcher) unresolved(entry listenerEntry, event Event, err error) {
	capitan.Emit(context.Background(), ListenerTargetUnresolved,
		KeyListener.Field(entry.name),
		KeyTarget.Field(entry.target),
		KeyPath.Field(event.Path),
		KeyError.Field(err.Error()),
	)
	d.metrics.OnListenerFailure("unresolved")
	d.fail(fmt.Errorf("listener %q: cannot compare %s with target %s: %w", entry.name, event.Path, entry.target, err))
}

// invoke runs the handler inline, or on a helper goroutine bounded by the
// dispatch timeout when one is configured.
func (d *dispatcher) invoke(ctx context.Context, entry listenerEntry, event Event) {
	if d.timeout <= 0 {
		d.call(ctx, entry, event)
		return
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		d.call(ctx, entry, event)
	}()

	timer := d.clock.NewTimer(d.timeout)
	defer timer.Stop()

	select {
	case <-done:
	case <-timer.C():
		capitan.Emit(context.Background(), ListenerTimedOut,
			KeyListener.Field(entry.name),
			KeyKind.Field(event.Kind.String()),
			KeyPath.Field(event.Path),
			KeyTimeout.Field(d.timeout),
		)
		d.metrics.OnListenerFailure("timeout")
		d.fail(fmt.Errorf("listener %q: %s %s not handled within %v", entry.name, event.Kind, event.Path, d.timeout))
	}
}

// call runs the handler, converting a panic into a reported error so a
// faulty listener cannot take down the event loop.
func (d *dispatcher) call(ctx context.Context, entry listenerEntry, event Event) {
	defer func() {
		if r := recover(); r != nil {
			capitan.Emit(context.Background(), ListenerPanicked,
				KeyListener.Field(entry.name),
				KeyKind.Field(event.Kind.String()),
				KeyPath.Field(event.Path),
				KeyError.Field(fmt.Sprint(r)),
			)
			d.metrics.OnListenerFailure("panic")
			d.fail(fmt.Errorf("listener %q panicked handling %s %s: %v", entry.name, event.Kind, event.Path, r))
		}
	}()
	entry.handler(ctx, event)
}
