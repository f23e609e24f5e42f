// Package dirwatch watches directories for filesystem mutations and delivers
// them to listeners as typed callbacks.
//
// The core type is Watcher. It owns one notification Source and one event
// loop goroutine that turns batched, possibly overflowing notifications into
// ordered per-listener callbacks:
//
//	Source.Take → settle delay → Source.Drain → translate → dispatch
//
// # Listeners
//
// A Listener names the kinds it wants with one handler per kind. It is
// dispatched independently per kind: a listener with both OnCreated and
// OnModified handlers receives two invocations when a write produces a
// create and a modify notification.
//
//	w.Register(dirwatch.NewListener("config").
//	    OnModified(reload).
//	    Target("./config/app.yaml"))
//
// A Target restricts delivery to a single file, compared by canonical path.
// When a path cannot be canonicalized the event is skipped for that listener
// and reported through the ListenerTargetUnresolved signal and the error
// handler.
//
// Handlers run synchronously on the event loop, in registration order. A
// slow handler delays everything after it unless WithDispatchTimeout is set.
//
// # State Machine
//
// Watcher moves through four states:
//
//   - Idle: created, not started
//   - Running: waiting for or processing notifications
//   - Draining: Stop requested, finishing the in-flight batch
//   - Stopped: loop exited, source closed
//
// Stop waits up to DefaultStopTimeout (60s) and tears the loop down only if
// that wait times out.
//
// # Delivery Guarantees
//
// Events from one directory are delivered in the order the source reports
// them; there is no ordering across directories. An overflow reported by the
// source means events were lost; it is signalled (OverflowDetected) but never
// delivered to listeners. When a directory's handle becomes invalid, for
// example because the directory was deleted, only that directory is
// deactivated.
//
// Registering the same directory twice is permitted and duplicates delivery
// for it.
//
// # Observability
//
// Lifecycle, directory and listener events are emitted as capitan signals
// (see signals.go and fields.go). MetricsProvider receives counters; the
// prommetrics package implements it for Prometheus and the zaplog package
// writes the signals to a zap logger.
package dirwatch
