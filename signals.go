package dirwatch

import "github.com/zoobzio/capitan"

// Watcher lifecycle signals.
var (
	// WatcherStarted is emitted when Start schedules the event loop.
	WatcherStarted = capitan.NewSignal(
		"dirwatch.watcher.started",
		"Watcher event loop scheduled",
	)

	// WatcherStopped is emitted when Stop completes.
	WatcherStopped = capitan.NewSignal(
		"dirwatch.watcher.stopped",
		"Watcher stopped",
	)

	// WatcherStateChanged is emitted when a Watcher transitions between states.
	WatcherStateChanged = capitan.NewSignal(
		"dirwatch.watcher.state.changed",
		"Watcher state transition",
	)

	// WatcherForcedStop is emitted when the event loop did not exit within
	// the stop timeout and was abandoned.
	WatcherForcedStop = capitan.NewSignal(
		"dirwatch.watcher.forced.stop",
		"Watcher event loop torn down after stop timeout",
	)
)

// Directory signals.
var (
	// DirectoryAdded is emitted when a directory is registered.
	DirectoryAdded = capitan.NewSignal(
		"dirwatch.directory.added",
		"Directory registered",
	)

	// DirectoryRejected is emitted when a directory cannot be registered.
	DirectoryRejected = capitan.NewSignal(
		"dirwatch.directory.rejected",
		"Directory registration failed",
	)

	// DirectoryInvalidated is emitted when the source reports a handle is no
	// longer valid and its directory is deactivated.
	DirectoryInvalidated = capitan.NewSignal(
		"dirwatch.directory.invalidated",
		"Directory watch invalidated",
	)

	// DirectoryRemoved is emitted when a directory is removed by the caller.
	DirectoryRemoved = capitan.NewSignal(
		"dirwatch.directory.removed",
		"Directory removed",
	)
)

// Event processing signals.
var (
	// OverflowDetected is emitted when the source reports dropped events.
	OverflowDetected = capitan.NewSignal(
		"dirwatch.overflow.detected",
		"Notification source dropped events",
	)

	// SourceFailed is emitted when the notification source reports an error.
	SourceFailed = capitan.NewSignal(
		"dirwatch.source.failed",
		"Notification source error",
	)
)

// Listener signals.
var (
	// ListenerRegistered is emitted when a listener is registered.
	ListenerRegistered = capitan.NewSignal(
		"dirwatch.listener.registered",
		"Listener registered",
	)

	// ListenerUnregistered is emitted when a listener is unregistered.
	ListenerUnregistered = capitan.NewSignal(
		"dirwatch.listener.unregistered",
		"Listener unregistered",
	)

	// ListenerTargetUnresolved is emitted when a target filter could not be
	// compared and the event was skipped for that listener.
	ListenerTargetUnresolved = capitan.NewSignal(
		"dirwatch.listener.target.unresolved",
		"Listener target could not be canonicalized",
	)

	// ListenerTimedOut is emitted when a handler exceeds the dispatch timeout.
	ListenerTimedOut = capitan.NewSignal(
		"dirwatch.listener.timed.out",
		"Listener exceeded dispatch timeout",
	)

	// ListenerPanicked is emitted when a handler panics.
	ListenerPanicked = capitan.NewSignal(
		"dirwatch.listener.panicked",
		"Listener panicked",
	)
)
