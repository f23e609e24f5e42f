package dirwatch

import "github.com/zoobzio/capitan"

// Field keys for Watcher events.
var (
	// KeyState is the current state of the Watcher.
	KeyState = capitan.NewStringKey("state")

	// KeyOldState is the previous state before a transition.
	KeyOldState = capitan.NewStringKey("old_state")

	// KeyNewState is the new state after a transition.
	KeyNewState = capitan.NewStringKey("new_state")

	// KeyError is the error message when an operation fails.
	KeyError = capitan.NewStringKey("error")

	// KeyPath is a filesystem path: the directory for directory signals,
	// the event path for listener signals.
	KeyPath = capitan.NewStringKey("path")

	// KeyTarget is the target path of a filtered listener.
	KeyTarget = capitan.NewStringKey("target")

	// KeyKind is the event kind.
	KeyKind = capitan.NewStringKey("kind")

	// KeyListener is the listener name.
	KeyListener = capitan.NewStringKey("listener")

	// KeyHandle is the source handle of a directory.
	KeyHandle = capitan.NewIntKey("handle")

	// KeyDelay is the configured start delay.
	KeyDelay = capitan.NewDurationKey("delay")

	// KeySettleDelay is the configured settle delay.
	KeySettleDelay = capitan.NewDurationKey("settle_delay")

	// KeyTimeout is the timeout that was exceeded.
	KeyTimeout = capitan.NewDurationKey("timeout")
)
