package dirwatch

// State represents the lifecycle state of a Watcher.
type State int32

const (
	// StateIdle indicates the Watcher has been created but Start has not
	// been called.
	StateIdle State = iota

	// StateRunning indicates the event loop is waiting for or processing
	// notifications.
	StateRunning

	// StateDraining indicates Stop has been requested and the event loop is
	// finishing its in-flight batch.
	StateDraining

	// StateStopped indicates the event loop has exited and the notification
	// source has been released. A stopped Watcher cannot be restarted.
	StateStopped
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateDraining:
		return "draining"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}
