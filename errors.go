package dirwatch

import "errors"

var (
	// ErrNotDirectory is returned when a path given to AddDirectory does not
	// exist or is not a directory.
	ErrNotDirectory = errors.New("not a directory")

	// ErrAlreadyStarted is returned when Start is called more than once.
	ErrAlreadyStarted = errors.New("watcher already started")

	// ErrStopped is returned by operations on a Watcher that has been stopped.
	ErrStopped = errors.New("watcher stopped")

	// ErrStopTimeout is returned by Stop when the event loop did not exit
	// within the stop timeout and was torn down forcibly.
	ErrStopTimeout = errors.New("watcher did not stop in time")

	// ErrSourceClosed is returned by Source.Take after the source is closed.
	ErrSourceClosed = errors.New("notification source closed")

	// ErrUnknownHandle is returned when a Source is asked about a handle it
	// did not issue or has already canceled.
	ErrUnknownHandle = errors.New("unknown watch handle")
)
