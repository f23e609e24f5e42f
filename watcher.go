package dirwatch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zoobzio/capitan"
	"github.com/zoobzio/clockz"
)

// Watcher watches directories and delivers their mutations to listeners.
//
// A Watcher is created with one directory, accepts more directories and
// listeners at any time, runs a single event loop goroutine between Start
// and Stop, and cannot be restarted once stopped.
type Watcher struct {
	source      Source
	directories directoryRegistry
	listeners   listenerRegistry
	dispatcher  *dispatcher

	clock        clockz.Clock
	settleDelay  time.Duration
	stopTimeout  time.Duration
	metrics      MetricsProvider
	errorHandler func(error)

	state        atomic.Int32
	shutdown     atomic.Bool
	halted       atomic.Bool
	lastError    atomic.Pointer[error]
	errorHistory *errorRing

	mu       sync.Mutex
	cancel   context.CancelFunc
	done     chan struct{}
	stopOnce sync.Once
}

// New creates a Watcher for directory.
//
// It fails if the notification source cannot be created or directory
// cannot be registered: there is no Watcher without at least one valid
// directory.
//
// Example:
//
//	w, err := dirwatch.New("./data")
//	if err != nil {
//	    return err
//	}
//	w.Register(dirwatch.NewListener("log").OnCreated(func(_ context.Context, e dirwatch.Event) {
//	    log.Printf("created %s", e.Path)
//	}))
//	if err := w.Start(0); err != nil {
//	    return err
//	}
//	defer w.Stop()
func New(directory string, opts ...Option) (*Watcher, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	source := cfg.source
	if source == nil {
		s, err := NewFSNotifySource()
		if err != nil {
			return nil, fmt.Errorf("failed to create notification source: %w", err)
		}
		source = s
	}

	metrics := cfg.metrics
	if metrics == nil {
		metrics = NoOpMetricsProvider{}
	}

	w := &Watcher{
		source:       source,
		clock:        cfg.clock,
		settleDelay:  cfg.settleDelay,
		stopTimeout:  cfg.stopTimeout,
		metrics:      metrics,
		errorHandler: cfg.errorHandler,
		errorHistory: newErrorRing(cfg.historySize),
	}
	w.state.Store(int32(StateIdle))
	w.dispatcher = &dispatcher{
		listeners: &w.listeners,
		clock:     cfg.clock,
		timeout:   cfg.dispatchTimeout,
		metrics:   metrics,
		halted:    &w.halted,
		fail:      w.setError,
	}

	if reporter, ok := source.(interface{ SetErrorHandler(func(error)) }); ok {
		reporter.SetErrorHandler(w.sourceError)
	}

	if _, err := w.AddDirectory(directory); err != nil {
		_ = source.Close() //nolint:errcheck // Registration error takes precedence
		return nil, err
	}
	return w, nil
}

// State returns the current state of the Watcher.
func (w *Watcher) State() State {
	return State(w.state.Load())
}

// LastError returns the last non-fatal error, or nil if none occurred.
func (w *Watcher) LastError() error {
	ptr := w.lastError.Load()
	if ptr == nil {
		return nil
	}
	return *ptr
}

// ErrorHistory returns recent non-fatal errors, oldest first.
// Returns nil if error history is disabled (see WithErrorHistorySize).
func (w *Watcher) ErrorHistory() []error {
	return w.errorHistory.all()
}

// AddDirectory registers path for watching. It fails with ErrNotDirectory
// when path does not name an existing directory, or with the source error
// when registration fails. Registering the same path twice is allowed and
// results in duplicated delivery for that path.
func (w *Watcher) AddDirectory(path string) (*Directory, error) {
	if w.State() == StateStopped {
		return nil, ErrStopped
	}

	canonical, err := canonicalDirectory(path)
	if err != nil {
		w.rejectDirectory(path, err)
		return nil, err
	}

	handle, err := w.source.Register(canonical)
	if err != nil {
		err = fmt.Errorf("failed to register %s: %w", canonical, err)
		w.rejectDirectory(path, err)
		return nil, err
	}

	dir := newDirectory(canonical, handle)
	w.directories.add(dir)
	capitan.Emit(context.Background(), DirectoryAdded,
		KeyPath.Field(canonical),
		KeyHandle.Field(int(handle)), //nolint:gosec // Handles are small sequence numbers
	)
	return dir, nil
}

// AddDirectories registers each path independently. A failure for one path
// does not prevent the others; the returned error joins every failure.
func (w *Watcher) AddDirectories(paths ...string) error {
	var errs []error
	for _, path := range paths {
		if _, err := w.AddDirectory(path); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RemoveDirectory stops watching every registration of path and returns
// how many were removed.
func (w *Watcher) RemoveDirectory(path string) int {
	canonical, err := Canonicalize(path)
	if err != nil {
		return 0
	}

	removed := w.directories.remove(canonical)
	for _, dir := range removed {
		dir.deactivate()
		if err := w.source.Cancel(dir.handle); err != nil && !errors.Is(err, ErrUnknownHandle) {
			w.setError(fmt.Errorf("failed to cancel %s: %w", dir.path, err))
		}
		capitan.Emit(context.Background(), DirectoryRemoved,
			KeyPath.Field(dir.path),
			KeyHandle.Field(int(dir.handle)), //nolint:gosec // Handles are small sequence numbers
		)
	}
	return len(removed)
}

// Directories returns a snapshot of the registered directories in
// registration order, including deactivated ones.
func (w *Watcher) Directories() []*Directory {
	return w.directories.snapshot()
}

// Register adds l to the listener list of every kind it has a handler for
// and returns its ID. A listener without handlers is ignored and the zero
// ID is returned. Registering the same listener twice registers it twice.
func (w *Watcher) Register(l *Listener) ListenerID {
	if l == nil {
		return 0
	}
	id, kinds := w.listeners.register(l)
	if id == 0 {
		return 0
	}
	for _, k := range kinds {
		capitan.Emit(context.Background(), ListenerRegistered,
			KeyListener.Field(l.name),
			KeyKind.Field(k.String()),
			KeyTarget.Field(l.target),
		)
	}
	return id
}

// Unregister removes every entry for id. Events already being dispatched
// may still reach the listener.
func (w *Watcher) Unregister(id ListenerID) bool {
	if !w.listeners.unregister(id) {
		return false
	}
	capitan.Emit(context.Background(), ListenerUnregistered,
		KeyHandle.Field(int(id)), //nolint:gosec // IDs are small sequence numbers
	)
	return true
}

// Listeners returns the registrations for kind in dispatch order.
func (w *Watcher) Listeners(kind Kind) []ListenerInfo {
	entries := w.listeners.listenersFor(kind)
	infos := make([]ListenerInfo, len(entries))
	for i, e := range entries {
		infos[i] = ListenerInfo{ID: e.id, Name: e.name, Target: e.target}
	}
	return infos
}

// Start schedules the event loop to begin after delay and returns
// immediately. It returns ErrAlreadyStarted if the loop was already started
// and ErrStopped once Stop has been called.
func (w *Watcher) Start(delay time.Duration) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.shutdown.Load() {
		return ErrStopped
	}
	if w.State() != StateIdle {
		return ErrAlreadyStarted
	}

	ctx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	w.done = make(chan struct{})
	w.transition(StateRunning)

	capitan.Emit(context.Background(), WatcherStarted,
		KeyDelay.Field(delay),
		KeySettleDelay.Field(w.settleDelay),
	)

	go w.run(ctx, delay, w.done)
	return nil
}

// Stop requests shutdown and waits up to the stop timeout for the event loop
// to finish its in-flight batch and exit. If it does not, the loop is torn
// down: no handler is invoked afterwards, the source is closed, and
// ErrStopTimeout is returned. Stop is idempotent; later calls return nil.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		err = w.stop()
	})
	return err
}

func (w *Watcher) stop() error {
	w.mu.Lock()
	w.shutdown.Store(true)
	cancel, done := w.cancel, w.done
	if w.State() == StateRunning {
		w.transition(StateDraining)
	}
	w.mu.Unlock()

	var err error
	if cancel != nil {
		cancel()

		timer := w.clock.NewTimer(w.stopTimeout)
		select {
		case <-done:
			timer.Stop()
		case <-timer.C():
			w.halted.Store(true)
			err = fmt.Errorf("%w: event loop still running after %v", ErrStopTimeout, w.stopTimeout)
			capitan.Emit(context.Background(), WatcherForcedStop,
				KeyTimeout.Field(w.stopTimeout),
			)
		}
	}
	w.halted.Store(true)

	if cerr := w.source.Close(); cerr != nil && err == nil {
		err = fmt.Errorf("failed to close notification source: %w", cerr)
	}

	w.transition(StateStopped)
	capitan.Emit(context.Background(), WatcherStopped,
		KeyState.Field(w.State().String()),
	)
	return err
}

// transition stores the new state and emits a state change event if changed.
func (w *Watcher) transition(to State) {
	from := State(w.state.Swap(int32(to)))
	if from == to {
		return
	}
	capitan.Emit(context.Background(), WatcherStateChanged,
		KeyOldState.Field(from.String()),
		KeyNewState.Field(to.String()),
	)
	w.metrics.OnStateChange(from, to)
}

// setError records a non-fatal error and forwards it to the error handler.
func (w *Watcher) setError(err error) {
	e := err
	w.lastError.Store(&e)
	w.errorHistory.push(err)
	if w.errorHandler != nil {
		w.errorHandler(err)
	}
}

func (w *Watcher) sourceError(err error) {
	capitan.Emit(context.Background(), SourceFailed,
		KeyError.Field(err.Error()),
	)
	w.setError(fmt.Errorf("notification source: %w", err))
}

func (w *Watcher) rejectDirectory(path string, err error) {
	capitan.Emit(context.Background(), DirectoryRejected,
		KeyPath.Field(path),
		KeyError.Field(err.Error()),
	)
}
