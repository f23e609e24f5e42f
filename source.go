package dirwatch

import (
	"context"
	"slices"
	"sync"
)

// Handle identifies one directory registration with a Source.
type Handle uint64

// Source is the low-level notification service a Watcher consumes.
//
// The event loop calls Take to block until some handle has pending events,
// then Drain to collect them. Drain also reports whether the registration is
// still valid; once it returns false the handle is dead and will not be
// signalled again.
type Source interface {
	// Register starts watching the directory at path, which is absolute and
	// canonical, and returns a fresh handle for it.
	Register(path string) (Handle, error)

	// Take blocks until a handle is signalled and returns it. It returns the
	// context error when ctx is canceled and ErrSourceClosed after Close.
	Take(ctx context.Context) (Handle, error)

	// Drain returns and clears the pending events for h, and reports
	// whether h is still valid.
	Drain(h Handle) ([]RawEvent, bool)

	// Cancel stops watching for h.
	Cancel(h Handle) error

	// Close releases the source. Blocked Take calls return ErrSourceClosed.
	Close() error
}

// watchKey is the per-handle state of a keyQueue.
type watchKey struct {
	path      string
	events    []RawEvent
	signalled bool
	valid     bool
}

// keyQueue holds pending events per handle and a FIFO of signalled handles.
// A handle is queued at most once until it is drained.
type keyQueue struct {
	mu     sync.Mutex
	next   Handle
	keys   map[Handle]*watchKey
	ready  []Handle
	notify chan struct{}

	closeOnce sync.Once
	closed    chan struct{}
}

func newKeyQueue() *keyQueue {
	return &keyQueue{
		keys:   make(map[Handle]*watchKey),
		notify: make(chan struct{}, 1),
		closed: make(chan struct{}),
	}
}

// add issues a new valid handle for path.
func (q *keyQueue) add(path string) Handle {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.next++
	q.keys[q.next] = &watchKey{path: path, valid: true}
	return q.next
}

// handlesFor returns the valid handles registered for path, lowest first.
func (q *keyQueue) handlesFor(path string) []Handle {
	q.mu.Lock()
	defer q.mu.Unlock()

	var handles []Handle
	for h, k := range q.keys {
		if k.valid && k.path == path {
			handles = append(handles, h)
		}
	}
	slices.Sort(handles)
	return handles
}

// push appends events to h and signals it. It reports false when h is
// unknown or no longer valid.
func (q *keyQueue) push(h Handle, events ...RawEvent) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	k, ok := q.keys[h]
	if !ok || !k.valid {
		return false
	}
	k.events = append(k.events, events...)
	q.signalLocked(h, k)
	return true
}

// broadcast appends event to every valid handle.
func (q *keyQueue) broadcast(event RawEvent) {
	q.mu.Lock()
	defer q.mu.Unlock()

	handles := make([]Handle, 0, len(q.keys))
	for h, k := range q.keys {
		if k.valid {
			handles = append(handles, h)
		}
	}
	slices.Sort(handles)
	for _, h := range handles {
		k := q.keys[h]
		k.events = append(k.events, event)
		q.signalLocked(h, k)
	}
}

// invalidate marks h dead and signals it so the consumer observes the
// invalidation on its next Drain.
func (q *keyQueue) invalidate(h Handle) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	k, ok := q.keys[h]
	if !ok || !k.valid {
		return false
	}
	k.valid = false
	q.signalLocked(h, k)
	return true
}

func (q *keyQueue) signalLocked(h Handle, k *watchKey) {
	if k.signalled {
		return
	}
	k.signalled = true
	q.ready = append(q.ready, h)
	select {
	case q.notify <- struct{}{}:
	default:
	}
}

func (q *keyQueue) take(ctx context.Context) (Handle, error) {
	for {
		select {
		case <-q.closed:
			return 0, ErrSourceClosed
		default:
		}

		q.mu.Lock()
		if len(q.ready) > 0 {
			h := q.ready[0]
			q.ready = q.ready[1:]
			q.mu.Unlock()
			return h, nil
		}
		q.mu.Unlock()

		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-q.closed:
			return 0, ErrSourceClosed
		case <-q.notify:
		}
	}
}

func (q *keyQueue) drain(h Handle) ([]RawEvent, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	k, ok := q.keys[h]
	if !ok {
		return nil, false
	}
	events := k.events
	k.events = nil
	k.signalled = false
	if !k.valid {
		delete(q.keys, h)
	}
	return events, k.valid
}

// cancel forgets h and returns its path along with the number of valid
// handles still registered for that path.
func (q *keyQueue) cancel(h Handle) (string, int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	k, ok := q.keys[h]
	if !ok {
		return "", 0, ErrUnknownHandle
	}
	delete(q.keys, h)
	for i, r := range q.ready {
		if r == h {
			q.ready = append(q.ready[:i], q.ready[i+1:]...)
			break
		}
	}

	remaining := 0
	for _, other := range q.keys {
		if other.valid && other.path == k.path {
			remaining++
		}
	}
	return k.path, remaining, nil
}

func (q *keyQueue) close() {
	q.closeOnce.Do(func() {
		close(q.closed)
	})
}

func (q *keyQueue) isClosed() bool {
	select {
	case <-q.closed:
		return true
	default:
		return false
	}
}
