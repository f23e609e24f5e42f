package dirwatch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// FSNotifySource is a Source backed by fsnotify.
//
// Create and Write map to RawCreate and RawModify; Remove and Rename map to
// RawDelete (a rename target shows up as its own create). Chmod is ignored.
// A queue overflow reported by the OS is delivered as RawOverflow to every
// valid handle. Removing or renaming a watched directory itself invalidates
// its handles.
type FSNotifySource struct {
	watcher *fsnotify.Watcher
	queue   *keyQueue

	mu      sync.Mutex
	onError func(error)

	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
	closeErr  error
}

// NewFSNotifySource creates an FSNotifySource and starts its pump goroutine.
func NewFSNotifySource() (*FSNotifySource, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	s := &FSNotifySource{
		watcher: watcher,
		queue:   newKeyQueue(),
		done:    make(chan struct{}),
	}
	s.wg.Add(1)
	go s.pump()
	return s, nil
}

// SetErrorHandler configures a callback for errors reported by fsnotify
// other than overflow. The callback runs on the pump goroutine.
func (s *FSNotifySource) SetErrorHandler(fn func(error)) {
	s.mu.Lock()
	s.onError = fn
	s.mu.Unlock()
}

// Register implements Source.
func (s *FSNotifySource) Register(path string) (Handle, error) {
	if s.queue.isClosed() {
		return 0, ErrSourceClosed
	}
	if err := s.watcher.Add(path); err != nil {
		return 0, fmt.Errorf("failed to watch %s: %w", path, err)
	}
	return s.queue.add(filepath.Clean(path)), nil
}

// Take implements Source.
func (s *FSNotifySource) Take(ctx context.Context) (Handle, error) {
	return s.queue.take(ctx)
}

// Drain implements Source.
func (s *FSNotifySource) Drain(h Handle) ([]RawEvent, bool) {
	return s.queue.drain(h)
}

// Cancel implements Source. The underlying fsnotify watch is removed once
// no valid handle refers to its path.
func (s *FSNotifySource) Cancel(h Handle) error {
	path, remaining, err := s.queue.cancel(h)
	if err != nil {
		return err
	}
	if remaining > 0 {
		return nil
	}
	if err := s.watcher.Remove(path); err != nil && !errors.Is(err, fsnotify.ErrNonExistentWatch) && !errors.Is(err, fsnotify.ErrClosed) {
		return fmt.Errorf("failed to unwatch %s: %w", path, err)
	}
	return nil
}

// Close implements Source. It blocks until the pump goroutine has exited.
func (s *FSNotifySource) Close() error {
	s.closeOnce.Do(func() {
		s.queue.close()
		close(s.done)

		err := s.watcher.Close()
		s.wg.Wait()
		if err != nil {
			s.closeErr = fmt.Errorf("failed to close fsnotify watcher: %w", err)
		}
	})
	return s.closeErr
}

// pump forwards fsnotify events into the key queue.
func (s *FSNotifySource) pump() {
	defer s.wg.Done()

	for {
		select {
		case <-s.done:
			return

		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			s.handle(event)

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				s.queue.broadcast(RawEvent{Op: RawOverflow})
				continue
			}
			s.report(err)
		}
	}
}

func (s *FSNotifySource) handle(event fsnotify.Event) {
	name := filepath.Clean(event.Name)

	// The watched directory itself went away. A watched parent reports the
	// same name separately, so only the first report is consumed here.
	if event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
		consumed := false
		for _, h := range s.queue.handlesFor(name) {
			if s.queue.invalidate(h) {
				consumed = true
			}
		}
		if consumed {
			return
		}
	}

	op, ok := rawOpOf(event)
	if !ok {
		return
	}
	raw := RawEvent{Op: op, Name: filepath.Base(name)}
	for _, h := range s.queue.handlesFor(filepath.Dir(name)) {
		s.queue.push(h, raw)
	}
}

func (s *FSNotifySource) report(err error) {
	s.mu.Lock()
	fn := s.onError
	s.mu.Unlock()
	if fn != nil {
		fn(err)
	}
}

// rawOpOf converts an fsnotify operation. Chmod-only events are ignored.
func rawOpOf(event fsnotify.Event) (RawOp, bool) {
	switch {
	case event.Has(fsnotify.Create):
		return RawCreate, true
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return RawDelete, true
	case event.Has(fsnotify.Write):
		return RawModify, true
	default:
		return 0, false
	}
}
