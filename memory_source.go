package dirwatch

import (
	"context"
	"path/filepath"
	"sync"
)

// MemorySource is a Source driven by explicit calls instead of the OS.
// Useful for testing and for custom producers that already know which
// directory entries changed.
type MemorySource struct {
	queue *keyQueue

	mu          sync.Mutex
	registerErr error
}

// NewMemorySource creates an empty MemorySource.
func NewMemorySource() *MemorySource {
	return &MemorySource{queue: newKeyQueue()}
}

// FailRegistration makes subsequent Register calls return err. Pass nil to
// accept registrations again.
func (s *MemorySource) FailRegistration(err error) {
	s.mu.Lock()
	s.registerErr = err
	s.mu.Unlock()
}

// Register implements Source.
func (s *MemorySource) Register(path string) (Handle, error) {
	if s.queue.isClosed() {
		return 0, ErrSourceClosed
	}
	s.mu.Lock()
	err := s.registerErr
	s.mu.Unlock()
	if err != nil {
		return 0, err
	}
	return s.queue.add(filepath.Clean(path)), nil
}

// Emit queues events for h and wakes the consumer.
func (s *MemorySource) Emit(h Handle, events ...RawEvent) error {
	if !s.queue.push(h, events...) {
		return ErrUnknownHandle
	}
	return nil
}

// EmitPath queues events for every valid handle registered for dir and
// returns how many handles were signalled.
func (s *MemorySource) EmitPath(dir string, events ...RawEvent) int {
	n := 0
	for _, h := range s.queue.handlesFor(filepath.Clean(dir)) {
		if s.queue.push(h, events...) {
			n++
		}
	}
	return n
}

// Overflow queues an overflow marker on every valid handle.
func (s *MemorySource) Overflow() {
	s.queue.broadcast(RawEvent{Op: RawOverflow})
}

// Invalidate marks h as no longer valid, as if its directory had been removed.
func (s *MemorySource) Invalidate(h Handle) error {
	if !s.queue.invalidate(h) {
		return ErrUnknownHandle
	}
	return nil
}

// Take implements Source.
func (s *MemorySource) Take(ctx context.Context) (Handle, error) {
	return s.queue.take(ctx)
}

// Drain implements Source.
func (s *MemorySource) Drain(h Handle) ([]RawEvent, bool) {
	return s.queue.drain(h)
}

// Cancel implements Source.
func (s *MemorySource) Cancel(h Handle) error {
	_, _, err := s.queue.cancel(h)
	return err
}

// Close implements Source.
func (s *MemorySource) Close() error {
	s.queue.close()
	return nil
}
