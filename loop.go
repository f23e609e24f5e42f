package dirwatch

import (
	"context"
	"errors"
	"path/filepath"
	"time"

	"github.com/zoobzio/capitan"
)

// sourceRetryDelay is the pause after an unexpected source error before
// the loop waits again.
const sourceRetryDelay = 100 * time.Millisecond

// run is the event loop. It blocks on the source, lets the batch settle,
// drains and dispatches it, and repeats until shutdown is requested.
func (w *Watcher) run(ctx context.Context, delay time.Duration, done chan struct{}) {
	defer close(done)

	if delay > 0 && !w.sleep(ctx, delay) {
		return
	}

	for {
		handle, err := w.source.Take(ctx)
		if err != nil {
			if w.shutdown.Load() || errors.Is(err, ErrSourceClosed) {
				return
			}
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				// Interrupted without a shutdown request: wait again.
				continue
			}
			w.sourceError(err)
			w.sleep(ctx, sourceRetryDelay)
			continue
		}

		// An interrupted settle still processes the batch it woke for.
		w.sleep(ctx, w.settleDelay)
		w.process(ctx, handle)

		if w.shutdown.Load() {
			return
		}
	}
}

// process drains the pending events for handle and dispatches them in the
// order the source reported them.
func (w *Watcher) process(ctx context.Context, handle Handle) {
	start := w.clock.Now()
	raws, valid := w.source.Drain(handle)

	dir := w.directories.byHandle(handle)
	if dir == nil {
		// Removed between signal and drain.
		return
	}

	translated := 0
	for _, raw := range raws {
		if raw.Op == RawOverflow {
			capitan.Emit(context.Background(), OverflowDetected,
				KeyPath.Field(dir.path),
			)
			w.metrics.OnOverflow(dir.path)
			continue
		}

		kind, ok := kindOf(raw.Op)
		if !ok {
			continue
		}
		w.dispatcher.dispatch(ctx, Event{
			Kind:      kind,
			Path:      filepath.Join(dir.path, raw.Name),
			Directory: dir,
		})
		translated++
	}

	if !valid {
		w.invalidate(dir)
	}
	w.metrics.OnBatchProcessed(translated, w.clock.Since(start))
}

// invalidate deactivates one directory; the others keep being watched.
func (w *Watcher) invalidate(dir *Directory) {
	if !dir.deactivate() {
		return
	}
	capitan.Emit(context.Background(), DirectoryInvalidated,
		KeyPath.Field(dir.path),
		KeyHandle.Field(int(dir.handle)), //nolint:gosec // Handles are small sequence numbers
	)
	w.metrics.OnDirectoryInvalidated(dir.path)
}

// sleep waits for d on the watcher clock. It returns false if ctx was
// canceled first.
func (w *Watcher) sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := w.clock.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C():
		return true
	case <-ctx.Done():
		return false
	}
}
