package dirwatch

import (
	"fmt"
	"os"
	"sync"
	"sync/atomic"
)

// Directory is a directory under watch together with its source handle.
// Entries are never reused: registering the same path twice yields two
// independent Directory values.
type Directory struct {
	path   string
	handle Handle
	active atomic.Bool
}

func newDirectory(path string, handle Handle) *Directory {
	d := &Directory{path: path, handle: handle}
	d.active.Store(true)
	return d
}

// Path returns the canonical absolute path of the directory.
func (d *Directory) Path() string { return d.path }

// Handle returns the source handle issued for this registration.
func (d *Directory) Handle() Handle { return d.handle }

// Kinds returns the event kinds the directory was registered for. Every
// directory is registered for all of them.
func (d *Directory) Kinds() []Kind { return Kinds() }

// Active reports whether the directory is still being watched. A directory
// becomes inactive when its handle is invalidated or it is removed.
func (d *Directory) Active() bool { return d.active.Load() }

// deactivate reports whether this call performed the transition.
func (d *Directory) deactivate() bool {
	return d.active.CompareAndSwap(true, false)
}

// directoryRegistry is the ordered set of watched directories.
type directoryRegistry struct {
	mu   sync.RWMutex
	dirs []*Directory
}

func (r *directoryRegistry) add(d *Directory) {
	r.mu.Lock()
	r.dirs = append(r.dirs, d)
	r.mu.Unlock()
}

// byHandle returns the directory registered under h, or nil.
func (r *directoryRegistry) byHandle(h Handle) *Directory {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, d := range r.dirs {
		if d.handle == h {
			return d
		}
	}
	return nil
}

// snapshot returns a copy of the registry in registration order.
func (r *directoryRegistry) snapshot() []*Directory {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Directory, len(r.dirs))
	copy(out, r.dirs)
	return out
}

// remove drops every entry for path and returns them.
func (r *directoryRegistry) remove(path string) []*Directory {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed []*Directory
	kept := r.dirs[:0:0]
	for _, d := range r.dirs {
		if d.path == path {
			removed = append(removed, d)
			continue
		}
		kept = append(kept, d)
	}
	r.dirs = kept
	return removed
}

// canonicalDirectory verifies that path names an existing directory and
// returns its canonical form.
func canonicalDirectory(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrNotDirectory, path, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrNotDirectory, path)
	}
	canonical, err := Canonicalize(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	return canonical, nil
}
