package dirwatch

import (
	"sync"
	"sync/atomic"
)

// ListenerID identifies a registration. The zero value means nothing was
// registered.
type ListenerID uint64

// ListenerInfo describes one registration for one kind.
type ListenerInfo struct {
	ID     ListenerID
	Name   string
	Target string
}

type listenerEntry struct {
	id      ListenerID
	name    string
	target  string
	handler Handler
}

// listenerTable is immutable once published.
type listenerTable [kindCount][]listenerEntry

// listenerRegistry keeps per-kind listener lists in registration order.
// Writers copy the table and publish it atomically, so the event loop always
// reads a consistent snapshot without locking.
type listenerRegistry struct {
	mu     sync.Mutex
	nextID ListenerID
	table  atomic.Pointer[listenerTable]
}

func (r *listenerRegistry) load() *listenerTable {
	if t := r.table.Load(); t != nil {
		return t
	}
	return &listenerTable{}
}

// register appends l to the list of every kind it has a handler for and
// returns the new ID with those kinds. A listener with no handlers is not
// registered.
func (r *listenerRegistry) register(l *Listener) (ListenerID, []Kind) {
	kinds := l.Kinds()
	if len(kinds) == 0 {
		return 0, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	id := r.nextID
	current := r.load()
	next := *current
	for _, k := range kinds {
		list := make([]listenerEntry, len(current[k]), len(current[k])+1)
		copy(list, current[k])
		next[k] = append(list, listenerEntry{
			id:      id,
			name:    l.name,
			target:  l.target,
			handler: l.handlers[k],
		})
	}
	r.table.Store(&next)
	return id, kinds
}

// unregister removes every entry for id.
func (r *listenerRegistry) unregister(id ListenerID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	current := r.load()
	var next listenerTable
	found := false
	for k := range current {
		for _, e := range current[k] {
			if e.id == id {
				found = true
				continue
			}
			next[k] = append(next[k], e)
		}
	}
	if found {
		r.table.Store(&next)
	}
	return found
}

// listenersFor returns the ordered entries for kind. Callers must not
// modify the returned slice.
func (r *listenerRegistry) listenersFor(kind Kind) []listenerEntry {
	if !kind.valid() {
		return nil
	}
	return r.load()[kind]
}
