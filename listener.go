package dirwatch

import "context"

// Handler receives one event. Handlers run synchronously on the event loop
// goroutine unless a dispatch timeout is configured; a slow handler delays
// every event after it. ctx is canceled when the Watcher stops.
type Handler func(ctx context.Context, event Event)

// Listener declares which kinds an observer wants, with one handler per kind,
// and optionally restricts delivery to a single file.
//
// Build one with NewListener and the chainable On* methods, then pass it to
// Watcher.Register. Register copies what it needs, so later changes to the
// Listener do not affect an existing registration.
//
//	readme := dirwatch.NewListener("readme").
//	    OnCreated(created).
//	    OnModified(modified).
//	    Target("./README.md")
//	w.Register(readme)
type Listener struct {
	name     string
	target   string
	handlers [kindCount]Handler
}

// NewListener creates a Listener with no handlers. The name is used in
// signals and errors.
func NewListener(name string) *Listener {
	return &Listener{name: name}
}

// On sets the handler for kind. Unknown kinds are ignored.
func (l *Listener) On(kind Kind, fn Handler) *Listener {
	if kind.valid() {
		l.handlers[kind] = fn
	}
	return l
}

// OnCreated sets the handler for Created events.
func (l *Listener) OnCreated(fn Handler) *Listener { return l.On(Created, fn) }

// OnDeleted sets the handler for Deleted events.
func (l *Listener) OnDeleted(fn Handler) *Listener { return l.On(Deleted, fn) }

// OnModified sets the handler for Modified events.
func (l *Listener) OnModified(fn Handler) *Listener { return l.On(Modified, fn) }

// Target restricts delivery to events whose path canonically equals path.
// An empty path removes the restriction.
func (l *Listener) Target(path string) *Listener {
	l.target = path
	return l
}

// Name returns the listener name.
func (l *Listener) Name() string { return l.name }

// TargetPath returns the target path and whether one is set.
func (l *Listener) TargetPath() (string, bool) {
	return l.target, l.target != ""
}

// Kinds returns the kinds this listener has handlers for.
func (l *Listener) Kinds() []Kind {
	var kinds []Kind
	for _, k := range Kinds() {
		if l.handlers[k] != nil {
			kinds = append(kinds, k)
		}
	}
	return kinds
}
