package dirwatch

import (
	"context"
	"testing"
)

func noop(context.Context, Event) {}

func TestListener_Kinds(t *testing.T) {
	l := NewListener("multi").OnCreated(noop).OnModified(noop)

	kinds := l.Kinds()
	if len(kinds) != 2 || kinds[0] != Created || kinds[1] != Modified {
		t.Errorf("expected [created modified], got %v", kinds)
	}
	if _, ok := l.TargetPath(); ok {
		t.Error("expected no target")
	}

	l.Target("/data/a.txt")
	if target, ok := l.TargetPath(); !ok || target != "/data/a.txt" {
		t.Errorf("expected target /data/a.txt, got %q", target)
	}
}

func TestListener_OnIgnoresUnknownKind(t *testing.T) {
	l := NewListener("bad").On(Kind(9), noop)
	if len(l.Kinds()) != 0 {
		t.Errorf("expected no kinds, got %v", l.Kinds())
	}
}

func TestListenerRegistry_PerKindOrder(t *testing.T) {
	var r listenerRegistry

	a, _ := r.register(NewListener("a").OnCreated(noop))
	b, _ := r.register(NewListener("b").OnCreated(noop).OnDeleted(noop))
	c, _ := r.register(NewListener("c").OnCreated(noop))

	created := r.listenersFor(Created)
	if len(created) != 3 {
		t.Fatalf("expected 3 created listeners, got %d", len(created))
	}
	for i, id := range []ListenerID{a, b, c} {
		if created[i].id != id {
			t.Errorf("index %d: expected id %d, got %d", i, id, created[i].id)
		}
	}

	deleted := r.listenersFor(Deleted)
	if len(deleted) != 1 || deleted[0].id != b {
		t.Errorf("expected only b for deleted, got %+v", deleted)
	}
	if len(r.listenersFor(Modified)) != 0 {
		t.Error("expected no modified listeners")
	}
}

func TestListenerRegistry_NoHandlersIsNoop(t *testing.T) {
	var r listenerRegistry

	id, kinds := r.register(NewListener("empty"))
	if id != 0 || kinds != nil {
		t.Errorf("expected zero registration, got id=%d kinds=%v", id, kinds)
	}
	for _, k := range Kinds() {
		if n := len(r.listenersFor(k)); n != 0 {
			t.Errorf("%s: expected 0 listeners, got %d", k, n)
		}
	}
}

func TestListenerRegistry_DuplicateRegistration(t *testing.T) {
	var r listenerRegistry
	l := NewListener("twice").OnCreated(noop)

	first, _ := r.register(l)
	second, _ := r.register(l)

	if first == second {
		t.Error("expected distinct IDs for duplicate registration")
	}
	if n := len(r.listenersFor(Created)); n != 2 {
		t.Errorf("expected 2 entries, got %d", n)
	}
}

func TestListenerRegistry_SnapshotIsStable(t *testing.T) {
	var r listenerRegistry
	r.register(NewListener("a").OnCreated(noop))

	snapshot := r.listenersFor(Created)
	r.register(NewListener("b").OnCreated(noop))

	if len(snapshot) != 1 {
		t.Errorf("expected snapshot to keep 1 entry, got %d", len(snapshot))
	}
	if n := len(r.listenersFor(Created)); n != 2 {
		t.Errorf("expected 2 entries after register, got %d", n)
	}
}

func TestListenerRegistry_Unregister(t *testing.T) {
	var r listenerRegistry
	a, _ := r.register(NewListener("a").OnCreated(noop).OnModified(noop))
	b, _ := r.register(NewListener("b").OnCreated(noop))

	if !r.unregister(a) {
		t.Fatal("expected unregister to succeed")
	}
	if r.unregister(a) {
		t.Error("expected second unregister to fail")
	}

	created := r.listenersFor(Created)
	if len(created) != 1 || created[0].id != b {
		t.Errorf("expected only b, got %+v", created)
	}
	if len(r.listenersFor(Modified)) != 0 {
		t.Error("expected modified list to be empty")
	}
}

func TestListenerRegistry_LaterBuilderChangesIgnored(t *testing.T) {
	var r listenerRegistry
	l := NewListener("mutable").OnCreated(noop).Target("/a")
	r.register(l)

	l.Target("/b").OnDeleted(noop)

	created := r.listenersFor(Created)
	if created[0].target != "/a" {
		t.Errorf("expected registered target /a, got %s", created[0].target)
	}
	if len(r.listenersFor(Deleted)) != 0 {
		t.Error("expected handler added after registration to be ignored")
	}
}
