package dirwatch

import "testing"

func TestSignalNames(t *testing.T) {
	cases := []struct {
		signal interface{ Name() string }
		name   string
	}{
		{WatcherStarted, "dirwatch.watcher.started"},
		{WatcherStopped, "dirwatch.watcher.stopped"},
		{WatcherStateChanged, "dirwatch.watcher.state.changed"},
		{WatcherForcedStop, "dirwatch.watcher.forced.stop"},
		{DirectoryAdded, "dirwatch.directory.added"},
		{DirectoryRejected, "dirwatch.directory.rejected"},
		{DirectoryInvalidated, "dirwatch.directory.invalidated"},
		{DirectoryRemoved, "dirwatch.directory.removed"},
		{OverflowDetected, "dirwatch.overflow.detected"},
		{SourceFailed, "dirwatch.source.failed"},
		{ListenerRegistered, "dirwatch.listener.registered"},
		{ListenerUnregistered, "dirwatch.listener.unregistered"},
		{ListenerTargetUnresolved, "dirwatch.listener.target.unresolved"},
		{ListenerTimedOut, "dirwatch.listener.timed.out"},
		{ListenerPanicked, "dirwatch.listener.panicked"},
	}
	for _, tc := range cases {
		if tc.signal.Name() != tc.name {
			t.Errorf("expected name %q, got %q", tc.name, tc.signal.Name())
		}
	}
}
