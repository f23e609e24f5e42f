package dirwatch

import "testing"

func TestState_String(t *testing.T) {
	cases := map[State]string{
		StateIdle:     "idle",
		StateRunning:  "running",
		StateDraining: "draining",
		StateStopped:  "stopped",
		State(999):    "unknown",
	}
	for state, want := range cases {
		if got := state.String(); got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	}
}

func TestState_Values(t *testing.T) {
	// Verify iota ordering
	if StateIdle != 0 {
		t.Errorf("expected StateIdle=0, got %d", StateIdle)
	}
	if StateRunning != 1 {
		t.Errorf("expected StateRunning=1, got %d", StateRunning)
	}
	if StateDraining != 2 {
		t.Errorf("expected StateDraining=2, got %d", StateDraining)
	}
	if StateStopped != 3 {
		t.Errorf("expected StateStopped=3, got %d", StateStopped)
	}
}
