package dirwatch

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorRing_NilSafe(t *testing.T) {
	var r *errorRing

	// All operations should be safe on nil
	r.push(errors.New("test"))

	if r.all() != nil {
		t.Error("expected nil from nil ring")
	}
	if r.len() != 0 {
		t.Errorf("expected len 0, got %d", r.len())
	}
}

func TestErrorRing_ZeroSize(t *testing.T) {
	if r := newErrorRing(0); r != nil {
		t.Error("expected nil ring for size 0")
	}
	if r := newErrorRing(-1); r != nil {
		t.Error("expected nil ring for negative size")
	}
}

func TestErrorRing_FillsWithoutWrapping(t *testing.T) {
	r := newErrorRing(3)

	r.push(errors.New("error1"))
	r.push(errors.New("error2"))

	errs := r.all()
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(errs))
	}
	if errs[0].Error() != "error1" || errs[1].Error() != "error2" {
		t.Errorf("unexpected order: %v", errs)
	}
}

func TestErrorRing_WrapsOldestFirst(t *testing.T) {
	r := newErrorRing(3)

	for i := 1; i <= 5; i++ {
		r.push(fmt.Errorf("error%d", i))
	}

	errs := r.all()
	if len(errs) != 3 {
		t.Fatalf("expected 3 errors, got %d", len(errs))
	}
	want := []string{"error3", "error4", "error5"}
	for i, w := range want {
		if errs[i].Error() != w {
			t.Errorf("index %d: expected %s, got %s", i, w, errs[i])
		}
	}
	if r.len() != 3 {
		t.Errorf("expected len 3, got %d", r.len())
	}
}

func TestErrorRing_ConcurrentPush(t *testing.T) {
	r := newErrorRing(8)
	done := make(chan struct{})

	for g := 0; g < 4; g++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for i := 0; i < 100; i++ {
				r.push(errors.New("concurrent"))
			}
		}()
	}
	for g := 0; g < 4; g++ {
		<-done
	}

	if r.len() != 8 {
		t.Errorf("expected full ring of 8, got %d", r.len())
	}
}
