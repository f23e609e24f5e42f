package dirwatch

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCanonicalize_ResolvesSymlinks(t *testing.T) {
	base, err := Canonicalize(t.TempDir())
	if err != nil {
		t.Fatalf("Canonicalize() error = %v", err)
	}
	link := filepath.Join(t.TempDir(), "link")
	if err := os.Symlink(base, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	got, err := Canonicalize(filepath.Join(link, "file.txt"))
	if err != nil {
		t.Fatalf("Canonicalize() error = %v", err)
	}
	if want := filepath.Join(base, "file.txt"); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestCanonicalize_MissingPathResolvesThroughParent(t *testing.T) {
	dir, err := Canonicalize(t.TempDir())
	if err != nil {
		t.Fatalf("Canonicalize() error = %v", err)
	}

	got, err := Canonicalize(filepath.Join(dir, "gone", "deeper", "file.txt"))
	if err != nil {
		t.Fatalf("Canonicalize() error = %v", err)
	}
	if want := filepath.Join(dir, "gone", "deeper", "file.txt"); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestCanonicalize_CleansDotSegments(t *testing.T) {
	dir, err := Canonicalize(t.TempDir())
	if err != nil {
		t.Fatalf("Canonicalize() error = %v", err)
	}

	got, err := Canonicalize(dir + "/./sub/../file.txt")
	if err != nil {
		t.Fatalf("Canonicalize() error = %v", err)
	}
	if want := filepath.Join(dir, "file.txt"); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestCanonicalize_FailsThroughRegularFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "plain.txt")
	if err := os.WriteFile(file, []byte("x"), 0o600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	if _, err := Canonicalize(filepath.Join(file, "child")); err == nil {
		t.Error("expected error resolving a path below a regular file")
	}
}

func TestSamePath(t *testing.T) {
	dir := t.TempDir()

	same, err := SamePath(filepath.Join(dir, "a.txt"), dir+"/sub/../a.txt")
	if err != nil {
		t.Fatalf("SamePath() error = %v", err)
	}
	if !same {
		t.Error("expected paths to match")
	}

	same, err = SamePath(filepath.Join(dir, "a.txt"), filepath.Join(dir, "b.txt"))
	if err != nil {
		t.Fatalf("SamePath() error = %v", err)
	}
	if same {
		t.Error("expected paths to differ")
	}
}
