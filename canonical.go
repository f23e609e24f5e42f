package dirwatch

import (
	"errors"
	"io/fs"
	"path/filepath"
)

// Canonicalize returns the absolute, symlink-free form of path.
//
// Paths that do not exist (a file that was just deleted, or one not yet
// created) are resolved through their deepest existing ancestor, so a
// deleted file still compares equal to its former canonical path. Any
// other resolution failure is returned.
func Canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err == nil {
		return resolved, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return "", err
	}

	parent := filepath.Dir(abs)
	if parent == abs {
		return abs, nil
	}
	dir, err := Canonicalize(parent)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, filepath.Base(abs)), nil
}

// SamePath reports whether a and b canonicalize to the same path.
func SamePath(a, b string) (bool, error) {
	ca, err := Canonicalize(a)
	if err != nil {
		return false, err
	}
	cb, err := Canonicalize(b)
	if err != nil {
		return false, err
	}
	return ca == cb, nil
}
