// Package fsutil holds small filesystem predicates shared by the demo steps.
package fsutil

import (
	"errors"
	"os"
)

// FileExists reports whether something exists at path. Symlinks are
// followed, so a dangling link does not exist.
func FileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return !errors.Is(err, os.ErrNotExist)
}

// FirstExisting returns the first path in candidates that exists, in order.
// The second return value is false when none of them exist.
func FirstExisting(candidates []string) (string, bool) {
	for _, p := range candidates {
		if FileExists(p) {
			return p, true
		}
	}
	return "", false
}
