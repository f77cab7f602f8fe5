// Package testutil provides helpers for testing the wrapper in isolation.
package testutil

import (
	"path/filepath"
	"testing"
)

// CacheRoot points GODEL_HOME at a per-test temp directory and returns it.
// This keeps tests away from the user's real ~/.godel cache; cleanup is
// handled by t.TempDir.
func CacheRoot(t *testing.T) string {
	t.Helper()

	root := filepath.Join(t.TempDir(), "godel-home")
	t.Setenv("GODEL_HOME", root)
	return root
}
