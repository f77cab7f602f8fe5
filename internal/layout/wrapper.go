package layout

import (
	"fmt"
	"os"
	"path/filepath"
)

// WrapperPath returns the absolute, symlink-resolved path of the running
// wrapper executable. This path is forwarded to the launched tool and
// anchors the properties-file lookup.
func WrapperPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate wrapper executable: %w", err)
	}
	resolved, err := filepath.EvalSymlinks(exe)
	if err != nil {
		return "", fmt.Errorf("resolve wrapper executable: %w", err)
	}
	return resolved, nil
}

// PropertiesPath returns the properties-file location for a wrapper living
// in wrapperDir. The relative location is fixed.
func PropertiesPath(wrapperDir string) string {
	return filepath.Join(wrapperDir, "godel", "config", "godel.properties")
}
