// Package layout resolves the godel cache root and the paths the wrapper
// reads and writes beneath it.
//
// The cache root is $GODEL_HOME when set, ~/.godel otherwise:
//
//	<root>/downloads/godel-<version>.tgz   fetched artifacts
//	<root>/dists/godel-<version>/          unpacked, verified distributions
//	<root>/tmp_<random>/                   transient extraction dirs
package layout

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ZebulonRouseFrantzich/godelw/internal/dist"
	"github.com/ZebulonRouseFrantzich/godelw/internal/platform"
)

const (
	// EnvHome overrides the default cache root.
	EnvHome = "GODEL_HOME"

	// defaultDirName is the cache directory under $HOME used when
	// GODEL_HOME is unset or empty.
	defaultDirName = ".godel"

	// TempPattern is the MkdirTemp pattern for extraction dirs. Temp dirs
	// live directly under the cache root so the rename into dists/ never
	// crosses a filesystem boundary.
	TempPattern = "tmp_"
)

// Home is the resolved cache root. Nothing is created on disk at resolve
// time.
type Home struct {
	root string
}

// NewHome wraps an explicit cache root.
func NewHome(root string) Home {
	return Home{root: root}
}

// Resolve determines the cache root from the environment.
func Resolve() (Home, error) {
	if root := os.Getenv(EnvHome); root != "" {
		return Home{root: root}, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Home{}, fmt.Errorf("resolve user home directory: %w", err)
	}
	return Home{root: filepath.Join(homeDir, defaultDirName)}, nil
}

// Root returns the cache root path.
func (h Home) Root() string {
	return h.root
}

// DownloadsDir returns the directory holding fetched artifacts.
func (h Home) DownloadsDir() string {
	return filepath.Join(h.root, "downloads")
}

// DistsDir returns the directory holding unpacked distributions.
func (h Home) DistsDir() string {
	return filepath.Join(h.root, "dists")
}

// ArchivePath returns the download destination for the distribution's
// artifact.
func (h Home) ArchivePath(d dist.Distribution) string {
	return filepath.Join(h.DownloadsDir(), d.ArchiveFilename())
}

// DistDir returns the permanent install directory for the distribution.
func (h Home) DistDir(d dist.Distribution) string {
	return filepath.Join(h.DistsDir(), d.RootDir())
}

// BinaryPath returns the installed platform binary's path.
func (h Home) BinaryPath(d dist.Distribution, p platform.Platform) string {
	return filepath.Join(h.DistDir(d), d.BinaryRelPath(p))
}
