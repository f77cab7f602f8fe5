// Package dist describes godel distributions: their naming scheme, the
// archive layout every distribution must ship, and the pinned version and
// checksums this wrapper was built against.
package dist

import (
	"path"
	"path/filepath"

	"github.com/ZebulonRouseFrantzich/godelw/internal/platform"
)

// Distribution names one versioned godel release.
type Distribution struct {
	Name    string
	Version string
}

// String returns the versioned distribution name, e.g. "godel-2.17.0".
func (d Distribution) String() string {
	return d.Name + "-" + d.Version
}

// ArchiveFilename returns the artifact filename kept under downloads/.
func (d Distribution) ArchiveFilename() string {
	return d.String() + ".tgz"
}

// RootDir returns the directory every archive entry lives under, which is
// also the directory name the distribution is installed as.
func (d Distribution) RootDir() string {
	return d.String()
}

// WrapperName returns the name of the wrapper script shipped inside the
// distribution, e.g. "godelw".
func (d Distribution) WrapperName() string {
	return d.Name + "w"
}

// RequiredEntries returns the archive entry names every distribution must
// contain: the root directory, one binary per supported platform, the
// config directory, and the wrapper script. Directory entries keep their
// trailing slash; matching against archive listings is byte-exact.
func (d Distribution) RequiredEntries() []string {
	root := d.RootDir()
	entries := []string{root + "/"}
	for _, p := range platform.Supported() {
		entries = append(entries, path.Join(root, "bin", p.String()+"-amd64", d.Name))
	}
	entries = append(entries,
		path.Join(root, "wrapper", d.Name)+"/",
		path.Join(root, "wrapper", d.WrapperName()),
	)
	return entries
}

// BinaryRelPath returns the platform binary's path relative to the
// distribution root.
func (d Distribution) BinaryRelPath(p platform.Platform) string {
	return filepath.Join("bin", p.String()+"-amd64", d.Name)
}

// VersionOutput returns the exact line the distribution binary must print
// when invoked with "version".
func (d Distribution) VersionOutput() string {
	return d.Name + " version " + d.Version
}

// Pin is the build-time record tying one wrapper build to one distribution
// version and its per-platform binary checksums. It is constructed once at
// process start and passed down unchanged.
type Pin struct {
	Version        string
	DarwinChecksum string
	LinuxChecksum  string
}

// ChecksumFor returns the expected SHA-256 of the platform's distribution
// binary.
func (p Pin) ChecksumFor(pl platform.Platform) (string, bool) {
	switch pl {
	case platform.Darwin:
		return p.DarwinChecksum, p.DarwinChecksum != ""
	case platform.Linux:
		return p.LinuxChecksum, p.LinuxChecksum != ""
	default:
		return "", false
	}
}
