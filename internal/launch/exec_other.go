//go:build !unix

package launch

// New returns the platform launcher. Without an exec primitive the binary
// runs as a child and its exit code is propagated.
func New() Launcher {
	return &SpawnLauncher{}
}
