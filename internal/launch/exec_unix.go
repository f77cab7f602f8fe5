//go:build unix

package launch

import (
	"context"
	"fmt"

	"golang.org/x/sys/unix"
)

// ExecLauncher replaces the wrapper's process image with the binary.
type ExecLauncher struct{}

// Launch implements Launcher. It only ever returns on failure.
func (ExecLauncher) Launch(_ context.Context, inv Invocation) (int, error) {
	err := unix.Exec(inv.Binary, inv.Argv(), unix.Environ())
	// Exec does not return on success.
	return 0, fmt.Errorf("exec %s: %w", inv.Binary, err)
}

// New returns the platform launcher.
func New() Launcher {
	return ExecLauncher{}
}
