// Package launch hands control of the invocation to the installed binary.
//
// On unix the process image is replaced outright, so the wrapper's exit
// status is the tool's. Platforms without an exec primitive run the binary
// as a child and propagate its exit code instead.
package launch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// WrapperFlag is the synthesized flag carrying the wrapper's own path, so
// the launched tool knows how it was invoked.
const WrapperFlag = "--wrapper"

// Invocation describes one hand-off to the installed binary.
type Invocation struct {
	// Binary is the installed, checksum-verified binary path.
	Binary string
	// WrapperPath is the resolved path of the running wrapper.
	WrapperPath string
	// Args are the caller's arguments, forwarded untouched.
	Args []string
}

// Argv returns the full argument vector: the binary, the wrapper flag and
// its value, then every forwarded argument.
func (inv Invocation) Argv() []string {
	argv := make([]string, 0, 3+len(inv.Args))
	argv = append(argv, inv.Binary, WrapperFlag, inv.WrapperPath)
	return append(argv, inv.Args...)
}

// Launcher transfers control to an invocation's binary. Launch returns the
// binary's exit code, except on implementations that replace the process
// image, where a successful Launch never returns at all.
type Launcher interface {
	Launch(ctx context.Context, inv Invocation) (int, error)
}

// SpawnLauncher runs the binary as a child process with inherited stdio
// and environment, waits for it, and reports its exit code.
type SpawnLauncher struct {
	// Stdout and Stderr default to the wrapper's own streams.
	Stdout io.Writer
	Stderr io.Writer
}

// Launch implements Launcher.
func (l *SpawnLauncher) Launch(ctx context.Context, inv Invocation) (int, error) {
	argv := inv.Argv()
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = l.Stdout
	cmd.Stderr = l.Stderr
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	cmd.Env = os.Environ()

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode(), nil
		}
		return 0, fmt.Errorf("run %s: %w", inv.Binary, err)
	}
	return 0, nil
}
