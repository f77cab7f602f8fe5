package dist

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// VersionMismatchError reports a binary whose self-reported version line
// deviates in any way from the pinned expectation.
type VersionMismatchError struct {
	Binary   string
	Expected string
	Actual   string
}

func (e *VersionMismatchError) Error() string {
	return fmt.Sprintf("version mismatch for %s:\nactual:   %q\nexpected: %q",
		e.Binary, e.Actual, e.Expected)
}

// VerifyVersion runs "<binary> version" and requires its stdout, with
// trailing newlines stripped, to equal the distribution's version line
// byte-for-byte. A binary that fails to run is equally fatal.
func (d Distribution) VerifyVersion(ctx context.Context, binaryPath string) error {
	out, err := exec.CommandContext(ctx, binaryPath, "version").Output()
	if err != nil {
		return fmt.Errorf("run %s version: %w", binaryPath, err)
	}

	got := strings.TrimRight(string(out), "\n")
	if want := d.VersionOutput(); got != want {
		return &VersionMismatchError{Binary: binaryPath, Expected: want, Actual: got}
	}
	return nil
}
