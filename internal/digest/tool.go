package digest

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Sha256sumTool shells out to sha256sum (coreutils).
type Sha256sumTool struct{}

// Name implements Provider.
func (Sha256sumTool) Name() string { return "sha256sum" }

// Available implements Provider.
func (Sha256sumTool) Available() bool {
	_, err := exec.LookPath("sha256sum")
	return err == nil
}

// Sum implements Provider.
func (Sha256sumTool) Sum(ctx context.Context, path string) (string, error) {
	return runDigestTool(ctx, path, "sha256sum", path)
}

// ShasumTool shells out to shasum -a 256, which ships with macOS.
type ShasumTool struct{}

// Name implements Provider.
func (ShasumTool) Name() string { return "shasum" }

// Available implements Provider.
func (ShasumTool) Available() bool {
	_, err := exec.LookPath("shasum")
	return err == nil
}

// Sum implements Provider.
func (ShasumTool) Sum(ctx context.Context, path string) (string, error) {
	return runDigestTool(ctx, path, "shasum", "-a", "256", path)
}

// runDigestTool executes a checksum command and parses the leading hex
// field of its "<digest>  <filename>" output.
func runDigestTool(ctx context.Context, path, tool string, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, tool, args...).Output()
	if err != nil {
		return "", fmt.Errorf("run %s: %w", tool, err)
	}

	fields := strings.Fields(string(out))
	if len(fields) == 0 {
		return "", fmt.Errorf("%s produced no output for %s", tool, path)
	}
	sum := fields[0]
	if len(sum) != 64 {
		return "", fmt.Errorf("%s produced malformed digest %q", tool, sum)
	}
	return strings.ToLower(sum), nil
}
