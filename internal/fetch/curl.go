package fetch

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// CurlClient shells out to curl. Available only when curl is on PATH.
type CurlClient struct{}

// Name implements Client.
func (CurlClient) Name() string { return "curl" }

// Available implements Client.
func (CurlClient) Available() bool {
	_, err := exec.LookPath("curl")
	return err == nil
}

// Fetch implements Client. curl writes to dest+".tmp"; on success the file
// is renamed into place. -f makes HTTP errors fatal, -L follows redirects.
func (CurlClient) Fetch(ctx context.Context, url, dest string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create download dir: %w", err)
	}

	tmpPath := dest + ".tmp"
	cmd := exec.CommandContext(ctx, "curl", "-f", "-L", "-s", "-S", "-o", tmpPath, url)
	var stderr strings.Builder
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		os.Remove(tmpPath)
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("curl: %s: %w", msg, err)
		}
		return fmt.Errorf("curl: %w", err)
	}

	if err := os.Rename(tmpPath, dest); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
