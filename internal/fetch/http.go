package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// maxRedirects caps redirect-following for the native client.
const maxRedirects = 10

// HTTPClient downloads with the standard library's HTTP client. Always
// available. The client carries no timeout: the transfer blocks until it
// completes or fails.
type HTTPClient struct {
	client    *http.Client
	userAgent string

	// progress gates the stderr progress bar; overridden in tests.
	progress func() bool
}

// NewHTTPClient creates the native download client.
func NewHTTPClient(userAgent string) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		},
		userAgent: userAgent,
		progress:  func() bool { return term.IsTerminal(int(os.Stderr.Fd())) },
	}
}

// Name implements Client.
func (c *HTTPClient) Name() string { return "http" }

// Available implements Client.
func (c *HTTPClient) Available() bool { return true }

// Fetch implements Client. The body streams to dest+".tmp" and is renamed
// into place only on success, so a failed transfer never leaves a partial
// file at dest.
func (c *HTTPClient) Fetch(ctx context.Context, url, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code %d from %s", resp.StatusCode, url)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("create download dir: %w", err)
	}

	tmpPath := dest + ".tmp"
	tmpFile, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	cleanupNeeded := true
	defer func() {
		tmpFile.Close()
		if cleanupNeeded {
			os.Remove(tmpPath)
		}
	}()

	var body io.Reader = resp.Body
	if c.progress() && resp.ContentLength > 0 {
		bar := progressbar.NewOptions64(resp.ContentLength,
			progressbar.OptionSetDescription(filepath.Base(dest)),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionClearOnFinish(),
		)
		reader := progressbar.NewReader(resp.Body, bar)
		defer bar.Exit()
		body = &reader
	}

	if _, err := io.Copy(tmpFile, body); err != nil {
		return fmt.Errorf("copy response body: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}

	cleanupNeeded = false
	return nil
}
