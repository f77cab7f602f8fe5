package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubClient struct {
	name      string
	available bool
	err       error
	content   string
	calls     *int
}

func (s stubClient) Name() string    { return s.name }
func (s stubClient) Available() bool { return s.available }
func (s stubClient) Fetch(_ context.Context, _, dest string) error {
	if s.calls != nil {
		*s.calls++
	}
	if s.err != nil {
		return s.err
	}
	return os.WriteFile(dest, []byte(s.content), 0o644)
}

func newTestHTTPClient() *HTTPClient {
	c := NewHTTPClient("godelw/test")
	c.progress = func() bool { return false }
	return c
}

func TestHTTPClientFetch(t *testing.T) {
	const payload = "archive-bytes"

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "godelw/test", r.Header.Get("User-Agent"))
		w.Write([]byte(payload))
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "downloads", "godel-2.17.0.tgz")
	require.NoError(t, newTestHTTPClient().Fetch(context.Background(), srv.URL, dest))

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, payload, string(got))
}

func TestHTTPClientFetch_FollowsRedirect(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/artifact" {
			w.Write([]byte("redirected"))
			return
		}
		http.Redirect(w, r, "/artifact", http.StatusFound)
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "artifact.tgz")
	require.NoError(t, newTestHTTPClient().Fetch(context.Background(), srv.URL, dest))

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "redirected", string(got))
}

func TestHTTPClientFetch_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "artifact.tgz")
	err := newTestHTTPClient().Fetch(context.Background(), srv.URL, dest)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")

	// No partial file, and no straggling temp file either.
	assert.NoFileExists(t, dest)
	assert.NoFileExists(t, dest+".tmp")
}

func TestHTTPClientFetch_OverwritesExisting(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("fresh"))
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "artifact.tgz")
	require.NoError(t, os.WriteFile(dest, []byte("stale"), 0o644))

	require.NoError(t, newTestHTTPClient().Fetch(context.Background(), srv.URL, dest))

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "fresh", string(got))
}

func TestChainFetch(t *testing.T) {
	ctx := context.Background()

	t.Run("first_available_wins", func(t *testing.T) {
		var secondCalls int
		chain := NewChain(
			stubClient{name: "http", available: true, content: "from-http"},
			stubClient{name: "curl", available: true, content: "from-curl", calls: &secondCalls},
		)

		dest := filepath.Join(t.TempDir(), "artifact.tgz")
		require.NoError(t, chain.Fetch(ctx, "https://example.com/a.tgz", dest))

		got, err := os.ReadFile(dest)
		require.NoError(t, err)
		assert.Equal(t, "from-http", string(got))
		assert.Zero(t, secondCalls)
	})

	t.Run("falls_back_on_failure", func(t *testing.T) {
		chain := NewChain(
			stubClient{name: "http", available: true, err: errors.New("connection refused")},
			stubClient{name: "curl", available: true, content: "from-curl"},
		)

		dest := filepath.Join(t.TempDir(), "artifact.tgz")
		require.NoError(t, chain.Fetch(ctx, "https://example.com/a.tgz", dest))

		got, err := os.ReadFile(dest)
		require.NoError(t, err)
		assert.Equal(t, "from-curl", string(got))
	})

	t.Run("skips_unavailable", func(t *testing.T) {
		var firstCalls int
		chain := NewChain(
			stubClient{name: "http", available: false, calls: &firstCalls},
			stubClient{name: "curl", available: true, content: "from-curl"},
		)

		dest := filepath.Join(t.TempDir(), "artifact.tgz")
		require.NoError(t, chain.Fetch(ctx, "https://example.com/a.tgz", dest))
		assert.Zero(t, firstCalls)
	})

	t.Run("all_fail_names_both_tools", func(t *testing.T) {
		chain := NewChain(
			stubClient{name: "http", available: true, err: errors.New("connection refused")},
			stubClient{name: "curl", available: false},
		)

		err := chain.Fetch(ctx, "https://example.com/a.tgz", filepath.Join(t.TempDir(), "a.tgz"))
		require.Error(t, err)

		var fetchErr *Error
		require.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, "https://example.com/a.tgz", fetchErr.URL)
		require.Len(t, fetchErr.Attempts, 2)
		assert.Contains(t, err.Error(), "http: connection refused")
		assert.Contains(t, err.Error(), "curl: not installed")
	})

	t.Run("none_installed", func(t *testing.T) {
		chain := NewChain(
			stubClient{name: "http", available: false},
			stubClient{name: "curl", available: false},
		)

		err := chain.Fetch(ctx, "https://example.com/a.tgz", filepath.Join(t.TempDir(), "a.tgz"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "http: not installed")
		assert.Contains(t, err.Error(), "curl: not installed")
	})
}

func TestDefaultChain_EndToEnd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("payload"))
	}))
	defer srv.Close()

	dest := filepath.Join(t.TempDir(), "artifact.tgz")
	chain := DefaultChain("godelw/test")
	require.NoError(t, chain.Fetch(context.Background(), srv.URL, dest))
	assert.FileExists(t, dest)
}
