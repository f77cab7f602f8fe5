package digest

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scratchPath makes an empty directory the entire PATH and returns it, so
// each test controls exactly which tools exist.
func scratchPath(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("PATH", dir)
	return dir
}

// installTool drops an executable shell script named name into dir.
func installTool(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("#!/bin/sh\n"+body), 0o755))
}

func TestSha256sumTool_Available(t *testing.T) {
	dir := scratchPath(t)

	assert.False(t, Sha256sumTool{}.Available())

	installTool(t, dir, "sha256sum", "exit 0")
	assert.True(t, Sha256sumTool{}.Available())
}

func TestSha256sumTool_Sum(t *testing.T) {
	dir := scratchPath(t)
	path := writeFile(t, "abc")

	t.Run("parses_leading_hex_field", func(t *testing.T) {
		installTool(t, dir, "sha256sum", `echo "`+abcSHA256+`  $1"`)

		sum, err := Sha256sumTool{}.Sum(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, abcSHA256, sum)
	})

	t.Run("uppercase_output_normalized", func(t *testing.T) {
		installTool(t, dir, "sha256sum", `echo "`+strings.ToUpper(abcSHA256)+`  $1"`)

		sum, err := Sha256sumTool{}.Sum(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, abcSHA256, sum)
	})

	t.Run("malformed_digest_rejected", func(t *testing.T) {
		installTool(t, dir, "sha256sum", `echo "deadbeef  $1"`)

		_, err := Sha256sumTool{}.Sum(context.Background(), path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "malformed digest")
	})

	t.Run("empty_output_rejected", func(t *testing.T) {
		installTool(t, dir, "sha256sum", "exit 0")

		_, err := Sha256sumTool{}.Sum(context.Background(), path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no output")
	})

	t.Run("tool_failure_named", func(t *testing.T) {
		installTool(t, dir, "sha256sum", "exit 1")

		_, err := Sha256sumTool{}.Sum(context.Background(), path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sha256sum")
	})
}

func TestShasumTool_Available(t *testing.T) {
	dir := scratchPath(t)

	assert.False(t, ShasumTool{}.Available())

	installTool(t, dir, "shasum", "exit 0")
	assert.True(t, ShasumTool{}.Available())
}

func TestShasumTool_Sum(t *testing.T) {
	dir := scratchPath(t)
	path := writeFile(t, "abc")

	// The fake only answers a proper "shasum -a 256 <file>" invocation.
	installTool(t, dir, "shasum",
		`[ "$1" = "-a" ] || exit 2
[ "$2" = "256" ] || exit 2
echo "`+abcSHA256+`  $3"`)

	sum, err := ShasumTool{}.Sum(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, abcSHA256, sum)
}

func TestChainSum_FallsBackToTools(t *testing.T) {
	dir := scratchPath(t)
	path := writeFile(t, "abc")
	installTool(t, dir, "sha256sum", `echo "`+abcSHA256+`  $1"`)

	// No builtin in this chain: the first installed tool must carry it.
	chain := NewChain(Sha256sumTool{}, ShasumTool{})

	sum, provider, err := chain.Sum(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, abcSHA256, sum)
	assert.Equal(t, "sha256sum", provider)
}
