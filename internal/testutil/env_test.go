package testutil_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZebulonRouseFrantzich/godelw/internal/testutil"
)

func TestCacheRoot(t *testing.T) {
	root := testutil.CacheRoot(t)

	assert.True(t, filepath.IsAbs(root))
	assert.Equal(t, root, os.Getenv("GODEL_HOME"))

	// The root is reserved, not created.
	_, err := os.Stat(root)
	assert.True(t, os.IsNotExist(err))
}

func TestCacheRoot_Isolation(t *testing.T) {
	root1 := testutil.CacheRoot(t)

	t.Run("subtest", func(t *testing.T) {
		root2 := testutil.CacheRoot(t)
		assert.NotEqual(t, root1, root2)
	})

	// The subtest's Setenv is undone on its completion.
	require.Equal(t, root1, os.Getenv("GODEL_HOME"))
}
