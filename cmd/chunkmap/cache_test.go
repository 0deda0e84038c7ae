package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCacheCmdExists(t *testing.T) {
	cmd := cacheCmd()
	require.NotNil(t, cmd)
	assert.Equal(t, "cache [file...]", cmd.Use)
}

func TestCacheCmdShowsAndClearsEntries(t *testing.T) {
	root := testProject(t)
	cache := filepath.Join(t.TempDir(), "imports.db")

	_, _, err := execute(t, "deps", "--root", root, "--cache", cache)
	require.NoError(t, err)

	out, _, err := execute(t, "cache", "--cache", cache, "app.py", "gone.py")
	require.NoError(t, err)
	assert.Contains(t, out, "1 cached file\n")
	assert.Contains(t, out, "app.py: [os requests models widgets]")
	assert.Contains(t, out, "gone.py: not cached")

	out, _, err = execute(t, "cache", "--cache", cache, "--clear")
	require.NoError(t, err)
	assert.Contains(t, out, "cleared 1 cached file\n")

	out, _, err = execute(t, "cache", "--cache", cache)
	require.NoError(t, err)
	assert.Contains(t, out, "0 cached files")
}

func TestCacheCmdRequiresPath(t *testing.T) {
	_, _, err := execute(t, "cache")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no cache configured")
}

func TestFileWord(t *testing.T) {
	assert.Equal(t, "file", fileWord(1))
	assert.Equal(t, "files", fileWord(0))
	assert.Equal(t, "files", fileWord(2))
}
