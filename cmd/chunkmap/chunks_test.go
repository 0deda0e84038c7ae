package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianshen/chunkmap/internal/registry"
)

func TestChunksCmdExists(t *testing.T) {
	cmd := chunksCmd()
	require.NotNil(t, cmd)
	assert.Equal(t, "chunks", cmd.Use)
}

func TestChunksCmdListsChunks(t *testing.T) {
	root := testProject(t)

	out, _, err := execute(t, "chunks", "--root", root)
	require.NoError(t, err)
	assert.Contains(t, out, "chunk_app")
	assert.Contains(t, out, "chunk_models")
	assert.Contains(t, out, "in-progress")
	assert.Contains(t, out, "complete")
	assert.Contains(t, out, "*")
}

func TestChunksCmdStatusFilter(t *testing.T) {
	root := testProject(t)

	out, _, err := execute(t, "chunks", "--root", root, "--status", "complete")
	require.NoError(t, err)
	assert.Contains(t, out, "chunk_models")
	assert.NotContains(t, out, "chunk_app")
}

func TestChunksCmdUnknownStatus(t *testing.T) {
	root := testProject(t)

	_, _, err := execute(t, "chunks", "--root", root, "--status", "blocked")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown status "blocked"`)
}

func TestChunkTablePendingIncludesUnset(t *testing.T) {
	reg := &registry.Registry{Chunks: []registry.Chunk{
		{ID: "unset"},
		{ID: "done", Status: registry.StatusComplete},
	}}

	out := chunkTable(reg, registry.StatusPending)
	assert.Contains(t, out, "unset")
	assert.NotContains(t, out, "done")
}

func TestChunksCmdMissingRegistry(t *testing.T) {
	root := writeFiles(t, map[string]string{"app.py": ""})

	_, _, err := execute(t, "chunks", "--root", root)
	assert.ErrorIs(t, err, registry.ErrRegistryNotFound)
}

func TestMarkerAndStatus(t *testing.T) {
	assert.Equal(t, "*", marker(registry.Chunk{ID: "a"}, "a"))
	assert.Empty(t, marker(registry.Chunk{ID: "b"}, "a"))
	assert.Equal(t, registry.StatusPending, statusOf(registry.Chunk{}))
	assert.Equal(t, registry.StatusComplete, statusOf(registry.Chunk{Status: registry.StatusComplete}))
}
