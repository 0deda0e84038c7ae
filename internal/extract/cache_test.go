package extract

import (
	"context"
	"errors"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianshen/chunkmap/internal/project"
)

type memCache struct {
	mu      sync.Mutex
	entries map[string][]string
	lookups int
	saves   int
	failing bool
}

func newMemCache() *memCache {
	return &memCache{entries: make(map[string][]string)}
}

func (c *memCache) Lookup(path, digest string) ([]string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lookups++
	if c.failing {
		return nil, false, errors.New("lookup failed")
	}
	names, ok := c.entries[path+"@"+digest]
	return names, ok, nil
}

func (c *memCache) Save(path, digest string, names []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.saves++
	if c.failing {
		return errors.New("save failed")
	}
	c.entries[path+"@"+digest] = names
	return nil
}

func TestDigest(t *testing.T) {
	assert.Len(t, Digest([]byte("import os\n")), 32)
	assert.Equal(t, Digest([]byte("a")), Digest([]byte("a")))
	assert.NotEqual(t, Digest([]byte("a")), Digest([]byte("b")))
}

func TestFilesUsesCache(t *testing.T) {
	source := []byte("import os\nimport requests\n")
	pc := project.NewFS("/proj", fstest.MapFS{"a.py": {Data: source}})
	cache := newMemCache()

	first, err := Files(context.Background(), pc, []string{"a.py"}, 1, cache)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.saves)
	assert.Equal(t, []string{"os", "requests"}, cache.entries["a.py@"+Digest(source)])

	second, err := Files(context.Background(), pc, []string{"a.py"}, 1, cache)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.saves, "hit does not save again")
	assert.Equal(t, 2, cache.lookups)
	assert.Equal(t, first, second)
}

func TestFilesCacheHitServesStoredNames(t *testing.T) {
	source := []byte("import os\n")
	pc := project.NewFS("/proj", fstest.MapFS{"a.py": {Data: source}})
	cache := newMemCache()
	cache.entries["a.py@"+Digest(source)] = []string{"cached"}

	got, err := Files(context.Background(), pc, []string{"a.py"}, 1, cache)
	require.NoError(t, err)
	require.Len(t, got[0].Imports, 1)
	assert.Equal(t, "cached", got[0].Imports[0].Name)
}

func TestFilesCacheFailuresFallBack(t *testing.T) {
	pc := project.NewFS("/proj", fstest.MapFS{"a.py": {Data: []byte("import requests\n")}})
	cache := newMemCache()
	cache.failing = true

	got, err := Files(context.Background(), pc, []string{"a.py"}, 1, cache)
	require.NoError(t, err)
	assert.Equal(t, []string{"requests"}, Names(got[0].Imports))
}

func TestFilesCacheSkipsUnsupported(t *testing.T) {
	pc := project.NewFS("/proj", fstest.MapFS{"README.md": {Data: []byte("# hi\n")}})
	cache := newMemCache()

	_, err := Files(context.Background(), pc, []string{"README.md", "gone.py"}, 2, cache)
	require.NoError(t, err)
	assert.Zero(t, cache.lookups)
	assert.Zero(t, cache.saves)
}
