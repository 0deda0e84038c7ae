// Package project provides a read-only view of a project tree on disk.
// Every analysis component receives a *Context instead of touching the
// process working directory, so repeated existence probes within one run
// hit a cache and tests can substitute a synthetic tree.
package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// existsCacheSize bounds the number of memoised existence probes.
const existsCacheSize = 4096

// Context is the project root plus a cached filesystem view rooted at it.
// It is safe for concurrent use.
type Context struct {
	root   string
	fsys   fs.FS
	exists *lru.Cache[string, bool]
}

// New returns a Context for the directory at root. The root must exist and
// be a directory.
func New(root string) (*Context, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving project root: %w", err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("project root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project root %s is not a directory", abs)
	}
	return NewFS(abs, os.DirFS(abs)), nil
}

// NewFS returns a Context backed by an arbitrary fs.FS. The root is only
// used for display.
func NewFS(root string, fsys fs.FS) *Context {
	// lru.New only fails for a non-positive size.
	exists, _ := lru.New[string, bool](existsCacheSize)
	return &Context{
		root:   root,
		fsys:   fsys,
		exists: exists,
	}
}

// Root returns the project root as given to New.
func (c *Context) Root() string {
	return c.root
}

// Exists reports whether rel names a file or directory inside the project.
// Answers are memoised in a bounded LRU for the lifetime of the Context.
func (c *Context) Exists(rel string) bool {
	name, ok := fsPath(rel)
	if !ok {
		return false
	}

	if hit, ok := c.exists.Get(name); ok {
		return hit
	}

	_, err := fs.Stat(c.fsys, name)
	hit := err == nil
	c.exists.Add(name, hit)
	return hit
}

// ReadFile reads the file at rel relative to the project root.
func (c *Context) ReadFile(rel string) ([]byte, error) {
	name, ok := fsPath(rel)
	if !ok {
		return nil, &fs.PathError{Op: "read", Path: rel, Err: fs.ErrInvalid}
	}
	data, err := fs.ReadFile(c.fsys, name)
	if err != nil {
		return nil, err
	}
	return data, nil
}

// IsNotExist reports whether err means the requested file is absent.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// fsPath converts a project-relative OS path into an fs.FS path. Paths that
// escape the root are rejected.
func fsPath(rel string) (string, bool) {
	if rel == "" {
		return "", false
	}
	p := path.Clean(filepath.ToSlash(rel))
	p = strings.TrimPrefix(p, "./")
	if p == ".." || strings.HasPrefix(p, "../") || path.IsAbs(p) {
		return "", false
	}
	if !fs.ValidPath(p) {
		return "", false
	}
	return p, true
}
