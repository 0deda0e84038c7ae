// Package registry loads the chunk registry: the catalog of logical work
// phases ("chunks") that partition a project's files. The registry is
// produced by the phase-detection tooling and is read-only here.
package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultPath is where the registry lives relative to the project root.
const DefaultPath = ".claude/.chunks.json"

var (
	// ErrRegistryNotFound means the registry file does not exist.
	ErrRegistryNotFound = errors.New("chunks file not found")
	// ErrMalformedRegistry means the registry file is not valid JSON.
	ErrMalformedRegistry = errors.New("malformed chunks file")
	// ErrNoCurrentChunk means no chunk was requested and none is current.
	ErrNoCurrentChunk = errors.New("no current chunk set")
	// ErrChunkNotFound means the requested chunk id is not in the registry.
	ErrChunkNotFound = errors.New("chunk not found")
)

// Status is the progress state of a chunk.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusComplete   Status = "complete"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusComplete:
		return true
	}
	return false
}

// Chunk is one logical phase of work and the files it owns.
type Chunk struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Files        []string `json:"files"`
	EntryPoints  []string `json:"entry_points"`
	Dependencies []string `json:"dependencies"`
	Status       Status   `json:"status"`
	Completion   float64  `json:"completion"`
}

// Metadata summarizes progress across all chunks.
type Metadata struct {
	TotalChunks     int     `json:"total_chunks"`
	CompletedChunks int     `json:"completed_chunks"`
	OverallProgress float64 `json:"overall_progress"`
}

// Registry is the decoded chunk registry document.
type Registry struct {
	Strategy     string   `json:"strategy,omitempty"`
	CreatedAt    string   `json:"created_at,omitempty"`
	ProjectRoot  string   `json:"project_root,omitempty"`
	Chunks       []Chunk  `json:"chunks"`
	CurrentChunk *string  `json:"current_chunk"`
	Metadata     Metadata `json:"metadata"`
}

// Load reads and decodes the registry at path.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRegistryNotFound, path)
		}
		return nil, fmt.Errorf("reading chunks file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a registry document.
func Parse(data []byte) (*Registry, error) {
	var r Registry
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRegistry, err)
	}
	return &r, nil
}

// Get returns the chunk with the given id.
func (r *Registry) Get(id string) (Chunk, bool) {
	for _, c := range r.Chunks {
		if c.ID == id {
			return c, true
		}
	}
	return Chunk{}, false
}

// Current returns the designated current chunk id, if any.
func (r *Registry) Current() (string, bool) {
	if r.CurrentChunk == nil || *r.CurrentChunk == "" {
		return "", false
	}
	return *r.CurrentChunk, true
}

// Resolve returns the chunk named by id, or the current chunk when id is
// empty.
func (r *Registry) Resolve(id string) (Chunk, error) {
	if id == "" {
		current, ok := r.Current()
		if !ok {
			return Chunk{}, ErrNoCurrentChunk
		}
		id = current
	}
	c, ok := r.Get(id)
	if !ok {
		return Chunk{}, fmt.Errorf("%w: %s", ErrChunkNotFound, id)
	}
	return c, nil
}

// FindOwner returns the id of the first chunk listing path among its
// files. Chunks are expected, but not required, to own disjoint files.
func (r *Registry) FindOwner(path string) (string, bool) {
	target := filepath.Clean(path)
	for _, c := range r.Chunks {
		for _, f := range c.Files {
			if filepath.Clean(f) == target {
				return c.ID, true
			}
		}
	}
	return "", false
}

// DanglingDependency is a declared dependency on a chunk id that is not in
// the registry.
type DanglingDependency struct {
	Chunk     string
	DependsOn string
}

// DanglingDependencies lists declared dependencies that name no chunk.
func (r *Registry) DanglingDependencies() []DanglingDependency {
	known := make(map[string]bool, len(r.Chunks))
	for _, c := range r.Chunks {
		known[c.ID] = true
	}
	var out []DanglingDependency
	for _, c := range r.Chunks {
		for _, dep := range c.Dependencies {
			if !known[dep] {
				out = append(out, DanglingDependency{Chunk: c.ID, DependsOn: dep})
			}
		}
	}
	return out
}
