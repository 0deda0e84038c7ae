package depgraph

import (
	"github.com/rs/zerolog/log"

	"github.com/julianshen/chunkmap/internal/classify"
	"github.com/julianshen/chunkmap/internal/extract"
	"github.com/julianshen/chunkmap/internal/project"
	"github.com/julianshen/chunkmap/internal/registry"
)

// Resolver maps import identifiers back to the chunk that owns their
// defining file. A candidate file is found by trying the owner probes in
// order; misses are expected and simply produce no edge.
type Resolver struct {
	registry *registry.Registry
	probes   classify.Probes
}

// NewResolver returns a Resolver over reg using probes to locate files.
func NewResolver(reg *registry.Registry, probes classify.Probes) *Resolver {
	return &Resolver{registry: reg, probes: probes}
}

// Owner returns the chunk owning the file that defines name.
func (r *Resolver) Owner(pc *project.Context, name string) (registry.Chunk, bool) {
	path, ok := r.probes.Resolve(pc, name)
	if !ok {
		return registry.Chunk{}, false
	}
	id, ok := r.registry.FindOwner(path)
	if !ok {
		log.Debug().Str("module", name).Str("file", path).Msg("depgraph: file has no owning chunk")
		return registry.Chunk{}, false
	}
	return r.registry.Get(id)
}

// ForeignOwner is like Owner but only reports chunks other than self.
func (r *Resolver) ForeignOwner(pc *project.Context, self, name string) (registry.Chunk, bool) {
	owner, ok := r.Owner(pc, name)
	if !ok || owner.ID == self {
		return registry.Chunk{}, false
	}
	return owner, true
}

// CrossChunk returns the distinct chunks other than self that own a file
// imported from files, in the order they are first reached.
func (r *Resolver) CrossChunk(pc *project.Context, self string, files []extract.FileImports) []registry.Chunk {
	seen := make(map[string]bool)
	var out []registry.Chunk
	for _, f := range files {
		for _, imp := range f.Imports {
			owner, ok := r.ForeignOwner(pc, self, imp.Name)
			if !ok || seen[owner.ID] {
				continue
			}
			seen[owner.ID] = true
			log.Debug().Str("file", f.Path).Str("module", imp.Name).Str("chunk", owner.ID).Msg("depgraph: cross-chunk dependency")
			out = append(out, owner)
		}
	}
	return out
}
