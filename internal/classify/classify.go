// Package classify sorts raw import identifiers into standard-library,
// internal and external modules. Internal-ness is decided by probing a
// fixed list of candidate paths under the project root, not by resolving
// the import graph.
package classify

import (
	"github.com/julianshen/chunkmap/internal/extract"
	"github.com/julianshen/chunkmap/internal/project"
)

// Kind is the classification of one import.
type Kind string

const (
	StandardLibrary Kind = "standard-library"
	Internal        Kind = "internal"
	External        Kind = "external"
)

// Import is a raw import with its classification. ResolvedPath is set for
// internal imports to the probe path that matched.
type Import struct {
	extract.RawImport
	Kind         Kind
	ResolvedPath string
}

// Classifier partitions identifiers. The zero value is not usable; use New.
type Classifier struct {
	isStdlib StdlibPolicy
	probes   Probes
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithStdlibPolicy replaces the merged standard-library allow-list.
func WithStdlibPolicy(policy StdlibPolicy) Option {
	return func(c *Classifier) { c.isStdlib = policy }
}

// WithProbes replaces the internal-module probe list.
func WithProbes(p Probes) Option {
	return func(c *Classifier) { c.probes = p }
}

// New returns a Classifier using IsStandardLibrary and
// DefaultInternalProbes unless overridden.
func New(opts ...Option) *Classifier {
	c := &Classifier{
		isStdlib: IsStandardLibrary,
		probes:   DefaultInternalProbes(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Kind classifies a single identifier and returns the matching probe path
// for internal modules.
func (c *Classifier) Kind(pc *project.Context, name string) (Kind, string) {
	if c.isStdlib(name) {
		return StandardLibrary, ""
	}
	if path, ok := c.probes.Resolve(pc, name); ok {
		return Internal, path
	}
	return External, ""
}

// Classify tags every raw import. The result has the same length and
// order as imports.
func (c *Classifier) Classify(pc *project.Context, imports []extract.RawImport) []Import {
	out := make([]Import, len(imports))
	for i, imp := range imports {
		kind, path := c.Kind(pc, imp.Name)
		out[i] = Import{RawImport: imp, Kind: kind, ResolvedPath: path}
	}
	return out
}

// Partition splits identifiers into internal and external lists, dropping
// standard-library names. Duplicates are kept so callers can count them.
func (c *Classifier) Partition(pc *project.Context, names []string) (internal, external []string) {
	for _, name := range names {
		switch kind, _ := c.Kind(pc, name); kind {
		case Internal:
			internal = append(internal, name)
		case External:
			external = append(external, name)
		}
	}
	return internal, external
}
