// Package depgraph analyses the dependencies of one chunk: it extracts the
// imports of every file the chunk owns, classifies them, resolves which
// other chunks they reach into and aggregates the result into a Report.
package depgraph

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/julianshen/chunkmap/internal/classify"
	"github.com/julianshen/chunkmap/internal/extract"
	"github.com/julianshen/chunkmap/internal/project"
	"github.com/julianshen/chunkmap/internal/registry"
)

// Analyzer runs the full pipeline for a chunk against a project snapshot.
type Analyzer struct {
	project     *project.Context
	registry    *registry.Registry
	classifier  *classify.Classifier
	resolver    *Resolver
	aggregator  *Aggregator
	concurrency int
	cache       extract.Cache
}

// Option configures an Analyzer.
type Option func(*analyzerOptions)

type analyzerOptions struct {
	classifier  *classify.Classifier
	ownerProbes classify.Probes
	limits      Limits
	concurrency int
	cache       extract.Cache
}

// WithClassifier replaces the default classifier.
func WithClassifier(c *classify.Classifier) Option {
	return func(o *analyzerOptions) { o.classifier = c }
}

// WithOwnerProbes replaces the probes used to locate defining files.
func WithOwnerProbes(p classify.Probes) Option {
	return func(o *analyzerOptions) { o.ownerProbes = p }
}

// WithLimits replaces DefaultLimits.
func WithLimits(l Limits) Option {
	return func(o *analyzerOptions) { o.limits = l }
}

// WithConcurrency bounds parallel file extraction. Values below 1 mean
// one goroutine per CPU.
func WithConcurrency(n int) Option {
	return func(o *analyzerOptions) { o.concurrency = n }
}

// WithCache memoizes per-file extraction in c.
func WithCache(c extract.Cache) Option {
	return func(o *analyzerOptions) { o.cache = c }
}

// NewAnalyzer returns an Analyzer for the given project and registry.
func NewAnalyzer(pc *project.Context, reg *registry.Registry, opts ...Option) *Analyzer {
	o := analyzerOptions{
		ownerProbes: classify.DefaultOwnerProbes(),
		limits:      DefaultLimits(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.classifier == nil {
		o.classifier = classify.New()
	}
	return &Analyzer{
		project:     pc,
		registry:    reg,
		classifier:  o.classifier,
		resolver:    NewResolver(reg, o.ownerProbes),
		aggregator:  NewAggregator(o.limits),
		concurrency: o.concurrency,
		cache:       o.cache,
	}
}

// Analyze builds the dependency report for chunk.
func (a *Analyzer) Analyze(ctx context.Context, chunk registry.Chunk) (*Report, error) {
	files, err := extract.Files(ctx, a.project, chunk.Files, a.concurrency, a.cache)
	if err != nil {
		return nil, fmt.Errorf("extracting imports for %s: %w", chunk.ID, err)
	}

	var raw []extract.RawImport
	for _, f := range files {
		raw = append(raw, f.Imports...)
	}
	imports := a.classifier.Classify(a.project, raw)

	owners := make(map[string]registry.Chunk)
	for _, imp := range imports {
		if imp.Kind != classify.Internal {
			continue
		}
		if _, done := owners[imp.Name]; done {
			continue
		}
		if owner, ok := a.resolver.ForeignOwner(a.project, chunk.ID, imp.Name); ok {
			owners[imp.Name] = owner
		}
	}

	cross := a.resolver.CrossChunk(a.project, chunk.ID, files)

	log.Debug().
		Str("chunk", chunk.ID).
		Int("files", len(chunk.Files)).
		Int("imports", len(imports)).
		Int("cross_chunk", len(cross)).
		Msg("depgraph: chunk analysed")

	return a.aggregator.Aggregate(Input{
		Chunk:      chunk,
		Files:      files,
		Imports:    imports,
		Owners:     owners,
		CrossChunk: cross,
	}), nil
}

// AnalyzeID resolves id (or the current chunk when id is empty) and
// analyses it.
func (a *Analyzer) AnalyzeID(ctx context.Context, id string) (*Report, error) {
	chunk, err := a.registry.Resolve(id)
	if err != nil {
		return nil, err
	}
	return a.Analyze(ctx, chunk)
}
