package runner

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/julianshen/chunkmap/internal/classify"
	"github.com/julianshen/chunkmap/internal/depgraph"
	"github.com/julianshen/chunkmap/internal/output"
	"github.com/julianshen/chunkmap/internal/project"
	"github.com/julianshen/chunkmap/internal/registry"
	"github.com/julianshen/chunkmap/internal/store"
)

// Request describes one dependency analysis.
type Request struct {
	// Root is the project root. Chunk file paths are relative to it.
	Root string
	// Registry is the registry file path; see ResolveRegistryPath.
	Registry string
	// ChunkID selects the chunk; empty means the registry's current chunk.
	ChunkID     string
	Concurrency int
	// CachePath is the SQLite import cache; empty disables caching.
	CachePath string
	// InternalProbes and OwnerProbes are appended to the default tables.
	InternalProbes classify.Probes
	OwnerProbes    classify.Probes
}

// DepsRunner analyses one chunk and writes the formatted report.
type DepsRunner struct {
	formatter output.Formatter
}

// NewDepsRunner creates a DepsRunner writing reports with formatter.
func NewDepsRunner(formatter output.Formatter) *DepsRunner {
	return &DepsRunner{formatter: formatter}
}

// Analyze builds the report for req without formatting it. Registry and
// chunk-selection failures are returned as *ExitError with code 1.
func (r *DepsRunner) Analyze(ctx context.Context, req Request) (*depgraph.Report, error) {
	pc, err := project.New(req.Root)
	if err != nil {
		return nil, exitWith(1, err)
	}

	reg, err := LoadRegistry(pc.Root(), req.Registry)
	if err != nil {
		return nil, err
	}

	opts := []depgraph.Option{
		depgraph.WithOwnerProbes(classify.DefaultOwnerProbes().With(req.OwnerProbes...)),
		depgraph.WithConcurrency(req.Concurrency),
	}
	if req.CachePath != "" {
		cache, err := store.NewStore(req.CachePath)
		if err != nil {
			return nil, fmt.Errorf("opening import cache: %w", err)
		}
		defer cache.Close()
		opts = append(opts, depgraph.WithCache(cache))
	}

	classifier := classify.New(classify.WithProbes(classify.DefaultInternalProbes().With(req.InternalProbes...)))
	analyzer := depgraph.NewAnalyzer(pc, reg, append(opts, depgraph.WithClassifier(classifier))...)

	report, err := analyzer.AnalyzeID(ctx, req.ChunkID)
	if err != nil {
		if userError(err) {
			return nil, exitWith(1, err)
		}
		return nil, err
	}
	return report, nil
}

// Run analyses req and writes the formatted report to w. Nothing is
// written when analysis fails.
func (r *DepsRunner) Run(ctx context.Context, req Request, w io.Writer) error {
	report, err := r.Analyze(ctx, req)
	if err != nil {
		return err
	}
	out, err := r.formatter.Format(report)
	if err != nil {
		return fmt.Errorf("formatting report: %w", err)
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}

// LoadRegistry reads the registry for the project at root, warning about
// declared dependencies on chunks that do not exist. Load failures are
// returned as *ExitError with code 1.
func LoadRegistry(root, path string) (*registry.Registry, error) {
	resolved := ResolveRegistryPath(root, path, "")
	reg, err := registry.Load(resolved)
	if err != nil {
		return nil, exitWith(1, err)
	}
	for _, d := range reg.DanglingDependencies() {
		log.Warn().Str("chunk", d.Chunk).Str("depends_on", d.DependsOn).Msg("registry: dependency on unknown chunk")
	}
	log.Debug().Str("registry", resolved).Int("chunks", len(reg.Chunks)).Msg("registry: loaded")
	return reg, nil
}
