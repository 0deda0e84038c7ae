package depgraph

import (
	"sort"

	"github.com/julianshen/chunkmap/internal/classify"
	"github.com/julianshen/chunkmap/internal/extract"
	"github.com/julianshen/chunkmap/internal/registry"
)

// Limits are the truncation policies applied when building a report.
type Limits struct {
	// ExternalShown is the number of external modules listed.
	ExternalShown int
	// PerFileShown is the number of distinct imports listed per file.
	PerFileShown int
	// FilesPerPhase caps the files a phase may own. It is enforced by the
	// phase-detection tooling and carried here so both agree.
	FilesPerPhase int
}

// DefaultLimits returns the standard truncation policy.
func DefaultLimits() Limits {
	return Limits{
		ExternalShown: 10,
		PerFileShown:  5,
		FilesPerPhase: 50,
	}
}

// Input is everything the Aggregator needs for one chunk.
type Input struct {
	Chunk registry.Chunk
	// Files holds one entry per chunk file, in chunk order.
	Files []extract.FileImports
	// Imports holds every extracted import, classified, in file order.
	Imports []classify.Import
	// Owners maps internal modules to the foreign chunk that owns them.
	Owners map[string]registry.Chunk
	// CrossChunk lists the foreign chunks this chunk depends on.
	CrossChunk []registry.Chunk
}

// Aggregator turns classified imports into a Report.
type Aggregator struct {
	limits Limits
}

// NewAggregator returns an Aggregator applying limits.
func NewAggregator(limits Limits) *Aggregator {
	return &Aggregator{limits: limits}
}

// Aggregate builds the report. It is a pure function of in.
func (a *Aggregator) Aggregate(in Input) *Report {
	var internal, external []string
	unique := make(map[string]bool)
	stdlibCount := 0
	for _, imp := range in.Imports {
		unique[imp.Name] = true
		switch imp.Kind {
		case classify.Internal:
			internal = append(internal, imp.Name)
		case classify.External:
			external = append(external, imp.Name)
		default:
			stdlibCount++
		}
	}

	internalCounts := countByFrequency(internal)
	for i := range internalCounts {
		if owner, ok := in.Owners[internalCounts[i].Module]; ok {
			ref := refOf(owner)
			internalCounts[i].Chunk = &ref
		}
	}

	externalCounts := countByFrequency(external)
	shown, overflow := truncate(externalCounts, a.limits.ExternalShown)

	cross := make([]ChunkRef, 0, len(in.CrossChunk))
	for _, c := range in.CrossChunk {
		cross = append(cross, refOf(c))
	}

	files := a.breakdown(in.Files)

	total := len(in.Imports)
	avg := 0.0
	if n := len(in.Chunk.Files); n > 0 {
		avg = float64(total) / float64(n)
	}

	return &Report{
		Chunk:            refOf(in.Chunk),
		Internal:         internalCounts,
		External:         shown,
		ExternalOverflow: overflow,
		CrossChunk:       cross,
		Files:            files,
		Summary: Summary{
			TotalImports:           total,
			UniqueImports:          len(unique),
			StandardLibraryImports: stdlibCount,
			InternalModules:        len(internalCounts),
			ExternalModules:        len(externalCounts),
			AverageImportsPerFile:  avg,
			FilesWithImports:       len(files),
			TotalFiles:             len(in.Chunk.Files),
		},
	}
}

// breakdown lists files with at least one import, sorted by path.
func (a *Aggregator) breakdown(files []extract.FileImports) []FileBreakdown {
	out := make([]FileBreakdown, 0, len(files))
	for _, f := range files {
		if len(f.Imports) == 0 {
			continue
		}
		distinct := sortedDistinct(extract.Names(f.Imports))
		shown := distinct
		if len(shown) > a.limits.PerFileShown {
			shown = shown[:a.limits.PerFileShown]
		}
		out = append(out, FileBreakdown{
			Path:     f.Path,
			Count:    len(f.Imports),
			Imports:  shown,
			Overflow: len(distinct) - len(shown),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// countByFrequency counts names in descending order of count. Ties keep
// the order in which names were first seen.
func countByFrequency(names []string) []ModuleCount {
	index := make(map[string]int)
	counts := make([]ModuleCount, 0)
	for _, name := range names {
		i, ok := index[name]
		if !ok {
			i = len(counts)
			index[name] = i
			counts = append(counts, ModuleCount{Module: name})
		}
		counts[i].Count++
	}
	sort.SliceStable(counts, func(i, j int) bool { return counts[i].Count > counts[j].Count })
	return counts
}

// truncate keeps the first n rows and reports how many were dropped.
func truncate(rows []ModuleCount, n int) ([]ModuleCount, int) {
	if n < 0 || len(rows) <= n {
		return rows, 0
	}
	return rows[:n], len(rows) - n
}

func sortedDistinct(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}
