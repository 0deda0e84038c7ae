package depgraph

import "github.com/julianshen/chunkmap/internal/registry"

// Report is the dependency analysis of one chunk.
type Report struct {
	Chunk            ChunkRef        `json:"chunk"`
	Internal         []ModuleCount   `json:"internal"`
	External         []ModuleCount   `json:"external"`
	ExternalOverflow int             `json:"external_overflow"`
	CrossChunk       []ChunkRef      `json:"cross_chunk"`
	Files            []FileBreakdown `json:"files"`
	Summary          Summary         `json:"summary"`
}

// ChunkRef identifies a chunk in a report.
type ChunkRef struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Status registry.Status `json:"status"`
}

func refOf(c registry.Chunk) ChunkRef {
	return ChunkRef{ID: c.ID, Name: c.Name, Status: c.Status}
}

// ModuleCount is one row of a frequency table. Chunk is set on internal
// modules whose defining file belongs to another chunk.
type ModuleCount struct {
	Module string    `json:"module"`
	Count  int       `json:"count"`
	Chunk  *ChunkRef `json:"chunk,omitempty"`
}

// FileBreakdown lists the imports of one file. Imports holds at most
// Limits.PerFileShown distinct names in sorted order; Overflow counts the
// distinct names left out.
type FileBreakdown struct {
	Path     string   `json:"path"`
	Count    int      `json:"count"`
	Imports  []string `json:"imports"`
	Overflow int      `json:"overflow"`
}

// Summary holds aggregate counts for the chunk.
type Summary struct {
	TotalImports           int     `json:"total_imports"`
	UniqueImports          int     `json:"unique_imports"`
	StandardLibraryImports int     `json:"standard_library_imports"`
	InternalModules        int     `json:"internal_modules"`
	ExternalModules        int     `json:"external_modules"`
	AverageImportsPerFile  float64 `json:"average_imports_per_file"`
	FilesWithImports       int     `json:"files_with_imports"`
	TotalFiles             int     `json:"total_files"`
}

// Empty reports whether no imports were found in the chunk.
func (r *Report) Empty() bool {
	return r.Summary.TotalImports == 0
}
