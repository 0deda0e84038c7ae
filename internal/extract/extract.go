// Package extract recovers the modules a source file imports. Each
// supported language family has an Extractor that reads the syntax tree
// and falls back to a lexical scan when the source does not parse. No
// extractor fails: a file that cannot be understood simply imports
// nothing.
package extract

import (
	"context"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/julianshen/chunkmap/internal/project"
)

// Language identifies the extractor family that produced an import.
type Language string

const (
	Python     Language = "python"
	Rust       Language = "rust"
	Go         Language = "go"
	JavaScript Language = "javascript"
)

// Extractor returns the raw module identifiers imported by one file's
// source, in source order. Implementations must be safe for concurrent use
// and must never panic on malformed input.
type Extractor interface {
	Language() Language
	Extract(ctx context.Context, source []byte) []string
}

// RawImport is one identifier found in one file.
type RawImport struct {
	Name     string
	File     string
	Language Language
}

// extractors maps file extensions to the extractor responsible for them.
var extractors = map[string]Extractor{
	".py":  PythonExtractor{},
	".rs":  RustExtractor{},
	".go":  GoExtractor{},
	".js":  ScriptExtractor{grammar: ".js"},
	".jsx": ScriptExtractor{grammar: ".jsx"},
	".ts":  ScriptExtractor{grammar: ".ts"},
	".tsx": ScriptExtractor{grammar: ".tsx"},
	".mjs": ScriptExtractor{grammar: ".mjs"},
	".cjs": ScriptExtractor{grammar: ".cjs"},
}

// ForFile returns the extractor for path based on its extension.
func ForFile(path string) (Extractor, bool) {
	e, ok := extractors[filepath.Ext(path)]
	return e, ok
}

// File extracts the imports of the project file at rel. Unsupported
// extensions and unreadable files yield nil.
func File(ctx context.Context, pc *project.Context, rel string) []RawImport {
	return cachedFile(ctx, pc, rel, nil)
}

func cachedFile(ctx context.Context, pc *project.Context, rel string, cache Cache) []RawImport {
	e, ok := ForFile(rel)
	if !ok {
		return nil
	}

	source, err := pc.ReadFile(rel)
	if err != nil {
		log.Debug().Err(err).Str("file", rel).Msg("extract: unreadable file, no imports")
		return nil
	}

	names := extractNames(ctx, e, rel, source, cache)
	if len(names) == 0 {
		return nil
	}
	out := make([]RawImport, len(names))
	for i, name := range names {
		out[i] = RawImport{Name: name, File: rel, Language: e.Language()}
	}
	return out
}

func extractNames(ctx context.Context, e Extractor, rel string, source []byte, cache Cache) []string {
	if cache == nil {
		return e.Extract(ctx, source)
	}

	digest := Digest(source)
	names, hit, err := cache.Lookup(rel, digest)
	if err != nil {
		log.Debug().Err(err).Str("file", rel).Msg("extract: cache lookup failed")
	}
	if hit {
		return names
	}

	names = e.Extract(ctx, source)
	if err := cache.Save(rel, digest, names); err != nil {
		log.Debug().Err(err).Str("file", rel).Msg("extract: cache save failed")
	}
	return names
}

// Names returns the identifiers of imports in order.
func Names(imports []RawImport) []string {
	if len(imports) == 0 {
		return nil
	}
	names := make([]string, len(imports))
	for i, imp := range imports {
		names[i] = imp.Name
	}
	return names
}

// located is an identifier plus the byte offset where it was found, used
// to merge matches from several patterns back into source order.
type located struct {
	offset int
	name   string
}

func inSourceOrder(found []located) []string {
	if len(found) == 0 {
		return nil
	}
	sort.SliceStable(found, func(i, j int) bool { return found[i].offset < found[j].offset })
	names := make([]string, len(found))
	for i, f := range found {
		names[i] = f.name
	}
	return names
}
