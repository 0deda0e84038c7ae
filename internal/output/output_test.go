package output

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianshen/chunkmap/internal/depgraph"
	"github.com/julianshen/chunkmap/internal/registry"
)

func sampleReport() *depgraph.Report {
	models := depgraph.ChunkRef{ID: "chunk_b", Name: "Models", Status: registry.StatusComplete}
	return &depgraph.Report{
		Chunk: depgraph.ChunkRef{ID: "chunk_a", Name: "API", Status: registry.StatusInProgress},
		Internal: []depgraph.ModuleCount{
			{Module: "models", Count: 2, Chunk: &models},
			{Module: "helpers", Count: 1},
		},
		External:         []depgraph.ModuleCount{{Module: "requests", Count: 3}},
		ExternalOverflow: 2,
		CrossChunk:       []depgraph.ChunkRef{models},
		Files: []depgraph.FileBreakdown{
			{Path: "api/routes.py", Count: 7, Imports: []string{"a", "b", "c", "d", "e"}, Overflow: 1},
		},
		Summary: depgraph.Summary{
			TotalImports:           7,
			UniqueImports:          6,
			StandardLibraryImports: 1,
			InternalModules:        2,
			ExternalModules:        3,
			AverageImportsPerFile:  3.5,
			FilesWithImports:       1,
			TotalFiles:             2,
		},
	}
}

func emptyReport() *depgraph.Report {
	return &depgraph.Report{
		Chunk:      depgraph.ChunkRef{ID: "chunk_empty", Name: "Empty"},
		Internal:   []depgraph.ModuleCount{},
		External:   []depgraph.ModuleCount{},
		CrossChunk: []depgraph.ChunkRef{},
		Files:      []depgraph.FileBreakdown{},
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		name string
		want Formatter
	}{
		{"json", &JSONFormatter{}},
		{"", &JSONFormatter{}},
		{"markdown", &MarkdownFormatter{}},
		{"MD", &MarkdownFormatter{}},
		{"text", &TextFormatter{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := New(tt.name, Options{})
			require.NoError(t, err)
			assert.IsType(t, tt.want, f)
		})
	}

	_, err := New("yaml", Options{})
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestJSONFormatter(t *testing.T) {
	out, err := NewJSONFormatter().Format(sampleReport())
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(string(out), "}\n"))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))

	chunk := decoded["chunk"].(map[string]any)
	assert.Equal(t, "chunk_a", chunk["id"])
	assert.Equal(t, "in-progress", chunk["status"])
	assert.Equal(t, float64(2), decoded["external_overflow"])

	internal := decoded["internal"].([]any)
	require.Len(t, internal, 2)
	first := internal[0].(map[string]any)
	assert.Equal(t, "models", first["module"])
	assert.Equal(t, "chunk_b", first["chunk"].(map[string]any)["id"])
	_, annotated := internal[1].(map[string]any)["chunk"]
	assert.False(t, annotated)

	summary := decoded["summary"].(map[string]any)
	assert.Equal(t, 3.5, summary["average_imports_per_file"])
}

func TestJSONFormatterEmptyUsesArrays(t *testing.T) {
	out, err := NewJSONFormatter().Format(emptyReport())
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, `"internal": []`)
	assert.Contains(t, s, `"external": []`)
	assert.Contains(t, s, `"cross_chunk": []`)
	assert.NotContains(t, s, "null")
}

func TestJSONFormatterDeterministic(t *testing.T) {
	a, err := NewJSONFormatter().Format(sampleReport())
	require.NoError(t, err)
	b, err := NewJSONFormatter().Format(sampleReport())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestMarkdownFormatter(t *testing.T) {
	out, err := NewMarkdownFormatter().Format(sampleReport())
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, "# Dependency Analysis: API")
	assert.Contains(t, s, "Chunk `chunk_a` (in-progress)")
	assert.Contains(t, s, "## Internal Dependencies (2 unique)")
	assert.Contains(t, s, "- **models** (2 imports) → chunk: Models")
	assert.Contains(t, s, "- **helpers** (1 import)\n")
	assert.Contains(t, s, "## External Dependencies (3 unique)")
	assert.Contains(t, s, "- ... and 2 more")
	assert.Contains(t, s, "## Cross-Chunk Dependencies (1 chunk)")
	assert.Contains(t, s, "  - ID: `chunk_b`")
	assert.Contains(t, s, "  - Status: complete")
	assert.Contains(t, s, "- `api/routes.py`: 7 imports")
	assert.Contains(t, s, "  - ... and 1 more")
	assert.Contains(t, s, "- Average imports per file: 3.5")
	assert.Contains(t, s, "- Files with imports: 1/2")

	order := []string{"## Internal", "## External", "## Cross-Chunk", "## Per-File", "## Summary"}
	last := -1
	for _, heading := range order {
		i := strings.Index(s, heading)
		require.Greater(t, i, last, heading)
		last = i
	}
}

func TestMarkdownFormatterOmitsEmptySections(t *testing.T) {
	r := sampleReport()
	r.Internal = []depgraph.ModuleCount{}
	r.CrossChunk = []depgraph.ChunkRef{}

	out, err := NewMarkdownFormatter().Format(r)
	require.NoError(t, err)

	s := string(out)
	assert.NotContains(t, s, "Internal Dependencies")
	assert.NotContains(t, s, "Cross-Chunk Dependencies")
	assert.Contains(t, s, "## Summary")
}

func TestMarkdownFormatterNoImports(t *testing.T) {
	out, err := NewMarkdownFormatter().Format(emptyReport())
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, "# Dependency Analysis: Empty")
	assert.Contains(t, s, "No imports found in chunk files.")
	assert.NotContains(t, s, "## Summary")
}

func TestTextFormatter(t *testing.T) {
	out, err := NewTextFormatter("", 0).Format(sampleReport())
	require.NoError(t, err)

	s := string(out)
	assert.Contains(t, s, "Dependency Analysis: API")
	assert.Contains(t, s, "requests")
	assert.Contains(t, s, "Summary")
}

func TestTextFormatterDefaults(t *testing.T) {
	f := NewTextFormatter("", -1)
	assert.Equal(t, "notty", f.style)
	assert.Equal(t, DefaultWidth, f.width)

	f = NewTextFormatter("dark", 120)
	assert.Equal(t, "dark", f.style)
	assert.Equal(t, 120, f.width)
}
