package output

import (
	"fmt"
	"strings"

	"github.com/julianshen/chunkmap/internal/depgraph"
)

// MarkdownFormatter outputs a Report as human-readable Markdown.
type MarkdownFormatter struct{}

// NewMarkdownFormatter creates a new MarkdownFormatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Format renders the Report as Markdown. Sections with nothing to show are
// omitted; Per-File Imports and Summary are always present unless the chunk
// has no imports at all.
func (f *MarkdownFormatter) Format(report *depgraph.Report) ([]byte, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "# Dependency Analysis: %s\n\n", displayName(report.Chunk))
	fmt.Fprintf(&b, "Chunk `%s`", report.Chunk.ID)
	if report.Chunk.Status != "" {
		fmt.Fprintf(&b, " (%s)", report.Chunk.Status)
	}
	b.WriteString("\n\n")

	if report.Empty() {
		b.WriteString("No imports found in chunk files.\n")
		return []byte(b.String()), nil
	}

	if len(report.Internal) > 0 {
		fmt.Fprintf(&b, "## Internal Dependencies (%d unique)\n\n", len(report.Internal))
		for _, m := range report.Internal {
			fmt.Fprintf(&b, "- **%s** (%s)", m.Module, plural(m.Count, "import"))
			if m.Chunk != nil {
				fmt.Fprintf(&b, " → chunk: %s", displayName(*m.Chunk))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if len(report.External) > 0 {
		fmt.Fprintf(&b, "## External Dependencies (%d unique)\n\n", report.Summary.ExternalModules)
		for _, m := range report.External {
			fmt.Fprintf(&b, "- **%s** (%s)\n", m.Module, plural(m.Count, "import"))
		}
		if report.ExternalOverflow > 0 {
			fmt.Fprintf(&b, "- ... and %d more\n", report.ExternalOverflow)
		}
		b.WriteString("\n")
	}

	if len(report.CrossChunk) > 0 {
		fmt.Fprintf(&b, "## Cross-Chunk Dependencies (%s)\n\n", plural(len(report.CrossChunk), "chunk"))
		for _, c := range report.CrossChunk {
			fmt.Fprintf(&b, "- **%s**\n  - ID: `%s`\n  - Status: %s\n", displayName(c), c.ID, c.Status)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Per-File Imports\n\n")
	for _, fb := range report.Files {
		fmt.Fprintf(&b, "- `%s`: %s\n", fb.Path, plural(fb.Count, "import"))
		for _, imp := range fb.Imports {
			fmt.Fprintf(&b, "  - %s\n", imp)
		}
		if fb.Overflow > 0 {
			fmt.Fprintf(&b, "  - ... and %d more\n", fb.Overflow)
		}
	}
	b.WriteString("\n")

	s := report.Summary
	b.WriteString("## Summary\n\n")
	fmt.Fprintf(&b, "- Total imports: %d\n", s.TotalImports)
	fmt.Fprintf(&b, "- Unique modules: %d\n", s.UniqueImports)
	fmt.Fprintf(&b, "- Standard-library imports: %d\n", s.StandardLibraryImports)
	fmt.Fprintf(&b, "- Internal modules: %d\n", s.InternalModules)
	fmt.Fprintf(&b, "- External modules: %d\n", s.ExternalModules)
	fmt.Fprintf(&b, "- Average imports per file: %.1f\n", s.AverageImportsPerFile)
	fmt.Fprintf(&b, "- Files with imports: %d/%d\n", s.FilesWithImports, s.TotalFiles)

	return []byte(b.String()), nil
}

func displayName(c depgraph.ChunkRef) string {
	if c.Name == "" {
		return c.ID
	}
	return c.Name
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
