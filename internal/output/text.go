package output

import (
	"fmt"

	"github.com/charmbracelet/glamour"

	"github.com/julianshen/chunkmap/internal/depgraph"
)

// DefaultWidth is the word-wrap width used when none is given.
const DefaultWidth = 80

// TextFormatter renders the Markdown report for a terminal with Glamour.
type TextFormatter struct {
	markdown *MarkdownFormatter
	style    string
	width    int
}

// NewTextFormatter creates a TextFormatter. An empty style selects "notty",
// which renders without ANSI escapes; width < 1 selects DefaultWidth.
func NewTextFormatter(style string, width int) *TextFormatter {
	if style == "" {
		style = "notty"
	}
	if width < 1 {
		width = DefaultWidth
	}
	return &TextFormatter{markdown: NewMarkdownFormatter(), style: style, width: width}
}

// Format renders the Report.
func (f *TextFormatter) Format(report *depgraph.Report) ([]byte, error) {
	md, err := f.markdown.Format(report)
	if err != nil {
		return nil, err
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(f.style),
		glamour.WithWordWrap(f.width),
	)
	if err != nil {
		return nil, fmt.Errorf("creating glamour renderer: %w", err)
	}
	out, err := r.RenderBytes(md)
	if err != nil {
		return nil, fmt.Errorf("rendering report: %w", err)
	}
	return out, nil
}
