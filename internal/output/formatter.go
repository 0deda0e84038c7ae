package output

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianshen/chunkmap/internal/depgraph"
)

// Format names an output format.
type Format string

const (
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
)

// ErrUnknownFormat is returned by New for an unsupported format name.
var ErrUnknownFormat = errors.New("unknown output format")

// Formatter formats a dependency report into output bytes.
type Formatter interface {
	Format(report *depgraph.Report) ([]byte, error)
}

// Options tune the formatters that render for a terminal.
type Options struct {
	// Style is the glamour style used by the text formatter.
	Style string
	// Width is the word-wrap width used by the text formatter.
	Width int
}

// New returns the formatter registered under name.
func New(name string, opts Options) (Formatter, error) {
	switch Format(strings.ToLower(name)) {
	case FormatJSON, "":
		return NewJSONFormatter(), nil
	case FormatMarkdown, "md":
		return NewMarkdownFormatter(), nil
	case FormatText:
		return NewTextFormatter(opts.Style, opts.Width), nil
	default:
		return nil, fmt.Errorf("%w: %q (want json, markdown or text)", ErrUnknownFormat, name)
	}
}
