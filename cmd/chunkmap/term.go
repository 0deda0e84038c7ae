package main

import (
	"io"
	"os"

	"golang.org/x/term"

	"github.com/julianshen/chunkmap/internal/config"
	"github.com/julianshen/chunkmap/internal/output"
)

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// textOptions picks the glamour style and width for w. Configured values
// win; otherwise a terminal gets "dark" at its own width and anything
// else gets "notty".
func textOptions(w io.Writer, cfg config.OutputConfig) output.Options {
	opts := output.Options{Style: cfg.Style, Width: cfg.Width}
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		if opts.Style == "" {
			opts.Style = "notty"
		}
		return opts
	}
	if opts.Style == "" {
		opts.Style = "dark"
	}
	if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 && cfg.Width == 0 {
		opts.Width = width
	}
	return opts
}
