package extract

import (
	"bufio"
	"bytes"
	"context"
	"regexp"
)

var (
	pyImportLine = regexp.MustCompile(`^\s*import\s+([a-zA-Z0-9_]+)`)
	pyFromLine   = regexp.MustCompile(`^\s*from\s+([a-zA-Z0-9_]+)`)
)

// PythonExtractor reads imports from the Python syntax tree and falls back
// to a line scan when the source does not parse cleanly.
type PythonExtractor struct{}

func (PythonExtractor) Language() Language { return Python }

func (PythonExtractor) Extract(ctx context.Context, source []byte) []string {
	return parsedOrScanned(ctx, "source.py", source, scanPythonLines)
}

// scanPythonLines matches "import x" and "from x" at the start of each
// line. Relative "from ." forms do not match.
func scanPythonLines(source []byte) []string {
	var names []string
	sc := bufio.NewScanner(bytes.NewReader(source))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Bytes()
		if m := pyImportLine.FindSubmatch(line); m != nil {
			names = append(names, string(m[1]))
		} else if m := pyFromLine.FindSubmatch(line); m != nil {
			names = append(names, string(m[1]))
		}
	}
	return names
}
