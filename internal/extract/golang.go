package extract

import (
	"context"
	"regexp"

	"github.com/julianshen/chunkmap/internal/parser"
)

var (
	goSingleImport = regexp.MustCompile(`(?m)^\s*import\s+(?:[a-zA-Z_.][\w.]*\s+)?"([^"]+)"`)
	goImportBlock  = regexp.MustCompile(`(?ms)^\s*import\s*\((.*?)\)`)
	goBlockSpec    = regexp.MustCompile(`(?m)^\s*(?:[a-zA-Z_.][\w.]*\s+)?"([^"]+)"`)
)

// GoExtractor recognizes single-line and parenthesized import
// declarations. Each import path contributes its final segment, the
// package's conventional name.
type GoExtractor struct{}

func (GoExtractor) Language() Language { return Go }

func (GoExtractor) Extract(ctx context.Context, source []byte) []string {
	return parsedOrScanned(ctx, "source.go", source, scanGoImports)
}

func scanGoImports(source []byte) []string {
	source = blankLineComments(source)
	var found []located
	add := func(offset int, path []byte) {
		if name := parser.GoPackageName(string(path)); name != "" {
			found = append(found, located{offset: offset, name: name})
		}
	}

	for _, m := range goSingleImport.FindAllSubmatchIndex(source, -1) {
		add(m[2], source[m[2]:m[3]])
	}

	for _, block := range goImportBlock.FindAllSubmatchIndex(source, -1) {
		body := source[block[2]:block[3]]
		for _, m := range goBlockSpec.FindAllSubmatchIndex(body, -1) {
			add(block[2]+m[2], body[m[2]:m[3]])
		}
	}

	return inSourceOrder(found)
}
