package extract

import (
	"bytes"
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/julianshen/chunkmap/internal/parser"
)

// parsedOrScanned reads imports from the syntax tree of source, treated as
// a file named filename. When the source does not parse cleanly the
// lexical scan is used instead.
func parsedOrScanned(ctx context.Context, filename string, source []byte, scan func([]byte) []string) []string {
	names, err := parsedImports(ctx, filename, source)
	if err != nil {
		log.Debug().Err(err).Str("grammar", filename).Msg("extract: falling back to lexical scan")
		return scan(source)
	}
	return names
}

func parsedImports(ctx context.Context, filename string, source []byte) ([]string, error) {
	if !parser.Supports(filename) {
		return nil, fmt.Errorf("no grammar for %s", filename)
	}

	p := parser.NewParser()
	defer p.Close()

	tree, err := p.Parse(ctx, filename, source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	return tree.Imports()
}

// blankLineComments returns a copy of source with every "//" comment
// replaced by spaces, so byte offsets are unchanged.
func blankLineComments(source []byte) []byte {
	out := bytes.Clone(source)
	for i := 0; i+1 < len(out); i++ {
		if out[i] != '/' || out[i+1] != '/' {
			continue
		}
		for ; i < len(out) && out[i] != '\n'; i++ {
			out[i] = ' '
		}
	}
	return out
}
