package extract

import (
	"context"
	"regexp"
	"strings"
)

var (
	jsImportFrom = regexp.MustCompile(`(?m)(?:^|;)\s*import\s+[^;'"]*?\s+from\s+['"]([^'"]+)['"]`)
	jsRequire    = regexp.MustCompile(`\brequire\(\s*['"]([^'"]+)['"]\s*\)`)
)

// ScriptExtractor handles JavaScript and TypeScript. It recognizes
// "import ... from '<module>'" and "require('<module>')". Relative
// specifiers are skipped and package specifiers are cut back to their
// first segment, so "lodash/fp" and "@scope/pkg" become "lodash" and
// "@scope".
type ScriptExtractor struct {
	// grammar is the file extension whose grammar parses the source.
	// The zero value means plain JavaScript.
	grammar string
}

func (ScriptExtractor) Language() Language { return JavaScript }

func (e ScriptExtractor) Extract(ctx context.Context, source []byte) []string {
	grammar := e.grammar
	if grammar == "" {
		grammar = ".js"
	}
	return parsedOrScanned(ctx, "source"+grammar, source, scanScriptImports)
}

func scanScriptImports(source []byte) []string {
	var found []located
	for _, re := range []*regexp.Regexp{jsImportFrom, jsRequire} {
		for _, m := range re.FindAllSubmatchIndex(source, -1) {
			specifier := string(source[m[2]:m[3]])
			if strings.HasPrefix(specifier, ".") {
				continue
			}
			found = append(found, located{offset: m[2], name: packageRoot(specifier)})
		}
	}
	return inSourceOrder(found)
}

func packageRoot(specifier string) string {
	if i := strings.IndexByte(specifier, '/'); i >= 0 {
		return specifier[:i]
	}
	return specifier
}
