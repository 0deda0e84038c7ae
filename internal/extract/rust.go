package extract

import (
	"context"
	"regexp"
	"strings"
)

var (
	// The statement runs to its closing semicolon, so brace groups that
	// rustfmt splits across lines are read whole.
	rustUse   = regexp.MustCompile(`(?m)^\s*(?:pub(?:\([^)]*\))?\s+)?use\s+(crate|super|self)::([^;]*)`)
	rustIdent = regexp.MustCompile(`^[a-zA-Z0-9_]+`)
)

// RustExtractor records the first module segment of use statements that
// are scoped to the current crate (crate::, super::, self::). Uses of
// other crates are ignored.
type RustExtractor struct{}

func (RustExtractor) Language() Language { return Rust }

func (RustExtractor) Extract(ctx context.Context, source []byte) []string {
	return parsedOrScanned(ctx, "source.rs", source, scanRustUses)
}

func scanRustUses(source []byte) []string {
	var names []string
	for _, m := range rustUse.FindAllSubmatch(blankLineComments(source), -1) {
		names = append(names, rustUsePaths(string(m[2]))...)
	}
	return names
}

// rustUsePaths returns the first segment of each path in the remainder of
// a use statement, expanding a leading brace group.
func rustUsePaths(rest string) []string {
	rest = strings.TrimSpace(rest)
	if strings.HasPrefix(rest, "{") {
		end := strings.IndexByte(rest, '}')
		if end < 0 {
			end = len(rest)
		}
		var names []string
		for _, member := range strings.Split(rest[1:end], ",") {
			if name := rustFirstSegment(member); name != "" {
				names = append(names, name)
			}
		}
		return names
	}
	if name := rustFirstSegment(rest); name != "" {
		return []string{name}
	}
	return nil
}

func rustFirstSegment(path string) string {
	for _, seg := range strings.Split(strings.TrimSpace(path), "::") {
		ident := rustIdent.FindString(strings.TrimSpace(seg))
		switch ident {
		case "":
			return ""
		case "self", "super", "crate":
			continue
		default:
			return ident
		}
	}
	return ""
}
