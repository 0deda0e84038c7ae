package parser

import (
	"strconv"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// goImport handles both "import "a/b"" and parenthesized import blocks.
// Each spec contributes the final segment of its path.
func goImport(node *sitter.Node, source []byte) []string {
	var names []string
	walk(node, func(n *sitter.Node) bool {
		if n.Type() != "import_spec" {
			return true
		}
		if path := n.ChildByFieldName("path"); path != nil {
			if name := GoPackageName(unquote(path.Content(source))); name != "" {
				names = append(names, name)
			}
		}
		return false
	})
	return names
}

// GoPackageName returns the conventional package name of a Go import
// path: its final segment. Paths that name a directory relative to the
// importing package ("." and "..") have no package name and yield "".
func GoPackageName(path string) string {
	path = strings.TrimSpace(path)
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		path = path[i+1:]
	}
	switch path {
	case ".", "..":
		return ""
	}
	return path
}

// rustUse handles use declarations. Only paths scoped to the current crate
// (crate::, super::, self::) are recorded, as their first module segment.
func rustUse(node *sitter.Node, source []byte) []string {
	return rustUseTree(node.ChildByFieldName("argument"), nil, source)
}

func rustUseTree(node *sitter.Node, prefix []string, source []byte) []string {
	if node == nil {
		return nil
	}
	switch node.Type() {
	case "use_as_clause":
		return rustUseTree(node.ChildByFieldName("path"), prefix, source)
	case "use_wildcard":
		if node.NamedChildCount() == 0 {
			return nil
		}
		return rustUseTree(node.NamedChild(0), prefix, source)
	case "use_list":
		var names []string
		for i := 0; i < int(node.NamedChildCount()); i++ {
			child := node.NamedChild(i)
			switch child.Type() {
			case "line_comment", "block_comment":
				continue
			}
			names = append(names, rustUseTree(child, prefix, source)...)
		}
		return names
	case "scoped_use_list":
		path := joinSegments(prefix, rustSegments(node.ChildByFieldName("path"), source))
		name, scoped := crateModule(path)
		switch {
		case name != "":
			return []string{name}
		case scoped || len(path) == 0:
			return rustUseTree(node.ChildByFieldName("list"), path, source)
		default:
			return nil
		}
	default:
		if name, _ := crateModule(joinSegments(prefix, rustSegments(node, source))); name != "" {
			return []string{name}
		}
		return nil
	}
}

// rustSegments flattens a (possibly scoped) path node into its segments.
func rustSegments(node *sitter.Node, source []byte) []string {
	if node == nil {
		return nil
	}
	if node.Type() == "scoped_identifier" {
		segs := rustSegments(node.ChildByFieldName("path"), source)
		if name := node.ChildByFieldName("name"); name != nil {
			segs = append(segs, name.Content(source))
		}
		return segs
	}
	return []string{strings.TrimSpace(node.Content(source))}
}

func joinSegments(prefix, segs []string) []string {
	out := make([]string, 0, len(prefix)+len(segs))
	out = append(out, prefix...)
	return append(out, segs...)
}

// crateModule reports whether path starts at crate, super or self, and if
// so returns the first segment after those keywords.
func crateModule(path []string) (string, bool) {
	if len(path) == 0 || !isScopeKeyword(path[0]) {
		return "", false
	}
	for _, seg := range path {
		if !isScopeKeyword(seg) {
			return seg, true
		}
	}
	return "", true
}

func isScopeKeyword(seg string) bool {
	switch seg {
	case "crate", "super", "self":
		return true
	}
	return false
}

// scriptImport handles "import ... from '<module>'". Side-effect imports
// without a clause are not recorded.
func scriptImport(node *sitter.Node, source []byte) []string {
	var hasClause bool
	for i := 0; i < int(node.NamedChildCount()); i++ {
		if node.NamedChild(i).Type() == "import_clause" {
			hasClause = true
			break
		}
	}
	if !hasClause {
		return nil
	}
	return packageRoot(node.ChildByFieldName("source"), source)
}

// scriptRequire handles require('<module>') calls with a single string
// argument.
func scriptRequire(node *sitter.Node, source []byte) []string {
	fn := node.ChildByFieldName("function")
	if fn == nil || fn.Type() != "identifier" || fn.Content(source) != "require" {
		return nil
	}
	args := node.ChildByFieldName("arguments")
	if args == nil || args.NamedChildCount() != 1 {
		return nil
	}
	arg := args.NamedChild(0)
	if arg.Type() != "string" {
		return nil
	}
	return packageRoot(arg, source)
}

// packageRoot returns the first segment of a bare module specifier.
// Relative specifiers yield nothing.
func packageRoot(str *sitter.Node, source []byte) []string {
	if str == nil {
		return nil
	}
	specifier := unquote(str.Content(source))
	if specifier == "" || strings.HasPrefix(specifier, ".") {
		return nil
	}
	if i := strings.IndexByte(specifier, '/'); i >= 0 {
		specifier = specifier[:i]
	}
	return []string{specifier}
}

func unquote(lit string) string {
	if s, err := strconv.Unquote(lit); err == nil {
		return s
	}
	if len(lit) >= 2 {
		return lit[1 : len(lit)-1]
	}
	return lit
}
