// Package parser provides tree-sitter-based parsing of source files whose
// import declarations are read from a syntax tree rather than matched
// line by line. The language is selected from the file extension.
package parser

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// ErrSyntax is returned by Imports when the tree contains parse errors.
// Callers are expected to fall back to a lexical scan.
var ErrSyntax = errors.New("source contains syntax errors")

// langInfo holds tree-sitter language metadata and the node types that
// represent import declarations for that language.
type langInfo struct {
	lang        *sitter.Language
	importNodes map[string]importReader
	// descend lists import node types whose children may hold further
	// imports, such as require calls passed as arguments.
	descend map[string]bool
}

// importReader extracts module names from one import node.
type importReader func(node *sitter.Node, source []byte) []string

var (
	pythonInfo = langInfo{
		lang: python.GetLanguage(),
		importNodes: map[string]importReader{
			"import_statement":        pythonImport,
			"import_from_statement":   pythonFromImport,
			"future_import_statement": pythonFutureImport,
		},
	}
	goInfo = langInfo{
		lang:        golang.GetLanguage(),
		importNodes: map[string]importReader{"import_declaration": goImport},
	}
	rustInfo = langInfo{
		lang:        rust.GetLanguage(),
		importNodes: map[string]importReader{"use_declaration": rustUse},
	}
	scriptImports = map[string]importReader{
		"import_statement": scriptImport,
		"call_expression":  scriptRequire,
	}
	scriptDescend = map[string]bool{"call_expression": true}
)

// registry maps file extensions to language info for auto-detection.
var registry = map[string]langInfo{
	".py":  pythonInfo,
	".go":  goInfo,
	".rs":  rustInfo,
	".js":  {lang: javascript.GetLanguage(), importNodes: scriptImports, descend: scriptDescend},
	".jsx": {lang: javascript.GetLanguage(), importNodes: scriptImports, descend: scriptDescend},
	".mjs": {lang: javascript.GetLanguage(), importNodes: scriptImports, descend: scriptDescend},
	".cjs": {lang: javascript.GetLanguage(), importNodes: scriptImports, descend: scriptDescend},
	".ts":  {lang: typescript.GetLanguage(), importNodes: scriptImports, descend: scriptDescend},
	".tsx": {lang: tsx.GetLanguage(), importNodes: scriptImports, descend: scriptDescend},
}

// Supports reports whether files with the given name can be parsed.
func Supports(filename string) bool {
	_, ok := registry[filepath.Ext(filename)]
	return ok
}

// Parser wraps tree-sitter to parse source files with automatic language
// detection. A Parser is not safe for concurrent use.
type Parser struct {
	inner *sitter.Parser
}

// NewParser creates a new Parser instance.
func NewParser() *Parser {
	return &Parser{
		inner: sitter.NewParser(),
	}
}

// Close releases the underlying tree-sitter parser.
func (p *Parser) Close() {
	p.inner.Close()
}

// Parse parses source code from the given filename, auto-detecting the
// language from the file extension. Returns an error for unsupported
// extensions.
func (p *Parser) Parse(ctx context.Context, filename string, source []byte) (*Tree, error) {
	ext := filepath.Ext(filename)
	info, ok := registry[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported file extension %q: language not in registry", ext)
	}

	p.inner.SetLanguage(info.lang)
	sitterTree, err := p.inner.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}

	return &Tree{
		tree:   sitterTree,
		source: source,
		info:   info,
	}, nil
}

// Tree wraps a parsed tree-sitter syntax tree.
type Tree struct {
	tree   *sitter.Tree
	source []byte
	info   langInfo
}

// Close releases the syntax tree.
func (t *Tree) Close() {
	t.tree.Close()
}

// RootNode returns the root node of the parsed syntax tree.
func (t *Tree) RootNode() *sitter.Node {
	return t.tree.RootNode()
}

// HasErrors reports whether the parser had to recover from invalid syntax.
func (t *Tree) HasErrors() bool {
	return t.RootNode().HasError()
}

// Imports returns the module names imported by the source, in source
// order, following each language's naming rule. Relative imports are
// omitted. If the tree contains syntax
// errors, Imports returns ErrSyntax and no names.
func (t *Tree) Imports() ([]string, error) {
	if t.HasErrors() {
		return nil, ErrSyntax
	}

	var imports []string
	walk(t.RootNode(), func(node *sitter.Node) bool {
		read, ok := t.info.importNodes[node.Type()]
		if !ok {
			return true
		}
		imports = append(imports, read(node, t.source)...)
		return t.info.descend[node.Type()]
	})
	return imports, nil
}

// walk performs a depth-first traversal of the syntax tree. Children of a
// node are skipped when fn returns false.
func walk(node *sitter.Node, fn func(*sitter.Node) bool) {
	if node == nil {
		return
	}
	if !fn(node) {
		return
	}
	for i := 0; i < int(node.NamedChildCount()); i++ {
		walk(node.NamedChild(i), fn)
	}
}

// pythonImport handles "import a.b, c as d".
func pythonImport(node *sitter.Node, source []byte) []string {
	var names []string
	for i := 0; i < int(node.NamedChildCount()); i++ {
		child := node.NamedChild(i)
		switch child.Type() {
		case "dotted_name":
			names = append(names, topLevel(child.Content(source)))
		case "aliased_import":
			if name := child.ChildByFieldName("name"); name != nil {
				names = append(names, topLevel(name.Content(source)))
			}
		}
	}
	return names
}

// pythonFromImport handles "from a.b import c". Relative modules
// ("from . import x", "from .a import x") yield nothing.
func pythonFromImport(node *sitter.Node, source []byte) []string {
	module := node.ChildByFieldName("module_name")
	if module == nil || module.Type() != "dotted_name" {
		return nil
	}
	return []string{topLevel(module.Content(source))}
}

func pythonFutureImport(_ *sitter.Node, _ []byte) []string {
	return []string{"__future__"}
}

// topLevel returns the package part of a dotted module path.
func topLevel(dotted string) string {
	dotted = strings.TrimSpace(dotted)
	if i := strings.IndexByte(dotted, '.'); i >= 0 {
		return dotted[:i]
	}
	return dotted
}
