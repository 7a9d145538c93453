// Package jsparse builds internal/ast.Program trees from JavaScript and
// TypeScript source, using tree-sitter grammars for the concrete syntax
// tree and a builder that translates that CST into the tagged-union AST
// the transform passes operate on.
package jsparse

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"

	"github.com/ludo-technologies/jsopen/internal/ast"
)

// Parser wraps a tree-sitter parser bound to either the JavaScript or the
// TSX grammar (TSX is a strict superset that also parses plain .ts).
type Parser struct {
	parser *sitter.Parser
	isTS   bool
}

// NewParser constructs a parser for plain JavaScript/JSX source.
func NewParser() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(javascript.GetLanguage())
	return &Parser{parser: p}
}

// NewTypeScriptParser constructs a parser for TypeScript/TSX source.
func NewTypeScriptParser() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(tsx.GetLanguage())
	return &Parser{parser: p, isTS: true}
}

// IsTypeScript reports whether this parser was configured for TypeScript.
func (p *Parser) IsTypeScript() bool { return p.isTS }

// Close releases the underlying tree-sitter parser.
func (p *Parser) Close() {
	if p.parser != nil {
		p.parser.Close()
	}
}

// ParseFile parses source and builds an internal/ast.Program from it.
// filename is used only for error messages and node positions are
// relative to source, not any external file.
func (p *Parser) ParseFile(filename string, source []byte) (*ast.Program, error) {
	tree, err := p.parser.ParseCtx(context.Background(), nil, source)
	if tree == nil {
		return nil, fmt.Errorf("jsparse: failed to parse %s: %w", filename, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, fmt.Errorf("jsparse: no root node in parse tree for %s", filename)
	}

	b := &builder{source: source}
	return b.buildProgram(root), nil
}

// ParseString parses source directly, using "<input>" as the nominal
// filename for error messages.
func (p *Parser) ParseString(source string) (*ast.Program, error) {
	return p.ParseFile("<input>", []byte(source))
}

// ParseForLanguage selects a JavaScript or TypeScript parser based on
// filename's extension and parses source with it.
func ParseForLanguage(filename string, source []byte) (*ast.Program, error) {
	isTS := false
	for _, ext := range []string{".ts", ".tsx", ".mts", ".cts"} {
		if len(filename) >= len(ext) && filename[len(filename)-len(ext):] == ext {
			isTS = true
			break
		}
	}

	var p *Parser
	if isTS {
		p = NewTypeScriptParser()
	} else {
		p = NewParser()
	}
	defer p.Close()
	return p.ParseFile(filename, source)
}
