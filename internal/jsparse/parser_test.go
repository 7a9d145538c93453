package jsparse

import (
	"testing"

	"github.com/ludo-technologies/jsopen/internal/ast"
)

func TestParseStringBuildsVariableDeclaration(t *testing.T) {
	p := NewParser()
	defer p.Close()

	program, err := p.ParseString("var a = 1;")
	if err != nil {
		t.Fatalf("ParseString failed: %v", err)
	}
	if len(program.Body) != 1 {
		t.Fatalf("expected 1 top-level statement, got %d", len(program.Body))
	}

	decl, ok := program.Body[0].(*ast.VariableDeclaration)
	if !ok {
		t.Fatalf("expected *ast.VariableDeclaration, got %T", program.Body[0])
	}
	if decl.Kind != "var" {
		t.Errorf("expected kind var, got %q", decl.Kind)
	}
	if len(decl.Declarations) != 1 {
		t.Fatalf("expected 1 declarator, got %d", len(decl.Declarations))
	}

	id, ok := decl.Declarations[0].ID.(*ast.Identifier)
	if !ok || id.Name != "a" {
		t.Errorf("expected declarator ID Identifier(a), got %#v", decl.Declarations[0].ID)
	}

	lit, ok := decl.Declarations[0].Init.(*ast.Literal)
	if !ok || lit.Raw != "1" {
		t.Errorf("expected init Literal(1), got %#v", decl.Declarations[0].Init)
	}
}

func TestParseStringBuildsSequenceExpression(t *testing.T) {
	p := NewParser()
	defer p.Close()

	program, err := p.ParseString("a = (f(), g(), h);")
	if err != nil {
		t.Fatalf("ParseString failed: %v", err)
	}

	found := false
	ast.Inspect(program, func(n ast.Node) bool {
		if _, ok := n.(*ast.SequenceExpression); ok {
			found = true
		}
		return true
	})
	if !found {
		t.Error("expected a SequenceExpression in the parsed AST")
	}
}

func TestParseForLanguageSelectsTypeScriptByExtension(t *testing.T) {
	program, err := ParseForLanguage("app.ts", []byte("let x: number = 1;"))
	if err != nil {
		t.Fatalf("ParseForLanguage failed: %v", err)
	}
	if len(program.Body) == 0 {
		t.Error("expected at least one parsed statement")
	}
}

func TestParseForLanguageDefaultsToJavaScript(t *testing.T) {
	program, err := ParseForLanguage("app.js", []byte("function f() { return 1; }"))
	if err != nil {
		t.Fatalf("ParseForLanguage failed: %v", err)
	}
	if _, ok := program.Body[0].(*ast.FunctionDeclaration); !ok {
		t.Errorf("expected a FunctionDeclaration, got %T", program.Body[0])
	}
}

func TestParseStringInvalidSyntaxStillReturnsAProgram(t *testing.T) {
	// tree-sitter is error-tolerant: it produces an ERROR node rather than
	// failing outright, and the builder maps unrecognized nodes to
	// ast.Unsupported rather than aborting the parse.
	p := NewParser()
	defer p.Close()

	program, err := p.ParseString("function ( { ")
	if err != nil {
		t.Fatalf("expected a best-effort parse, got error: %v", err)
	}
	if program == nil {
		t.Fatal("expected a non-nil program even for malformed input")
	}
}
