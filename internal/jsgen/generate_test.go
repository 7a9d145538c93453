package jsgen

import (
	"strings"
	"testing"

	"github.com/ludo-technologies/jsopen/internal/ast"
)

func ident(name string) *ast.Identifier { return &ast.Identifier{Name: name} }

func TestGenerateVariableDeclaration(t *testing.T) {
	program := &ast.Program{
		Body: []ast.Stmt{
			&ast.VariableDeclaration{
				Kind: "var",
				Declarations: []*ast.VariableDeclarator{
					{ID: ident("a"), Init: &ast.Literal{Kind: ast.LiteralNumber, Raw: "1"}},
				},
			},
		},
	}

	out := Generate(program)
	if !strings.Contains(out, "var a = 1") {
		t.Errorf("expected output to contain %q, got %q", "var a = 1", out)
	}
}

func TestGenerateIfElseKeepsBlockBraces(t *testing.T) {
	program := &ast.Program{
		Body: []ast.Stmt{
			&ast.IfStatement{
				Test: ident("cond"),
				Consequent: &ast.BlockStatement{Body: []ast.Stmt{
					&ast.ExpressionStatement{Expression: &ast.CallExpression{Callee: ident("f")}},
				}},
				Alternate: &ast.BlockStatement{Body: []ast.Stmt{
					&ast.ExpressionStatement{Expression: &ast.CallExpression{Callee: ident("g")}},
				}},
			},
		},
	}

	out := Generate(program)
	if !strings.Contains(out, "if (cond)") {
		t.Errorf("expected an if-condition in output, got %q", out)
	}
	if !strings.Contains(out, "else") {
		t.Errorf("expected an else clause in output, got %q", out)
	}
	if !strings.Contains(out, "{") || !strings.Contains(out, "}") {
		t.Errorf("expected braces around both branches, got %q", out)
	}
}

func TestGenerateCallExpressionArguments(t *testing.T) {
	program := &ast.Program{
		Body: []ast.Stmt{
			&ast.ExpressionStatement{Expression: &ast.CallExpression{
				Callee: ident("f"),
				Args:   []ast.Expr{ident("a"), ident("b")},
			}},
		},
	}

	out := Generate(program)
	if !strings.Contains(out, "f(a, b)") {
		t.Errorf("expected %q in output, got %q", "f(a, b)", out)
	}
}

func TestGenerateBinaryExpressionParenthesizesWhenNeeded(t *testing.T) {
	program := &ast.Program{
		Body: []ast.Stmt{
			&ast.ExpressionStatement{Expression: &ast.BinaryExpression{
				Operator: "*",
				Left: &ast.BinaryExpression{
					Operator: "+",
					Left:     ident("a"),
					Right:    ident("b"),
				},
				Right: ident("c"),
			}},
		},
	}

	out := Generate(program)
	if !strings.Contains(out, "(a + b) * c") {
		t.Errorf("expected parenthesized left operand, got %q", out)
	}
}
