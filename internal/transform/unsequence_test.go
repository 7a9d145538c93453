package transform

import (
	"errors"
	"testing"

	"github.com/ludo-technologies/jsopen/internal/ast"
)

func ident(name string) *ast.Identifier { return &ast.Identifier{Name: name} }

func numLit(raw string) *ast.Literal {
	return &ast.Literal{Kind: ast.LiteralNumber, Raw: raw}
}

func countSequenceExpressions(program *ast.Program) int {
	count := 0
	ast.Inspect(program, func(n ast.Node) bool {
		if _, ok := n.(*ast.SequenceExpression); ok {
			count++
		}
		return true
	})
	return count
}

func TestUnsequenceEliminatesTopLevelSequence(t *testing.T) {
	// (a(), b())  ->  a(); b();
	program := &ast.Program{
		Body: []ast.Stmt{
			&ast.ExpressionStatement{
				Expression: &ast.SequenceExpression{
					Expressions: []ast.Expr{
						&ast.CallExpression{Callee: ident("a")},
						&ast.CallExpression{Callee: ident("b")},
					},
				},
			},
		},
	}

	if err := Run(program, Options{Prefix: "_t", Unsequence: true}); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if countSequenceExpressions(program) != 0 {
		t.Fatalf("expected no SequenceExpression nodes after Unsequence, found some")
	}
	if len(program.Body) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(program.Body))
	}
}

func TestUnsequenceSplitsMultiDeclaratorVar(t *testing.T) {
	// var a = 1, b = 2;
	program := &ast.Program{
		Body: []ast.Stmt{
			&ast.VariableDeclaration{
				Kind: "var",
				Declarations: []*ast.VariableDeclarator{
					{ID: ident("a"), Init: numLit("1")},
					{ID: ident("b"), Init: numLit("2")},
				},
			},
		},
	}

	if err := Run(program, Options{Prefix: "_t", Unsequence: true}); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if len(program.Body) != 2 {
		t.Fatalf("expected the declaration to split into 2 statements, got %d", len(program.Body))
	}
	for _, stmt := range program.Body {
		decl, ok := stmt.(*ast.VariableDeclaration)
		if !ok {
			t.Fatalf("expected VariableDeclaration, got %T", stmt)
		}
		if len(decl.Declarations) != 1 {
			t.Errorf("expected exactly one declarator per declaration, got %d", len(decl.Declarations))
		}
	}
}

func TestUnsequenceHoistsCallArgumentSideEffect(t *testing.T) {
	// f(a(), (b(), c))  ->  let _t1 = a(); b(); f(_t1, c);
	// a() is hoisted only because a later argument produced additions.
	program := &ast.Program{
		Body: []ast.Stmt{
			&ast.ExpressionStatement{
				Expression: &ast.CallExpression{
					Callee: ident("f"),
					Args: []ast.Expr{
						&ast.CallExpression{Callee: ident("a")},
						&ast.SequenceExpression{Expressions: []ast.Expr{
							&ast.CallExpression{Callee: ident("b")},
							ident("c"),
						}},
					},
				},
			},
		},
	}

	if err := Run(program, Options{Prefix: "_t", Unsequence: true}); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if len(program.Body) != 3 {
		t.Fatalf("expected the call argument side effect to be hoisted into its own statement, got %d statements", len(program.Body))
	}
	if _, ok := program.Body[0].(*ast.VariableDeclaration); !ok {
		t.Fatalf("expected a hoisted VariableDeclaration first, got %T", program.Body[0])
	}
}

func TestUnsequenceRewritesLogicalExpressionStatement(t *testing.T) {
	// a() && b();
	program := &ast.Program{
		Body: []ast.Stmt{
			&ast.ExpressionStatement{
				Expression: &ast.LogicalExpression{
					Operator: "&&",
					Left:     &ast.CallExpression{Callee: ident("a")},
					Right:    &ast.CallExpression{Callee: ident("b")},
				},
			},
		},
	}

	if err := Run(program, Options{Prefix: "_t", Unsequence: true}); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if len(program.Body) != 1 {
		t.Fatalf("expected 1 top-level statement, got %d", len(program.Body))
	}
	ifStmt, ok := program.Body[0].(*ast.IfStatement)
	if !ok {
		t.Fatalf("expected the && statement to become an IfStatement, got %T", program.Body[0])
	}
	if _, ok := ifStmt.Test.(*ast.CallExpression); !ok {
		t.Errorf("expected if test to be the left-hand call, got %T", ifStmt.Test)
	}
}

func TestUnsequenceRejectsNonAssignableLHS(t *testing.T) {
	// 1 = a(); - not a real JS program, but it's the shape an upstream bug
	// or unsupported construct could hand the pipeline.
	program := &ast.Program{
		Body: []ast.Stmt{
			&ast.ExpressionStatement{
				Expression: &ast.AssignmentExpression{
					Operator: "=",
					Left:     numLit("1"),
					Right:    &ast.CallExpression{Callee: ident("a")},
				},
			},
		},
	}

	err := Run(program, Options{Prefix: "_t", Unsequence: true})
	if !errors.Is(err, ErrStructuralViolation) {
		t.Fatalf("expected ErrStructuralViolation, got %v", err)
	}
}

func TestIsNoOp(t *testing.T) {
	cases := []struct {
		name string
		node ast.Expr
		want bool
	}{
		{"identifier", ident("x"), true},
		{"literal", numLit("1"), true},
		{"call", &ast.CallExpression{Callee: ident("f")}, false},
		{
			"binary of literals",
			&ast.BinaryExpression{Operator: "+", Left: numLit("1"), Right: numLit("2")},
			true,
		},
		{
			"binary with identifier operand",
			&ast.BinaryExpression{Operator: "+", Left: ident("x"), Right: numLit("2")},
			false,
		},
	}
	for _, tc := range cases {
		if got := IsNoOp(tc.node); got != tc.want {
			t.Errorf("%s: IsNoOp() = %v, want %v", tc.name, got, tc.want)
		}
	}
}
