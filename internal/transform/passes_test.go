package transform

import (
	"testing"

	"github.com/ludo-technologies/jsopen/internal/ast"
)

func TestIfBracesWrapsBracelessBodies(t *testing.T) {
	program := &ast.Program{
		Body: []ast.Stmt{
			&ast.IfStatement{
				Test:       ident("x"),
				Consequent: &ast.ExpressionStatement{Expression: &ast.CallExpression{Callee: ident("f")}},
			},
			&ast.WhileStatement{
				Test: ident("y"),
				Body: &ast.ExpressionStatement{Expression: &ast.CallExpression{Callee: ident("g")}},
			},
		},
	}

	if err := Run(program, Options{IfBraces: true}); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	ifStmt := program.Body[0].(*ast.IfStatement)
	if _, ok := ifStmt.Consequent.(*ast.BlockStatement); !ok {
		t.Errorf("expected if consequent to be braced, got %T", ifStmt.Consequent)
	}
	while := program.Body[1].(*ast.WhileStatement)
	if _, ok := while.Body.(*ast.BlockStatement); !ok {
		t.Errorf("expected while body to be braced, got %T", while.Body)
	}
}

func TestIfBracesLeavesElseIfChainAlone(t *testing.T) {
	inner := &ast.IfStatement{
		Test:       ident("b"),
		Consequent: &ast.BlockStatement{},
	}
	outer := &ast.IfStatement{
		Test:       ident("a"),
		Consequent: &ast.BlockStatement{},
		Alternate:  inner,
	}
	program := &ast.Program{Body: []ast.Stmt{outer}}

	if err := Run(program, Options{IfBraces: true}); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	if outer.Alternate != ast.Stmt(inner) {
		t.Errorf("expected else-if chain to remain an *IfStatement, got %T", outer.Alternate)
	}
}

func TestRespellingRewritesVoidZero(t *testing.T) {
	program := &ast.Program{
		Body: []ast.Stmt{
			&ast.VariableDeclaration{
				Kind: "let",
				Declarations: []*ast.VariableDeclarator{
					{ID: ident("x"), Init: &ast.UnaryExpression{Operator: "void", Argument: numLit("0")}},
				},
			},
		},
	}

	if err := Run(program, Options{Respelling: true}); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	decl := program.Body[0].(*ast.VariableDeclaration).Declarations[0]
	got, ok := decl.Init.(*ast.Identifier)
	if !ok || got.Name != "undefined" {
		t.Errorf("expected `void 0` to become `undefined`, got %#v", decl.Init)
	}
}

func TestRespellingRewritesBangZero(t *testing.T) {
	program := &ast.Program{
		Body: []ast.Stmt{
			&ast.ExpressionStatement{Expression: &ast.AssignmentExpression{
				Operator: "=", Left: ident("a"),
				Right: &ast.UnaryExpression{Operator: "!", Argument: numLit("0")},
			}},
		},
	}

	if err := Run(program, Options{Respelling: true}); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	assign := program.Body[0].(*ast.ExpressionStatement).Expression.(*ast.AssignmentExpression)
	lit, ok := assign.Right.(*ast.Literal)
	if !ok || lit.Kind != ast.LiteralBoolean || lit.Raw != "true" {
		t.Errorf("expected `!0` to become literal `true`, got %#v", assign.Right)
	}
}

func TestRespellingRewritesArbitraryIntByTruthiness(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"2", "false"},
		{"0x0", "true"},
		{"0x1F", "false"},
		{"010", "false"},
	}
	for _, c := range cases {
		program := &ast.Program{
			Body: []ast.Stmt{
				&ast.ExpressionStatement{Expression: &ast.AssignmentExpression{
					Operator: "=", Left: ident("a"),
					Right: &ast.UnaryExpression{Operator: "!", Argument: numLit(c.raw)},
				}},
			},
		}

		if err := Run(program, Options{Respelling: true}); err != nil {
			t.Fatalf("Run returned error: %v", err)
		}

		assign := program.Body[0].(*ast.ExpressionStatement).Expression.(*ast.AssignmentExpression)
		lit, ok := assign.Right.(*ast.Literal)
		if !ok || lit.Kind != ast.LiteralBoolean || lit.Raw != c.want {
			t.Errorf("!%s: expected literal %s, got %#v", c.raw, c.want, assign.Right)
		}
	}
}

func TestFlattenInvokedCollapsesIIFE(t *testing.T) {
	// (function() { return 1 + 2; })()
	iife := &ast.CallExpression{
		Callee: &ast.FunctionExpression{
			Body: &ast.BlockStatement{
				Body: []ast.Stmt{
					&ast.ReturnStatement{Argument: &ast.BinaryExpression{
						Operator: "+", Left: numLit("1"), Right: numLit("2"),
					}},
				},
			},
		},
	}
	program := &ast.Program{
		Body: []ast.Stmt{
			&ast.ExpressionStatement{Expression: iife},
		},
	}

	if err := Run(program, Options{FlattenInvoked: true}); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	expr := program.Body[0].(*ast.ExpressionStatement).Expression
	if _, ok := expr.(*ast.BinaryExpression); !ok {
		t.Errorf("expected IIFE to flatten to its returned expression, got %T", expr)
	}
}

func TestFlattenInvokedLeavesContextSensitiveIIFEAlone(t *testing.T) {
	iife := &ast.CallExpression{
		Callee: &ast.FunctionExpression{
			Body: &ast.BlockStatement{
				Body: []ast.Stmt{
					&ast.ReturnStatement{Argument: &ast.ThisExpression{}},
				},
			},
		},
	}
	program := &ast.Program{Body: []ast.Stmt{&ast.ExpressionStatement{Expression: iife}}}

	if err := Run(program, Options{FlattenInvoked: true}); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	expr := program.Body[0].(*ast.ExpressionStatement).Expression
	if expr != ast.Expr(iife) {
		t.Errorf("expected IIFE referencing `this` to be left alone, got %T", expr)
	}
}

func TestLabelFunctionArrayNamesAnonymousEntries(t *testing.T) {
	program := &ast.Program{
		Body: []ast.Stmt{
			&ast.VariableDeclaration{
				Kind: "var",
				Declarations: []*ast.VariableDeclarator{
					{
						ID: ident("dispatch"),
						Init: &ast.ArrayExpression{Elements: []ast.Expr{
							&ast.FunctionExpression{},
							&ast.FunctionExpression{ID: ident("named")},
						}},
					},
				},
			},
		},
	}

	if err := Run(program, Options{LabelFunctionArray: true}); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	arr := program.Body[0].(*ast.VariableDeclaration).Declarations[0].Init.(*ast.ArrayExpression)
	first := arr.Elements[0].(*ast.FunctionExpression)
	if first.ID == nil || first.ID.Name != "dispatch0" {
		t.Errorf("expected first anonymous entry to be named dispatch0, got %#v", first.ID)
	}
	second := arr.Elements[1].(*ast.FunctionExpression)
	if second.ID.Name != "named" {
		t.Errorf("expected already-named entry to be left alone, got %q", second.ID.Name)
	}
}
