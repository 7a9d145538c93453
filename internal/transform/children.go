package transform

import "github.com/ludo-technologies/jsopen/internal/ast"

// RewriteExprChildren calls f on every immediate expression-valued field of
// node (not recursing further) and writes back whatever f returns. It
// exists so that single-level rewrites like Respelling and FlattenInvoked -
// which only ever replace a direct child, never restructure node itself -
// don't need a bespoke type switch each.
//
// Nil slice/pointer slots and array holes are skipped. f must not return
// nil for a slot that was non-nil.
func RewriteExprChildren(node ast.Node, f func(ast.Expr) ast.Expr) {
	switch n := node.(type) {
	case *ast.ExpressionStatement:
		n.Expression = f(n.Expression)
	case *ast.ReturnStatement:
		if n.Argument != nil {
			n.Argument = f(n.Argument)
		}
	case *ast.ThrowStatement:
		n.Argument = f(n.Argument)
	case *ast.VariableDeclarator:
		if n.Init != nil {
			n.Init = f(n.Init)
		}
	case *ast.AssignmentExpression:
		n.Left = f(n.Left)
		n.Right = f(n.Right)
	case *ast.BinaryExpression:
		n.Left = f(n.Left)
		n.Right = f(n.Right)
	case *ast.LogicalExpression:
		n.Left = f(n.Left)
		n.Right = f(n.Right)
	case *ast.UnaryExpression:
		n.Argument = f(n.Argument)
	case *ast.UpdateExpression:
		n.Argument = f(n.Argument)
	case *ast.ConditionalExpression:
		n.Test = f(n.Test)
		n.Consequent = f(n.Consequent)
		n.Alternate = f(n.Alternate)
	case *ast.CallExpression:
		n.Callee = f(n.Callee)
		for i, a := range n.Args {
			n.Args[i] = f(a)
		}
	case *ast.NewExpression:
		n.Callee = f(n.Callee)
		for i, a := range n.Args {
			n.Args[i] = f(a)
		}
	case *ast.MemberExpression:
		n.Object = f(n.Object)
		if n.Computed {
			n.Property = f(n.Property)
		}
	case *ast.ArrayExpression:
		for i, e := range n.Elements {
			if e != nil {
				n.Elements[i] = f(e)
			}
		}
	case *ast.Property:
		if n.Computed {
			n.Key = f(n.Key)
		}
		if n.Value != nil {
			n.Value = f(n.Value)
		}
	case *ast.SpreadElement:
		n.Argument = f(n.Argument)
	case *ast.SequenceExpression:
		for i, e := range n.Expressions {
			n.Expressions[i] = f(e)
		}
	case *ast.TemplateLiteral:
		for i, e := range n.Expressions {
			n.Expressions[i] = f(e)
		}
	case *ast.ParenthesizedExpression:
		n.Expression = f(n.Expression)
	case *ast.IfStatement:
		n.Test = f(n.Test)
	case *ast.WhileStatement:
		n.Test = f(n.Test)
	case *ast.DoWhileStatement:
		n.Test = f(n.Test)
	case *ast.ForStatement:
		if n.Test != nil {
			n.Test = f(n.Test)
		}
		if n.Update != nil {
			n.Update = f(n.Update)
		}
	case *ast.ForInStatement:
		n.Right = f(n.Right)
	case *ast.ForOfStatement:
		n.Right = f(n.Right)
	case *ast.SwitchStatement:
		n.Discriminant = f(n.Discriminant)
	case *ast.SwitchCase:
		if n.Test != nil {
			n.Test = f(n.Test)
		}
	}
}
