package transform

import "github.com/ludo-technologies/jsopen/internal/ast"

// IsConst reports whether evaluating node can have no observable side
// effect and always produces the same value. Only literals, and unary,
// binary, logical, and conditional combinations of them, qualify: a bare
// identifier does not (its value can vary across calls), so callers that
// want to also accept plain references use IsNoOp instead. Object/array
// literals and calls are excluded since constructing or invoking them can
// run arbitrary code. Function expressions are excluded from recursion
// (their bodies don't execute at the point the expression appears) but are
// themselves const, since merely referencing a function literal has no
// side effect.
func IsConst(node ast.Node) bool {
	result := true
	ast.Inspect(node, func(n ast.Node) bool {
		if !result || n == nil {
			return false
		}
		switch n.(type) {
		case *ast.Literal, *ast.FunctionExpression:
			return false
		case *ast.UnaryExpression, *ast.BinaryExpression, *ast.LogicalExpression,
			*ast.ConditionalExpression:
			return true
		default:
			result = false
			return false
		}
	})
	return result
}

// IsNoOp reports whether node can be dropped from an expression-statement
// position with no observable effect: a bare identifier reference, or an
// IsConst expression.
func IsNoOp(node ast.Expr) bool {
	if _, ok := node.(*ast.Identifier); ok {
		return true
	}
	return IsConst(node)
}

// UsesFunctionContext reports whether node references `this` or the
// `arguments` object that only makes sense inside a non-arrow function
// body, without descending into nested (non-arrow) function expressions
// that would have their own binding for both.
func UsesFunctionContext(node ast.Node) bool {
	uses := false
	ast.Inspect(node, func(n ast.Node) bool {
		if uses || n == nil {
			return false
		}
		switch t := n.(type) {
		case *ast.FunctionExpression:
			return t.IsArrow
		case *ast.Identifier:
			if t.Name == "arguments" {
				uses = true
			}
			return false
		case *ast.ThisExpression:
			uses = true
			return false
		}
		return true
	})
	return uses
}
