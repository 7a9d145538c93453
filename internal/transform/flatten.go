package transform

import "github.com/ludo-technologies/jsopen/internal/ast"

// FlattenInvoked collapses an immediately-invoked function expression whose
// entire body is a single `return expr;` into expr itself, provided the
// function takes no arguments, is called with none, and its body doesn't
// reach for `this`/`arguments`: `(function() { return expr; })()` becomes
// expr. This undoes a common obfuscation idiom of wrapping a value in a
// throwaway closure to obscure it from simple pattern matching.
type FlattenInvoked struct{}

// NewFlattenInvoked constructs a FlattenInvoked pass. It carries no state.
func NewFlattenInvoked() *FlattenInvoked { return &FlattenInvoked{} }

// ProcessNode flattens node's immediate expression children to a fixed
// point.
func (fl *FlattenInvoked) ProcessNode(node ast.Node) {
	RewriteExprChildren(node, fl.flatten)
}

func (fl *FlattenInvoked) flatten(node ast.Expr) ast.Expr {
	for {
		next := fl.flattenOnce(node)
		if next == node {
			return next
		}
		node = next
	}
}

func (fl *FlattenInvoked) flattenOnce(node ast.Expr) ast.Expr {
	call, ok := node.(*ast.CallExpression)
	if !ok || len(call.Args) != 0 {
		return node
	}
	callee := call.Callee
	if paren, isParen := callee.(*ast.ParenthesizedExpression); isParen {
		callee = paren.Expression
	}
	fn, ok := callee.(*ast.FunctionExpression)
	if !ok || len(fn.Params) != 0 || fn.IsArrow {
		return node
	}
	block, ok := fn.Body.(*ast.BlockStatement)
	if !ok || len(block.Body) != 1 {
		return node
	}
	ret, ok := block.Body[0].(*ast.ReturnStatement)
	if !ok || ret.Argument == nil || UsesFunctionContext(block) {
		return node
	}
	return ret.Argument
}
