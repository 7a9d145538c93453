package transform

import (
	"fmt"

	"github.com/ludo-technologies/jsopen/internal/ast"
)

// LabelFunctionArray names anonymous function expressions sitting inside
// an array literal that initializes a variable, using the variable's own
// name as a prefix: `var dispatch = [function() {...}, function() {...}]`
// becomes `var dispatch = [function dispatch0() {...}, function dispatch1()
// {...}]`. Obfuscators commonly build dispatch tables this way; naming the
// closures makes stack traces and debugger call-stacks readable again.
type LabelFunctionArray struct{}

// NewLabelFunctionArray constructs a LabelFunctionArray pass. It carries no
// state.
func NewLabelFunctionArray() *LabelFunctionArray { return &LabelFunctionArray{} }

// ProcessNode labels the functions of node's initializer array, if node is
// a VariableDeclarator with one.
func (l *LabelFunctionArray) ProcessNode(node ast.Node) {
	decl, ok := node.(*ast.VariableDeclarator)
	if !ok {
		return
	}
	l.processDeclarator(decl)
}

func (l *LabelFunctionArray) processDeclarator(decl *ast.VariableDeclarator) {
	if decl.Init == nil {
		return
	}
	arr, ok := decl.Init.(*ast.ArrayExpression)
	if !ok {
		return
	}
	ident, ok := decl.ID.(*ast.Identifier)
	if !ok {
		return
	}
	for i, elem := range arr.Elements {
		fn, ok := elem.(*ast.FunctionExpression)
		if !ok || fn.ID != nil {
			continue
		}
		fn.ID = &ast.Identifier{Name: fmt.Sprintf("%s%d", ident.Name, i)}
	}
}
