package ast

import "fmt"

// A Visitor's Visit method is invoked for each node encountered by Walk.
// If the returned visitor w is not nil, Walk visits each child of node
// with w, followed by a call to w.Visit(nil).
type Visitor interface {
	Visit(node Node) (w Visitor)
}

// Inspect traverses an AST in depth-first order, calling f for every
// node. If f returns false, Inspect does not descend into that node's
// children; otherwise, after the children, f is called once with nil.
func Inspect(node Node, f func(Node) bool) {
	Walk(inspector(f), node)
}

type inspector func(Node) bool

func (f inspector) Visit(node Node) Visitor {
	if f(node) {
		return f
	}
	return nil
}

// Walk traverses an AST in depth-first order.
//
//nolint:funlen,gocyclo // one exhaustive switch is clearer than scattered Walk methods.
func Walk(v Visitor, node Node) {
	if node == nil {
		return
	}
	if v = v.Visit(node); v == nil {
		return
	}

	switch n := node.(type) {
	case *Unsupported, *Identifier, *Literal, *EmptyStatement, *DebuggerStatement, *ThisExpression:
		// leaves

	case *Program:
		walkStmts(v, n.Body)

	case *TemplateLiteral:
		walkExprs(v, n.Expressions)

	case *ArrayExpression:
		walkExprs(v, n.Elements)

	case *ObjectExpression:
		for _, p := range n.Properties {
			Walk(v, p)
		}

	case *Property:
		Walk(v, n.Key)
		if n.Value != nil {
			Walk(v, n.Value)
		}

	case *SpreadElement:
		Walk(v, n.Argument)

	case *FunctionExpression:
		if n.ID != nil {
			Walk(v, n.ID)
		}
		for _, p := range n.Params {
			Walk(v, p)
		}
		if n.Body != nil {
			Walk(v, n.Body)
		}

	case *UnaryExpression:
		Walk(v, n.Argument)

	case *UpdateExpression:
		Walk(v, n.Argument)

	case *BinaryExpression:
		Walk(v, n.Left)
		Walk(v, n.Right)

	case *LogicalExpression:
		Walk(v, n.Left)
		Walk(v, n.Right)

	case *AssignmentExpression:
		Walk(v, n.Left)
		Walk(v, n.Right)

	case *ConditionalExpression:
		Walk(v, n.Test)
		Walk(v, n.Consequent)
		Walk(v, n.Alternate)

	case *SequenceExpression:
		walkExprs(v, n.Expressions)

	case *CallExpression:
		Walk(v, n.Callee)
		walkExprs(v, n.Args)

	case *NewExpression:
		Walk(v, n.Callee)
		walkExprs(v, n.Args)

	case *MemberExpression:
		Walk(v, n.Object)
		Walk(v, n.Property)

	case *ParenthesizedExpression:
		Walk(v, n.Expression)

	case *BlockStatement:
		walkStmts(v, n.Body)

	case *ExpressionStatement:
		Walk(v, n.Expression)

	case *VariableDeclaration:
		for _, d := range n.Declarations {
			Walk(v, d)
		}

	case *VariableDeclarator:
		Walk(v, n.ID)
		if n.Init != nil {
			Walk(v, n.Init)
		}

	case *IfStatement:
		Walk(v, n.Test)
		Walk(v, n.Consequent)
		if n.Alternate != nil {
			Walk(v, n.Alternate)
		}

	case *ForStatement:
		if n.Init != nil {
			Walk(v, n.Init)
		}
		if n.Test != nil {
			Walk(v, n.Test)
		}
		if n.Update != nil {
			Walk(v, n.Update)
		}
		Walk(v, n.Body)

	case *ForInStatement:
		Walk(v, n.Left)
		Walk(v, n.Right)
		Walk(v, n.Body)

	case *ForOfStatement:
		Walk(v, n.Left)
		Walk(v, n.Right)
		Walk(v, n.Body)

	case *WhileStatement:
		Walk(v, n.Test)
		Walk(v, n.Body)

	case *DoWhileStatement:
		Walk(v, n.Body)
		Walk(v, n.Test)

	case *ReturnStatement:
		if n.Argument != nil {
			Walk(v, n.Argument)
		}

	case *BreakStatement:
		if n.Label != nil {
			Walk(v, n.Label)
		}

	case *ContinueStatement:
		if n.Label != nil {
			Walk(v, n.Label)
		}

	case *ThrowStatement:
		Walk(v, n.Argument)

	case *TryStatement:
		Walk(v, n.Block)
		if n.Param != nil {
			Walk(v, n.Param)
		}
		if n.Handler != nil {
			Walk(v, n.Handler)
		}
		if n.Finalizer != nil {
			Walk(v, n.Finalizer)
		}

	case *SwitchStatement:
		Walk(v, n.Discriminant)
		for _, c := range n.Cases {
			Walk(v, c)
		}

	case *SwitchCase:
		if n.Test != nil {
			Walk(v, n.Test)
		}
		walkStmts(v, n.Consequent)

	case *LabeledStatement:
		Walk(v, n.Label)
		Walk(v, n.Body)

	case *FunctionDeclaration:
		if n.ID != nil {
			Walk(v, n.ID)
		}
		for _, p := range n.Params {
			Walk(v, p)
		}
		Walk(v, n.Body)

	default:
		panic(fmt.Sprintf("ast.Walk: unexpected node type %T", n))
	}

	v.Visit(nil)
}

func walkStmts(v Visitor, list []Stmt) {
	for _, s := range list {
		Walk(v, s)
	}
}

func walkExprs(v Visitor, list []Expr) {
	for _, e := range list {
		if e != nil {
			Walk(v, e)
		}
	}
}
