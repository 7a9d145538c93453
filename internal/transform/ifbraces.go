package transform

import "github.com/ludo-technologies/jsopen/internal/ast"

// IfBraces wraps braceless if/loop bodies in a BlockStatement, establishing
// the invariant that every IfStatement's Consequent and (non-else-if)
// Alternate is a *ast.BlockStatement, and every loop's Body is too. An
// empty statement body (`if (x);`) is left alone rather than turned into
// an empty block, since the two are not textually equivalent under a
// surrounding diff.
type IfBraces struct{}

// NewIfBraces constructs an IfBraces pass. It carries no state.
func NewIfBraces() *IfBraces { return &IfBraces{} }

// ProcessNode braces node's body/consequent/alternate in place if needed.
func (b *IfBraces) ProcessNode(node ast.Node) {
	switch n := node.(type) {
	case *ast.IfStatement:
		n.Consequent = b.handleBody(n.Consequent)
		if n.Alternate != nil {
			n.Alternate = b.handleAlternate(n.Alternate)
		}
	case *ast.WhileStatement:
		n.Body = b.handleBody(n.Body)
	case *ast.DoWhileStatement:
		n.Body = b.handleBody(n.Body)
	case *ast.ForStatement:
		n.Body = b.handleBody(n.Body)
	case *ast.ForInStatement:
		n.Body = b.handleBody(n.Body)
	case *ast.ForOfStatement:
		n.Body = b.handleBody(n.Body)
	}
}

func (b *IfBraces) handleBody(s ast.Stmt) ast.Stmt {
	switch s.(type) {
	case *ast.BlockStatement, *ast.EmptyStatement:
		return s
	}
	return &ast.BlockStatement{Body: []ast.Stmt{s}}
}

func (b *IfBraces) handleAlternate(s ast.Stmt) ast.Stmt {
	if _, ok := s.(*ast.IfStatement); ok {
		return s
	}
	return b.handleBody(s)
}
