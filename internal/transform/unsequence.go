package transform

import (
	"fmt"

	"github.com/ludo-technologies/jsopen/internal/ast"
)

// Unsequence eliminates the comma (sequence) operator and short-circuit
// logical operators used as statements, hoisting their side effects into
// separate preceding statements. A fully unsequenced program contains no
// SequenceExpression nodes, and `&&`/`||` only ever appear where both
// operands are side-effect free enough that evaluation order doesn't need
// to be expressed as separate statements.
//
// Each method below handles one expression or statement shape, dispatched
// through an exhaustive Go type switch over internal/ast's tagged node
// types.
type Unsequence struct {
	state   *State
	changed bool
	err     error
}

// NewUnsequence constructs an Unsequence pass sharing state's fresh-name
// counter.
func NewUnsequence(state *State) *Unsequence {
	return &Unsequence{state: state}
}

// Err returns the structural violation (if any) this pass hit while
// rewriting an assignment. Once set it is sticky: ProcessNode becomes a
// no-op so Run can unwind cleanly.
func (u *Unsequence) Err() error { return u.err }

// ProcessNode is called once per node during a top-down traversal of the
// whole tree (see Run). Program and BlockStatement bodies, and
// SwitchCase consequents, are repeatedly flattened until a fixed point.
func (u *Unsequence) ProcessNode(node ast.Node) {
	if u.err != nil {
		return
	}
	switch n := node.(type) {
	case *ast.Program:
		u.processBlock(&n.Body)
	case *ast.BlockStatement:
		u.processBlock(&n.Body)
	case *ast.SwitchCase:
		u.processBlock(&n.Consequent)
	}
}

func (u *Unsequence) processBlock(body *[]ast.Stmt) {
	for {
		u.changed = false
		u.processBlockOnce(body)
		if !u.changed || u.err != nil {
			return
		}
	}
}

func (u *Unsequence) processBlockOnce(body *[]ast.Stmt) {
	orig := *body
	children := make([]ast.Stmt, 0, len(orig))
	for _, child := range orig {
		var additions []ast.Stmt
		newChild := u.handleStatement(child, &additions)
		children = append(children, additions...)
		if newChild != nil {
			children = append(children, newChild)
		}
	}
	if len(children) != len(orig) {
		u.changed = true
	}
	*body = children
}

// handleStatement rewrites a single statement, appending any hoisted
// side-effecting statements to additions. A nil return means the statement
// was dropped entirely (e.g. a no-op expression statement).
func (u *Unsequence) handleStatement(node ast.Stmt, additions *[]ast.Stmt) ast.Stmt {
	switch n := node.(type) {
	case *ast.ExpressionStatement:
		return u.handleExpressionStatement(n, additions)

	case *ast.ReturnStatement:
		if n.Argument != nil {
			n.Argument = u.handleExpression(n.Argument, additions)
		}
		return n

	case *ast.ThrowStatement:
		n.Argument = u.handleExpression(n.Argument, additions)
		return n

	case *ast.VariableDeclaration:
		if len(n.Declarations) == 0 {
			return n
		}
		if len(n.Declarations) > 1 {
			for _, decl := range n.Declarations[:len(n.Declarations)-1] {
				*additions = append(*additions, &ast.VariableDeclaration{
					Kind:         n.Kind,
					Declarations: []*ast.VariableDeclarator{decl},
				})
			}
			last := n.Declarations[len(n.Declarations)-1]
			n.Declarations = []*ast.VariableDeclarator{last}
			u.changed = true
			return n
		}
		decl := n.Declarations[0]
		if decl.Init != nil {
			decl.Init = u.handleExpression(decl.Init, additions)
		}
		return n

	case *ast.IfStatement:
		return u.handleIf(n, additions)

	case *ast.WhileStatement:
		n.Body = u.hoistLoopBody(n.Body)
		return n

	case *ast.DoWhileStatement:
		n.Body = u.hoistLoopBody(n.Body)
		return n

	case *ast.ForInStatement:
		n.Body = u.hoistLoopBody(n.Body)
		n.Right = u.handleExpression(n.Right, additions)
		return n

	case *ast.ForOfStatement:
		n.Body = u.hoistLoopBody(n.Body)
		n.Right = u.handleExpression(n.Right, additions)
		return n

	case *ast.ForStatement:
		n.Body = u.hoistLoopBody(n.Body)
		return u.handleFor(n, additions)

	case *ast.SwitchStatement:
		n.Discriminant = u.handleExpression(n.Discriminant, additions)
		return n
	}
	return node
}

// hoistLoopBody processes a loop body as its own statement, wrapping any
// hoisted additions together with the (possibly rewritten) body into a
// block. This mirrors handling a single-statement (braceless) loop body as
// if it read the additions right before it on every iteration.
func (u *Unsequence) hoistLoopBody(body ast.Stmt) ast.Stmt {
	var bodyAdditions []ast.Stmt
	newBody := u.handleStatement(body, &bodyAdditions)
	if len(bodyAdditions) == 0 {
		if newBody == nil {
			return &ast.EmptyStatement{}
		}
		return newBody
	}
	if newBody != nil {
		bodyAdditions = append(bodyAdditions, newBody)
	}
	u.changed = true
	return &ast.BlockStatement{Body: bodyAdditions}
}

func (u *Unsequence) handleFor(n *ast.ForStatement, additions *[]ast.Stmt) ast.Stmt {
	switch init := n.Init.(type) {
	case nil:
	case *ast.VariableDeclaration:
		n.Init = u.handleStatement(init, additions)
	case ast.Expr:
		n.Init = u.handleExpression(init, additions)
	}

	if n.Update != nil {
		var updateAdditions []ast.Stmt
		n.Update = u.handleExpression(n.Update, &updateAdditions)
		if len(updateAdditions) > 0 {
			block, ok := n.Body.(*ast.BlockStatement)
			if !ok {
				block = &ast.BlockStatement{Body: []ast.Stmt{n.Body}}
			}
			block.Body = append(block.Body, updateAdditions...)
			n.Body = block
			u.changed = true
		}
	}
	return n
}

func (u *Unsequence) handleIf(n *ast.IfStatement, additions *[]ast.Stmt) ast.Stmt {
	n.Test = u.handleExpression(n.Test, additions)

	var consAdditions []ast.Stmt
	newCons := u.handleStatement(n.Consequent, &consAdditions)
	if len(consAdditions) > 0 {
		if newCons != nil {
			consAdditions = append(consAdditions, newCons)
		}
		newCons = &ast.BlockStatement{Body: consAdditions}
	}

	var newAlt ast.Stmt = n.Alternate
	if newAlt != nil {
		var altAdditions []ast.Stmt
		newAlt = u.handleStatement(newAlt, &altAdditions)
		if len(altAdditions) > 0 {
			if newAlt != nil {
				altAdditions = append(altAdditions, newAlt)
			}
			newAlt = &ast.BlockStatement{Body: altAdditions}
		}
	}

	if newCons != nil {
		if _, ok := newCons.(*ast.IfStatement); ok {
			// Avoid dangling-else ambiguity.
			newCons = &ast.BlockStatement{Body: []ast.Stmt{newCons}}
		}
		n.Consequent = newCons
		n.Alternate = newAlt
		return n
	}

	if newAlt != nil {
		n.Test = &ast.UnaryExpression{Operator: "!", Argument: n.Test, Prefix: true}
		n.Consequent = newAlt
		n.Alternate = nil
		return n
	}
	return &ast.ExpressionStatement{Expression: n.Test}
}

func (u *Unsequence) handleExpressionStatement(n *ast.ExpressionStatement, additions *[]ast.Stmt) ast.Stmt {
	expr := n.Expression
	if IsNoOp(expr) {
		u.changed = true
		return nil
	}

	rewrite := func() ast.Stmt {
		n.Expression = u.handleExpression(expr, additions)
		return n
	}

	if logical, ok := expr.(*ast.LogicalExpression); ok {
		if logical.Operator != "&&" && logical.Operator != "||" {
			return rewrite()
		}
		u.changed = true
		test := logical.Left
		if logical.Operator == "||" {
			test = &ast.UnaryExpression{Operator: "!", Argument: test, Prefix: true}
		}
		return u.handleStatement(&ast.IfStatement{
			Test:       test,
			Consequent: &ast.ExpressionStatement{Expression: logical.Right},
		}, additions)
	}

	if cond, ok := expr.(*ast.ConditionalExpression); ok {
		u.changed = true
		return u.handleStatement(&ast.IfStatement{
			Test:       cond.Test,
			Consequent: &ast.ExpressionStatement{Expression: cond.Consequent},
			Alternate:  &ast.ExpressionStatement{Expression: cond.Alternate},
		}, additions)
	}
	return rewrite()
}

// handleExpression rewrites node so that it, and everything it contains,
// is free of SequenceExpressions and evaluates left-to-right once hoisted
// additions run. Returns the (possibly different) replacement expression.
func (u *Unsequence) handleExpression(node ast.Expr, additions *[]ast.Stmt) ast.Expr {
	if node == nil || u.err != nil {
		return node
	}

	switch n := node.(type) {
	case *ast.SequenceExpression:
		u.changed = true
		for _, e := range n.Expressions[:len(n.Expressions)-1] {
			*additions = append(*additions, &ast.ExpressionStatement{Expression: e})
		}
		return n.Expressions[len(n.Expressions)-1]

	case *ast.ParenthesizedExpression:
		// A parenthesized sequence reduces to its last element; the parens
		// are dropped only when that element is a simple operand.
		_, wasSequence := n.Expression.(*ast.SequenceExpression)
		inner := u.handleExpression(n.Expression, additions)
		if wasSequence {
			switch inner.(type) {
			case *ast.Identifier, *ast.Literal, *ast.ThisExpression, *ast.CallExpression, *ast.MemberExpression:
				return inner
			}
		}
		n.Expression = inner
		return n

	case *ast.AssignmentExpression:
		if !isAssignableLHS(n.Left) {
			u.fail("assignment left-hand side is %T, want Identifier or MemberExpression", n.Left)
			return n
		}
		var rhsAdditions []ast.Stmt
		n.Right = u.handleExpression(n.Right, &rhsAdditions)
		if len(rhsAdditions) > 0 {
			n.Left = u.preEvalAssignmentLHS(n.Left, additions)
			*additions = append(*additions, rhsAdditions...)
			u.changed = true
		} else {
			n.Left = u.handleExpression(n.Left, additions)
			if !isAssignableLHS(n.Left) {
				u.fail("assignment left-hand side changed shape to %T while rewriting", n.Left)
			}
		}
		return n

	case *ast.UnaryExpression:
		n.Argument = u.handleExpression(n.Argument, additions)
		return n

	case *ast.UpdateExpression:
		n.Argument = u.handleExpression(n.Argument, additions)
		return n

	case *ast.BinaryExpression:
		var rhsAdditions []ast.Stmt
		n.Right = u.handleExpression(n.Right, &rhsAdditions)
		if len(rhsAdditions) > 0 {
			n.Left = u.preEvalExpression(n.Left, additions)
			*additions = append(*additions, rhsAdditions...)
			u.changed = true
		} else {
			n.Left = u.handleExpression(n.Left, additions)
		}
		return n

	case *ast.MemberExpression:
		if n.Computed {
			var propAdditions []ast.Stmt
			n.Property = u.handleExpression(n.Property, &propAdditions)
			if len(propAdditions) > 0 {
				n.Object = u.preEvalExpression(n.Object, additions)
				*additions = append(*additions, propAdditions...)
				u.changed = true
				return n
			}
		}
		n.Object = u.handleExpression(n.Object, additions)
		return n

	case *ast.CallExpression:
		return u.handleCallOrNew(n, n.Args, func(args []ast.Expr) { n.Args = args }, additions)

	case *ast.NewExpression:
		return u.handleCallOrNew(n, n.Args, func(args []ast.Expr) { n.Args = args }, additions)

	case *ast.LogicalExpression:
		if n.Operator != "&&" && n.Operator != "||" {
			return n
		}
		var rhsAdditions []ast.Stmt
		rhs := u.handleExpression(n.Right, &rhsAdditions)
		if len(rhsAdditions) > 0 {
			u.changed = true
			lhs := u.storeInTemporary(n.Left, additions, false)
			rhsAdditions = append(rhsAdditions, &ast.ExpressionStatement{
				Expression: &ast.AssignmentExpression{Operator: "=", Left: lhs, Right: rhs},
			})
			test := ast.Expr(lhs)
			if n.Operator == "||" {
				test = &ast.UnaryExpression{Operator: "!", Argument: test, Prefix: true}
			}
			*additions = append(*additions, &ast.IfStatement{
				Test:       test,
				Consequent: &ast.BlockStatement{Body: rhsAdditions},
			})
			return lhs
		}
		n.Left = u.handleExpression(n.Left, additions)
		return n

	case *ast.ConditionalExpression:
		return u.handleConditional(n, additions)

	case *ast.ArrayExpression:
		return u.handleArray(n, additions)

	case *ast.ObjectExpression:
		return u.handleObject(n, additions)
	}
	return node
}

// handleCallOrNew implements the shared CallExpression/NewExpression logic:
// arguments are processed right-to-left, stopping at the first one (from
// the right) that required hoisting, at which point everything to its left
// (including the callee) must also be pre-evaluated into temporaries so
// that evaluation order is preserved once side effects move to separate
// statements.
func (u *Unsequence) handleCallOrNew(node ast.Expr, args []ast.Expr, setArgs func([]ast.Expr), additions *[]ast.Stmt) ast.Expr {
	var argAdditions []ast.Stmt
	modifiedIndex := -1
	for i := len(args) - 1; i >= 0; i-- {
		args[i] = u.handleExpression(args[i], &argAdditions)
		if len(argAdditions) > 0 {
			modifiedIndex = i
			break
		}
	}
	setArgs(args)

	call, isCall := node.(*ast.CallExpression)
	if modifiedIndex < 0 {
		if isCall {
			call.Callee = u.handleExpression(call.Callee, additions)
		} else {
			nw := node.(*ast.NewExpression)
			nw.Callee = u.handleExpression(nw.Callee, additions)
		}
		return node
	}

	if isCall {
		if member, ok := call.Callee.(*ast.MemberExpression); ok {
			if _, ok := member.Object.(*ast.Identifier); !ok {
				member.Object = u.storeInTemporary(member.Object, additions, false)
			}
			obj := &ast.Identifier{Name: member.Object.(*ast.Identifier).Name}
			call.Callee = &ast.MemberExpression{
				Object:   u.preEvalExpression(call.Callee, additions),
				Property: &ast.Identifier{Name: "call"},
			}
			args = append([]ast.Expr{obj}, args...)
		} else {
			call.Callee = u.preEvalExpression(call.Callee, additions)
		}
	} else {
		nw := node.(*ast.NewExpression)
		nw.Callee = u.preEvalExpression(nw.Callee, additions)
	}

	for i := 0; i < modifiedIndex; i++ {
		args[i] = u.preEvalExpression(args[i], additions)
	}
	setArgs(args)
	*additions = append(*additions, argAdditions...)
	u.changed = true
	return node
}

func (u *Unsequence) handleConditional(n *ast.ConditionalExpression, additions *[]ast.Stmt) ast.Expr {
	if _, ok := n.Alternate.(*ast.ConditionalExpression); ok {
		result := u.storeInTemporary(nil, additions, false)
		*additions = append(*additions, conditionalToIf(n, result.Name))
		u.changed = true
		return result
	}

	var consAdditions, altAdditions []ast.Stmt
	cons := u.handleExpression(n.Consequent, &consAdditions)
	alt := u.handleExpression(n.Alternate, &altAdditions)
	if len(consAdditions) > 0 || len(altAdditions) > 0 {
		u.changed = true
		result := u.storeInTemporary(nil, additions, false)
		consAdditions = append(consAdditions, &ast.ExpressionStatement{
			Expression: &ast.AssignmentExpression{Operator: "=", Left: result, Right: cons},
		})
		altAdditions = append(altAdditions, &ast.ExpressionStatement{
			Expression: &ast.AssignmentExpression{Operator: "=", Left: result, Right: alt},
		})
		*additions = append(*additions, &ast.IfStatement{
			Test:       n.Test,
			Consequent: &ast.BlockStatement{Body: consAdditions},
			Alternate:  &ast.BlockStatement{Body: altAdditions},
		})
		return result
	}
	n.Test = u.handleExpression(n.Test, additions)
	return n
}

func (u *Unsequence) handleArray(n *ast.ArrayExpression, additions *[]ast.Stmt) ast.Expr {
	var elemAdditions []ast.Stmt
	modifiedIndex := -1
	for i := len(n.Elements) - 1; i >= 0; i-- {
		if n.Elements[i] == nil {
			continue
		}
		n.Elements[i] = u.handleExpression(n.Elements[i], &elemAdditions)
		if len(elemAdditions) > 0 {
			modifiedIndex = i
			break
		}
	}
	if modifiedIndex < 0 {
		return n
	}
	for i := 0; i < modifiedIndex; i++ {
		if n.Elements[i] == nil {
			continue
		}
		n.Elements[i] = u.preEvalExpression(n.Elements[i], additions)
	}
	*additions = append(*additions, elemAdditions...)
	u.changed = true
	return n
}

func (u *Unsequence) handleObject(n *ast.ObjectExpression, additions *[]ast.Stmt) ast.Expr {
	var propAdditions []ast.Stmt
	modifiedIndex := -1
	for i := len(n.Properties) - 1; i >= 0; i-- {
		n.Properties[i] = u.handleProperty(n.Properties[i], &propAdditions)
		if len(propAdditions) > 0 {
			modifiedIndex = i
			break
		}
	}
	if modifiedIndex < 0 {
		return n
	}
	for i := 0; i < modifiedIndex; i++ {
		n.Properties[i] = u.preEvalProperty(n.Properties[i], additions)
	}
	*additions = append(*additions, propAdditions...)
	u.changed = true
	return n
}

func (u *Unsequence) handleProperty(n *ast.Property, additions *[]ast.Stmt) *ast.Property {
	if n.Shorthand {
		return n
	}
	var valueAdditions []ast.Stmt
	n.Value = u.handleExpression(n.Value, &valueAdditions)
	if len(valueAdditions) > 0 {
		if n.Computed {
			n.Key = u.preEvalPropertyKey(n.Key, additions)
		}
		*additions = append(*additions, valueAdditions...)
		u.changed = true
		return n
	}
	if n.Computed {
		n.Key = u.handleExpression(n.Key, additions)
	}
	return n
}

func (u *Unsequence) storeInTemporary(expr ast.Expr, additions *[]ast.Stmt, isConst bool) *ast.Identifier {
	ident := u.state.MakeID()
	kind := "let"
	if isConst {
		kind = "const"
	}
	*additions = append(*additions, &ast.VariableDeclaration{
		Kind:         kind,
		Declarations: []*ast.VariableDeclarator{{ID: ident, Init: expr}},
	})
	return ident
}

func (u *Unsequence) preEvalExpression(expr ast.Expr, additions *[]ast.Stmt) ast.Expr {
	expr = u.handleExpression(expr, additions)
	if IsNoOp(expr) {
		return expr
	}
	return u.storeInTemporary(expr, additions, false)
}

func (u *Unsequence) preEvalAssignmentLHS(lhs ast.Expr, additions *[]ast.Stmt) ast.Expr {
	if _, ok := lhs.(*ast.Identifier); ok {
		return lhs
	}
	member, ok := lhs.(*ast.MemberExpression)
	if !ok {
		u.fail("assignment left-hand side is %T, want Identifier or MemberExpression", lhs)
		return lhs
	}
	member.Object = u.preEvalExpression(member.Object, additions)
	if member.Computed {
		member.Property = u.preEvalExpression(member.Property, additions)
	}
	return member
}

// isAssignableLHS reports whether expr is a shape Unsequence is allowed to
// leave as an assignment target: a bare identifier or a (possibly computed)
// member access. Anything else is a structural violation (spec §7) - the
// obfuscated input isn't the kind of program these passes know how to
// rewrite.
func isAssignableLHS(expr ast.Expr) bool {
	switch expr.(type) {
	case *ast.Identifier, *ast.MemberExpression:
		return true
	default:
		return false
	}
}

// fail records a structural violation. It is sticky: once set, ProcessNode
// stops doing further rewrites so Run can unwind without corrupting more of
// the tree.
func (u *Unsequence) fail(format string, args ...any) {
	if u.err == nil {
		u.err = fmt.Errorf("%w: "+format, append([]any{ErrStructuralViolation}, args...)...)
	}
}

func (u *Unsequence) preEvalProperty(n *ast.Property, additions *[]ast.Stmt) *ast.Property {
	if n.Shorthand {
		return n
	}
	if n.Computed {
		n.Key = u.preEvalPropertyKey(n.Key, additions)
	}
	n.Value = u.preEvalExpression(n.Value, additions)
	return n
}

func (u *Unsequence) preEvalPropertyKey(n ast.Expr, additions *[]ast.Stmt) ast.Expr {
	if IsConst(n) {
		return n
	}
	return u.storeInTemporary(&ast.BinaryExpression{
		Operator: "+",
		Left:     &ast.Literal{Kind: ast.LiteralString, Raw: `""`, Value: ""},
		Right:    n,
	}, additions, false)
}

// conditionalToIf converts a ternary (whose alternate may itself be nested
// ternaries, i.e. an `a ? b : c ? d : e` chain) into an if/else-if/else
// statement chain that assigns its result into the identifier named dest.
func conditionalToIf(node *ast.ConditionalExpression, dest string) ast.Stmt {
	assign := func(value ast.Expr) ast.Stmt {
		return &ast.ExpressionStatement{Expression: &ast.AssignmentExpression{
			Operator: "=",
			Left:     &ast.Identifier{Name: dest},
			Right:    value,
		}}
	}
	var alternate ast.Stmt
	if nested, ok := node.Alternate.(*ast.ConditionalExpression); ok {
		alternate = conditionalToIf(nested, dest)
	} else {
		alternate = assign(node.Alternate)
	}
	return &ast.IfStatement{
		Test:       node.Test,
		Consequent: assign(node.Consequent),
		Alternate:  alternate,
	}
}
