package jsparse

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/ludo-technologies/jsopen/internal/ast"
)

// builder translates a single tree-sitter CST into an internal/ast tree,
// walking child fields by name and dispatching on each grammar node's type
// into the tagged-union node types internal/ast defines. Constructs with
// no dedicated internal/ast type (classes, imports/exports, JSX,
// TypeScript type annotations, decorators) fall through to
// ast.Unsupported, preserving their source text verbatim so codegen can
// still round-trip them.
type builder struct {
	source []byte
}

func (b *builder) pos(n *sitter.Node) ast.Position {
	return ast.Position{
		Start: ast.Pos{Byte: uint32(n.StartByte()), Row: uint32(n.StartPoint().Row) + 1, Column: uint32(n.StartPoint().Column)},
		End:   ast.Pos{Byte: uint32(n.EndByte()), Row: uint32(n.EndPoint().Row) + 1, Column: uint32(n.EndPoint().Column)},
	}
}

func (b *builder) text(n *sitter.Node) string {
	return n.Content(b.source)
}

func (b *builder) field(n *sitter.Node, name string) *sitter.Node {
	for i := 0; i < int(n.ChildCount()); i++ {
		if n.FieldNameForChild(i) == name {
			return n.Child(i)
		}
	}
	return nil
}

func (b *builder) isTrivia(n *sitter.Node) bool {
	switch n.Type() {
	case "comment", "line_comment", "block_comment", "":
		return true
	}
	return false
}

func (b *builder) unsupported(n *sitter.Node) *ast.Unsupported {
	return &ast.Unsupported{Position: b.pos(n), Kind: n.Type(), Text: b.text(n)}
}

func (b *builder) buildProgram(n *sitter.Node) *ast.Program {
	prog := &ast.Program{Position: b.pos(n)}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if b.isTrivia(child) {
			continue
		}
		if s := b.buildStmt(child); s != nil {
			prog.Body = append(prog.Body, s)
		}
	}
	return prog
}

// buildStmt dispatches on a statement-position grammar node.
func (b *builder) buildStmt(n *sitter.Node) ast.Stmt {
	switch n.Type() {
	case "statement_block":
		return b.buildBlock(n)
	case "expression_statement":
		return b.buildExpressionStatement(n)
	case "variable_declaration", "lexical_declaration":
		return b.buildVariableDeclaration(n)
	case "if_statement":
		return b.buildIf(n)
	case "for_statement":
		return b.buildFor(n)
	case "for_in_statement":
		return b.buildForInOrOf(n)
	case "while_statement":
		return b.buildWhile(n)
	case "do_statement":
		return b.buildDoWhile(n)
	case "return_statement":
		return b.buildReturn(n)
	case "break_statement":
		return b.buildBreakContinue(n, true)
	case "continue_statement":
		return b.buildBreakContinue(n, false)
	case "throw_statement":
		return b.buildThrow(n)
	case "try_statement":
		return b.buildTry(n)
	case "switch_statement":
		return b.buildSwitch(n)
	case "labeled_statement":
		return b.buildLabeled(n)
	case "function_declaration", "generator_function_declaration":
		return b.buildFunctionDeclaration(n)
	case "empty_statement", ";":
		return &ast.EmptyStatement{Position: b.pos(n)}
	case "debugger_statement":
		return &ast.DebuggerStatement{Position: b.pos(n)}
	}
	return b.unsupported(n)
}

func (b *builder) buildBlock(n *sitter.Node) *ast.BlockStatement {
	block := &ast.BlockStatement{Position: b.pos(n)}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if b.isTrivia(child) {
			continue
		}
		if s := b.buildStmt(child); s != nil {
			block.Body = append(block.Body, s)
		}
	}
	return block
}

func (b *builder) buildExpressionStatement(n *sitter.Node) ast.Stmt {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if b.isTrivia(child) {
			continue
		}
		return &ast.ExpressionStatement{Position: b.pos(n), Expression: b.buildExpr(child)}
	}
	return &ast.EmptyStatement{Position: b.pos(n)}
}

func (b *builder) buildVariableDeclaration(n *sitter.Node) *ast.VariableDeclaration {
	decl := &ast.VariableDeclaration{Position: b.pos(n), Kind: "var"}
	if n.Type() == "lexical_declaration" && n.ChildCount() > 0 {
		if kind := b.text(n.Child(0)); kind == "let" || kind == "const" {
			decl.Kind = kind
		}
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() != "variable_declarator" {
			continue
		}
		decl.Declarations = append(decl.Declarations, b.buildDeclarator(child))
	}
	return decl
}

func (b *builder) buildDeclarator(n *sitter.Node) *ast.VariableDeclarator {
	d := &ast.VariableDeclarator{Position: b.pos(n)}
	if name := b.field(n, "name"); name != nil {
		d.ID = b.buildPattern(name)
	}
	if value := b.field(n, "value"); value != nil {
		d.Init = b.buildExpr(value)
	}
	return d
}

func (b *builder) buildPattern(n *sitter.Node) ast.Pattern {
	if n.Type() == "identifier" {
		return &ast.Identifier{Position: b.pos(n), Name: b.text(n)}
	}
	return b.unsupported(n)
}

func (b *builder) buildIf(n *sitter.Node) ast.Stmt {
	stmt := &ast.IfStatement{Position: b.pos(n)}
	if test := b.field(n, "condition"); test != nil {
		// The grammar's condition node includes the if's own parens.
		if test.Type() == "parenthesized_expression" && test.NamedChildCount() > 0 {
			test = test.NamedChild(0)
		}
		stmt.Test = b.buildExpr(test)
	}
	if cons := b.field(n, "consequence"); cons != nil {
		stmt.Consequent = b.buildStmt(cons)
	}
	if alt := b.field(n, "alternative"); alt != nil {
		if alt.Type() == "else_clause" && alt.NamedChildCount() > 0 {
			alt = alt.NamedChild(0)
		}
		stmt.Alternate = b.buildStmt(alt)
	}
	return stmt
}

func (b *builder) buildFor(n *sitter.Node) ast.Stmt {
	stmt := &ast.ForStatement{Position: b.pos(n)}
	if init := b.field(n, "initializer"); init != nil {
		if init.Type() == "variable_declaration" || init.Type() == "lexical_declaration" {
			stmt.Init = b.buildVariableDeclaration(init)
		} else {
			stmt.Init = b.buildExpr(init)
		}
	}
	if test := b.field(n, "condition"); test != nil {
		stmt.Test = b.buildExpr(test)
	}
	if upd := b.field(n, "increment"); upd != nil {
		stmt.Update = b.buildExpr(upd)
	}
	if body := b.field(n, "body"); body != nil {
		stmt.Body = b.buildStmt(body)
	}
	return stmt
}

// buildForInOrOf handles tree-sitter's unified for_in_statement grammar
// node, which covers both `for (x in y)` and `for (x of y)`; the "of"/"in"
// keyword child distinguishes them.
func (b *builder) buildForInOrOf(n *sitter.Node) ast.Stmt {
	isOf := false
	for i := 0; i < int(n.ChildCount()); i++ {
		if b.text(n.Child(i)) == "of" {
			isOf = true
			break
		}
	}

	var left ast.Node
	if l := b.field(n, "left"); l != nil {
		if l.Type() == "variable_declaration" || l.Type() == "lexical_declaration" {
			left = b.buildVariableDeclaration(l)
		} else {
			left = b.buildExpr(l)
		}
	}
	var right ast.Expr
	if r := b.field(n, "right"); r != nil {
		right = b.buildExpr(r)
	}
	var body ast.Stmt
	if bd := b.field(n, "body"); bd != nil {
		body = b.buildStmt(bd)
	}

	if isOf {
		return &ast.ForOfStatement{Position: b.pos(n), Left: left, Right: right, Body: body}
	}
	return &ast.ForInStatement{Position: b.pos(n), Left: left, Right: right, Body: body}
}

func (b *builder) buildWhile(n *sitter.Node) ast.Stmt {
	stmt := &ast.WhileStatement{Position: b.pos(n)}
	if test := b.field(n, "condition"); test != nil {
		stmt.Test = b.buildExpr(test)
	}
	if body := b.field(n, "body"); body != nil {
		stmt.Body = b.buildStmt(body)
	}
	return stmt
}

func (b *builder) buildDoWhile(n *sitter.Node) ast.Stmt {
	stmt := &ast.DoWhileStatement{Position: b.pos(n)}
	if body := b.field(n, "body"); body != nil {
		stmt.Body = b.buildStmt(body)
	}
	if test := b.field(n, "condition"); test != nil {
		stmt.Test = b.buildExpr(test)
	}
	return stmt
}

func (b *builder) buildReturn(n *sitter.Node) ast.Stmt {
	stmt := &ast.ReturnStatement{Position: b.pos(n)}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		stmt.Argument = b.buildExpr(n.NamedChild(i))
		break
	}
	return stmt
}

func (b *builder) buildBreakContinue(n *sitter.Node, isBreak bool) ast.Stmt {
	var label *ast.Identifier
	if n.NamedChildCount() > 0 {
		if child := n.NamedChild(0); child.Type() == "identifier" || child.Type() == "statement_identifier" {
			label = &ast.Identifier{Position: b.pos(child), Name: b.text(child)}
		}
	}
	if isBreak {
		return &ast.BreakStatement{Position: b.pos(n), Label: label}
	}
	return &ast.ContinueStatement{Position: b.pos(n), Label: label}
}

func (b *builder) buildThrow(n *sitter.Node) ast.Stmt {
	stmt := &ast.ThrowStatement{Position: b.pos(n)}
	if n.NamedChildCount() > 0 {
		stmt.Argument = b.buildExpr(n.NamedChild(0))
	}
	return stmt
}

func (b *builder) buildTry(n *sitter.Node) ast.Stmt {
	stmt := &ast.TryStatement{Position: b.pos(n)}
	if body := b.field(n, "body"); body != nil {
		stmt.Block = b.buildBlock(body)
	}
	if handler := b.field(n, "handler"); handler != nil {
		if param := b.field(handler, "parameter"); param != nil {
			stmt.Param = b.buildPattern(param)
		}
		if hbody := b.field(handler, "body"); hbody != nil {
			stmt.Handler = b.buildBlock(hbody)
		}
	}
	if fin := b.field(n, "finalizer"); fin != nil {
		if fbody := b.field(fin, "body"); fbody != nil {
			stmt.Finalizer = b.buildBlock(fbody)
		} else {
			stmt.Finalizer = b.buildBlock(fin)
		}
	}
	return stmt
}

func (b *builder) buildSwitch(n *sitter.Node) ast.Stmt {
	stmt := &ast.SwitchStatement{Position: b.pos(n)}
	if disc := b.field(n, "value"); disc != nil {
		stmt.Discriminant = b.buildExpr(disc)
	}
	body := b.field(n, "body")
	if body == nil {
		return stmt
	}
	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(i)
		switch child.Type() {
		case "switch_case":
			stmt.Cases = append(stmt.Cases, b.buildSwitchCase(child, true))
		case "switch_default":
			stmt.Cases = append(stmt.Cases, b.buildSwitchCase(child, false))
		}
	}
	return stmt
}

func (b *builder) buildSwitchCase(n *sitter.Node, hasTest bool) *ast.SwitchCase {
	sc := &ast.SwitchCase{Position: b.pos(n)}
	var testNode *sitter.Node
	if hasTest {
		if value := b.field(n, "value"); value != nil {
			sc.Test = b.buildExpr(value)
			testNode = value
		}
	}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child == testNode {
			continue
		}
		if !isStatementGrammarType(child.Type()) {
			continue
		}
		if stmt := b.buildStmt(child); stmt != nil {
			sc.Consequent = append(sc.Consequent, stmt)
		}
	}
	return sc
}

// isStatementGrammarType reports whether typeName names one of the
// statement-position grammar nodes buildStmt recognizes, used by
// buildSwitchCase to skip re-adding the already-consumed "value" (test)
// child as a bogus Unsupported statement.
func isStatementGrammarType(typeName string) bool {
	switch typeName {
	case "statement_block", "expression_statement", "variable_declaration", "lexical_declaration",
		"if_statement", "for_statement", "for_in_statement", "while_statement", "do_statement",
		"return_statement", "break_statement", "continue_statement", "throw_statement",
		"try_statement", "switch_statement", "labeled_statement", "function_declaration",
		"generator_function_declaration", "empty_statement", "debugger_statement":
		return true
	}
	return false
}

func (b *builder) buildLabeled(n *sitter.Node) ast.Stmt {
	stmt := &ast.LabeledStatement{Position: b.pos(n)}
	if label := b.field(n, "label"); label != nil {
		stmt.Label = &ast.Identifier{Position: b.pos(label), Name: b.text(label)}
	}
	if body := b.field(n, "body"); body != nil {
		stmt.Body = b.buildStmt(body)
	}
	return stmt
}

func (b *builder) buildFunctionDeclaration(n *sitter.Node) ast.Stmt {
	fn := &ast.FunctionDeclaration{Position: b.pos(n)}
	if name := b.field(n, "name"); name != nil {
		fn.ID = &ast.Identifier{Position: b.pos(name), Name: b.text(name)}
	}
	if params := b.field(n, "parameters"); params != nil {
		fn.Params = b.buildParams(params)
	}
	if body := b.field(n, "body"); body != nil {
		fn.Body = b.buildBlock(body)
	}
	fn.Generator = n.Type() == "generator_function_declaration"
	for i := 0; i < int(n.ChildCount()); i++ {
		if b.text(n.Child(i)) == "async" {
			fn.Async = true
			break
		}
	}
	return fn
}

func (b *builder) buildParams(n *sitter.Node) []ast.Pattern {
	var params []ast.Pattern
	for i := 0; i < int(n.NamedChildCount()); i++ {
		params = append(params, b.buildPattern(n.NamedChild(i)))
	}
	return params
}

// buildExpr dispatches on an expression-position grammar node.
func (b *builder) buildExpr(n *sitter.Node) ast.Expr {
	switch n.Type() {
	case "identifier", "property_identifier", "shorthand_property_identifier":
		return &ast.Identifier{Position: b.pos(n), Name: b.text(n)}
	case "this":
		return &ast.ThisExpression{Position: b.pos(n)}
	case "string", "number", "true", "false", "null", "regex":
		return b.buildLiteral(n)
	case "template_string":
		return b.buildTemplateLiteral(n)
	case "array":
		return b.buildArray(n)
	case "object":
		return b.buildObject(n)
	case "function", "function_expression", "generator_function":
		return b.buildFunctionExpression(n)
	case "arrow_function":
		return b.buildArrowFunction(n)
	case "unary_expression":
		return b.buildUnary(n)
	case "update_expression":
		return b.buildUpdate(n)
	case "binary_expression":
		return b.buildBinary(n)
	case "assignment_expression", "augmented_assignment_expression":
		return b.buildAssignment(n)
	case "ternary_expression":
		return b.buildConditional(n)
	case "sequence_expression":
		return b.buildSequence(n)
	case "call_expression":
		return b.buildCall(n)
	case "new_expression":
		return b.buildNew(n)
	case "member_expression":
		return b.buildMember(n, false)
	case "subscript_expression":
		return b.buildMember(n, true)
	case "parenthesized_expression":
		if n.NamedChildCount() > 0 {
			return &ast.ParenthesizedExpression{Position: b.pos(n), Expression: b.buildExpr(n.NamedChild(0))}
		}
	case "spread_element":
		if n.NamedChildCount() > 0 {
			return &ast.SpreadElement{Position: b.pos(n), Argument: b.buildExpr(n.NamedChild(0))}
		}
	}
	return b.unsupported(n)
}

func (b *builder) buildLiteral(n *sitter.Node) ast.Expr {
	lit := &ast.Literal{Position: b.pos(n), Raw: b.text(n)}
	switch n.Type() {
	case "string":
		lit.Kind = ast.LiteralString
	case "number":
		lit.Kind = ast.LiteralNumber
	case "true":
		lit.Kind, lit.Value = ast.LiteralBoolean, "true"
	case "false":
		lit.Kind, lit.Value = ast.LiteralBoolean, "false"
	case "null":
		lit.Kind = ast.LiteralNull
	case "regex":
		lit.Kind = ast.LiteralRegExp
	}
	return lit
}

func (b *builder) buildTemplateLiteral(n *sitter.Node) ast.Expr {
	tl := &ast.TemplateLiteral{Position: b.pos(n)}
	quasi := ""
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		switch child.Type() {
		case "template_substitution":
			tl.Quasis = append(tl.Quasis, quasi)
			quasi = ""
			if child.NamedChildCount() > 0 {
				tl.Expressions = append(tl.Expressions, b.buildExpr(child.NamedChild(0)))
			}
		case "`":
			// delimiter, skip
		default:
			quasi += b.text(child)
		}
	}
	tl.Quasis = append(tl.Quasis, quasi)
	return tl
}

func (b *builder) buildArray(n *sitter.Node) ast.Expr {
	arr := &ast.ArrayExpression{Position: b.pos(n)}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		arr.Elements = append(arr.Elements, b.buildExpr(n.NamedChild(i)))
	}
	return arr
}

func (b *builder) buildObject(n *sitter.Node) ast.Expr {
	obj := &ast.ObjectExpression{Position: b.pos(n)}
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		switch child.Type() {
		case "pair":
			obj.Properties = append(obj.Properties, b.buildPairProperty(child))
		case "shorthand_property_identifier":
			ident := &ast.Identifier{Position: b.pos(child), Name: b.text(child)}
			obj.Properties = append(obj.Properties, &ast.Property{
				Position: b.pos(child), Key: ident, Value: ident, Shorthand: true, Kind: "init",
			})
		case "spread_element":
			if child.NamedChildCount() > 0 {
				obj.Properties = append(obj.Properties, &ast.Property{
					Position: b.pos(child),
					Value:    &ast.SpreadElement{Position: b.pos(child), Argument: b.buildExpr(child.NamedChild(0))},
					Kind:     "spread",
				})
			}
		case "method_definition":
			obj.Properties = append(obj.Properties, b.buildMethodProperty(child))
		}
	}
	return obj
}

func (b *builder) buildPairProperty(n *sitter.Node) *ast.Property {
	prop := &ast.Property{Position: b.pos(n), Kind: "init"}
	key := b.field(n, "key")
	if key != nil {
		prop.Computed = key.Type() == "computed_property_name"
		if prop.Computed && key.NamedChildCount() > 0 {
			prop.Key = b.buildExpr(key.NamedChild(0))
		} else if key.Type() == "string" || key.Type() == "number" {
			prop.Key = b.buildLiteral(key)
		} else {
			prop.Key = &ast.Identifier{Position: b.pos(key), Name: b.text(key)}
		}
	}
	if value := b.field(n, "value"); value != nil {
		prop.Value = b.buildExpr(value)
	}
	return prop
}

func (b *builder) buildMethodProperty(n *sitter.Node) *ast.Property {
	fn := &ast.FunctionExpression{Position: b.pos(n)}
	if params := b.field(n, "parameters"); params != nil {
		fn.Params = b.buildParams(params)
	}
	if body := b.field(n, "body"); body != nil {
		fn.Body = b.buildBlock(body)
	}
	prop := &ast.Property{Position: b.pos(n), Value: fn, Kind: "init"}
	if name := b.field(n, "name"); name != nil {
		prop.Key = &ast.Identifier{Position: b.pos(name), Name: b.text(name)}
	}
	return prop
}

func (b *builder) buildFunctionExpression(n *sitter.Node) ast.Expr {
	fn := &ast.FunctionExpression{Position: b.pos(n), Generator: n.Type() == "generator_function"}
	if name := b.field(n, "name"); name != nil {
		fn.ID = &ast.Identifier{Position: b.pos(name), Name: b.text(name)}
	}
	if params := b.field(n, "parameters"); params != nil {
		fn.Params = b.buildParams(params)
	}
	if body := b.field(n, "body"); body != nil {
		fn.Body = b.buildBlock(body)
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if b.text(n.Child(i)) == "async" {
			fn.Async = true
			break
		}
	}
	return fn
}

func (b *builder) buildArrowFunction(n *sitter.Node) ast.Expr {
	fn := &ast.FunctionExpression{Position: b.pos(n), IsArrow: true}
	if param := b.field(n, "parameter"); param != nil {
		fn.Params = []ast.Pattern{b.buildPattern(param)}
	} else if params := b.field(n, "parameters"); params != nil {
		fn.Params = b.buildParams(params)
	}
	if body := b.field(n, "body"); body != nil {
		if body.Type() == "statement_block" {
			fn.Body = b.buildBlock(body)
		} else {
			fn.Body = b.buildExpr(body)
		}
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if b.text(n.Child(i)) == "async" {
			fn.Async = true
			break
		}
	}
	return fn
}

func (b *builder) buildUnary(n *sitter.Node) ast.Expr {
	u := &ast.UnaryExpression{Position: b.pos(n), Prefix: true}
	if op := b.field(n, "operator"); op != nil {
		u.Operator = b.text(op)
	}
	if arg := b.field(n, "argument"); arg != nil {
		u.Argument = b.buildExpr(arg)
	}
	return u
}

func (b *builder) buildUpdate(n *sitter.Node) ast.Expr {
	u := &ast.UpdateExpression{Position: b.pos(n)}
	if op := b.field(n, "operator"); op != nil {
		u.Operator = b.text(op)
	}
	if arg := b.field(n, "argument"); arg != nil {
		u.Argument = b.buildExpr(arg)
	}
	u.Prefix = n.ChildCount() > 0 && n.Child(0) != nil && b.text(n.Child(0)) == u.Operator
	return u
}

var logicalOperators = map[string]bool{"&&": true, "||": true, "??": true}

func (b *builder) buildBinary(n *sitter.Node) ast.Expr {
	pos := b.pos(n)
	var left, right ast.Expr
	var op string
	if l := b.field(n, "left"); l != nil {
		left = b.buildExpr(l)
	}
	if r := b.field(n, "right"); r != nil {
		right = b.buildExpr(r)
	}
	if o := b.field(n, "operator"); o != nil {
		op = b.text(o)
	} else {
		for i := 0; i < int(n.ChildCount()); i++ {
			op = b.text(n.Child(i))
			if op != "" && left != nil && right != nil {
				break
			}
		}
	}
	if logicalOperators[op] {
		return &ast.LogicalExpression{Position: pos, Operator: op, Left: left, Right: right}
	}
	return &ast.BinaryExpression{Position: pos, Operator: op, Left: left, Right: right}
}

func (b *builder) buildAssignment(n *sitter.Node) ast.Expr {
	a := &ast.AssignmentExpression{Position: b.pos(n), Operator: "="}
	if l := b.field(n, "left"); l != nil {
		a.Left = b.buildExpr(l)
	}
	if r := b.field(n, "right"); r != nil {
		a.Right = b.buildExpr(r)
	}
	if o := b.field(n, "operator"); o != nil {
		a.Operator = b.text(o)
	}
	return a
}

func (b *builder) buildConditional(n *sitter.Node) ast.Expr {
	c := &ast.ConditionalExpression{Position: b.pos(n)}
	if test := b.field(n, "condition"); test != nil {
		c.Test = b.buildExpr(test)
	}
	if cons := b.field(n, "consequence"); cons != nil {
		c.Consequent = b.buildExpr(cons)
	}
	if alt := b.field(n, "alternative"); alt != nil {
		c.Alternate = b.buildExpr(alt)
	}
	return c
}

// buildSequence flattens a chain of tree-sitter's left-associative nested
// sequence_expression nodes into a single SequenceExpression, grounded on
// horusec-engine's parseSequenceExpr recursive-flattening idiom.
func (b *builder) buildSequence(n *sitter.Node) ast.Expr {
	return &ast.SequenceExpression{Position: b.pos(n), Expressions: b.flattenSequence(n)}
}

func (b *builder) flattenSequence(n *sitter.Node) []ast.Expr {
	left := b.field(n, "left")
	right := b.field(n, "right")

	var exprs []ast.Expr
	if left != nil {
		if left.Type() == "sequence_expression" {
			exprs = append(exprs, b.flattenSequence(left)...)
		} else {
			exprs = append(exprs, b.buildExpr(left))
		}
	}
	if right != nil {
		if right.Type() == "sequence_expression" {
			exprs = append(exprs, b.flattenSequence(right)...)
		} else {
			exprs = append(exprs, b.buildExpr(right))
		}
	}
	return exprs
}

func (b *builder) buildCall(n *sitter.Node) ast.Expr {
	call := &ast.CallExpression{Position: b.pos(n)}
	if fn := b.field(n, "function"); fn != nil {
		call.Callee = b.buildExpr(fn)
	}
	if args := b.field(n, "arguments"); args != nil {
		for i := 0; i < int(args.NamedChildCount()); i++ {
			call.Args = append(call.Args, b.buildExpr(args.NamedChild(i)))
		}
	}
	return call
}

func (b *builder) buildNew(n *sitter.Node) ast.Expr {
	nw := &ast.NewExpression{Position: b.pos(n)}
	if fn := b.field(n, "constructor"); fn != nil {
		nw.Callee = b.buildExpr(fn)
	}
	if args := b.field(n, "arguments"); args != nil {
		for i := 0; i < int(args.NamedChildCount()); i++ {
			nw.Args = append(nw.Args, b.buildExpr(args.NamedChild(i)))
		}
	}
	return nw
}

func (b *builder) buildMember(n *sitter.Node, computed bool) ast.Expr {
	m := &ast.MemberExpression{Position: b.pos(n), Computed: computed}
	if obj := b.field(n, "object"); obj != nil {
		m.Object = b.buildExpr(obj)
	}
	if computed {
		if prop := b.field(n, "index"); prop != nil {
			m.Property = b.buildExpr(prop)
		}
	} else if prop := b.field(n, "property"); prop != nil {
		m.Property = &ast.Identifier{Position: b.pos(prop), Name: b.text(prop)}
	}
	return m
}
