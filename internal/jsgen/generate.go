// Package jsgen renders internal/ast trees back to JavaScript source text.
// It is a plain recursive-descent printer built on the standard library:
// no code generator for any language appears anywhere in the example
// corpus, so this package has no teacher to ground against (see DESIGN.md).
package jsgen

import (
	"fmt"
	"strings"

	"github.com/ludo-technologies/jsopen/internal/ast"
)

// Generate renders node as JavaScript source text. It is a readable-output
// pretty-printer, not a diff-minimizing one: original formatting, comments,
// and whitespace are not preserved.
func Generate(node ast.Node) string {
	g := &generator{}
	g.writeNode(node)
	return g.sb.String()
}

type generator struct {
	sb     strings.Builder
	indent int
}

func (g *generator) writeIndent() {
	g.sb.WriteString(strings.Repeat("  ", g.indent))
}

func (g *generator) writeNode(node ast.Node) {
	switch n := node.(type) {
	case *ast.Program:
		for _, s := range n.Body {
			g.writeStmt(s)
		}
	default:
		if expr, ok := node.(ast.Expr); ok {
			g.writeExpr(expr)
			return
		}
		if stmt, ok := node.(ast.Stmt); ok {
			g.writeStmt(stmt)
			return
		}
		g.sb.WriteString(fmt.Sprintf("/* unsupported node %T */", node))
	}
}

// writeBlock writes a brace-delimited block ending in "}" with no trailing
// newline, so callers (if/else, try/catch/finally) control their own
// line breaks.
func (g *generator) writeBlock(block *ast.BlockStatement) {
	g.sb.WriteString("{\n")
	g.indent++
	for _, s := range block.Body {
		g.writeIndent()
		g.writeStmt(s)
	}
	g.indent--
	g.writeIndent()
	g.sb.WriteString("}")
}

// writeStmt writes stmt followed by a trailing newline; loop and if bodies
// go through writeStmtBody, which places a non-block body on its own
// indented line.
func (g *generator) writeStmt(stmt ast.Stmt) {
	switch n := stmt.(type) {
	case *ast.BlockStatement:
		g.writeBlock(n)
		g.sb.WriteString("\n")
	case *ast.ExpressionStatement:
		g.writeExpr(n.Expression)
		g.sb.WriteString(";\n")
	case *ast.VariableDeclaration:
		g.writeVarDecl(n)
		g.sb.WriteString(";\n")
	case *ast.IfStatement:
		g.writeIf(n)
	case *ast.ForStatement:
		g.sb.WriteString("for (")
		switch init := n.Init.(type) {
		case *ast.VariableDeclaration:
			g.writeVarDecl(init)
		case ast.Expr:
			g.writeExpr(init)
		}
		g.sb.WriteString("; ")
		if n.Test != nil {
			g.writeExpr(n.Test)
		}
		g.sb.WriteString("; ")
		if n.Update != nil {
			g.writeExpr(n.Update)
		}
		g.sb.WriteString(") ")
		g.writeStmtBody(n.Body)
	case *ast.ForInStatement:
		g.sb.WriteString("for (")
		g.writeForLeft(n.Left)
		g.sb.WriteString(" in ")
		g.writeExpr(n.Right)
		g.sb.WriteString(") ")
		g.writeStmtBody(n.Body)
	case *ast.ForOfStatement:
		g.sb.WriteString("for (")
		g.writeForLeft(n.Left)
		g.sb.WriteString(" of ")
		g.writeExpr(n.Right)
		g.sb.WriteString(") ")
		g.writeStmtBody(n.Body)
	case *ast.WhileStatement:
		g.sb.WriteString("while (")
		g.writeExpr(n.Test)
		g.sb.WriteString(") ")
		g.writeStmtBody(n.Body)
	case *ast.DoWhileStatement:
		g.sb.WriteString("do ")
		if block, ok := n.Body.(*ast.BlockStatement); ok {
			g.writeBlock(block)
			g.sb.WriteString(" ")
		} else {
			g.writeStmtBody(n.Body)
			g.writeIndent()
		}
		g.sb.WriteString("while (")
		g.writeExpr(n.Test)
		g.sb.WriteString(");\n")
	case *ast.ReturnStatement:
		g.sb.WriteString("return")
		if n.Argument != nil {
			g.sb.WriteString(" ")
			g.writeExpr(n.Argument)
		}
		g.sb.WriteString(";\n")
	case *ast.BreakStatement:
		g.sb.WriteString("break")
		if n.Label != nil {
			g.sb.WriteString(" " + n.Label.Name)
		}
		g.sb.WriteString(";\n")
	case *ast.ContinueStatement:
		g.sb.WriteString("continue")
		if n.Label != nil {
			g.sb.WriteString(" " + n.Label.Name)
		}
		g.sb.WriteString(";\n")
	case *ast.ThrowStatement:
		g.sb.WriteString("throw ")
		g.writeExpr(n.Argument)
		g.sb.WriteString(";\n")
	case *ast.TryStatement:
		g.sb.WriteString("try ")
		g.writeBlock(n.Block)
		g.sb.WriteString(" ")
		if n.Handler != nil {
			g.sb.WriteString("catch ")
			if n.Param != nil {
				g.sb.WriteString("(" + patternText(n.Param) + ") ")
			}
			g.writeBlock(n.Handler)
			g.sb.WriteString(" ")
		}
		if n.Finalizer != nil {
			g.sb.WriteString("finally ")
			g.writeBlock(n.Finalizer)
			g.sb.WriteString(" ")
		}
		out := strings.TrimRight(g.sb.String(), " ")
		g.sb.Reset()
		g.sb.WriteString(out)
		g.sb.WriteString("\n")
	case *ast.SwitchStatement:
		g.sb.WriteString("switch (")
		g.writeExpr(n.Discriminant)
		g.sb.WriteString(") {\n")
		g.indent++
		for _, c := range n.Cases {
			g.writeIndent()
			if c.Test != nil {
				g.sb.WriteString("case ")
				g.writeExpr(c.Test)
				g.sb.WriteString(":\n")
			} else {
				g.sb.WriteString("default:\n")
			}
			g.indent++
			for _, s := range c.Consequent {
				g.writeIndent()
				g.writeStmt(s)
			}
			g.indent--
		}
		g.indent--
		g.writeIndent()
		g.sb.WriteString("}\n")
	case *ast.LabeledStatement:
		g.sb.WriteString(n.Label.Name + ": ")
		g.writeStmt(n.Body)
	case *ast.FunctionDeclaration:
		g.writeFunctionHeader(n.ID, n.Params, n.Generator, n.Async)
		g.sb.WriteString(" ")
		g.writeBlock(n.Body)
		g.sb.WriteString("\n")
	case *ast.EmptyStatement:
		g.sb.WriteString(";\n")
	case *ast.DebuggerStatement:
		g.sb.WriteString("debugger;\n")
	case *ast.Unsupported:
		g.sb.WriteString(n.Text)
		g.sb.WriteString("\n")
	default:
		g.sb.WriteString(fmt.Sprintf("/* unsupported statement %T */\n", stmt))
	}
}

// writeStmtBody writes a loop/if body and always ends with a newline. A
// block is written on the current line; any other statement goes on the
// next line, indented one level, without adding braces.
func (g *generator) writeStmtBody(stmt ast.Stmt) {
	if block, ok := stmt.(*ast.BlockStatement); ok {
		g.writeBlock(block)
		g.sb.WriteString("\n")
		return
	}
	g.sb.WriteString("\n")
	g.indent++
	g.writeIndent()
	g.writeStmt(stmt)
	g.indent--
}

func (g *generator) writeForLeft(left ast.Node) {
	switch l := left.(type) {
	case *ast.VariableDeclaration:
		g.writeVarDeclHeader(l)
	case ast.Expr:
		g.writeExpr(l)
	}
}

func (g *generator) writeIf(n *ast.IfStatement) {
	g.sb.WriteString("if (")
	g.writeExpr(n.Test)
	g.sb.WriteString(") ")
	consequentIsBlock := false
	if block, ok := n.Consequent.(*ast.BlockStatement); ok {
		consequentIsBlock = true
		g.writeBlock(block)
	} else {
		g.writeStmtBody(n.Consequent)
	}

	if n.Alternate == nil {
		if consequentIsBlock {
			g.sb.WriteString("\n")
		}
		return
	}

	if consequentIsBlock {
		g.sb.WriteString(" ")
	} else {
		g.writeIndent()
	}
	g.sb.WriteString("else ")
	if elseIf, ok := n.Alternate.(*ast.IfStatement); ok {
		g.writeIf(elseIf)
		return
	}
	g.writeStmtBody(n.Alternate)
}

func (g *generator) writeVarDeclHeader(decl *ast.VariableDeclaration) {
	g.sb.WriteString(decl.Kind + " ")
	for i, d := range decl.Declarations {
		if i > 0 {
			g.sb.WriteString(", ")
		}
		g.sb.WriteString(patternText(d.ID))
		if d.Init != nil {
			g.sb.WriteString(" = ")
			g.writeExpr(d.Init)
		}
	}
}

func (g *generator) writeVarDecl(decl *ast.VariableDeclaration) {
	g.writeVarDeclHeader(decl)
}

func patternText(p ast.Pattern) string {
	if id, ok := p.(*ast.Identifier); ok {
		return id.Name
	}
	if u, ok := p.(*ast.Unsupported); ok {
		return u.Text
	}
	return "_"
}

func (g *generator) writeFunctionHeader(id *ast.Identifier, params []ast.Pattern, generator, async bool) {
	if async {
		g.sb.WriteString("async ")
	}
	g.sb.WriteString("function")
	if generator {
		g.sb.WriteString("*")
	}
	if id != nil {
		g.sb.WriteString(" " + id.Name)
	}
	g.sb.WriteString("(")
	for i, p := range params {
		if i > 0 {
			g.sb.WriteString(", ")
		}
		g.sb.WriteString(patternText(p))
	}
	g.sb.WriteString(")")
}

var precedence = map[string]int{
	",": 1,
	"=": 2, "+=": 2, "-=": 2, "*=": 2, "/=": 2, "%=": 2,
	"?:": 3,
	"??": 4, "||": 5, "&&": 6,
	"|": 7, "^": 8, "&": 9,
	"==": 10, "!=": 10, "===": 10, "!==": 10,
	"<": 11, ">": 11, "<=": 11, ">=": 11, "in": 11, "instanceof": 11,
	"<<": 12, ">>": 12, ">>>": 12,
	"+": 13, "-": 13,
	"*": 14, "/": 14, "%": 14,
	"unary": 15,
	"**":    16,
	"call":  18,
}

func (g *generator) writeExpr(expr ast.Expr) {
	if expr == nil {
		return
	}
	switch n := expr.(type) {
	case *ast.Identifier:
		g.sb.WriteString(n.Name)
	case *ast.Literal:
		g.sb.WriteString(n.Raw)
	case *ast.ThisExpression:
		g.sb.WriteString("this")
	case *ast.TemplateLiteral:
		g.sb.WriteString("`")
		for i, q := range n.Quasis {
			g.sb.WriteString(q)
			if i < len(n.Expressions) {
				g.sb.WriteString("${")
				g.writeExpr(n.Expressions[i])
				g.sb.WriteString("}")
			}
		}
		g.sb.WriteString("`")
	case *ast.ArrayExpression:
		g.sb.WriteString("[")
		for i, e := range n.Elements {
			if i > 0 {
				g.sb.WriteString(", ")
			}
			if e != nil {
				g.writeExpr(e)
			}
		}
		g.sb.WriteString("]")
	case *ast.ObjectExpression:
		g.sb.WriteString("{")
		for i, p := range n.Properties {
			if i > 0 {
				g.sb.WriteString(", ")
			}
			g.writeProperty(p)
		}
		g.sb.WriteString("}")
	case *ast.SpreadElement:
		g.sb.WriteString("...")
		g.writeExpr(n.Argument)
	case *ast.FunctionExpression:
		g.writeFunctionExpr(n)
	case *ast.UnaryExpression:
		if n.Prefix {
			g.sb.WriteString(n.Operator)
			if isWordOperator(n.Operator) {
				g.sb.WriteString(" ")
			}
			g.writeSub(n.Argument, "unary")
		} else {
			g.writeSub(n.Argument, "unary")
			g.sb.WriteString(n.Operator)
		}
	case *ast.UpdateExpression:
		if n.Prefix {
			g.sb.WriteString(n.Operator)
			g.writeExpr(n.Argument)
		} else {
			g.writeExpr(n.Argument)
			g.sb.WriteString(n.Operator)
		}
	case *ast.BinaryExpression:
		g.writeBinaryLike(n.Operator, n.Left, n.Right)
	case *ast.LogicalExpression:
		g.writeBinaryLike(n.Operator, n.Left, n.Right)
	case *ast.AssignmentExpression:
		g.writeExpr(n.Left)
		g.sb.WriteString(" " + n.Operator + " ")
		g.writeExpr(n.Right)
	case *ast.ConditionalExpression:
		g.writeSub(n.Test, "?:")
		g.sb.WriteString(" ? ")
		g.writeSub(n.Consequent, "?:")
		g.sb.WriteString(" : ")
		g.writeSub(n.Alternate, "?:")
	case *ast.SequenceExpression:
		for i, e := range n.Expressions {
			if i > 0 {
				g.sb.WriteString(", ")
			}
			g.writeExpr(e)
		}
	case *ast.CallExpression:
		g.writeSub(n.Callee, "call")
		if n.Optional {
			g.sb.WriteString("?.")
		}
		g.writeArgs(n.Args)
	case *ast.NewExpression:
		g.sb.WriteString("new ")
		g.writeSub(n.Callee, "call")
		g.writeArgs(n.Args)
	case *ast.MemberExpression:
		g.writeSub(n.Object, "call")
		if n.Computed {
			if n.Optional {
				g.sb.WriteString("?.")
			}
			g.sb.WriteString("[")
			g.writeExpr(n.Property)
			g.sb.WriteString("]")
		} else {
			if n.Optional {
				g.sb.WriteString("?.")
			} else {
				g.sb.WriteString(".")
			}
			g.writeExpr(n.Property)
		}
	case *ast.ParenthesizedExpression:
		g.sb.WriteString("(")
		g.writeExpr(n.Expression)
		g.sb.WriteString(")")
	case *ast.Unsupported:
		g.sb.WriteString(n.Text)
	default:
		g.sb.WriteString(fmt.Sprintf("/* unsupported expr %T */", expr))
	}
}

func isWordOperator(op string) bool {
	switch op {
	case "typeof", "void", "delete", "in", "instanceof":
		return true
	}
	return false
}

func (g *generator) writeArgs(args []ast.Expr) {
	g.sb.WriteString("(")
	for i, a := range args {
		if i > 0 {
			g.sb.WriteString(", ")
		}
		g.writeExpr(a)
	}
	g.sb.WriteString(")")
}

func (g *generator) writeProperty(p *ast.Property) {
	if p.Kind == "spread" {
		g.writeExpr(p.Value)
		return
	}
	if p.Shorthand {
		g.writeExpr(p.Value)
		return
	}
	if p.Computed {
		g.sb.WriteString("[")
		g.writeExpr(p.Key)
		g.sb.WriteString("]")
	} else {
		g.writeExpr(p.Key)
	}
	g.sb.WriteString(": ")
	g.writeExpr(p.Value)
}

func (g *generator) writeFunctionExpr(n *ast.FunctionExpression) {
	if n.IsArrow {
		if len(n.Params) == 1 {
			if _, ok := n.Params[0].(*ast.Identifier); ok {
				g.sb.WriteString(patternText(n.Params[0]))
			} else {
				g.writeParamList(n.Params)
			}
		} else {
			g.writeParamList(n.Params)
		}
		g.sb.WriteString(" => ")
		switch body := n.Body.(type) {
		case *ast.BlockStatement:
			g.writeBlock(body)
		case ast.Expr:
			g.writeExpr(body)
		}
		return
	}
	g.writeFunctionHeader(n.ID, n.Params, n.Generator, n.Async)
	g.sb.WriteString(" ")
	if body, ok := n.Body.(*ast.BlockStatement); ok {
		g.writeBlock(body)
	}
}

func (g *generator) writeParamList(params []ast.Pattern) {
	g.sb.WriteString("(")
	for i, p := range params {
		if i > 0 {
			g.sb.WriteString(", ")
		}
		g.sb.WriteString(patternText(p))
	}
	g.sb.WriteString(")")
}

// writeSub writes expr, parenthesizing it if its own precedence is lower
// than parentOp's (a conservative approximation: ties are not parenthesized,
// which is safe for every shape the transform passes actually produce).
func (g *generator) writeSub(expr ast.Expr, parentOp string) {
	if needsParens(expr, parentOp) {
		g.sb.WriteString("(")
		g.writeExpr(expr)
		g.sb.WriteString(")")
		return
	}
	g.writeExpr(expr)
}

func needsParens(expr ast.Expr, parentOp string) bool {
	childOp := exprOperator(expr)
	if childOp == "" {
		return false
	}
	return precedence[childOp] < precedence[parentOp]
}

func exprOperator(expr ast.Expr) string {
	switch n := expr.(type) {
	case *ast.BinaryExpression:
		return n.Operator
	case *ast.LogicalExpression:
		return n.Operator
	case *ast.AssignmentExpression:
		return "="
	case *ast.ConditionalExpression:
		return "?:"
	case *ast.SequenceExpression:
		return ","
	case *ast.UnaryExpression:
		return "unary"
	}
	return ""
}

func (g *generator) writeBinaryLike(operator string, left, right ast.Expr) {
	g.writeSub(left, operator)
	g.sb.WriteString(" " + operator + " ")
	g.writeSub(right, operator)
}
