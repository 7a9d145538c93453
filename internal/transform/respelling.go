package transform

import (
	"strconv"
	"strings"

	"github.com/ludo-technologies/jsopen/internal/ast"
)

// Respelling rewrites obfuscator-favored literal spellings into their plain
// equivalents: `void 0` becomes `undefined`, and `!<int>` becomes `true` or
// `false` by the int's truthiness (`!0` is `true`, `!<any other int>` is
// `false`). It only rewrites an immediate child's shape; Run handles the
// actual tree descent.
type Respelling struct{}

// NewRespelling constructs a Respelling pass. It carries no state.
func NewRespelling() *Respelling { return &Respelling{} }

// ProcessNode rewrites node's immediate children in place wherever they
// match one of the recognized spellings.
func (r *Respelling) ProcessNode(node ast.Node) {
	RewriteExprChildren(node, r.handleChild)
}

// handleChild returns the respelled form of node if it matches one of the
// recognized obfuscator idioms, otherwise node unchanged.
func (r *Respelling) handleChild(node ast.Expr) ast.Expr {
	u, ok := node.(*ast.UnaryExpression)
	if !ok {
		return node
	}
	lit, isLit := u.Argument.(*ast.Literal)
	if !isLit {
		return node
	}

	if u.Operator == "void" {
		return &ast.Identifier{Position: node.Pos(), Name: "undefined"}
	}

	if u.Operator == "!" && lit.Kind == ast.LiteralNumber && !strings.ContainsAny(lit.Raw, ".eE") {
		if zero, ok := intLiteralIsZero(lit.Raw); ok {
			raw := "false"
			if zero {
				raw = "true"
			}
			return &ast.Literal{Position: node.Pos(), Kind: ast.LiteralBoolean, Raw: raw, Value: raw}
		}
	}
	return node
}

// intLiteralIsZero reports whether raw, a non-float numeric literal's raw
// source text (decimal, `0x` hex, `0o`/legacy `0`-prefixed octal, or `0b`
// binary, with optional `_` digit separators), denotes the value zero. ok is
// false if raw can't be parsed as an integer, e.g. it carries a BigInt `n`
// suffix.
func intLiteralIsZero(raw string) (zero bool, ok bool) {
	clean := strings.ReplaceAll(raw, "_", "")
	if n, err := strconv.ParseInt(clean, 0, 64); err == nil {
		return n == 0, true
	}
	if n, err := strconv.ParseUint(clean, 0, 64); err == nil {
		return n == 0, true
	}
	return false, false
}
