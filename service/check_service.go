package service

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/ludo-technologies/jsopen/domain"
	"github.com/ludo-technologies/jsopen/internal/ast"
	"github.com/ludo-technologies/jsopen/internal/jsgen"
	"github.com/ludo-technologies/jsopen/internal/jsparse"
	"github.com/ludo-technologies/jsopen/internal/transform"
	"github.com/ludo-technologies/jsopen/internal/version"
)

// CheckService walks a transformed program's AST verifying the seven
// statically checkable invariants (2-7 and 9) a fully deobfuscated program
// must satisfy.
type CheckService struct{}

// NewCheckService creates a CheckService.
func NewCheckService() *CheckService {
	return &CheckService{}
}

// freshNamePattern matches a single fresh identifier, <prefix> followed by
// one or more digits. Built once against the run's configured prefix.
func freshNamePattern(prefix string) *regexp.Regexp {
	return regexp.MustCompile("^" + regexp.QuoteMeta(prefix) + `\d+$`)
}

// Check parses and transforms every path, then validates each result's
// output AST against the invariants and aggregates them into one
// domain.CheckResult.
func (s *CheckService) Check(paths []string, sources map[string][]byte, prefix string, passes domain.PassSelection) (*domain.CheckResult, error) {
	start := time.Now()

	result := &domain.CheckResult{Passed: true}
	namePattern := freshNamePattern(prefix)

	for _, path := range paths {
		source, ok := sources[path]
		if !ok {
			return nil, fmt.Errorf("check: no source loaded for %s", path)
		}

		program, err := jsparse.ParseForLanguage(path, source)
		if err != nil {
			return nil, fmt.Errorf("check: parse %s: %w", path, err)
		}

		opts := transform.Options{
			Prefix:             prefix,
			Unsequence:         passes.Unsequence,
			Respelling:         passes.Respelling,
			IfBraces:           passes.IfBraces,
			FlattenInvoked:     passes.FlattenInvoked,
			LabelFunctionArray: passes.LabelFunctionArray,
		}
		if err := transform.Run(program, opts); err != nil {
			return nil, fmt.Errorf("check: transform %s: %w", path, err)
		}

		violations := checkInvariants(path, program, namePattern)
		violations = append(violations, checkIdempotence(path, program, opts)...)

		result.Summary.FilesChecked++
		for _, v := range violations {
			tallyViolation(&result.Summary, v)
		}
		result.Violations = append(result.Violations, violations...)
	}

	result.Summary.TotalViolations = len(result.Violations)
	if result.Summary.TotalViolations > 0 {
		result.Passed = false
		result.ExitCode = 1
	}
	result.Duration = time.Since(start).Milliseconds()
	result.GeneratedAt = time.Now().Format(time.RFC3339)
	result.Version = version.Version

	return result, nil
}

func tallyViolation(summary *domain.CheckSummary, v domain.CheckViolation) {
	switch v.Category {
	case domain.CheckCategorySequence:
		summary.SequenceFindings++
	case domain.CheckCategoryShortCircuit:
		summary.SequenceFindings++
	case domain.CheckCategoryBraces:
		summary.BraceFindings++
	case domain.CheckCategoryDeclarator:
		summary.DeclaratorCount++
	case domain.CheckCategoryRespelling:
		summary.RespellingCount++
	case domain.CheckCategoryFreshName:
		summary.FreshNameCount++
	case domain.CheckCategoryIdempotence:
		summary.IdempotenceCount++
	}
}

// checkInvariants walks program once, checking invariants 2-7 (sequence
// operators, statement-level short-circuits/ternaries, single-declarator,
// braces, boolean respelling, fresh-name uniqueness). Invariants 1, 8 are
// semantic properties a static walk cannot check; internal/transform's
// scenario tests cover them only indirectly, by comparing rendered output
// against expected source text.
func checkInvariants(path string, program *ast.Program, namePattern *regexp.Regexp) []domain.CheckViolation {
	var violations []domain.CheckViolation
	seenFreshNames := map[string]bool{}

	ast.Inspect(program, func(n ast.Node) bool {
		switch node := n.(type) {
		case *ast.SequenceExpression:
			violations = append(violations, domain.CheckViolation{
				Category: domain.CheckCategorySequence,
				Rule:     "no-sequence-expression",
				Severity: "error",
				Message:  "sequence expression survived transform",
				File:     path,
				Location: loc(node.Position),
			})

		case *ast.ExpressionStatement:
			switch expr := node.Expression.(type) {
			case *ast.LogicalExpression:
				if expr.Operator == "&&" || expr.Operator == "||" {
					violations = append(violations, domain.CheckViolation{
						Category: domain.CheckCategoryShortCircuit,
						Rule:     "no-statement-level-short-circuit",
						Severity: "error",
						Message:  fmt.Sprintf("statement-level %q short-circuit survived transform", expr.Operator),
						File:     path,
						Location: loc(node.Position),
					})
				}
			case *ast.ConditionalExpression:
				violations = append(violations, domain.CheckViolation{
					Category: domain.CheckCategoryShortCircuit,
					Rule:     "no-statement-level-ternary",
					Severity: "error",
					Message:  "statement-level ternary survived transform",
					File:     path,
					Location: loc(node.Position),
				})
			}

		case *ast.VariableDeclaration:
			if len(node.Declarations) != 1 {
				violations = append(violations, domain.CheckViolation{
					Category: domain.CheckCategoryDeclarator,
					Rule:     "single-declarator",
					Severity: "error",
					Message:  fmt.Sprintf("variable declaration has %d declarators, want 1", len(node.Declarations)),
					File:     path,
					Location: loc(node.Position),
				})
			}
			for _, decl := range node.Declarations {
				if id, ok := decl.ID.(*ast.Identifier); ok && namePattern.MatchString(id.Name) {
					if seenFreshNames[id.Name] {
						violations = append(violations, domain.CheckViolation{
							Category: domain.CheckCategoryFreshName,
							Rule:     "fresh-name-uniqueness",
							Severity: "error",
							Message:  fmt.Sprintf("fresh name %q introduced more than once", id.Name),
							File:     path,
							Location: loc(id.Position),
						})
					}
					seenFreshNames[id.Name] = true
				}
			}

		case *ast.UnaryExpression:
			if lit, ok := node.Argument.(*ast.Literal); ok {
				if node.Operator == "!" && lit.Kind == ast.LiteralNumber && !strings.ContainsAny(lit.Raw, ".eE") {
					violations = append(violations, domain.CheckViolation{
						Category: domain.CheckCategoryRespelling,
						Rule:     "no-unrespelled-bang-int",
						Severity: "error",
						Message:  fmt.Sprintf("!%s survived respelling", lit.Raw),
						File:     path,
						Location: loc(node.Position),
					})
				}
				if node.Operator == "void" {
					violations = append(violations, domain.CheckViolation{
						Category: domain.CheckCategoryRespelling,
						Rule:     "no-unrespelled-void",
						Severity: "error",
						Message:  fmt.Sprintf("void %s survived respelling", lit.Raw),
						File:     path,
						Location: loc(node.Position),
					})
				}
			}

		case *ast.IfStatement:
			if !isBraceOrEmpty(node.Consequent) {
				violations = append(violations, braceViolation(path, node.Position, "if"))
			}
			if node.Alternate != nil {
				if _, isElseIf := node.Alternate.(*ast.IfStatement); !isElseIf && !isBraceOrEmpty(node.Alternate) {
					violations = append(violations, braceViolation(path, node.Position, "else"))
				}
			}
		case *ast.WhileStatement:
			if !isBraceOrEmpty(node.Body) {
				violations = append(violations, braceViolation(path, node.Position, "while"))
			}
		case *ast.DoWhileStatement:
			if !isBraceOrEmpty(node.Body) {
				violations = append(violations, braceViolation(path, node.Position, "do-while"))
			}
		case *ast.ForStatement:
			if !isBraceOrEmpty(node.Body) {
				violations = append(violations, braceViolation(path, node.Position, "for"))
			}
		case *ast.ForInStatement:
			if !isBraceOrEmpty(node.Body) {
				violations = append(violations, braceViolation(path, node.Position, "for-in"))
			}
		case *ast.ForOfStatement:
			if !isBraceOrEmpty(node.Body) {
				violations = append(violations, braceViolation(path, node.Position, "for-of"))
			}
		}
		return true
	})

	return violations
}

func isBraceOrEmpty(body ast.Stmt) bool {
	switch body.(type) {
	case *ast.BlockStatement, *ast.EmptyStatement:
		return true
	default:
		return false
	}
}

func braceViolation(path string, pos ast.Position, kind string) domain.CheckViolation {
	return domain.CheckViolation{
		Category: domain.CheckCategoryBraces,
		Rule:     "brace-invariant",
		Severity: "error",
		Message:  fmt.Sprintf("%s body is not a block or empty statement", kind),
		File:     path,
		Location: loc(pos),
	}
}

func loc(pos ast.Position) string {
	return fmt.Sprintf("%d:%d", pos.Start.Row, pos.Start.Column)
}

// checkIdempotence re-runs the transform against program and compares the
// rendered output text; transform(transform(A)) must render identically to
// transform(A), since the AST has no structural-equality method and
// rendered source is the cheapest stable comparison available.
func checkIdempotence(path string, program *ast.Program, opts transform.Options) []domain.CheckViolation {
	// transform.Run mutates in place, so program already holds transform(A).
	// Render it, then parse+transform again from that rendered text and
	// compare: the two renders must match.
	once := jsgen.Generate(program)

	reparsed, err := jsparse.ParseForLanguage(path, []byte(once))
	if err != nil {
		return []domain.CheckViolation{{
			Category: domain.CheckCategoryIdempotence,
			Rule:     "idempotence",
			Severity: "error",
			Message:  fmt.Sprintf("re-parsing transformed output failed: %v", err),
			File:     path,
		}}
	}
	if err := transform.Run(reparsed, opts); err != nil {
		return []domain.CheckViolation{{
			Category: domain.CheckCategoryIdempotence,
			Rule:     "idempotence",
			Severity: "error",
			Message:  fmt.Sprintf("re-transforming the transformed output failed: %v", err),
			File:     path,
		}}
	}
	twice := jsgen.Generate(reparsed)

	if once != twice {
		return []domain.CheckViolation{{
			Category: domain.CheckCategoryIdempotence,
			Rule:     "idempotence",
			Severity: "error",
			Message:  "re-transforming the transformed output changed it",
			File:     path,
		}}
	}
	return nil
}
