package service

import (
	"fmt"

	"github.com/ludo-technologies/jsopen/domain"
	"github.com/ludo-technologies/jsopen/internal/ast"
	"github.com/ludo-technologies/jsopen/internal/jsgen"
	"github.com/ludo-technologies/jsopen/internal/jsparse"
	"github.com/ludo-technologies/jsopen/internal/transform"
)

// TransformService parses, rewrites, and regenerates a single file. It is
// the unit of work BatchService fans out across a worker pool.
type TransformService struct{}

// NewTransformService creates a TransformService.
func NewTransformService() *TransformService {
	return &TransformService{}
}

// Run parses req.Source, applies the enabled passes, and renders the
// result back to JavaScript source text.
func (s *TransformService) Run(req domain.TransformRequest) (*domain.TransformResult, error) {
	program, err := jsparse.ParseForLanguage(req.Path, req.Source)
	if err != nil {
		return nil, fmt.Errorf("transform: parse %s: %w", req.Path, err)
	}

	opts := transform.Options{
		Prefix:             req.Prefix,
		Unsequence:         req.Passes.Unsequence,
		Respelling:         req.Passes.Respelling,
		IfBraces:           req.Passes.IfBraces,
		FlattenInvoked:     req.Passes.FlattenInvoked,
		LabelFunctionArray: req.Passes.LabelFunctionArray,
	}
	if opts.Prefix == "" {
		opts.Prefix = "_temp"
	}

	stats := countNodes(program)
	if err := transform.Run(program, opts); err != nil {
		return nil, fmt.Errorf("transform: %s: %w", req.Path, err)
	}
	afterStats := countNodes(program)

	result := &domain.TransformResult{
		Path:     req.Path,
		Original: string(req.Source),
		Output:   jsgen.Generate(program),
		Stats: domain.PassStats{
			SequencesEliminated: stats.sequences - afterStats.sequences,
			TernariesConverted:  stats.conditionals - afterStats.conditionals,
			IIFEsFlattened:      stats.iifeCalls - afterStats.iifeCalls,
		},
	}
	if req.DumpAST {
		if dumped, err := jsgen.DumpJSON(program); err == nil {
			result.AST = dumped
		}
	}
	return result, nil
}

type nodeCounts struct {
	sequences    int
	conditionals int
	iifeCalls    int
}

// countNodes gives BatchService/ReportService a rough before/after delta to
// report without requiring every pass to track its own statistics.
func countNodes(program *ast.Program) nodeCounts {
	var c nodeCounts
	ast.Inspect(program, func(n ast.Node) bool {
		switch v := n.(type) {
		case *ast.SequenceExpression:
			c.sequences++
		case *ast.ConditionalExpression:
			c.conditionals++
		case *ast.CallExpression:
			callee := v.Callee
			if paren, ok := callee.(*ast.ParenthesizedExpression); ok {
				callee = paren.Expression
			}
			if fn, ok := callee.(*ast.FunctionExpression); ok && !fn.IsArrow && len(v.Args) == 0 {
				c.iifeCalls++
			}
		}
		return true
	})
	return c
}
