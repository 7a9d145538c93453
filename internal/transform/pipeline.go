package transform

import (
	"errors"

	"github.com/ludo-technologies/jsopen/internal/ast"
)

// ErrStructuralViolation is the fatal, surfaced error Run returns when a
// pass encounters an assignment whose left-hand side is neither an
// Identifier nor a MemberExpression, or one whose top-level shape changes
// underneath a rewrite that assumes it is stable. Unlike an unrecognized
// node type (which a pass simply leaves untouched) or a missing optional
// field (which a pass treats as absent), a structural violation means the
// program doesn't have the shape the passes are built to rewrite, and
// continuing would silently produce wrong output.
var ErrStructuralViolation = errors.New("transform: structural violation")

// Pass is implemented by each of the five rewrite passes. ProcessNode is
// invoked once per node, in pre-order (before Run descends into that
// node's current children), so a pass that mutates a node's child slots
// sees those mutations reflected in the subsequent traversal.
type Pass interface {
	ProcessNode(node ast.Node)
}

// errorPass is implemented by passes that can detect a structural
// violation (ErrStructuralViolation) partway through a traversal. Run polls
// Err() after each ProcessNode call and stops as soon as one is set.
type errorPass interface {
	Err() error
}

// Options selects which passes Run applies, and in what fresh-identifier
// namespace Unsequence mints names.
type Options struct {
	Prefix             string
	Unsequence         bool
	Respelling         bool
	IfBraces           bool
	FlattenInvoked     bool
	LabelFunctionArray bool
}

// DefaultOptions enables every pass except FlattenInvoked, which is the
// most aggressive rewrite (it can change a program's stack traces) and is
// opt-in.
func DefaultOptions() Options {
	return Options{
		Prefix:             "_temp",
		Unsequence:         true,
		Respelling:         true,
		IfBraces:           true,
		FlattenInvoked:     false,
		LabelFunctionArray: true,
	}
}

// Run applies the enabled passes to program in a single pre-order
// traversal, in the fixed order Unsequence, Respelling, IfBraces,
// FlattenInvoked, LabelFunctionArray - running every pass against each
// node before descending further. It returns ErrStructuralViolation
// (wrapped with context) if a pass hits a program shape it can't safely
// rewrite; program is left partially mutated in that case, since the
// passes already applied to earlier nodes aren't undone.
func Run(program *ast.Program, opts Options) error {
	var passes []Pass
	if opts.Unsequence {
		passes = append(passes, NewUnsequence(NewState(opts.Prefix)))
	}
	if opts.Respelling {
		passes = append(passes, NewRespelling())
	}
	if opts.IfBraces {
		passes = append(passes, NewIfBraces())
	}
	if opts.FlattenInvoked {
		passes = append(passes, NewFlattenInvoked())
	}
	if opts.LabelFunctionArray {
		passes = append(passes, NewLabelFunctionArray())
	}
	if len(passes) == 0 {
		return nil
	}

	var firstErr error
	ast.Inspect(program, func(n ast.Node) bool {
		if firstErr != nil {
			return false
		}
		if n == nil {
			return true
		}
		for _, p := range passes {
			p.ProcessNode(n)
			if ep, ok := p.(errorPass); ok {
				if err := ep.Err(); err != nil {
					firstErr = err
					return false
				}
			}
		}
		return true
	})
	return firstErr
}
