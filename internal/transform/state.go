// Package transform implements the deobfuscation rewrite passes: Unsequence,
// Respelling, IfBraces, FlattenInvoked, and LabelFunctionArray. Each pass
// operates on the internal/ast tree built by internal/jsparse and is
// structured as its own visitor type, using exhaustive Go type switches
// over internal/ast.Node.
package transform

import (
	"fmt"

	"github.com/ludo-technologies/jsopen/internal/ast"
)

// State carries the fresh-identifier counter shared by a single run of the
// pipeline. Unsequence is the only pass that currently consumes it, but it
// is threaded through Run so that future passes needing fresh names (or a
// shared symbol table) don't require a signature change.
type State struct {
	idNum  int
	prefix string
}

// NewState constructs a State that mints fresh identifiers as
// "<prefix><n>", starting at 1.
func NewState(prefix string) *State {
	if prefix == "" {
		prefix = "_temp"
	}
	return &State{prefix: prefix}
}

// MakeIDString returns a new fresh identifier name, guaranteed unique within
// this State's lifetime.
func (s *State) MakeIDString() string {
	s.idNum++
	return fmt.Sprintf("%s%d", s.prefix, s.idNum)
}

// MakeID returns a new fresh identifier node.
func (s *State) MakeID() *ast.Identifier {
	return &ast.Identifier{Name: s.MakeIDString()}
}
