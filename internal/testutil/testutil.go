// Package testutil provides helper functions for testing jsopen components.
package testutil

import (
	"testing"

	"github.com/ludo-technologies/jsopen/internal/ast"
	"github.com/ludo-technologies/jsopen/internal/jsparse"
)

// CreateTestAST parses source as JavaScript, failing the test on error.
func CreateTestAST(t *testing.T, source string) *ast.Program {
	t.Helper()
	p := jsparse.NewParser()
	defer p.Close()

	program, err := p.ParseString(source)
	if err != nil {
		t.Fatalf("Failed to parse test code: %v", err)
	}
	return program
}

// CreateTestASTNoFail parses source, returning an error instead of failing
// the test.
func CreateTestASTNoFail(source string) (*ast.Program, error) {
	p := jsparse.NewParser()
	defer p.Close()
	return p.ParseString(source)
}

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("Expected error but got nil")
	}
}

// AssertEqual fails the test if expected != actual.
func AssertEqual(t *testing.T, expected, actual any) {
	t.Helper()
	if expected != actual {
		t.Errorf("Expected %v, got %v", expected, actual)
	}
}

// AssertTrue fails the test if condition is false.
func AssertTrue(t *testing.T, condition bool, msg string) {
	t.Helper()
	if !condition {
		t.Error(msg)
	}
}

// AssertFalse fails the test if condition is true.
func AssertFalse(t *testing.T, condition bool, msg string) {
	t.Helper()
	if condition {
		t.Error(msg)
	}
}

// AssertNotNil fails the test if value is nil.
func AssertNotNil(t *testing.T, value any) {
	t.Helper()
	if value == nil {
		t.Error("Expected non-nil value")
	}
}

// AssertNil fails the test if value is not nil.
func AssertNil(t *testing.T, value any) {
	t.Helper()
	if value != nil {
		t.Errorf("Expected nil, got %v", value)
	}
}

// FindFunctionByName returns the first FunctionDeclaration or named
// FunctionExpression in program matching name, or nil.
func FindFunctionByName(program *ast.Program, name string) ast.Node {
	var found ast.Node
	ast.Inspect(program, func(n ast.Node) bool {
		if found != nil {
			return false
		}
		switch fn := n.(type) {
		case *ast.FunctionDeclaration:
			if fn.ID != nil && fn.ID.Name == name {
				found = fn
				return false
			}
		case *ast.FunctionExpression:
			if fn.ID != nil && fn.ID.Name == name {
				found = fn
				return false
			}
		}
		return true
	})
	return found
}

// CountNodes walks program and counts the nodes for which match returns
// true, e.g. CountNodes(p, func(n ast.Node) bool { _, ok :=
// n.(*ast.CallExpression); return ok }).
func CountNodes(program *ast.Program, match func(ast.Node) bool) int {
	count := 0
	ast.Inspect(program, func(n ast.Node) bool {
		if match(n) {
			count++
		}
		return true
	})
	return count
}
