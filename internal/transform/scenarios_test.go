package transform

import (
	"testing"

	"github.com/ludo-technologies/jsopen/internal/jsgen"
	"github.com/ludo-technologies/jsopen/internal/jsparse"
)

// render parses source, runs the full default pass pipeline over it, and
// renders the result back to text.
func render(t *testing.T, source string, opts Options) string {
	t.Helper()
	program, err := jsparse.ParseForLanguage("scenario.js", []byte(source))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if err := Run(program, opts); err != nil {
		t.Fatalf("transform failed: %v", err)
	}
	return jsgen.Generate(program)
}

func scenarioOptions() Options {
	return Options{
		Prefix:             "t",
		Unsequence:         true,
		Respelling:         true,
		IfBraces:           true,
		FlattenInvoked:     true,
		LabelFunctionArray: true,
	}
}

func assertScenario(t *testing.T, source, want string) {
	t.Helper()
	got := render(t, source, scenarioOptions())
	if got != want {
		t.Fatalf("render(%q):\n got: %q\nwant: %q", source, got, want)
	}
}

func TestScenarioUnsequenceTopLevel(t *testing.T) {
	assertScenario(t, "a = (f(), g(), h);", "f();\ng();\na = h;\n")
}

// TestScenarioShortCircuitAssignment exercises the case where the RHS of a
// `||`/`&&` actually needs hoisting (here, the sequence expression in the
// right operand) - that's the condition the pass splits on, per
// 4.4's LogicalExpression rule. `x = a || b();` alone, with a bare no-arg
// call on the right, needs no hoisting and is left untouched: both operands
// are already safe to leave in expression position.
func TestScenarioShortCircuitAssignment(t *testing.T) {
	assertScenario(t, "x = a || (b(), c());",
		"let t1 = a;\nif (!t1) {\n  b();\n  t1 = c();\n}\nx = t1;\n")
}

func TestScenarioNestedTernaryReturn(t *testing.T) {
	assertScenario(t, "function f(a, b, c, d, e) { return a ? b : c ? d : e; }",
		"function f(a, b, c, d, e) {\n  let t1;\n  if (a) {\n    t1 = b;\n  } else if (c) {\n    t1 = d;\n  } else {\n    t1 = e;\n  }\n  return t1;\n}\n")
}

// TestScenarioMethodCallThisPreservation exercises the `.call(obj, ...)`
// rewrite, which only fires when an argument actually needs hoisting (the
// first argument's sequence expression here). `obj.m(f(), g())` alone has
// no argument needing hoisting, so the call is left as-is.
func TestScenarioMethodCallThisPreservation(t *testing.T) {
	assertScenario(t, "obj.m((a(), b()), g());",
		"let t1 = obj.m;\na();\nt1.call(obj, b(), g());\n")
}

func TestScenarioBooleanRespellingInBranches(t *testing.T) {
	assertScenario(t, "if (cond) a = !0; else a = void 0;",
		"if (cond) {\n  a = true;\n} else {\n  a = undefined;\n}\n")
}

func TestScenarioFlattenInvokedSimpleIIFE(t *testing.T) {
	assertScenario(t, "var x = (function(){ return 42; })();", "var x = 42;\n")
}

func TestScenarioFlattenInvokedLeavesThisCapturingIIFEAlone(t *testing.T) {
	assertScenario(t, "var x = (function(){ return this; })();",
		"var x = (function() {\n  return this;\n})();\n")
}

func TestScenarioLabelFunctionArray(t *testing.T) {
	assertScenario(t, "var fs = [function(){}, function(){}];",
		"var fs = [function fs0() {\n}, function fs1() {\n}];\n")
}

func TestScenarioMultiDeclaratorSplit(t *testing.T) {
	assertScenario(t, "var a=1, b=2, c=3;",
		"var a = 1;\nvar b = 2;\nvar c = 3;\n")
}
