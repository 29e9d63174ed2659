package evaluator_test

import (
	"testing"

	"github.com/funvibe/substructural/internal/ast"
	"github.com/funvibe/substructural/internal/checker"
	"github.com/funvibe/substructural/internal/evaluator"
	"github.com/funvibe/substructural/internal/parser"
	"github.com/funvibe/substructural/internal/typesystem"
)

func parseOK(t *testing.T, src string) ast.Term {
	t.Helper()
	term, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return term
}

func TestStepLiteralBoxesThenUnboxes(t *testing.T) {
	term := parseOK(t, "$5")
	cfg := evaluator.New(term, evaluator.DefaultConfig())

	cfg, err := cfg.Step()
	if err != nil {
		t.Fatalf("step 1: %v", err)
	}
	if cfg.Store.Len() != 1 {
		t.Fatalf("expected one store entry after boxing, got %d", cfg.Store.Len())
	}
	v, ok := cfg.Term.(*ast.Variable)
	if !ok {
		t.Fatalf("expected a Variable after boxing, got %T", cfg.Term)
	}

	cfg, err = cfg.Step()
	if err != nil {
		t.Fatalf("step 2: %v", err)
	}
	if cfg.Store.Len() != 0 {
		t.Fatalf("expected store empty after unboxing, got %d entries", cfg.Store.Len())
	}
	n, ok := cfg.Term.(*ast.Integer)
	if !ok || n.Value != 5 {
		t.Fatalf("expected $5 back, got %#v", cfg.Term)
	}
	_ = v
}

func TestConditionalReducesToBranch(t *testing.T) {
	term := parseOK(t, "if true { 1 } else { 2 }")
	cfg := evaluator.New(term, evaluator.DefaultConfig())

	final, _, exhausted, err := evaluator.Run(cfg, 100)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if exhausted {
		t.Fatal("expected to reach a value before the step budget")
	}
	n, ok := final.Term.(*ast.Integer)
	if !ok || n.Value != 1 {
		t.Fatalf("expected 1, got %#v", final.Term)
	}
}

func TestIdentityApplicationLeavesClosureUnrestricted(t *testing.T) {
	term := parseOK(t, "(|x| x) ($true)")
	cfg := evaluator.New(term, evaluator.DefaultConfig())

	final, _, exhausted, err := evaluator.Run(cfg, 100)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if exhausted {
		t.Fatal("expected to reach a value before the step budget")
	}
	b, ok := final.Term.(*ast.Boolean)
	if !ok || !b.Value {
		t.Fatalf("expected $true, got %#v", final.Term)
	}
	for _, entry := range final.Store.Entries() {
		if abs, ok := entry.(*ast.Abstraction); ok && abs.Qualifier == typesystem.Linear {
			t.Fatalf("linear entry survived evaluation: %#v", abs)
		}
	}
}

func TestLinearVariableConsumedOnce(t *testing.T) {
	term, typeErr := checker.Check(parseOK(t, "(|x: $int| x) ($5)"), checker.Options{})
	if typeErr != nil {
		t.Fatalf("type check: %v", typeErr)
	}
	_ = term
}

func TestFixRecursionCountsDownToZero(t *testing.T) {
	src := `fix (|ff: int -> int| |x: int| if iszero(x) { 0 } else { ff (diff(x, $1)) }) (5)`
	_, typeErr := checker.Check(parseOK(t, src), checker.Options{})
	if typeErr != nil {
		t.Fatalf("type check: %v", typeErr)
	}

	cfg := evaluator.New(parseOK(t, src), evaluator.DefaultConfig())
	final, _, exhausted, err := evaluator.Run(cfg, 10000)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if exhausted {
		t.Fatal("expected the countdown to finish within 10000 steps")
	}
	n, ok := final.Term.(*ast.Integer)
	if !ok || n.Value != 0 {
		t.Fatalf("expected 0, got %#v", final.Term)
	}
}

func TestFixNonTerminatingProgramExhaustsBudget(t *testing.T) {
	src := `fix (|loop: int -> int| |x: int| loop (x)) (5)`
	cfg := evaluator.New(parseOK(t, src), evaluator.DefaultConfig())
	_, steps, exhausted, err := evaluator.Run(cfg, 200)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !exhausted || steps != 200 {
		t.Fatalf("expected the step budget to run out, got steps=%d exhausted=%v", steps, exhausted)
	}
}

func TestApplicationToNonAbstractionIsEvalError(t *testing.T) {
	term := parseOK(t, "($5) ($6)")
	cfg := evaluator.New(term, evaluator.DefaultConfig())
	_, _, _, err := evaluator.Run(cfg, 10)
	if err == nil {
		t.Fatal("expected an eval error applying a non-function")
	}
}
