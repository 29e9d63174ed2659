package checker

import (
	"testing"

	"github.com/funvibe/substructural/internal/parser"
	"github.com/funvibe/substructural/internal/typesystem"
)

func checkSource(t *testing.T, src string) typesystem.Type {
	t.Helper()
	term, perr := parser.Parse(src)
	if perr != nil {
		t.Fatalf("Parse(%q) failed: %s", src, perr)
	}
	// Applications are included so that a program whose root is an
	// Application still has a root entry to read.
	typeMap, cerr := Check(term, Options{IncludeApplications: true})
	if cerr != nil {
		t.Fatalf("Check(%q) failed: %s", src, cerr)
	}
	ty, ok := typeMap[term.Span()]
	if !ok {
		t.Fatalf("Check(%q): root span missing from type map", src)
	}
	return ty
}

func expectTypeError(t *testing.T, src string) {
	t.Helper()
	term, perr := parser.Parse(src)
	if perr != nil {
		t.Fatalf("Parse(%q) failed: %s", src, perr)
	}
	_, cerr := Check(term, Options{})
	if cerr == nil {
		t.Fatalf("Check(%q): expected a type error, got none", src)
	}
}

func TestLiteralsCarryDeclaredQualifier(t *testing.T) {
	ty := checkSource(t, "$5")
	if ty.Qualifier != typesystem.Linear || ty.Pretype.Kind != typesystem.KindInt {
		t.Errorf("got %s, want $int", ty)
	}
	ty2 := checkSource(t, "true")
	if ty2.Qualifier != typesystem.Unrestricted || ty2.Pretype.Kind != typesystem.KindBool {
		t.Errorf("got %s, want bool", ty2)
	}
}

func TestUndefinedVariableIsTypeError(t *testing.T) {
	expectTypeError(t, "x")
}

func TestAbstractionWithoutAnnotationIsTypeError(t *testing.T) {
	expectTypeError(t, "|x| x")
}

func TestAbstractionRequiresLinearParamConsumed(t *testing.T) {
	// a linear parameter never referenced in the body
	expectTypeError(t, "|f: $int| true")
}

func TestLinearVariableUsedExactlyOnceTypeChecks(t *testing.T) {
	ty := checkSource(t, "(|x: $int| x)($5)")
	if ty.Qualifier != typesystem.Linear || ty.Pretype.Kind != typesystem.KindInt {
		t.Errorf("got %s, want $int", ty)
	}
}

func TestLinearVariableUsedTwiceIsRejected(t *testing.T) {
	// using a linear pair component twice inside the letc body
	expectTypeError(t, "let <a, b> = $<$1, $2> in $<a, a>")
}

func TestUnrestrictedClosureCannotCaptureFreeLinear(t *testing.T) {
	expectTypeError(t, "let y = $5 in |x: int| y")
}

func TestConditionalRequiresBooleanCondition(t *testing.T) {
	expectTypeError(t, "if 1 { true } else { false }")
}

func TestConditionalBranchesMustConsumeLinearsIdentically(t *testing.T) {
	// then consumes y, else does not: inconsistent consumption across branches
	expectTypeError(t, "let y = $5 in if true { y } else { $6 }")
}

func TestConditionalBranchTypesMustMatch(t *testing.T) {
	expectTypeError(t, "if true { 1 } else { true }")
}

func TestApplicationRequiresFunction(t *testing.T) {
	expectTypeError(t, "(5)(6)")
}

func TestApplicationArgumentTypeMustMatchDomain(t *testing.T) {
	expectTypeError(t, "(|x: int| x)(true)")
}

func TestFixRequiresUnrestrictedEndofunction(t *testing.T) {
	ty := checkSource(t, "fix (|f: int -> int| |x: int| x)")
	if ty.Pretype.Kind != typesystem.KindFunction {
		t.Errorf("got %s, want a function type", ty)
	}
}

func TestFixRejectsLinearDomain(t *testing.T) {
	expectTypeError(t, "fix (|f: $(int -> int)| f)")
}

func TestFixRejectsLinearRecursionQualifier(t *testing.T) {
	expectTypeError(t, "fix ($|f: int -> int| |x: int| x)")
}

func TestFixRejectsMismatchedDomainAndCodomain(t *testing.T) {
	expectTypeError(t, "fix (|f: int -> bool| |x: int| x)")
}

func TestLetcOnNonCompoundIsTypeError(t *testing.T) {
	expectTypeError(t, "let <a, b> = 5 in a")
}

func TestLetcRejectsRepeatedNames(t *testing.T) {
	expectTypeError(t, "let <a, a> = <1, 2> in a")
}

func TestArithmeticOperandsMustBeInt(t *testing.T) {
	expectTypeError(t, "iszero(true)")
	expectTypeError(t, "diff(true, 1)")
}

func TestArithmeticResultCarriesDeclaredQualifier(t *testing.T) {
	ty := checkSource(t, "$diff(3, 1)")
	if ty.Qualifier != typesystem.Linear || ty.Pretype.Kind != typesystem.KindInt {
		t.Errorf("got %s, want $int", ty)
	}
}

func TestApplicationOmittedFromTypeMapByDefault(t *testing.T) {
	term, perr := parser.Parse("(|x: int| x)(1)")
	if perr != nil {
		t.Fatalf("parse failed: %s", perr)
	}
	typeMap, cerr := Check(term, Options{})
	if cerr != nil {
		t.Fatalf("check failed: %s", cerr)
	}
	if _, ok := typeMap[term.Span()]; ok {
		t.Errorf("expected the Application's own span to be omitted by default")
	}
}

func TestApplicationIncludedWhenRequested(t *testing.T) {
	term, perr := parser.Parse("(|x: int| x)(1)")
	if perr != nil {
		t.Fatalf("parse failed: %s", perr)
	}
	typeMap, cerr := Check(term, Options{IncludeApplications: true})
	if cerr != nil {
		t.Fatalf("check failed: %s", cerr)
	}
	if _, ok := typeMap[term.Span()]; !ok {
		t.Errorf("expected the Application's own span to be present when IncludeApplications is set")
	}
}
