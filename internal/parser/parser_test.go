package parser

import (
	"testing"

	"github.com/funvibe/substructural/internal/ast"
	"github.com/funvibe/substructural/internal/typesystem"
)

func mustParse(t *testing.T, src string) ast.Term {
	t.Helper()
	term, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q) returned error: %s", src, err)
	}
	return term
}

func TestParseLiterals(t *testing.T) {
	cases := []struct {
		src string
		q   typesystem.Qualifier
	}{
		{"true", typesystem.Unrestricted},
		{"false", typesystem.Unrestricted},
		{"42", typesystem.Unrestricted},
		{"-7", typesystem.Unrestricted},
		{"$true", typesystem.Linear},
		{"$5", typesystem.Linear},
	}
	for _, c := range cases {
		term := mustParse(t, c.src)
		switch v := term.(type) {
		case *ast.Boolean:
			if v.Qualifier != c.q {
				t.Errorf("%q: got qualifier %v, want %v", c.src, v.Qualifier, c.q)
			}
		case *ast.Integer:
			if v.Qualifier != c.q {
				t.Errorf("%q: got qualifier %v, want %v", c.src, v.Qualifier, c.q)
			}
		default:
			t.Errorf("%q: parsed to unexpected node %T", c.src, term)
		}
	}
}

func TestParseVariable(t *testing.T) {
	term := mustParse(t, "x")
	v, ok := term.(*ast.Variable)
	if !ok {
		t.Fatalf("got %T, want *ast.Variable", term)
	}
	if v.Name != "x" {
		t.Errorf("got name %q, want x", v.Name)
	}
}

func TestParseAbstractionWithAndWithoutType(t *testing.T) {
	term := mustParse(t, "|x: int| x")
	abs, ok := term.(*ast.Abstraction)
	if !ok {
		t.Fatalf("got %T, want *ast.Abstraction", term)
	}
	if !abs.HasType {
		t.Fatalf("expected HasType true")
	}
	if abs.ParamType.Pretype.Kind != typesystem.KindInt {
		t.Errorf("got param type %s, want int", abs.ParamType)
	}

	untyped := mustParse(t, "|x| x")
	abs2, ok := untyped.(*ast.Abstraction)
	if !ok {
		t.Fatalf("got %T, want *ast.Abstraction", untyped)
	}
	if abs2.HasType {
		t.Fatalf("expected HasType false for untyped abstraction")
	}
}

func TestParseLinearAbstraction(t *testing.T) {
	term := mustParse(t, "$|x: $int| x")
	abs, ok := term.(*ast.Abstraction)
	if !ok {
		t.Fatalf("got %T, want *ast.Abstraction", term)
	}
	if abs.Qualifier != typesystem.Linear {
		t.Errorf("got qualifier %v, want Linear", abs.Qualifier)
	}
	if abs.ParamType.Qualifier != typesystem.Linear {
		t.Errorf("got param qualifier %v, want Linear", abs.ParamType.Qualifier)
	}
}

func TestParseCompound(t *testing.T) {
	term := mustParse(t, "<1, 2>")
	c, ok := term.(*ast.Compound)
	if !ok {
		t.Fatalf("got %T, want *ast.Compound", term)
	}
	if _, ok := c.First.(*ast.Integer); !ok {
		t.Errorf("got First %T, want *ast.Integer", c.First)
	}
	if _, ok := c.Second.(*ast.Integer); !ok {
		t.Errorf("got Second %T, want *ast.Integer", c.Second)
	}
}

func TestParsePrimitives(t *testing.T) {
	term := mustParse(t, "diff(3, 1)")
	a2, ok := term.(*ast.Arith2)
	if !ok {
		t.Fatalf("got %T, want *ast.Arith2", term)
	}
	if a2.Op != ast.Diff {
		t.Errorf("got op %v, want Diff", a2.Op)
	}

	term2 := mustParse(t, "iszero(0)")
	a1, ok := term2.(*ast.Arith1)
	if !ok {
		t.Fatalf("got %T, want *ast.Arith1", term2)
	}
	if a1.Op != ast.IsZero {
		t.Errorf("got op %v, want IsZero", a1.Op)
	}
}

func TestParseConditional(t *testing.T) {
	term := mustParse(t, "if true { 1 } else { 2 }")
	cond, ok := term.(*ast.Conditional)
	if !ok {
		t.Fatalf("got %T, want *ast.Conditional", term)
	}
	if _, ok := cond.Cond.(*ast.Boolean); !ok {
		t.Errorf("got Cond %T, want *ast.Boolean", cond.Cond)
	}
}

func TestParseLetAndLetc(t *testing.T) {
	term := mustParse(t, "let x = 1 in x")
	let, ok := term.(*ast.Let)
	if !ok {
		t.Fatalf("got %T, want *ast.Let", term)
	}
	if let.Name != "x" {
		t.Errorf("got name %q, want x", let.Name)
	}

	term2 := mustParse(t, "let <a, b> = <1, 2> in a")
	letc, ok := term2.(*ast.Letc)
	if !ok {
		t.Fatalf("got %T, want *ast.Letc", term2)
	}
	if letc.Name1 != "a" || letc.Name2 != "b" {
		t.Errorf("got names %q, %q, want a, b", letc.Name1, letc.Name2)
	}
}

func TestParseFix(t *testing.T) {
	term := mustParse(t, "fix (|f: int -> int| |x: int| x)")
	fix, ok := term.(*ast.Fix)
	if !ok {
		t.Fatalf("got %T, want *ast.Fix", term)
	}
	if _, ok := fix.Operand.(*ast.Abstraction); !ok {
		t.Errorf("got operand %T, want *ast.Abstraction", fix.Operand)
	}
}

func TestParseApplicationChainIsLeftAssociative(t *testing.T) {
	term := mustParse(t, "f(a)(b)")
	outer, ok := term.(*ast.Application)
	if !ok {
		t.Fatalf("got %T, want *ast.Application", term)
	}
	inner, ok := outer.Fun.(*ast.Application)
	if !ok {
		t.Fatalf("got Fun %T, want *ast.Application", outer.Fun)
	}
	if v, ok := inner.Fun.(*ast.Variable); !ok || v.Name != "f" {
		t.Errorf("innermost function is not the variable f")
	}
	if v, ok := inner.Arg.(*ast.Variable); !ok || v.Name != "a" {
		t.Errorf("first argument is not a")
	}
	if v, ok := outer.Arg.(*ast.Variable); !ok || v.Name != "b" {
		t.Errorf("second argument is not b")
	}
}

func TestParseFunctionTypeIsRightAssociative(t *testing.T) {
	term := mustParse(t, "|f: int -> int -> int| f")
	abs := term.(*ast.Abstraction)
	in, out, ok := abs.ParamType.IsFunction()
	if !ok {
		t.Fatalf("expected a function type")
	}
	if in.Pretype.Kind != typesystem.KindInt {
		t.Errorf("got domain %s, want int", in)
	}
	_, _, ok = out.IsFunction()
	if !ok {
		t.Fatalf("expected curried function type, got %s", out)
	}
}

func TestParseNestedQualifierOnParenthesizedTypeIsRejected(t *testing.T) {
	_, err := Parse("|x: $($int)| x")
	if err == nil {
		t.Fatalf("expected a parse error for a doubly-qualified pretype")
	}
}

func TestParseRejectsTrailingInput(t *testing.T) {
	_, err := Parse("true true")
	if err == nil {
		t.Fatalf("expected an error on unconsumed trailing input")
	}
}

func TestParseRejectsUnexpectedToken(t *testing.T) {
	_, err := Parse("+")
	if err == nil {
		t.Fatalf("expected a parse error on an unrecognized token")
	}
}

func TestParseSpansCoverWholeConstruct(t *testing.T) {
	term := mustParse(t, "if true { 1 } else { 2 }")
	span := term.Span()
	if span.Start != 0 {
		t.Errorf("got span start %d, want 0", span.Start)
	}
	if span.End != len("if true { 1 } else { 2 }") {
		t.Errorf("got span end %d, want %d", span.End, len("if true { 1 } else { 2 }"))
	}
}
