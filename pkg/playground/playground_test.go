package playground

import (
	"testing"

	"github.com/funvibe/substructural/internal/evaluator"
)

func TestParseReturnsTermDTO(t *testing.T) {
	res := Parse("if true { 1 } else { 2 }")
	if res.Error != nil {
		t.Fatalf("unexpected error: %+v", res.Error)
	}
	if res.Term == nil || res.Term.Kind != "conditional" {
		t.Fatalf("got %+v, want a conditional term", res.Term)
	}
	if res.Term.Cond == nil || res.Term.Cond.Kind != "boolean" {
		t.Errorf("got Cond %+v, want a boolean", res.Term.Cond)
	}
}

func TestParseReportsErrorDTO(t *testing.T) {
	res := Parse("true true")
	if res.Error == nil {
		t.Fatalf("expected an error for unconsumed trailing input")
	}
	if res.Error.Kind != "ParseError" {
		t.Errorf("got kind %q, want ParseError", res.Error.Kind)
	}
	if res.Term != nil {
		t.Errorf("expected no term alongside a parse error")
	}
}

func TestTypeCheckFlattensSpanMap(t *testing.T) {
	parsed := Parse("$5")
	if parsed.Error != nil {
		t.Fatalf("unexpected error: %+v", parsed.Error)
	}
	res := TypeCheck(parsed.Term, TypeCheckOptions{})
	if res.Error != nil {
		t.Fatalf("unexpected error: %+v", res.Error)
	}
	if len(res.Types) != 1 {
		t.Fatalf("got %d type entries, want 1", len(res.Types))
	}
	if res.Types[0].Type.Qualifier != "linear" || res.Types[0].Type.Kind != "int" {
		t.Errorf("got %+v, want a linear int", res.Types[0].Type)
	}
}

func TestTypeCheckOmitsApplicationsByDefault(t *testing.T) {
	src := "(|x: int| x)(1)"
	res := Parse(src)
	if res.Error != nil {
		t.Fatalf("unexpected error: %+v", res.Error)
	}
	rootSpan := res.Term.Span

	checked := TypeCheck(res.Term, TypeCheckOptions{})
	if checked.Error != nil {
		t.Fatalf("unexpected error: %+v", checked.Error)
	}
	for _, e := range checked.Types {
		if e.Span == rootSpan {
			t.Fatalf("expected the Application's own span to be omitted by default, found %+v", e)
		}
	}

	included := TypeCheck(res.Term, TypeCheckOptions{IncludeApplications: true})
	if included.Error != nil {
		t.Fatalf("unexpected error: %+v", included.Error)
	}
	found := false
	for _, e := range included.Types {
		if e.Span == rootSpan {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected the Application's own span to be present when IncludeApplications is set")
	}
}

func TestTypeCheckReportsTypeErrorDTO(t *testing.T) {
	parsed := Parse("x")
	if parsed.Error != nil {
		t.Fatalf("unexpected error: %+v", parsed.Error)
	}
	res := TypeCheck(parsed.Term, TypeCheckOptions{})
	if res.Error == nil {
		t.Fatalf("expected a type error for an undefined variable")
	}
	if res.Error.Kind != "TypeError" {
		t.Errorf("got kind %q, want TypeError", res.Error.Kind)
	}
}

func TestNewConfigurationAndStepDriveToAValue(t *testing.T) {
	cfg, cerr := NewConfiguration("if true { 1 } else { 2 }", evaluator.DefaultConfig())
	if cerr != nil {
		t.Fatalf("unexpected error: %+v", cerr)
	}

	// A host drives a program forward by feeding each call's Configuration
	// straight back into the next Step call, never touching internal types.
	var res StepResult
	reached := false
	for i := 0; i < 10; i++ {
		res = Step(cfg)
		if res.Error != nil {
			t.Fatalf("Step: unexpected error: %+v", res.Error)
		}
		cfg = *res.Configuration
		if res.IsValue {
			reached = true
			break
		}
	}
	if !reached {
		t.Fatalf("expected to reach a value within 10 steps")
	}
	if cfg.Term == nil || cfg.Term.Kind != "integer" || cfg.Term.Int == nil || *cfg.Term.Int != 1 {
		t.Fatalf("got final term %+v, want the integer 1", cfg.Term)
	}
}

func TestStepRoundTripsThroughDTOEncoding(t *testing.T) {
	cfg, cerr := NewConfiguration("$5", evaluator.DefaultConfig())
	if cerr != nil {
		t.Fatalf("unexpected error: %+v", cerr)
	}

	res := Step(cfg)
	if res.Error != nil {
		t.Fatalf("unexpected error: %+v", res.Error)
	}
	if len(res.Configuration.Store) != 1 {
		t.Fatalf("expected one store entry after boxing, got %d", len(res.Configuration.Store))
	}
	if res.Configuration.Counter == 0 {
		t.Fatalf("expected the fresh-name counter to advance past zero")
	}

	// Decode once more through DTOToConfiguration, simulating a host that
	// actually serialized the DTO to JSON and back, then keep stepping.
	decoded, derr := DTOToConfiguration(*res.Configuration)
	if derr != nil {
		t.Fatalf("unexpected error decoding: %+v", derr)
	}
	if decoded.Store.Counter() != res.Configuration.Counter {
		t.Fatalf("got counter %d after decode, want %d", decoded.Store.Counter(), res.Configuration.Counter)
	}

	final := configurationDTO(decoded)
	res2 := Step(final)
	if res2.Error != nil {
		t.Fatalf("unexpected error: %+v", res2.Error)
	}
	if !res2.IsValue {
		t.Fatalf("expected $5 to unbox to a value on the second step")
	}
	if len(res2.Configuration.Store) != 0 {
		t.Fatalf("expected the store empty after unboxing, got %d entries", len(res2.Configuration.Store))
	}
}

func TestPrettifyRoundTripsCanonicalSource(t *testing.T) {
	res := Prettify("if true {1} else {2}", 80)
	if res.Error != nil {
		t.Fatalf("unexpected error: %+v", res.Error)
	}
	res2 := Prettify(res.Source, 80)
	if res2.Error != nil {
		t.Fatalf("unexpected error on reparse: %+v", res2.Error)
	}
	if res2.Source != res.Source {
		t.Errorf("got %q, want a fixpoint with %q", res2.Source, res.Source)
	}
}
