// Package evaluator implements the small-step reducer: a (Store, Term)
// configuration that Step advances by exactly one reduction rule. The
// store is the evaluator's runtime heap: qualifier-sensitive lookup
// extracts (removes) linear values and reads (clones) unrestricted
// ones. It is not a garbage-collected heap — entries are only ever removed
// by explicit consumption, never reclaimed for being unreachable.
package evaluator

import (
	"fmt"

	"github.com/funvibe/substructural/internal/ast"
	"github.com/funvibe/substructural/internal/typesystem"
)

// Store maps fresh, evaluator-minted names to the values introduced under
// them. Two fresh-name families are minted under different prefixes,
// both reserving a leading '%' so a minted name can never collide with a
// name that appeared in source. Both families draw their numbers from the
// one shared counter, so no two minted names share a number.
type Store struct {
	bindings map[string]ast.Term
	counter  uint64

	// ValuePrefix and ClosurePrefix name the two fresh-variable families the
	// evaluator mints: one for ordinary heap-allocated values (`%x` by
	// default) and one for Fix's self-reference cells (`%f` by default).
	// Both are configurable per internal/config, so two playground
	// sessions sharing output never collide.
	ValuePrefix   string
	ClosurePrefix string
}

// NewStore returns an empty store using the default fresh-name
// prefixes.
func NewStore() *Store {
	return &Store{
		bindings:      make(map[string]ast.Term),
		ValuePrefix:   "%x",
		ClosurePrefix: "%f",
	}
}

// Len reports the number of live bindings, exposed so callers (and tests)
// can check that no Linear entries outlive the program that owned them.
func (s *Store) Len() int { return len(s.bindings) }

// Entries returns a snapshot of the live bindings, for inspection and
// serialization. The returned map is a copy; mutating it does not affect
// the store.
func (s *Store) Entries() map[string]ast.Term {
	out := make(map[string]ast.Term, len(s.bindings))
	for k, v := range s.bindings {
		out[k] = v
	}
	return out
}

// Counter returns the current fresh-name counter, for serialization.
func (s *Store) Counter() uint64 { return s.counter }

// RestoreStore rebuilds a Store from previously serialized state: the
// live bindings, the fresh-name counter, and the prefixes it was minting
// names under. A host decoding a ConfigurationDTO off the wire uses this
// to hand the evaluator a Store indistinguishable from the one that
// produced the DTO, so freshValue/freshClosure keep minting names that
// never collide with ones already in bindings.
func RestoreStore(bindings map[string]ast.Term, counter uint64, valuePrefix, closurePrefix string) *Store {
	restored := make(map[string]ast.Term, len(bindings))
	for k, v := range bindings {
		restored[k] = v
	}
	return &Store{
		bindings:      restored,
		counter:       counter,
		ValuePrefix:   valuePrefix,
		ClosurePrefix: closurePrefix,
	}
}

// qualifierOf reports the qualifier a store entry should be treated with.
// Boolean, Integer and Abstraction carry their own; a Compound counts only
// once both its components have been reduced to Variables (value form).
// A Fix self-reference cell (see stepFixTerm) is not itself a
// value, but behaves as Unrestricted in the store: the checker only lets
// Fix close over Unrestricted functions, and recursive calls must be able
// to read the same cell more than once.
func qualifierOf(value ast.Term) (typesystem.Qualifier, bool) {
	switch v := value.(type) {
	case *ast.Boolean:
		return v.Qualifier, true
	case *ast.Integer:
		return v.Qualifier, true
	case *ast.Abstraction:
		return v.Qualifier, true
	case *ast.Compound:
		if isVariable(v.First) && isVariable(v.Second) {
			return v.Qualifier, true
		}
		return 0, false
	case *ast.Fix:
		return typesystem.Unrestricted, true
	default:
		return 0, false
	}
}

// push inserts value under name. value must be store-able: a Boolean,
// Integer, Abstraction, a Compound of two Variables, or a Fix self-
// reference cell.
func (s *Store) push(name string, value ast.Term) {
	if _, ok := qualifierOf(value); !ok {
		panic(fmt.Sprintf("evaluator: store.push given non-value %T", value))
	}
	s.bindings[name] = value
}

// pushRaw inserts value under name without the value-shape check. Kept
// separate from push for the rare case a caller already knows the shape
// is intentionally unusual; push now accepts Fix cells directly so
// ordinary evaluator code should prefer it.
func (s *Store) pushRaw(name string, value ast.Term) {
	s.bindings[name] = value
}

// extract looks a name up with qualifier-sensitive semantics: a Linear
// value is removed and returned, an Unrestricted value (including a Fix
// self-reference cell) is left in place and returned. Reports false if
// name is not bound.
func (s *Store) extract(name string) (ast.Term, bool) {
	value, ok := s.bindings[name]
	if !ok {
		return nil, false
	}
	if q, isValue := qualifierOf(value); isValue && q == typesystem.Unrestricted {
		return value, true
	}
	delete(s.bindings, name)
	return value, true
}

// peek looks a name up without consuming it, used only to inspect a Fix
// cell before deciding how to step it.
func (s *Store) peek(name string) (ast.Term, bool) {
	value, ok := s.bindings[name]
	return value, ok
}

func (s *Store) freshValue() string {
	s.counter++
	return fmt.Sprintf("%s%d", s.ValuePrefix, s.counter)
}

func (s *Store) freshClosure() string {
	s.counter++
	return fmt.Sprintf("%s%d", s.ClosurePrefix, s.counter)
}
