// Package typesystem defines the type algebra: qualifiers, pretypes, and
// the full Type (qualifier × pretype) with structural equality. There is no
// inference and no unification — every type here is either written down by
// the programmer or built by the checker from already-known pieces.
package typesystem

import "fmt"

// Qualifier classifies a type (and the value it describes) as Unrestricted
// (may be copied and dropped freely) or Linear (must be used exactly once).
type Qualifier int

const (
	Unrestricted Qualifier = iota
	Linear
)

func (q Qualifier) String() string {
	if q == Linear {
		return "$"
	}
	return ""
}

// PretypeKind discriminates the shape of a Pretype, ignoring qualifier.
type PretypeKind int

const (
	KindBool PretypeKind = iota
	KindInt
	KindFunction
	KindCompound
)

// Pretype is the shape of a type, ignoring its qualifier. Function and
// Compound carry full Types (qualifier included) for their components.
type Pretype struct {
	Kind PretypeKind
	// Function
	In  Type
	Out Type
	// Compound
	First  Type
	Second Type
}

func Bool() Pretype { return Pretype{Kind: KindBool} }
func Int() Pretype  { return Pretype{Kind: KindInt} }

func Function(in, out Type) Pretype {
	return Pretype{Kind: KindFunction, In: in, Out: out}
}

func CompoundOf(first, second Type) Pretype {
	return Pretype{Kind: KindCompound, First: first, Second: second}
}

// Equal reports structural equality, ignoring nothing: nested qualifiers
// must match recursively too.
func (p Pretype) Equal(other Pretype) bool {
	if p.Kind != other.Kind {
		return false
	}
	switch p.Kind {
	case KindBool, KindInt:
		return true
	case KindFunction:
		return p.In.Equal(other.In) && p.Out.Equal(other.Out)
	case KindCompound:
		return p.First.Equal(other.First) && p.Second.Equal(other.Second)
	default:
		return false
	}
}

func (p Pretype) String() string {
	switch p.Kind {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFunction:
		return fmt.Sprintf("%s -> %s", p.In, p.Out)
	case KindCompound:
		return fmt.Sprintf("<%s, %s>", p.First, p.Second)
	default:
		return "?"
	}
}

// Type is a qualified pretype: (qualifier, pretype). Two types are equal
// iff qualifiers match and pretypes match recursively.
type Type struct {
	Qualifier Qualifier
	Pretype   Pretype
}

func NewType(q Qualifier, p Pretype) Type {
	return Type{Qualifier: q, Pretype: p}
}

func (t Type) Equal(other Type) bool {
	return t.Qualifier == other.Qualifier && t.Pretype.Equal(other.Pretype)
}

func (t Type) String() string {
	if t.Qualifier == Linear {
		return "$" + t.Pretype.String()
	}
	return t.Pretype.String()
}

// IsFunction reports whether t's pretype is Function, returning its parts.
func (t Type) IsFunction() (in, out Type, ok bool) {
	if t.Pretype.Kind != KindFunction {
		return Type{}, Type{}, false
	}
	return t.Pretype.In, t.Pretype.Out, true
}

// IsCompound reports whether t's pretype is Compound, returning its parts.
func (t Type) IsCompound() (first, second Type, ok bool) {
	if t.Pretype.Kind != KindCompound {
		return Type{}, Type{}, false
	}
	return t.Pretype.First, t.Pretype.Second, true
}
