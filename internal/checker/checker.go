// Package checker implements the linear type checker: it walks an ast.Term
// tree under a typing context that models resource availability (linear
// entries are removed on use), producing either a span->Type map or the
// first TypeError encountered. There is no recovery: the first error
// aborts the traversal.
package checker

import (
	"github.com/funvibe/substructural/internal/ast"
	"github.com/funvibe/substructural/internal/diagnostics"
	"github.com/funvibe/substructural/internal/typesystem"
)

// Options controls policy decisions the checker's algorithm leaves open.
type Options struct {
	// IncludeApplications controls whether Application nodes also get an
	// entry in the output map. Defaults to false: an Application's type is
	// always its Fun's codomain, so recording it again is redundant unless
	// a caller specifically wants every node annotated.
	IncludeApplications bool
}

// context is the typing context Γ: a mapping from in-scope names to their
// Types. It is mutated in place as the traversal consumes linear entries —
// there is exactly one context per check, never shared across goroutines.
type context map[string]typesystem.Type

func (c context) clone() context {
	out := make(context, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

func (c context) equal(other context) bool {
	if len(c) != len(other) {
		return false
	}
	for k, v := range c {
		v2, ok := other[k]
		if !ok || !v.Equal(v2) {
			return false
		}
	}
	return true
}

// Check type-checks term under the linear discipline and returns a mapping
// from span to Type for every type-bearing subexpression (Application
// nodes excluded unless opts.IncludeApplications is set).
func Check(term ast.Term, opts Options) (map[ast.Span]typesystem.Type, *diagnostics.Error) {
	typeMap := make(map[ast.Span]typesystem.Type)
	gamma := make(context)
	if _, err := check(term, gamma, typeMap, opts); err != nil {
		return nil, err
	}
	return typeMap, nil
}

func check(term ast.Term, gamma context, typeMap map[ast.Span]typesystem.Type, opts Options) (typesystem.Type, *diagnostics.Error) {
	var (
		result  typesystem.Type
		recordable = true
	)

	switch t := term.(type) {
	case *ast.Variable:
		ty, ok := gamma[t.Name]
		if !ok {
			return typesystem.Type{}, diagnostics.NewTypeError(t.Span(), "undefined variable: %s", t.Name)
		}
		if ty.Qualifier == typesystem.Linear {
			delete(gamma, t.Name)
		}
		result = ty

	case *ast.Boolean:
		result = typesystem.NewType(t.Qualifier, typesystem.Bool())

	case *ast.Integer:
		result = typesystem.NewType(t.Qualifier, typesystem.Int())

	case *ast.Conditional:
		condType, err := check(t.Cond, gamma, typeMap, opts)
		if err != nil {
			return typesystem.Type{}, err
		}
		if condType.Pretype.Kind != typesystem.KindBool {
			return typesystem.Type{}, diagnostics.NewTypeError(t.Cond.Span(), "expected Bool condition, got %s", condType.Pretype)
		}

		gammaAlt := gamma.clone()
		thenType, err := check(t.Then, gamma, typeMap, opts)
		if err != nil {
			return typesystem.Type{}, err
		}
		elseType, err := check(t.Else, gammaAlt, typeMap, opts)
		if err != nil {
			return typesystem.Type{}, err
		}
		if !gamma.equal(gammaAlt) {
			return typesystem.Type{}, diagnostics.NewTypeError(t.Span(), "variables are consumed differently in different branches")
		}
		if !thenType.Equal(elseType) {
			return typesystem.Type{}, diagnostics.NewTypeError(t.Span(), "branch types differ: %s vs %s", thenType, elseType)
		}
		result = thenType

	case *ast.Abstraction:
		if !t.HasType {
			return typesystem.Type{}, diagnostics.NewTypeError(t.Span(), "unknown term: abstraction has no parameter type annotation")
		}
		gamma0 := gamma.clone()
		gamma[t.Param] = t.ParamType
		bodyType, err := check(t.Body, gamma, typeMap, opts)
		if err != nil {
			return typesystem.Type{}, err
		}
		if t.ParamType.Qualifier == typesystem.Linear {
			if _, stillBound := gamma[t.Param]; stillBound {
				return typesystem.Type{}, diagnostics.NewTypeError(t.Span(), "linear variable %s not consumed in function body", t.Param)
			}
		}
		delete(gamma, t.Param)
		if t.Qualifier == typesystem.Unrestricted && !gamma.equal(gamma0) {
			return typesystem.Type{}, diagnostics.NewTypeError(t.Span(), "free linear variable referenced in unrestricted closure")
		}
		result = typesystem.NewType(t.Qualifier, typesystem.Function(t.ParamType, bodyType))

	case *ast.Application:
		recordable = opts.IncludeApplications
		funType, err := check(t.Fun, gamma, typeMap, opts)
		if err != nil {
			return typesystem.Type{}, err
		}
		argType, err := check(t.Arg, gamma, typeMap, opts)
		if err != nil {
			return typesystem.Type{}, err
		}
		in, out, ok := funType.IsFunction()
		if !ok {
			return typesystem.Type{}, diagnostics.NewTypeError(t.Fun.Span(), "expected a function, got %s", funType)
		}
		if !in.Equal(argType) {
			return typesystem.Type{}, diagnostics.NewTypeError(t.Arg.Span(), "expected argument of type %s, got %s", in, argType)
		}
		result = out

	case *ast.Let:
		valType, err := check(t.Value, gamma, typeMap, opts)
		if err != nil {
			return typesystem.Type{}, err
		}
		gamma[t.Name] = valType
		bodyType, err := check(t.Body, gamma, typeMap, opts)
		if err != nil {
			return typesystem.Type{}, err
		}
		if valType.Qualifier == typesystem.Linear {
			if _, stillBound := gamma[t.Name]; stillBound {
				return typesystem.Type{}, diagnostics.NewTypeError(t.Span(), "linear variable %s not consumed in let body", t.Name)
			}
		}
		delete(gamma, t.Name)
		result = bodyType

	case *ast.Fix:
		innerType, err := check(t.Operand, gamma, typeMap, opts)
		if err != nil {
			return typesystem.Type{}, err
		}
		in, out, ok := innerType.IsFunction()
		if !ok || !in.Equal(out) {
			return typesystem.Type{}, diagnostics.NewTypeError(t.Span(), "expected Function T -> T, got %s", innerType)
		}
		if innerType.Qualifier == typesystem.Linear || in.Qualifier == typesystem.Linear {
			return typesystem.Type{}, diagnostics.NewTypeError(t.Span(), "linear term is not allowed for recursion")
		}
		result = in

	case *ast.Compound:
		gamma0 := gamma.clone()
		firstType, err := check(t.First, gamma, typeMap, opts)
		if err != nil {
			return typesystem.Type{}, err
		}
		if t.Qualifier == typesystem.Unrestricted && !gamma.equal(gamma0) {
			return typesystem.Type{}, diagnostics.NewTypeError(t.Span(), "free linear variable referenced in unrestricted compound pair")
		}
		gamma0 = gamma.clone()
		secondType, err := check(t.Second, gamma, typeMap, opts)
		if err != nil {
			return typesystem.Type{}, err
		}
		if t.Qualifier == typesystem.Unrestricted && !gamma.equal(gamma0) {
			return typesystem.Type{}, diagnostics.NewTypeError(t.Span(), "free linear variable referenced in unrestricted compound pair")
		}
		result = typesystem.NewType(t.Qualifier, typesystem.CompoundOf(firstType, secondType))

	case *ast.Letc:
		if t.Name1 == t.Name2 {
			return typesystem.Type{}, diagnostics.NewTypeError(t.Span(), "expected different identifiers, got %s twice", t.Name1)
		}
		valType, err := check(t.Value, gamma, typeMap, opts)
		if err != nil {
			return typesystem.Type{}, err
		}
		first, second, ok := valType.IsCompound()
		if !ok {
			return typesystem.Type{}, diagnostics.NewTypeError(t.Value.Span(), "expected a compound, got %s", valType)
		}
		gamma[t.Name1] = first
		gamma[t.Name2] = second
		bodyType, err := check(t.Body, gamma, typeMap, opts)
		if err != nil {
			return typesystem.Type{}, err
		}
		for _, bound := range []struct {
			name string
			q    typesystem.Qualifier
		}{{t.Name1, first.Qualifier}, {t.Name2, second.Qualifier}} {
			if bound.q == typesystem.Linear {
				if _, stillBound := gamma[bound.name]; stillBound {
					return typesystem.Type{}, diagnostics.NewTypeError(t.Span(), "linear variable %s not consumed in let body", bound.name)
				}
			}
		}
		delete(gamma, t.Name1)
		delete(gamma, t.Name2)
		result = bodyType

	case *ast.Arith1:
		operandType, err := check(t.Operand, gamma, typeMap, opts)
		if err != nil {
			return typesystem.Type{}, err
		}
		if operandType.Pretype.Kind != typesystem.KindInt {
			return typesystem.Type{}, diagnostics.NewTypeError(t.Operand.Span(), "expected Int, got %s", operandType.Pretype)
		}
		result = typesystem.NewType(t.Qualifier, typesystem.Bool())

	case *ast.Arith2:
		leftType, err := check(t.Left, gamma, typeMap, opts)
		if err != nil {
			return typesystem.Type{}, err
		}
		rightType, err := check(t.Right, gamma, typeMap, opts)
		if err != nil {
			return typesystem.Type{}, err
		}
		if leftType.Pretype.Kind != typesystem.KindInt || rightType.Pretype.Kind != typesystem.KindInt {
			return typesystem.Type{}, diagnostics.NewTypeError(t.Span(), "expected Ints, got %s and %s", leftType.Pretype, rightType.Pretype)
		}
		result = typesystem.NewType(t.Qualifier, typesystem.Int())

	default:
		return typesystem.Type{}, diagnostics.NewTypeError(term.Span(), "unknown term")
	}

	if recordable {
		typeMap[term.Span()] = result
	}
	return result, nil
}
