package evaluator

import "github.com/funvibe/substructural/internal/ast"

// substVar replaces free occurrences of the variable named x with the
// variable named y, stopping at any binder that shadows x. Application
// and Fix only ever substitute a fresh store-minted name for a bound
// parameter, so renaming never has to carry a whole term under a
// binder — capture can't happen because nothing but a name is ever
// substituted in.
func substVar(term ast.Term, x, y string) ast.Term {
	switch t := term.(type) {
	case *ast.Variable:
		if t.Name == x {
			return ast.NewVariable(t.Span(), y)
		}
		return t

	case *ast.Boolean, *ast.Integer:
		return term

	case *ast.Compound:
		return ast.NewCompound(t.Span(), t.Qualifier, substVar(t.First, x, y), substVar(t.Second, x, y))

	case *ast.Arith1:
		return ast.NewArith1(t.Span(), t.Qualifier, t.Op, substVar(t.Operand, x, y))

	case *ast.Arith2:
		return ast.NewArith2(t.Span(), t.Qualifier, t.Op, substVar(t.Left, x, y), substVar(t.Right, x, y))

	case *ast.Abstraction:
		if t.Param == x {
			return t
		}
		return ast.NewAbstraction(t.Span(), t.Qualifier, t.Param, t.ParamType, t.HasType, substVar(t.Body, x, y))

	case *ast.Application:
		return ast.NewApplication(t.Span(), substVar(t.Fun, x, y), substVar(t.Arg, x, y))

	case *ast.Conditional:
		return ast.NewConditional(t.Span(), substVar(t.Cond, x, y), substVar(t.Then, x, y), substVar(t.Else, x, y))

	case *ast.Fix:
		return ast.NewFix(t.Span(), substVar(t.Operand, x, y))

	case *ast.Let:
		newValue := substVar(t.Value, x, y)
		newBody := t.Body
		if t.Name != x {
			newBody = substVar(t.Body, x, y)
		}
		return ast.NewLet(t.Span(), t.Name, newValue, newBody)

	case *ast.Letc:
		newValue := substVar(t.Value, x, y)
		newBody := t.Body
		if t.Name1 != x && t.Name2 != x {
			newBody = substVar(t.Body, x, y)
		}
		return ast.NewLetc(t.Span(), t.Name1, t.Name2, newValue, newBody)

	default:
		return term
	}
}
