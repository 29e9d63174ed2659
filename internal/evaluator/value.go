package evaluator

import "github.com/funvibe/substructural/internal/ast"

func isVariable(term ast.Term) bool {
	_, ok := term.(*ast.Variable)
	return ok
}

// IsValue reports whether term is already in value form: a Boolean, an
// Integer, an Abstraction, or a Compound whose two components are each
// Variables. Driver loops (pipeline, cmd/playground) use this to decide
// when to stop calling Step, since Step itself always attempts a
// transition — including re-boxing an already-materialized literal into
// the store.
func IsValue(term ast.Term) bool {
	switch t := term.(type) {
	case *ast.Boolean, *ast.Integer, *ast.Abstraction:
		return true
	case *ast.Compound:
		return isVariable(t.First) && isVariable(t.Second)
	default:
		return false
	}
}
