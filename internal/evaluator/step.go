package evaluator

import (
	"github.com/funvibe/substructural/internal/ast"
	"github.com/funvibe/substructural/internal/diagnostics"
)

// allocate mints a fresh name, stores value under it, and returns a
// Variable referencing it. value must already satisfy qualifierOf (a
// Boolean, Integer, Abstraction, or Compound of two Variables).
func allocate(store *Store, value ast.Term) (ast.Term, *diagnostics.Error) {
	name := store.freshValue()
	store.push(name, value)
	return ast.NewVariable(value.Span(), name), nil
}

// Step advances a (store, term) configuration by exactly one reduction
// rule. It always attempts a transition, even when term is already in
// value form — stepping a bare literal boxes it into the store, and
// stepping the resulting Variable unboxes it again; callers that want to
// stop once a value has been reached should check IsValue themselves
// rather than relying on Step to no-op.
func Step(store *Store, term ast.Term) (ast.Term, *diagnostics.Error) {
	switch t := term.(type) {
	case *ast.Boolean, *ast.Integer, *ast.Abstraction:
		return allocate(store, t)

	case *ast.Compound:
		if isVariable(t.First) && isVariable(t.Second) {
			return allocate(store, t)
		}
		if !isVariable(t.First) {
			newFirst, err := Step(store, t.First)
			if err != nil {
				return nil, err
			}
			return ast.NewCompound(t.Span(), t.Qualifier, newFirst, t.Second), nil
		}
		newSecond, err := Step(store, t.Second)
		if err != nil {
			return nil, err
		}
		return ast.NewCompound(t.Span(), t.Qualifier, t.First, newSecond), nil

	case *ast.Variable:
		value, ok := store.extract(t.Name)
		if !ok {
			return nil, diagnostics.NewEvalError(t.Span(), "variable not found in store: %s", t.Name)
		}
		return value, nil

	case *ast.Conditional:
		return stepConditional(store, t)

	case *ast.Application:
		return stepApplication(store, t)

	case *ast.Let:
		if v, ok := t.Value.(*ast.Variable); ok {
			return substVar(t.Body, t.Name, v.Name), nil
		}
		newValue, err := Step(store, t.Value)
		if err != nil {
			return nil, err
		}
		return ast.NewLet(t.Span(), t.Name, newValue, t.Body), nil

	case *ast.Letc:
		return stepLetc(store, t)

	case *ast.Fix:
		return stepFixTerm(store, t)

	case *ast.Arith1:
		return stepArith1(store, t)

	case *ast.Arith2:
		return stepArith2(store, t)

	default:
		return nil, diagnostics.NewEvalError(term.Span(), "cannot step term of type %T", term)
	}
}

// resolveOrCarryFix extracts name from the store. If it holds an ordinary
// value, that value is returned as-is. If it holds an unreduced Fix
// self-reference cell, the cell is advanced by one step and the resulting
// term (always a Variable) is returned instead — callers thread this back
// into the position the Variable came from rather than finishing their
// own rule this step.
func resolveOrCarryFix(store *Store, name string, span ast.Span) (ast.Term, *diagnostics.Error) {
	value, ok := store.extract(name)
	if !ok {
		return nil, diagnostics.NewEvalError(span, "variable not found in store: %s", name)
	}
	if fixTerm, isFix := value.(*ast.Fix); isFix {
		return stepFixTerm(store, fixTerm)
	}
	return value, nil
}

func stepConditional(store *Store, t *ast.Conditional) (ast.Term, *diagnostics.Error) {
	v, ok := t.Cond.(*ast.Variable)
	if !ok {
		newCond, err := Step(store, t.Cond)
		if err != nil {
			return nil, err
		}
		return ast.NewConditional(t.Span(), newCond, t.Then, t.Else), nil
	}

	resolved, err := resolveOrCarryFix(store, v.Name, t.Cond.Span())
	if err != nil {
		return nil, err
	}
	switch r := resolved.(type) {
	case *ast.Boolean:
		if r.Value {
			return t.Then, nil
		}
		return t.Else, nil
	case *ast.Variable:
		return ast.NewConditional(t.Span(), r, t.Then, t.Else), nil
	default:
		return nil, diagnostics.NewEvalError(t.Cond.Span(), "expected a boolean, got %T", resolved)
	}
}

func stepApplication(store *Store, t *ast.Application) (ast.Term, *diagnostics.Error) {
	v1, ok := t.Fun.(*ast.Variable)
	if !ok {
		newFun, err := Step(store, t.Fun)
		if err != nil {
			return nil, err
		}
		return ast.NewApplication(t.Span(), newFun, t.Arg), nil
	}

	v2, ok := t.Arg.(*ast.Variable)
	if !ok {
		newArg, err := Step(store, t.Arg)
		if err != nil {
			return nil, err
		}
		return ast.NewApplication(t.Span(), t.Fun, newArg), nil
	}

	resolved, err := resolveOrCarryFix(store, v1.Name, t.Fun.Span())
	if err != nil {
		return nil, err
	}
	switch r := resolved.(type) {
	case *ast.Abstraction:
		return substVar(r.Body, r.Param, v2.Name), nil
	case *ast.Variable:
		return ast.NewApplication(t.Span(), r, t.Arg), nil
	default:
		return nil, diagnostics.NewEvalError(t.Fun.Span(), "expected an abstraction, got %T", resolved)
	}
}

func stepLetc(store *Store, t *ast.Letc) (ast.Term, *diagnostics.Error) {
	v, ok := t.Value.(*ast.Variable)
	if !ok {
		newValue, err := Step(store, t.Value)
		if err != nil {
			return nil, err
		}
		return ast.NewLetc(t.Span(), t.Name1, t.Name2, newValue, t.Body), nil
	}

	value, ok := store.extract(v.Name)
	if !ok {
		return nil, diagnostics.NewEvalError(t.Value.Span(), "variable not found in store: %s", v.Name)
	}
	compound, ok := value.(*ast.Compound)
	if !ok {
		return nil, diagnostics.NewEvalError(t.Value.Span(), "expected a compound, got %T", value)
	}
	first, ok1 := compound.First.(*ast.Variable)
	second, ok2 := compound.Second.(*ast.Variable)
	if !ok1 || !ok2 {
		return nil, diagnostics.NewEvalError(t.Value.Span(), "expected a compound of two variables")
	}
	body := substVar(t.Body, t.Name1, first.Name)
	body = substVar(body, t.Name2, second.Name)
	return body, nil
}

// stepFixTerm advances Fix(Abstraction(...)). If the abstraction's own
// parameter is already bound in the store, the knot is already tied and
// stepping just unfolds one more layer of the abstraction's body.
// Otherwise this is the first time this recursive definition is reached:
// mint a fresh self-reference name and a fresh cell for the inner
// function, rewrite the body to call the self-reference by its new name,
// and store both.
func stepFixTerm(store *Store, t *ast.Fix) (ast.Term, *diagnostics.Error) {
	abs, ok := t.Operand.(*ast.Abstraction)
	if !ok {
		newOperand, err := Step(store, t.Operand)
		if err != nil {
			return nil, err
		}
		return ast.NewFix(t.Span(), newOperand), nil
	}

	if _, tied := store.peek(abs.Param); tied {
		return abs.Body, nil
	}

	selfName := store.freshClosure()
	cellName := store.freshValue()
	rewrittenBody := substVar(abs.Body, abs.Param, selfName)
	store.push(cellName, rewrittenBody)

	knot := ast.NewAbstraction(abs.Span(), abs.Qualifier, selfName, abs.ParamType, abs.HasType,
		ast.NewVariable(abs.Body.Span(), cellName))
	store.pushRaw(selfName, ast.NewFix(t.Span(), knot))

	return ast.NewVariable(t.Span(), cellName), nil
}

func stepArith1(store *Store, t *ast.Arith1) (ast.Term, *diagnostics.Error) {
	v, ok := t.Operand.(*ast.Variable)
	if !ok {
		newOperand, err := Step(store, t.Operand)
		if err != nil {
			return nil, err
		}
		return ast.NewArith1(t.Span(), t.Qualifier, t.Op, newOperand), nil
	}

	value, ok := store.extract(v.Name)
	if !ok {
		return nil, diagnostics.NewEvalError(t.Operand.Span(), "variable not found in store: %s", v.Name)
	}
	n, ok := value.(*ast.Integer)
	if !ok {
		return nil, diagnostics.NewEvalError(t.Operand.Span(), "expected an integer, got %T", value)
	}
	switch t.Op {
	case ast.IsZero:
		return ast.NewBoolean(t.Span(), t.Qualifier, n.Value == 0), nil
	default:
		return nil, diagnostics.NewInternalError("unknown unary arithmetic operator %s", t.Op)
	}
}

func stepArith2(store *Store, t *ast.Arith2) (ast.Term, *diagnostics.Error) {
	if !isVariable(t.Left) {
		newLeft, err := Step(store, t.Left)
		if err != nil {
			return nil, err
		}
		return ast.NewArith2(t.Span(), t.Qualifier, t.Op, newLeft, t.Right), nil
	}
	if !isVariable(t.Right) {
		newRight, err := Step(store, t.Right)
		if err != nil {
			return nil, err
		}
		return ast.NewArith2(t.Span(), t.Qualifier, t.Op, t.Left, newRight), nil
	}

	leftVar := t.Left.(*ast.Variable)
	rightVar := t.Right.(*ast.Variable)

	leftValue, ok := store.extract(leftVar.Name)
	if !ok {
		return nil, diagnostics.NewEvalError(t.Left.Span(), "variable not found in store: %s", leftVar.Name)
	}
	leftInt, ok := leftValue.(*ast.Integer)
	if !ok {
		return nil, diagnostics.NewEvalError(t.Left.Span(), "expected an integer, got %T", leftValue)
	}

	rightValue, ok := store.extract(rightVar.Name)
	if !ok {
		return nil, diagnostics.NewEvalError(t.Right.Span(), "variable not found in store: %s", rightVar.Name)
	}
	rightInt, ok := rightValue.(*ast.Integer)
	if !ok {
		return nil, diagnostics.NewEvalError(t.Right.Span(), "expected an integer, got %T", rightValue)
	}

	switch t.Op {
	case ast.Diff:
		// Wraps on overflow like any other Go int64 subtraction; the
		// language has no trapping arithmetic.
		return ast.NewInteger(t.Span(), t.Qualifier, leftInt.Value-rightInt.Value), nil
	default:
		return nil, diagnostics.NewInternalError("unknown binary arithmetic operator %s", t.Op)
	}
}
