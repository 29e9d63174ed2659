package ast

import "github.com/funvibe/substructural/internal/typesystem"

// ArithOp1 enumerates the unary primitive arithmetic operators.
type ArithOp1 int

const (
	IsZero ArithOp1 = iota
)

func (op ArithOp1) String() string { return "iszero" }

// ArithOp2 enumerates the binary primitive arithmetic operators.
type ArithOp2 int

const (
	Diff ArithOp2 = iota
)

func (op ArithOp2) String() string { return "diff" }

// Term is the base interface of every node in the term algebra. Nodes are
// immutable once constructed; the evaluator produces fresh trees rather
// than mutating existing ones.
type Term interface {
	Span() Span
	termNode()
}

// base carries the span every node stamps itself with; embedding it gives
// every concrete node its Span() method for free.
type base struct {
	span Span
}

func (b base) Span() Span { return b.span }
func (b base) termNode()  {}

// Variable is a reference to a binder: a λ-parameter, a fix self-reference,
// or a let/letc-bound name.
type Variable struct {
	base
	Name string
}

func NewVariable(span Span, name string) *Variable {
	return &Variable{base{span}, name}
}

// Boolean is a literal boolean value carrying its declared qualifier.
type Boolean struct {
	base
	Qualifier typesystem.Qualifier
	Value     bool
}

func NewBoolean(span Span, q typesystem.Qualifier, v bool) *Boolean {
	return &Boolean{base{span}, q, v}
}

// Integer is a literal 64-bit signed integer value carrying its declared
// qualifier.
type Integer struct {
	base
	Qualifier typesystem.Qualifier
	Value     int64
}

func NewInteger(span Span, q typesystem.Qualifier, v int64) *Integer {
	return &Integer{base{span}, q, v}
}

// Compound is the ordered-pair constructor.
type Compound struct {
	base
	Qualifier typesystem.Qualifier
	First     Term
	Second    Term
}

func NewCompound(span Span, q typesystem.Qualifier, t1, t2 Term) *Compound {
	return &Compound{base{span}, q, t1, t2}
}

// Arith1 applies a unary primitive arithmetic operator. The qualifier
// belongs to the *produced* value, not to the operand.
type Arith1 struct {
	base
	Qualifier typesystem.Qualifier
	Op        ArithOp1
	Operand   Term
}

func NewArith1(span Span, q typesystem.Qualifier, op ArithOp1, t Term) *Arith1 {
	return &Arith1{base{span}, q, op, t}
}

// Arith2 applies a binary primitive arithmetic operator.
type Arith2 struct {
	base
	Qualifier typesystem.Qualifier
	Op        ArithOp2
	Left      Term
	Right     Term
}

func NewArith2(span Span, q typesystem.Qualifier, op ArithOp2, t1, t2 Term) *Arith2 {
	return &Arith2{base{span}, q, op, t1, t2}
}

// Abstraction is λ-introduction. HasType is false when the source omitted
// the parameter annotation; the parser accepts that, but the checker
// rejects the resulting term as untypeable since it has no domain type to
// check the body against.
type Abstraction struct {
	base
	Qualifier typesystem.Qualifier
	Param     string
	ParamType typesystem.Type
	HasType   bool
	Body      Term
}

func NewAbstraction(span Span, q typesystem.Qualifier, param string, paramType typesystem.Type, hasType bool, body Term) *Abstraction {
	return &Abstraction{base{span}, q, param, paramType, hasType, body}
}

// Application is ordinary function application, f(a).
type Application struct {
	base
	Fun Term
	Arg Term
}

func NewApplication(span Span, fun, arg Term) *Application {
	return &Application{base{span}, fun, arg}
}

// Conditional is if-then-else.
type Conditional struct {
	base
	Cond Term
	Then Term
	Else Term
}

func NewConditional(span Span, cond, then, els Term) *Conditional {
	return &Conditional{base{span}, cond, then, els}
}

// Fix is the recursion combinator.
type Fix struct {
	base
	Operand Term
}

func NewFix(span Span, t Term) *Fix {
	return &Fix{base{span}, t}
}

// Let is monomorphic binding: let x = t1 in t2.
type Let struct {
	base
	Name  string
	Value Term
	Body  Term
}

func NewLet(span Span, name string, value, body Term) *Let {
	return &Let{base{span}, name, value, body}
}

// Letc is compound-destructuring binding: let <x1, x2> = t1 in t2.
type Letc struct {
	base
	Name1 string
	Name2 string
	Value Term
	Body  Term
}

func NewLetc(span Span, name1, name2 string, value, body Term) *Letc {
	return &Letc{base{span}, name1, name2, value, body}
}
