// Package playground is the host-facing API: parse, type-check, one-step
// eval, and prettify, each taking and returning JSON-friendly data rather
// than this module's internal ast/typesystem/evaluator types directly.
// Hosts are expected to encoding/json.Marshal the returned DTOs and, for
// TypeCheck and Step, to decode a prior DTO back into the form the next
// call expects rather than holding onto internal values across a
// serialization boundary.
package playground

import (
	"github.com/funvibe/substructural/internal/ast"
	"github.com/funvibe/substructural/internal/checker"
	"github.com/funvibe/substructural/internal/diagnostics"
	"github.com/funvibe/substructural/internal/evaluator"
	"github.com/funvibe/substructural/internal/parser"
	"github.com/funvibe/substructural/internal/printer"
	"github.com/funvibe/substructural/internal/typesystem"
)

// Span is the JSON-visible form of ast.Span.
type Span struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

func spanDTO(s ast.Span) Span { return Span{Start: s.Start, End: s.End} }

// ErrorDTO is the JSON-visible form of a diagnostics.Error.
type ErrorDTO struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Span    *Span  `json:"span,omitempty"`
}

func errorDTO(err *diagnostics.Error) *ErrorDTO {
	if err == nil {
		return nil
	}
	dto := &ErrorDTO{Kind: string(err.Kind), Message: err.Message}
	if err.HasSpan {
		s := spanDTO(err.Span)
		dto.Span = &s
	}
	return dto
}

// TermDTO is the JSON-visible form of an ast.Term tree. Shape is
// discriminated by Kind; fields irrelevant to a given Kind are omitted.
type TermDTO struct {
	Kind string `json:"kind"`
	Span Span   `json:"span"`

	Name string `json:"name,omitempty"`

	Qualifier string `json:"qualifier,omitempty"`
	Bool      *bool  `json:"bool,omitempty"`
	Int       *int64 `json:"int,omitempty"`

	First  *TermDTO `json:"first,omitempty"`
	Second *TermDTO `json:"second,omitempty"`

	Op      string   `json:"op,omitempty"`
	Operand *TermDTO `json:"operand,omitempty"`
	Left    *TermDTO `json:"left,omitempty"`
	Right   *TermDTO `json:"right,omitempty"`

	Param     string    `json:"param,omitempty"`
	ParamType *TypeDTO  `json:"paramType,omitempty"`
	Body      *TermDTO  `json:"body,omitempty"`

	Fun *TermDTO `json:"fun,omitempty"`
	Arg *TermDTO `json:"arg,omitempty"`

	Cond *TermDTO `json:"cond,omitempty"`
	Then *TermDTO `json:"then,omitempty"`
	Else *TermDTO `json:"else,omitempty"`

	Name1 string   `json:"name1,omitempty"`
	Name2 string   `json:"name2,omitempty"`
	Value *TermDTO `json:"value,omitempty"`
}

func qualifierString(q typesystem.Qualifier) string {
	if q == typesystem.Linear {
		return "linear"
	}
	return "unrestricted"
}

func qualifierFromString(s string) (typesystem.Qualifier, *diagnostics.Error) {
	switch s {
	case "linear":
		return typesystem.Linear, nil
	case "unrestricted", "":
		return typesystem.Unrestricted, nil
	default:
		return 0, diagnostics.NewInternalError("unknown qualifier %q", s)
	}
}

func arithOp1FromString(s string) (ast.ArithOp1, *diagnostics.Error) {
	if s == ast.IsZero.String() {
		return ast.IsZero, nil
	}
	return 0, diagnostics.NewInternalError("unknown unary arithmetic operator %q", s)
}

func arithOp2FromString(s string) (ast.ArithOp2, *diagnostics.Error) {
	if s == ast.Diff.String() {
		return ast.Diff, nil
	}
	return 0, diagnostics.NewInternalError("unknown binary arithmetic operator %q", s)
}

// TermToDTO converts an ast.Term tree into its JSON-visible form.
func TermToDTO(term ast.Term) *TermDTO {
	if term == nil {
		return nil
	}
	switch t := term.(type) {
	case *ast.Variable:
		return &TermDTO{Kind: "variable", Span: spanDTO(t.Span()), Name: t.Name}
	case *ast.Boolean:
		v := t.Value
		return &TermDTO{Kind: "boolean", Span: spanDTO(t.Span()), Qualifier: qualifierString(t.Qualifier), Bool: &v}
	case *ast.Integer:
		v := t.Value
		return &TermDTO{Kind: "integer", Span: spanDTO(t.Span()), Qualifier: qualifierString(t.Qualifier), Int: &v}
	case *ast.Compound:
		return &TermDTO{Kind: "compound", Span: spanDTO(t.Span()), Qualifier: qualifierString(t.Qualifier), First: TermToDTO(t.First), Second: TermToDTO(t.Second)}
	case *ast.Arith1:
		return &TermDTO{Kind: "arith1", Span: spanDTO(t.Span()), Qualifier: qualifierString(t.Qualifier), Op: t.Op.String(), Operand: TermToDTO(t.Operand)}
	case *ast.Arith2:
		return &TermDTO{Kind: "arith2", Span: spanDTO(t.Span()), Qualifier: qualifierString(t.Qualifier), Op: t.Op.String(), Left: TermToDTO(t.Left), Right: TermToDTO(t.Right)}
	case *ast.Abstraction:
		dto := &TermDTO{Kind: "abstraction", Span: spanDTO(t.Span()), Qualifier: qualifierString(t.Qualifier), Param: t.Param, Body: TermToDTO(t.Body)}
		if t.HasType {
			ty := TypeToDTO(t.ParamType)
			dto.ParamType = &ty
		}
		return dto
	case *ast.Application:
		return &TermDTO{Kind: "application", Span: spanDTO(t.Span()), Fun: TermToDTO(t.Fun), Arg: TermToDTO(t.Arg)}
	case *ast.Conditional:
		return &TermDTO{Kind: "conditional", Span: spanDTO(t.Span()), Cond: TermToDTO(t.Cond), Then: TermToDTO(t.Then), Else: TermToDTO(t.Else)}
	case *ast.Fix:
		return &TermDTO{Kind: "fix", Span: spanDTO(t.Span()), Operand: TermToDTO(t.Operand)}
	case *ast.Let:
		return &TermDTO{Kind: "let", Span: spanDTO(t.Span()), Name: t.Name, Value: TermToDTO(t.Value), Body: TermToDTO(t.Body)}
	case *ast.Letc:
		return &TermDTO{Kind: "letc", Span: spanDTO(t.Span()), Name1: t.Name1, Name2: t.Name2, Value: TermToDTO(t.Value), Body: TermToDTO(t.Body)}
	default:
		return &TermDTO{Kind: "unknown", Span: spanDTO(term.Span())}
	}
}

// DTOToTerm rebuilds an ast.Term tree from its JSON-visible form, the
// reverse of TermToDTO. A host that decodes a TermDTO off the wire calls
// this before handing the tree to TypeCheck.
func DTOToTerm(dto *TermDTO) (ast.Term, *diagnostics.Error) {
	if dto == nil {
		return nil, diagnostics.NewInternalError("nil term")
	}
	span := ast.Span{Start: dto.Span.Start, End: dto.Span.End}

	switch dto.Kind {
	case "variable":
		return ast.NewVariable(span, dto.Name), nil

	case "boolean":
		q, qerr := qualifierFromString(dto.Qualifier)
		if qerr != nil {
			return nil, qerr
		}
		if dto.Bool == nil {
			return nil, diagnostics.NewInternalError("boolean term missing bool field")
		}
		return ast.NewBoolean(span, q, *dto.Bool), nil

	case "integer":
		q, qerr := qualifierFromString(dto.Qualifier)
		if qerr != nil {
			return nil, qerr
		}
		if dto.Int == nil {
			return nil, diagnostics.NewInternalError("integer term missing int field")
		}
		return ast.NewInteger(span, q, *dto.Int), nil

	case "compound":
		q, qerr := qualifierFromString(dto.Qualifier)
		if qerr != nil {
			return nil, qerr
		}
		first, ferr := DTOToTerm(dto.First)
		if ferr != nil {
			return nil, ferr
		}
		second, serr := DTOToTerm(dto.Second)
		if serr != nil {
			return nil, serr
		}
		return ast.NewCompound(span, q, first, second), nil

	case "arith1":
		q, qerr := qualifierFromString(dto.Qualifier)
		if qerr != nil {
			return nil, qerr
		}
		op, operr := arithOp1FromString(dto.Op)
		if operr != nil {
			return nil, operr
		}
		operand, oerr := DTOToTerm(dto.Operand)
		if oerr != nil {
			return nil, oerr
		}
		return ast.NewArith1(span, q, op, operand), nil

	case "arith2":
		q, qerr := qualifierFromString(dto.Qualifier)
		if qerr != nil {
			return nil, qerr
		}
		op, operr := arithOp2FromString(dto.Op)
		if operr != nil {
			return nil, operr
		}
		left, lerr := DTOToTerm(dto.Left)
		if lerr != nil {
			return nil, lerr
		}
		right, rerr := DTOToTerm(dto.Right)
		if rerr != nil {
			return nil, rerr
		}
		return ast.NewArith2(span, q, op, left, right), nil

	case "abstraction":
		q, qerr := qualifierFromString(dto.Qualifier)
		if qerr != nil {
			return nil, qerr
		}
		body, berr := DTOToTerm(dto.Body)
		if berr != nil {
			return nil, berr
		}
		var paramType typesystem.Type
		if dto.ParamType != nil {
			pt, perr := DTOToType(*dto.ParamType)
			if perr != nil {
				return nil, perr
			}
			paramType = pt
		}
		return ast.NewAbstraction(span, q, dto.Param, paramType, dto.ParamType != nil, body), nil

	case "application":
		fun, ferr := DTOToTerm(dto.Fun)
		if ferr != nil {
			return nil, ferr
		}
		arg, aerr := DTOToTerm(dto.Arg)
		if aerr != nil {
			return nil, aerr
		}
		return ast.NewApplication(span, fun, arg), nil

	case "conditional":
		cond, cerr := DTOToTerm(dto.Cond)
		if cerr != nil {
			return nil, cerr
		}
		then, terr := DTOToTerm(dto.Then)
		if terr != nil {
			return nil, terr
		}
		els, eerr := DTOToTerm(dto.Else)
		if eerr != nil {
			return nil, eerr
		}
		return ast.NewConditional(span, cond, then, els), nil

	case "fix":
		operand, operr := DTOToTerm(dto.Operand)
		if operr != nil {
			return nil, operr
		}
		return ast.NewFix(span, operand), nil

	case "let":
		value, verr := DTOToTerm(dto.Value)
		if verr != nil {
			return nil, verr
		}
		body, berr := DTOToTerm(dto.Body)
		if berr != nil {
			return nil, berr
		}
		return ast.NewLet(span, dto.Name, value, body), nil

	case "letc":
		value, verr := DTOToTerm(dto.Value)
		if verr != nil {
			return nil, verr
		}
		body, berr := DTOToTerm(dto.Body)
		if berr != nil {
			return nil, berr
		}
		return ast.NewLetc(span, dto.Name1, dto.Name2, value, body), nil

	default:
		return nil, diagnostics.NewInternalError("unknown term kind %q", dto.Kind)
	}
}

// TypeDTO is the JSON-visible form of a typesystem.Type.
type TypeDTO struct {
	Qualifier string   `json:"qualifier"`
	Kind      string   `json:"kind"`
	In        *TypeDTO `json:"in,omitempty"`
	Out       *TypeDTO `json:"out,omitempty"`
	First     *TypeDTO `json:"first,omitempty"`
	Second    *TypeDTO `json:"second,omitempty"`
}

var pretypeKindNames = map[typesystem.PretypeKind]string{
	typesystem.KindBool:     "bool",
	typesystem.KindInt:      "int",
	typesystem.KindFunction: "function",
	typesystem.KindCompound: "compound",
}

// TypeToDTO converts a typesystem.Type into its JSON-visible form.
func TypeToDTO(t typesystem.Type) TypeDTO {
	dto := TypeDTO{Qualifier: qualifierString(t.Qualifier), Kind: pretypeKindNames[t.Pretype.Kind]}
	switch t.Pretype.Kind {
	case typesystem.KindFunction:
		in := TypeToDTO(t.Pretype.In)
		out := TypeToDTO(t.Pretype.Out)
		dto.In, dto.Out = &in, &out
	case typesystem.KindCompound:
		first := TypeToDTO(t.Pretype.First)
		second := TypeToDTO(t.Pretype.Second)
		dto.First, dto.Second = &first, &second
	}
	return dto
}

var pretypeKindsByName = map[string]typesystem.PretypeKind{
	"bool":     typesystem.KindBool,
	"int":      typesystem.KindInt,
	"function": typesystem.KindFunction,
	"compound": typesystem.KindCompound,
}

// DTOToType rebuilds a typesystem.Type from its JSON-visible form, the
// reverse of TypeToDTO.
func DTOToType(dto TypeDTO) (typesystem.Type, *diagnostics.Error) {
	q, qerr := qualifierFromString(dto.Qualifier)
	if qerr != nil {
		return typesystem.Type{}, qerr
	}
	kind, ok := pretypeKindsByName[dto.Kind]
	if !ok {
		return typesystem.Type{}, diagnostics.NewInternalError("unknown type kind %q", dto.Kind)
	}
	switch kind {
	case typesystem.KindBool:
		return typesystem.NewType(q, typesystem.Bool()), nil
	case typesystem.KindInt:
		return typesystem.NewType(q, typesystem.Int()), nil
	case typesystem.KindFunction:
		if dto.In == nil || dto.Out == nil {
			return typesystem.Type{}, diagnostics.NewInternalError("function type missing in/out")
		}
		in, ierr := DTOToType(*dto.In)
		if ierr != nil {
			return typesystem.Type{}, ierr
		}
		out, oerr := DTOToType(*dto.Out)
		if oerr != nil {
			return typesystem.Type{}, oerr
		}
		return typesystem.NewType(q, typesystem.Function(in, out)), nil
	default: // typesystem.KindCompound
		if dto.First == nil || dto.Second == nil {
			return typesystem.Type{}, diagnostics.NewInternalError("compound type missing first/second")
		}
		first, ferr := DTOToType(*dto.First)
		if ferr != nil {
			return typesystem.Type{}, ferr
		}
		second, serr := DTOToType(*dto.Second)
		if serr != nil {
			return typesystem.Type{}, serr
		}
		return typesystem.NewType(q, typesystem.CompoundOf(first, second)), nil
	}
}

// ParseResult is the JSON-visible outcome of Parse.
type ParseResult struct {
	Term  *TermDTO  `json:"term,omitempty"`
	Error *ErrorDTO `json:"error,omitempty"`
}

// Parse lexes and parses source into a term tree.
func Parse(source string) ParseResult {
	term, err := parser.Parse(source)
	if err != nil {
		return ParseResult{Error: errorDTO(err)}
	}
	return ParseResult{Term: TermToDTO(term)}
}

// TypeCheckOptions mirrors checker.Options for hosts that don't want to
// import internal packages.
type TypeCheckOptions struct {
	IncludeApplications bool `json:"includeApplications"`
}

// TypeMapEntry pairs a span with the type recorded for it.
type TypeMapEntry struct {
	Span Span    `json:"span"`
	Type TypeDTO `json:"type"`
}

// TypeCheckResult is the JSON-visible outcome of TypeCheck.
type TypeCheckResult struct {
	Types []TypeMapEntry `json:"types,omitempty"`
	Error *ErrorDTO      `json:"error,omitempty"`
}

// TypeCheck type-checks a term tree decoded from the wire, returning the
// span->Type annotation map flattened into a list (JSON object keys
// can't be ast.Span values). Pass it a TermDTO produced by Parse (or
// DTOToTerm's inverse, TermToDTO) rather than raw source text, so the
// whole call is JSON in, JSON out.
func TypeCheck(tree *TermDTO, opts TypeCheckOptions) TypeCheckResult {
	term, derr := DTOToTerm(tree)
	if derr != nil {
		return TypeCheckResult{Error: errorDTO(derr)}
	}
	typeMap, cerr := checker.Check(term, checker.Options{IncludeApplications: opts.IncludeApplications})
	if cerr != nil {
		return TypeCheckResult{Error: errorDTO(cerr)}
	}
	entries := make([]TypeMapEntry, 0, len(typeMap))
	for span, ty := range typeMap {
		entries = append(entries, TypeMapEntry{Span: spanDTO(span), Type: TypeToDTO(ty)})
	}
	return TypeCheckResult{Types: entries}
}

// StoreEntryDTO is one live binding in an evaluator.Store.
type StoreEntryDTO struct {
	Name  string  `json:"name"`
	Value TermDTO `json:"value"`
}

// ConfigurationDTO is the JSON-visible form of an evaluator.Configuration,
// including the store's fresh-name counter and prefixes so a decoded
// ConfigurationDTO mints names that never collide with ones already live
// in Store.
type ConfigurationDTO struct {
	Store         []StoreEntryDTO `json:"store"`
	Term          *TermDTO        `json:"term"`
	Counter       uint64          `json:"counter"`
	ValuePrefix   string          `json:"valuePrefix"`
	ClosurePrefix string          `json:"closurePrefix"`
}

func configurationDTO(c evaluator.Configuration) ConfigurationDTO {
	entries := c.Store.Entries()
	store := make([]StoreEntryDTO, 0, len(entries))
	for name, value := range entries {
		store = append(store, StoreEntryDTO{Name: name, Value: *TermToDTO(value)})
	}
	return ConfigurationDTO{
		Store:         store,
		Term:          TermToDTO(c.Term),
		Counter:       c.Store.Counter(),
		ValuePrefix:   c.Store.ValuePrefix,
		ClosurePrefix: c.Store.ClosurePrefix,
	}
}

// DTOToConfiguration rebuilds an evaluator.Configuration from its
// JSON-visible form, the reverse of configurationDTO.
func DTOToConfiguration(dto ConfigurationDTO) (evaluator.Configuration, *ErrorDTO) {
	term, derr := DTOToTerm(dto.Term)
	if derr != nil {
		return evaluator.Configuration{}, errorDTO(derr)
	}
	bindings := make(map[string]ast.Term, len(dto.Store))
	for _, entry := range dto.Store {
		value, verr := DTOToTerm(&entry.Value)
		if verr != nil {
			return evaluator.Configuration{}, errorDTO(verr)
		}
		bindings[entry.Name] = value
	}
	store := evaluator.RestoreStore(bindings, dto.Counter, dto.ValuePrefix, dto.ClosurePrefix)
	return evaluator.Configuration{Store: store, Term: term}, nil
}

// StepResult is the JSON-visible outcome of Step.
type StepResult struct {
	Configuration *ConfigurationDTO `json:"configuration,omitempty"`
	IsValue       bool              `json:"isValue"`
	Error         *ErrorDTO         `json:"error,omitempty"`
}

// Step advances a decoded configuration by exactly one reduction rule
// and re-encodes the result. A host drives a program forward by feeding
// each call's Configuration straight back into the next Step call.
func Step(dto ConfigurationDTO) StepResult {
	cfg, derr := DTOToConfiguration(dto)
	if derr != nil {
		return StepResult{Error: derr}
	}
	next, err := cfg.Step()
	if err != nil {
		return StepResult{Error: errorDTO(err)}
	}
	result := configurationDTO(next)
	return StepResult{Configuration: &result, IsValue: next.IsValue()}
}

// NewConfiguration parses source, type-checks it, and builds the initial
// configuration ready for Step. This is the entry point hosts use to
// start a session; TypeCheck above is available standalone for hosts
// that only want annotations without running anything.
func NewConfiguration(source string, evalCfg evaluator.Config) (ConfigurationDTO, *ErrorDTO) {
	term, perr := parser.Parse(source)
	if perr != nil {
		return ConfigurationDTO{}, errorDTO(perr)
	}
	if _, cerr := checker.Check(term, checker.Options{}); cerr != nil {
		return ConfigurationDTO{}, errorDTO(cerr)
	}
	return configurationDTO(evaluator.New(term, evalCfg)), nil
}

// PrettifyResult is the JSON-visible outcome of Prettify.
type PrettifyResult struct {
	Source string    `json:"source,omitempty"`
	Error  *ErrorDTO `json:"error,omitempty"`
}

// Prettify parses source and renders it back to canonical text at width.
func Prettify(source string, width int) PrettifyResult {
	term, err := parser.Parse(source)
	if err != nil {
		return PrettifyResult{Error: errorDTO(err)}
	}
	return PrettifyResult{Source: printer.PrintWidth(term, width)}
}
