// Package pipeline composes the core operations parse, type-check and
// step into the multi-stage runs a host actually wants: check
// a program and then drive it to a value under a step budget. The core
// packages stay host-agnostic (internal/evaluator.Step never knows about
// a budget); this package is where that policy lives, as a small chain
// of Processors each appending to a shared Context.
package pipeline

import (
	"github.com/funvibe/substructural/internal/ast"
	"github.com/funvibe/substructural/internal/checker"
	"github.com/funvibe/substructural/internal/diagnostics"
	"github.com/funvibe/substructural/internal/evaluator"
	"github.com/funvibe/substructural/internal/parser"
	"github.com/funvibe/substructural/internal/typesystem"
)

// Context accumulates the results of each stage as a program moves
// through the pipeline. Processors append to it rather than replacing it
// wholesale, so a failed stage still leaves earlier results inspectable —
// a program that fails to type-check still has its parsed Term available
// for a caller that wants to report on it.
type Context struct {
	Source string

	Term ast.Term
	Err  *diagnostics.Error

	TypeMap map[ast.Span]typesystem.Type

	Configuration   evaluator.Configuration
	Steps           int
	BudgetExhausted bool
}

// Processor is one pipeline stage. It must tolerate ctx already carrying
// an error from an earlier stage (and should usually just pass it
// through unchanged).
type Processor interface {
	Process(ctx *Context) *Context
}

// Pipeline runs a fixed sequence of Processors over one Context.
type Pipeline struct {
	stages []Processor
}

func New(stages ...Processor) *Pipeline {
	return &Pipeline{stages: stages}
}

func (p *Pipeline) Run(ctx *Context) *Context {
	for _, stage := range p.stages {
		ctx = stage.Process(ctx)
	}
	return ctx
}

// ParseStage turns ctx.Source into ctx.Term.
type ParseStage struct{}

func (ParseStage) Process(ctx *Context) *Context {
	if ctx.Err != nil {
		return ctx
	}
	term, err := parser.Parse(ctx.Source)
	if err != nil {
		ctx.Err = err
		return ctx
	}
	ctx.Term = term
	return ctx
}

// CheckStage type-checks ctx.Term and records its span->Type map.
type CheckStage struct {
	Options checker.Options
}

func (s CheckStage) Process(ctx *Context) *Context {
	if ctx.Err != nil || ctx.Term == nil {
		return ctx
	}
	typeMap, err := checker.Check(ctx.Term, s.Options)
	if err != nil {
		ctx.Err = err
		return ctx
	}
	ctx.TypeMap = typeMap
	return ctx
}

// RunStage drives ctx.Term to a value (or until MaxSteps is exhausted)
// under a fresh evaluator configuration.
type RunStage struct {
	Config   evaluator.Config
	MaxSteps int
}

func (s RunStage) Process(ctx *Context) *Context {
	if ctx.Err != nil || ctx.Term == nil {
		return ctx
	}
	cfg := evaluator.New(ctx.Term, s.Config)
	final, steps, exhausted, err := evaluator.Run(cfg, s.MaxSteps)
	if err != nil {
		ctx.Err = err
		return ctx
	}
	ctx.Configuration = final
	ctx.Steps = steps
	ctx.BudgetExhausted = exhausted
	return ctx
}

// CheckAndRun is the composition cmd/playground's "run" subcommand uses:
// parse, check, then evaluate to a value under a step budget.
func CheckAndRun(source string, checkOpts checker.Options, evalCfg evaluator.Config, maxSteps int) *Context {
	p := New(ParseStage{}, CheckStage{Options: checkOpts}, RunStage{Config: evalCfg, MaxSteps: maxSteps})
	return p.Run(&Context{Source: source})
}
