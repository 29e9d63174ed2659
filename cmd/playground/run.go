package main

import (
	"fmt"
	"os"

	"github.com/funvibe/substructural/internal/checker"
	"github.com/funvibe/substructural/internal/config"
	"github.com/funvibe/substructural/internal/evaluator"
	"github.com/funvibe/substructural/internal/pipeline"
	"github.com/funvibe/substructural/internal/printer"
)

func runCommand(cfg config.File, args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: playground run <file>")
		return 2
	}
	source, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "playground: %v\n", err)
		return 1
	}

	evalCfg := evaluator.Config{ValuePrefix: cfg.ValuePrefix, ClosurePrefix: cfg.ClosurePrefix}
	ctx := pipeline.CheckAndRun(string(source), checker.Options{IncludeApplications: cfg.IncludeApplyTypes}, evalCfg, cfg.MaxSteps)

	if ctx.Err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ctx.Err)
		return 1
	}

	rendered := printer.PrintWidth(ctx.Configuration.Term, cfg.LineWidth)
	if ctx.BudgetExhausted {
		fmt.Printf("%s\n(step budget of %d exhausted before reaching a value)\n", rendered, cfg.MaxSteps)
		return 1
	}
	fmt.Printf("%s\n(%d step(s), store holds %d entr%s)\n", rendered, ctx.Steps, ctx.Configuration.Store.Len(), plural(ctx.Configuration.Store.Len()))
	return 0
}

func plural(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
