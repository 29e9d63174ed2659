package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/funvibe/substructural/internal/checker"
	"github.com/funvibe/substructural/internal/config"
	"github.com/funvibe/substructural/internal/evaluator"
	"github.com/funvibe/substructural/internal/pipeline"
	"github.com/funvibe/substructural/internal/printer"
	"github.com/google/uuid"
)

// replCommand runs an interactive read-check-eval-print loop. Each
// session salts its fresh-name prefixes with a short slice of a random
// UUID, so pasting transcripts from two different repl runs into the
// same place never produces colliding %x/%f names.
func replCommand(cfg config.File, args []string) int {
	salt := uuid.New().String()[:8]
	evalCfg := evaluator.Config{
		ValuePrefix:   cfg.ValuePrefix + "-" + salt,
		ClosurePrefix: cfg.ClosurePrefix + "-" + salt,
	}

	prompt := "> "
	if colorEnabled() {
		prompt = "\033[36m> \033[0m"
	}

	scanner := bufio.NewScanner(os.Stdin)
	fmt.Fprint(os.Stdout, prompt)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			fmt.Fprint(os.Stdout, prompt)
			continue
		}
		if line == ":quit" || line == ":q" {
			break
		}

		ctx := pipeline.CheckAndRun(line, checker.Options{IncludeApplications: cfg.IncludeApplyTypes}, evalCfg, cfg.MaxSteps)
		if ctx.Err != nil {
			fmt.Fprintf(os.Stdout, "error: %s\n", ctx.Err)
		} else if ctx.BudgetExhausted {
			fmt.Fprintf(os.Stdout, "%s (step budget exhausted)\n", printer.PrintWidth(ctx.Configuration.Term, cfg.LineWidth))
		} else {
			fmt.Fprintf(os.Stdout, "%s\n", printer.PrintWidth(ctx.Configuration.Term, cfg.LineWidth))
		}
		fmt.Fprint(os.Stdout, prompt)
	}
	fmt.Fprintln(os.Stdout)
	return 0
}
