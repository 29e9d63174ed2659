package main

import (
	"fmt"
	"os"

	"github.com/funvibe/substructural/internal/config"
	"github.com/funvibe/substructural/internal/parser"
	"github.com/funvibe/substructural/internal/printer"
)

func fmtCommand(cfg config.File, args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: playground fmt <file>")
		return 2
	}
	source, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "playground: %v\n", err)
		return 1
	}

	term, perr := parser.Parse(string(source))
	if perr != nil {
		fmt.Fprintf(os.Stderr, "%s\n", perr)
		return 1
	}

	fmt.Println(printer.PrintWidth(term, cfg.LineWidth))
	return 0
}
