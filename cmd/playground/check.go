package main

import (
	"fmt"
	"os"

	"github.com/funvibe/substructural/internal/checker"
	"github.com/funvibe/substructural/internal/config"
	"github.com/funvibe/substructural/internal/parser"
)

func checkCommand(cfg config.File, args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: playground check <file>")
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

	// Only the root type is printed, and the root may be an Application,
	// so Applications are always kept in the map here.
	typeMap, cerr := checker.Check(term, checker.Options{IncludeApplications: true})
	if cerr != nil {
		fmt.Fprintf(os.Stderr, "%s\n", cerr)
		return 1
	}

	rootType, ok := typeMap[term.Span()]
	if !ok {
		fmt.Fprintln(os.Stderr, "playground: internal: root span missing from type map")
		return 1
	}
	fmt.Printf("%s\n", rootType)
	return 0
}
