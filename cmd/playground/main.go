// Command playground is the reference host for the four core operations:
// run, check, fmt, and an interactive repl. It wires the ambient stack
// the library itself stays free of — config file loading, terminal
// detection, session identity — the way cmd/funxy wires its own
// evaluator/analyzer/backend packages together.
package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "playground: loading config: %v\n", err)
		os.Exit(1)
	}

	switch os.Args[1] {
	case "run":
		os.Exit(runCommand(cfg, os.Args[2:]))
	case "check":
		os.Exit(checkCommand(cfg, os.Args[2:]))
	case "fmt":
		os.Exit(fmtCommand(cfg, os.Args[2:]))
	case "repl":
		os.Exit(replCommand(cfg, os.Args[2:]))
	case "-h", "--help", "help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "playground: unknown command %q\n", os.Args[1])
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: playground <command> [arguments]

commands:
  run <file>    parse, check, and evaluate a program to a value
  check <file>  parse and type-check a program, printing its type
  fmt <file>    parse and print a program back in canonical form
  repl          start an interactive session`)
}
