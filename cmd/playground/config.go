package main

import (
	"os"

	"github.com/funvibe/substructural/internal/config"
	"github.com/mattn/go-isatty"
)

// loadConfig reads playground.yaml from the current directory, falling
// back silently to defaults when it doesn't exist (internal/config.Load's
// documented behavior).
func loadConfig() (config.File, error) {
	return config.Load("playground.yaml", config.Defaults())
}

// colorEnabled reports whether stdout is a terminal the CLI can safely
// write ANSI color sequences to. IsCygwinTerminal covers mintty/msys2
// consoles that IsTerminal alone misses on Windows.
func colorEnabled() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
