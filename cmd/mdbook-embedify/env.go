package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Stdin   io.Reader
	Stdout  io.Writer
	Stderr  io.Writer
	Environ func() []string
}

// DefaultEnv returns the process environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
		Stderr:  os.Stderr,
		Environ: os.Environ,
	}
}

// fdWriter is satisfied by *os.File.
type fdWriter interface {
	Fd() uintptr
}

// isTerminal reports whether v is an interactive terminal.
// Buffers and pipes used in tests are never terminals.
func isTerminal(v any) bool {
	f, ok := v.(fdWriter)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
