package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	flag "github.com/spf13/pflag"

	embedify "github.com/alnah/mdbook-embedify"
	"github.com/alnah/mdbook-embedify/internal/logging"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage              = errors.New("usage error")
	ErrNotSupported       = errors.New("renderer not supported")
	ErrReadInput          = errors.New("failed to read input")
	ErrWriteOutput        = errors.New("failed to write output")
	ErrNoInput            = errors.New("no input files")
	ErrInvalidExtension   = errors.New("file must have .md or .markdown extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// runMain runs one CLI invocation and returns the process exit code.
func runMain(ctx context.Context, args []string, env *Environment) int {
	err := dispatch(ctx, args, env)

	switch {
	case err == nil:
	case errors.Is(err, flag.ErrHelp):
		runHelp(commandName(args), env)
		return ExitSuccess
	case errors.Is(err, ErrNotSupported):
		// mdBook reads the exit status only; stay quiet.
	default:
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		if errors.Is(err, ErrUsage) {
			fmt.Fprintf(env.Stderr, "Run 'mdbook-embedify help' for usage.\n")
		}
	}
	return exitCodeFor(err)
}

// dispatch routes args to a command. With no command (or only flags) the
// binary acts as an mdBook preprocessor.
func dispatch(ctx context.Context, args []string, env *Environment) error {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return runPreprocess(ctx, args, env)
	}

	switch args[0] {
	case "supports":
		return runSupports(args[1:])
	case "process":
		return runProcess(ctx, args[1:], env)
	case "apps":
		return runApps(args[1:], env)
	case "version":
		fmt.Fprintf(env.Stdout, "mdbook-embedify %s\n", Version)
		return nil
	case "help":
		runHelp(firstArg(args[1:]), env)
		return nil
	default:
		return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
	}
}

// runSupports answers mdBook's renderer probe through the exit status.
func runSupports(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: supports takes exactly one renderer name", ErrUsage)
	}
	if !embedify.NewPreprocessor().Supports(args[0]) {
		return fmt.Errorf("%w: %s", ErrNotSupported, args[0])
	}
	return nil
}

// newLogger builds the stderr logger for a command.
func newLogger(f commonFlags, env *Environment) zerolog.Logger {
	return logging.New(logging.Options{
		Out:       env.Stderr,
		Quiet:     f.quiet,
		Verbosity: f.verbosity,
		NoColor:   f.noColor || !isTerminal(env.Stderr),
	})
}

// commandName returns the command help should describe for args.
func commandName(args []string) string {
	if len(args) == 0 || strings.HasPrefix(args[0], "-") {
		return ""
	}
	return args[0]
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
