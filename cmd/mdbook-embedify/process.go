package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	embedify "github.com/alnah/mdbook-embedify"
	"github.com/alnah/mdbook-embedify/internal/fileutil"
	"github.com/alnah/mdbook-embedify/internal/hints"
)

// runProcess rewrites plain Markdown files outside mdBook.
func runProcess(ctx context.Context, args []string, env *Environment) error {
	flags, inputs, err := parseProcessFlags(args)
	if err != nil {
		return err
	}

	logger := newLogger(flags.common, env)
	warnUnknownEnvVars(env.Environ(), logger)

	if len(inputs) == 0 {
		if isTerminal(env.Stdin) {
			return fmt.Errorf("%w: pass Markdown files, directories, or '-' for stdin", ErrNoInput)
		}
		inputs = []string{stdinPath}
	}

	files, err := discoverFiles(inputs, flags.output, flags.inPlace)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no Markdown files under %v", ErrNoInput, inputs)
	}
	if err := validateOutputs(files); err != nil {
		return err
	}

	opts := append([]embedify.Option{embedify.WithLogger(logger), embedify.WithEnv()}, flags.engine.options()...)
	t, err := embedify.NewPreprocessor(opts...).TransformerFromFile(flags.config)
	if err != nil {
		if errors.Is(err, embedify.ErrConfigNotFound) {
			return fmt.Errorf("%w%s", err, hints.ForConfigNotFound("."))
		}
		return withHints(err, env)
	}

	docs, err := readInputs(files, env.Stdin)
	if err != nil {
		return err
	}

	start := time.Now()
	out, err := t.TransformAll(ctx, docs)
	if err != nil {
		return err
	}

	if err := writeOutputs(files, out, env.Stdout); err != nil {
		return err
	}

	logger.Info().
		Int("files", len(files)).
		Int("workers", min(t.Workers(), len(files))).
		Dur("elapsed", time.Since(start)).
		Msg("processed")
	return nil
}

// readInputs loads every input. Standard input is read at most once.
func readInputs(files []FileToProcess, stdin io.Reader) ([]string, error) {
	docs := make([]string, len(files))
	for i, f := range files {
		var (
			data []byte
			err  error
		)
		if f.InputPath == stdinPath {
			data, err = io.ReadAll(stdin)
		} else {
			data, err = os.ReadFile(f.InputPath)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrReadInput, f.InputPath, err)
		}
		docs[i] = string(data)
	}
	return docs, nil
}

// writeOutputs writes each result to its file, or to stdout when the file
// has no output path.
func writeOutputs(files []FileToProcess, docs []string, stdout io.Writer) error {
	for i, f := range files {
		if f.OutputPath == "" {
			if _, err := io.WriteString(stdout, docs[i]); err != nil {
				return fmt.Errorf("%w: stdout: %w", ErrWriteOutput, err)
			}
			continue
		}
		if err := fileutil.WriteFileCreatingDirs(f.OutputPath, []byte(docs[i])); err != nil {
			return fmt.Errorf("%w: %w", ErrWriteOutput, err)
		}
	}
	return nil
}
