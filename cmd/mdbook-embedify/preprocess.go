package main

import (
	"context"
	"errors"
	"fmt"

	embedify "github.com/alnah/mdbook-embedify"
	"github.com/alnah/mdbook-embedify/internal/config"
	"github.com/alnah/mdbook-embedify/internal/hints"
)

// runPreprocess is the mdBook preprocessor mode: [context, book] on stdin,
// the rewritten book on stdout, logs on stderr.
func runPreprocess(ctx context.Context, args []string, env *Environment) error {
	flags, err := parsePreprocessFlags(args)
	if err != nil {
		return err
	}

	logger := newLogger(flags.common, env)
	warnUnknownEnvVars(env.Environ(), logger)

	opts := append([]embedify.Option{embedify.WithLogger(logger), embedify.WithEnv()}, flags.engine.options()...)
	p := embedify.NewPreprocessor(opts...)

	if err := p.Run(ctx, env.Stdin, env.Stdout); err != nil {
		return withHints(err, env)
	}
	return nil
}

// withHints appends actionable hints to library errors.
func withHints(err error, env *Environment) error {
	switch {
	case errors.Is(err, embedify.ErrInvalidInput):
		return fmt.Errorf("%w%s", err, hints.ForInvalidInput(isTerminal(env.Stdin)))
	case errors.Is(err, embedify.ErrInvalidTemplateDir):
		return fmt.Errorf("%w%s", err, hints.ForTemplateDir(""))
	case errors.Is(err, config.ErrInvalidIgnoreMode):
		return fmt.Errorf("%w%s", err, hints.ForIgnoreMode())
	default:
		return err
	}
}
