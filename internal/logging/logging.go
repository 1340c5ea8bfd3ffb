// Package logging builds the zerolog loggers used by the preprocessor.
//
// Logs go to stderr only: stdout carries the book JSON back to mdBook.
package logging

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Options configures New.
type Options struct {
	Out       io.Writer
	Quiet     bool // Errors only
	Verbosity int  // 0 warn, 1 info, 2+ debug
	NoColor   bool
}

// LevelFor maps the CLI verbosity flags to a log level.
func LevelFor(quiet bool, verbosity int) zerolog.Level {
	if quiet {
		return zerolog.ErrorLevel
	}
	switch {
	case verbosity <= 0:
		return zerolog.WarnLevel
	case verbosity == 1:
		return zerolog.InfoLevel
	default:
		return zerolog.DebugLevel
	}
}

// New returns a console logger writing to opts.Out.
func New(opts Options) zerolog.Logger {
	if opts.Out == nil {
		return zerolog.Nop()
	}

	level := LevelFor(opts.Quiet, opts.Verbosity)
	console := zerolog.ConsoleWriter{
		Out:        opts.Out,
		TimeFormat: time.Kitchen,
		NoColor:    opts.NoColor,
	}

	logger := zerolog.New(console).Level(level).With().Timestamp().Logger()

	// Add caller information at debug level
	if level <= zerolog.DebugLevel {
		logger = logger.With().Caller().Logger()
	}
	return logger
}

// Component returns a logger tagged with the given component name.
func Component(logger zerolog.Logger, name string) zerolog.Logger {
	return logger.With().Str("component", name).Logger()
}
