package main

import (
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	embedify "github.com/alnah/mdbook-embedify"
	"github.com/alnah/mdbook-embedify/internal/pipeline"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	quiet     bool
	verbosity int
	noColor   bool
}

// engineFlags holds flags that override book settings.
type engineFlags struct {
	workers         int
	templateDir     string
	ignoreMode      string
	noUserTemplates bool
}

// preprocessFlags holds all flags for preprocessor mode.
type preprocessFlags struct {
	common commonFlags
	engine engineFlags
}

// processFlags holds all flags for the process command.
type processFlags struct {
	common  commonFlags
	engine  engineFlags
	config  string
	output  string
	inPlace bool
}

// appsFlags holds all flags for the apps command.
type appsFlags struct {
	config          string
	templateDir     string
	noUserTemplates bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.CountVarP(&f.verbosity, "verbose", "v", "more logging (-v info, -vv debug)")
	fs.BoolVar(&f.noColor, "no-color", false, "disable colored logs")
}

// addEngineFlags adds setting overrides to a FlagSet.
func addEngineFlags(fs *flag.FlagSet, f *engineFlags) {
	fs.IntVarP(&f.workers, "workers", "w", 0, "chapters transformed in parallel (0 = auto)")
	fs.StringVarP(&f.templateDir, "template-dir", "t", "", "custom template directory")
	fs.StringVar(&f.ignoreMode, "ignore-mode", "", "ignore region scanning: paired, greedy")
	fs.BoolVar(&f.noUserTemplates, "no-user-templates", false, "skip the per-user template directory")
}

// newFlagSet creates a FlagSet that reports errors instead of exiting.
// pflag's own output is discarded; runMain prints errors and usage.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// parsePreprocessFlags parses preprocessor mode flags. No positional
// arguments are accepted.
func parsePreprocessFlags(args []string) (*preprocessFlags, error) {
	fs := newFlagSet("mdbook-embedify")
	f := &preprocessFlags{}
	addCommonFlags(fs, &f.common)
	addEngineFlags(fs, &f.engine)

	if err := fs.Parse(args); err != nil {
		return nil, parseError(err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected arguments: %s", ErrUsage, strings.Join(fs.Args(), " "))
	}
	if err := f.engine.validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// parseProcessFlags parses process command flags and returns positional args.
func parseProcessFlags(args []string) (*processFlags, []string, error) {
	fs := newFlagSet("process")
	f := &processFlags{}
	addCommonFlags(fs, &f.common)
	addEngineFlags(fs, &f.engine)
	fs.StringVarP(&f.config, "config", "c", "", "book.toml or YAML settings file")
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.BoolVarP(&f.inPlace, "in-place", "i", false, "rewrite files in place")

	if err := fs.Parse(args); err != nil {
		return nil, nil, parseError(err)
	}
	if f.inPlace && f.output != "" {
		return nil, nil, fmt.Errorf("%w: --in-place and --output are mutually exclusive", ErrUsage)
	}
	if err := f.engine.validate(); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseAppsFlags parses apps command flags and returns positional args.
func parseAppsFlags(args []string) (*appsFlags, []string, error) {
	fs := newFlagSet("apps")
	f := &appsFlags{}
	fs.StringVarP(&f.config, "config", "c", "", "book.toml or YAML settings file")
	fs.StringVarP(&f.templateDir, "template-dir", "t", "", "custom template directory")
	fs.BoolVar(&f.noUserTemplates, "no-user-templates", false, "skip the per-user template directory")

	if err := fs.Parse(args); err != nil {
		return nil, nil, parseError(err)
	}
	if fs.NArg() > 1 {
		return nil, nil, fmt.Errorf("%w: apps takes at most one app name", ErrUsage)
	}
	return f, fs.Args(), nil
}

// validate checks flag values the library would otherwise reject later
// with a less specific message.
func (f *engineFlags) validate() error {
	if err := validateWorkers(f.workers); err != nil {
		return err
	}
	if f.ignoreMode != "" && !pipeline.IgnoreMode(f.ignoreMode).Valid() {
		return fmt.Errorf("%w: --ignore-mode %q", embedify.ErrInvalidConfig, f.ignoreMode)
	}
	return nil
}

// options converts flags to preprocessor options. Flags win over book
// settings and the environment.
func (f *engineFlags) options() []embedify.Option {
	var opts []embedify.Option
	if f.workers > 0 {
		opts = append(opts, embedify.WithWorkers(f.workers))
	}
	if f.templateDir != "" {
		opts = append(opts, embedify.WithTemplateDir(f.templateDir))
	}
	if f.ignoreMode != "" {
		opts = append(opts, embedify.WithSetting("ignore-mode", f.ignoreMode))
	}
	if f.noUserTemplates {
		opts = append(opts, embedify.WithoutUserTemplates())
	}
	return opts
}

// parseError maps pflag errors to usage errors, keeping ErrHelp intact.
func parseError(err error) error {
	if err == flag.ErrHelp {
		return err
	}
	return fmt.Errorf("%w: %v", ErrUsage, err)
}

// verbosityFromArgs counts -v flags before the flag set is built, so main
// can decide how loud automaxprocs should be.
func verbosityFromArgs(args []string) int {
	n := 0
	for _, arg := range args {
		switch {
		case arg == "--verbose":
			n++
		case strings.HasPrefix(arg, "-") && !strings.HasPrefix(arg, "--"):
			n += strings.Count(arg, "v")
		}
	}
	return n
}
