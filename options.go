package embedify

import (
	"github.com/rs/zerolog"
)

// Option configures a Preprocessor.
type Option func(*Preprocessor)

// preprocessorConfig holds the settings options can change.
type preprocessorConfig struct {
	workers     int  // 0 = from config, then GOMAXPROCS
	templateDir string
	useEnv      bool
	skipUserDir bool
	overrides   []setting
}

// setting is a single dotted-path override.
type setting struct {
	path  string
	value any
}

// WithLogger sets the logger for diagnostics. The default discards logs.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Preprocessor) {
		p.logger = logger
	}
}

// WithWorkers sets how many chapters are transformed concurrently, taking
// precedence over the workers setting. 0 keeps the setting or GOMAXPROCS.
// Panics if n < 0 (programmer error).
func WithWorkers(n int) Option {
	if n < 0 {
		panic("embedify: WithWorkers count must be non-negative")
	}
	return func(p *Preprocessor) {
		p.cfg.workers = n
	}
}

// WithTemplateDir sets the custom template directory, taking precedence
// over the template-dir setting. The path is used as given, not resolved
// against the book root.
func WithTemplateDir(dir string) Option {
	return func(p *Preprocessor) {
		p.cfg.templateDir = dir
	}
}

// WithTemplateLoader replaces template lookup entirely.
func WithTemplateLoader(loader TemplateLoader) Option {
	return func(p *Preprocessor) {
		p.loader = loader
	}
}

// WithRenderer replaces template rendering entirely. Global snippets are
// rendered through it too, under their template names.
func WithRenderer(r Renderer) Option {
	return func(p *Preprocessor) {
		p.renderer = r
	}
}

// WithEnv merges EMBEDIFY_* environment variables over the book settings.
func WithEnv() Option {
	return func(p *Preprocessor) {
		p.cfg.useEnv = true
	}
}

// WithoutUserTemplates skips the per-user template directory.
func WithoutUserTemplates() Option {
	return func(p *Preprocessor) {
		p.cfg.skipUserDir = true
	}
}

// WithSetting overrides one setting by dotted path, e.g.
// WithSetting("footer.enable", true). Overrides win over the book settings
// and the environment.
func WithSetting(path string, value any) Option {
	return func(p *Preprocessor) {
		p.cfg.overrides = append(p.cfg.overrides, setting{path: path, value: value})
	}
}
