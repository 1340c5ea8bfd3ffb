package embedify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/alnah/mdbook-embedify/internal/assets"
	"github.com/alnah/mdbook-embedify/internal/config"
	"github.com/alnah/mdbook-embedify/internal/logging"
	"github.com/alnah/mdbook-embedify/internal/mdbook"
	"github.com/alnah/mdbook-embedify/internal/pipeline"
	"github.com/alnah/mdbook-embedify/internal/render"
)

// Name is the preprocessor name used in book.toml.
const Name = "embedify"

// Preprocessor builds Transformers from book settings and runs the mdBook
// preprocessor protocol. Create with NewPreprocessor.
type Preprocessor struct {
	cfg      preprocessorConfig
	logger   zerolog.Logger
	loader   TemplateLoader // public loader (from WithTemplateLoader)
	renderer Renderer       // public renderer (from WithRenderer)
}

// NewPreprocessor creates a Preprocessor.
// Use options to customize behavior (e.g., WithLogger, WithWorkers, WithEnv).
func NewPreprocessor(opts ...Option) *Preprocessor {
	p := &Preprocessor{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the preprocessor name.
func (p *Preprocessor) Name() string {
	return Name
}

// Supports reports whether the preprocessor handles the given renderer.
func (p *Preprocessor) Supports(renderer string) bool {
	return mdbook.Supports(renderer)
}

// Run reads the mdBook [context, book] payload from r, rewrites every
// chapter, and writes the book to w.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (p *Preprocessor) Run(ctx context.Context, r io.Reader, w io.Writer) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("internal error: %v", rec)
		}
	}()

	bookCtx, book, err := mdbook.ReadInput(r)
	if err != nil {
		return wrapError(ErrInvalidInput, err)
	}

	p.logger.Info().
		Str("mdbook_version", bookCtx.MdbookVersion).
		Str("renderer", bookCtx.Renderer).
		Str("root", bookCtx.Root).
		Msg("preprocessing book")

	t, err := p.TransformerFor(bookCtx.Config, bookCtx.Root)
	if err != nil {
		return err
	}

	if err := t.transformChapters(ctx, book.Chapters()); err != nil {
		return err
	}

	return mdbook.WriteBook(w, book)
}

// TransformerFor builds a Transformer from a book configuration, as found
// in the mdBook context, with root as the book root directory.
func (p *Preprocessor) TransformerFor(bookConfig map[string]any, root string) (*Transformer, error) {
	store, err := config.FromBookConfig(bookConfig)
	if err != nil {
		return nil, convertConfigError(err)
	}
	return p.newTransformer(store, root)
}

// TransformerFromFile builds a Transformer from a standalone book.toml,
// TOML or YAML file. An empty path uses defaults only. Relative template
// directories resolve against the file's directory.
func (p *Preprocessor) TransformerFromFile(path string) (*Transformer, error) {
	if path == "" {
		return p.newTransformer(config.NewStore(), "")
	}

	store, err := config.LoadFile(path)
	if err != nil {
		return nil, convertConfigError(err)
	}
	return p.newTransformer(store, filepath.Dir(path))
}

// newTransformer layers environment and overrides over store and builds
// the rendering chain.
func (p *Preprocessor) newTransformer(store *config.Store, root string) (*Transformer, error) {
	if p.cfg.useEnv {
		if err := store.LoadEnv(); err != nil {
			return nil, wrapError(ErrInvalidConfig, err)
		}
	}
	for _, s := range p.cfg.overrides {
		if err := store.Set(s.path, s.value); err != nil {
			return nil, wrapError(ErrInvalidConfig, err)
		}
	}

	cfg, err := config.FromStore(store)
	if err != nil {
		return nil, convertConfigError(err)
	}
	p.logger.Debug().Strs("settings", store.Keys()).Msg("configuration loaded")

	r, err := p.buildRenderer(cfg, root)
	if err != nil {
		return nil, err
	}

	workers := cfg.Workers
	if p.cfg.workers > 0 {
		workers = p.cfg.workers
	}

	return &Transformer{
		engine:  pipeline.NewEngine(r, cfg.Globals(), cfg.IgnoreMode),
		workers: workers,
		logger:  logging.Component(p.logger, "transform"),
	}, nil
}

// buildRenderer picks the public renderer, or templates from the public
// loader, or the layered template directories.
func (p *Preprocessor) buildRenderer(cfg *config.Config, root string) (render.Renderer, error) {
	if p.renderer != nil {
		return &publicToInternalRenderer{pub: p.renderer}, nil
	}

	renderLogger := render.WithLogger(logging.Component(p.logger, "render"))

	if p.loader != nil {
		return render.NewTemplateRenderer(&publicToInternalLoader{pub: p.loader}, renderLogger), nil
	}

	resolver, err := assets.NewAssetResolver(assets.ResolverOptions{
		BookDir:     p.templateDir(cfg, root),
		SkipUserDir: p.cfg.skipUserDir,
	})
	if err != nil {
		return nil, convertAssetError(err)
	}
	if resolver.HasCustomLoader() {
		p.logger.Debug().Msg("custom templates enabled")
	}

	return render.NewTemplateRenderer(resolver, renderLogger), nil
}

// templateDir resolves the custom template directory. The option is used as
// given; the setting is relative to the book root.
func (p *Preprocessor) templateDir(cfg *config.Config, root string) string {
	if p.cfg.templateDir != "" {
		return p.cfg.templateDir
	}
	if cfg.TemplateDir == "" || filepath.IsAbs(cfg.TemplateDir) {
		return cfg.TemplateDir
	}
	return filepath.Join(root, cfg.TemplateDir)
}

// convertConfigError maps internal config errors to public errors.
func convertConfigError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		return wrapError(ErrConfigNotFound, err)
	case errors.Is(err, config.ErrConfigParse),
		errors.Is(err, config.ErrInvalidIgnoreMode),
		errors.Is(err, config.ErrInvalidWorkerCount):
		return wrapError(ErrInvalidConfig, err)
	default:
		return err
	}
}
