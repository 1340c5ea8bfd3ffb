package render

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"sync"

	"github.com/rs/zerolog"

	"github.com/alnah/mdbook-embedify/internal/assets"
)

// ErrTemplateParse indicates a template source could not be parsed.
var ErrTemplateParse = errors.New("template parse failed")

// Renderer maps a template name and ordered options to an HTML fragment.
// Implementations must be safe for concurrent use and must never fail:
// unknown names render to a deterministic default such as "".
type Renderer interface {
	Render(name string, opts Options) string
}

// RendererFunc adapts a plain function to the Renderer interface.
type RendererFunc func(name string, opts Options) string

// Render calls f(name, opts).
func (f RendererFunc) Render(name string, opts Options) string {
	return f(name, opts)
}

// cachedTemplate is a parse result. A nil tmpl records a template that is
// missing or broken, so the loader is not hit again for it.
type cachedTemplate struct {
	tmpl *template.Template
	err  error
}

// TemplateRenderer renders templates loaded from an AssetLoader.
// Parsed templates are cached; rendered output is not.
type TemplateRenderer struct {
	loader   assets.AssetLoader
	markdown *markdownConverter
	logger   zerolog.Logger

	mu     sync.RWMutex
	parsed map[string]cachedTemplate
}

// RendererOption configures a TemplateRenderer.
type RendererOption func(*TemplateRenderer)

// WithLogger sets the logger used to report missing or broken templates.
func WithLogger(logger zerolog.Logger) RendererOption {
	return func(r *TemplateRenderer) {
		r.logger = logger
	}
}

// NewTemplateRenderer creates a TemplateRenderer reading from loader.
func NewTemplateRenderer(loader assets.AssetLoader, opts ...RendererOption) *TemplateRenderer {
	r := &TemplateRenderer{
		loader:   loader,
		markdown: newMarkdownConverter(),
		logger:   zerolog.Nop(),
		parsed:   make(map[string]cachedTemplate),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render executes the named template with opts.
// Returns "" if the template is unknown, unparsable, or fails to execute.
func (r *TemplateRenderer) Render(name string, opts Options) string {
	out, err := r.Execute(name, opts)
	if err != nil {
		if errors.Is(err, assets.ErrTemplateNotFound) || errors.Is(err, assets.ErrInvalidAssetName) {
			r.logger.Debug().Str("app", name).Strs("options", opts.Keys()).Msg("unknown embed app, rendering nothing")
		} else {
			r.logger.Warn().Err(err).Str("app", name).Msg("template rendering failed")
		}
		return ""
	}
	return out
}

// Execute is Render with the error exposed, for callers that validate
// templates up front.
func (r *TemplateRenderer) Execute(name string, opts Options) (string, error) {
	base, err := r.lookup(name)
	if err != nil {
		return "", err
	}

	// html/template binds functions at parse time, so options are supplied
	// by overriding the placeholder funcs on a per-call clone.
	tmpl, err := base.Clone()
	if err != nil {
		return "", fmt.Errorf("cloning template %q: %w", name, err)
	}
	tmpl.Funcs(r.funcs(opts))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, nil); err != nil {
		return "", fmt.Errorf("executing template %q: %w", name, err)
	}
	return buf.String(), nil
}

// Check parses the named template without executing it.
func (r *TemplateRenderer) Check(name string) error {
	_, err := r.lookup(name)
	return err
}

// lookup returns the parsed template for name, loading it on first use.
func (r *TemplateRenderer) lookup(name string) (*template.Template, error) {
	r.mu.RLock()
	cached, ok := r.parsed[name]
	r.mu.RUnlock()
	if ok {
		return cached.tmpl, cached.err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Another goroutine may have parsed it while we waited for the lock
	if cached, ok := r.parsed[name]; ok {
		return cached.tmpl, cached.err
	}

	tmpl, err := r.parse(name)
	r.parsed[name] = cachedTemplate{tmpl: tmpl, err: err}
	return tmpl, err
}

// parse loads and parses a template with placeholder functions.
func (r *TemplateRenderer) parse(name string) (*template.Template, error) {
	src, err := r.loader.LoadTemplate(name)
	if err != nil {
		return nil, err
	}

	tmpl, err := template.New(name).Funcs(r.funcs(nil)).Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrTemplateParse, name, err)
	}
	return tmpl, nil
}

// funcs returns the template function map bound to opts.
func (r *TemplateRenderer) funcs(opts Options) template.FuncMap {
	return template.FuncMap{
		"opt": func(key string, def ...string) string {
			return opts.Get(key, firstOr(def, ""))
		},
		"has": func(key string) bool {
			return opts.Get(key, "") != ""
		},
		"markdown": func(key string, def ...string) (template.HTML, error) {
			out, err := r.markdown.Inline(opts.Get(key, firstOr(def, "")))
			if err != nil {
				return "", err
			}
			return template.HTML(out), nil // #nosec G203 -- author-controlled config
		},
	}
}

// firstOr returns the first element of s, or def when s is empty.
func firstOr(s []string, def string) string {
	if len(s) > 0 {
		return s[0]
	}
	return def
}

// Compile-time interface checks.
var (
	_ Renderer = (*TemplateRenderer)(nil)
	_ Renderer = RendererFunc(nil)
)
