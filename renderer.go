package embedify

import (
	"github.com/alnah/mdbook-embedify/internal/render"
)

// Pair is one key=value option from an embed marker, in marker order.
type Pair struct {
	Key   string
	Value string
}

// Renderer turns an app name and its options into an HTML fragment.
// It replaces template rendering entirely when passed with WithRenderer.
// Implementations must be safe for concurrent use and should return "" for
// unknown apps.
type Renderer interface {
	Render(app string, opts []Pair) string
}

// RendererFunc adapts a plain function to the Renderer interface.
type RendererFunc func(app string, opts []Pair) string

// Render calls f(app, opts).
func (f RendererFunc) Render(app string, opts []Pair) string {
	return f(app, opts)
}

// publicToInternalRenderer wraps a public Renderer for the pipeline.
type publicToInternalRenderer struct {
	pub Renderer
}

func (a *publicToInternalRenderer) Render(name string, opts render.Options) string {
	pairs := make([]Pair, len(opts))
	for i, o := range opts {
		pairs[i] = Pair(o)
	}
	return a.pub.Render(name, pairs)
}

// Compile-time interface checks.
var (
	_ Renderer        = RendererFunc(nil)
	_ render.Renderer = (*publicToInternalRenderer)(nil)
)
