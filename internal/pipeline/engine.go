package pipeline

import (
	"github.com/alnah/mdbook-embedify/internal/render"
)

// Engine runs the substitution stages over chapter text.
// An Engine holds no per-chapter state and is safe for concurrent use when
// its Renderer is.
type Engine struct {
	renderer   render.Renderer
	globals    Globals
	ignoreMode IgnoreMode
}

// NewEngine creates an Engine. An invalid ignore mode falls back to IgnorePaired.
func NewEngine(r render.Renderer, globals Globals, mode IgnoreMode) *Engine {
	if !mode.Valid() {
		mode = IgnorePaired
	}
	return &Engine{
		renderer:   r,
		globals:    globals,
		ignoreMode: mode,
	}
}

// Transform expands markers (when present) then appends the global snippets.
// Running Transform twice appends the global snippets twice.
func (e *Engine) Transform(content string) string {
	if HasMarkerTokens(content) {
		content = e.expandMarkers(content)
	}
	return appendGlobals(content, e.globals, e.renderer)
}

// expandMarkers replaces embed markers outside ignore regions.
func (e *Engine) expandMarkers(content string) string {
	protected, sections := extractIgnored(content, e.ignoreMode)
	expanded := expandEmbeds(protected, e.renderer, sections)
	return restoreIgnored(expanded, sections)
}
