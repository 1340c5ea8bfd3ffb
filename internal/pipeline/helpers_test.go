package pipeline

import (
	"strings"
	"sync"

	"github.com/alnah/mdbook-embedify/internal/render"
)

// fakeRender renders as [app|k=v,k=v] so tests can assert name and options.
func fakeRender(name string, opts render.Options) string {
	parts := make([]string, len(opts))
	for i, o := range opts {
		parts[i] = o.Key + "=" + o.Value
	}
	return "[" + name + "|" + strings.Join(parts, ",") + "]"
}

// recordingRenderer records every call it receives.
type recordingRenderer struct {
	mu    sync.Mutex
	calls []string
}

func (r *recordingRenderer) Render(name string, opts render.Options) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, name)
	return fakeRender(name, opts)
}
