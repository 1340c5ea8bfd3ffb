package render

// Notes:
// - TemplateRenderer: we test option functions, escaping, Markdown messages,
//   the unknown and broken template paths, caching, and concurrent use.
// - Every embedded template is parsed and executed once to catch template
//   syntax errors early.

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/alnah/mdbook-embedify/internal/assets"
)

// ---------------------------------------------------------------------------
// Test helpers
// ---------------------------------------------------------------------------

// mapLoader serves templates from a map and counts loads.
type mapLoader struct {
	mu    sync.Mutex
	files map[string]string
	loads map[string]int
}

func newMapLoader(files map[string]string) *mapLoader {
	return &mapLoader{files: files, loads: make(map[string]int)}
}

func (m *mapLoader) LoadTemplate(name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads[name]++
	if err := assets.ValidateAssetName(name); err != nil {
		return "", err
	}
	src, ok := m.files[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", assets.ErrTemplateNotFound, name)
	}
	return src, nil
}

func (m *mapLoader) ListTemplates() ([]string, error) {
	names := make([]string, 0, len(m.files))
	for name := range m.files {
		names = append(names, name)
	}
	return names, nil
}

func (m *mapLoader) loadCount(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loads[name]
}

// ---------------------------------------------------------------------------
// TestTemplateRenderer_Render - Option functions and escaping
// ---------------------------------------------------------------------------

func TestTemplateRenderer_Render(t *testing.T) {
	t.Parallel()

	loader := newMapLoader(map[string]string{
		"video":    `<iframe src="https://example.com/{{opt "id"}}" loading="{{opt "loading" "lazy"}}"></iframe>`,
		"text":     `<p>{{opt "msg"}}</p>`,
		"cond":     `{{if has "file"}}file={{opt "file"}}{{else}}none{{end}}`,
		"message":  `<div>{{markdown "message"}}</div>`,
		"fallback": `{{markdown "message" "*default*"}}`,
	})
	r := NewTemplateRenderer(loader)

	tests := []struct {
		name     string
		template string
		opts     Options
		want     string
	}{
		{
			name:     "option substituted",
			template: "video",
			opts:     Options{{Key: "id", Value: "abc"}},
			want:     `<iframe src="https://example.com/abc" loading="lazy"></iframe>`,
		},
		{
			name:     "default overridden",
			template: "video",
			opts:     Options{{Key: "id", Value: "abc"}, {Key: "loading", Value: "eager"}},
			want:     `<iframe src="https://example.com/abc" loading="eager"></iframe>`,
		},
		{
			name:     "empty value falls back to default",
			template: "video",
			opts:     Options{{Key: "id", Value: "abc"}, {Key: "loading", Value: ""}},
			want:     `<iframe src="https://example.com/abc" loading="lazy"></iframe>`,
		},
		{
			name:     "last duplicate wins",
			template: "video",
			opts:     Options{{Key: "id", Value: "first"}, {Key: "id", Value: "second"}},
			want:     `<iframe src="https://example.com/second" loading="lazy"></iframe>`,
		},
		{
			name:     "text is escaped",
			template: "text",
			opts:     Options{{Key: "msg", Value: "<b>hi</b>"}},
			want:     `<p>&lt;b&gt;hi&lt;/b&gt;</p>`,
		},
		{
			name:     "has true",
			template: "cond",
			opts:     Options{{Key: "file", Value: "main.go"}},
			want:     `file=main.go`,
		},
		{
			name:     "has false",
			template: "cond",
			want:     `none`,
		},
		{
			name:     "markdown unwrapped",
			template: "message",
			opts:     Options{{Key: "message", Value: "**Hello** [docs](https://example.com)"}},
			want:     `<div><strong>Hello</strong> <a href="https://example.com">docs</a></div>`,
		},
		{
			name:     "markdown empty",
			template: "message",
			want:     `<div></div>`,
		},
		{
			name:     "markdown default",
			template: "fallback",
			want:     `<em>default</em>`,
		},
		{
			name:     "unknown template",
			template: "missing",
			want:     "",
		},
		{
			name:     "invalid name",
			template: "../etc",
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := r.Render(tt.template, tt.opts); got != tt.want {
				t.Errorf("Render(%q) = %q, want %q", tt.template, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestTemplateRenderer_Execute - Error reporting
// ---------------------------------------------------------------------------

func TestTemplateRenderer_Execute(t *testing.T) {
	t.Parallel()

	loader := newMapLoader(map[string]string{
		"broken": `{{opt "id"`,
		"good":   `ok`,
	})
	r := NewTemplateRenderer(loader)

	tests := []struct {
		name    string
		tmpl    string
		wantErr error
	}{
		{name: "good", tmpl: "good"},
		{name: "parse error", tmpl: "broken", wantErr: ErrTemplateParse},
		{name: "not found", tmpl: "nope", wantErr: assets.ErrTemplateNotFound},
		{name: "invalid name", tmpl: "a.b", wantErr: assets.ErrInvalidAssetName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := r.Execute(tt.tmpl, nil)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Execute() error = %v, want %v", err, tt.wantErr)
			}
			if got := r.Render(tt.tmpl, nil); got != "" {
				t.Errorf("Render() = %q, want empty", got)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestTemplateRenderer_Check - Parse without executing
// ---------------------------------------------------------------------------

func TestTemplateRenderer_Check(t *testing.T) {
	t.Parallel()

	loader := newMapLoader(map[string]string{
		"broken": `{{opt "id"`,
		"good":   `{{opt "id"}}`,
	})
	r := NewTemplateRenderer(loader)

	if err := r.Check("good"); err != nil {
		t.Errorf("Check(good) error = %v", err)
	}
	if err := r.Check("broken"); !errors.Is(err, ErrTemplateParse) {
		t.Errorf("Check(broken) error = %v, want ErrTemplateParse", err)
	}
	if err := r.Check("nope"); !errors.Is(err, assets.ErrTemplateNotFound) {
		t.Errorf("Check(nope) error = %v, want ErrTemplateNotFound", err)
	}
}

// ---------------------------------------------------------------------------
// TestTemplateRenderer_Render_LogsUnknownApp
// ---------------------------------------------------------------------------

func TestTemplateRenderer_Render_LogsUnknownApp(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	r := NewTemplateRenderer(newMapLoader(nil), WithLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)))

	if got := r.Render("nope", Options{{Key: "id", Value: "x"}, {Key: "title", Value: "y"}}); got != "" {
		t.Fatalf("Render() = %q, want empty", got)
	}

	out := buf.String()
	for _, want := range []string{`"app":"nope"`, `"options":["id","title"]`, "unknown embed app"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %s:\n%s", want, out)
		}
	}
}

// ---------------------------------------------------------------------------
// TestTemplateRenderer_Cache - Templates are loaded once
// ---------------------------------------------------------------------------

func TestTemplateRenderer_Cache(t *testing.T) {
	t.Parallel()

	loader := newMapLoader(map[string]string{"a": `{{opt "v"}}`})
	r := NewTemplateRenderer(loader)

	first := r.Render("a", Options{{Key: "v", Value: "1"}})
	second := r.Render("a", Options{{Key: "v", Value: "2"}})
	r.Render("missing", nil)
	r.Render("missing", nil)

	if first != "1" || second != "2" {
		t.Errorf("renders = %q, %q; want 1, 2", first, second)
	}
	if n := loader.loadCount("a"); n != 1 {
		t.Errorf("loads of a = %d, want 1", n)
	}
	if n := loader.loadCount("missing"); n != 1 {
		t.Errorf("loads of missing = %d, want 1", n)
	}
}

// ---------------------------------------------------------------------------
// TestTemplateRenderer_Concurrent - Options do not leak between calls
// ---------------------------------------------------------------------------

func TestTemplateRenderer_Concurrent(t *testing.T) {
	t.Parallel()

	loader := newMapLoader(map[string]string{"a": `{{opt "v"}}`})
	r := NewTemplateRenderer(loader)

	var wg sync.WaitGroup
	errs := make(chan string, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			want := fmt.Sprint(i)
			if got := r.Render("a", Options{{Key: "v", Value: want}}); got != want {
				errs <- fmt.Sprintf("Render() = %q, want %q", got, want)
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for e := range errs {
		t.Error(e)
	}
	if n := loader.loadCount("a"); n != 1 {
		t.Errorf("loads = %d, want 1", n)
	}
}

// ---------------------------------------------------------------------------
// TestEmbeddedTemplates - Built-in templates parse and render
// ---------------------------------------------------------------------------

func TestEmbeddedTemplates(t *testing.T) {
	t.Parallel()

	loader := assets.NewEmbeddedLoader()
	names, err := loader.ListTemplates()
	if err != nil {
		t.Fatalf("ListTemplates() error: %v", err)
	}
	if len(names) == 0 {
		t.Fatal("no embedded templates")
	}

	r := NewTemplateRenderer(loader)
	opts := Options{
		{Key: "id", Value: "abc123"},
		{Key: "message", Value: "Hello *world*"},
	}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			out, err := r.Execute(name, opts)
			if err != nil {
				t.Fatalf("Execute(%q) error: %v", name, err)
			}
			if strings.TrimSpace(out) == "" {
				t.Errorf("Execute(%q) rendered nothing", name)
			}
		})
	}

	t.Run("youtube uses id", func(t *testing.T) {
		t.Parallel()

		out := r.Render("youtube", Options{{Key: "id", Value: "dQw4w9WgXcQ"}})
		if !strings.Contains(out, "youtube-nocookie.com/embed/dQw4w9WgXcQ") {
			t.Errorf("youtube output missing video URL: %s", out)
		}
	})

	t.Run("footer renders markdown", func(t *testing.T) {
		t.Parallel()

		out := r.Render("footer", Options{{Key: "message", Value: "Made with **love**"}})
		if !strings.Contains(out, "Made with <strong>love</strong>") {
			t.Errorf("footer output = %s", out)
		}
	})

	t.Run("global snippets start on a new line", func(t *testing.T) {
		t.Parallel()

		for _, name := range []string{"scroll-to-top", "announcement-banner", "giscus", "footer"} {
			if out := r.Render(name, opts); !strings.HasPrefix(out, "\n") {
				t.Errorf("%s output does not start with a newline", name)
			}
		}
	})
}
