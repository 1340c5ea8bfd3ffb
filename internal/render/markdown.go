package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// markdownConverter renders short Markdown snippets (banner and footer
// messages) to HTML.
type markdownConverter struct {
	md goldmark.Markdown
}

// newMarkdownConverter creates a converter with GFM extensions.
// Raw HTML in messages passes through.
func newMarkdownConverter() *markdownConverter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM, // Tables, strikethrough, autolinks, task lists
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)
	return &markdownConverter{md: md}
}

// Inline converts src to HTML. A result made of a single paragraph is
// unwrapped so the message can sit inside other inline markup.
func (m *markdownConverter) Inline(src string) (string, error) {
	if strings.TrimSpace(src) == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := m.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("converting markdown: %w", err)
	}

	return unwrapParagraph(strings.TrimSpace(buf.String())), nil
}

// unwrapParagraph strips a single enclosing <p>...</p>.
func unwrapParagraph(s string) string {
	if !strings.HasPrefix(s, "<p>") || !strings.HasSuffix(s, "</p>") {
		return s
	}
	inner := s[len("<p>") : len(s)-len("</p>")]
	if strings.Contains(inner, "<p>") {
		return s
	}
	return inner
}
