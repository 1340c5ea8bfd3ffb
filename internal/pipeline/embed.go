package pipeline

import (
	"regexp"
	"strings"

	"github.com/alnah/mdbook-embedify/internal/render"
)

// Tokens that must both be present before marker expansion is attempted.
const (
	markerOpenToken  = "{% embed "
	markerCloseToken = " %}"
)

// embedPattern matches {% embed <app> <options> %} on a single line.
// The options group never contains "%}" and stops at the first " %}".
// A '%' inside it is followed by anything but '}', or ends the group.
var embedPattern = regexp.MustCompile(`\{% embed ([A-Za-z0-9_-]+)((?:[^%\n]|%+[^%}\n])*?%*) %\}`)

// HasMarkerTokens reports whether content may contain embed markers.
func HasMarkerTokens(content string) bool {
	return strings.Contains(content, markerOpenToken) && strings.Contains(content, markerCloseToken)
}

// expandEmbeds replaces every marker with its rendered template.
// Rendered text is written straight to the output and never re-scanned.
// Ignore regions inside option text reach the renderer as their original
// text, so no placeholder is ever escaped by a template.
func expandEmbeds(content string, r render.Renderer, sections []ignoredSection) string {
	matches := embedPattern.FindAllStringSubmatchIndex(content, -1)
	if len(matches) == 0 {
		return content
	}

	var b strings.Builder
	b.Grow(len(content))
	last := 0
	for _, m := range matches {
		b.WriteString(content[last:m[0]])
		app := content[m[2]:m[3]]
		opts := ParseOptions(content[m[4]:m[5]])
		if len(sections) > 0 && strings.Contains(content[m[4]:m[5]], placeholderStart) {
			for i := range opts {
				opts[i].Key = restoreIgnored(opts[i].Key, sections)
				opts[i].Value = restoreIgnored(opts[i].Value, sections)
			}
		}
		b.WriteString(r.Render(app, opts))
		last = m[1]
	}
	b.WriteString(content[last:])

	return b.String()
}
