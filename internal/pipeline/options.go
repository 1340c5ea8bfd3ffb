package pipeline

import (
	"strings"
	"unicode"

	"github.com/alnah/mdbook-embedify/internal/render"
)

// ParseOptions parses the option text of an embed marker.
//
// The text is split on whitespace; each key=value token becomes an option,
// in order, duplicates included. Tokens without "=" or with an empty key are
// dropped. A value wrapped in double quotes may contain whitespace, and the
// quotes are removed:
//
//	id=abc loading="lazy" title="My talk" stray  ->  id=abc, loading=lazy, title=My talk
func ParseOptions(raw string) render.Options {
	var opts render.Options
	for _, token := range splitTokens(raw) {
		key, value, ok := strings.Cut(token, "=")
		if !ok || key == "" {
			continue
		}
		opts = append(opts, render.Option{Key: key, Value: unquote(value)})
	}
	return opts
}

// splitTokens splits s on whitespace outside double quotes.
// An unterminated quote extends to the end of s.
func splitTokens(s string) []string {
	var tokens []string
	var current strings.Builder
	inQuotes := false

	flush := func() {
		if current.Len() > 0 {
			tokens = append(tokens, current.String())
			current.Reset()
		}
	}

	for _, r := range s {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			current.WriteRune(r)
		case unicode.IsSpace(r) && !inQuotes:
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()

	return tokens
}

// unquote strips one pair of surrounding double quotes.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
