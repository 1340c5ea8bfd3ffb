// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"path/filepath"
	"strings"

	"github.com/alnah/mdbook-embedify/internal/fileutil"
)

// ForInvalidInput returns hints for a malformed preprocessor payload.
// fromTerminal is true when stdin is an interactive terminal, which usually
// means the binary was run by hand instead of by mdBook.
func ForInvalidInput(fromTerminal bool) string {
	if fromTerminal {
		return format("this command is run by mdBook; add [preprocessor.embedify] to book.toml, or use 'process' for plain files")
	}
	return format("expected a JSON array [context, book] on stdin")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests a book.toml found in dir when there is one.
func ForConfigNotFound(dir string) string {
	hints := []string{"use --config /path/to/book.toml"}
	if candidate := filepath.Join(dir, "book.toml"); fileutil.FileExists(candidate) {
		hints = append(hints, "found "+candidate)
	}
	return formatHints(hints)
}

// ForTemplateDir returns hints for an unusable template directory.
func ForTemplateDir(bookRoot string) string {
	if bookRoot == "" {
		return format("template-dir must be an existing directory")
	}
	return format("template-dir is resolved relative to the book root " + bookRoot)
}

// ForIgnoreMode returns hints for an invalid ignore-mode value.
func ForIgnoreMode() string {
	return format("ignore-mode must be \"paired\" (default) or \"greedy\"")
}

// ForUnknownApp returns hints listing available apps.
func ForUnknownApp(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
