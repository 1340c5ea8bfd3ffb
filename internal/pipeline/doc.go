// Package pipeline implements the chapter substitution engine.
//
// A chapter goes through these stages, in order:
//   - Ignore-region extraction: text between <!-- embed ignore begin --> and
//     <!-- embed ignore end --> is swapped for unique placeholders
//   - Marker expansion: every {% embed app key=value ... %} is replaced by the
//     rendered app template, in a single left-to-right pass
//   - Ignore-region restoration: placeholders are swapped back
//   - Global snippets: scroll-to-top, announcement banner, giscus and footer
//     are appended, in that order, when enabled
//
// The first three stages only run when the chapter contains both "{% embed "
// and " %}". The engine is a total function: malformed markers and
// unterminated ignore regions pass through as literal text.
//
// Template rendering is delegated to a render.Renderer.
package pipeline
