// Package render maps a template name and an ordered option list to an HTML
// fragment.
//
// Templates are Go html/template sources loaded through an
// assets.AssetLoader. Three functions are available inside a template:
//
//	{{opt "id"}}              option value, "" when unset
//	{{opt "loading" "lazy"}}  option value, "lazy" when unset or empty
//	{{has "file"}}            true when the option is set and non-empty
//	{{markdown "message"}}    option value rendered as inline Markdown
//
// Rendering is total: any lookup, parse or execution failure produces the
// empty string. Failures are logged, never returned.
package render
