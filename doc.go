// Package embedify is an mdBook preprocessor that embeds HTML snippets into
// chapters.
//
// # Quick Start
//
// As an mdBook preprocessor, run the protocol over stdin and stdout:
//
//	p := embedify.NewPreprocessor(embedify.WithEnv())
//	if err := p.Run(ctx, os.Stdin, os.Stdout); err != nil {
//	    log.Fatal(err)
//	}
//
// # Markers
//
// A chapter embeds an app with a marker on a single line:
//
//	{% embed youtube id=dQw4w9WgXcQ loading=lazy %}
//
// The marker is replaced by the app's template rendered with the options.
// Unknown apps render to nothing. Markers between
//
//	<!-- embed ignore begin -->
//	<!-- embed ignore end -->
//
// are left as written, so documentation can show marker syntax literally.
//
// # Global Snippets
//
// The [preprocessor.embedify] table of book.toml can append snippets to
// every chapter, in this order: scroll-to-top button, announcement banner,
// giscus comments, footer.
//
//	[preprocessor.embedify]
//	scroll-to-top.enable = true
//	footer.enable = true
//	footer.message = "Copyright © 2025 **Example**"
//
// # Custom Templates
//
// Templates are Go html/template files named <app>.html. They are looked up
// in the book's template-dir, then in $XDG_DATA_HOME/mdbook-embedify/templates,
// then in the built-in set, so a custom youtube.html replaces the built-in one
// and a new my-widget.html adds {% embed my-widget %}. Inside a template:
//
//	{{opt "id"}}              option value
//	{{opt "loading" "lazy"}}  option value with a default
//	{{has "file"}}            option is set and non-empty
//	{{markdown "message"}}    option rendered as inline Markdown
//
// # Standalone Use
//
// Transformer applies the same rewriting to arbitrary Markdown text:
//
//	t, err := embedify.NewPreprocessor().TransformerFromFile("book.toml")
//	out := t.Transform(markdown)
package embedify
