// Package mdbook implements the mdBook preprocessor protocol.
//
// mdBook runs a preprocessor twice. First as
//
//	mdbook-embedify supports <renderer>
//
// where the exit status says whether the renderer is supported. Then with no
// arguments, writing a JSON array [context, book] to stdin and reading the
// modified book back from stdout.
//
// Book decodes both the mdBook 0.4 shape ({"sections": [...]}) and the 0.5
// shape ({"items": [...]}). Only chapter names, contents and sub-items are
// interpreted; every other field is carried through untouched.
package mdbook
