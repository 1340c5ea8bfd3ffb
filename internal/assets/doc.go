// Package assets provides the HTML templates rendered for embed markers and
// global snippets.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in apps)
//	    ├── FilesystemLoader  - loads from a custom directory on disk
//	    └── AssetResolver     - chains loaders with custom-first fallback
//
// EmbeddedLoader provides the built-in apps (youtube, giscus, footer, etc.)
// compiled into the binary.
//
// FilesystemLoader serves templates from a directory, with path traversal
// protection and symlink resolution. It backs both the book-local
// template-dir setting and the per-user XDG data directory.
//
// AssetResolver is the loader used by the preprocessor. It tries the book
// directory, then the user directory, then the embedded set. A template found
// in an earlier layer shadows the same name in later ones.
//
// # Directory Structure
//
// A template directory is flat:
//
//	{basePath}/
//	├── youtube.html     # overrides the built-in youtube app
//	└── my-widget.html   # adds a new app usable as {% embed my-widget %}
//
// # Security
//
// Template names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
