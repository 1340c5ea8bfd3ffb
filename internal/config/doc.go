// Package config reads the preprocessor settings.
//
// Settings live in the [preprocessor.embedify] table of book.toml:
//
//	[preprocessor.embedify]
//	scroll-to-top.enable = true
//	footer.enable = true
//	footer.message = "Copyright © 2025"
//	giscus.enable = true
//	giscus.repo = "owner/repo"
//	giscus.repo-id = "R_kgDO..."
//
// A Store gives dotted-path access to that table. It is filled from the
// mdBook context (FromBookConfig) or from a standalone TOML/YAML file
// (LoadFile), then EMBEDIFY_* environment variables are merged on top
// (LoadEnv). FromStore turns a Store into a validated Config snapshot.
package config
