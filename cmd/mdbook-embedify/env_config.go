package main

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/alnah/mdbook-embedify/internal/config"
)

// warnUnknownEnvVars logs warnings for EMBEDIFY_* variables that map to no
// setting. Helps catch typos like EMBEDIFY_FOOTER_MESSAGE (single
// underscore) instead of EMBEDIFY_FOOTER__MESSAGE.
func warnUnknownEnvVars(environ []string, logger zerolog.Logger) {
	for _, name := range unknownEnvVars(environ) {
		logger.Warn().
			Str("variable", name).
			Str("setting", config.EnvKey(name)).
			Msg("unknown environment variable (typo?)")
	}
}

// unknownEnvVars returns the EMBEDIFY_* names in environ with no matching setting.
func unknownEnvVars(environ []string) []string {
	var unknown []string
	for _, env := range environ {
		if !strings.HasPrefix(env, config.EnvPrefix) {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !config.IsKnownKey(config.EnvKey(name)) {
			unknown = append(unknown, name)
		}
	}
	return unknown
}
