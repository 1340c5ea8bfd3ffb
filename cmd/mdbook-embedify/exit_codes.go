package main

import (
	"errors"
	"os"

	embedify "github.com/alnah/mdbook-embedify"
	"github.com/alnah/mdbook-embedify/internal/assets"
	"github.com/alnah/mdbook-embedify/internal/config"
	"github.com/alnah/mdbook-embedify/internal/render"
)

// Exit codes for the mdbook-embedify CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess  = 0 // Successful run
	ExitGeneral  = 1 // General/unexpected error, or renderer not supported
	ExitUsage    = 2 // Invalid flags, config, or templates
	ExitIO       = 3 // File not found, permission denied
	ExitProtocol = 4 // Malformed mdBook payload
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Protocol errors (exit 4)
	if errors.Is(err, embedify.ErrInvalidInput) {
		return ExitProtocol
	}

	// Usage/config/template errors (exit 2)
	// Checked before I/O: a missing config file is a usage mistake.
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrInvalidExtension) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, embedify.ErrConfigNotFound) ||
		errors.Is(err, embedify.ErrInvalidConfig) ||
		errors.Is(err, embedify.ErrInvalidTemplateDir) ||
		errors.Is(err, embedify.ErrInvalidTemplateName) ||
		errors.Is(err, embedify.ErrTemplateNotFound) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrInvalidIgnoreMode) ||
		errors.Is(err, config.ErrInvalidWorkerCount) ||
		errors.Is(err, assets.ErrTemplateNotFound) ||
		errors.Is(err, assets.ErrInvalidAssetName) ||
		errors.Is(err, assets.ErrInvalidBasePath) ||
		errors.Is(err, assets.ErrPathTraversal) ||
		errors.Is(err, render.ErrTemplateParse) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, assets.ErrAssetRead) {
		return ExitIO
	}

	return ExitGeneral
}
