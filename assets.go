package embedify

import (
	"errors"
	"fmt"

	"github.com/alnah/mdbook-embedify/internal/assets"
)

// TemplateLoader defines the contract for loading app templates.
// Implementations may load from a directory, embedded files, a database, etc.
//
// The library provides NewTemplateLoader() for directory-based loading with
// fallback to the built-in templates. Implement this interface for custom
// backends and pass it with WithTemplateLoader.
type TemplateLoader interface {
	// LoadTemplate loads an html/template source by app name.
	// Returns ErrTemplateNotFound if the app doesn't exist.
	LoadTemplate(name string) (string, error)

	// ListTemplates returns the available app names, sorted.
	ListTemplates() ([]string, error)
}

// NewTemplateLoader creates a TemplateLoader for dir.
// If dir is empty, returns a loader using only the built-in templates.
// If dir is set, its <name>.html files take precedence over the built-ins.
//
// Returns ErrInvalidTemplateDir if dir is set but not a readable directory.
func NewTemplateLoader(dir string) (TemplateLoader, error) {
	resolver, err := assets.NewAssetResolver(assets.ResolverOptions{BookDir: dir, SkipUserDir: true})
	if err != nil {
		return nil, convertAssetError(err)
	}
	return &templateLoaderAdapter{resolver: resolver}, nil
}

// templateLoaderAdapter wraps the internal resolver to return public errors.
type templateLoaderAdapter struct {
	resolver *assets.AssetResolver
}

func (a *templateLoaderAdapter) LoadTemplate(name string) (string, error) {
	content, err := a.resolver.LoadTemplate(name)
	if err != nil {
		return "", convertAssetError(err)
	}
	return content, nil
}

func (a *templateLoaderAdapter) ListTemplates() ([]string, error) {
	names, err := a.resolver.ListTemplates()
	if err != nil {
		return nil, convertAssetError(err)
	}
	return names, nil
}

// publicToInternalLoader wraps a public TemplateLoader for the renderer,
// mapping public sentinels back to the internal ones it checks.
type publicToInternalLoader struct {
	pub TemplateLoader
}

func (a *publicToInternalLoader) LoadTemplate(name string) (string, error) {
	if err := assets.ValidateAssetName(name); err != nil {
		return "", err
	}
	content, err := a.pub.LoadTemplate(name)
	if err != nil {
		if errors.Is(err, ErrTemplateNotFound) {
			return "", fmt.Errorf("%w: %v", assets.ErrTemplateNotFound, err)
		}
		return "", err
	}
	return content, nil
}

func (a *publicToInternalLoader) ListTemplates() ([]string, error) {
	return a.pub.ListTemplates()
}

// convertAssetError maps internal asset errors to public errors.
func convertAssetError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, assets.ErrTemplateNotFound):
		return wrapError(ErrTemplateNotFound, err)
	case errors.Is(err, assets.ErrInvalidAssetName):
		return wrapError(ErrInvalidTemplateName, err)
	case errors.Is(err, assets.ErrInvalidBasePath):
		return wrapError(ErrInvalidTemplateDir, err)
	case errors.Is(err, assets.ErrPathTraversal):
		return wrapError(ErrInvalidTemplateDir, err)
	default:
		return err
	}
}

// Compile-time interface checks.
var (
	_ TemplateLoader     = (*templateLoaderAdapter)(nil)
	_ assets.AssetLoader = (*publicToInternalLoader)(nil)
)
