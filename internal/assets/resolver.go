package assets

import (
	"errors"
	"sort"
)

// layer is one loader in the resolution chain.
type layer struct {
	origin Origin
	loader AssetLoader
}

// AssetResolver chains template loaders with custom-first fallback.
// Book templates shadow user templates, which shadow embedded ones.
type AssetResolver struct {
	layers []layer
}

// ResolverOptions configures which custom layers an AssetResolver uses.
type ResolverOptions struct {
	// BookDir is the book-local template directory. Empty disables it.
	BookDir string
	// UserDir overrides the user template directory. Empty means
	// UserTemplateDir().
	UserDir string
	// SkipUserDir disables the user template directory.
	SkipUserDir bool
}

// NewAssetResolver creates an AssetResolver.
// If opts.BookDir is set but invalid, returns an ErrInvalidBasePath error.
// A missing user directory is silently skipped.
func NewAssetResolver(opts ResolverOptions) (*AssetResolver, error) {
	r := &AssetResolver{}

	if opts.BookDir != "" {
		fsLoader, err := NewFilesystemLoader(opts.BookDir)
		if err != nil {
			return nil, err
		}
		r.layers = append(r.layers, layer{origin: OriginBook, loader: fsLoader})
	}

	if !opts.SkipUserDir {
		dir := opts.UserDir
		if dir == "" {
			dir = UserTemplateDir()
		}
		if u := userLoader(dir); u != nil {
			r.layers = append(r.layers, layer{origin: OriginUser, loader: u})
		}
	}

	r.layers = append(r.layers, layer{origin: OriginEmbedded, loader: NewEmbeddedLoader()})
	return r, nil
}

// LoadTemplate loads a template from the first layer that has it.
func (r *AssetResolver) LoadTemplate(name string) (string, error) {
	content, _, err := r.Resolve(name)
	return content, err
}

// Resolve loads a template and reports which layer provided it.
// Only "not found" errors fall through to the next layer; validation and
// I/O errors are returned immediately.
func (r *AssetResolver) Resolve(name string) (string, Origin, error) {
	var lastErr error
	for _, l := range r.layers {
		content, err := l.loader.LoadTemplate(name)
		if err == nil {
			return content, l.origin, nil
		}
		if !isNotFoundError(err) {
			return "", "", err
		}
		lastErr = err
	}
	return "", "", lastErr
}

// ListTemplates returns the union of template names across all layers.
func (r *AssetResolver) ListTemplates() ([]string, error) {
	infos, err := r.Templates()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(infos))
	for i, info := range infos {
		names[i] = info.Name
	}
	return names, nil
}

// Templates returns every available template with the layer that wins it.
func (r *AssetResolver) Templates() ([]TemplateInfo, error) {
	seen := make(map[string]bool)
	var infos []TemplateInfo

	for _, l := range r.layers {
		names, err := l.loader.ListTemplates()
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			if seen[name] {
				continue
			}
			seen[name] = true
			infos = append(infos, TemplateInfo{Name: name, Origin: l.origin})
		}
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos, nil
}

// HasCustomLoader returns true if a book or user layer is configured.
func (r *AssetResolver) HasCustomLoader() bool {
	return len(r.layers) > 1
}

// isNotFoundError checks if the error indicates the asset was not found.
func isNotFoundError(err error) bool {
	return errors.Is(err, ErrTemplateNotFound)
}

// Compile-time interface check.
var _ AssetLoader = (*AssetResolver)(nil)
