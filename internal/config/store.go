package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/alnah/mdbook-embedify/internal/yamlutil"
)

// Section is the book.toml table holding the preprocessor settings.
const Section = "preprocessor.embedify"

// EnvPrefix prefixes environment variable overrides.
const EnvPrefix = "EMBEDIFY_"

// Store is a dotted-path view of the preprocessor settings.
// Paths are relative to Section, e.g. "giscus.repo-id".
type Store struct {
	k *koanf.Koanf
}

// NewStore returns an empty Store.
func NewStore() *Store {
	return &Store{k: koanf.New(".")}
}

// FromBookConfig builds a Store from the whole book configuration as decoded
// from the mdBook context. Only the Section table is kept.
func FromBookConfig(book map[string]any) (*Store, error) {
	root := koanf.New(".")
	if err := root.Load(confmap.Provider(book, ""), nil); err != nil {
		return nil, fmt.Errorf("%w: book config: %v", ErrConfigParse, err)
	}
	return &Store{k: root.Cut(Section)}, nil
}

// LoadFile builds a Store from a standalone TOML or YAML file.
// The Section table is used when present, otherwise the document root.
func LoadFile(path string) (*Store, error) {
	parser, err := parserFor(path)
	if err != nil {
		return nil, err
	}

	root := koanf.New(".")
	if err := root.Load(file.Provider(path), parser); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, path, err)
	}

	if root.Exists(Section) {
		return &Store{k: root.Cut(Section)}, nil
	}
	return &Store{k: root}, nil
}

// parserFor picks a koanf parser from the file extension.
func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return tomlParser{}, nil
	case ".yaml", ".yml":
		return yamlutil.Parser(), nil
	default:
		return nil, fmt.Errorf("%w: unsupported extension %q (want .toml, .yaml, .yml)", ErrConfigParse, filepath.Ext(path))
	}
}

// LoadEnv merges EMBEDIFY_* variables over the current values.
// Double underscores separate table levels and single underscores become
// dashes: EMBEDIFY_GISCUS__REPO_ID sets giscus.repo-id.
func (s *Store) LoadEnv() error {
	if err := s.k.Load(env.Provider(EnvPrefix, ".", EnvKey), nil); err != nil {
		return fmt.Errorf("loading environment: %w", err)
	}
	return nil
}

// EnvKey converts an environment variable name to a store path.
func EnvKey(name string) string {
	key := strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
	key = strings.ReplaceAll(key, "__", ".")
	return strings.ReplaceAll(key, "_", "-")
}

// Set overrides a single path.
func (s *Store) Set(path string, value any) error {
	if err := s.k.Set(path, value); err != nil {
		return fmt.Errorf("setting %s: %w", path, err)
	}
	return nil
}

// Exists reports whether path holds a value.
func (s *Store) Exists(path string) bool {
	return s.k.Exists(path)
}

// String returns the value at path rendered as a string, or def when the
// path is missing or empty. Scalars are formatted, so 1 reads as "1".
func (s *Store) String(path, def string) string {
	if v := s.k.String(path); v != "" {
		return v
	}
	return def
}

// Bool returns the boolean at path. Missing or unparsable values are false.
func (s *Store) Bool(path string) bool {
	return s.k.Bool(path)
}

// Int returns the integer at path, or def when the path is missing.
func (s *Store) Int(path string, def int) int {
	if !s.k.Exists(path) {
		return def
	}
	return s.k.Int(path)
}

// Keys returns every leaf path in the store, sorted.
func (s *Store) Keys() []string {
	return s.k.Keys()
}
