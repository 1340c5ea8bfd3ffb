package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/alnah/mdbook-embedify/internal/pipeline"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound     = errors.New("config file not found")
	ErrConfigParse        = errors.New("failed to parse config")
	ErrInvalidIgnoreMode  = errors.New("invalid ignore mode")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// MaxWorkers bounds the workers setting.
const MaxWorkers = 256

// Defaults applied when a key is absent or empty.
const (
	DefaultBannerTheme      = "default"
	DefaultReactionsEnabled = "1"
	DefaultGiscusTheme      = "light"
	DefaultGiscusLang       = "en"
	DefaultGiscusLoading    = "lazy"
	DefaultIgnoreMode       = pipeline.IgnorePaired
)

// Config is the settings snapshot for one run. It is read-only once built.
type Config struct {
	ScrollToTop        ScrollToTopConfig
	AnnouncementBanner BannerConfig
	Giscus             GiscusConfig
	Footer             FooterConfig

	TemplateDir string              // Book-relative custom template directory
	IgnoreMode  pipeline.IgnoreMode // "paired" or "greedy"
	Workers     int                 // 0 = GOMAXPROCS
}

// ScrollToTopConfig enables the back-to-top button.
type ScrollToTopConfig struct {
	Enable bool
}

// BannerConfig defines the announcement banner.
type BannerConfig struct {
	Enable  bool
	ID      string
	Theme   string
	Message string
}

// GiscusConfig defines the giscus comment widget.
type GiscusConfig struct {
	Enable           bool
	Repo             string
	RepoID           string
	Category         string
	CategoryID       string
	ReactionsEnabled string
	Theme            string
	Lang             string
	Loading          string
}

// FooterConfig defines the page footer.
type FooterConfig struct {
	Enable  bool
	Message string
}

// DefaultConfig returns a configuration with every gate disabled.
func DefaultConfig() *Config {
	return &Config{
		AnnouncementBanner: BannerConfig{Theme: DefaultBannerTheme},
		Giscus: GiscusConfig{
			ReactionsEnabled: DefaultReactionsEnabled,
			Theme:            DefaultGiscusTheme,
			Lang:             DefaultGiscusLang,
			Loading:          DefaultGiscusLoading,
		},
		IgnoreMode: DefaultIgnoreMode,
	}
}

// FromStore reads a Config from s and validates it.
func FromStore(s *Store) (*Config, error) {
	cfg := &Config{
		ScrollToTop: ScrollToTopConfig{
			Enable: s.Bool("scroll-to-top.enable"),
		},
		AnnouncementBanner: BannerConfig{
			Enable:  s.Bool("announcement-banner.enable"),
			ID:      s.String("announcement-banner.id", ""),
			Theme:   s.String("announcement-banner.theme", DefaultBannerTheme),
			Message: s.String("announcement-banner.message", ""),
		},
		Giscus: GiscusConfig{
			Enable:           s.Bool("giscus.enable"),
			Repo:             s.String("giscus.repo", ""),
			RepoID:           s.String("giscus.repo-id", ""),
			Category:         s.String("giscus.category", ""),
			CategoryID:       s.String("giscus.category-id", ""),
			ReactionsEnabled: s.String("giscus.reactions-enabled", DefaultReactionsEnabled),
			Theme:            s.String("giscus.theme", DefaultGiscusTheme),
			Lang:             s.String("giscus.lang", DefaultGiscusLang),
			Loading:          s.String("giscus.loading", DefaultGiscusLoading),
		},
		Footer: FooterConfig{
			Enable:  s.Bool("footer.enable"),
			Message: s.String("footer.message", ""),
		},
		TemplateDir: s.String("template-dir", ""),
		IgnoreMode:  pipeline.IgnoreMode(s.String("ignore-mode", string(DefaultIgnoreMode))),
		Workers:     s.Int("workers", 0),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the enumerated and numeric settings. Free-form values
// (messages, themes, ids) are accepted as written.
// Called by FromStore, but available for callers that build a Config by hand.
func (c *Config) Validate() error {
	if !c.IgnoreMode.Valid() {
		return fmt.Errorf("%w: ignore-mode %q (must be %s or %s)",
			ErrInvalidIgnoreMode, c.IgnoreMode, pipeline.IgnorePaired, pipeline.IgnoreGreedy)
	}

	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("%w: workers must be between 0 and %d, got %d", ErrInvalidWorkerCount, MaxWorkers, c.Workers)
	}

	return nil
}

// Globals converts the enabled gates to the snippets appended per chapter.
func (c *Config) Globals() pipeline.Globals {
	var g pipeline.Globals

	g.ScrollToTop = c.ScrollToTop.Enable
	if c.AnnouncementBanner.Enable {
		g.AnnouncementBanner = &pipeline.BannerData{
			ID:      c.AnnouncementBanner.ID,
			Theme:   c.AnnouncementBanner.Theme,
			Message: c.AnnouncementBanner.Message,
		}
	}
	if c.Giscus.Enable {
		g.Giscus = &pipeline.GiscusData{
			Repo:             c.Giscus.Repo,
			RepoID:           c.Giscus.RepoID,
			Category:         c.Giscus.Category,
			CategoryID:       c.Giscus.CategoryID,
			ReactionsEnabled: c.Giscus.ReactionsEnabled,
			Theme:            c.Giscus.Theme,
			Lang:             c.Giscus.Lang,
			Loading:          c.Giscus.Loading,
		}
	}
	if c.Footer.Enable {
		g.Footer = &pipeline.FooterData{Message: c.Footer.Message}
	}

	return g
}

// KnownKeys lists the settings this preprocessor reads, as store paths.
var KnownKeys = []string{
	"scroll-to-top.enable",
	"announcement-banner.enable",
	"announcement-banner.id",
	"announcement-banner.theme",
	"announcement-banner.message",
	"giscus.enable",
	"giscus.repo",
	"giscus.repo-id",
	"giscus.category",
	"giscus.category-id",
	"giscus.reactions-enabled",
	"giscus.theme",
	"giscus.lang",
	"giscus.loading",
	"footer.enable",
	"footer.message",
	"template-dir",
	"ignore-mode",
	"workers",
}

// IsKnownKey reports whether path is a recognized setting.
func IsKnownKey(path string) bool {
	return slices.Contains(KnownKeys, path)
}
