package pipeline

import (
	"strings"

	"github.com/alnah/mdbook-embedify/internal/render"
)

// Names of the templates appended by the global gates.
const (
	ScrollToTopTemplate        = "scroll-to-top"
	AnnouncementBannerTemplate = "announcement-banner"
	GiscusTemplate             = "giscus"
	FooterTemplate             = "footer"
)

// BannerData holds the announcement banner options.
type BannerData struct {
	ID      string
	Theme   string
	Message string
}

// GiscusData holds the giscus comment widget options.
type GiscusData struct {
	Repo             string
	RepoID           string
	Category         string
	CategoryID       string
	ReactionsEnabled string
	Theme            string
	Lang             string
	Loading          string
}

// FooterData holds the footer options.
type FooterData struct {
	Message string
}

// Globals selects the snippets appended to every chapter.
// A nil field (or false for ScrollToTop) disables the gate.
type Globals struct {
	ScrollToTop        bool
	AnnouncementBanner *BannerData
	Giscus             *GiscusData
	Footer             *FooterData
}

// Enabled reports whether any gate is on.
func (g Globals) Enabled() bool {
	return g.ScrollToTop || g.AnnouncementBanner != nil || g.Giscus != nil || g.Footer != nil
}

func (d *BannerData) options() render.Options {
	return render.Options{
		{Key: "id", Value: d.ID},
		{Key: "message", Value: d.Message},
		{Key: "theme", Value: d.Theme},
	}
}

func (d *GiscusData) options() render.Options {
	return render.Options{
		{Key: "repo", Value: d.Repo},
		{Key: "repo-id", Value: d.RepoID},
		{Key: "category", Value: d.Category},
		{Key: "category-id", Value: d.CategoryID},
		{Key: "reactions-enabled", Value: d.ReactionsEnabled},
		{Key: "theme", Value: d.Theme},
		{Key: "lang", Value: d.Lang},
		{Key: "loading", Value: d.Loading},
	}
}

func (d *FooterData) options() render.Options {
	return render.Options{
		{Key: "message", Value: d.Message},
	}
}

// appendGlobals appends the enabled snippets to content in fixed order:
// scroll-to-top, announcement banner, giscus, footer.
func appendGlobals(content string, g Globals, r render.Renderer) string {
	if !g.Enabled() {
		return content
	}

	var b strings.Builder
	b.WriteString(content)

	if g.ScrollToTop {
		b.WriteString(r.Render(ScrollToTopTemplate, nil))
	}
	if g.AnnouncementBanner != nil {
		b.WriteString(r.Render(AnnouncementBannerTemplate, g.AnnouncementBanner.options()))
	}
	if g.Giscus != nil {
		b.WriteString(r.Render(GiscusTemplate, g.Giscus.options()))
	}
	if g.Footer != nil {
		b.WriteString(r.Render(FooterTemplate, g.Footer.options()))
	}

	return b.String()
}
