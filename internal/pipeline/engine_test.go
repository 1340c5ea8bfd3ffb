package pipeline

// Notes:
// - Engine.Transform: we test identity, marker substitution, ignore regions,
//   gate ordering, and that rendered output is not re-scanned.
// - HasMarkerTokens: covered with a small table.
// - A fake renderer stands in for templates so assertions see the app name
//   and options exactly as the engine passed them.

import (
	"strings"
	"testing"

	"github.com/alnah/mdbook-embedify/internal/render"
)

// ---------------------------------------------------------------------------
// TestEngine_Transform - Marker expansion and ignore regions
// ---------------------------------------------------------------------------

func TestEngine_Transform(t *testing.T) {
	t.Parallel()

	r := render.RendererFunc(fakeRender)

	tests := []struct {
		name    string
		content string
		mode    IgnoreMode
		want    string
	}{
		{
			name:    "no markers no gates is identity",
			content: "# Title\n\nSome text with {% raw %} and %}.\n",
			want:    "# Title\n\nSome text with {% raw %} and %}.\n",
		},
		{
			name:    "empty chapter",
			content: "",
			want:    "",
		},
		{
			name:    "single marker",
			content: "Before\n{% embed youtube id=abc %}\nAfter",
			want:    "Before\n[youtube|id=abc]\nAfter",
		},
		{
			name:    "marker without options",
			content: "{% embed scroll-to-top %}",
			want:    "[scroll-to-top|]",
		},
		{
			name:    "two markers on one line",
			content: "{% embed a x=1 %} and {% embed b y=2 %}",
			want:    "[a|x=1] and [b|y=2]",
		},
		{
			name:    "bogus token dropped",
			content: "{% embed app key1=val1   key2=val2 bogus %}",
			want:    "[app|key1=val1,key2=val2]",
		},
		{
			name:    "unknown app still rendered by renderer",
			content: "{% embed nope %}",
			want:    "[nope|]",
		},
		{
			name:    "marker spanning lines is not matched",
			content: "{% embed youtube\nid=abc %}",
			want:    "{% embed youtube\nid=abc %}",
		},
		{
			name:    "missing space after embed",
			content: "{%embed youtube id=abc %}",
			want:    "{%embed youtube id=abc %}",
		},
		{
			name:    "options never contain close token",
			content: "{% embed a x=%} y %}",
			want:    "{% embed a x=%} y %}",
		},
		{
			name:    "close token in options does not hide later marker",
			content: "{% embed a x=%} {% embed b y=1 %}",
			want:    "{% embed a x=%} [b|y=1]",
		},
		{
			name:    "percent before closing space kept in options",
			content: "{% embed a ratio=50% %}",
			want:    "[a|ratio=50%]",
		},
		{
			name:    "percent inside option value",
			content: "{% embed a w=100%x %}",
			want:    "[a|w=100%x]",
		},
		{
			name:    "ignore region keeps literal marker",
			content: IgnoreBegin + "\n{% embed foo %}\n" + IgnoreEnd,
			want:    IgnoreBegin + "\n{% embed foo %}\n" + IgnoreEnd,
		},
		{
			name:    "marker outside ignore region expanded",
			content: "{% embed a %}" + IgnoreBegin + "{% embed b %}" + IgnoreEnd + "{% embed c %}",
			want:    "[a|]" + IgnoreBegin + "{% embed b %}" + IgnoreEnd + "[c|]",
		},
		{
			name:    "paired mode expands between regions",
			content: IgnoreBegin + "x" + IgnoreEnd + "{% embed mid %}" + IgnoreBegin + "y" + IgnoreEnd,
			mode:    IgnorePaired,
			want:    IgnoreBegin + "x" + IgnoreEnd + "[mid|]" + IgnoreBegin + "y" + IgnoreEnd,
		},
		{
			name:    "greedy mode protects between regions",
			content: IgnoreBegin + "x" + IgnoreEnd + "{% embed mid %}" + IgnoreBegin + "y" + IgnoreEnd,
			mode:    IgnoreGreedy,
			want:    IgnoreBegin + "x" + IgnoreEnd + "{% embed mid %}" + IgnoreBegin + "y" + IgnoreEnd,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := NewEngine(r, Globals{}, tt.mode)
			if got := e.Transform(tt.content); got != tt.want {
				t.Errorf("Transform() = %q, want %q", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestEngine_Transform_NoPlaceholderResidue - Multiple regions restore fully
// ---------------------------------------------------------------------------

func TestEngine_Transform_NoPlaceholderResidue(t *testing.T) {
	t.Parallel()

	content := strings.Join([]string{
		IgnoreBegin, "{% embed one %}", IgnoreEnd,
		"{% embed live %}",
		IgnoreBegin, "{% embed two %}", IgnoreEnd,
	}, "\n")

	e := NewEngine(render.RendererFunc(fakeRender), Globals{}, IgnorePaired)
	got := e.Transform(content)

	if strings.Contains(got, placeholderStart) || strings.Contains(got, placeholderTag) {
		t.Fatalf("placeholder left in output: %q", got)
	}
	if !strings.Contains(got, "{% embed one %}") || !strings.Contains(got, "{% embed two %}") {
		t.Errorf("protected markers missing: %q", got)
	}
	if !strings.Contains(got, "[live|]") {
		t.Errorf("live marker not expanded: %q", got)
	}
}

// ---------------------------------------------------------------------------
// TestEngine_Transform_NoRescan - Rendered output is emitted verbatim
// ---------------------------------------------------------------------------

func TestEngine_Transform_NoRescan(t *testing.T) {
	t.Parallel()

	calls := 0
	r := render.RendererFunc(func(name string, _ render.Options) string {
		calls++
		if name == "outer" {
			return "{% embed inner %}"
		}
		return "INNER"
	})

	e := NewEngine(r, Globals{}, IgnorePaired)
	got := e.Transform("{% embed outer %}")

	if got != "{% embed inner %}" {
		t.Errorf("Transform() = %q, want rendered text verbatim", got)
	}
	if calls != 1 {
		t.Errorf("renderer calls = %d, want 1", calls)
	}
}

// ---------------------------------------------------------------------------
// TestEngine_Transform_IgnoreInsideOptions - Renderer sees original text
// ---------------------------------------------------------------------------

func TestEngine_Transform_IgnoreInsideOptions(t *testing.T) {
	t.Parallel()

	region := IgnoreBegin + "My talk" + IgnoreEnd
	var seen []string
	r := render.RendererFunc(func(name string, opts render.Options) string {
		for _, o := range opts {
			seen = append(seen, o.Value)
		}
		return fakeRender(name, opts)
	})

	e := NewEngine(r, Globals{}, IgnorePaired)
	got := e.Transform("{% embed youtube id=abc title=" + region + " %}")

	if want := "[youtube|id=abc,title=" + region + "]"; got != want {
		t.Errorf("Transform() = %q, want %q", got, want)
	}
	if len(seen) != 2 || seen[1] != region {
		t.Errorf("renderer saw values %q, want title %q", seen, region)
	}
	for _, v := range seen {
		if strings.Contains(v, placeholderStart) {
			t.Errorf("placeholder reached renderer: %q", v)
		}
	}
}

// ---------------------------------------------------------------------------
// TestEngine_Transform_Globals - Gate order and options
// ---------------------------------------------------------------------------

func TestEngine_Transform_Globals(t *testing.T) {
	t.Parallel()

	all := Globals{
		ScrollToTop:        true,
		AnnouncementBanner: &BannerData{ID: "b1", Theme: "info", Message: "hi"},
		Giscus: &GiscusData{
			Repo: "o/r", RepoID: "R1", Category: "c", CategoryID: "C1",
			ReactionsEnabled: "1", Theme: "light", Lang: "en", Loading: "lazy",
		},
		Footer: &FooterData{Message: "bye"},
	}

	t.Run("all gates on empty chapter in fixed order", func(t *testing.T) {
		t.Parallel()

		rec := &recordingRenderer{}
		got := NewEngine(rec, all, IgnorePaired).Transform("")

		wantOrder := []string{ScrollToTopTemplate, AnnouncementBannerTemplate, GiscusTemplate, FooterTemplate}
		if strings.Join(rec.calls, ",") != strings.Join(wantOrder, ",") {
			t.Fatalf("render order = %v, want %v", rec.calls, wantOrder)
		}

		want := "[scroll-to-top|]" +
			"[announcement-banner|id=b1,message=hi,theme=info]" +
			"[giscus|repo=o/r,repo-id=R1,category=c,category-id=C1,reactions-enabled=1,theme=light,lang=en,loading=lazy]" +
			"[footer|message=bye]"
		if got != want {
			t.Errorf("Transform() = %q, want %q", got, want)
		}
	})

	t.Run("globals appended after expansion", func(t *testing.T) {
		t.Parallel()

		g := Globals{Footer: &FooterData{Message: "end"}}
		got := NewEngine(render.RendererFunc(fakeRender), g, IgnorePaired).Transform("{% embed a %}")

		if got != "[a|][footer|message=end]" {
			t.Errorf("Transform() = %q", got)
		}
	})

	t.Run("globals appended to chapter without markers", func(t *testing.T) {
		t.Parallel()

		g := Globals{ScrollToTop: true}
		got := NewEngine(render.RendererFunc(fakeRender), g, IgnorePaired).Transform("text")

		if got != "text[scroll-to-top|]" {
			t.Errorf("Transform() = %q", got)
		}
	})

	t.Run("disabled gates render nothing", func(t *testing.T) {
		t.Parallel()

		rec := &recordingRenderer{}
		NewEngine(rec, Globals{}, IgnorePaired).Transform("text")

		if len(rec.calls) != 0 {
			t.Errorf("renderer called %d times, want 0", len(rec.calls))
		}
	})
}

// ---------------------------------------------------------------------------
// TestNewEngine - Ignore mode fallback
// ---------------------------------------------------------------------------

func TestNewEngine(t *testing.T) {
	t.Parallel()

	e := NewEngine(render.RendererFunc(fakeRender), Globals{}, "bogus")
	if e.ignoreMode != IgnorePaired {
		t.Errorf("ignoreMode = %q, want %q", e.ignoreMode, IgnorePaired)
	}
}

// ---------------------------------------------------------------------------
// TestHasMarkerTokens
// ---------------------------------------------------------------------------

func TestHasMarkerTokens(t *testing.T) {
	t.Parallel()

	tests := []struct {
		content string
		want    bool
	}{
		{"", false},
		{"{% embed x %}", true},
		{"{% embed x", false},
		{"only %} here", false},
		{"{% embed a\n and later %}", true},
	}

	for _, tt := range tests {
		if got := HasMarkerTokens(tt.content); got != tt.want {
			t.Errorf("HasMarkerTokens(%q) = %v, want %v", tt.content, got, tt.want)
		}
	}
}
