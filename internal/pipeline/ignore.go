package pipeline

import (
	"encoding/hex"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/zeebo/blake3"
)

// Ignore region delimiters.
const (
	IgnoreBegin = "<!-- embed ignore begin -->"
	IgnoreEnd   = "<!-- embed ignore end -->"
)

// IgnoreMode selects how ignore delimiters are paired.
type IgnoreMode string

const (
	// IgnorePaired pairs each begin with the nearest following end.
	IgnorePaired IgnoreMode = "paired"

	// IgnoreGreedy spans from the first begin to the last end as one region.
	IgnoreGreedy IgnoreMode = "greedy"
)

// Valid reports whether m is a known ignore mode.
func (m IgnoreMode) Valid() bool {
	return m == IgnorePaired || m == IgnoreGreedy
}

var (
	pairedIgnorePattern = regexp.MustCompile(`(?s)` + regexp.QuoteMeta(IgnoreBegin) + `.*?` + regexp.QuoteMeta(IgnoreEnd))
	greedyIgnorePattern = regexp.MustCompile(`(?s)` + regexp.QuoteMeta(IgnoreBegin) + `.*` + regexp.QuoteMeta(IgnoreEnd))
)

// Placeholders are wrapped in Unicode Private Use Area characters so they
// cannot be mistaken for markers and are unlikely to appear in Markdown.
const (
	placeholderStart = "\uE010" // U+E010: Private Use Area
	placeholderEnd   = "\uE011" // U+E011: Private Use Area
	placeholderTag   = "EMBEDIFY_IGNORE_"
)

// ignoredSection records a protected region and the token standing in for it.
type ignoredSection struct {
	placeholder string
	literal     string
}

// extractIgnored replaces every ignore region in content with a placeholder.
// Regions are numbered from 0 in order of appearance. Returns content
// unchanged and a nil slice when there is no complete region.
func extractIgnored(content string, mode IgnoreMode) (string, []ignoredSection) {
	pattern := pairedIgnorePattern
	if mode == IgnoreGreedy {
		pattern = greedyIgnorePattern
	}

	locs := pattern.FindAllStringIndex(content, -1)
	if len(locs) == 0 {
		return content, nil
	}

	prefix := placeholderPrefix(content)
	sections := make([]ignoredSection, 0, len(locs))

	var b strings.Builder
	b.Grow(len(content))
	last := 0
	for i, loc := range locs {
		placeholder := prefix + strconv.Itoa(i) + placeholderEnd
		sections = append(sections, ignoredSection{
			placeholder: placeholder,
			literal:     content[loc[0]:loc[1]],
		})
		b.WriteString(content[last:loc[0]])
		b.WriteString(placeholder)
		last = loc[1]
	}
	b.WriteString(content[last:])

	return b.String(), sections
}

// restoreIgnored swaps every placeholder back to its literal text.
func restoreIgnored(content string, sections []ignoredSection) string {
	if len(sections) == 0 {
		return content
	}

	pairs := make([]string, 0, len(sections)*2)
	for _, s := range sections {
		pairs = append(pairs, s.placeholder, s.literal)
	}
	return strings.NewReplacer(pairs...).Replace(content)
}

// placeholderPrefix derives a placeholder prefix that does not occur in
// content. The salt is a blake3 digest of the content, re-hashed until the
// prefix is absent, so the same chapter always yields the same tokens.
func placeholderPrefix(content string) string {
	digest := blake3.Sum256([]byte(content))
	for {
		prefix := fmt.Sprintf("%s%s%s_", placeholderStart, placeholderTag, hex.EncodeToString(digest[:6]))
		if !strings.Contains(content, prefix) {
			return prefix
		}
		digest = blake3.Sum256(digest[:])
	}
}
