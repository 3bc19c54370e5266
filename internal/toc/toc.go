// Package toc derives the navigable outline of a guide from its topic titles.
package toc

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jorge-barreto/guidebook/internal/content"
)

// ErrEmptyContent is returned when there are no topics to outline.
var ErrEmptyContent = errors.New("no topics to build an outline from")

// Entry is one line of the outline.
type Entry struct {
	Title  string `json:"title"`
	Anchor string `json:"anchor"`
}

var (
	stripRe  = regexp.MustCompile(`[^\p{L}\p{N}-]`)
	hyphenRe = regexp.MustCompile(`-+`)
)

// Slugify turns a title into an anchor: lowercase, spaces to hyphens,
// everything but letters, digits and hyphens removed.
func Slugify(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = stripRe.ReplaceAllString(slug, "")
	slug = hyphenRe.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

// Build returns one entry per topic, in topic order. Anchors are unique:
// a slug already taken gets a numeric suffix.
func Build(topics []content.Topic) ([]Entry, error) {
	if len(topics) == 0 {
		return nil, ErrEmptyContent
	}
	taken := make(map[string]bool, len(topics))
	out := make([]Entry, 0, len(topics))
	for _, t := range topics {
		base := Slugify(t.Title)
		if base == "" {
			base = "topic"
		}
		anchor := base
		for n := 1; taken[anchor]; n++ {
			anchor = fmt.Sprintf("%s-%d", base, n)
		}
		taken[anchor] = true
		out = append(out, Entry{Title: t.Title, Anchor: anchor})
	}
	return out, nil
}

// Collisions reports titles whose natural slug was already used by an
// earlier title, keyed by the later title.
func Collisions(entries []Entry) map[string]string {
	firstBySlug := make(map[string]string)
	out := make(map[string]string)
	for _, e := range entries {
		base := Slugify(e.Title)
		if base == "" {
			base = "topic"
		}
		if first, ok := firstBySlug[base]; ok {
			out[e.Title] = first
			continue
		}
		firstBySlug[base] = e.Title
	}
	return out
}
