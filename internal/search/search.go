// Package search finds topics by keyword.
package search

import (
	"sort"
	"strings"

	"github.com/jorge-barreto/guidebook/internal/content"
	"github.com/jorge-barreto/guidebook/internal/toc"
)

const (
	DefaultLimit = 20
	snippetLen   = 200
)

// Hit is one matching topic.
type Hit struct {
	Title     string  `json:"title"`
	Anchor    string  `json:"anchor"`
	Relevance float64 `json:"relevance"`
	Snippet   string  `json:"snippet"`
}

// Search matches every query word case-insensitively against each topic's
// title and body. Relevance is the fraction of query words found. Hits are
// ordered by relevance, ties kept in guide order. limit <= 0 means
// DefaultLimit.
func Search(topics []content.Topic, outline []toc.Entry, query string, limit int) []Hit {
	words := strings.Fields(strings.ToLower(query))
	if len(words) == 0 {
		return nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	var hits []Hit
	for i, t := range topics {
		text := t.Title + "\n" + t.Text()
		lower := strings.ToLower(text)
		matched := 0
		for _, w := range words {
			if strings.Contains(lower, w) {
				matched++
			}
		}
		if matched == 0 {
			continue
		}
		anchor := ""
		if i < len(outline) {
			anchor = outline[i].Anchor
		}
		hits = append(hits, Hit{
			Title:     t.Title,
			Anchor:    anchor,
			Relevance: float64(matched) / float64(len(words)),
			Snippet:   snippet(text, words),
		})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Relevance > hits[j].Relevance
	})
	if len(hits) > limit {
		hits = hits[:limit]
	}
	return hits
}

// snippet returns the first line containing any query word, trimmed and
// capped at snippetLen runes.
func snippet(text string, words []string) string {
	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(line)
		for _, w := range words {
			if strings.Contains(lower, w) {
				return truncate(strings.TrimSpace(line))
			}
		}
	}
	return ""
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= snippetLen {
		return s
	}
	return string(r[:snippetLen-3]) + "..."
}
