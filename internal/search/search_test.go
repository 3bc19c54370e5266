package search

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jorge-barreto/guidebook/internal/content"
	"github.com/jorge-barreto/guidebook/internal/toc"
)

func fixture(t *testing.T) ([]content.Topic, []toc.Entry) {
	t.Helper()
	s, err := content.Load([]content.Record{
		{Title: "Syntax", Body: "Ruby methods end with `end`.\nBlocks use braces or do/end."},
		{Title: "Loops", Body: "Use each to iterate.\n```ruby\n[1, 2].each { |n| puts n }\n```"},
		{Title: "Blocks", Body: "A block is a closure passed to a method."},
	})
	require.NoError(t, err)
	topics := s.ListTopics()
	outline, err := toc.Build(topics)
	require.NoError(t, err)
	return topics, outline
}

func TestSearch_Relevance(t *testing.T) {
	topics, outline := fixture(t)
	hits := Search(topics, outline, "block method", 0)
	require.Len(t, hits, 2)
	// Syntax and Blocks both match both words; guide order breaks the tie.
	assert.Equal(t, "Syntax", hits[0].Title)
	assert.Equal(t, "Blocks", hits[1].Title)
	assert.Equal(t, 1.0, hits[0].Relevance)
	assert.Equal(t, "blocks", hits[1].Anchor)
}

func TestSearch_PartialMatch(t *testing.T) {
	topics, outline := fixture(t)
	hits := Search(topics, outline, "EACH closure", 0)
	require.Len(t, hits, 2)
	assert.Equal(t, 0.5, hits[0].Relevance)
	assert.Equal(t, "Loops", hits[0].Title)
	assert.Equal(t, "Use each to iterate.", hits[0].Snippet)
}

func TestSearch_Limit(t *testing.T) {
	topics, outline := fixture(t)
	hits := Search(topics, outline, "e", 1)
	assert.Len(t, hits, 1)
}

func TestSearch_EmptyQuery(t *testing.T) {
	topics, outline := fixture(t)
	assert.Nil(t, Search(topics, outline, "   ", 0))
}

func TestSearch_NoMatch(t *testing.T) {
	topics, outline := fixture(t)
	assert.Empty(t, Search(topics, outline, "python", 0))
}

func TestSnippet_Truncated(t *testing.T) {
	long := strings.Repeat("ruby ", 100)
	got := snippet(long, []string{"ruby"})
	assert.Equal(t, snippetLen, len([]rune(got)))
	assert.True(t, strings.HasSuffix(got, "..."))
}
