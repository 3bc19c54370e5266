package mcpserver

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jorge-barreto/guidebook/internal/content"
	"github.com/jorge-barreto/guidebook/internal/guide"
	"github.com/jorge-barreto/guidebook/internal/toc"
)

func testGuide(t *testing.T) *guide.Guide {
	t.Helper()
	store, err := content.Load([]content.Record{
		{Title: "Syntax", Body: "Methods end with `end`."},
		{Title: "Loops", Body: "Use each.\n\n```ruby\n[1, 2].each { |n| puts n }\n```"},
	})
	require.NoError(t, err)
	g, err := guide.Assemble("Ruby", store)
	require.NoError(t, err)
	return g
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	s, err := New(testGuide(t))
	require.NoError(t, err)
	return s
}

func makeReadResourceRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{
		Params: &mcp.ReadResourceParams{URI: uri},
	}
}

func TestNew_RequiresGuide(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrMissingGuide)
}

func TestHandleListTopics(t *testing.T) {
	s := newTestServer(t)
	_, out, err := s.handleListTopics(context.Background(), nil, ListTopicsInput{})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Count)
	assert.Equal(t, TopicSummary{Number: 2, Title: "Loops", Anchor: "loops"}, out.Topics[1])
}

func TestHandleReadTopic(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	t.Run("by anchor", func(t *testing.T) {
		_, out, err := s.handleReadTopic(ctx, nil, ReadTopicInput{Topic: "loops"})
		require.NoError(t, err)
		assert.Equal(t, "Loops", out.Title)
		assert.Equal(t, 2, out.Number)
		assert.Contains(t, out.Markdown, "```ruby\n[1, 2].each")
	})

	t.Run("by title", func(t *testing.T) {
		_, out, err := s.handleReadTopic(ctx, nil, ReadTopicInput{Topic: "Syntax"})
		require.NoError(t, err)
		assert.Equal(t, "syntax", out.Anchor)
	})

	t.Run("unknown topic", func(t *testing.T) {
		_, _, err := s.handleReadTopic(ctx, nil, ReadTopicInput{Topic: "closures"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "list_topics")
	})
}

func TestHandleSearch(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	_, out, err := s.handleSearch(ctx, nil, SearchInput{Query: "each"})
	require.NoError(t, err)
	require.Equal(t, 1, out.Count)
	assert.Equal(t, "loops", out.Results[0].Anchor)

	_, out, err = s.handleSearch(ctx, nil, SearchInput{Query: "python"})
	require.NoError(t, err)
	assert.NotNil(t, out.Results)
	assert.Equal(t, 0, out.Count)

	_, _, err = s.handleSearch(ctx, nil, SearchInput{})
	assert.Error(t, err)
}

func TestHandleOutline(t *testing.T) {
	s := newTestServer(t)
	_, out, err := s.handleOutline(context.Background(), nil, OutlineInput{})
	require.NoError(t, err)
	assert.Equal(t, "Ruby", out.Title)
	assert.Equal(t, []toc.Entry{{Title: "Syntax", Anchor: "syntax"}, {Title: "Loops", Anchor: "loops"}}, out.Entries)
}

func TestOutlineResource(t *testing.T) {
	s := newTestServer(t)
	res, err := s.handleOutlineResource(context.Background(), makeReadResourceRequest(outlineURI))
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	assert.Equal(t, "application/json", res.Contents[0].MIMEType)

	var got OutlineOutput
	require.NoError(t, json.Unmarshal([]byte(res.Contents[0].Text), &got))
	assert.Len(t, got.Entries, 2)
}

func TestTopicResource(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	res, err := s.handleTopicResource(ctx, makeReadResourceRequest("guide://topics/syntax"))
	require.NoError(t, err)
	assert.Equal(t, "# Syntax\n\nMethods end with `end`.", res.Contents[0].Text)

	_, err = s.handleTopicResource(ctx, makeReadResourceRequest("guide://topics/missing"))
	assert.Error(t, err)
	_, err = s.handleTopicResource(ctx, makeReadResourceRequest("guide://other"))
	assert.Error(t, err)
}

func TestSwap(t *testing.T) {
	s := newTestServer(t)
	store, err := content.Load([]content.Record{{Title: "Blocks", Body: "Closures."}})
	require.NoError(t, err)
	g, err := guide.Assemble("Ruby 2", store)
	require.NoError(t, err)
	s.Swap(g)

	_, out, err := s.handleListTopics(context.Background(), nil, ListTopicsInput{})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Count)
	assert.Equal(t, "blocks", out.Topics[0].Anchor)
}
