package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jorge-barreto/guidebook/internal/blocks"
	"github.com/jorge-barreto/guidebook/internal/search"
	"github.com/jorge-barreto/guidebook/internal/toc"
)

type ListTopicsInput struct{}

type TopicSummary struct {
	Number int    `json:"number"`
	Title  string `json:"title"`
	Anchor string `json:"anchor"`
}

type ListTopicsOutput struct {
	Topics []TopicSummary `json:"topics"`
	Count  int            `json:"count"`
}

type ReadTopicInput struct {
	Topic string `json:"topic" jsonschema:"anchor or title of the topic to read"`
}

type ReadTopicOutput struct {
	Number   int    `json:"number"`
	Title    string `json:"title"`
	Anchor   string `json:"anchor"`
	Markdown string `json:"markdown"`
}

type SearchInput struct {
	Query string `json:"query" jsonschema:"keywords to look for in topic titles and bodies"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 20)"`
}

type SearchOutput struct {
	Results []search.Hit `json:"results"`
	Count   int          `json:"count"`
}

type OutlineInput struct{}

type OutlineOutput struct {
	Title   string      `json:"title"`
	Entries []toc.Entry `json:"entries"`
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_topics",
		Description: "List every topic in the guide, in reading order",
	}, s.handleListTopics)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "read_topic",
		Description: "Read one topic as markdown, by anchor or title",
	}, s.handleReadTopic)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_guide",
		Description: "Keyword search across all topics",
	}, s.handleSearch)
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_outline",
		Description: "Get the guide title and table of contents",
	}, s.handleOutline)
}

func (s *Server) handleListTopics(ctx context.Context, _ *mcp.CallToolRequest, _ ListTopicsInput) (*mcp.CallToolResult, ListTopicsOutput, error) {
	g := s.current()
	out := ListTopicsOutput{Topics: make([]TopicSummary, len(g.Outline)), Count: len(g.Outline)}
	for i, e := range g.Outline {
		out.Topics[i] = TopicSummary{Number: i + 1, Title: e.Title, Anchor: e.Anchor}
	}
	return nil, out, nil
}

func (s *Server) handleReadTopic(ctx context.Context, _ *mcp.CallToolRequest, in ReadTopicInput) (*mcp.CallToolResult, ReadTopicOutput, error) {
	g := s.current()
	i, ok := g.Find(in.Topic)
	if !ok {
		return nil, ReadTopicOutput{}, fmt.Errorf("no topic %q; call list_topics for valid anchors", in.Topic)
	}
	sec := g.Section(i)
	return nil, ReadTopicOutput{
		Number:   sec.Number,
		Title:    sec.Entry.Title,
		Anchor:   sec.Entry.Anchor,
		Markdown: blocks.Join(sec.Topic.Body),
	}, nil
}

func (s *Server) handleSearch(ctx context.Context, _ *mcp.CallToolRequest, in SearchInput) (*mcp.CallToolResult, SearchOutput, error) {
	if in.Query == "" {
		return nil, SearchOutput{}, fmt.Errorf("query is required")
	}
	g := s.current()
	hits := search.Search(g.Topics, g.Outline, in.Query, in.Limit)
	if hits == nil {
		hits = []search.Hit{}
	}
	return nil, SearchOutput{Results: hits, Count: len(hits)}, nil
}

func (s *Server) handleOutline(ctx context.Context, _ *mcp.CallToolRequest, _ OutlineInput) (*mcp.CallToolResult, OutlineOutput, error) {
	g := s.current()
	return nil, OutlineOutput{Title: g.Title, Entries: g.Outline}, nil
}
