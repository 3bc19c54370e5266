package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jorge-barreto/guidebook/internal/blocks"
)

const (
	uriScheme   = "guide://"
	outlineURI  = uriScheme + "outline"
	topicPrefix = uriScheme + "topics/"
)

func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         outlineURI,
		Name:        "outline",
		Description: "Guide title and table of contents",
		MIMEType:    "application/json",
	}, s.handleOutlineResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: topicPrefix + "{anchor}",
		Name:        "topic",
		Description: "One topic as markdown",
		MIMEType:    "text/markdown",
	}, s.handleTopicResource)
}

func (s *Server) handleOutlineResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	g := s.current()
	data, err := json.MarshalIndent(OutlineOutput{Title: g.Title, Entries: g.Outline}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding outline: %w", err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func (s *Server) handleTopicResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	anchor, ok := strings.CutPrefix(req.Params.URI, topicPrefix)
	if !ok || anchor == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	g := s.current()
	i, found := g.Find(anchor)
	if !found {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	t := g.Topics[i]
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/markdown",
			Text:     "# " + t.Title + "\n\n" + blocks.Join(t.Body),
		}},
	}, nil
}
