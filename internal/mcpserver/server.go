// Package mcpserver exposes a guide to MCP clients over stdio.
package mcpserver

import (
	"context"
	"errors"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jorge-barreto/guidebook/internal/guide"
)

// Version is reported to clients in the initialize handshake.
const Version = "0.1.0"

// ErrMissingGuide is returned when no guide is given.
var ErrMissingGuide = errors.New("mcpserver: guide is required")

// Server answers tool calls and resource reads against one guide.
type Server struct {
	server *mcp.Server

	mu    sync.RWMutex
	guide *guide.Guide
}

// New registers the guide tools and resources.
func New(g *guide.Guide) (*Server, error) {
	if g == nil {
		return nil, ErrMissingGuide
	}
	s := &Server{
		server: mcp.NewServer(&mcp.Implementation{Name: "guidebook", Version: Version}, nil),
		guide:  g,
	}
	s.registerTools()
	s.registerResources()
	return s, nil
}

// Swap replaces the guide served to later requests.
func (s *Server) Swap(g *guide.Guide) {
	s.mu.Lock()
	s.guide = g
	s.mu.Unlock()
}

func (s *Server) current() *guide.Guide {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.guide
}

// Run serves over stdio until ctx is cancelled or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
