// Package mcpserver exposes the analyzer over the Model Context
// Protocol so coding agents can request codebase maps directly.
package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/repomap-dev/repomap/internal/extract"
)

// Server wraps an MCP server with the repomap tool set.
type Server struct {
	registry  *extract.Registry
	mcpServer *mcp.Server
}

// New creates a server bound to one extractor registry.
func New(registry *extract.Registry, version string) *Server {
	s := &Server{registry: registry}
	s.mcpServer = mcp.NewServer(&mcp.Implementation{
		Name:    "repomap",
		Version: version,
	}, nil)
	s.registerTools()
	return s
}

// Run serves MCP over stdio until the context is canceled or the
// client disconnects.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}
