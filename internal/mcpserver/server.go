// Package mcpserver wraps the MCP server that exposes the generated tool
// fleet over stdio or streamable HTTP.
package mcpserver

import (
	"context"
	"net/http"
	"os"

	"github.com/mark3labs/mcp-go/server"
)

// Server wraps the MCP server holding the generated tools.
type Server struct {
	mcp *server.MCPServer
}

// New creates a server with the given tool fleet registered. Tool
// capabilities advertise listChanged because a catalog reload swaps the
// fleet at runtime.
func New(name, version string, tools []server.ServerTool) *Server {
	s := &Server{}
	s.mcp = server.NewMCPServer(
		name,
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, false),
	)
	s.mcp.AddTools(tools...)
	return s
}

// ServeStdio serves the MCP protocol on stdin/stdout until ctx is
// cancelled or stdin closes.
func (s *Server) ServeStdio(ctx context.Context) error {
	return server.NewStdioServer(s.mcp).Listen(ctx, os.Stdin, os.Stdout)
}

// HTTPHandler returns the streamable HTTP transport for mounting into a
// router.
func (s *Server) HTTPHandler() http.Handler {
	return server.NewStreamableHTTPServer(s.mcp)
}

// ReplaceTools swaps the registered tool fleet, notifying connected
// clients of the change.
func (s *Server) ReplaceTools(tools []server.ServerTool) {
	s.mcp.SetTools(tools...)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}
