package mcpserver

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func dummyTool(name string) server.ServerTool {
	return server.ServerTool{
		Tool: mcp.NewTool(name, mcp.WithDescription("test tool")),
		Handler: func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("ok"), nil
		},
	}
}

func listTools(t *testing.T, s *Server) string {
	t.Helper()
	res := s.MCPServer().HandleMessage(context.Background(),
		json.RawMessage(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	out, err := json.Marshal(res)
	if err != nil {
		t.Fatal(err)
	}
	return string(out)
}

func TestNew_RegistersTools(t *testing.T) {
	s := New("test", "0.0.1", []server.ServerTool{dummyTool("alpha"), dummyTool("beta")})

	listing := listTools(t, s)
	if !strings.Contains(listing, `"alpha"`) || !strings.Contains(listing, `"beta"`) {
		t.Errorf("listing = %s", listing)
	}
}

func TestReplaceTools_SwapsFleet(t *testing.T) {
	s := New("test", "0.0.1", []server.ServerTool{dummyTool("alpha")})
	s.ReplaceTools([]server.ServerTool{dummyTool("gamma")})

	listing := listTools(t, s)
	if strings.Contains(listing, `"alpha"`) {
		t.Error("old tool still listed after replace")
	}
	if !strings.Contains(listing, `"gamma"`) {
		t.Errorf("listing = %s", listing)
	}
}

func TestHTTPHandler_NotNil(t *testing.T) {
	s := New("test", "0.0.1", nil)
	if s.HTTPHandler() == nil {
		t.Fatal("HTTP handler missing")
	}
}
