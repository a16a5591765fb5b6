package toolregistry

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// session is the subset of an MCP client the registry uses.
type session interface {
	Initialize(ctx context.Context, req mcp.InitializeRequest) (*mcp.InitializeResult, error)
	ListTools(ctx context.Context, req mcp.ListToolsRequest) (*mcp.ListToolsResult, error)
	CallTool(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
	Close() error
}

// connector opens a fresh, not yet initialized session to one server.
type connector func(ctx context.Context) (session, error)

// serverEntry is one configured tool server.
type serverEntry struct {
	id        string
	transport string
	connect   connector
}

// ServerInfo describes a configured server for status endpoints.
type ServerInfo struct {
	ID        string `json:"id"`
	Transport string `json:"transport"`
}
