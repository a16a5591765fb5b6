package toolregistry

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voice-assistant/config"
	"voice-assistant/pkg/log"
)

func newAlphaServer() *server.MCPServer {
	s := server.NewMCPServer("alpha", "0.0.1", server.WithToolCapabilities(true), server.WithRecovery())
	s.AddTool(
		mcp.NewTool("echo",
			mcp.WithDescription("Echo text back"),
			mcp.WithString("text", mcp.Required(), mcp.Description("Text to echo")),
		),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("echo: " + req.GetString("text", "")), nil
		},
	)
	s.AddTool(
		mcp.NewTool("fail", mcp.WithDescription("Always fails")),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultError("nope"), nil
		},
	)
	return s
}

func newBetaServer() *server.MCPServer {
	s := server.NewMCPServer("beta", "0.0.1", server.WithToolCapabilities(true))
	s.AddTool(
		mcp.NewTool("get_current_time", mcp.WithDescription("Current time")),
		func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("12:00"), nil
		},
	)
	return s
}

func brokenEntry(id string) serverEntry {
	return serverEntry{
		id:        id,
		transport: TransportStdio,
		connect: func(ctx context.Context) (session, error) {
			return nil, errors.New("executable not found")
		},
	}
}

func newTestRegistry() *MCPRegistry {
	r := New(nil, log.NewNop(),
		WithInProcessServer("alpha", newAlphaServer()),
		WithTimeouts(2*time.Second, 2*time.Second),
		WithMaxParallel(2),
	)
	r.add(brokenEntry("broken"))
	r.add(serverEntry{id: "beta", transport: TransportInProcess, connect: inProcessConnector(newBetaServer())})
	return r
}

func TestListTools_SkipsFailingServersAndKeepsOrder(t *testing.T) {
	r := newTestRegistry()

	tools := r.ListTools(context.Background())
	require.Len(t, tools, 3)

	var alphaNames []string
	for _, d := range tools[:2] {
		assert.Equal(t, "alpha", d.ServerID)
		alphaNames = append(alphaNames, d.Name)
	}
	assert.ElementsMatch(t, []string{"echo", "fail"}, alphaNames)
	assert.Equal(t, "beta", tools[2].ServerID)
	assert.Equal(t, "get_current_time", tools[2].Name)

	for _, d := range tools {
		assert.NotEqual(t, "broken", d.ServerID)
	}
}

func TestListTools_Schema(t *testing.T) {
	r := newTestRegistry()

	for _, d := range r.ListTools(context.Background()) {
		if d.Name != "echo" {
			continue
		}
		assert.Equal(t, "Echo text back", d.Description)
		props, ok := d.InputSchema["properties"].(map[string]any)
		require.True(t, ok, "expected properties in schema: %v", d.InputSchema)
		assert.Contains(t, props, "text")
		return
	}
	t.Fatal("echo tool not listed")
}

func TestCallTool(t *testing.T) {
	r := newTestRegistry()
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		assert.Equal(t, "echo: hi", r.CallTool(ctx, "alpha", "echo", map[string]any{"text": "hi"}))
	})

	t.Run("tool error result", func(t *testing.T) {
		assert.Equal(t, "Tool Execution Error: nope", r.CallTool(ctx, "alpha", "fail", nil))
	})

	t.Run("unknown server", func(t *testing.T) {
		assert.Equal(t, "Server nope not found.", r.CallTool(ctx, "nope", "echo", nil))
	})

	t.Run("unknown tool", func(t *testing.T) {
		got := r.CallTool(ctx, "alpha", "missing", nil)
		assert.True(t, strings.HasPrefix(got, "Tool Execution Error: "), got)
	})

	t.Run("connection failure", func(t *testing.T) {
		got := r.CallTool(ctx, "broken", "anything", nil)
		assert.Equal(t, "Tool Execution Error: executable not found", got)
	})
}

func TestNew_ConfiguredServers(t *testing.T) {
	r := New([]config.MCPServerConfig{
		{ID: "fs", Transport: "stdio", Command: "npx", Args: []string{"-y", "server"}},
		{ID: "remote", Transport: "http", URL: "http://localhost:9000/mcp"},
		{ID: "pigeon", Transport: "carrier-pigeon"},
		{ID: "fs", Command: "duplicate"},
	}, log.NewNop(), WithInProcessServer("local", newBetaServer()))

	assert.Equal(t, []ServerInfo{
		{ID: "local", Transport: TransportInProcess},
		{ID: "fs", Transport: TransportStdio},
		{ID: "remote", Transport: TransportHTTP},
	}, r.Servers())
}

func TestContentText(t *testing.T) {
	res := &mcp.CallToolResult{Content: []mcp.Content{
		mcp.TextContent{Type: "text", Text: "line one"},
		mcp.ImageContent{Type: "image", Data: "AAAA", MIMEType: "image/png"},
		mcp.TextContent{Type: "text", Text: "line two"},
	}}
	assert.Equal(t, "line one\nline two", contentText(res))
	assert.Empty(t, contentText(nil))
}
