package toolregistry

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"golang.org/x/sync/errgroup"

	"voice-assistant/internal/model"
)

// ListTools lists every server concurrently and returns descriptors in
// registration order. Failing servers are skipped.
func (r *MCPRegistry) ListTools(ctx context.Context) []model.ToolDescriptor {
	results := make([][]model.ToolDescriptor, len(r.servers))

	var g errgroup.Group
	g.SetLimit(r.maxParallel)
	for i, s := range r.servers {
		g.Go(func() error {
			tools, err := r.listServer(ctx, s)
			if err != nil {
				r.l.Warnf(ctx, "%s: server %s skipped: %v", LogPrefixListTools, s.id, err)
				return nil
			}
			results[i] = tools
			return nil
		})
	}
	_ = g.Wait()

	var all []model.ToolDescriptor
	for _, tools := range results {
		all = append(all, tools...)
	}
	r.l.Debugf(ctx, "%s: %d tools from %d servers", LogPrefixListTools, len(all), len(r.servers))
	return all
}

func (r *MCPRegistry) listServer(ctx context.Context, s serverEntry) ([]model.ToolDescriptor, error) {
	ctx, cancel := context.WithTimeout(ctx, r.listTimeout)
	defer cancel()

	sess, err := r.open(ctx, s)
	if err != nil {
		return nil, err
	}
	defer sess.Close()

	res, err := sess.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, fmt.Errorf("list tools: %w", err)
	}

	tools := make([]model.ToolDescriptor, 0, len(res.Tools))
	for _, t := range res.Tools {
		tools = append(tools, model.ToolDescriptor{
			Name:        t.Name,
			Description: t.Description,
			InputSchema: schemaOf(t),
			ServerID:    s.id,
		})
	}
	return tools, nil
}

// CallTool runs one tool on one server. It always returns an observation string.
func (r *MCPRegistry) CallTool(ctx context.Context, serverID, toolName string, args map[string]any) string {
	idx, ok := r.byID[serverID]
	if !ok {
		return fmt.Sprintf(MsgServerNotFound, serverID)
	}
	s := r.servers[idx]

	ctx, cancel := context.WithTimeout(ctx, r.callTimeout)
	defer cancel()

	sess, err := r.open(ctx, s)
	if err != nil {
		r.l.Warnf(ctx, "%s: %s.%s: %v", LogPrefixCallTool, serverID, toolName, err)
		return fmt.Sprintf(MsgToolError, err)
	}
	defer sess.Close()

	req := mcp.CallToolRequest{}
	req.Params.Name = toolName
	if args == nil {
		args = map[string]any{}
	}
	req.Params.Arguments = args

	res, err := sess.CallTool(ctx, req)
	if err != nil {
		r.l.Warnf(ctx, "%s: %s.%s: %v", LogPrefixCallTool, serverID, toolName, err)
		return fmt.Sprintf(MsgToolError, err)
	}

	text := contentText(res)
	if res.IsError {
		return fmt.Sprintf(MsgToolError, text)
	}
	if text == "" {
		return MsgNoOutput
	}
	r.l.Infof(ctx, "%s: %s.%s ok", LogPrefixCallTool, serverID, toolName)
	return text
}

// open connects and performs the MCP handshake.
func (r *MCPRegistry) open(ctx context.Context, s serverEntry) (session, error) {
	sess, err := s.connect(ctx)
	if err != nil {
		return nil, err
	}

	init := mcp.InitializeRequest{}
	init.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	init.Params.ClientInfo = mcp.Implementation{Name: ClientName, Version: ClientVersion}
	if _, err := sess.Initialize(ctx, init); err != nil {
		_ = sess.Close()
		return nil, fmt.Errorf("initialize: %w", err)
	}
	return sess, nil
}

// schemaOf returns the tool input schema as a generic map.
func schemaOf(t mcp.Tool) map[string]any {
	var raw []byte
	if len(t.RawInputSchema) > 0 {
		raw = t.RawInputSchema
	} else {
		b, err := json.Marshal(t.InputSchema)
		if err != nil {
			return nil
		}
		raw = b
	}
	var schema map[string]any
	if err := json.Unmarshal(raw, &schema); err != nil {
		return nil
	}
	return schema
}

// contentText joins the text parts of a tool result.
func contentText(res *mcp.CallToolResult) string {
	if res == nil {
		return ""
	}
	var parts []string
	for _, c := range res.Content {
		switch tc := c.(type) {
		case mcp.TextContent:
			parts = append(parts, tc.Text)
		case *mcp.TextContent:
			parts = append(parts, tc.Text)
		}
	}
	return strings.TrimSpace(strings.Join(parts, "\n"))
}
