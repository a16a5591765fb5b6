package toolregistry

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/server"

	"voice-assistant/config"
	"voice-assistant/internal/model"
	"voice-assistant/pkg/log"
)

// Registry lists and calls tools on MCP servers.
type Registry interface {
	ListTools(ctx context.Context) []model.ToolDescriptor
	CallTool(ctx context.Context, serverID, toolName string, args map[string]any) string
}

// MCPRegistry connects per operation; nothing is cached between calls.
type MCPRegistry struct {
	servers     []serverEntry
	byID        map[string]int
	listTimeout time.Duration
	callTimeout time.Duration
	maxParallel int
	l           log.Logger
}

// Ensure MCPRegistry implements Registry interface
var _ Registry = (*MCPRegistry)(nil)

// Option configures an MCPRegistry.
type Option func(*MCPRegistry)

// WithInProcessServer registers a server living in this process, listed before configured servers.
func WithInProcessServer(id string, srv *server.MCPServer) Option {
	return func(r *MCPRegistry) {
		r.add(serverEntry{id: id, transport: TransportInProcess, connect: inProcessConnector(srv)})
	}
}

// WithTimeouts sets the per-server list and call timeouts.
func WithTimeouts(list, call time.Duration) Option {
	return func(r *MCPRegistry) {
		if list > 0 {
			r.listTimeout = list
		}
		if call > 0 {
			r.callTimeout = call
		}
	}
}

// WithMaxParallel bounds how many servers are listed at once.
func WithMaxParallel(n int) Option {
	return func(r *MCPRegistry) {
		if n > 0 {
			r.maxParallel = n
		}
	}
}

// New creates a registry over the configured servers. Servers with an
// unusable configuration are logged and skipped.
func New(servers []config.MCPServerConfig, l log.Logger, opts ...Option) *MCPRegistry {
	r := &MCPRegistry{
		byID:        make(map[string]int),
		listTimeout: DefaultListTimeout,
		callTimeout: DefaultCallTimeout,
		maxParallel: DefaultMaxParallel,
		l:           l,
	}
	for _, opt := range opts {
		opt(r)
	}

	for _, s := range servers {
		conn, err := connectorFor(s)
		if err != nil {
			l.Warnf(context.Background(), "%s: skipping server %s: %v", LogPrefixListTools, s.ID, err)
			continue
		}
		transport := s.Transport
		if transport == "" {
			transport = TransportStdio
		}
		r.add(serverEntry{id: s.ID, transport: transport, connect: conn})
	}
	return r
}

func (r *MCPRegistry) add(e serverEntry) {
	if _, exists := r.byID[e.id]; exists {
		r.l.Warnf(context.Background(), "%s: duplicate server id %s ignored", LogPrefixListTools, e.id)
		return
	}
	r.byID[e.id] = len(r.servers)
	r.servers = append(r.servers, e)
}

// Servers returns the registered servers in listing order.
func (r *MCPRegistry) Servers() []ServerInfo {
	out := make([]ServerInfo, len(r.servers))
	for i, s := range r.servers {
		out[i] = ServerInfo{ID: s.id, Transport: s.transport}
	}
	return out
}
