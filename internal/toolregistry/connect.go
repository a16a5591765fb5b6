package toolregistry

import (
	"context"
	"fmt"
	"sort"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/client/transport"
	"github.com/mark3labs/mcp-go/server"

	"voice-assistant/config"
)

// stdioConnector spawns the server process for every session.
func stdioConnector(cfg config.MCPServerConfig) connector {
	env := make([]string, 0, len(cfg.Env))
	keys := make([]string, 0, len(cfg.Env))
	for k := range cfg.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		env = append(env, k+"="+cfg.Env[k])
	}

	return func(ctx context.Context) (session, error) {
		c, err := client.NewStdioMCPClient(cfg.Command, env, cfg.Args...)
		if err != nil {
			return nil, fmt.Errorf("start %s: %w", cfg.Command, err)
		}
		return c, nil
	}
}

// httpConnector opens a streamable HTTP session.
func httpConnector(cfg config.MCPServerConfig) connector {
	return func(ctx context.Context) (session, error) {
		var opts []transport.StreamableHTTPCOption
		if len(cfg.Headers) > 0 {
			opts = append(opts, transport.WithHTTPHeaders(cfg.Headers))
		}
		c, err := client.NewStreamableHttpClient(cfg.URL, opts...)
		if err != nil {
			return nil, fmt.Errorf("connect %s: %w", cfg.URL, err)
		}
		if err := c.Start(ctx); err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("start %s: %w", cfg.URL, err)
		}
		return c, nil
	}
}

// inProcessConnector talks to a server living in this process.
func inProcessConnector(srv *server.MCPServer) connector {
	return func(ctx context.Context) (session, error) {
		c, err := client.NewInProcessClient(srv)
		if err != nil {
			return nil, err
		}
		if err := c.Start(ctx); err != nil {
			_ = c.Close()
			return nil, err
		}
		return c, nil
	}
}

func connectorFor(cfg config.MCPServerConfig) (connector, error) {
	switch cfg.Transport {
	case "", TransportStdio:
		return stdioConnector(cfg), nil
	case TransportHTTP:
		return httpConnector(cfg), nil
	default:
		return nil, fmt.Errorf("unknown transport %q", cfg.Transport)
	}
}
