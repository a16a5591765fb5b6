package toolregistry

import "time"

// Log prefixes
const (
	LogPrefixListTools = "internal.toolregistry.ListTools"
	LogPrefixCallTool  = "internal.toolregistry.CallTool"
)

// Transports
const (
	TransportStdio     = "stdio"
	TransportHTTP      = "http"
	TransportInProcess = "inprocess"
)

// Defaults
const (
	DefaultListTimeout = 10 * time.Second
	DefaultCallTimeout = 10 * time.Second
	DefaultMaxParallel = 4
)

// Client identity sent during the MCP handshake.
const (
	ClientName    = "voice-assistant"
	ClientVersion = "1.0.0"
)

// Observation strings handed back to the model.
const (
	MsgServerNotFound = "Server %s not found."
	MsgToolError      = "Tool Execution Error: %s"
	MsgNoOutput       = "Tool returned no text output."
)
