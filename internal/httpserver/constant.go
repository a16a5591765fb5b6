package httpserver

import "time"

// Health response constants (single source for version and service identity).
const (
	HealthMessage = "A1 voice assistant is listening"
	HealthVersion = "1.0.0"
	ServiceName   = "voice-assistant"
)

// Log prefixes
const (
	LogPrefixRun       = "internal.httpserver.Run"
	LogPrefixUtterance = "internal.httpserver.utterance"
	LogPrefixWS        = "internal.httpserver.ws"
	LogPrefixApps      = "internal.httpserver.apps"
)

// Headers
const (
	HeaderRequestID = "X-Request-ID"
	HeaderSessionID = "X-Session-ID"
)

// Environments
const (
	EnvironmentProduction = "production"
)

// Websocket message types
const (
	WSTypeUtterance   = "utterance"
	WSTypeInterrupt   = "interrupt"
	WSTypeReply       = "reply"
	WSTypeInterrupted = "interrupted"
	WSTypeError       = "error"
)

// Limits
const (
	DefaultSessionID    = "default"
	RateLimiterTTL      = 5 * time.Minute
	ShutdownTimeout     = 10 * time.Second
	ReadHeaderTimeout   = 10 * time.Second
	WSWriteTimeout      = 10 * time.Second
	MaxUtteranceLength  = 4096
	DefaultMaxPeers     = 1000
	DefaultRequestsPerM = 60
)
