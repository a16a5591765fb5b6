package httpserver

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"voice-assistant/config"
	"voice-assistant/internal/assistant"
	"voice-assistant/internal/metrics"
	"voice-assistant/internal/model"
	"voice-assistant/internal/telegram"
	"voice-assistant/pkg/log"
)

// Assistant is what the delivery layer needs from the assistant.
type Assistant interface {
	Handle(ctx context.Context, sessionID, utterance string) (assistant.Reply, error)
	Route(ctx context.Context, utterance string) model.Intent
	Remember(ctx context.Context, fact string) bool
}

// ToolLister lists the tools the model can call.
type ToolLister interface {
	ListTools(ctx context.Context) []model.ToolDescriptor
}

// AppTable is the spoken-name table behind "open X", reloadable at runtime.
type AppTable interface {
	Refresh(ctx context.Context) error
	Len() int
}

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string
	rateLimit   config.RateLimitConfig
	upgrader    websocket.Upgrader

	// Assistant
	assistant Assistant
	tools     ToolLister
	metrics   *metrics.Metrics
	apps      AppTable
	telegram  telegram.Handler
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string
	RateLimit   config.RateLimitConfig

	Assistant Assistant
	Tools     ToolLister
	Metrics   *metrics.Metrics
	Apps      AppTable

	// Telegram is optional; the webhook route is registered only when set.
	Telegram telegram.Handler
}

// New creates a new HTTPServer instance with its routes mapped.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:           logger,
		gin:         gin.New(),
		port:        cfg.Port,
		mode:        cfg.Mode,
		environment: cfg.Environment,
		rateLimit:   cfg.RateLimit,
		assistant:   cfg.Assistant,
		tools:       cfg.Tools,
		metrics:     cfg.Metrics,
		apps:        cfg.Apps,
		telegram:    cfg.Telegram,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	srv.mapHandlers()
	return srv, nil
}

func (srv *HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.assistant == nil {
		return errors.New("assistant is required")
	}
	return nil
}

// Handler exposes the router, mainly for tests.
func (srv *HTTPServer) Handler() http.Handler {
	return srv.gin
}
