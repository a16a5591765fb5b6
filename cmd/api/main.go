package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"voice-assistant/config"
	_ "voice-assistant/docs" // Swagger docs
	"voice-assistant/internal/bootstrap"
	"voice-assistant/internal/httpserver"
	"voice-assistant/pkg/log"
)

// @title       Voice Assistant API
// @description Intent routing, tiered model dispatch and MCP tool use for a voice assistant.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting voice assistant...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Assistant
	app, err := bootstrap.Build(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "Failed to build assistant: ", err)
		return
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warnf(ctx, "Close: %v", err)
		}
	}()

	// 4. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:      logger,
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		Environment: cfg.Environment.Name,
		RateLimit:   cfg.RateLimit,
		Assistant:   app.Assistant,
		Tools:       app.Registry,
		Metrics:     app.Metrics,
		Apps:        app.Apps,
		Telegram:    app.Telegram,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	if err := app.RegisterWebhooks(ctx, logger); err != nil {
		logger.Warnf(ctx, "Telegram webhook not registered: %v", err)
	}

	// 5. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
