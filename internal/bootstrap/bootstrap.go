// Package bootstrap builds the assistant from configuration. Both binaries use it.
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"voice-assistant/config"
	"voice-assistant/internal/agent/orchestrator"
	"voice-assistant/internal/apptable"
	"voice-assistant/internal/assistant"
	"voice-assistant/internal/complexity"
	"voice-assistant/internal/dispatcher"
	"voice-assistant/internal/localtools"
	"voice-assistant/internal/memory"
	"voice-assistant/internal/metrics"
	"voice-assistant/internal/notes"
	"voice-assistant/internal/router"
	"voice-assistant/internal/telegram"
	"voice-assistant/internal/toolregistry"
	"voice-assistant/pkg/gcalendar"
	"voice-assistant/pkg/log"
	"voice-assistant/pkg/ollama"
	"voice-assistant/pkg/openmeteo"
	"voice-assistant/pkg/qdrant"
	pkgTelegram "voice-assistant/pkg/telegram"
	"voice-assistant/pkg/voyage"
)

// App is the wired assistant and the pieces the delivery layers expose.
type App struct {
	Config       *config.Config
	Assistant    *assistant.Assistant
	Orchestrator *orchestrator.Orchestrator
	Registry     *toolregistry.MCPRegistry
	Tools        *localtools.Tools
	Memory       memory.Gateway
	Metrics      *metrics.Metrics
	Apps         *apptable.Table

	// Telegram is nil unless a bot token is configured.
	Telegram    telegram.Handler
	telegramBot *pkgTelegram.Bot

	closers []func() error
}

// Close releases the resources opened by Build.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Build wires every component. Only a missing local tier is fatal; optional
// collaborators that fail to start are logged and left out.
func Build(ctx context.Context, cfg *config.Config, l log.Logger) (*App, error) {
	app := &App{Config: cfg, Metrics: metrics.New()}

	llm, err := ollama.New(ollama.Config{
		BaseURL:    cfg.Ollama.BaseURL,
		Model:      cfg.Complexity.Model,
		EmbedModel: cfg.Ollama.EmbedModel,
	})
	if err != nil {
		return nil, fmt.Errorf("ollama client: %w", err)
	}

	disp, err := dispatcher.NewFromConfig(ctx, cfg.Tiers, l)
	if err != nil {
		return nil, fmt.Errorf("dispatcher: %w", err)
	}
	l.Infof(ctx, "%s: model tiers available: %v", LogPrefixBuild, disp.Available())

	tools, closeTools := NewLocalTools(ctx, cfg, l)
	app.Tools = tools
	app.closers = append(app.closers, closeTools)

	opts := []toolregistry.Option{
		toolregistry.WithTimeouts(cfg.MCP.ListTimeout, cfg.MCP.CallTimeout),
		toolregistry.WithMaxParallel(cfg.MCP.MaxParallel),
	}
	if cfg.MCP.LocalToolsEnabled {
		opts = append(opts, toolregistry.WithInProcessServer(localtools.ServerID, tools.Server()))
	}
	app.Registry = toolregistry.New(cfg.MCP.Servers, l, opts...)

	app.Memory = newMemory(ctx, cfg, llm, l)

	app.Apps = apptable.FromMap(apptable.DefaultAliases)
	if cfg.Router.AppsFile != "" {
		apps, err := apptable.New(cfg.Router.AppsFile)
		if err != nil {
			l.Warnf(ctx, "%s: app table %s unavailable, using built-in aliases: %v", LogPrefixBuild, cfg.Router.AppsFile, err)
		} else {
			app.Apps = apps
		}
	}
	var labeler router.LabelClassifier
	if cfg.Router.ClassifierEnabled {
		labeler = router.NewOllamaClassifier(llm, cfg.Router.ClassifierModel, cfg.Router.ClassifierTimeout, l)
	}
	rt := router.New(l, app.Apps, labeler)

	classifier := complexity.New(llm, complexity.Config{
		Model:         cfg.Complexity.Model,
		Timeout:       cfg.Complexity.Timeout,
		WordThreshold: cfg.Complexity.WordThreshold,
	}, l)

	app.Orchestrator = orchestrator.New(classifier, disp, app.Registry, app.Memory, orchestrator.Config{
		MaxTurns:    cfg.Agent.MaxTurns,
		HistorySize: cfg.Agent.HistorySize,
		Persona:     orchestrator.LoadPersona(ctx, cfg.Agent.PersonaFile, l),
		Timezone:    cfg.Environment.Timezone,
		SessionTTL:  cfg.Agent.SessionTTL,
		MaxSessions: cfg.Agent.MaxSessions,
	}, l)

	app.Assistant = assistant.New(assistant.Deps{
		Router:       rt,
		Skills:       assistant.NewLocalSkills(tools, l),
		Conversation: app.Orchestrator,
		Memory:       app.Memory,
		Metrics:      app.Metrics,
	}, l)

	if cfg.Telegram.BotToken != "" {
		app.telegramBot = pkgTelegram.NewBot(cfg.Telegram.BotToken)
		app.Telegram = telegram.New(l, app.Assistant, app.telegramBot, telegram.Config{
			Secret:       cfg.Telegram.WebhookSecret,
			ReplyTimeout: cfg.Telegram.ReplyTimeout,
		})
	}

	return app, nil
}

// RegisterWebhooks points the Telegram bot at our webhook when a public URL is configured.
func (a *App) RegisterWebhooks(ctx context.Context, l log.Logger) error {
	if a.telegramBot == nil || a.Config.Telegram.WebhookURL == "" {
		return nil
	}
	if err := a.telegramBot.SetWebhook(ctx, a.Config.Telegram.WebhookURL, a.Config.Telegram.WebhookSecret); err != nil {
		return err
	}
	l.Infof(ctx, "%s: telegram webhook registered at %s", LogPrefixBuild, a.Config.Telegram.WebhookURL)
	return nil
}

// NewLocalTools builds the built-in tool set. Collaborators that cannot start
// are left nil so their tools answer with a "not available" message.
func NewLocalTools(ctx context.Context, cfg *config.Config, l log.Logger) (*localtools.Tools, func() error) {
	deps := localtools.Deps{
		DefaultLocation: cfg.Weather.DefaultLocation,
		CalendarID:      cfg.GoogleCalendar.CalendarID,
		Location:        orchestrator.LoadLocation(cfg.Environment.Timezone),
	}
	closer := func() error { return nil }

	if weather, err := openmeteo.New(openmeteo.Config{
		GeocodingURL: cfg.Weather.GeocodingURL,
		ForecastURL:  cfg.Weather.ForecastURL,
	}); err != nil {
		l.Warnf(ctx, "%s: weather disabled: %v", LogPrefixLocalTools, err)
	} else {
		deps.Weather = weather
	}

	if store, err := notes.Open(cfg.Notes.DBPath); err != nil {
		l.Warnf(ctx, "%s: notes disabled: %v", LogPrefixLocalTools, err)
	} else {
		deps.Notes = store
		closer = store.Close
	}

	if status, err := localtools.NewProcStatus("", 0); err != nil {
		l.Warnf(ctx, "%s: system status disabled: %v", LogPrefixLocalTools, err)
	} else {
		deps.Status = status
	}

	if cfg.GoogleCalendar.CredentialsPath != "" {
		cal, err := gcalendar.NewClientFromCredentialsFile(ctx, cfg.GoogleCalendar.CredentialsPath, cfg.GoogleCalendar.TokenPath)
		if err != nil {
			l.Warnf(ctx, "%s: Google Calendar not available (run `cli calendar-auth`): %v", LogPrefixLocalTools, err)
		} else {
			deps.Calendar = cal
		}
	}

	return localtools.NewTools(deps, l), closer
}

// newMemory returns the vector gateway, or a no-op one when memory is off or
// its embedder cannot be built.
func newMemory(ctx context.Context, cfg *config.Config, llm ollama.IOllama, l log.Logger) memory.Gateway {
	if !cfg.Memory.Enabled {
		l.Infof(ctx, "%s: memory disabled", LogPrefixMemory)
		return memory.Noop{}
	}

	var vc voyage.IVoyage
	if cfg.Memory.Embedder == memory.EmbedderVoyage {
		client, err := voyage.New(voyage.Config{APIKey: cfg.Voyage.APIKey, Model: cfg.Voyage.Model})
		if err != nil {
			l.Warnf(ctx, "%s: voyage client: %v", LogPrefixMemory, err)
			return memory.Noop{}
		}
		vc = client
	}

	embedder, err := memory.NewEmbedder(cfg.Memory.Embedder, llm, vc)
	if err != nil {
		l.Warnf(ctx, "%s: embedder: %v", LogPrefixMemory, err)
		return memory.Noop{}
	}

	return memory.New(ctx,
		qdrant.NewClient(cfg.Qdrant.URL),
		memory.NewCachedEmbedder(embedder, cfg.Memory.CacheSize, cfg.Memory.CacheTTL),
		memory.Config{
			Collection:     cfg.Qdrant.CollectionName,
			VectorSize:     cfg.Qdrant.VectorSize,
			ScoreThreshold: cfg.Memory.ScoreThreshold,
			Limit:          cfg.Memory.Limit,
			Timeout:        cfg.Memory.Timeout,
		}, l)
}
