package orchestrator

import (
	"context"
	"os"
	"strings"
	"time"

	"voice-assistant/internal/complexity"
	"voice-assistant/internal/dispatcher"
	"voice-assistant/internal/memory"
	"voice-assistant/internal/model"
	"voice-assistant/internal/toolregistry"
	"voice-assistant/pkg/log"
)

// Generator produces one model reply. *dispatcher.Dispatcher satisfies it.
type Generator interface {
	Dispatch(ctx context.Context, in dispatcher.Input) dispatcher.Output
}

var _ Generator = (*dispatcher.Dispatcher)(nil)

// Config tunes the tool-use loop. Zero values use the defaults.
type Config struct {
	MaxTurns    int
	HistorySize int
	Persona     string
	Timezone    string
	SessionTTL  time.Duration
	MaxSessions int
}

func (c *Config) applyDefaults() {
	if c.MaxTurns <= 0 {
		c.MaxTurns = DefaultMaxTurns
	}
	if c.HistorySize <= 0 {
		c.HistorySize = DefaultHistorySize
	}
	if strings.TrimSpace(c.Persona) == "" {
		c.Persona = DefaultPersona
	}
	if c.SessionTTL <= 0 {
		c.SessionTTL = DefaultSessionTTL
	}
	if c.MaxSessions <= 0 {
		c.MaxSessions = DefaultMaxSessions
	}
}

// Result is the outcome of one processed utterance.
type Result struct {
	Text       string                     `json:"text"`
	Tier       model.Tier                 `json:"tier"`
	Turns      int                        `json:"turns"`
	ToolCalls  []model.ToolCall           `json:"tool_calls,omitempty"`
	Assessment model.ComplexityAssessment `json:"assessment"`
}

// Orchestrator runs the bounded tool-use loop for conversation intents.
type Orchestrator struct {
	classifier complexity.Classifier
	generator  Generator
	tools      toolregistry.Registry
	memory     memory.Gateway
	sessions   *sessionStore
	cfg        Config
	loc        *time.Location
	now        func() time.Time
	l          log.Logger
}

// New wires the loop. A nil memory gateway disables memory context.
func New(
	classifier complexity.Classifier,
	generator Generator,
	tools toolregistry.Registry,
	mem memory.Gateway,
	cfg Config,
	l log.Logger,
) *Orchestrator {
	cfg.applyDefaults()
	if mem == nil {
		mem = memory.Noop{}
	}
	return &Orchestrator{
		classifier: classifier,
		generator:  generator,
		tools:      tools,
		memory:     mem,
		sessions:   newSessionStore(cfg.MaxSessions, cfg.SessionTTL, cfg.HistorySize),
		cfg:        cfg,
		loc:        LoadLocation(cfg.Timezone),
		now:        time.Now,
		l:          l,
	}
}

// History returns the turns recorded for a session, oldest first.
func (o *Orchestrator) History(sessionID string) []model.Turn {
	turns, _ := o.sessions.peek(sessionID)
	return turns
}

// Reset forgets a session.
func (o *Orchestrator) Reset(sessionID string) {
	o.sessions.remove(sessionID)
}

// LoadPersona reads the system persona from path. A missing or empty file
// yields the default persona.
func LoadPersona(ctx context.Context, path string, l log.Logger) string {
	if path == "" {
		return DefaultPersona
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		l.Warnf(ctx, "%s: cannot read persona file %s: %v", LogPrefixPersona, path, err)
		return DefaultPersona
	}
	persona := strings.TrimSpace(string(raw))
	if persona == "" {
		return DefaultPersona
	}
	return persona
}
