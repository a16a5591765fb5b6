// Package assistant answers one utterance: it routes it, runs a skill or the
// memory command, and sends everything else through the tool-use loop.
package assistant

import (
	"context"
	"errors"

	"voice-assistant/internal/agent/orchestrator"
	"voice-assistant/internal/memory"
	"voice-assistant/internal/metrics"
	"voice-assistant/internal/model"
	"voice-assistant/internal/router"
	"voice-assistant/pkg/log"
)

// ErrEmptyUtterance is returned for blank input.
var ErrEmptyUtterance = errors.New("empty utterance")

// SkillExecutor runs a skill intent. ok is false when the intent is not one it
// can execute; the intent is then handed back to the caller unexecuted.
type SkillExecutor interface {
	Execute(ctx context.Context, intent model.Intent) (text string, ok bool)
}

// Conversation answers conversation intents. *orchestrator.Orchestrator satisfies it.
type Conversation interface {
	Process(ctx context.Context, sessionID, utterance string) (orchestrator.Result, error)
}

var _ Conversation = (*orchestrator.Orchestrator)(nil)

// Reply is the outcome of one utterance.
type Reply struct {
	SessionID string       `json:"session_id"`
	Intent    model.Intent `json:"intent"`
	Text      string       `json:"text"`
	// Executed is false when Intent is a skill nobody here could run.
	Executed   bool                        `json:"executed"`
	Tier       model.Tier                  `json:"tier,omitempty"`
	Turns      int                         `json:"turns,omitempty"`
	ToolCalls  []model.ToolCall            `json:"tool_calls,omitempty"`
	Assessment *model.ComplexityAssessment `json:"assessment,omitempty"`
}

// Assistant is the top-level utterance handler.
type Assistant struct {
	router  router.Router
	skills  SkillExecutor
	conv    Conversation
	memory  memory.Gateway
	metrics *metrics.Metrics
	l       log.Logger
}

// Deps are the collaborators of an Assistant. Skills, Memory and Metrics are optional.
type Deps struct {
	Router       router.Router
	Skills       SkillExecutor
	Conversation Conversation
	Memory       memory.Gateway
	Metrics      *metrics.Metrics
}

// New creates an Assistant.
func New(deps Deps, l log.Logger) *Assistant {
	if deps.Memory == nil {
		deps.Memory = memory.Noop{}
	}
	return &Assistant{
		router:  deps.Router,
		skills:  deps.Skills,
		conv:    deps.Conversation,
		memory:  deps.Memory,
		metrics: deps.Metrics,
		l:       l,
	}
}

// Route exposes the routing decision alone.
func (a *Assistant) Route(ctx context.Context, utterance string) model.Intent {
	return a.router.Route(ctx, utterance)
}

// Remember stores a fact in long-term memory.
func (a *Assistant) Remember(ctx context.Context, fact string) bool {
	ok := a.memory.AddMemory(ctx, fact)
	if a.metrics != nil {
		a.metrics.ObserveMemoryWrite(ok)
	}
	return ok
}
