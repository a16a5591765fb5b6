// Package telegram delivers Telegram chat messages to the assistant and sends
// the replies back. Each chat is its own conversation session.
package telegram

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"voice-assistant/internal/assistant"
	"voice-assistant/pkg/log"
)

// Assistant answers one utterance.
type Assistant interface {
	Handle(ctx context.Context, sessionID, utterance string) (assistant.Reply, error)
}

// Sender sends a chat message. *pkg/telegram.Bot satisfies it.
type Sender interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

// Handler is the Telegram webhook endpoint.
type Handler interface {
	HandleWebhook(c *gin.Context)
}

// Config configures the webhook handler.
type Config struct {
	// Secret must match the X-Telegram-Bot-Api-Secret-Token header when set.
	Secret       string
	ReplyTimeout time.Duration
}

type handler struct {
	l         log.Logger
	assistant Assistant
	bot       Sender
	cfg       Config
}

// New creates a new Telegram delivery handler.
func New(l log.Logger, a Assistant, bot Sender, cfg Config) Handler {
	if cfg.ReplyTimeout <= 0 {
		cfg.ReplyTimeout = DefaultReplyTimeout
	}
	return &handler{
		l:         l,
		assistant: a,
		bot:       bot,
		cfg:       cfg,
	}
}
