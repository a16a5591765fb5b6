package telegram

import (
	"context"
	"crypto/subtle"
	"fmt"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	pkgResponse "voice-assistant/pkg/response"
	pkgTelegram "voice-assistant/pkg/telegram"
)

// HandleWebhook acknowledges the update at once and answers in the
// background; Telegram retries updates that take more than a few seconds.
func (h *handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	if h.cfg.Secret != "" {
		got := c.GetHeader(pkgTelegram.SecretTokenHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(h.cfg.Secret)) != 1 {
			h.l.Warnf(ctx, "%s: bad secret token from %s", LogPrefixWebhook, c.ClientIP())
			pkgResponse.Unauthorized(c)
			return
		}
	}

	var update pkgTelegram.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		h.l.Errorf(ctx, "%s: failed to parse update: %v", LogPrefixWebhook, err)
		pkgResponse.Error(c, err, nil)
		return
	}

	// Ignore non-message updates (edits, channel posts, ...)
	if update.Message == nil || update.Message.Chat == nil {
		pkgResponse.OK(c, map[string]string{"status": "ignored"})
		return
	}

	msg := update.Message
	bgCtx := context.WithoutCancel(ctx)
	go func() {
		ctx, cancel := context.WithTimeout(bgCtx, h.cfg.ReplyTimeout)
		defer cancel()

		text := h.reply(ctx, msg)
		if text == "" {
			return
		}
		if err := h.bot.SendMessage(ctx, msg.Chat.ID, text); err != nil {
			h.l.Errorf(ctx, "%s: send to chat %d failed: %v", LogPrefixProcess, msg.Chat.ID, err)
		}
	}()

	pkgResponse.OK(c, map[string]string{"status": "accepted"})
}

// reply computes the answer to one message; empty means stay silent.
func (h *handler) reply(ctx context.Context, msg *pkgTelegram.Message) string {
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		if msg.Voice != nil {
			return MsgVoiceUnsupported
		}
		return ""
	}

	switch strings.ToLower(strings.Fields(text)[0]) {
	case CommandStart:
		return MsgWelcome
	case CommandHelp:
		return MsgHelp
	}

	sessionID := SessionPrefix + strconv.FormatInt(msg.Chat.ID, 10)
	r, err := h.assistant.Handle(ctx, sessionID, text)
	if err != nil {
		h.l.Errorf(ctx, "%s: chat %d: %v", LogPrefixProcess, msg.Chat.ID, err)
		return MsgFailed
	}
	if !r.Executed {
		return fmt.Sprintf(MsgNotExecuted, r.Intent.Name)
	}
	return r.Text
}
