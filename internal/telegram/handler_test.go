package telegram

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voice-assistant/internal/assistant"
	"voice-assistant/internal/model"
	"voice-assistant/pkg/log"
	pkgTelegram "voice-assistant/pkg/telegram"
)

type fakeAssistant struct {
	sessions []string
	reply    assistant.Reply
	err      error
}

func (f *fakeAssistant) Handle(ctx context.Context, sessionID, utterance string) (assistant.Reply, error) {
	f.sessions = append(f.sessions, sessionID)
	if f.err != nil {
		return assistant.Reply{}, f.err
	}
	r := f.reply
	r.SessionID = sessionID
	return r, nil
}

type sent struct {
	chatID int64
	text   string
}

type fakeSender struct {
	out chan sent
}

func (f *fakeSender) SendMessage(ctx context.Context, chatID int64, text string) error {
	f.out <- sent{chatID: chatID, text: text}
	return nil
}

func newTestRouter(h Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/webhook/telegram", h.HandleWebhook)
	return r
}

func post(r http.Handler, body, secret string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhook/telegram", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if secret != "" {
		req.Header.Set(pkgTelegram.SecretTokenHeader, secret)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHandleWebhook_RepliesInBackground(t *testing.T) {
	a := &fakeAssistant{reply: assistant.Reply{Text: "It is 10:00 AM.", Executed: true}}
	bot := &fakeSender{out: make(chan sent, 1)}
	r := newTestRouter(New(log.NewNop(), a, bot, Config{Secret: "s3cret"}))

	w := post(r, `{"update_id":1,"message":{"message_id":7,"chat":{"id":42,"type":"private"},"text":"what time is it"}}`, "s3cret")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "accepted")

	select {
	case got := <-bot.out:
		assert.Equal(t, int64(42), got.chatID)
		assert.Equal(t, "It is 10:00 AM.", got.text)
	case <-time.After(2 * time.Second):
		t.Fatal("no reply sent")
	}
	assert.Equal(t, []string{"telegram_42"}, a.sessions)
}

func TestHandleWebhook_Rejects(t *testing.T) {
	a := &fakeAssistant{}
	bot := &fakeSender{out: make(chan sent, 1)}
	r := newTestRouter(New(log.NewNop(), a, bot, Config{Secret: "s3cret"}))

	w := post(r, `{"update_id":1}`, "wrong")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = post(r, `{not json`, "s3cret")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = post(r, `{"update_id":2}`, "s3cret")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "ignored")
	assert.Empty(t, a.sessions)
}

func TestReply(t *testing.T) {
	chat := &pkgTelegram.Chat{ID: 5}

	tests := []struct {
		name  string
		msg   *pkgTelegram.Message
		reply assistant.Reply
		err   error
		want  string
	}{
		{name: "start", msg: &pkgTelegram.Message{Chat: chat, Text: "/start"}, want: MsgWelcome},
		{name: "help", msg: &pkgTelegram.Message{Chat: chat, Text: "/help please"}, want: MsgHelp},
		{name: "voice", msg: &pkgTelegram.Message{Chat: chat, Voice: &pkgTelegram.Voice{FileID: "f"}}, want: MsgVoiceUnsupported},
		{name: "empty", msg: &pkgTelegram.Message{Chat: chat, Text: "  "}, want: ""},
		{
			name:  "answer",
			msg:   &pkgTelegram.Message{Chat: chat, Text: "hello"},
			reply: assistant.Reply{Text: "Hi there.", Executed: true},
			want:  "Hi there.",
		},
		{
			name:  "skill not executed",
			msg:   &pkgTelegram.Message{Chat: chat, Text: "open spotify"},
			reply: assistant.Reply{Intent: model.Intent{Name: model.IntentAppOpen, Args: "spotify"}},
			want:  `I can't do "app_open" from chat.`,
		},
		{name: "failure", msg: &pkgTelegram.Message{Chat: chat, Text: "hello"}, err: errors.New("boom"), want: MsgFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New(log.NewNop(), &fakeAssistant{reply: tt.reply, err: tt.err}, &fakeSender{}, Config{}).(*handler)
			assert.Equal(t, tt.want, h.reply(context.Background(), tt.msg))
		})
	}
}
