package assistant

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voice-assistant/internal/agent/orchestrator"
	"voice-assistant/internal/localtools"
	"voice-assistant/internal/metrics"
	"voice-assistant/internal/model"
	"voice-assistant/internal/router"
	"voice-assistant/pkg/log"
)

type fixedRouter struct{ intent model.Intent }

func (r fixedRouter) Route(context.Context, string) model.Intent { return r.intent }

type fakeConversation struct {
	result     orchestrator.Result
	err        error
	utterances []string
}

func (c *fakeConversation) Process(_ context.Context, _ string, utterance string) (orchestrator.Result, error) {
	c.utterances = append(c.utterances, utterance)
	return c.result, c.err
}

type fakeMemory struct {
	ok    bool
	added []string
}

func (m *fakeMemory) RetrieveRelevant(context.Context, string) []string { return nil }

func (m *fakeMemory) AddMemory(_ context.Context, text string) bool {
	m.added = append(m.added, text)
	return m.ok
}

type fakeSkills struct{ handled map[model.IntentName]string }

func (s fakeSkills) Execute(_ context.Context, intent model.Intent) (string, bool) {
	text, ok := s.handled[intent.Name]
	return text, ok
}

func TestHandle_EmptyUtterance(t *testing.T) {
	a := New(Deps{Router: fixedRouter{}}, log.NewNop())
	_, err := a.Handle(context.Background(), "s1", "   ")
	assert.ErrorIs(t, err, ErrEmptyUtterance)
}

func TestHandle_Skill(t *testing.T) {
	m := metrics.New()
	a := New(Deps{
		Router:  fixedRouter{intent: model.Intent{Name: model.IntentCurrentTime}},
		Skills:  fakeSkills{handled: map[model.IntentName]string{model.IntentCurrentTime: "It is noon."}},
		Metrics: m,
	}, log.NewNop())

	reply, err := a.Handle(context.Background(), "s1", "what time is it")
	require.NoError(t, err)

	assert.True(t, reply.Executed)
	assert.Equal(t, "It is noon.", reply.Text)
	assert.Equal(t, model.IntentCurrentTime, reply.Intent.Name)
	assert.Nil(t, reply.Assessment)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Intents.WithLabelValues("current_time")))
}

func TestHandle_SkillLeftToClient(t *testing.T) {
	conv := &fakeConversation{}
	a := New(Deps{
		Router:       fixedRouter{intent: model.Intent{Name: model.IntentAppOpen, Args: "firefox", Params: map[string]any{model.ParamCommand: "firefox"}}},
		Skills:       fakeSkills{},
		Conversation: conv,
	}, log.NewNop())

	reply, err := a.Handle(context.Background(), "s1", "open firefox")
	require.NoError(t, err)

	assert.False(t, reply.Executed)
	assert.Empty(t, reply.Text)
	assert.Equal(t, "firefox", reply.Intent.Param(model.ParamCommand))
	assert.Empty(t, conv.utterances)
}

func TestHandle_Remember(t *testing.T) {
	tests := []struct {
		name      string
		utterance string
		stored    bool
		wantText  string
		wantAdded []string
	}{
		{name: "remember that", utterance: "remember that my car is blue", stored: true, wantText: "I remembered: my car is blue", wantAdded: []string{"my car is blue"}},
		{name: "remember colon", utterance: "Remember: the wifi code is 1234", stored: true, wantText: "I remembered: the wifi code is 1234", wantAdded: []string{"the wifi code is 1234"}},
		{name: "store failure", utterance: "remember that I hate mondays", stored: false, wantText: MsgRememberFailed, wantAdded: []string{"I hate mondays"}},
		{name: "nothing to remember", utterance: "remember that", stored: true, wantText: MsgRememberFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := &fakeMemory{ok: tt.stored}
			conv := &fakeConversation{}
			a := New(Deps{
				Router:       fixedRouter{intent: model.Conversation(tt.utterance)},
				Conversation: conv,
				Memory:       mem,
			}, log.NewNop())

			reply, err := a.Handle(context.Background(), "s1", tt.utterance)
			require.NoError(t, err)

			assert.Equal(t, tt.wantText, reply.Text)
			assert.True(t, reply.Executed)
			assert.Equal(t, tt.wantAdded, mem.added)
			assert.Empty(t, conv.utterances)
		})
	}
}

func TestHandle_Conversation(t *testing.T) {
	m := metrics.New()
	conv := &fakeConversation{result: orchestrator.Result{
		Text:       "Tokyo is sunny.",
		Tier:       model.TierMid,
		Turns:      2,
		ToolCalls:  []model.ToolCall{{ServerID: "local", ToolName: "get_weather"}},
		Assessment: model.ComplexityAssessment{Level: 3, Category: model.CategoryReasoning},
	}}
	a := New(Deps{
		Router:       router.New(log.NewNop(), nil, nil),
		Conversation: conv,
		Metrics:      m,
	}, log.NewNop())

	reply, err := a.Handle(context.Background(), "s1", "blah blah nonsense")
	require.NoError(t, err)

	assert.Equal(t, []string{"blah blah nonsense"}, conv.utterances)
	assert.Equal(t, model.IntentConversation, reply.Intent.Name)
	assert.True(t, reply.Executed)
	assert.Equal(t, "Tokyo is sunny.", reply.Text)
	assert.Equal(t, model.TierMid, reply.Tier)
	assert.Equal(t, 2, reply.Turns)
	require.NotNil(t, reply.Assessment)
	assert.Equal(t, 3, reply.Assessment.Level)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Replies.WithLabelValues("mid")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ToolCalls.WithLabelValues("local", "get_weather")))
}

func TestHandle_ConversationCanceled(t *testing.T) {
	a := New(Deps{
		Router:       fixedRouter{intent: model.Conversation("tell me a story")},
		Conversation: &fakeConversation{err: context.Canceled},
	}, log.NewNop())

	_, err := a.Handle(context.Background(), "s1", "tell me a story")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestHandle_ConversationModeHint(t *testing.T) {
	tcs := map[string]struct {
		mode string
		want string
	}{
		"code":   {mode: "code", want: "write a sort function [MODE: CODE]"},
		"system": {mode: "system", want: "write a sort function [MODE: SYSTEM]"},
		"none":   {want: "write a sort function"},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			intent := model.Conversation("write a sort function")
			if tc.mode != "" {
				intent.Params = map[string]any{model.ParamMode: tc.mode}
			}
			conv := &fakeConversation{result: orchestrator.Result{Text: "ok"}}
			a := New(Deps{Router: fixedRouter{intent: intent}, Conversation: conv}, log.NewNop())

			_, err := a.Handle(context.Background(), "s1", "write a sort function")
			require.NoError(t, err)
			assert.Equal(t, []string{tc.want}, conv.utterances)
		})
	}
}

func TestLocalSkills(t *testing.T) {
	tools := localtools.NewTools(localtools.Deps{
		Location: time.UTC,
		Now:      func() time.Time { return time.Date(2026, 10, 16, 8, 5, 0, 0, time.UTC) },
	}, log.NewNop())
	skills := NewLocalSkills(tools, log.NewNop())
	ctx := context.Background()

	text, ok := skills.Execute(ctx, model.Intent{Name: model.IntentCurrentTime})
	assert.True(t, ok)
	assert.Equal(t, "The current time is 08:05 AM on Friday, October 16, 2026.", text)

	text, ok = skills.Execute(ctx, model.Intent{Name: model.IntentWeather, Args: "tokyo"})
	assert.True(t, ok)
	assert.Equal(t, localtools.MsgWeatherMissing, text)

	text, ok = skills.Execute(ctx, model.Intent{Name: model.IntentReadNotes})
	assert.True(t, ok)
	assert.Equal(t, localtools.MsgNotesMissing, text)

	text, ok = skills.Execute(ctx, model.Intent{Name: model.IntentUptime})
	assert.True(t, ok)
	assert.Equal(t, localtools.MsgStatusUnavailable, text)

	_, ok = skills.Execute(ctx, model.Intent{Name: model.IntentScreenshot})
	assert.False(t, ok)
}

func TestRememberCommand(t *testing.T) {
	fact, ok := rememberCommand("REMEMBER THAT Mum likes roses")
	assert.True(t, ok)
	assert.Equal(t, "Mum likes roses", fact)

	_, ok = rememberCommand("do you remember that song")
	assert.False(t, ok)
}
