package router

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voice-assistant/internal/apptable"
	"voice-assistant/internal/model"
	"voice-assistant/pkg/log"
	"voice-assistant/pkg/ollama"
)

type stubClassifier struct {
	label Label
	ok    bool
	calls int
}

func (s *stubClassifier) Classify(ctx context.Context, text string) (Label, bool) {
	s.calls++
	return s.label, s.ok
}

func newTestRouter(c LabelClassifier) *HybridRouter {
	return New(log.NewNop(), apptable.FromMap(apptable.DefaultAliases), c)
}

func TestRoute_Cascade(t *testing.T) {
	r := newTestRouter(nil)

	tests := []struct {
		input    string
		wantName model.IntentName
		wantArgs string
	}{
		{"open downloads folder", model.IntentOpenDownloads, ""},
		{"weather in Tokyo?", model.IntentWeather, "tokyo"},
		{"blah blah nonsense", model.IntentConversation, "blah blah nonsense"},
		{"open file manager", model.IntentFileManager, ""},
		{"open firefox", model.IntentAppOpen, "firefox"},
		{"Firefox open pannu", model.IntentAppOpen, "firefox"},
		{"close the browser", model.IntentAppClose, "browser"},
		{"open terminal open terminal", model.IntentAppOpen, "terminal"},
		{"open spotify and play music", model.IntentAppOpen, "spotify and play music"},
		{"open the lock screen settings", model.IntentAppOpen, "lock screen settings"},
		{"open documents folder", model.IntentOpenDocuments, ""},
		{"play music", model.IntentMediaPlayPause, ""},
		{"remove orphans", model.IntentRemoveOrphans, ""},
		{"remove htop", model.IntentArchUninstall, "htop"},
		{"install neovim", model.IntentArchInstall, "neovim"},
		{"stop music", model.IntentMediaStop, ""},
		{"kill firefox", model.IntentKillProcess, "firefox"},
		{"force quit spotify", model.IntentForceKill, "spotify"},
		{"lock down", model.IntentSentryMode, ""},
		{"lock the screen", model.IntentSystemLock, ""},
		{"lock", model.IntentSystemLock, ""},
		{"play lofi on youtube", model.IntentYouTube, "lofi"},
		{"take a note: buy milk", model.IntentTakeNote, "buy milk"},
		{"read my notes", model.IntentReadNotes, ""},
		{"will it rain today", model.IntentWeatherRain, ""},
		{"should I carry an umbrella in Chennai", model.IntentWeatherRain, "chennai"},
		{"London weather", model.IntentWeather, "london"},
		{"search for golang generics", model.IntentWebSearch, "golang generics"},
		{"turn off wifi", model.IntentWifiOff, ""},
		{"shut down", model.IntentSystemShutdown, ""},
		{"good morning", model.IntentMorningProtocol, ""},
		{"what time is it", model.IntentCurrentTime, ""},
		{"take a screenshot of the area", model.IntentScreenshotArea, ""},
		{"do not disturb off", model.IntentDNDOff, ""},
		{"performance mode", model.IntentPowerProfile, "performance"},
		{"", model.IntentConversation, ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := r.Route(context.Background(), tt.input)
			assert.Equal(t, tt.wantName, got.Name)
			assert.Equal(t, tt.wantArgs, got.Args)
		})
	}
}

func TestRoute_StructuredParams(t *testing.T) {
	r := newTestRouter(nil)
	ctx := context.Background()

	forecast := r.Route(ctx, "5 day forecast for London")
	require.Equal(t, model.IntentWeatherForecast, forecast.Name)
	assert.Equal(t, "london", forecast.Param(model.ParamLocation))
	assert.Equal(t, 5, forecast.Param(model.ParamDays))

	defaultDays := r.Route(ctx, "forecast")
	assert.Equal(t, DefaultForecastDays, defaultDays.Param(model.ParamDays))

	timer := r.Route(ctx, "set a timer for 5 minutes")
	require.Equal(t, model.IntentSetTimer, timer.Name)
	assert.Equal(t, 5, timer.Param(model.ParamMinutes))

	app := r.Route(ctx, "close the browser")
	assert.Equal(t, "firefox", app.Param(model.ParamCommand))
}

func TestRoute_PrecedenceClassesAreOrdered(t *testing.T) {
	r := newTestRouter(nil)
	for i := 1; i < len(r.rules); i++ {
		assert.LessOrEqual(t, r.rules[i-1].class, r.rules[i].class, "rule %s before %s", r.rules[i-1].name, r.rules[i].name)
	}
}

func TestRoute_Classifier(t *testing.T) {
	ctx := context.Background()

	t.Run("code label keeps conversation with mode", func(t *testing.T) {
		c := &stubClassifier{label: LabelCode, ok: true}
		got := newTestRouter(c).Route(ctx, "Explain quantum entanglement")
		assert.Equal(t, model.IntentConversation, got.Name)
		assert.Equal(t, "Explain quantum entanglement", got.Args)
		assert.Equal(t, "code", got.Param(model.ParamMode))
	})

	t.Run("search label", func(t *testing.T) {
		c := &stubClassifier{label: LabelSearch, ok: true}
		got := newTestRouter(c).Route(ctx, "latest rust release notes")
		assert.Equal(t, model.IntentWebSearch, got.Name)
		assert.Equal(t, "latest rust release notes", got.Args)
	})

	t.Run("vision label", func(t *testing.T) {
		c := &stubClassifier{label: LabelVision, ok: true}
		got := newTestRouter(c).Route(ctx, "describe this picture")
		assert.Equal(t, model.IntentVisionQuery, got.Name)
	})

	t.Run("no opinion falls back to original text", func(t *testing.T) {
		c := &stubClassifier{ok: false}
		got := newTestRouter(c).Route(ctx, "  Tell me a story  ")
		assert.Equal(t, model.Conversation("Tell me a story"), got)
		assert.Equal(t, 1, c.calls)
	})

	t.Run("not consulted when a rule matches", func(t *testing.T) {
		c := &stubClassifier{label: LabelSearch, ok: true}
		got := newTestRouter(c).Route(ctx, "open downloads folder")
		assert.Equal(t, model.IntentOpenDownloads, got.Name)
		assert.Zero(t, c.calls)
	})

	t.Run("not consulted for empty input", func(t *testing.T) {
		c := &stubClassifier{label: LabelSearch, ok: true}
		got := newTestRouter(c).Route(ctx, "   ")
		assert.Equal(t, model.Conversation(""), got)
		assert.Zero(t, c.calls)
	})
}

func TestRoute_Deterministic(t *testing.T) {
	r := newTestRouter(nil)
	inputs := []string{"open downloads folder", "weather in Tokyo?", "kill firefox", "hello there"}
	for _, in := range inputs {
		first := r.Route(context.Background(), in)
		second := r.Route(context.Background(), in)
		assert.Equal(t, first, second, in)
		assert.Equal(t, first.Name, r.Route(context.Background(), Normalize(in)).Name, in)
	}
}

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"  Open Terminal Open Terminal?! ": "open terminal",
		"ＯＰＥＮ ｆｉｒｅｆｏｘ":                     "open firefox",
		"blah blah nonsense":               "blah blah nonsense",
		"yes yes yes.":                     "yes",
		"Weather in   Tokyo?":              "weather in tokyo",
		"":                                 "",
	}
	for in, want := range tests {
		got := Normalize(in)
		assert.Equal(t, want, got, in)
		assert.Equal(t, got, Normalize(got), "normalize must be idempotent for %q", in)
	}
}

func TestParseLabel(t *testing.T) {
	tests := []struct {
		answer string
		want   Label
		ok     bool
	}{
		{"Search.", LabelSearch, true},
		{" CHAT\n", LabelChat, true},
		{"code", LabelCode, true},
		{"system", LabelSystem, true},
		{"banana", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseLabel(tt.answer)
		assert.Equal(t, tt.want, got, tt.answer)
		assert.Equal(t, tt.ok, ok, tt.answer)
	}
}

type mockOllama struct {
	text     string
	err      error
	lastReq  *ollama.GenerateRequest
	deadline bool
}

func (m *mockOllama) Generate(ctx context.Context, req *ollama.GenerateRequest) (*ollama.GenerateResponse, error) {
	m.lastReq = req
	_, m.deadline = ctx.Deadline()
	if m.err != nil {
		return nil, m.err
	}
	return &ollama.GenerateResponse{Text: m.text, Usage: &ollama.Usage{}}, nil
}

func (m *mockOllama) Embed(ctx context.Context, text string) ([]float32, error) {
	return nil, errors.New("not implemented")
}

func (m *mockOllama) Model() string { return "llama3.2:3b" }

func TestOllamaClassifier(t *testing.T) {
	llm := &mockOllama{text: "code"}
	c := NewOllamaClassifier(llm, "", 0, log.NewNop())

	label, ok := c.Classify(context.Background(), "write a quicksort in go")
	require.True(t, ok)
	assert.Equal(t, LabelCode, label)
	assert.True(t, llm.deadline)
	assert.Equal(t, DefaultClassifierModel, llm.lastReq.Model)
	assert.Equal(t, ClassifierMaxTokens, llm.lastReq.NumPredict)
	require.NotNil(t, llm.lastReq.Temperature)
	assert.Zero(t, *llm.lastReq.Temperature)
	assert.Equal(t, DefaultClassifierTimeout, c.timeout)

	failing := NewOllamaClassifier(&mockOllama{err: context.DeadlineExceeded}, "custom", 50*time.Millisecond, log.NewNop())
	_, ok = failing.Classify(context.Background(), "anything")
	assert.False(t, ok)
}
