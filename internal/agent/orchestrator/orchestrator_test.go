package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voice-assistant/internal/dispatcher"
	"voice-assistant/internal/model"
	"voice-assistant/pkg/log"
)

type fakeClassifier struct {
	assessment model.ComplexityAssessment
	calls      int
}

func (f *fakeClassifier) Classify(context.Context, string) model.ComplexityAssessment {
	f.calls++
	return f.assessment
}

// scriptedGenerator replays replies in order and repeats the last one.
type scriptedGenerator struct {
	mu      sync.Mutex
	replies []string
	err     error
	inputs  []dispatcher.Input
}

func (g *scriptedGenerator) Dispatch(_ context.Context, in dispatcher.Input) dispatcher.Output {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.inputs = append(g.inputs, in)
	i := len(g.inputs) - 1
	if i >= len(g.replies) {
		i = len(g.replies) - 1
	}
	return dispatcher.Output{Text: g.replies[i], Tier: model.TierLocal, Attempts: []model.Tier{model.TierLocal}, Err: g.err}
}

type toolCall struct {
	serverID, name string
	args           map[string]any
}

type fakeRegistry struct {
	tools  []model.ToolDescriptor
	result string
	calls  []toolCall
}

func (r *fakeRegistry) ListTools(context.Context) []model.ToolDescriptor { return r.tools }

func (r *fakeRegistry) CallTool(_ context.Context, serverID, name string, args map[string]any) string {
	r.calls = append(r.calls, toolCall{serverID: serverID, name: name, args: args})
	return r.result
}

type fakeMemory struct {
	snippets []string
	queries  []string
}

func (m *fakeMemory) RetrieveRelevant(_ context.Context, q string) []string {
	m.queries = append(m.queries, q)
	return m.snippets
}

func (m *fakeMemory) AddMemory(context.Context, string) bool { return true }

func weatherTool() model.ToolDescriptor {
	return model.ToolDescriptor{
		Name:        "get_weather",
		Description: "Current weather for a city",
		ServerID:    "local",
		InputSchema: map[string]any{
			"type":       "object",
			"properties": map[string]any{"location": map[string]any{"type": "string"}},
		},
	}
}

type fixture struct {
	classifier *fakeClassifier
	generator  *scriptedGenerator
	registry   *fakeRegistry
	memory     *fakeMemory
	orch       *Orchestrator
}

func newFixture(t *testing.T, replies ...string) *fixture {
	t.Helper()
	f := &fixture{
		classifier: &fakeClassifier{assessment: model.ComplexityAssessment{Level: 2, Category: model.CategoryChat}},
		generator:  &scriptedGenerator{replies: replies},
		registry:   &fakeRegistry{tools: []model.ToolDescriptor{weatherTool()}, result: "Sunny, 20C"},
		memory:     &fakeMemory{},
	}
	f.orch = New(f.classifier, f.generator, f.registry, f.memory, Config{Timezone: "UTC"}, log.NewNop())
	f.orch.now = func() time.Time { return time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC) }
	return f
}

func TestProcess_PlainAnswer(t *testing.T) {
	f := newFixture(t, "Hello there.")

	res, err := f.orch.Process(context.Background(), "s1", "  hi  ")
	require.NoError(t, err)

	assert.Equal(t, "Hello there.", res.Text)
	assert.Equal(t, 1, res.Turns)
	assert.Equal(t, model.TierLocal, res.Tier)
	assert.Empty(t, res.ToolCalls)
	assert.Equal(t, 1, f.classifier.calls)
	assert.Equal(t, []string{"hi"}, f.memory.queries)

	in := f.generator.inputs[0]
	assert.Equal(t, "User: hi", in.Prompt)
	assert.Contains(t, in.SystemPrompt, DefaultPersona)
	assert.Contains(t, in.SystemPrompt, "local.get_weather (server: local): Current weather for a city")
	assert.Contains(t, in.SystemPrompt, `"location"`)
	assert.Contains(t, in.SystemPrompt, "Today: 2026-10-16 (Friday)")
	assert.Equal(t, 2, in.Assessment.Level)

	assert.Equal(t, []model.Turn{
		{Role: model.RoleUser, Content: "hi"},
		{Role: model.RoleAssistant, Content: "Hello there."},
	}, f.orch.History("s1"))
}

func TestProcess_ToolThenAnswer(t *testing.T) {
	directive := `<tool_call name="local.get_weather">{"location": "Tokyo"}</tool_call>`
	f := newFixture(t, directive, "It is sunny in Tokyo.")

	res, err := f.orch.Process(context.Background(), "s1", "weather in tokyo and should I go out")
	require.NoError(t, err)

	assert.Equal(t, "It is sunny in Tokyo.", res.Text)
	assert.Equal(t, 2, res.Turns)
	require.Len(t, f.registry.calls, 1)
	assert.Equal(t, toolCall{serverID: "local", name: "get_weather", args: map[string]any{"location": "Tokyo"}}, f.registry.calls[0])
	assert.Equal(t, []model.ToolCall{{ToolName: "get_weather", ServerID: "local", Arguments: map[string]any{"location": "Tokyo"}}}, res.ToolCalls)

	second := f.generator.inputs[1].Prompt
	assert.Contains(t, second, "Assistant: "+directive)
	assert.Contains(t, second, "[TOOL EXECUTION] call=local.get_weather result=Sunny, 20C")
	assert.Equal(t, f.generator.inputs[0].SystemPrompt, f.generator.inputs[1].SystemPrompt)
}

func TestProcess_TurnCap(t *testing.T) {
	replies := make([]string, 5)
	for i := range replies {
		replies[i] = fmt.Sprintf(`<tool_call name="get_weather">{"location": "city%d"}</tool_call>`, i+1)
	}
	f := newFixture(t, replies...)

	res, err := f.orch.Process(context.Background(), "s1", "loop forever")
	require.NoError(t, err)

	assert.Len(t, f.generator.inputs, 3)
	assert.Equal(t, 3, res.Turns)
	assert.Equal(t, replies[2], res.Text)
	assert.Len(t, f.registry.calls, 2)
	assert.Equal(t, 1, f.classifier.calls)
	assert.Len(t, f.memory.queries, 1)
}

func TestProcess_UnknownToolFinalizes(t *testing.T) {
	raw := `<tool_call name="local.launch_rocket">{}</tool_call>`
	f := newFixture(t, raw, "never reached")

	res, err := f.orch.Process(context.Background(), "s1", "launch")
	require.NoError(t, err)

	assert.Equal(t, raw, res.Text)
	assert.Equal(t, 1, res.Turns)
	assert.Empty(t, f.registry.calls)
	assert.Len(t, f.generator.inputs, 1)
}

func TestProcess_AmbiguousBareNameFinalizes(t *testing.T) {
	raw := `<tool_call name="get_weather">{"location": "Oslo"}</tool_call>`
	f := newFixture(t, raw, "never reached")
	other := weatherTool()
	other.ServerID = "remote"
	f.registry.tools = append(f.registry.tools, other)

	res, err := f.orch.Process(context.Background(), "s1", "weather")
	require.NoError(t, err)

	assert.Equal(t, raw, res.Text)
	assert.Empty(t, f.registry.calls)
}

func TestProcess_UnparsableArgumentsFinalize(t *testing.T) {
	raw := `<tool_call name="local.get_weather">just do it</tool_call>`
	f := newFixture(t, raw, "never reached")

	res, err := f.orch.Process(context.Background(), "s1", "weather")
	require.NoError(t, err)

	assert.Equal(t, raw, res.Text)
	assert.Equal(t, 1, res.Turns)
	assert.Empty(t, f.registry.calls)
}

func TestProcess_MemoryContext(t *testing.T) {
	f := newFixture(t, "ok")
	_, err := f.orch.Process(context.Background(), "s1", "what do I drink")
	require.NoError(t, err)
	assert.Equal(t, NoRelevantMemories, f.generator.inputs[0].Context)

	f.memory.snippets = []string{"User likes green tea", "User lives in Chennai"}
	_, err = f.orch.Process(context.Background(), "s1", "what do I drink")
	require.NoError(t, err)
	assert.Equal(t, "- User likes green tea\n- User lives in Chennai", f.generator.inputs[1].Context)
}

func TestProcess_HistoryFeedsNextPrompt(t *testing.T) {
	f := newFixture(t, "Hello!", "You said hi.")

	_, err := f.orch.Process(context.Background(), "s1", "hi")
	require.NoError(t, err)
	_, err = f.orch.Process(context.Background(), "s1", "what did I say")
	require.NoError(t, err)

	assert.Equal(t, "User: hi\nAssistant: Hello!\nUser: what did I say", f.generator.inputs[1].Prompt)
	assert.Len(t, f.orch.History("s1"), 4)
}

func TestProcess_HistoryIsBounded(t *testing.T) {
	f := newFixture(t, "ok")
	f.orch = New(f.classifier, f.generator, f.registry, f.memory, Config{HistorySize: 4}, log.NewNop())

	for i := 0; i < 5; i++ {
		_, err := f.orch.Process(context.Background(), "s1", fmt.Sprintf("msg %d", i))
		require.NoError(t, err)
	}

	turns := f.orch.History("s1")
	require.Len(t, turns, 4)
	assert.Equal(t, "msg 3", turns[0].Content)
	assert.Equal(t, "msg 4", turns[2].Content)
}

func TestProcess_SessionsAreIsolated(t *testing.T) {
	f := newFixture(t, "ok")

	_, err := f.orch.Process(context.Background(), "alice", "secret plan")
	require.NoError(t, err)
	_, err = f.orch.Process(context.Background(), "bob", "hello")
	require.NoError(t, err)

	assert.Equal(t, "User: hello", f.generator.inputs[1].Prompt)
	assert.Len(t, f.orch.History("alice"), 2)
	assert.Nil(t, f.orch.History("carol"))

	f.orch.Reset("alice")
	assert.Nil(t, f.orch.History("alice"))
}

func TestProcess_GeneratorFailureIsFinal(t *testing.T) {
	f := newFixture(t, "Error: local model unreachable")
	f.generator.err = errors.New("connection refused")

	res, err := f.orch.Process(context.Background(), "s1", "hi")
	require.NoError(t, err)

	assert.Equal(t, "Error: local model unreachable", res.Text)
	assert.Equal(t, 1, res.Turns)
	assert.Len(t, f.orch.History("s1"), 2)
}

func TestProcess_CanceledContext(t *testing.T) {
	f := newFixture(t, "ok")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.orch.Process(ctx, "s1", "hi")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, f.generator.inputs)
	assert.Empty(t, f.orch.History("s1"))
}

type cancelingGenerator struct{ cancel context.CancelFunc }

func (g cancelingGenerator) Dispatch(context.Context, dispatcher.Input) dispatcher.Output {
	g.cancel()
	return dispatcher.Output{Text: "Error: context canceled", Tier: model.TierLocal, Err: context.Canceled}
}

func TestProcess_CanceledDuringGeneration(t *testing.T) {
	f := newFixture(t, "unused")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	orch := New(f.classifier, cancelingGenerator{cancel: cancel}, f.registry, f.memory, Config{}, log.NewNop())

	_, err := orch.Process(ctx, "s1", "tell me a long story")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, orch.History("s1"))
}

func TestProcess_NoTools(t *testing.T) {
	f := newFixture(t, "ok")
	f.registry.tools = nil

	_, err := f.orch.Process(context.Background(), "s1", "hi")
	require.NoError(t, err)
	assert.Contains(t, f.generator.inputs[0].SystemPrompt, NoToolsNote)
}

func TestLoadPersona(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	custom := filepath.Join(dir, "persona.txt")
	require.NoError(t, os.WriteFile(custom, []byte("  You are Jarvis.\n"), 0o600))
	empty := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(empty, []byte("\n"), 0o600))

	assert.Equal(t, "You are Jarvis.", LoadPersona(ctx, custom, log.NewNop()))
	assert.Equal(t, DefaultPersona, LoadPersona(ctx, empty, log.NewNop()))
	assert.Equal(t, DefaultPersona, LoadPersona(ctx, filepath.Join(dir, "missing.txt"), log.NewNop()))
	assert.Equal(t, DefaultPersona, LoadPersona(ctx, "", log.NewNop()))
}
