package bootstrap

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voice-assistant/config"
	"voice-assistant/internal/localtools"
	"voice-assistant/internal/memory"
	"voice-assistant/internal/model"
	"voice-assistant/pkg/log"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := "memory:\n  enabled: false\nnotes:\n  db_path: " + filepath.Join(dir, "notes.db") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	cfg, err := config.LoadFile(path)
	require.NoError(t, err)
	return cfg
}

func TestBuild(t *testing.T) {
	ctx := context.Background()
	app, err := Build(ctx, testConfig(t), log.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, app.Close()) })

	assert.IsType(t, memory.Noop{}, app.Memory)
	assert.NotNil(t, app.Metrics)
	assert.NotNil(t, app.Apps)

	tools := app.Registry.ListTools(ctx)
	names := make([]string, 0, len(tools))
	for _, d := range tools {
		assert.Equal(t, localtools.ServerID, d.ServerID)
		names = append(names, d.Name)
	}
	assert.Contains(t, names, localtools.ToolCurrentTime)
	assert.Contains(t, names, localtools.ToolTakeNote)

	reply, err := app.Assistant.Handle(ctx, "s1", "what time is it")
	require.NoError(t, err)
	assert.Equal(t, model.IntentCurrentTime, reply.Intent.Name)
	assert.True(t, reply.Executed)
	assert.True(t, strings.HasPrefix(reply.Text, "The current time is"), reply.Text)

	reply, err = app.Assistant.Handle(ctx, "s1", "take a note: buy oat milk")
	require.NoError(t, err)
	assert.Equal(t, "Note saved: 'buy oat milk'", reply.Text)
}

func TestBuild_Telegram(t *testing.T) {
	cfg := testConfig(t)
	cfg.Telegram.BotToken = ""

	app, err := Build(context.Background(), cfg, log.NewNop())
	require.NoError(t, err)
	defer app.Close()
	assert.Nil(t, app.Telegram)
	assert.NoError(t, app.RegisterWebhooks(context.Background(), log.NewNop()))

	cfg = testConfig(t)
	cfg.Telegram.BotToken = "123:abc"
	app, err = Build(context.Background(), cfg, log.NewNop())
	require.NoError(t, err)
	defer app.Close()
	assert.NotNil(t, app.Telegram)
}

func TestBuild_LocalToolsDisabled(t *testing.T) {
	cfg := testConfig(t)
	cfg.MCP.LocalToolsEnabled = false

	app, err := Build(context.Background(), cfg, log.NewNop())
	require.NoError(t, err)
	defer app.Close()

	assert.Empty(t, app.Registry.ListTools(context.Background()))
}

func TestBuild_AppsFile(t *testing.T) {
	cfg := testConfig(t)
	cfg.Router.AppsFile = filepath.Join(t.TempDir(), "apps.yaml")
	require.NoError(t, os.WriteFile(cfg.Router.AppsFile, []byte("apps:\n  notes app: gnome-text-editor\n"), 0o600))

	app, err := Build(context.Background(), cfg, log.NewNop())
	require.NoError(t, err)
	defer app.Close()

	require.NotNil(t, app.Apps)
	command, ok := app.Apps.Resolve("notes app")
	assert.True(t, ok)
	assert.Equal(t, "gnome-text-editor", command)

	require.NoError(t, os.WriteFile(cfg.Router.AppsFile, []byte("apps:\n  music player: spotify-launcher\n"), 0o600))
	require.NoError(t, app.Apps.Refresh(context.Background()))

	intent := app.Assistant.Route(context.Background(), "open music player")
	assert.Equal(t, model.IntentAppOpen, intent.Name)
	assert.Equal(t, "spotify-launcher", intent.Param(model.ParamCommand))
}

func TestNewMemory_UnknownEmbedder(t *testing.T) {
	cfg := testConfig(t)
	cfg.Memory.Enabled = true
	cfg.Memory.Embedder = "word2vec"

	assert.IsType(t, memory.Noop{}, newMemory(context.Background(), cfg, nil, log.NewNop()))
}

func TestNewMemory_VoyageWithoutKey(t *testing.T) {
	cfg := testConfig(t)
	cfg.Memory.Enabled = true
	cfg.Memory.Embedder = memory.EmbedderVoyage
	cfg.Voyage.APIKey = ""

	assert.IsType(t, memory.Noop{}, newMemory(context.Background(), cfg, nil, log.NewNop()))
}
