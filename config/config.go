package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig
	RateLimit  RateLimitConfig

	// Decision core
	Router     RouterConfig
	Complexity ComplexityConfig
	Tiers      TiersConfig
	Agent      AgentConfig
	MCP        MCPConfig

	// Collaborators
	Ollama         OllamaConfig
	Memory         MemoryConfig
	Qdrant         QdrantConfig
	Voyage         VoyageConfig
	Notes          NotesConfig
	Weather        WeatherConfig
	GoogleCalendar GoogleCalendarConfig
	Telegram       TelegramConfig
}

type EnvironmentConfig struct {
	Name     string
	Timezone string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

type RateLimitConfig struct {
	Enabled         bool
	RequestsPerMin  int
	MaxTrackedPeers int
}

// RouterConfig configures the intent router and its optional label classifier.
type RouterConfig struct {
	ClassifierEnabled bool
	ClassifierModel   string
	ClassifierTimeout time.Duration
	AppsFile          string
}

// ComplexityConfig configures the complexity classifier.
type ComplexityConfig struct {
	Model         string
	Timeout       time.Duration
	WordThreshold int
}

// TiersConfig holds the three model tiers. Local is always enabled;
// Mid and High are enabled only when their credentials are present.
type TiersConfig struct {
	Local TierConfig
	Mid   TierConfig
	High  TierConfig
}

// TierConfig holds configuration for a single model tier.
type TierConfig struct {
	Provider    string // "ollama", "openai", "gemini"
	BaseURL     string
	APIKey      string
	Model       string
	Timeout     time.Duration
	Temperature float64
	MaxTokens   int
	Headers     map[string]string
}

// Enabled reports whether the tier has the credentials it needs.
// Ollama needs no key.
func (t TierConfig) Enabled() bool {
	if t.Provider == "" || t.Model == "" {
		return false
	}
	if t.Provider == "ollama" {
		return true
	}
	return t.APIKey != ""
}

type AgentConfig struct {
	MaxTurns    int
	HistorySize int
	PersonaFile string
	SessionTTL  time.Duration
	MaxSessions int
}

// MCPConfig lists the tool servers the registry talks to.
type MCPConfig struct {
	Servers           []MCPServerConfig
	ListTimeout       time.Duration
	CallTimeout       time.Duration
	MaxParallel       int
	LocalToolsEnabled bool
}

// MCPServerConfig describes a single tool server.
type MCPServerConfig struct {
	ID        string
	Transport string // "stdio", "http"
	Command   string
	Args      []string
	Env       map[string]string
	URL       string
	Headers   map[string]string
}

type OllamaConfig struct {
	BaseURL    string
	EmbedModel string
}

type MemoryConfig struct {
	Enabled        bool
	Embedder       string // "ollama" or "voyage"
	ScoreThreshold float64
	Limit          int
	Timeout        time.Duration
	CacheSize      int
	CacheTTL       time.Duration
}

type QdrantConfig struct {
	URL            string
	CollectionName string
	VectorSize     int
}

type VoyageConfig struct {
	APIKey string
	Model  string
}

type NotesConfig struct {
	DBPath string
}

type WeatherConfig struct {
	DefaultLocation string
	GeocodingURL    string
	ForecastURL     string
}

type GoogleCalendarConfig struct {
	CredentialsPath string
	TokenPath       string
	CalendarID      string
}

// TelegramConfig enables the Telegram chat channel when BotToken is set.
type TelegramConfig struct {
	BotToken      string
	WebhookURL    string
	WebhookSecret string
	ReplyTimeout  time.Duration
}

// Load loads configuration using Viper.
// Config file name: config.yaml, searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile is Load with an explicit config file path. An empty path searches the default locations.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/app/")
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if path != "" || !os.IsNotExist(err) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = v.GetString("environment.name")
	cfg.Environment.Timezone = v.GetString("environment.timezone")
	cfg.HTTPServer.Port = v.GetInt("http_server.port")
	cfg.HTTPServer.Mode = v.GetString("http_server.mode")
	cfg.Logger.Level = v.GetString("logger.level")
	cfg.Logger.Mode = v.GetString("logger.mode")
	cfg.Logger.Encoding = v.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = v.GetBool("logger.color_enabled")
	cfg.RateLimit.Enabled = v.GetBool("rate_limit.enabled")
	cfg.RateLimit.RequestsPerMin = v.GetInt("rate_limit.requests_per_min")
	cfg.RateLimit.MaxTrackedPeers = v.GetInt("rate_limit.max_tracked_peers")

	// Router & complexity
	cfg.Router.ClassifierEnabled = v.GetBool("router.classifier_enabled")
	cfg.Router.ClassifierModel = v.GetString("router.classifier_model")
	cfg.Router.ClassifierTimeout = v.GetDuration("router.classifier_timeout")
	cfg.Router.AppsFile = v.GetString("router.apps_file")
	cfg.Complexity.Model = v.GetString("complexity.model")
	cfg.Complexity.Timeout = v.GetDuration("complexity.timeout")
	cfg.Complexity.WordThreshold = v.GetInt("complexity.word_threshold")

	// Ollama (local tier + embeddings)
	cfg.Ollama.BaseURL = v.GetString("ollama.base_url")
	cfg.Ollama.EmbedModel = v.GetString("ollama.embed_model")
	if ollamaHost := v.GetString("ollama_host"); ollamaHost != "" {
		cfg.Ollama.BaseURL = ollamaHost
	}

	// Tiers
	cfg.Tiers.Local = loadTier(v, "tiers.local")
	cfg.Tiers.Mid = loadTier(v, "tiers.mid")
	cfg.Tiers.High = loadTier(v, "tiers.high")
	if cfg.Tiers.Local.Provider == "ollama" && cfg.Tiers.Local.BaseURL == "" {
		cfg.Tiers.Local.BaseURL = cfg.Ollama.BaseURL
	}
	if bytezKey := v.GetString("bytez_api_key"); bytezKey != "" && cfg.Tiers.Mid.APIKey == "" {
		cfg.Tiers.Mid.APIKey = bytezKey
	}
	if openRouterKey := v.GetString("openrouter_api_key"); openRouterKey != "" && cfg.Tiers.High.APIKey == "" {
		cfg.Tiers.High.APIKey = openRouterKey
	}

	// Agent
	cfg.Agent.MaxTurns = v.GetInt("agent.max_turns")
	cfg.Agent.HistorySize = v.GetInt("agent.history_size")
	cfg.Agent.PersonaFile = v.GetString("agent.persona_file")
	cfg.Agent.SessionTTL = v.GetDuration("agent.session_ttl")
	cfg.Agent.MaxSessions = v.GetInt("agent.max_sessions")

	// MCP tool servers
	cfg.MCP.ListTimeout = v.GetDuration("mcp.list_timeout")
	cfg.MCP.CallTimeout = v.GetDuration("mcp.call_timeout")
	cfg.MCP.MaxParallel = v.GetInt("mcp.max_parallel")
	cfg.MCP.LocalToolsEnabled = v.GetBool("mcp.local_tools_enabled")
	servers, err := loadMCPServers(v.ConfigFileUsed())
	if err != nil {
		return nil, err
	}
	cfg.MCP.Servers = servers

	// Memory
	cfg.Memory.Enabled = v.GetBool("memory.enabled")
	cfg.Memory.Embedder = v.GetString("memory.embedder")
	cfg.Memory.ScoreThreshold = v.GetFloat64("memory.score_threshold")
	cfg.Memory.Limit = v.GetInt("memory.limit")
	cfg.Memory.Timeout = v.GetDuration("memory.timeout")
	cfg.Memory.CacheSize = v.GetInt("memory.cache_size")
	cfg.Memory.CacheTTL = v.GetDuration("memory.cache_ttl")

	cfg.Qdrant.URL = v.GetString("qdrant.url")
	cfg.Qdrant.CollectionName = v.GetString("qdrant.collection_name")
	cfg.Qdrant.VectorSize = v.GetInt("qdrant.vector_size")
	if qdrantURL := v.GetString("qdrant_url"); qdrantURL != "" {
		cfg.Qdrant.URL = qdrantURL
	}

	// Voyage AI
	cfg.Voyage.APIKey = expandEnvVar(v, v.GetString("voyage.api_key"))
	cfg.Voyage.Model = v.GetString("voyage.model")
	if voyageKey := v.GetString("voyage_api_key"); voyageKey != "" {
		cfg.Voyage.APIKey = voyageKey
	}

	// Local tools
	cfg.Notes.DBPath = v.GetString("notes.db_path")
	cfg.Weather.DefaultLocation = v.GetString("weather.default_location")
	cfg.Weather.GeocodingURL = v.GetString("weather.geocoding_url")
	cfg.Weather.ForecastURL = v.GetString("weather.forecast_url")

	cfg.GoogleCalendar.CredentialsPath = v.GetString("google_calendar.credentials_path")
	cfg.GoogleCalendar.TokenPath = v.GetString("google_calendar.token_path")
	cfg.GoogleCalendar.CalendarID = v.GetString("google_calendar.calendar_id")
	if googleCreds := v.GetString("google_calendar_credentials"); googleCreds != "" {
		cfg.GoogleCalendar.CredentialsPath = googleCreds
	}

	// Telegram
	cfg.Telegram.BotToken = expandEnvVar(v, v.GetString("telegram.bot_token"))
	cfg.Telegram.WebhookURL = v.GetString("telegram.webhook_url")
	cfg.Telegram.WebhookSecret = expandEnvVar(v, v.GetString("telegram.webhook_secret"))
	cfg.Telegram.ReplyTimeout = v.GetDuration("telegram.reply_timeout")

	if err := validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadTier(v *viper.Viper, prefix string) TierConfig {
	return TierConfig{
		Provider:    v.GetString(prefix + ".provider"),
		BaseURL:     v.GetString(prefix + ".base_url"),
		APIKey:      expandEnvVar(v, v.GetString(prefix+".api_key")),
		Model:       v.GetString(prefix + ".model"),
		Timeout:     v.GetDuration(prefix + ".timeout"),
		Temperature: v.GetFloat64(prefix + ".temperature"),
		MaxTokens:   v.GetInt(prefix + ".max_tokens"),
		Headers:     v.GetStringMapString(prefix + ".headers"),
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment.name", "development")
	v.SetDefault("environment.timezone", "Local")
	v.SetDefault("http_server.port", 8080)
	v.SetDefault("http_server.mode", "debug")
	v.SetDefault("logger.level", "debug")
	v.SetDefault("logger.mode", "debug")
	v.SetDefault("logger.encoding", "console")
	v.SetDefault("logger.color_enabled", true)
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests_per_min", 60)
	v.SetDefault("rate_limit.max_tracked_peers", 1000)

	v.SetDefault("router.classifier_enabled", false)
	v.SetDefault("router.classifier_model", "A1-Router_llm")
	v.SetDefault("router.classifier_timeout", "1s")
	v.SetDefault("complexity.model", "llama3.2:3b")
	v.SetDefault("complexity.timeout", "3s")
	v.SetDefault("complexity.word_threshold", 5)

	v.SetDefault("ollama.base_url", "http://localhost:11434")
	v.SetDefault("ollama.embed_model", "nomic-embed-text")

	v.SetDefault("tiers.local.provider", "ollama")
	v.SetDefault("tiers.local.model", "llama3.2:3b")
	v.SetDefault("tiers.local.timeout", "120s")
	v.SetDefault("tiers.mid.provider", "openai")
	v.SetDefault("tiers.mid.base_url", "https://api.bytez.com/v1")
	v.SetDefault("tiers.mid.api_key", "${BYTEZ_API_KEY}")
	v.SetDefault("tiers.mid.model", "meta-llama/Llama-3-70b-instruct")
	v.SetDefault("tiers.mid.timeout", "40s")
	v.SetDefault("tiers.high.provider", "openai")
	v.SetDefault("tiers.high.base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("tiers.high.api_key", "${OPENROUTER_API_KEY}")
	v.SetDefault("tiers.high.model", "anthropic/claude-3-haiku")
	v.SetDefault("tiers.high.timeout", "60s")
	v.SetDefault("tiers.high.headers", map[string]string{
		"HTTP-Referer": "http://localhost:3000",
		"X-Title":      "A1 Assistant",
	})

	v.SetDefault("agent.max_turns", 3)
	v.SetDefault("agent.history_size", 10)
	v.SetDefault("agent.session_ttl", "30m")
	v.SetDefault("agent.max_sessions", 256)

	v.SetDefault("mcp.list_timeout", "10s")
	v.SetDefault("mcp.call_timeout", "10s")
	v.SetDefault("mcp.max_parallel", 4)
	v.SetDefault("mcp.local_tools_enabled", true)

	v.SetDefault("memory.enabled", true)
	v.SetDefault("memory.embedder", "ollama")
	v.SetDefault("memory.score_threshold", 0.4)
	v.SetDefault("memory.limit", 3)
	v.SetDefault("memory.timeout", "10s")
	v.SetDefault("memory.cache_size", 256)
	v.SetDefault("memory.cache_ttl", "10m")
	v.SetDefault("qdrant.url", "http://localhost:6333")
	v.SetDefault("qdrant.collection_name", "a1_memories")
	v.SetDefault("qdrant.vector_size", 768)
	v.SetDefault("voyage.model", "voyage-3")

	v.SetDefault("notes.db_path", "notes.db")
	v.SetDefault("weather.default_location", "Chennai")
	v.SetDefault("weather.geocoding_url", "https://geocoding-api.open-meteo.com/v1")
	v.SetDefault("weather.forecast_url", "https://api.open-meteo.com/v1")
	v.SetDefault("google_calendar.token_path", "token.json")
	v.SetDefault("google_calendar.calendar_id", "primary")
	v.SetDefault("telegram.bot_token", "${TELEGRAM_BOT_TOKEN}")
	v.SetDefault("telegram.reply_timeout", "2m")
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(v *viper.Viper, value string) string {
	if value == "" {
		return value
	}

	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := value[2 : len(value)-1]
		// Try viper first (handles both env and config)
		if envValue := v.GetString(envVar); envValue != "" {
			return envValue
		}
		if envValue := v.GetString(strings.ToLower(envVar)); envValue != "" {
			return envValue
		}
		if envValue := os.Getenv(envVar); envValue != "" {
			return envValue
		}
		// Unresolved placeholders mean "no credential".
		return ""
	}

	return value
}

// validate checks the invariants the core relies on.
func validate(cfg *Config) error {
	if cfg.Tiers.Local.Provider == "" || cfg.Tiers.Local.Model == "" {
		return fmt.Errorf("tiers.local: provider and model are required")
	}
	if !cfg.Tiers.Local.Enabled() {
		return fmt.Errorf("tiers.local: provider %s has no api key configured", cfg.Tiers.Local.Provider)
	}
	if cfg.Agent.MaxTurns <= 0 {
		return fmt.Errorf("agent.max_turns must be positive")
	}
	if cfg.Agent.HistorySize <= 0 {
		return fmt.Errorf("agent.history_size must be positive")
	}

	seen := make(map[string]bool)
	for i, s := range cfg.MCP.Servers {
		if s.ID == "" {
			return fmt.Errorf("mcp server %d: id is required", i)
		}
		if seen[s.ID] {
			return fmt.Errorf("mcp server %s: duplicate id", s.ID)
		}
		seen[s.ID] = true

		switch s.Transport {
		case "stdio", "":
			if s.Command == "" {
				return fmt.Errorf("mcp server %s: command is required for stdio transport", s.ID)
			}
		case "http":
			if s.URL == "" {
				return fmt.Errorf("mcp server %s: url is required for http transport", s.ID)
			}
		default:
			return fmt.Errorf("mcp server %s: unknown transport %q", s.ID, s.Transport)
		}
	}

	return nil
}

// mcpFile mirrors the mcp.servers section of the config file.
type mcpFile struct {
	MCP struct {
		Servers []struct {
			ID        string            `yaml:"id"`
			Transport string            `yaml:"transport"`
			Command   string            `yaml:"command"`
			Args      []string          `yaml:"args"`
			Env       map[string]string `yaml:"env"`
			URL       string            `yaml:"url"`
			Headers   map[string]string `yaml:"headers"`
		} `yaml:"servers"`
	} `yaml:"mcp"`
}

// loadMCPServers decodes mcp.servers straight from the file.
// Viper lower-cases map keys, which would break env names like GITHUB_TOKEN.
func loadMCPServers(path string) ([]MCPServerConfig, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
	default:
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var f mcpFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("error decoding mcp servers: %w", err)
	}

	servers := make([]MCPServerConfig, 0, len(f.MCP.Servers))
	for _, s := range f.MCP.Servers {
		servers = append(servers, MCPServerConfig{
			ID:        s.ID,
			Transport: s.Transport,
			Command:   s.Command,
			Args:      s.Args,
			Env:       expandEnv(s.Env),
			URL:       s.URL,
			Headers:   expandEnv(s.Headers),
		})
	}
	return servers, nil
}

func expandEnv(m map[string]string) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, val := range m {
		out[k] = os.ExpandEnv(val)
	}
	return out
}
