package llmprovider

import (
	"fmt"
	"net/http"

	"voice-assistant/config"
	"voice-assistant/pkg/gemini"
	"voice-assistant/pkg/ollama"
	"voice-assistant/pkg/openaicompat"
)

// NewFromTier creates the Provider serving one model tier.
// The tier timeout is applied by the caller through ctx; the HTTP client
// timeout is kept as a backstop at the same value.
func NewFromTier(cfg config.TierConfig) (Provider, error) {
	if cfg.Model == "" {
		return nil, fmt.Errorf("provider %s: model is required", cfg.Provider)
	}

	var httpClient *http.Client
	if cfg.Timeout > 0 {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	switch cfg.Provider {
	case NameOllama:
		client, err := ollama.New(ollama.Config{
			BaseURL:    cfg.BaseURL,
			Model:      cfg.Model,
			HTTPClient: httpClient,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create ollama client: %w", err)
		}
		return NewOllamaAdapter(client, cfg.Model), nil

	case NameOpenAI, "bytez", "openrouter", "deepseek", "qwen":
		client, err := openaicompat.New(openaicompat.Config{
			APIKey:     cfg.APIKey,
			Model:      cfg.Model,
			BaseURL:    cfg.BaseURL,
			Headers:    cfg.Headers,
			HTTPClient: httpClient,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create %s client: %w", cfg.Provider, err)
		}
		return NewOpenAIAdapter(client), nil

	case NameGemini:
		client, err := gemini.New(gemini.Config{
			APIKey:     cfg.APIKey,
			Model:      cfg.Model,
			APIURL:     cfg.BaseURL,
			HTTPClient: httpClient,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini client: %w", err)
		}
		return NewGeminiAdapter(client), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, cfg.Provider)
	}
}
