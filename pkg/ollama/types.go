package ollama

import (
	"fmt"
	"net/http"
	"strings"
)

// Config holds Ollama client configuration
type Config struct {
	BaseURL    string
	Model      string
	EmbedModel string
	HTTPClient *http.Client
}

// Validate fills defaults and checks the configuration
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("ollama: invalid base URL %q", c.BaseURL)
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.EmbedModel == "" {
		c.EmbedModel = DefaultEmbedModel
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: DefaultTimeout}
	}
	return nil
}

// ollamaImpl is the internal implementation of IOllama
type ollamaImpl struct {
	baseURL    string
	model      string
	embedModel string
	httpClient *http.Client
}

// GenerateRequest is a single-shot generation request.
// Model falls back to the client default when empty.
type GenerateRequest struct {
	Model       string
	Prompt      string
	System      string
	Format      string
	Temperature *float64
	NumPredict  int
}

// GenerateResponse is the generated text and token accounting
type GenerateResponse struct {
	Text  string
	Model string
	Usage *Usage
}

// Usage tracks token consumption
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// Wire types for the Ollama REST API
type apiGenerateRequest struct {
	Model   string      `json:"model"`
	Prompt  string      `json:"prompt"`
	System  string      `json:"system,omitempty"`
	Format  string      `json:"format,omitempty"`
	Stream  bool        `json:"stream"`
	Options *apiOptions `json:"options,omitempty"`
}

type apiOptions struct {
	Temperature *float64 `json:"temperature,omitempty"`
	NumPredict  int      `json:"num_predict,omitempty"`
}

type apiGenerateResponse struct {
	Model           string `json:"model"`
	Response        string `json:"response"`
	Done            bool   `json:"done"`
	PromptEvalCount int    `json:"prompt_eval_count"`
	EvalCount       int    `json:"eval_count"`
}

type apiEmbeddingRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type apiEmbeddingResponse struct {
	Embedding []float32 `json:"embedding"`
}
