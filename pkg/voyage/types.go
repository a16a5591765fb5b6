package voyage

import (
	"errors"
	"net/http"
	"strings"
)

// Config holds Voyage client configuration
type Config struct {
	APIKey     string
	BaseURL    string
	Model      string
	HTTPClient *http.Client
}

// Validate fills defaults and checks the configuration
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return errors.New("voyage: API key is required")
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: DefaultTimeout}
	}
	return nil
}

// voyageImpl is the internal implementation of IVoyage
type voyageImpl struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

// embedRequest is the request body for the embeddings API.
type embedRequest struct {
	Input     []string `json:"input"`
	Model     string   `json:"model"`
	InputType string   `json:"input_type,omitempty"`
}

type embedResponse struct {
	Data  []embeddingData `json:"data"`
	Model string          `json:"model"`
}

type embeddingData struct {
	Embedding []float32 `json:"embedding"`
	Index     int       `json:"index"`
}

type errorResponse struct {
	Detail string `json:"detail"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
}
