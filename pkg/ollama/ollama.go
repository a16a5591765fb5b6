package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// newOllamaImpl creates a new Ollama implementation
func newOllamaImpl(cfg Config) *ollamaImpl {
	return &ollamaImpl{
		baseURL:    cfg.BaseURL,
		model:      cfg.Model,
		embedModel: cfg.EmbedModel,
		httpClient: cfg.HTTPClient,
	}
}

// Generate sends a non-streaming request to /api/generate
func (o *ollamaImpl) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("ollama: request is nil")
	}

	apiReq := apiGenerateRequest{
		Model:  req.Model,
		Prompt: req.Prompt,
		System: req.System,
		Format: req.Format,
		Stream: false,
	}
	if apiReq.Model == "" {
		apiReq.Model = o.model
	}
	if req.Temperature != nil || req.NumPredict > 0 {
		apiReq.Options = &apiOptions{Temperature: req.Temperature, NumPredict: req.NumPredict}
	}

	var apiResp apiGenerateResponse
	if err := o.post(ctx, "/api/generate", apiReq, &apiResp); err != nil {
		return nil, err
	}

	return &GenerateResponse{
		Text:  apiResp.Response,
		Model: apiResp.Model,
		Usage: &Usage{
			InputTokens:  apiResp.PromptEvalCount,
			OutputTokens: apiResp.EvalCount,
			TotalTokens:  apiResp.PromptEvalCount + apiResp.EvalCount,
		},
	}, nil
}

// Embed calls /api/embeddings with the configured embedding model
func (o *ollamaImpl) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, fmt.Errorf("ollama: text is required")
	}

	var apiResp apiEmbeddingResponse
	if err := o.post(ctx, "/api/embeddings", apiEmbeddingRequest{Model: o.embedModel, Prompt: text}, &apiResp); err != nil {
		return nil, err
	}
	if len(apiResp.Embedding) == 0 {
		return nil, fmt.Errorf("ollama: empty embedding")
	}

	return apiResp.Embedding, nil
}

// Model returns the default generation model
func (o *ollamaImpl) Model() string {
	return o.model
}

func (o *ollamaImpl) post(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("ollama: failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+path, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("ollama: failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := o.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("ollama: API call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("ollama: API error %d: %s", resp.StatusCode, string(bodyBytes))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("ollama: failed to decode response: %w", err)
	}

	return nil
}
