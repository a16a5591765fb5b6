package llmprovider

import (
	"context"

	"voice-assistant/pkg/gemini"
	"voice-assistant/pkg/ollama"
	"voice-assistant/pkg/openaicompat"
)

// Provider names
const (
	NameOllama = "ollama"
	NameOpenAI = "openai"
	NameGemini = "gemini"
)

// OllamaAdapter adapts pkg/ollama to llmprovider.Provider interface
type OllamaAdapter struct {
	client ollama.IOllama
	model  string
}

// NewOllamaAdapter creates a new Ollama adapter. An empty model uses the client default.
func NewOllamaAdapter(client ollama.IOllama, model string) *OllamaAdapter {
	if model == "" {
		model = client.Model()
	}
	return &OllamaAdapter{client: client, model: model}
}

// GenerateContent implements Provider interface
func (a *OllamaAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	ollamaReq := &ollama.GenerateRequest{
		Model:  a.model,
		Prompt: req.Prompt,
		System: req.SystemInstruction,
	}
	if req.Temperature > 0 {
		temp := req.Temperature
		ollamaReq.Temperature = &temp
	}
	if req.MaxTokens > 0 {
		ollamaReq.NumPredict = req.MaxTokens
	}

	resp, err := a.client.Generate(ctx, ollamaReq)
	if err != nil {
		return nil, wrapError(NameOllama, err)
	}
	if err := checkText(NameOllama, resp.Text); err != nil {
		return nil, err
	}

	return &Response{
		Text:         resp.Text,
		ProviderName: NameOllama,
		ModelName:    a.model,
		Usage: &Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

// Name returns provider name
func (a *OllamaAdapter) Name() string {
	return NameOllama
}

// Model returns model name
func (a *OllamaAdapter) Model() string {
	return a.model
}

// OpenAIAdapter adapts pkg/openaicompat to llmprovider.Provider interface
type OpenAIAdapter struct {
	client openaicompat.IClient
}

// NewOpenAIAdapter creates a new OpenAI-compatible adapter
func NewOpenAIAdapter(client openaicompat.IClient) *OpenAIAdapter {
	return &OpenAIAdapter{client: client}
}

// GenerateContent implements Provider interface
func (a *OpenAIAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	messages := make([]openaicompat.Message, 0, 2)
	if req.SystemInstruction != "" {
		messages = append(messages, openaicompat.Message{Role: openaicompat.RoleSystem, Content: req.SystemInstruction})
	}
	messages = append(messages, openaicompat.Message{Role: openaicompat.RoleUser, Content: req.Prompt})

	resp, err := a.client.ChatCompletion(ctx, &openaicompat.Request{
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return nil, wrapError(NameOpenAI, err)
	}
	if err := checkText(NameOpenAI, resp.Text); err != nil {
		return nil, err
	}

	return &Response{
		Text:         resp.Text,
		ProviderName: NameOpenAI,
		ModelName:    a.client.Model(),
		Usage: &Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

// Name returns provider name
func (a *OpenAIAdapter) Name() string {
	return NameOpenAI
}

// Model returns model name
func (a *OpenAIAdapter) Model() string {
	return a.client.Model()
}

// GeminiAdapter adapts pkg/gemini to llmprovider.Provider interface
type GeminiAdapter struct {
	client gemini.IGemini
}

// NewGeminiAdapter creates a new Gemini adapter
func NewGeminiAdapter(client gemini.IGemini) *GeminiAdapter {
	return &GeminiAdapter{client: client}
}

// GenerateContent implements Provider interface
func (a *GeminiAdapter) GenerateContent(ctx context.Context, req *Request) (*Response, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	resp, err := a.client.GenerateContent(ctx, &gemini.Request{
		SystemInstruction: req.SystemInstruction,
		Prompt:            req.Prompt,
		Temperature:       req.Temperature,
		MaxTokens:         req.MaxTokens,
	})
	if err != nil {
		return nil, wrapError(NameGemini, err)
	}
	if err := checkText(NameGemini, resp.Text); err != nil {
		return nil, err
	}

	return &Response{
		Text:         resp.Text,
		ProviderName: NameGemini,
		ModelName:    a.client.Model(),
		Usage: &Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

// Name returns provider name
func (a *GeminiAdapter) Name() string {
	return NameGemini
}

// Model returns model name
func (a *GeminiAdapter) Model() string {
	return a.client.Model()
}
