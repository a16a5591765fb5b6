package ollama

import "context"

// IOllama defines the interface for the Ollama API client.
// Implementations are safe for concurrent use.
type IOllama interface {
	// Generate sends a single non-streaming generation request
	Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error)

	// Embed returns the embedding vector of text
	Embed(ctx context.Context, text string) ([]float32, error)

	// Model returns the default generation model
	Model() string
}

// New creates a new Ollama client with the given configuration
func New(cfg Config) (IOllama, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newOllamaImpl(cfg), nil
}
