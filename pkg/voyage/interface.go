package voyage

import "context"

// IVoyage defines the interface for Voyage AI embeddings.
// Implementations are safe for concurrent use.
type IVoyage interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// New creates a new Voyage client with the given configuration
func New(cfg Config) (IVoyage, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &voyageImpl{
		apiKey:     cfg.APIKey,
		baseURL:    cfg.BaseURL,
		model:      cfg.Model,
		httpClient: cfg.HTTPClient,
	}, nil
}
