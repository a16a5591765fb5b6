package memory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"voice-assistant/pkg/ollama"
	"voice-assistant/pkg/voyage"
)

// Embedder turns one text into a vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// ErrEmptyEmbedding is returned when a backend answers without a vector.
var ErrEmptyEmbedding = errors.New("memory: empty embedding")

type ollamaEmbedder struct {
	llm ollama.IOllama
}

// NewOllamaEmbedder embeds with the Ollama embedding model.
func NewOllamaEmbedder(llm ollama.IOllama) Embedder {
	return ollamaEmbedder{llm: llm}
}

func (e ollamaEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vec, err := e.llm.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	if len(vec) == 0 {
		return nil, ErrEmptyEmbedding
	}
	return vec, nil
}

type voyageEmbedder struct {
	client voyage.IVoyage
}

// NewVoyageEmbedder embeds with the Voyage AI API.
func NewVoyageEmbedder(client voyage.IVoyage) Embedder {
	return voyageEmbedder{client: client}
}

func (e voyageEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	vecs, err := e.client.Embed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vecs) == 0 || len(vecs[0]) == 0 {
		return nil, ErrEmptyEmbedding
	}
	return vecs[0], nil
}

// CachedEmbedder memoizes vectors per text for a bounded time.
type CachedEmbedder struct {
	next  Embedder
	cache *expirable.LRU[string, []float32]
}

// NewCachedEmbedder wraps next with an expirable LRU cache.
func NewCachedEmbedder(next Embedder, size int, ttl time.Duration) *CachedEmbedder {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedEmbedder{
		next:  next,
		cache: expirable.NewLRU[string, []float32](size, nil, ttl),
	}
}

func (c *CachedEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if vec, ok := c.cache.Get(text); ok {
		return vec, nil
	}
	vec, err := c.next.Embed(ctx, text)
	if err != nil {
		return nil, err
	}
	c.cache.Add(text, vec)
	return vec, nil
}

// NewEmbedder selects the backend by name. Voyage requires a client.
func NewEmbedder(name string, llm ollama.IOllama, vc voyage.IVoyage) (Embedder, error) {
	switch name {
	case EmbedderOllama, "":
		if llm == nil {
			return nil, errors.New("memory: ollama embedder requires an ollama client")
		}
		return NewOllamaEmbedder(llm), nil
	case EmbedderVoyage:
		if vc == nil {
			return nil, errors.New("memory: voyage embedder requires a voyage API key")
		}
		return NewVoyageEmbedder(vc), nil
	default:
		return nil, fmt.Errorf("memory: unknown embedder %q", name)
	}
}
