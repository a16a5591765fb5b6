package memory

import (
	"context"
	"time"

	"voice-assistant/pkg/log"
	"voice-assistant/pkg/qdrant"
)

// Gateway stores and recalls long-term facts. Failures are logged and
// degrade to empty results, never errors.
type Gateway interface {
	// RetrieveRelevant returns up to Limit memory texts ranked by relevance.
	RetrieveRelevant(ctx context.Context, query string) []string
	// AddMemory stores text and reports whether it was persisted.
	AddMemory(ctx context.Context, text string) bool
}

// vectorStore is the subset of the Qdrant client the gateway needs.
type vectorStore interface {
	EnsureCollection(ctx context.Context, req qdrant.CreateCollectionRequest) error
	UpsertPoints(ctx context.Context, collectionName string, req qdrant.UpsertPointsRequest) error
	SearchPoints(ctx context.Context, collectionName string, req qdrant.SearchRequest) (*qdrant.SearchResponse, error)
}

var _ vectorStore = (*qdrant.Client)(nil)

// Config configures the vector gateway. Zero values use the defaults.
type Config struct {
	Collection     string
	VectorSize     int
	ScoreThreshold float64
	Limit          int
	Timeout        time.Duration
}

// VectorGateway keeps memories in a Qdrant collection.
type VectorGateway struct {
	store    vectorStore
	embedder Embedder
	cfg      Config
	l        log.Logger
	now      func() time.Time
	newPoint func() string
}

var _ Gateway = (*VectorGateway)(nil)

// New creates a VectorGateway and makes sure its collection exists.
// A store that cannot be reached at start is logged, not fatal.
func New(ctx context.Context, store vectorStore, embedder Embedder, cfg Config, l log.Logger) *VectorGateway {
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}
	if cfg.VectorSize <= 0 {
		cfg.VectorSize = DefaultVectorSize
	}
	if cfg.ScoreThreshold <= 0 {
		cfg.ScoreThreshold = DefaultScoreThreshold
	}
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultLimit
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	g := &VectorGateway{
		store:    store,
		embedder: embedder,
		cfg:      cfg,
		l:        l,
		now:      time.Now,
		newPoint: newPointID,
	}

	initCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	err := store.EnsureCollection(initCtx, qdrant.CreateCollectionRequest{
		Name:    cfg.Collection,
		Vectors: qdrant.VectorConfig{Size: cfg.VectorSize, Distance: DistanceCosine},
	})
	if err != nil {
		l.Warnf(ctx, "%s: could not verify collection %s: %v", LogPrefixInit, cfg.Collection, err)
	}

	return g
}

// Noop is the gateway used when memory is disabled.
type Noop struct{}

var _ Gateway = Noop{}

func (Noop) RetrieveRelevant(context.Context, string) []string { return nil }

func (Noop) AddMemory(context.Context, string) bool { return false }
