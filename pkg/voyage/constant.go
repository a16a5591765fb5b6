package voyage

import "time"

const (
	// DefaultBaseURL is the Voyage AI REST endpoint
	DefaultBaseURL = "https://api.voyageai.com/v1"

	// DefaultModel is voyage-3 (1024 dimensions)
	DefaultModel = "voyage-3"

	// DefaultTimeout bounds a single embeddings call
	DefaultTimeout = 30 * time.Second
)
