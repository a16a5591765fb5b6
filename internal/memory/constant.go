package memory

import "time"

// Log prefixes
const (
	LogPrefixRetrieve = "internal.memory.RetrieveRelevant"
	LogPrefixAdd      = "internal.memory.AddMemory"
	LogPrefixInit     = "internal.memory.New"
)

// Defaults
const (
	DefaultCollection     = "a1_memories"
	DefaultVectorSize     = 768
	DefaultScoreThreshold = 0.4
	DefaultLimit          = 3
	DefaultTimeout        = 10 * time.Second
	DefaultCacheSize      = 256
	DefaultCacheTTL       = 10 * time.Minute

	DistanceCosine = "Cosine"
)

// Payload keys and values stored alongside each vector
const (
	PayloadText      = "text"
	PayloadSource    = "source"
	PayloadType      = "type"
	PayloadTimestamp = "timestamp"
	PayloadDate      = "date"

	SourceUser = "user"
	TypeFact   = "fact"
)

// Embedder names accepted by NewEmbedder
const (
	EmbedderOllama = "ollama"
	EmbedderVoyage = "voyage"
)
