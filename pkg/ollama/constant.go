package ollama

import "time"

const (
	// DefaultModel is the default local generation model
	DefaultModel = "llama3.2:3b"

	// DefaultEmbedModel is the default embedding model (768 dimensions)
	DefaultEmbedModel = "nomic-embed-text"

	// DefaultBaseURL is the default Ollama endpoint
	DefaultBaseURL = "http://localhost:11434"

	// DefaultTimeout is the default HTTP client timeout
	DefaultTimeout = 120 * time.Second

	// FormatJSON asks Ollama for structured JSON output
	FormatJSON = "json"
)
