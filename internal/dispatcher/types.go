package dispatcher

import (
	"time"

	"voice-assistant/internal/model"
	"voice-assistant/pkg/llmprovider"
)

// Endpoint is one configured tier.
type Endpoint struct {
	Provider    llmprovider.Provider
	Timeout     time.Duration
	Temperature float64
	MaxTokens   int
}

// Input is one generation request.
type Input struct {
	Prompt       string
	SystemPrompt string
	Context      string
	Assessment   model.ComplexityAssessment
}

// Output is always usable: Text holds an error string when every attempt failed.
type Output struct {
	Text     string
	Tier     model.Tier
	Attempts []model.Tier
	Err      error
}
