package complexity

import (
	"context"
	"time"

	"voice-assistant/internal/model"
	"voice-assistant/pkg/log"
	"voice-assistant/pkg/ollama"
)

// Classifier estimates how hard a prompt is.
type Classifier interface {
	Classify(ctx context.Context, prompt string) model.ComplexityAssessment
}

// Config configures the Ollama-backed classifier.
type Config struct {
	Model         string
	Timeout       time.Duration
	WordThreshold int
}

// OllamaClassifier scores prompts with the local model. It never fails.
type OllamaClassifier struct {
	llm       ollama.IOllama
	model     string
	timeout   time.Duration
	threshold int
	l         log.Logger
}

// Ensure OllamaClassifier implements Classifier interface
var _ Classifier = (*OllamaClassifier)(nil)

// New creates an OllamaClassifier. Zero config values use the defaults.
func New(llm ollama.IOllama, cfg Config, l log.Logger) *OllamaClassifier {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.WordThreshold <= 0 {
		cfg.WordThreshold = DefaultWordThreshold
	}
	return &OllamaClassifier{
		llm:       llm,
		model:     cfg.Model,
		timeout:   cfg.Timeout,
		threshold: cfg.WordThreshold,
		l:         l,
	}
}
