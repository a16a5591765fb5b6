package router

import (
	"context"
	"strings"
	"time"

	"voice-assistant/pkg/log"
	"voice-assistant/pkg/ollama"
)

// OllamaClassifier asks a small fine-tuned model for a one-word label.
type OllamaClassifier struct {
	llm     ollama.IOllama
	model   string
	timeout time.Duration
	l       log.Logger
}

// Ensure OllamaClassifier implements LabelClassifier interface
var _ LabelClassifier = (*OllamaClassifier)(nil)

// NewOllamaClassifier creates a classifier. Zero values use the defaults.
func NewOllamaClassifier(llm ollama.IOllama, model string, timeout time.Duration, l log.Logger) *OllamaClassifier {
	if model == "" {
		model = DefaultClassifierModel
	}
	if timeout <= 0 {
		timeout = DefaultClassifierTimeout
	}
	return &OllamaClassifier{llm: llm, model: model, timeout: timeout, l: l}
}

// Classify sends the raw text; the system prompt is baked into the model.
func (c *OllamaClassifier) Classify(ctx context.Context, text string) (Label, bool) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	temp := ClassifierTemperature
	resp, err := c.llm.Generate(ctx, &ollama.GenerateRequest{
		Model:       c.model,
		Prompt:      text,
		Temperature: &temp,
		NumPredict:  ClassifierMaxTokens,
	})
	if err != nil {
		c.l.Debugf(ctx, "%s: no opinion: %v", LogPrefixClassify, err)
		return "", false
	}
	return ParseLabel(resp.Text)
}

// ParseLabel finds the first known label in a model answer.
func ParseLabel(answer string) (Label, bool) {
	answer = strings.ToLower(strings.TrimSpace(answer))
	for _, label := range []Label{LabelSearch, LabelVision, LabelCode, LabelSystem, LabelChat} {
		if strings.Contains(answer, string(label)) {
			return label, true
		}
	}
	return "", false
}
