package complexity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"voice-assistant/internal/model"
	"voice-assistant/pkg/ollama"
)

var errNoJSON = errors.New("no JSON object in answer")

// Classify returns {1, small_chat} for short prompts without a network call,
// otherwise asks the local model. Any failure yields the default assessment.
func (c *OllamaClassifier) Classify(ctx context.Context, prompt string) model.ComplexityAssessment {
	if len(strings.Fields(prompt)) < c.threshold {
		return model.ComplexityAssessment{Level: model.MinComplexity, Category: model.CategorySmallChat}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.llm.Generate(ctx, &ollama.GenerateRequest{
		Model:  c.model,
		Prompt: fmt.Sprintf(PromptClassify, prompt),
		Format: ollama.FormatJSON,
	})
	if err != nil {
		c.l.Warnf(ctx, "%s: generate failed: %v", LogPrefixClassify, err)
		return model.DefaultAssessment()
	}

	assessment, err := Parse(resp.Text)
	if err != nil {
		c.l.Warnf(ctx, "%s: %v", LogPrefixClassify, err)
		return model.DefaultAssessment()
	}

	c.l.Infof(ctx, "%s: level=%d category=%s", LogPrefixClassify, assessment.Level, assessment.Category)
	return assessment
}

// answer is the JSON shape the model is asked for. Some models say "level" or "category".
type answer struct {
	Complexity json.RawMessage `json:"complexity"`
	Level      json.RawMessage `json:"level"`
	Type       string          `json:"type"`
	Category   string          `json:"category"`
}

// Parse decodes a model answer, tolerating code fences and prose around the object.
func Parse(text string) (model.ComplexityAssessment, error) {
	raw, err := extractObject(text)
	if err != nil {
		return model.DefaultAssessment(), err
	}

	var a answer
	if err := json.Unmarshal([]byte(raw), &a); err != nil {
		return model.DefaultAssessment(), fmt.Errorf("decode assessment: %w", err)
	}

	levelRaw := a.Complexity
	if len(levelRaw) == 0 {
		levelRaw = a.Level
	}
	level, err := parseLevel(levelRaw)
	if err != nil {
		return model.DefaultAssessment(), err
	}

	category := a.Type
	if category == "" {
		category = a.Category
	}

	return model.ComplexityAssessment{
		Level:    model.ClampLevel(level),
		Category: model.ParseCategory(strings.ToLower(strings.TrimSpace(category))),
	}, nil
}

func extractObject(text string) (string, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", errNoJSON
	}
	return text[start : end+1], nil
}

// parseLevel accepts 4, 4.0 and "4".
func parseLevel(raw json.RawMessage) (int, error) {
	if len(raw) == 0 {
		return 0, errors.New("missing complexity")
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		n = math.Max(float64(model.MinComplexity), math.Min(n, float64(model.MaxComplexity)))
		return int(n), nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return 0, fmt.Errorf("invalid complexity %s", string(raw))
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid complexity %q", s)
	}
	return v, nil
}
