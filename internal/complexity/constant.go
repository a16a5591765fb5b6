package complexity

import "time"

// Log prefixes
const (
	LogPrefixClassify = "internal.complexity.Classify"
)

// Defaults
const (
	DefaultTimeout       = 3 * time.Second
	DefaultWordThreshold = 5
)

// PromptClassify asks the local model for a strict JSON assessment.
const PromptClassify = `Analyze this user request: '%s'. Return strictly JSON: {"complexity": <int 1-5>, "type": "<coding|reasoning|chat|system>"}. JSON ONLY, NO TEXT.`
