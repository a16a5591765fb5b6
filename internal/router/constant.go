package router

import "time"

// Log prefixes
const (
	LogPrefixRoute    = "internal.router.Route"
	LogPrefixClassify = "internal.router.OllamaClassifier.Classify"
)

// Classifier configuration
const (
	DefaultClassifierModel   = "A1-Router_llm"
	DefaultClassifierTimeout = time.Second
	ClassifierTemperature    = 0.0
	ClassifierMaxTokens      = 5
)

// Weather defaults
const (
	DefaultForecastDays = 3
)

// locationStopwords are filler tokens dropped from an extracted weather location.
var locationStopwords = map[string]bool{
	"the": true, "today": true, "tomorrow": true, "now": true, "is": true,
	"it": true, "should": true, "i": true, "carry": true, "an": true,
	"a": true, "what": true, "whats": true, "s": true, "how": true,
	"like": true, "going": true, "to": true, "be": true, "will": true,
	"do": true, "need": true, "tell": true, "me": true, "current": true,
	"right": true, "this": true, "week": true,
}

// youtubeFiller are tokens dropped from a youtube query.
var youtubeFiller = map[string]bool{
	"play": true, "search": true, "find": true, "for": true, "youtube": true,
}
