package router

import (
	"context"
	"sort"

	"voice-assistant/internal/apptable"
	"voice-assistant/internal/model"
	"voice-assistant/pkg/log"
)

// Router turns an utterance into exactly one Intent. It never fails.
type Router interface {
	Route(ctx context.Context, utterance string) model.Intent
}

// LabelClassifier gives an optional opinion on utterances no rule matched.
// ok is false on timeout, error or an unrecognized answer.
type LabelClassifier interface {
	Classify(ctx context.Context, text string) (Label, bool)
}

// HybridRouter runs the rule cascade, then the label classifier, then falls back to conversation.
type HybridRouter struct {
	rules      []rule
	apps       *apptable.Table
	classifier LabelClassifier
	l          log.Logger
}

// Ensure HybridRouter implements Router interface
var _ Router = (*HybridRouter)(nil)

// New creates a HybridRouter. apps and classifier may be nil.
func New(l log.Logger, apps *apptable.Table, classifier LabelClassifier) *HybridRouter {
	if apps == nil {
		apps = apptable.FromMap(apptable.DefaultAliases)
	}
	r := &HybridRouter{
		apps:       apps,
		classifier: classifier,
		l:          l,
	}
	r.rules = r.buildRules()
	sort.SliceStable(r.rules, func(i, j int) bool {
		return r.rules[i].class < r.rules[j].class
	})
	return r
}
