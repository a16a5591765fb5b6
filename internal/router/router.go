package router

import (
	"context"
	"strings"

	"voice-assistant/internal/model"
)

// Route runs the rule cascade, then the label classifier, then falls back to conversation.
func (r *HybridRouter) Route(ctx context.Context, utterance string) model.Intent {
	in := input{
		text:     Normalize(utterance),
		original: strings.TrimSpace(utterance),
	}

	for _, rl := range r.rules {
		if intent, ok := rl.match(in); ok {
			r.l.Debugf(ctx, "%s: rule %s matched -> %s", LogPrefixRoute, rl.name, intent.Name)
			return intent
		}
	}

	if r.classifier != nil && in.text != "" {
		if label, ok := r.classifier.Classify(ctx, in.original); ok {
			r.l.Debugf(ctx, "%s: classifier label %s", LogPrefixRoute, label)
			return fromLabel(label, in.original)
		}
	}

	return model.Conversation(in.original)
}

// fromLabel maps a classifier label to an intent over the original text.
func fromLabel(label Label, text string) model.Intent {
	switch label {
	case LabelSearch:
		return model.Intent{Name: model.IntentWebSearch, Args: text}
	case LabelVision:
		return model.Intent{Name: model.IntentVisionQuery, Args: text}
	case LabelCode, LabelSystem:
		intent := model.Conversation(text)
		intent.Params = map[string]any{model.ParamMode: string(label)}
		return intent
	default:
		return model.Conversation(text)
	}
}
