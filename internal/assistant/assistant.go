package assistant

import (
	"context"
	"fmt"
	"strings"

	"voice-assistant/internal/model"
)

// Handle answers one utterance for a session.
func (a *Assistant) Handle(ctx context.Context, sessionID, utterance string) (Reply, error) {
	utterance = strings.TrimSpace(utterance)
	if utterance == "" {
		return Reply{}, ErrEmptyUtterance
	}

	intent := a.router.Route(ctx, utterance)
	if a.metrics != nil {
		a.metrics.ObserveIntent(intent.Name)
	}
	reply := Reply{SessionID: sessionID, Intent: intent}

	if !intent.IsConversation() {
		if a.skills != nil {
			if text, ok := a.skills.Execute(ctx, intent); ok {
				reply.Text = text
				reply.Executed = true
			}
		}
		a.l.Infof(ctx, "%s: session=%s intent=%s executed=%t", LogPrefixHandle, sessionID, intent.Name, reply.Executed)
		return reply, nil
	}

	if fact, ok := rememberCommand(intent.Args); ok {
		reply.Executed = true
		reply.Text = MsgRememberFailed
		if fact != "" && a.Remember(ctx, fact) {
			reply.Text = fmt.Sprintf(MsgRemembered, fact)
		}
		return reply, nil
	}

	res, err := a.conv.Process(ctx, sessionID, conversationText(intent))
	if err != nil {
		return Reply{}, err
	}
	if a.metrics != nil {
		a.metrics.ObserveReply(res.Tier, res.Turns, res.ToolCalls)
	}

	reply.Executed = true
	reply.Text = res.Text
	reply.Tier = res.Tier
	reply.Turns = res.Turns
	reply.ToolCalls = res.ToolCalls
	reply.Assessment = &res.Assessment
	a.l.Infof(ctx, "%s: session=%s tier=%s turns=%d tools=%d", LogPrefixHandle, sessionID, res.Tier, res.Turns, len(res.ToolCalls))
	return reply, nil
}

// rememberCommand extracts the fact from "remember that ..." or "remember: ...".
func rememberCommand(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, p := range rememberPrefixes {
		if strings.HasPrefix(lower, p) {
			return strings.TrimSpace(text[len(p):]), true
		}
	}
	return "", false
}

// conversationText appends the routed mode hint, if any, to the utterance.
func conversationText(intent model.Intent) string {
	mode, _ := intent.Param(model.ParamMode).(string)
	if mode == "" {
		return intent.Args
	}
	return intent.Args + fmt.Sprintf(ModeHintFormat, strings.ToUpper(mode))
}
