package orchestrator

import (
	"context"
	"fmt"
	"strings"

	"voice-assistant/internal/dispatcher"
	"voice-assistant/internal/model"
)

// Process answers one utterance for a session. Utterances of the same session
// run one at a time. The only error is ctx cancellation, in which case nothing
// is written to history.
func (o *Orchestrator) Process(ctx context.Context, sessionID, utterance string) (Result, error) {
	sess := o.sessions.get(sessionID)
	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	utterance = strings.TrimSpace(utterance)
	memories := o.memory.RetrieveRelevant(ctx, utterance)
	assessment := o.classifier.Classify(ctx, utterance)
	tools := o.tools.ListTools(ctx)

	system := o.cfg.Persona + buildTimeContext(o.now(), o.loc) + renderCatalogue(tools)
	prompt := renderConversation(sess.history.Recent(o.cfg.HistorySize), utterance)

	res := Result{Assessment: assessment}
	for turn := 1; turn <= o.cfg.MaxTurns; turn++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		out := o.generator.Dispatch(ctx, dispatcher.Input{
			Prompt:       prompt,
			SystemPrompt: system,
			Context:      renderMemories(memories),
			Assessment:   assessment,
		})
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		res.Text = out.Text
		res.Tier = out.Tier
		res.Turns = turn
		o.l.Debugf(ctx, LogMsgTurn, LogPrefixProcess, sessionID, turn, o.cfg.MaxTurns, out.Tier)

		if out.Err != nil {
			break
		}
		if turn == o.cfg.MaxTurns {
			if _, ok := ParseDirective(out.Text); ok {
				o.l.Warnf(ctx, LogMsgTurnBudget, LogPrefixProcess, o.cfg.MaxTurns)
			}
			break
		}

		d, ok := ParseDirective(out.Text)
		if !ok {
			break
		}
		tool, ok := resolveTool(tools, d.Name)
		if !ok {
			o.l.Warnf(ctx, LogMsgUnknownTool, LogPrefixProcess, d.Name)
			break
		}
		args, err := ParseArguments(d.RawArgs)
		if err != nil {
			o.l.Warnf(ctx, LogMsgBadArguments, LogPrefixProcess, tool.QualifiedName(), err)
			break
		}

		o.l.Infof(ctx, LogMsgCallingTool, LogPrefixProcess, tool.QualifiedName(), args)
		result := o.tools.CallTool(ctx, tool.ServerID, tool.Name, args)
		res.ToolCalls = append(res.ToolCalls, model.ToolCall{
			ToolName:  tool.Name,
			ServerID:  tool.ServerID,
			Arguments: args,
		})

		prompt += "\nAssistant: " + out.Text + "\n" + fmt.Sprintf(ObservationFormat, tool.QualifiedName(), result)
	}

	sess.history.Append(
		model.Turn{Role: model.RoleUser, Content: utterance},
		model.Turn{Role: model.RoleAssistant, Content: res.Text},
	)
	return res, nil
}
