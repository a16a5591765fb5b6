package orchestrator

import (
	"encoding/json"
	"fmt"
	"strings"

	"voice-assistant/internal/model"
)

// renderMemories lists snippets as "- m" lines.
func renderMemories(memories []string) string {
	if len(memories) == 0 {
		return NoRelevantMemories
	}
	lines := make([]string, len(memories))
	for i, m := range memories {
		lines[i] = "- " + m
	}
	return strings.Join(lines, "\n")
}

// renderCatalogue describes every tool with its server and argument schema.
func renderCatalogue(tools []model.ToolDescriptor) string {
	if len(tools) == 0 {
		return NoToolsNote
	}

	var b strings.Builder
	b.WriteString(ToolCatalogueHeader)
	for _, t := range tools {
		fmt.Fprintf(&b, "\n- %s (server: %s): %s", t.QualifiedName(), t.ServerID, t.Description)
		if props, ok := t.InputSchema["properties"]; ok {
			if raw, err := json.Marshal(props); err == nil && string(raw) != "{}" {
				fmt.Fprintf(&b, "\n  arguments: %s", raw)
			}
		}
	}
	b.WriteString(ToolInstructions)
	return b.String()
}

// renderConversation writes history then the new user line.
func renderConversation(turns []model.Turn, utterance string) string {
	var b strings.Builder
	for _, t := range turns {
		b.WriteString(roleLabel(t.Role))
		b.WriteString(": ")
		b.WriteString(t.Content)
		b.WriteString("\n")
	}
	b.WriteString("User: ")
	b.WriteString(utterance)
	return b.String()
}

func roleLabel(r model.Role) string {
	if r == model.RoleAssistant {
		return "Assistant"
	}
	return "User"
}

// resolveTool matches a directive name against the catalogue. A bare name must
// be unique across servers; "server.tool" picks exactly one.
func resolveTool(tools []model.ToolDescriptor, name string) (model.ToolDescriptor, bool) {
	for _, t := range tools {
		if t.QualifiedName() == name {
			return t, true
		}
	}

	var (
		found model.ToolDescriptor
		count int
	)
	for _, t := range tools {
		if t.Name == name {
			found = t
			count++
		}
	}
	return found, count == 1
}
