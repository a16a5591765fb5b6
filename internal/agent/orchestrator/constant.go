package orchestrator

import "time"

// Log prefixes
const (
	LogPrefixProcess = "internal.agent.orchestrator.Process"
	LogPrefixPersona = "internal.agent.orchestrator.LoadPersona"
)

// Defaults
const (
	DefaultMaxTurns    = 3
	DefaultHistorySize = 10
	DefaultSessionTTL  = 30 * time.Minute
	DefaultMaxSessions = 256
	DefaultPersona     = "You are A1, a helpful AI assistant."
)

// Prompt pieces
const (
	NoRelevantMemories = "No relevant memories."
	ObservationFormat  = "[TOOL EXECUTION] call=%s result=%s"

	TimeContextTemplate = `

[CURRENT TIME]
- Now: %s (%s)
- Today: %s
- Tomorrow: %s`

	ToolCatalogueHeader = `

[AVAILABLE TOOLS]`

	ToolInstructions = `

[TOOL RULES]
To use a tool, reply with exactly one directive and nothing else:
<tool_call name="server.tool">{"argument": "value"}</tool_call>
- Only call tools listed above. Never invent tools or arguments.
- One directive per reply. Wait for the [TOOL EXECUTION] result before the next step.
- When you have the answer, reply in plain spoken sentences without any directive.`

	NoToolsNote = `

[AVAILABLE TOOLS]
(none)`
)

// Log messages
const (
	LogMsgTurn         = "%s: session=%s turn %d/%d tier=%s"
	LogMsgUnknownTool  = "%s: model asked for unknown tool %q, finalizing"
	LogMsgBadArguments = "%s: unparsable arguments for %s: %v, finalizing"
	LogMsgCallingTool  = "%s: calling %s with %v"
	LogMsgTurnBudget   = "%s: turn budget (%d) exhausted, returning last response"
)
