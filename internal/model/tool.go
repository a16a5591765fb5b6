package model

// ToolDescriptor describes one tool offered by a tool server.
// Names are unique per server only.
type ToolDescriptor struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"input_schema,omitempty"`
	ServerID    string         `json:"server_id"`
}

// QualifiedName returns "server.tool".
func (d ToolDescriptor) QualifiedName() string {
	return d.ServerID + "." + d.Name
}

// ToolCall is a request to run a tool on a server.
type ToolCall struct {
	ToolName  string         `json:"tool_name"`
	ServerID  string         `json:"server_id"`
	Arguments map[string]any `json:"arguments"`
}
