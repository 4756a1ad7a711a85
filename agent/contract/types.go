package contract

type AgentType string

const (
	AgentTypeConcierge AgentType = "concierge"
	AgentTypeAnalyst   AgentType = "analyst"
)

// ToolRequest is one tool invocation the model asked for.
type ToolRequest struct {
	Tool string         `json:"tool"`
	Args map[string]any `json:"args,omitempty"`
}

// ToolResult carries a tool outcome back to the model. Tool-level failures
// travel in Error as plain text; the sole consumer is a language model that
// needs natural-language feedback to retry, so nothing structured crosses
// this boundary.
type ToolResult struct {
	Tool   string `json:"tool"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}
