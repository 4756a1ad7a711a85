package contract

import "context"

// Agent is one conversational front-end: it takes a user turn and returns
// the assistant reply.
type Agent interface {
	HandleMessage(ctx context.Context, sessionID string, text string) (string, error)
}

// ToolGateway executes the tool requests a model produced for one agent.
type ToolGateway interface {
	Execute(ctx context.Context, agentType AgentType, reqs []ToolRequest) ([]ToolResult, error)
}
