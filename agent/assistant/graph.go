package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/ifoodlabs/concierge/agent/contract"
	statex "github.com/ifoodlabs/concierge/agent/state"
)

type GraphInput struct {
	SessionID string
	Text      string
}

type GraphOutput struct {
	Reply string
}

type graphState struct {
	SessionID string
	Text      string
	Now       time.Time

	Session     *statex.Session
	Planned     *schema.Message
	ToolResults []contract.ToolResult

	Reply string
}

func (a *Assistant) compileHandleMessageGraph(
	ctx context.Context,
) (compose.Runnable[GraphInput, GraphOutput], error) {
	graph := compose.NewGraph[GraphInput, GraphOutput]()

	if err := graph.AddLambdaNode("validate_request",
		compose.InvokableLambda(func(ctx context.Context, in GraphInput) (*graphState, error) {
			return a.validateRequest(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node validate_request: %w", err)
	}

	if err := graph.AddLambdaNode("load_session",
		compose.InvokableLambda(func(ctx context.Context, in *graphState) (*graphState, error) {
			return a.loadSession(ctx, in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node load_session: %w", err)
	}

	if err := graph.AddLambdaNode("plan_tools",
		compose.InvokableLambda(func(ctx context.Context, in *graphState) (*graphState, error) {
			return a.planTools(ctx, in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node plan_tools: %w", err)
	}

	if err := graph.AddLambdaNode("direct_reply",
		compose.InvokableLambda(func(ctx context.Context, in *graphState) (*graphState, error) {
			return a.directReply(in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node direct_reply: %w", err)
	}

	if err := graph.AddLambdaNode("execute_tools",
		compose.InvokableLambda(func(ctx context.Context, in *graphState) (*graphState, error) {
			return a.executeTools(ctx, in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node execute_tools: %w", err)
	}

	if err := graph.AddLambdaNode("finalize",
		compose.InvokableLambda(func(ctx context.Context, in *graphState) (*graphState, error) {
			return a.finalize(ctx, in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node finalize: %w", err)
	}

	if err := graph.AddLambdaNode("save_session",
		compose.InvokableLambda(func(ctx context.Context, in *graphState) (*graphState, error) {
			return a.saveSession(ctx, in)
		}),
	); err != nil {
		return nil, fmt.Errorf("add node save_session: %w", err)
	}

	if err := graph.AddLambdaNode("render_reply",
		compose.InvokableLambda(func(ctx context.Context, in *graphState) (GraphOutput, error) {
			if in == nil || strings.TrimSpace(in.Reply) == "" {
				return GraphOutput{}, fmt.Errorf("%w: empty reply", contract.ErrSchemaViolation)
			}
			return GraphOutput{Reply: in.Reply}, nil
		}),
	); err != nil {
		return nil, fmt.Errorf("add node render_reply: %w", err)
	}

	branch := compose.NewGraphBranch(
		func(ctx context.Context, in *graphState) (string, error) {
			if in == nil || in.Planned == nil {
				return "", fmt.Errorf("%w: planning produced no message", contract.ErrSchemaViolation)
			}
			if len(in.Planned.ToolCalls) == 0 {
				return "direct_reply", nil
			}
			return "execute_tools", nil
		},
		map[string]bool{
			"direct_reply":  true,
			"execute_tools": true,
		},
	)

	if err := graph.AddBranch("plan_tools", branch); err != nil {
		return nil, fmt.Errorf("add plan branch: %w", err)
	}

	edges := [][2]string{
		{compose.START, "validate_request"},
		{"validate_request", "load_session"},
		{"load_session", "plan_tools"},
		{"execute_tools", "finalize"},
		{"direct_reply", "save_session"},
		{"finalize", "save_session"},
		{"save_session", "render_reply"},
		{"render_reply", compose.END},
	}
	for _, edge := range edges {
		if err := graph.AddEdge(edge[0], edge[1]); err != nil {
			return nil, fmt.Errorf("add edge %s->%s: %w", edge[0], edge[1], err)
		}
	}

	runner, err := graph.Compile(ctx, compose.WithGraphName(fmt.Sprintf("%s.handle_message", a.agentType)))
	if err != nil {
		return nil, fmt.Errorf("compile %s graph: %w", a.agentType, err)
	}
	return runner, nil
}

/* ------------------------------ graph nodes ------------------------------ */

func (a *Assistant) validateRequest(in GraphInput) (*graphState, error) {
	sessionID := strings.TrimSpace(in.SessionID)
	if sessionID == "" {
		return nil, ErrInvalidSession
	}
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return nil, ErrInvalidMessage
	}
	return &graphState{
		SessionID: sessionID,
		Text:      text,
		Now:       a.now().UTC(),
	}, nil
}

func (a *Assistant) loadSession(ctx context.Context, in *graphState) (*graphState, error) {
	session, err := a.store.Load(ctx, in.SessionID)
	if err != nil {
		if !errors.Is(err, statex.ErrStateNotFound) {
			return nil, err
		}
		session = statex.NewSession(in.SessionID, string(a.agentType), in.Now)
	}
	in.Session = session
	return in, nil
}

func (a *Assistant) planTools(ctx context.Context, in *graphState) (*graphState, error) {
	msg, err := a.planModel.Generate(ctx, a.conversationMessages(in))
	if err != nil {
		return nil, fmt.Errorf("%w: plan for agent=%s: %v", contract.ErrModelInvoke, a.agentType, err)
	}
	if msg == nil {
		return nil, fmt.Errorf("%w: planning produced no message", contract.ErrSchemaViolation)
	}
	in.Planned = msg
	return in, nil
}

func (a *Assistant) directReply(in *graphState) (*graphState, error) {
	reply := strings.TrimSpace(in.Planned.Content)
	if reply == "" {
		return nil, fmt.Errorf("%w: model returned neither text nor tool calls", contract.ErrSchemaViolation)
	}
	in.Reply = reply
	return in, nil
}

func (a *Assistant) executeTools(ctx context.Context, in *graphState) (*graphState, error) {
	reqs, err := a.toToolRequests(in.Planned.ToolCalls)
	if err != nil {
		return nil, err
	}

	results, err := a.tools.Execute(ctx, a.agentType, reqs)
	if err != nil {
		return nil, err
	}
	if len(results) != len(reqs) {
		return nil, fmt.Errorf("%w: got %d tool results for %d requests", contract.ErrValidation, len(results), len(reqs))
	}
	in.ToolResults = results
	return in, nil
}

func (a *Assistant) finalize(ctx context.Context, in *graphState) (*graphState, error) {
	msgs := a.conversationMessages(in)
	msgs = append(msgs, in.Planned)
	for i, result := range in.ToolResults {
		payload, err := json.Marshal(result)
		if err != nil {
			return nil, fmt.Errorf("%w: marshal tool result: %v", contract.ErrValidation, err)
		}
		msgs = append(msgs, schema.ToolMessage(string(payload), in.Planned.ToolCalls[i].ID))
	}

	msg, err := a.finalModel.Generate(ctx, msgs)
	if err != nil {
		return nil, fmt.Errorf("%w: finalize for agent=%s: %v", contract.ErrModelInvoke, a.agentType, err)
	}
	if msg == nil || strings.TrimSpace(msg.Content) == "" {
		return nil, fmt.Errorf("%w: finalize returned empty message", contract.ErrSchemaViolation)
	}
	in.Reply = strings.TrimSpace(msg.Content)
	return in, nil
}

func (a *Assistant) saveSession(ctx context.Context, in *graphState) (*graphState, error) {
	if err := in.Session.Append(statex.RoleUser, in.Text, in.Now); err != nil {
		return nil, err
	}
	if err := in.Session.Append(statex.RoleAssistant, in.Reply, in.Now); err != nil {
		return nil, err
	}
	if err := in.Session.Validate(); err != nil {
		return nil, fmt.Errorf("session validation failed: %w", err)
	}
	if err := a.store.Save(ctx, in.Session); err != nil {
		return nil, err
	}
	return in, nil
}

/* ------------------------------- helpers --------------------------------- */

// conversationMessages builds system prompt + windowed history + current turn.
func (a *Assistant) conversationMessages(in *graphState) []*schema.Message {
	history := in.Session.LastTurns(a.historyWindow)
	msgs := make([]*schema.Message, 0, len(history)+2)
	msgs = append(msgs, schema.SystemMessage(a.systemPrompt))
	for _, turn := range history {
		switch turn.Role {
		case statex.RoleUser:
			msgs = append(msgs, schema.UserMessage(turn.Content))
		case statex.RoleAssistant:
			msgs = append(msgs, schema.AssistantMessage(turn.Content, nil))
		}
	}
	return append(msgs, schema.UserMessage(in.Text))
}

func (a *Assistant) toToolRequests(calls []schema.ToolCall) ([]contract.ToolRequest, error) {
	reqs := make([]contract.ToolRequest, 0, len(calls))
	for _, call := range calls {
		name := strings.TrimSpace(call.Function.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: tool call name is empty", contract.ErrSchemaViolation)
		}
		if _, ok := a.allowedTools[name]; !ok {
			return nil, fmt.Errorf("%w: tool=%s is not allowed for agent=%s", contract.ErrSchemaViolation, name, a.agentType)
		}

		args := map[string]any{}
		rawArgs := strings.TrimSpace(call.Function.Arguments)
		if rawArgs != "" {
			if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
				return nil, fmt.Errorf("%w: invalid tool args for tool=%s: %v", contract.ErrSchemaViolation, name, err)
			}
		}

		reqs = append(reqs, contract.ToolRequest{Tool: name, Args: args})
	}
	return reqs, nil
}
