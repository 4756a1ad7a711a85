package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/ifoodlabs/concierge/agent/contract"
	statex "github.com/ifoodlabs/concierge/agent/state"
)

var (
	ErrInvalidMessage = errors.New("message is empty")
	ErrInvalidSession = errors.New("session id is empty")
)

const defaultHistoryWindow = 12

type Config struct {
	AgentType    contract.AgentType
	SystemPrompt string
	// HistoryWindow caps how many transcript turns travel to the model per
	// request. Zero means the default.
	HistoryWindow int
}

// Assistant is one conversational front-end: a tool-calling chat model plus
// the gateway that executes its tool requests, wired together by a compiled
// graph. One HandleMessage call is one user turn: plan (model may request
// tools), execute, finalize, persist the transcript.
type Assistant struct {
	agentType     contract.AgentType
	systemPrompt  string
	historyWindow int

	planModel  einomodel.BaseChatModel // bound with the agent's tools
	finalModel einomodel.BaseChatModel
	tools      contract.ToolGateway
	store      statex.Store

	allowedTools map[string]struct{}
	graphRunner  compose.Runnable[GraphInput, GraphOutput]

	now func() time.Time
}

var _ contract.Agent = (*Assistant)(nil)

func New(
	ctx context.Context,
	cfg Config,
	chatModel einomodel.ToolCallingChatModel,
	toolInfos []*schema.ToolInfo,
	tools contract.ToolGateway,
	store statex.Store,
) (*Assistant, error) {
	if chatModel == nil {
		return nil, errors.New("chat model is required")
	}
	if tools == nil {
		return nil, errors.New("tool gateway is required")
	}
	if store == nil {
		return nil, errors.New("session store is required")
	}
	if strings.TrimSpace(string(cfg.AgentType)) == "" {
		return nil, fmt.Errorf("%w: agent type is required", contract.ErrValidation)
	}
	if strings.TrimSpace(cfg.SystemPrompt) == "" {
		return nil, fmt.Errorf("%w: agent=%s", contract.ErrPromptMissing, cfg.AgentType)
	}

	planModel := einomodel.BaseChatModel(chatModel)
	allowedTools := make(map[string]struct{}, len(toolInfos))
	if len(toolInfos) > 0 {
		bound, err := chatModel.WithTools(toolInfos)
		if err != nil {
			return nil, fmt.Errorf("%w: bind tools for agent=%s: %v", contract.ErrModelInvoke, cfg.AgentType, err)
		}
		planModel = bound
		for _, t := range toolInfos {
			if t == nil || strings.TrimSpace(t.Name) == "" {
				continue
			}
			allowedTools[t.Name] = struct{}{}
		}
	}

	historyWindow := cfg.HistoryWindow
	if historyWindow <= 0 {
		historyWindow = defaultHistoryWindow
	}

	a := &Assistant{
		agentType:     cfg.AgentType,
		systemPrompt:  strings.TrimSpace(cfg.SystemPrompt),
		historyWindow: historyWindow,
		planModel:     planModel,
		finalModel:    chatModel,
		tools:         tools,
		store:         store,
		allowedTools:  allowedTools,
		now:           time.Now,
	}

	graphRunner, err := a.compileHandleMessageGraph(ctx)
	if err != nil {
		return nil, err
	}
	a.graphRunner = graphRunner

	return a, nil
}

// HandleMessage runs one user turn and returns the assistant reply.
func (a *Assistant) HandleMessage(ctx context.Context, sessionID string, text string) (string, error) {
	out, err := a.graphRunner.Invoke(ctx, GraphInput{
		SessionID: sessionID,
		Text:      text,
	})
	if err != nil {
		return "", err
	}
	return out.Reply, nil
}
