package tool

import (
	"context"
	"fmt"

	"github.com/ifoodlabs/concierge/agent/contract"
)

// Gateway routes tool requests to the executor of the owning agent. It is the
// single implementation of contract.ToolGateway.
type Gateway struct {
	executors map[contract.AgentType]Executor
}

var _ contract.ToolGateway = (*Gateway)(nil)

func NewGateway(deps Deps) *Gateway {
	return &Gateway{
		executors: map[contract.AgentType]Executor{
			contract.AgentTypeConcierge: NewExecutor(contract.AgentTypeConcierge, deps),
			contract.AgentTypeAnalyst:   NewExecutor(contract.AgentTypeAnalyst, deps),
		},
	}
}

func (g *Gateway) Execute(ctx context.Context, agentType contract.AgentType, reqs []contract.ToolRequest) ([]contract.ToolResult, error) {
	executor, ok := g.executors[agentType]
	if !ok {
		return nil, fmt.Errorf("%w: unknown agent=%s", contract.ErrValidation, agentType)
	}

	results := make([]contract.ToolResult, 0, len(reqs))
	for _, req := range reqs {
		res, err := executor(ctx, req.Tool, req.Args)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}
	return results, nil
}
