package prompt

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/ifoodlabs/concierge/agent/contract"
)

var (
	//go:embed template/concierge.txt
	conciergeRaw string

	//go:embed template/analyst.txt
	analystRaw string
)

// PromptSet holds loaded prompt content.
type PromptSet struct {
	Concierge string
	Analyst   string
}

// LoadPromptSet returns a PromptSet with trimmed prompt strings.
func LoadPromptSet() PromptSet {
	return PromptSet{
		Concierge: strings.TrimSpace(conciergeRaw),
		Analyst:   strings.TrimSpace(analystRaw),
	}
}

// For returns the system prompt of one agent.
func (p PromptSet) For(agentType contract.AgentType) (string, error) {
	var raw string
	switch agentType {
	case contract.AgentTypeConcierge:
		raw = p.Concierge
	case contract.AgentTypeAnalyst:
		raw = p.Analyst
	default:
		return "", fmt.Errorf("%w: no prompt for agent=%s", contract.ErrPromptMissing, agentType)
	}
	if raw == "" {
		return "", fmt.Errorf("%w: empty prompt for agent=%s", contract.ErrPromptMissing, agentType)
	}
	return raw, nil
}
