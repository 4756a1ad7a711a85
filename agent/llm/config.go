package llm

import (
	"fmt"
	"strings"
	"time"

	"github.com/ifoodlabs/concierge/agent/contract"
	openrouterx "github.com/ifoodlabs/concierge/pkg/openrouter"
)

// Config is the shared LLM configuration with optional per-agent overrides.
// The concierge runs hotter defaults than the analyst unless overridden.
type Config struct {
	BaseURL            string        `envconfig:"BASE_URL" split_words:"true" default:"https://openrouter.ai/api/v1"`
	APIKey             string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	Model              string        `envconfig:"MODEL" split_words:"true" required:"true"`
	MaxCompletionToken int           `envconfig:"MAX_COMPLETION_TOKEN" split_words:"true" default:"2000"`
	Temperature        float32       `envconfig:"TEMPERATURE" split_words:"true" default:"0"`
	Timeout            time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
	SiteURL            string        `envconfig:"SITE_URL" split_words:"true"`
	SiteName           string        `envconfig:"SITE_NAME" split_words:"true"`

	ConciergeModel       string  `envconfig:"CONCIERGE_MODEL" split_words:"true"`
	AnalystModel         string  `envconfig:"ANALYST_MODEL" split_words:"true"`
	ConciergeTemperature float32 `envconfig:"CONCIERGE_TEMPERATURE" split_words:"true" default:"-1"`
	AnalystTemperature   float32 `envconfig:"ANALYST_TEMPERATURE" split_words:"true" default:"-1"`
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("%w: openrouter api key is required", contract.ErrValidation)
	}
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("%w: default model is required", contract.ErrValidation)
	}
	return nil
}

// OpenRouterFor resolves the model configuration for one agent, applying the
// per-agent overrides on top of the defaults. A negative override temperature
// means "use the default".
func (c Config) OpenRouterFor(agentType contract.AgentType) openrouterx.Config {
	modelName := strings.TrimSpace(c.Model)
	temp := c.Temperature

	switch agentType {
	case contract.AgentTypeConcierge:
		if v := strings.TrimSpace(c.ConciergeModel); v != "" {
			modelName = v
		}
		if c.ConciergeTemperature >= 0 {
			temp = c.ConciergeTemperature
		}
	case contract.AgentTypeAnalyst:
		if v := strings.TrimSpace(c.AnalystModel); v != "" {
			modelName = v
		}
		if c.AnalystTemperature >= 0 {
			temp = c.AnalystTemperature
		}
	}

	maxCompletionToken := c.MaxCompletionToken
	return openrouterx.Config{
		BaseURL:            strings.TrimSpace(c.BaseURL),
		APIKey:             strings.TrimSpace(c.APIKey),
		Model:              modelName,
		MaxCompletionToken: &maxCompletionToken,
		Temperature:        temp,
		Timeout:            c.Timeout,
		SiteURL:            strings.TrimSpace(c.SiteURL),
		SiteName:           strings.TrimSpace(c.SiteName),
	}
}
