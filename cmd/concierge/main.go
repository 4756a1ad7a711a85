package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ifoodlabs/concierge/agent/assistant"
	"github.com/ifoodlabs/concierge/agent/contract"
	llmx "github.com/ifoodlabs/concierge/agent/llm"
	"github.com/ifoodlabs/concierge/agent/prompt"
	statex "github.com/ifoodlabs/concierge/agent/state"
	"github.com/ifoodlabs/concierge/agent/tool"
	"github.com/ifoodlabs/concierge/order"
	configx "github.com/ifoodlabs/concierge/pkg/config"
	openrouterx "github.com/ifoodlabs/concierge/pkg/openrouter"
	_ "github.com/ifoodlabs/concierge/pkg/logger/autoload"
)

func main() {
	ctx := context.Background()

	llmCfg := configx.MustNew[llmx.Config]("OPENROUTER")
	if err := llmCfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid openrouter configuration")
	}

	openRouterCfg := llmCfg.OpenRouterFor(contract.AgentTypeConcierge)
	if openrouterx.NewClient(openRouterCfg) == nil {
		log.Fatal().Msg("failed to initialize openrouter client")
	}
	chatModel, err := openRouterCfg.New(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create chat model")
	}

	systemPrompt, err := prompt.LoadPromptSet().For(contract.AgentTypeConcierge)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load system prompt")
	}

	orders, err := order.NewService(
		order.DefaultCatalog(),
		order.NewLedger(),
		log.With().Str("component", "order").Logger(),
	)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build order service")
	}

	gateway := tool.NewGateway(tool.Deps{Orders: orders})

	agent, err := assistant.New(ctx, assistant.Config{
		AgentType:    contract.AgentTypeConcierge,
		SystemPrompt: systemPrompt,
	}, chatModel, tool.Infos(contract.AgentTypeConcierge), gateway, newSessionStore())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build concierge agent")
	}

	runChat(ctx, agent)
}

// newSessionStore prefers Upstash Redis when UPSTASH_REDIS_* is configured
// and falls back to the in-process store otherwise.
func newSessionStore() statex.Store {
	redisCfg, err := configx.New[statex.UpstashRedisConfig]("UPSTASH_REDIS")
	if err != nil {
		return statex.NewMemoryStore()
	}
	store, err := statex.NewUpstashRedisStore(*redisCfg)
	if err != nil {
		log.Warn().Err(err).Msg("upstash store unavailable, using in-memory sessions")
		return statex.NewMemoryStore()
	}
	return store
}

func runChat(ctx context.Context, agent contract.Agent) {
	sessionID := uuid.NewString()
	log.Info().Str("session_id", sessionID).Msg("concierge session started")

	fmt.Println("🍔 Concierge iFood — digite 'sair' para encerrar")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("Você: ")
		if !scanner.Scan() {
			break
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if strings.EqualFold(text, "sair") {
			break
		}

		reply, err := agent.HandleMessage(ctx, sessionID, text)
		if err != nil {
			log.Error().Err(err).Msg("failed to handle message")
			fmt.Println("Assistente: Desculpe, algo deu errado. Tente novamente.")
			continue
		}

		fmt.Printf("Assistente: %s\n", sanitizeReply(reply))
	}

	if err := scanner.Err(); err != nil {
		log.Error().Err(err).Msg("stdin read failed")
	}
	fmt.Println("Até logo!")
}

// sanitizeReply spells out the currency sign so text-to-speech front-ends do
// not mangle "R$" amounts.
func sanitizeReply(reply string) string {
	reply = strings.ReplaceAll(reply, "R$", "Reais ")
	return strings.ReplaceAll(reply, "$", "")
}
