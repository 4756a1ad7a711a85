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
	configx "github.com/ifoodlabs/concierge/pkg/config"
	_ "github.com/ifoodlabs/concierge/pkg/logger/autoload"
	openrouterx "github.com/ifoodlabs/concierge/pkg/openrouter"
	"github.com/ifoodlabs/concierge/sales"
)

type AppConfig struct {
	SalesCSVPath string `envconfig:"SALES_CSV_PATH" split_words:"true" default:"vendas.csv"`
}

func main() {
	ctx := context.Background()

	appCfg := configx.MustNew[AppConfig]("")

	llmCfg := configx.MustNew[llmx.Config]("OPENROUTER")
	if err := llmCfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid openrouter configuration")
	}

	openRouterCfg := llmCfg.OpenRouterFor(contract.AgentTypeAnalyst)
	if openrouterx.NewClient(openRouterCfg) == nil {
		log.Fatal().Msg("failed to initialize openrouter client")
	}
	chatModel, err := openRouterCfg.New(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create chat model")
	}

	systemPrompt, err := prompt.LoadPromptSet().For(contract.AgentTypeAnalyst)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load system prompt")
	}

	rows, err := sales.Load(appCfg.SalesCSVPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", appCfg.SalesCSVPath).Msg("failed to load sales sheet")
	}
	report := sales.NewReport(rows)
	log.Info().Int("rows", len(rows)).Str("path", appCfg.SalesCSVPath).Msg("sales sheet loaded")

	gateway := tool.NewGateway(tool.Deps{Sales: report})

	agent, err := assistant.New(ctx, assistant.Config{
		AgentType:    contract.AgentTypeAnalyst,
		SystemPrompt: systemPrompt,
	}, chatModel, tool.Infos(contract.AgentTypeAnalyst), gateway, statex.NewMemoryStore())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build analyst agent")
	}

	runChat(ctx, agent)
}

func runChat(ctx context.Context, agent contract.Agent) {
	sessionID := uuid.NewString()
	log.Info().Str("session_id", sessionID).Msg("analyst session started")

	fmt.Println("📊 Analista de Vendas — digite 'sair' para encerrar")

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
			fmt.Println("Analista: Desculpe, algo deu errado. Tente novamente.")
			continue
		}

		fmt.Printf("Analista: %s\n", reply)
	}

	if err := scanner.Err(); err != nil {
		log.Error().Err(err).Msg("stdin read failed")
	}
	fmt.Println("Até logo!")
}
