package tool

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cloudwego/eino/schema"

	"github.com/ifoodlabs/concierge/agent/contract"
	"github.com/ifoodlabs/concierge/order"
	"github.com/ifoodlabs/concierge/sales"
)

// Tool names. The concierge set is the fixed callable surface of the order
// subsystem; the analyst set answers questions about the sales sheet.
const (
	ToolVerCardapio = "ver_cardapio"
	ToolFazerPedido = "fazer_pedido"
	ToolVerStatus   = "ver_status"

	ToolVendasResumo       = "vendas.resumo"
	ToolVendasPorCategoria = "vendas.por_categoria"
	ToolVendasTopProdutos  = "vendas.top_produtos"
)

const defaultTopProducts = 5

// Executor runs one tool call. Tool-level failures are reported in-band via
// ToolResult.Error; the error return is reserved for infrastructure problems.
type Executor func(ctx context.Context, tool string, args map[string]any) (contract.ToolResult, error)

// Deps are the domain collaborators the executors close over.
type Deps struct {
	Orders *order.Service
	Sales  *sales.Report
}

// BuildForAgent returns the tool schema exposed to the model and the matching
// executor for one agent.
func BuildForAgent(agentType contract.AgentType, deps Deps) ([]*schema.ToolInfo, Executor) {
	return infosForAgent(agentType), NewExecutor(agentType, deps)
}

// Infos returns only the tool schema for one agent, for callers that execute
// through a Gateway instead of a bare Executor.
func Infos(agentType contract.AgentType) []*schema.ToolInfo {
	return infosForAgent(agentType)
}

func NewExecutor(agentType contract.AgentType, deps Deps) Executor {
	fallback := unavailableExecutor(agentType)
	return func(ctx context.Context, tool string, args map[string]any) (contract.ToolResult, error) {
		switch tool {
		case ToolVerCardapio:
			if deps.Orders == nil {
				return fallback(ctx, tool, args)
			}
			return contract.ToolResult{Tool: tool, Result: deps.Orders.ListMenu()}, nil

		case ToolFazerPedido:
			if deps.Orders == nil {
				return fallback(ctx, tool, args)
			}
			pedido, err := stringArg(args, "pedido")
			if err != nil {
				return contract.ToolResult{Tool: tool, Error: err.Error()}, nil
			}
			return contract.ToolResult{Tool: tool, Result: deps.Orders.PlaceOrder(pedido)}, nil

		case ToolVerStatus:
			if deps.Orders == nil {
				return fallback(ctx, tool, args)
			}
			id, err := stringArg(args, "id")
			if err != nil {
				return contract.ToolResult{Tool: tool, Error: err.Error()}, nil
			}
			return contract.ToolResult{Tool: tool, Result: deps.Orders.CheckStatus(id)}, nil

		case ToolVendasResumo:
			if deps.Sales == nil {
				return fallback(ctx, tool, args)
			}
			return contract.ToolResult{Tool: tool, Result: deps.Sales.Summary()}, nil

		case ToolVendasPorCategoria:
			if deps.Sales == nil {
				return fallback(ctx, tool, args)
			}
			return contract.ToolResult{Tool: tool, Result: deps.Sales.CategoryTable()}, nil

		case ToolVendasTopProdutos:
			if deps.Sales == nil {
				return fallback(ctx, tool, args)
			}
			limit := intArg(args, "limite", defaultTopProducts)
			return contract.ToolResult{Tool: tool, Result: deps.Sales.ProductTable(limit)}, nil

		case ToolMathEvaluate:
			return executeMathTool(tool, args)

		default:
			return fallback(ctx, tool, args)
		}
	}
}

func unavailableExecutor(agentType contract.AgentType) Executor {
	return func(ctx context.Context, tool string, _ map[string]any) (contract.ToolResult, error) {
		return contract.ToolResult{
			Tool:  tool,
			Error: fmt.Sprintf("tool=%s is unavailable for agent=%s", tool, agentType),
		}, nil
	}
}

func infosForAgent(agentType contract.AgentType) []*schema.ToolInfo {
	switch agentType {
	case contract.AgentTypeConcierge:
		return []*schema.ToolInfo{
			{
				Name: ToolVerCardapio,
				Desc: "Lista o cardápio completo com os preços de cada item.",
				ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
					"dummy": {Type: schema.String, Desc: "Ignored", Required: false},
				}),
			},
			{
				Name: ToolFazerPedido,
				Desc: "Registra um pedido. Recebe 'Item' ou 'Item, Quantidade' e devolve a confirmação com id e total.",
				ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
					"pedido": {Type: schema.String, Desc: "Texto do pedido, ex: 'Pizza, 2'", Required: true},
				}),
			},
			{
				Name: ToolVerStatus,
				Desc: "Consulta o status de um pedido pelo id numérico.",
				ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
					"id": {Type: schema.String, Desc: "Id do pedido, com ou sem '#'", Required: true},
				}),
			},
		}
	case contract.AgentTypeAnalyst:
		return []*schema.ToolInfo{
			{
				Name: ToolVendasResumo,
				Desc: "Resumo geral da planilha de vendas: registros, itens vendidos e faturamento total.",
				ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
					"dummy": {Type: schema.String, Desc: "Ignored", Required: false},
				}),
			},
			{
				Name: ToolVendasPorCategoria,
				Desc: "Faturamento agrupado por categoria, da maior para a menor.",
				ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
					"dummy": {Type: schema.String, Desc: "Ignored", Required: false},
				}),
			},
			{
				Name: ToolVendasTopProdutos,
				Desc: "Ranking de produtos por faturamento.",
				ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
					"limite": {Type: schema.Integer, Desc: "Quantos produtos listar", Required: false},
				}),
			},
			{
				Name: ToolMathEvaluate,
				Desc: "Evaluate a mathematical expression.",
				ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
					"expression": {Type: schema.String, Desc: "Expression to evaluate", Required: true},
				}),
			},
		}
	default:
		return nil
	}
}

// stringArg fetches a required argument, coercing numbers the model sent
// instead of strings (ids often arrive as JSON numbers).
func stringArg(args map[string]any, key string) (string, error) {
	raw, ok := args[key]
	if !ok {
		return "", fmt.Errorf("%s is required", key)
	}
	switch v := raw.(type) {
	case string:
		return v, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(v), nil
	default:
		return "", fmt.Errorf("%s must be a string", key)
	}
}

func intArg(args map[string]any, key string, fallback int) int {
	raw, ok := args[key]
	if !ok {
		return fallback
	}
	switch v := raw.(type) {
	case float64:
		return int(v)
	case int:
		return v
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
