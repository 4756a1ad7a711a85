package tool

import (
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ifoodlabs/concierge/agent/contract"
	"github.com/ifoodlabs/concierge/order"
	"github.com/ifoodlabs/concierge/sales"
)

func testDeps(t *testing.T) Deps {
	t.Helper()
	svc, err := order.NewService(order.DefaultCatalog(), order.NewLedger(), zerolog.Nop())
	if err != nil {
		t.Fatalf("order.NewService() error = %v", err)
	}
	report := sales.NewReport([]sales.Sale{
		{Product: "Pizza", Category: "comida", Quantity: 10, UnitPrice: 45.00},
		{Product: "Refrigerante", Category: "bebida", Quantity: 20, UnitPrice: 8.00},
	})
	return Deps{Orders: svc, Sales: report}
}

func TestBuildForAgentConcierge(t *testing.T) {
	t.Parallel()

	infos, executor := BuildForAgent(contract.AgentTypeConcierge, testDeps(t))
	if len(infos) != 3 {
		t.Fatalf("expected 3 tool infos, got %d", len(infos))
	}
	want := []string{ToolVerCardapio, ToolFazerPedido, ToolVerStatus}
	for i, name := range want {
		if infos[i].Name != name {
			t.Fatalf("infos[%d].Name = %s, want %s", i, infos[i].Name, name)
		}
	}
	if executor == nil {
		t.Fatal("executor must not be nil")
	}
}

func TestBuildForAgentAnalyst(t *testing.T) {
	t.Parallel()

	infos, _ := BuildForAgent(contract.AgentTypeAnalyst, testDeps(t))
	if len(infos) != 4 {
		t.Fatalf("expected 4 tool infos, got %d", len(infos))
	}
	if infos[len(infos)-1].Name != ToolMathEvaluate {
		t.Fatalf("last analyst tool = %s, want %s", infos[len(infos)-1].Name, ToolMathEvaluate)
	}
}

func TestExecutorOrderFlow(t *testing.T) {
	t.Parallel()

	executor := NewExecutor(contract.AgentTypeConcierge, testDeps(t))
	ctx := context.Background()

	out, err := executor(ctx, ToolFazerPedido, map[string]any{"pedido": "Pizza, 2"})
	if err != nil {
		t.Fatalf("fazer_pedido error = %v", err)
	}
	confirmation, ok := out.Result.(string)
	if !ok || !strings.Contains(confirmation, "confirmado") {
		t.Fatalf("unexpected confirmation: %#v", out.Result)
	}

	out, err = executor(ctx, ToolVerStatus, map[string]any{"id": "#100"})
	if err != nil {
		t.Fatalf("ver_status error = %v", err)
	}
	status, ok := out.Result.(string)
	if !ok || !strings.Contains(status, "Cooking") {
		t.Fatalf("unexpected status: %#v", out.Result)
	}
}

func TestExecutorVerStatusCoercesNumericID(t *testing.T) {
	t.Parallel()

	deps := testDeps(t)
	executor := NewExecutor(contract.AgentTypeConcierge, deps)
	ctx := context.Background()

	if _, err := executor(ctx, ToolFazerPedido, map[string]any{"pedido": "Açaí"}); err != nil {
		t.Fatalf("fazer_pedido error = %v", err)
	}

	// JSON numbers decode as float64; the id must still resolve.
	out, err := executor(ctx, ToolVerStatus, map[string]any{"id": float64(100)})
	if err != nil {
		t.Fatalf("ver_status error = %v", err)
	}
	status, _ := out.Result.(string)
	if !strings.Contains(status, "Cooking") {
		t.Fatalf("unexpected status: %#v", out.Result)
	}
}

func TestExecutorMissingArgReportsInBand(t *testing.T) {
	t.Parallel()

	executor := NewExecutor(contract.AgentTypeConcierge, testDeps(t))
	out, err := executor(context.Background(), ToolFazerPedido, map[string]any{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Error == "" {
		t.Fatal("expected in-band error for missing pedido arg")
	}
}

func TestExecutorUnknownToolUnavailable(t *testing.T) {
	t.Parallel()

	executor := NewExecutor(contract.AgentTypeConcierge, testDeps(t))
	out, err := executor(context.Background(), "vendas.resumo", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Error == "" {
		t.Fatal("analyst tool must be unavailable to the concierge")
	}
}

func TestExecutorSalesTools(t *testing.T) {
	t.Parallel()

	executor := NewExecutor(contract.AgentTypeAnalyst, testDeps(t))
	ctx := context.Background()

	out, err := executor(ctx, ToolVendasResumo, nil)
	if err != nil {
		t.Fatalf("vendas.resumo error = %v", err)
	}
	summary, _ := out.Result.(string)
	if !strings.Contains(summary, "610.00") {
		t.Fatalf("summary = %q, want total 610.00", summary)
	}

	out, err = executor(ctx, ToolVendasTopProdutos, map[string]any{"limite": float64(1)})
	if err != nil {
		t.Fatalf("vendas.top_produtos error = %v", err)
	}
	ranking, _ := out.Result.(string)
	if !strings.Contains(ranking, "Pizza") || strings.Contains(ranking, "Refrigerante") {
		t.Fatalf("ranking = %q, want only Pizza", ranking)
	}
}

func TestGatewayRoutesPerAgent(t *testing.T) {
	t.Parallel()

	gw := NewGateway(testDeps(t))
	results, err := gw.Execute(context.Background(), contract.AgentTypeConcierge, []contract.ToolRequest{
		{Tool: ToolVerCardapio},
		{Tool: ToolFazerPedido, Args: map[string]any{"pedido": "x-burger"}},
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("len(results) = %d, want 2", len(results))
	}
	menu, _ := results[0].Result.(string)
	if !strings.Contains(menu, "X-Burger") {
		t.Fatalf("menu result = %q", menu)
	}
}

func TestGatewayUnknownAgent(t *testing.T) {
	t.Parallel()

	gw := NewGateway(testDeps(t))
	if _, err := gw.Execute(context.Background(), "robot", nil); err == nil {
		t.Fatal("Execute() accepted unknown agent")
	}
}
