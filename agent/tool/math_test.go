package tool

import (
	"context"
	"testing"

	"github.com/ifoodlabs/concierge/agent/contract"
)

func TestMathEvaluate(t *testing.T) {
	t.Parallel()

	executor := NewExecutor(contract.AgentTypeAnalyst, Deps{})
	out, err := executor(context.Background(), ToolMathEvaluate, map[string]any{
		"expression": "2 + 3 * (4 - 1)",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Error != "" {
		t.Fatalf("unexpected tool error: %s", out.Error)
	}
	result, ok := out.Result.(MathEvaluateOutput)
	if !ok {
		t.Fatalf("unexpected result type: %T", out.Result)
	}
	if result.Result != 11 {
		t.Fatalf("unexpected result: %v", result.Result)
	}
}

func TestMathEvaluatePrecedence(t *testing.T) {
	t.Parallel()

	cases := map[string]float64{
		"10 / 4":      2.5,
		"2 ^ 3 ^ 2":   512, // right-associative
		"-3 + 5":      2,
		"10 % 4":      2,
		"(1 + 2) * 3": 9,
	}
	executor := NewExecutor(contract.AgentTypeAnalyst, Deps{})
	for expr, want := range cases {
		out, err := executor(context.Background(), ToolMathEvaluate, map[string]any{"expression": expr})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", expr, err)
		}
		if out.Error != "" {
			t.Fatalf("%s: unexpected tool error: %s", expr, out.Error)
		}
		if got := out.Result.(MathEvaluateOutput).Result; got != want {
			t.Fatalf("%s = %v, want %v", expr, got, want)
		}
	}
}

func TestMathEvaluateInvalidExpression(t *testing.T) {
	t.Parallel()

	executor := NewExecutor(contract.AgentTypeAnalyst, Deps{})
	for _, expr := range []string{"2 + abc", "(1 + 2", "1 / 0", ""} {
		out, err := executor(context.Background(), ToolMathEvaluate, map[string]any{"expression": expr})
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", expr, err)
		}
		if out.Error == "" {
			t.Fatalf("%q: expected in-band validation error", expr)
		}
	}
}
