package llm

import (
	"math"
	"testing"
)

func TestNewOpenRouterProvider(t *testing.T) {
	p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or-test", Model: "google/gemini-2.5-flash"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "google/gemini-2.5-flash" {
		t.Errorf("model = %q", p.ModelID())
	}
	if p.Name() != ProviderOpenRouter {
		t.Errorf("name = %q, want openrouter", p.Name())
	}

	if _, err := NewOpenRouterProvider(OpenRouterConfig{Model: "x"}); err == nil {
		t.Error("expected error for empty API key")
	}
}

func TestLookupCost_OpenRouterPrefix(t *testing.T) {
	c := LookupCost("google/gemini-2.5-flash")
	if c == nil {
		t.Fatal("expected pricing for vendor-prefixed model")
	}
	if got := c.Cost(1_000_000, 0); math.Abs(got-0.3) > 1e-9 {
		t.Errorf("cost = %v, want 0.3", got)
	}
	if LookupCost("no-such-model") != nil {
		t.Error("expected nil for unknown model")
	}
}
