package llm

import (
	"context"
	"testing"
)

func TestNewProvider_WrapsDecorators(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderMock

	p, err := NewProvider(context.Background(), cfg, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := p.(*TimeoutProvider); !ok {
		t.Errorf("outer provider = %T, want *TimeoutProvider", p)
	}
	if p.Name() != ProviderMock {
		t.Errorf("Name() = %q, want %q", p.Name(), ProviderMock)
	}
}

func TestNewProvider_RejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderAnthropic
	if _, err := NewProvider(context.Background(), cfg, nil, nil); err == nil {
		t.Fatal("expected error for missing API key")
	}
}

func TestNewProviderFromEnv_Discovers(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-discovered")

	p, err := NewProviderFromEnv(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Name() != ProviderOpenAI || p.ModelID() != "gpt-4o-mini" {
		t.Errorf("provider = %s/%s, want openai/gpt-4o-mini", p.Name(), p.ModelID())
	}
}
