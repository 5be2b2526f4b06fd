package llm

import (
	"context"
	"fmt"
	"os"

	"github.com/abhisek/giasu/internal/logger"
	"github.com/abhisek/giasu/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped as
// caller → timeout → retry → logging → base. A nil events repo skips event
// logging.
func NewProvider(ctx context.Context, cfg Config, events store.EventRepo, log *logger.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case ProviderMock:
		base = NewMockProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	p := base
	if events != nil {
		p = WithLogging(p, events, log)
	}
	p = WithRetry(p, cfg.Retry, log)
	return WithTimeout(p, cfg.Timeout), nil
}

// NewProviderFromEnv builds a provider from GIASU_* variables. When no
// provider is chosen explicitly and its key is missing, the standard vendor
// key variables are probed with DiscoverConfig.
func NewProviderFromEnv(ctx context.Context, events store.EventRepo, log *logger.Logger) (Provider, error) {
	cfg := ConfigFromEnv()
	if cfg.Validate() != nil && os.Getenv("GIASU_LLM_PROVIDER") == "" {
		if found, ok := DiscoverConfig(); ok {
			cfg = found
		}
	}
	return NewProvider(ctx, cfg, events, log)
}
