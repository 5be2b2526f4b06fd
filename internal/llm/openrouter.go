package llm

import "fmt"

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// NewOpenRouterProvider creates a provider targeting the OpenRouter API,
// which speaks the OpenAI wire protocol. Model IDs pass through as given.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}
	return newOpenAIProviderRaw(OpenAIConfig{APIKey: cfg.APIKey, Model: cfg.Model, BaseURL: baseURL}, ProviderOpenRouter), nil
}
