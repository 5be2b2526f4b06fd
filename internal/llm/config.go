package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config holds all LLM provider configuration.
type Config struct {
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds a single Generate call including retries.
	Timeout time.Duration
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string // optional, for OpenAI-compatible endpoints
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns the configuration used when nothing is set. Gemini
// is the default provider, matching the advice endpoint giasu grew out of.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderGemini,
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-001"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: 45 * time.Second,
	}
}

// envBinding ties one environment variable to one Config field.
type envBinding struct {
	name string
	set  func(c *Config, v string)
}

var envBindings = []envBinding{
	{"GIASU_LLM_PROVIDER", func(c *Config, v string) { c.Provider = v }},
	{"GIASU_ANTHROPIC_API_KEY", func(c *Config, v string) { c.Anthropic.APIKey = v }},
	{"GIASU_ANTHROPIC_MODEL", func(c *Config, v string) { c.Anthropic.Model = v }},
	{"GIASU_OPENAI_API_KEY", func(c *Config, v string) { c.OpenAI.APIKey = v }},
	{"GIASU_OPENAI_MODEL", func(c *Config, v string) { c.OpenAI.Model = v }},
	{"GIASU_OPENAI_BASE_URL", func(c *Config, v string) { c.OpenAI.BaseURL = v }},
	{"GIASU_GEMINI_API_KEY", func(c *Config, v string) { c.Gemini.APIKey = v }},
	{"GIASU_GEMINI_MODEL", func(c *Config, v string) { c.Gemini.Model = v }},
	{"GIASU_OPENROUTER_API_KEY", func(c *Config, v string) { c.OpenRouter.APIKey = v }},
	{"GIASU_OPENROUTER_MODEL", func(c *Config, v string) { c.OpenRouter.Model = v }},
	{"GIASU_LLM_TIMEOUT", func(c *Config, v string) {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			c.Timeout = d
		}
	}},
}

// ConfigFromEnv builds a Config from GIASU_* environment variables, falling
// back to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	for _, b := range envBindings {
		if v := os.Getenv(b.name); v != "" {
			b.set(&cfg, v)
		}
	}
	return cfg
}

// vendorKeys lists the standard vendor key variables probed by
// DiscoverConfig, in priority order.
var vendorKeys = []struct {
	env      string
	provider string
}{
	{"GEMINI_API_KEY", ProviderGemini},
	{"OPENAI_API_KEY", ProviderOpenAI},
	{"ANTHROPIC_API_KEY", ProviderAnthropic},
	{"OPENROUTER_API_KEY", ProviderOpenRouter},
}

// DiscoverConfig returns a Config for the first provider whose standard
// vendor API key is set. Returns (Config{}, false) if none is found.
func DiscoverConfig() (Config, bool) {
	for _, vk := range vendorKeys {
		k := os.Getenv(vk.env)
		if k == "" {
			continue
		}
		cfg := DefaultConfig()
		cfg.Provider = vk.provider
		cfg.setAPIKey(k)
		return cfg, true
	}
	return Config{}, false
}

func (c *Config) setAPIKey(k string) {
	switch c.Provider {
	case ProviderAnthropic:
		c.Anthropic.APIKey = k
	case ProviderOpenAI:
		c.OpenAI.APIKey = k
	case ProviderGemini:
		c.Gemini.APIKey = k
	case ProviderOpenRouter:
		c.OpenRouter.APIKey = k
	}
}

// apiKey returns the key of the selected provider and the variable that
// sets it.
func (c Config) apiKey() (key, env string) {
	switch c.Provider {
	case ProviderAnthropic:
		return c.Anthropic.APIKey, "GIASU_ANTHROPIC_API_KEY"
	case ProviderOpenAI:
		return c.OpenAI.APIKey, "GIASU_OPENAI_API_KEY"
	case ProviderGemini:
		return c.Gemini.APIKey, "GIASU_GEMINI_API_KEY"
	case ProviderOpenRouter:
		return c.OpenRouter.APIKey, "GIASU_OPENROUTER_API_KEY"
	}
	return "", ""
}

// Validate checks that the selected provider is known and has its API key.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderMock:
		return nil
	case ProviderAnthropic, ProviderOpenAI, ProviderGemini, ProviderOpenRouter:
		if key, env := c.apiKey(); key == "" {
			return fmt.Errorf("%s is required for the %s provider", env, c.Provider)
		}
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
}
