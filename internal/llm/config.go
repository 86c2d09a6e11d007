package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config selects and configures one provider.
type Config struct {
	// Provider is one of anthropic, openai, gemini, openrouter or mock.
	Provider string

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds one Generate call including retries.
	Timeout time.Duration
}

type AnthropicConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// RetryConfig controls exponential back-off between attempts.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// modelAliases lets configuration name a model family instead of a dated ID.
var modelAliases = map[string]string{
	"claude-haiku":  "claude-haiku-4-5-20251001",
	"claude-sonnet": "claude-sonnet-4-5-20250929",
	"gemini-flash":  "gemini-2.5-flash",
	"gemini-pro":    "gemini-2.5-pro",
}

// ResolveModel expands an alias. Unknown names are returned unchanged so
// full model IDs can be configured directly.
func ResolveModel(name string) string {
	if id, ok := modelAliases[name]; ok {
		return id
	}
	return name
}

func DefaultConfig() Config {
	return Config{
		Provider:   "anthropic",
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.5-flash"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 500 * time.Millisecond,
			MaxWait:     8 * time.Second,
			Multiplier:  2,
		},
		Timeout: 45 * time.Second,
	}
}

// envBindings maps MINDCHECK_* variables onto Config fields.
func (c *Config) envBindings() map[string]*string {
	return map[string]*string{
		"MINDCHECK_LLM_PROVIDER":        &c.Provider,
		"MINDCHECK_ANTHROPIC_API_KEY":   &c.Anthropic.APIKey,
		"MINDCHECK_ANTHROPIC_MODEL":     &c.Anthropic.Model,
		"MINDCHECK_ANTHROPIC_BASE_URL":  &c.Anthropic.BaseURL,
		"MINDCHECK_OPENAI_API_KEY":      &c.OpenAI.APIKey,
		"MINDCHECK_OPENAI_MODEL":        &c.OpenAI.Model,
		"MINDCHECK_OPENAI_BASE_URL":     &c.OpenAI.BaseURL,
		"MINDCHECK_GEMINI_API_KEY":      &c.Gemini.APIKey,
		"MINDCHECK_GEMINI_MODEL":        &c.Gemini.Model,
		"MINDCHECK_OPENROUTER_API_KEY":  &c.OpenRouter.APIKey,
		"MINDCHECK_OPENROUTER_MODEL":    &c.OpenRouter.Model,
		"MINDCHECK_OPENROUTER_BASE_URL": &c.OpenRouter.BaseURL,
	}
}

// ConfigFromEnv overlays MINDCHECK_* variables on DefaultConfig.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	for name, field := range cfg.envBindings() {
		if v := os.Getenv(name); v != "" {
			*field = v
		}
	}
	if v := os.Getenv("MINDCHECK_LLM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Timeout = d
		}
	}
	return cfg
}

// DiscoverConfig picks the first provider whose vendor API key variable is
// set, checking Gemini, OpenAI, Anthropic and OpenRouter in that order.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	candidates := []struct {
		env      string
		provider string
		key      *string
	}{
		{"GEMINI_API_KEY", "gemini", &cfg.Gemini.APIKey},
		{"OPENAI_API_KEY", "openai", &cfg.OpenAI.APIKey},
		{"ANTHROPIC_API_KEY", "anthropic", &cfg.Anthropic.APIKey},
		{"OPENROUTER_API_KEY", "openrouter", &cfg.OpenRouter.APIKey},
	}
	for _, c := range candidates {
		if v := os.Getenv(c.env); v != "" {
			cfg.Provider = c.provider
			*c.key = v
			return cfg, true
		}
	}
	return Config{}, false
}

// Validate checks that the selected provider is known and has a key.
func (c Config) Validate() error {
	var key string
	switch c.Provider {
	case "anthropic":
		key = c.Anthropic.APIKey
	case "openai":
		key = c.OpenAI.APIKey
	case "gemini":
		key = c.Gemini.APIKey
	case "openrouter":
		key = c.OpenRouter.APIKey
	case "mock":
		return nil
	default:
		return fmt.Errorf("unknown LLM provider %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("no API key for the %s provider; set MINDCHECK_%s_API_KEY", c.Provider, strings.ToUpper(c.Provider))
	}
	return nil
}
