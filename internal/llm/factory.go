package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/mindcheck/internal/store"
)

// NewProvider builds the configured provider and wraps it so each call is
// bounded by cfg.Timeout, retried per cfg.Retry and every attempt is logged.
// repo may be nil.
func NewProvider(ctx context.Context, cfg Config, repo store.EventRepo, log *zap.Logger) (Provider, error) {
	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropic(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAI(cfg.OpenAI)
	case "gemini":
		base, err = NewGemini(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouter(cfg.OpenRouter)
	case "mock":
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	logged := WithLogging(base, cfg.Provider, repo, log)
	return WithTimeout(WithRetry(logged, cfg.Retry), cfg.Timeout), nil
}
