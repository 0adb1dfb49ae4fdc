package ai

import (
	"context"
	"fmt"

	"travelchat/internal/config"
)

// NewCompleter builds the provider selected by cfg. The returned close func
// releases provider resources and is never nil.
func NewCompleter(ctx context.Context, cfg config.LLMConfig) (Completer, func(), error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		p, err := NewOpenAIProvider(cfg.APIKey, cfg.BaseURL, cfg.Timeout)
		if err != nil {
			return nil, func() {}, err
		}
		return p, func() {}, nil
	case config.ProviderGemini:
		p, err := NewGeminiProvider(ctx, cfg.APIKey)
		if err != nil {
			return nil, func() {}, err
		}
		return p, p.Close, nil
	default:
		return nil, func() {}, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
