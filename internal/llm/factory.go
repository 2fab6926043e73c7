package llm

import (
	"context"
	"fmt"
	"net/http"
)

// NewProvider creates a bare Provider from configuration. httpClient
// carries the connection strategy's transport policy and timeout; it is
// ignored by the local and mock providers, which never leave the machine.
//
// Callers (the connection ladder) layer logging and retry middleware on
// top once the provider has passed its sanity probe.
func NewProvider(ctx context.Context, cfg Config, httpClient *http.Client) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic, httpClient)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI, httpClient)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini, httpClient)
	case "local":
		base, err = NewLocalProvider(cfg.Local)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown model provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return base, nil
}
