package llm

import (
	"context"
	"fmt"
	"time"
)

// ProviderConfig selects and configures a completion provider.
type ProviderConfig struct {
	Provider   string // "gemini", "openai", or any OpenAI-compatible endpoint
	APIKey     string
	BaseURL    string
	Model      string
	ImageModel string
	Timeout    time.Duration
}

// NewClient builds a Client for the configured provider. The returned
// client also satisfies ImageGenerator when the provider supports it.
func NewClient(ctx context.Context, config ProviderConfig) (Client, error) {
	switch config.Provider {
	case "gemini":
		return NewGeminiClient(ctx, GeminiConfig{
			APIKey:     config.APIKey,
			Model:      config.Model,
			ImageModel: config.ImageModel,
		})
	case "openai", "":
		oc := DefaultOpenAIConfig(config.APIKey)
		if config.BaseURL != "" {
			oc.BaseURL = config.BaseURL
		}
		if config.Model != "" {
			oc.Model = config.Model
		}
		if config.Timeout > 0 {
			oc.Timeout = config.Timeout
		}
		return NewOpenAIClientWithConfig(oc), nil
	default:
		return nil, fmt.Errorf("llm: unknown provider %q", config.Provider)
	}
}
