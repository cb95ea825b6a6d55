package llm

import "github.com/abhisek/questioner/internal/config"

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouterProvider wraps OpenAIProvider with OpenRouter-specific defaults.
// OpenRouter exposes an OpenAI-compatible API, so the underlying SDK is reused.
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider creates a provider targeting the OpenRouter API,
// or cfg.Endpoint when set.
func NewOpenRouterProvider(cfg config.ModelConfig) (*OpenRouterProvider, error) {
	inner, err := newOpenAIProvider(config.BackendOpenRouter, cfg, defaultOpenRouterBaseURL)
	if err != nil {
		return nil, err
	}
	return &OpenRouterProvider{OpenAIProvider: inner}, nil
}
