package llm

import "errors"

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// openRouterHeaders identify the app on openrouter.ai.
var openRouterHeaders = map[string]string{
	"HTTP-Referer": "https://github.com/abhisek/az104",
	"X-Title":      "az104",
}

// OpenRouterProvider is the OpenAI-compatible provider pointed at
// OpenRouter. Models are addressed as "vendor/model".
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider creates a provider targeting the OpenRouter API.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openrouter API key is required")
	}
	base := cfg.BaseURL
	if base == "" {
		base = defaultOpenRouterBaseURL
	}

	inner, err := NewOpenAIProvider(OpenAIConfig{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: base,
		Headers: openRouterHeaders,
	})
	if err != nil {
		return nil, err
	}
	inner.name = ProviderOpenRouter
	return &OpenRouterProvider{OpenAIProvider: inner}, nil
}
