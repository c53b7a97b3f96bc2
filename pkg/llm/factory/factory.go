package factory

import (
	"fmt"

	"sales-assistant-be/pkg/llm"
	"sales-assistant-be/pkg/llm/anthropic"
	"sales-assistant-be/pkg/llm/ollama"
	"sales-assistant-be/pkg/llm/openai"
)

// ProviderConfig carries the keys and model names the factory needs.
type ProviderConfig struct {
	AnthropicAPIKey string
	AnthropicModel  string
	OpenAIAPIKey    string
	OpenAIModel     string
	OllamaBaseURL   string
	OllamaModel     string
}

// NewLLMProvider builds a single named provider.
func NewLLMProvider(providerType string, cfg ProviderConfig) (llm.LLMProvider, error) {
	switch providerType {
	case "anthropic":
		if cfg.AnthropicAPIKey == "" {
			return nil, fmt.Errorf("anthropic provider requires ANTHROPIC_API_KEY")
		}
		return anthropic.NewAnthropicProvider(cfg.AnthropicAPIKey, cfg.AnthropicModel), nil
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("openai provider requires OPENAI_API_KEY")
		}
		return openai.NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIModel), nil
	case "ollama":
		baseURL := cfg.OllamaBaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, cfg.OllamaModel), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}

// ResolveProviders returns (primary, secondary) for the fallback policy.
// A provider whose key is missing resolves to nil; the invoker decides what
// to do when both are nil.
func ResolveProviders(primaryType string, cfg ProviderConfig) (llm.LLMProvider, llm.LLMProvider) {
	order := []string{"anthropic", "openai"}
	if primaryType == "openai" {
		order = []string{"openai", "anthropic"}
	}

	var providers []llm.LLMProvider
	for _, name := range order {
		p, err := NewLLMProvider(name, cfg)
		if err != nil {
			providers = append(providers, nil)
			continue
		}
		providers = append(providers, p)
	}
	return providers[0], providers[1]
}
