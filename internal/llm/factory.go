package llm

import (
	"fmt"
	"os"
)

// Provider identifies a model API backend.
type Provider string

const (
	ProviderGemini     Provider = "gemini"
	ProviderOpenAI     Provider = "openai"
	ProviderOpenRouter Provider = "openrouter"
	ProviderMock       Provider = "mock"
)

// Config holds the resolved provider, key, and optional model override.
type Config struct {
	Provider Provider
	APIKey   string
	Model    string
}

// keySources is the environment lookup order for DetectAPIKey. A key from
// GENIE_API_KEY keeps whatever provider the caller selected; the
// provider-specific variables also pick the provider.
var keySources = []struct {
	envVar   string
	provider Provider
}{
	{"GENIE_API_KEY", ""},
	{"GEMINI_API_KEY", ProviderGemini},
	{"GOOGLE_API_KEY", ProviderGemini},
	{"OPENAI_API_KEY", ProviderOpenAI},
	{"OPENROUTER_API_KEY", ProviderOpenRouter},
}

// DetectAPIKey checks the environment for a model API key. The returned
// provider is empty when the key does not imply one.
func DetectAPIKey() (string, Provider) {
	for _, src := range keySources {
		if key := os.Getenv(src.envVar); key != "" {
			return key, src.provider
		}
	}
	return "", ""
}

// NewClient creates a Client for the configured provider. Real providers
// require an API key; the mock provider never does.
func NewClient(cfg Config) (Client, error) {
	switch cfg.Provider {
	case ProviderGemini, "":
		gc := DefaultGeminiConfig(cfg.APIKey)
		if cfg.Model != "" {
			gc.Model = cfg.Model
		}
		return NewGeminiClientWithConfig(gc)

	case ProviderOpenAI:
		if cfg.APIKey == "" {
			return nil, errKeyMissing(string(ProviderOpenAI))
		}
		client := NewOpenAIClient(cfg.APIKey)
		if cfg.Model != "" {
			client.SetModel(cfg.Model)
		}
		return client, nil

	case ProviderOpenRouter:
		if cfg.APIKey == "" {
			return nil, errKeyMissing(string(ProviderOpenRouter))
		}
		oc := DefaultOpenRouterConfig(cfg.APIKey)
		if cfg.Model != "" {
			oc.Model = cfg.Model
		}
		return NewOpenAIClientWithConfig(oc), nil

	case ProviderMock:
		return NewMockClient(), nil

	default:
		return nil, fmt.Errorf("unknown provider: %s (valid: gemini, openai, openrouter, mock)", cfg.Provider)
	}
}
