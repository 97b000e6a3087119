package llm

import (
	"fmt"
	"strings"

	"github.com/prosewatch/prosewatch/internal/model"
)

// NewProvider creates a provider from configuration. An empty provider
// name returns (nil, nil): the brief is disabled.
func NewProvider(config Config) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "openai":
		return NewOpenAIProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	case "":
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, ollama)", config.Provider)
	}
}

// ConfigFromModel converts the app-level LLM config section.
func ConfigFromModel(mc model.LLMConfig, httpProxy, httpsProxy string) Config {
	return Config{
		Provider:   mc.Provider,
		Model:      mc.Model,
		APIKey:     mc.APIKey,
		BaseURL:    mc.BaseURL,
		Timeout:    mc.Timeout,
		MaxTokens:  mc.MaxTokens,
		HTTPProxy:  httpProxy,
		HTTPSProxy: httpsProxy,
	}
}
