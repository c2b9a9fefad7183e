package llm

import (
	"fmt"
	"os"
)

// Provider names accepted by NewProvider.
const (
	ProviderNone   = "none"
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"
)

// NewProvider builds the provider named by providerType. "none" and ""
// return a nil provider: answers are then composed from retrieval alone.
func NewProvider(providerType, model string) (Provider, error) {
	switch providerType {
	case "", ProviderNone:
		return nil, nil
	case ProviderOpenAI:
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
		}
		return NewOpenAIProvider(apiKey, model, os.Getenv("OPENAI_BASE_URL")), nil
	case ProviderOllama:
		host := os.Getenv("OLLAMA_HOST")
		if host == "" {
			host = "http://localhost:11434"
		}
		return NewOllamaProvider(host, model), nil
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", providerType)
	}
}
