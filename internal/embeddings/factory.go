package embeddings

import (
	"fmt"
	"os"
)

// Provider names accepted by New.
const (
	ProviderKeyword = "keyword"
	ProviderOpenAI  = "openai"
	ProviderOllama  = "ollama"
)

// New builds the embedder for provider. The keyword embedder needs no
// credentials; openai reads OPENAI_API_KEY and OPENAI_BASE_URL, ollama reads
// OLLAMA_HOST.
func New(provider, model string) (Embedder, error) {
	switch provider {
	case "", ProviderKeyword:
		return NewKeywordEmbedder(0), nil
	case ProviderOpenAI:
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required for openai embeddings")
		}
		return NewOpenAIEmbedder(apiKey, OpenAIModel(model), os.Getenv("OPENAI_BASE_URL")), nil
	case ProviderOllama:
		if model == "" {
			model = "nomic-embed-text"
		}
		return NewOllamaEmbedder(model, 0, os.Getenv("OLLAMA_HOST")), nil
	default:
		return nil, fmt.Errorf("unsupported embedding provider %q", provider)
	}
}
