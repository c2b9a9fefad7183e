package config

import "time"

// DefaultPath is the configuration file read when --config is not given.
const DefaultPath = "robobook.yml"

// defaultModels maps each LLM provider to the model the wizard proposes.
var defaultModels = map[LLMProvider]string{
	LLMOpenAI: "gpt-4o-mini",
	LLMOllama: "llama3",
}

// defaultEmbeddingModels maps each embedding provider to its default model.
var defaultEmbeddingModels = map[EmbeddingProvider]string{
	EmbeddingKeyword: "",
	EmbeddingOpenAI:  "text-embedding-3-small",
	EmbeddingOllama:  "nomic-embed-text",
}

// DefaultConfig returns a Config with sensible defaults. The chat API listens
// on port 8000 and the widget points at it.
func DefaultConfig() *Config {
	return &Config{
		Site: SiteConfig{
			Title:     "Humanoid Robotics Book",
			Tagline:   "A comprehensive guide to physical AI and humanoid robot development",
			DocsDir:   "docs",
			OutputDir: "build",
			Include:   []string{"*.md"},
		},
		Server: ServerConfig{
			Port:            8000,
			AllowAllOrigins: true,
		},
		Chat: ChatConfig{
			APIURL:         "http://localhost:8000",
			TimeoutSeconds: 30,
		},
		Retrieval: RetrievalConfig{
			TopK:              3,
			MinSimilarity:     0.05,
			EmbeddingProvider: EmbeddingKeyword,
			IndexDir:          ".robobook",
		},
		LLM: LLMConfig{
			Provider:          LLMNone,
			RequestsPerMinute: 30,
		},
		History: HistoryConfig{
			Enabled: true,
			DBPath:  ".robobook/history.db",
		},
	}
}

// DefaultModel returns the model proposed for p, or "".
func DefaultModel(p LLMProvider) string { return defaultModels[p] }

// DefaultEmbeddingModel returns the default model for p, or "".
func DefaultEmbeddingModel(p EmbeddingProvider) string { return defaultEmbeddingModels[p] }

// Timeout returns the chat request timeout. Zero means no timeout.
func (c ChatConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
