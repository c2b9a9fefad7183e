package config

// EmbeddingProvider identifies how the knowledge base is embedded.
type EmbeddingProvider string

const (
	EmbeddingKeyword EmbeddingProvider = "keyword"
	EmbeddingOpenAI  EmbeddingProvider = "openai"
	EmbeddingOllama  EmbeddingProvider = "ollama"
)

// LLMProvider identifies the model used to synthesize answers.
type LLMProvider string

const (
	LLMNone   LLMProvider = "none"
	LLMOpenAI LLMProvider = "openai"
	LLMOllama LLMProvider = "ollama"
)

// Config is the top-level robobook configuration, corresponding to robobook.yml.
type Config struct {
	Site      SiteConfig      `yaml:"site" koanf:"site"`
	Server    ServerConfig    `yaml:"server" koanf:"server"`
	Chat      ChatConfig      `yaml:"chat" koanf:"chat"`
	Retrieval RetrievalConfig `yaml:"retrieval" koanf:"retrieval"`
	LLM       LLMConfig       `yaml:"llm" koanf:"llm"`
	History   HistoryConfig   `yaml:"history" koanf:"history"`
}

// SiteConfig describes the book and the generated site.
type SiteConfig struct {
	Title     string   `yaml:"title" koanf:"title"`
	Tagline   string   `yaml:"tagline" koanf:"tagline"`
	DocsDir   string   `yaml:"docs_dir" koanf:"docs_dir"`
	OutputDir string   `yaml:"output_dir" koanf:"output_dir"`
	Include   []string `yaml:"include" koanf:"include"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

// ChatConfig is what chat clients (the widget and the CLI) talk to.
type ChatConfig struct {
	APIURL         string `yaml:"api_url" koanf:"api_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds" koanf:"timeout_seconds"`
}

// RetrievalConfig tunes the knowledge base search.
type RetrievalConfig struct {
	TopK              int               `yaml:"top_k" koanf:"top_k"`
	MinSimilarity     float64           `yaml:"min_similarity" koanf:"min_similarity"`
	EmbeddingProvider EmbeddingProvider `yaml:"embedding_provider" koanf:"embedding_provider"`
	EmbeddingModel    string            `yaml:"embedding_model" koanf:"embedding_model"`
	IndexDir          string            `yaml:"index_dir" koanf:"index_dir"`
}

// LLMConfig enables answer synthesis.
type LLMConfig struct {
	Provider          LLMProvider `yaml:"provider" koanf:"provider"`
	Model             string      `yaml:"model" koanf:"model"`
	RequestsPerMinute int         `yaml:"requests_per_minute" koanf:"requests_per_minute"`
}

// HistoryConfig controls the answered-question log.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled" koanf:"enabled"`
	DBPath  string `yaml:"db_path" koanf:"db_path"`
}
