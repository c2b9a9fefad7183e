package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides. Nested keys are separated by a
// double underscore: ROBOBOOK_CHAT__API_URL sets chat.api_url.
const EnvPrefix = "ROBOBOOK_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides. A .env file in the working directory is
// loaded first; variables already set in the environment win.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	k := koanf.New(".")
	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// envKey maps ROBOBOOK_RETRIEVAL__TOP_K to retrieval.top_k.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validEmbeddingProviders = map[EmbeddingProvider]bool{
	EmbeddingKeyword: true,
	EmbeddingOpenAI:  true,
	EmbeddingOllama:  true,
}

var validLLMProviders = map[LLMProvider]bool{
	LLMNone:   true,
	LLMOpenAI: true,
	LLMOllama: true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Site.DocsDir == "" {
		return fmt.Errorf("site.docs_dir is required")
	}
	if c.Site.OutputDir == "" {
		return fmt.Errorf("site.output_dir is required")
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d is out of range", c.Server.Port)
	}

	u, err := url.Parse(c.Chat.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("chat.api_url %q must be an absolute http(s) URL", c.Chat.APIURL)
	}
	if c.Chat.TimeoutSeconds < 0 {
		return fmt.Errorf("chat.timeout_seconds must be non-negative")
	}

	if c.Retrieval.TopK <= 0 {
		return fmt.Errorf("retrieval.top_k must be positive")
	}
	if c.Retrieval.MinSimilarity < 0 || c.Retrieval.MinSimilarity >= 1 {
		return fmt.Errorf("retrieval.min_similarity must be in [0, 1)")
	}
	if !validEmbeddingProviders[c.Retrieval.EmbeddingProvider] {
		return fmt.Errorf("invalid retrieval.embedding_provider %q: must be one of keyword, openai, ollama", c.Retrieval.EmbeddingProvider)
	}

	if !validLLMProviders[c.LLM.Provider] {
		return fmt.Errorf("invalid llm.provider %q: must be one of none, openai, ollama", c.LLM.Provider)
	}
	if c.LLM.Provider != LLMNone && c.LLM.Model == "" {
		return fmt.Errorf("llm.model is required when llm.provider is %s", c.LLM.Provider)
	}
	if c.LLM.RequestsPerMinute < 0 {
		return fmt.Errorf("llm.requests_per_minute must be non-negative")
	}

	if c.History.Enabled && c.History.DBPath == "" {
		return fmt.Errorf("history.db_path is required when history is enabled")
	}

	return nil
}

// APIKeyEnvVar returns the environment variable holding the API key for a
// hosted provider, or "" when none is needed.
func APIKeyEnvVar(provider string) string {
	if provider == string(LLMOpenAI) {
		return "OPENAI_API_KEY"
	}
	return ""
}
