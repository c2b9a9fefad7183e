package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
)

// WizardAnswers are the choices collected by the init wizard.
type WizardAnswers struct {
	Title             string
	DocsDir           string
	APIURL            string
	EmbeddingProvider EmbeddingProvider
	LLMProvider       LLMProvider
	Include           string // comma-separated globs
}

// BuildConfig turns wizard answers into a Config, starting from the defaults.
func BuildConfig(a WizardAnswers) *Config {
	cfg := DefaultConfig()
	if a.Title != "" {
		cfg.Site.Title = a.Title
	}
	if a.DocsDir != "" {
		cfg.Site.DocsDir = a.DocsDir
	}
	if a.APIURL != "" {
		cfg.Chat.APIURL = strings.TrimRight(a.APIURL, "/")
	}
	if include := splitAndTrim(a.Include); len(include) > 0 {
		cfg.Site.Include = include
	}
	if a.EmbeddingProvider != "" {
		cfg.Retrieval.EmbeddingProvider = a.EmbeddingProvider
		cfg.Retrieval.EmbeddingModel = DefaultEmbeddingModel(a.EmbeddingProvider)
	}
	if a.LLMProvider != "" {
		cfg.LLM.Provider = a.LLMProvider
		cfg.LLM.Model = DefaultModel(a.LLMProvider)
	}
	return cfg
}

// RunWizard runs an interactive configuration wizard, saves the result to
// path and returns it.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to robobook! Let's configure your book.")
	fmt.Println()

	defaults := DefaultConfig()
	var answers WizardAnswers
	var err error

	if answers.Title, err = (&promptui.Prompt{Label: "Site title", Default: defaults.Site.Title}).Run(); err != nil {
		return nil, fmt.Errorf("site title: %w", err)
	}

	answers.DocsDir, err = (&promptui.Prompt{
		Label:   "Directory holding the chapter markdown files",
		Default: defaults.Site.DocsDir,
		Validate: func(s string) error {
			info, err := os.Stat(s)
			if err != nil {
				return err
			}
			if !info.IsDir() {
				return fmt.Errorf("%s is not a directory", s)
			}
			return nil
		},
	}).Run()
	if err != nil {
		return nil, fmt.Errorf("docs dir: %w", err)
	}

	if answers.Include, err = (&promptui.Prompt{
		Label:   "Chapter files (comma-separated globs)",
		Default: strings.Join(defaults.Site.Include, ","),
	}).Run(); err != nil {
		return nil, fmt.Errorf("include patterns: %w", err)
	}

	if answers.APIURL, err = (&promptui.Prompt{
		Label:   "Chat API URL the widget calls",
		Default: defaults.Chat.APIURL,
	}).Run(); err != nil {
		return nil, fmt.Errorf("chat api url: %w", err)
	}

	_, embedding, err := (&promptui.Select{
		Label: "Embedding provider",
		Items: []string{string(EmbeddingKeyword), string(EmbeddingOpenAI), string(EmbeddingOllama)},
	}).Run()
	if err != nil {
		return nil, fmt.Errorf("embedding provider: %w", err)
	}
	answers.EmbeddingProvider = EmbeddingProvider(embedding)

	_, provider, err := (&promptui.Select{
		Label: "LLM for answer synthesis",
		Items: []string{string(LLMNone), string(LLMOpenAI), string(LLMOllama)},
	}).Run()
	if err != nil {
		return nil, fmt.Errorf("llm provider: %w", err)
	}
	answers.LLMProvider = LLMProvider(provider)

	cfg := BuildConfig(answers)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	for _, p := range []string{string(cfg.LLM.Provider), string(cfg.Retrieval.EmbeddingProvider)} {
		if envVar := APIKeyEnvVar(p); envVar != "" && os.Getenv(envVar) == "" {
			fmt.Printf("\nNote: Set %s in your environment (or .env) before running robobook.\n", envVar)
			break
		}
	}

	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}
	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and drops empty entries.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
