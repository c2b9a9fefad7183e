package cmd

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ziadkadry99/robobook/internal/book"
	"github.com/ziadkadry99/robobook/internal/config"
	"github.com/ziadkadry99/robobook/internal/db"
	"github.com/ziadkadry99/robobook/internal/embeddings"
	"github.com/ziadkadry99/robobook/internal/history"
	"github.com/ziadkadry99/robobook/internal/llm"
	"github.com/ziadkadry99/robobook/internal/progress"
	"github.com/ziadkadry99/robobook/internal/rag"
	"github.com/ziadkadry99/robobook/internal/vectordb"
	"github.com/ziadkadry99/robobook/internal/widget"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `robobook init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

func loadBook(cfg *config.Config) (*book.Book, error) {
	b, err := book.Load(cfg.Site.DocsDir, cfg.Site.Include)
	if err != nil {
		return nil, fmt.Errorf("loading book from %s: %w", cfg.Site.DocsDir, err)
	}
	logger.Debug("book loaded", zap.String("dir", cfg.Site.DocsDir), zap.Int("chapters", b.Len()))
	return b, nil
}

// createEmbedderFromConfig creates an embeddings.Embedder based on config.
func createEmbedderFromConfig(cfg *config.Config) (embeddings.Embedder, error) {
	provider := cfg.Retrieval.EmbeddingProvider
	model := cfg.Retrieval.EmbeddingModel
	if model == "" {
		model = config.DefaultEmbeddingModel(provider)
	}
	return embeddings.New(string(provider), model)
}

// createLLMProviderFromConfig creates the rate limited answer model, or nil
// when answers are rule based only.
func createLLMProviderFromConfig(cfg *config.Config) (llm.Provider, string, error) {
	model := cfg.LLM.Model
	if model == "" {
		model = config.DefaultModel(cfg.LLM.Provider)
	}
	provider, err := llm.NewProvider(string(cfg.LLM.Provider), model)
	if err != nil {
		return nil, "", err
	}
	return llm.NewRateLimitedProvider(provider, cfg.LLM.RequestsPerMinute), model, nil
}

// openKnowledgeBase loads the persisted index from retrieval.index_dir, or
// builds it in memory from the book when none is usable.
func openKnowledgeBase(ctx context.Context, cfg *config.Config, b *book.Book) (*vectordb.ChromemStore, error) {
	embedder, err := createEmbedderFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating embedder: %w", err)
	}
	store, err := vectordb.NewChromemStore(embedder)
	if err != nil {
		return nil, fmt.Errorf("creating vector store: %w", err)
	}

	dir := cfg.Retrieval.IndexDir
	if err := store.Load(ctx, dir); err == nil && store.Count() > 0 {
		logger.Info("knowledge base loaded", zap.String("dir", dir), zap.Int("documents", store.Count()))
		return store, nil
	} else if errors.Is(err, vectordb.ErrEmbedderMismatch) {
		logger.Warn("persisted knowledge base ignored; run `robobook index` again", zap.String("dir", dir), zap.Error(err))
	} else if err != nil {
		logger.Debug("no persisted knowledge base", zap.String("dir", dir), zap.Error(err))
	}

	if err := rag.BuildIndex(ctx, b, store, progress.Nop{}); err != nil {
		return nil, fmt.Errorf("indexing book: %w", err)
	}
	logger.Info("knowledge base built", zap.Int("documents", store.Count()))
	return store, nil
}

func newAssistant(cfg *config.Config, b *book.Book, store vectordb.VectorStore) (*rag.Assistant, error) {
	provider, model, err := createLLMProviderFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating llm provider: %w", err)
	}
	return rag.NewAssistant(b, store,
		rag.WithTopK(cfg.Retrieval.TopK),
		rag.WithMinSimilarity(float32(cfg.Retrieval.MinSimilarity)),
		rag.WithLLM(provider, model),
		rag.WithLogger(logger),
	), nil
}

// openHistory returns the history store, or nil when history is disabled.
// The caller closes the returned database.
func openHistory(cfg *config.Config) (*history.Store, *db.DB, error) {
	if !cfg.History.Enabled {
		return nil, nil, nil
	}
	database, err := db.Open(cfg.History.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening history: %w", err)
	}
	return history.NewStore(database), database, nil
}

func newChatClient(cfg *config.Config) (*widget.Client, error) {
	client, err := widget.NewClient(cfg.Chat.APIURL, widget.WithTimeout(cfg.Chat.Timeout()))
	if err != nil {
		return nil, fmt.Errorf("chat api url: %w", err)
	}
	return client, nil
}
