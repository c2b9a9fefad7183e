package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/robobook/internal/progress"
	"github.com/ziadkadry99/robobook/internal/rag"
	"github.com/ziadkadry99/robobook/internal/vectordb"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build and persist the book's knowledge base",
	Long: `Embeds every chapter and the canned FAQ entries and writes the vector
index to retrieval.index_dir, where "serve" and "mcp" pick it up.`,
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	b, err := loadBook(cfg)
	if err != nil {
		return err
	}

	embedder, err := createEmbedderFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("creating embedder: %w", err)
	}
	store, err := vectordb.NewChromemStore(embedder)
	if err != nil {
		return fmt.Errorf("creating vector store: %w", err)
	}

	if err := rag.BuildIndex(ctx, b, store, progress.NewReporter("Indexing")); err != nil {
		return fmt.Errorf("indexing book: %w", err)
	}
	if err := store.Persist(ctx, cfg.Retrieval.IndexDir); err != nil {
		return fmt.Errorf("saving index: %w", err)
	}

	logger.Debug("index persisted", zap.String("embedder", embedder.Name()), zap.String("dir", cfg.Retrieval.IndexDir))
	fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d document(s) from %d chapter(s) into %s\n",
		store.Count(), b.Len(), cfg.Retrieval.IndexDir)
	return nil
}
