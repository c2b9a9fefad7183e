package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/robobook/internal/chatapi"
	"github.com/ziadkadry99/robobook/internal/server"
	"github.com/ziadkadry99/robobook/internal/site"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the book site and the chat API",
	Long: `Starts an HTTP server that renders the book with its chat widget and
answers GET /api/chat?query=... from the book's knowledge base. The index is
loaded from retrieval.index_dir when present and built from the book otherwise.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "port to listen on (overrides server.port)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if port, _ := cmd.Flags().GetInt("port"); port > 0 {
		cfg.Server.Port = port
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	b, err := loadBook(cfg)
	if err != nil {
		return err
	}
	store, err := openKnowledgeBase(ctx, cfg, b)
	if err != nil {
		return err
	}
	assistant, err := newAssistant(cfg, b, store)
	if err != nil {
		return err
	}

	hist, database, err := openHistory(cfg)
	if err != nil {
		return err
	}
	if database != nil {
		defer database.Close()
	}

	s, err := site.New(b, site.Options{
		Title:   cfg.Site.Title,
		Tagline: cfg.Site.Tagline,
		APIURL:  cfg.Chat.APIURL,
	})
	if err != nil {
		return fmt.Errorf("rendering site: %w", err)
	}

	srv := server.New(server.Config{
		Port:     cfg.Server.Port,
		AllowAll: cfg.Server.AllowAllOrigins,
	}, logger)
	chatapi.RegisterRoutes(srv.Router(), chatapi.Deps{
		Assistant: assistant,
		History:   hist,
		Logger:    logger,
	})
	s.RegisterRoutes(srv.Router())

	errc := make(chan error, 1)
	go func() { errc <- srv.Start() }()

	logger.Info("serving book",
		zap.Int("port", cfg.Server.Port),
		zap.Int("chapters", b.Len()),
		zap.Int("documents", store.Count()),
		zap.Bool("history", hist != nil),
	)
	fmt.Fprintf(cmd.OutOrStdout(), "Serving %s on http://localhost:%d\n", cfg.Site.Title, cfg.Server.Port)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("shutting down: %w", err)
	}
	return <-errc
}
