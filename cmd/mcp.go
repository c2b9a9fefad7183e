package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	mcpserver "github.com/ziadkadry99/robobook/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing the book and its chat assistant as tools for AI agents.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		b, err := loadBook(cfg)
		if err != nil {
			return err
		}
		store, err := openKnowledgeBase(cmd.Context(), cfg, b)
		if err != nil {
			return err
		}
		assistant, err := newAssistant(cfg, b, store)
		if err != nil {
			return err
		}

		mcpserver.Version = Version
		logger.Info("MCP server started on stdio", zap.Int("chapters", b.Len()), zap.Int("documents", store.Count()))

		if err := mcpserver.NewServer(b, store, assistant).Serve(); err != nil {
			return fmt.Errorf("mcp server: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
