package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/robobook/internal/progress"
	"github.com/ziadkadry99/robobook/internal/site"
)

var siteCmd = &cobra.Command{
	Use:   "site",
	Short: "Build the static book site",
	Long: `Renders the homepage and every chapter into site.output_dir. The chat
widget on each page calls chat.api_url, so run "robobook serve" (or another
chat API) alongside the static files.`,
	RunE: runSite,
}

func init() {
	siteCmd.Flags().StringP("output", "o", "", "output directory (overrides site.output_dir)")
	rootCmd.AddCommand(siteCmd)
}

func runSite(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	outputDir := cfg.Site.OutputDir
	if o, _ := cmd.Flags().GetString("output"); o != "" {
		outputDir = o
	}

	b, err := loadBook(cfg)
	if err != nil {
		return err
	}
	s, err := site.New(b, site.Options{
		Title:   cfg.Site.Title,
		Tagline: cfg.Site.Tagline,
		APIURL:  cfg.Chat.APIURL,
	})
	if err != nil {
		return fmt.Errorf("rendering site: %w", err)
	}

	n, err := s.Build(outputDir, progress.NewReporter("Writing pages"))
	if err != nil {
		return fmt.Errorf("building site: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d page(s) to %s\n", n, outputDir)
	return nil
}
