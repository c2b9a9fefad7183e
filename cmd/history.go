package cmd

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/robobook/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently answered questions",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", history.DefaultLimit, "maximum number of entries")
	historyCmd.Flags().Bool("json", false, "output entries as JSON")
	historyCmd.Flags().Duration("prune", 0, "delete entries older than this before listing")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	limit, _ := cmd.Flags().GetInt("limit")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	prune, _ := cmd.Flags().GetDuration("prune")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, database, err := openHistory(cfg)
	if err != nil {
		return err
	}
	if store == nil {
		return fmt.Errorf("history is disabled; set history.enabled in %s", cfgFile)
	}
	defer database.Close()

	out := cmd.OutOrStdout()
	if prune > 0 {
		n, err := store.Prune(ctx, time.Now().Add(-prune))
		if err != nil {
			return fmt.Errorf("pruning history: %w", err)
		}
		fmt.Fprintf(out, "Pruned %d entr(ies)\n", n)
	}

	entries, err := store.Recent(ctx, limit)
	if err != nil {
		return fmt.Errorf("reading history: %w", err)
	}

	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "No questions recorded yet.")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tSOURCE\tQUESTION\tANSWER")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			e.CreatedAt.Local().Format("2006-01-02 15:04:05"), e.Source, clip(e.Query, 40), clip(e.Answer, 60))
	}
	return tw.Flush()
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
