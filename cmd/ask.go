package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/robobook/internal/widget"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the chat API one question",
	Long:  `Sends the question to chat.api_url exactly as the site's chat widget does and prints the answer.`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().String("api-url", "", "chat API base URL (overrides chat.api_url)")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if u, _ := cmd.Flags().GetString("api-url"); u != "" {
		cfg.Chat.APIURL = u
	}

	client, err := newChatClient(cfg)
	if err != nil {
		return err
	}
	w := widget.New(client, widget.WithLogger(logger))
	defer w.Dispose()

	w.ToggleOpen()
	w.UpdateQuery(strings.Join(args, " "))
	if err := w.Submit(cmd.Context()); err != nil {
		return err
	}

	s := w.Snapshot()
	fmt.Fprintln(cmd.OutOrStdout(), s.Answer)
	if s.State == widget.StateErrored {
		return fmt.Errorf("chat api at %s is unreachable", client.BaseURL())
	}
	return nil
}
