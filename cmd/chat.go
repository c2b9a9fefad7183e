package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/robobook/internal/progress"
	"github.com/ziadkadry99/robobook/internal/widget"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the book from the terminal",
	Long: `Opens a terminal version of the site's chat widget against chat.api_url.
Press Enter to ask. Type /close to hide the panel, /open to show it again and
/quit to leave.`,
	RunE: runChat,
}

func init() {
	chatCmd.Flags().String("api-url", "", "chat API base URL (overrides chat.api_url)")
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, args []string) error {
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

	w := widget.New(client, widget.WithLogger(logger), widget.WithOnChange(func(s widget.Snapshot) {
		logger.Debug("widget state", zap.String("state", string(s.State)), zap.Bool("loading", s.Loading))
	}))
	defer w.Dispose()
	w.ToggleOpen()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "🤖 Robotics Chatbot (%s). Type /quit to leave.\n", client.BaseURL())

	for {
		label := "Ask about humanoid robotics"
		if w.State() == widget.StateClosed {
			label = "Chat closed (/open)"
		}
		line, err := (&promptui.Prompt{Label: label}).Run()
		if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) || errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading question: %w", err)
		}

		switch strings.TrimSpace(line) {
		case "/quit", "/exit":
			return nil
		case "/open":
			if w.State() == widget.StateClosed {
				w.ToggleOpen()
			}
			printAnswer(out, w.Snapshot())
			continue
		case "/close":
			w.Close()
			continue
		}

		if w.State() == widget.StateClosed {
			fmt.Fprintln(out, "The chat is closed. Type /open first.")
			continue
		}
		if err := ask(cmd.Context(), w, line); err != nil {
			if errors.Is(err, widget.ErrEmptyQuery) {
				continue
			}
			return err
		}
		printAnswer(out, w.Snapshot())
	}
}

// ask commits line the way the widget's input does on Enter.
func ask(ctx context.Context, w *widget.Widget, line string) error {
	w.UpdateQuery(line)
	spinner := progress.StartSpinner(os.Stderr, "Thinking...")
	defer spinner.Stop()
	return w.KeyPress(ctx, widget.CommitKey)
}

func printAnswer(out io.Writer, s widget.Snapshot) {
	if s.Answer == "" {
		return
	}
	fmt.Fprintf(out, "Answer: %s\n", s.Answer)
}
