package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/robobook/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize robobook configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure robobook for your book and writes robobook.yml.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := config.RunWizard(cfgFile); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Next: run `robobook index`, then `robobook serve`.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
