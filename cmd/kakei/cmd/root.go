// Package cmd provides the kakei CLI commands.
package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mnakagawa/kakei/pkg/logging"
)

var debug bool

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "kakei",
	Short: "Household finance utilities",
	Long: `kakei bundles the offline utilities of the household finance
service:

- report: summarize one month's budget record file by a chosen column
- hash-pin: generate the bcrypt PIN hash for the server configuration

Example:
  kakei report --month 202508 --group-by 分類
  kakei hash-pin 1234`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debug {
			logging.SetupWithLevel(slog.LevelDebug)
		} else {
			logging.Setup()
		}
	},
}

// Execute runs the root command. Called once from main.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(hashPINCmd)
}
