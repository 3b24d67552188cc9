// Package cli implements the settlectl command-line tool.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmynk/settleup/pkg/logging"
)

// Execute runs the root command and returns the process exit code.
func Execute() int {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:           "settlectl",
		Short:         "Settle shared expenses",
		Long:          "Command-line tools for computing who owes whom, offline or against a settleup server.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			logging.SetupWithLevel(logging.ParseLevel(logLevel))
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringP("output", "o", "text", "Output format: text or json")

	rootCmd.AddCommand(newSettleCmd())
	rootCmd.AddCommand(newCombinationsCmd())
	rootCmd.AddCommand(newSummaryCmd())

	return rootCmd
}

func getOutputFormat(cmd *cobra.Command) string {
	output, _ := cmd.Flags().GetString("output")
	return output
}
