package cli

import (
	"github.com/spf13/cobra"

	"github.com/mmynk/settleup/internal/combinatorics"
)

func newCombinationsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "combinations",
		Short: "Count selections with repetition, C(N+K-1, K) mod 10^9",
		Long: `Reads a test count T from stdin followed by N and K on separate lines for
each case, and prints one count per line.`,
		Example: `  printf '2\n4\n1\n2\n3\n' | settlectl combinations`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return combinatorics.Run(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
