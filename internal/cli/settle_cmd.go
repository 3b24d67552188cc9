package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mmynk/settleup/internal/calculator"
)

func newSettleCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "settle",
		Short: "Compute transfers for a YAML ledger",
		Example: `  settlectl settle --file trip.yaml
  cat trip.yaml | settlectl settle --file - -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ledger, err := LoadLedger(file, cmd.InOrStdin())
			if err != nil {
				return err
			}
			roster, expenses, err := ledger.Resolve()
			if err != nil {
				return err
			}

			settlement := calculator.Settle(roster, expenses)
			slog.Debug("Ledger settled",
				"participants", len(roster),
				"expenses", len(expenses),
				"transfers", len(settlement.Transfers),
			)

			names := make(map[string]string, len(roster))
			for _, p := range roster {
				names[p.ID] = p.Name
			}

			view := summaryView{
				Transfers: make([]transferView, len(settlement.Transfers)),
				Balances:  make([]balanceView, len(settlement.Balances)),
				SettledUp: settlement.SettledUp(),
			}
			for i, t := range settlement.Transfers {
				view.Transfers[i] = transferView{From: names[t.FromID], To: names[t.ToID], Amount: cents(t.Amount)}
			}
			for i, b := range settlement.Balances {
				view.Balances[i] = balanceView{Name: names[b.ParticipantID], Net: cents(b.Net)}
			}
			return printSummary(cmd.OutOrStdout(), getOutputFormat(cmd), view)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Ledger file (YAML), or - for stdin")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
