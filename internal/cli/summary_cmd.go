package cli

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/mmynk/settleup/pkg/api/apiconnect"
)

const defaultHost = "http://localhost:8080"

func newSummaryCmd() *cobra.Command {
	var (
		host    string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Fetch the current settlement from a settleup server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("host") {
				if env := os.Getenv("SETTLEUP_HOST"); env != "" {
					host = env
				}
			}

			client := apiconnect.NewSummaryServiceClient(&http.Client{Timeout: timeout}, host)
			resp, err := client.GetSummary(cmd.Context(), connect.NewRequest(&emptypb.Empty{}))
			if err != nil {
				return fmt.Errorf("failed to get summary from %s: %w", host, err)
			}

			msg := resp.Msg
			view := summaryView{
				Transfers:            make([]transferView, len(msg.Transfers)),
				Balances:             make([]balanceView, len(msg.Balances)),
				SettledUp:            msg.SettledUp,
				StaleParticipantIDs:  msg.StaleParticipantIDs,
				DroppedContributions: int(msg.DroppedContributions),
			}
			for i, t := range msg.Transfers {
				view.Transfers[i] = transferView{From: t.FromName, To: t.ToName, Amount: cents(t.Amount)}
			}
			for i, b := range msg.Balances {
				view.Balances[i] = balanceView{Name: b.Name, Net: cents(b.Net)}
			}
			return printSummary(cmd.OutOrStdout(), getOutputFormat(cmd), view)
		},
	}

	cmd.Flags().StringVar(&host, "host", defaultHost, "Server URL (env: SETTLEUP_HOST)")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	return cmd
}
