package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

// summaryView is the shape printed by both `settle` and `summary`.
type summaryView struct {
	Transfers            []transferView `json:"transfers"`
	Balances             []balanceView  `json:"balances"`
	SettledUp            bool           `json:"settled_up"`
	StaleParticipantIDs  []string       `json:"stale_participant_ids,omitempty"`
	DroppedContributions int            `json:"dropped_contributions,omitempty"`
}

type transferView struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

type balanceView struct {
	Name string          `json:"name"`
	Net  decimal.Decimal `json:"net"`
}

func cents(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

func printSummary(w io.Writer, format string, view summaryView) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	}

	if view.SettledUp {
		fmt.Fprintln(w, "All settled up.")
	} else {
		for _, t := range view.Transfers {
			fmt.Fprintf(w, "%s pays %s %s\n", t.From, t.To, t.Amount.StringFixed(2))
		}
	}
	if len(view.StaleParticipantIDs) > 0 {
		fmt.Fprintf(w, "Warning: %d contributions from removed participants were ignored\n", view.DroppedContributions)
	}
	return nil
}
