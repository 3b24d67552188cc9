package calculator

import (
	"sort"

	"github.com/mmynk/settleup/internal/models"
)

// Transfer is a computed payment: FromID owes ToID Amount.
type Transfer struct {
	FromID string
	ToID   string
	Amount float64
}

// Balance is one participant's position across all expenses.
type Balance struct {
	ParticipantID string
	Net           float64 // Positive = is owed money, Negative = owes money
	TotalPaid     float64 // Sum of expense totals this participant advanced
	TotalOwed     float64 // Sum of this participant's splits
}

// Settlement is the full result of a settlement run.
type Settlement struct {
	// Transfers settles every balance, ordered by debtor then creditor
	// roster position.
	Transfers []Transfer

	// Balances has one entry per participant, in roster order.
	Balances []Balance

	// DroppedContributions counts payee credits and split debits that
	// referenced a participant missing from the roster. Each reference counts
	// once, whatever its amount.
	DroppedContributions int

	// StaleParticipantIDs lists the missing participant IDs, sorted.
	StaleParticipantIDs []string
}

// SettledUp reports whether no transfers are needed.
func (s Settlement) SettledUp() bool {
	return len(s.Transfers) == 0
}

// ComputeSettlement returns the transfers that settle all balances between
// participants. See Settle.
func ComputeSettlement(participants []models.Participant, expenses []models.Expense) []Transfer {
	return Settle(participants, expenses).Transfers
}

// Settle computes net balances and a greedy set of transfers.
//
// Algorithm:
//   - Each expense credits its payee the full total and debits every split
//     participant their split (the payee's own split nets out)
//   - Contributions of IDs missing from participants are dropped; the rest of
//     that expense still applies
//   - Debtors and creditors keep roster order; zero balances are skipped
//   - Each debtor pays creditors in order from a shared pool of remaining
//     credit, min(remaining debt, remaining credit) per pair
//
// The result depends on participant order but not on expense order. It is a
// deterministic simplification, not a minimum-transfer solver.
func Settle(participants []models.Participant, expenses []models.Expense) Settlement {
	index := models.ParticipantIndex(participants)

	balances := make([]Balance, len(participants))
	for i, p := range participants {
		balances[i].ParticipantID = p.ID
	}

	stale := make(map[string]bool)
	dropped := 0

	for _, expense := range expenses {
		if i, ok := index[expense.PayeeID]; ok {
			balances[i].Net += expense.TotalAmount
			balances[i].TotalPaid += expense.TotalAmount
		} else {
			stale[expense.PayeeID] = true
			dropped++
		}

		for _, split := range expense.Splits {
			if i, ok := index[split.ParticipantID]; ok {
				balances[i].Net -= split.Amount
				balances[i].TotalOwed += split.Amount
			} else {
				stale[split.ParticipantID] = true
				dropped++
			}
		}
	}

	staleIDs := make([]string, 0, len(stale))
	for id := range stale {
		staleIDs = append(staleIDs, id)
	}
	sort.Strings(staleIDs)

	return Settlement{
		Transfers:            matchDebts(balances),
		Balances:             balances,
		DroppedContributions: dropped,
		StaleParticipantIDs:  staleIDs,
	}
}

// position is a debtor's debt or a creditor's credit, as a positive amount.
type position struct {
	id     string
	amount float64
}

// matchDebts pairs debtors with creditors greedily in balance order.
func matchDebts(balances []Balance) []Transfer {
	var debtors, creditors []position
	for _, b := range balances {
		if b.Net < 0 {
			debtors = append(debtors, position{id: b.ParticipantID, amount: -b.Net})
		} else if b.Net > 0 {
			creditors = append(creditors, position{id: b.ParticipantID, amount: b.Net})
		}
	}

	// Remaining credit is consumed across debtors, never reset.
	credit := make([]float64, len(creditors))
	for j, c := range creditors {
		credit[j] = c.amount
	}

	var transfers []Transfer
	for _, debtor := range debtors {
		remaining := debtor.amount
		for j, creditor := range creditors {
			if remaining > 0 && credit[j] > 0 {
				amount := min(remaining, credit[j])
				transfers = append(transfers, Transfer{
					FromID: debtor.id,
					ToID:   creditor.id,
					Amount: amount,
				})
				remaining -= amount
				credit[j] -= amount
			}
		}
	}

	result := make([]Transfer, 0, len(transfers))
	for _, t := range transfers {
		if t.Amount > 0 {
			result = append(result, t)
		}
	}
	return result
}
