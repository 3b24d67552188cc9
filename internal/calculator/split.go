package calculator

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/settleup/internal/models"
)

var (
	ErrMissingDescription   = errors.New("description is required")
	ErrInvalidAmount        = errors.New("amount must be greater than zero")
	ErrMissingPayee         = errors.New("payee is required")
	ErrUnknownPayee         = errors.New("payee is not a participant")
	ErrNoParticipants       = errors.New("at least one participant must be selected")
	ErrUnknownParticipant   = errors.New("unknown participant")
	ErrDuplicateParticipant = errors.New("participant selected more than once")
	ErrNegativeAmount       = errors.New("split amounts cannot be negative")
	ErrUnequalTotal         = errors.New("unequal splits must add up to the total")
	ErrNegativeShare        = errors.New("shares cannot be negative")
	ErrNoShares             = errors.New("at least one share must be assigned")
	ErrMissingSplitDetail   = errors.New("split detail is required")
	ErrNonFiniteValue       = errors.New("split amounts and shares must be finite numbers")
)

// unequalTolerance is how far unequal splits may drift from the total.
var unequalTolerance = decimal.New(1, -2)

// ExpenseInput is what a caller supplies to record a new expense.
type ExpenseInput struct {
	Description    string
	TotalAmount    float64
	PayeeID        string
	ParticipantIDs []string
	Detail         models.SplitDetail
}

// NewExpense validates an expense against the current roster and computes its
// splits. The returned expense has no ID or CreatedAt; storage assigns those.
func NewExpense(in ExpenseInput, roster []models.Participant) (*models.Expense, error) {
	description := strings.TrimSpace(in.Description)
	if description == "" {
		return nil, ErrMissingDescription
	}
	if !isFinite(in.TotalAmount) || in.TotalAmount <= 0 {
		return nil, ErrInvalidAmount
	}
	if in.PayeeID == "" {
		return nil, ErrMissingPayee
	}

	names := make(map[string]string, len(roster))
	for _, p := range roster {
		names[p.ID] = p.Name
	}
	payeeName, ok := names[in.PayeeID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPayee, in.PayeeID)
	}

	splits, err := BuildSplits(in.TotalAmount, in.ParticipantIDs, in.Detail, names)
	if err != nil {
		return nil, err
	}

	return &models.Expense{
		Description: description,
		TotalAmount: in.TotalAmount,
		PayeeID:     in.PayeeID,
		PayeeName:   payeeName,
		Detail:      recordedDetail(in.Detail, splits),
		Splits:      splits,
	}, nil
}

// recordedDetail trims unequal amounts to the selected participants, with
// missing entries filled in as 0, so the detail matches the splits exactly.
func recordedDetail(detail models.SplitDetail, splits []models.ExpenseSplit) models.SplitDetail {
	if _, ok := detail.(models.UnequalSplit); !ok {
		return detail
	}
	amounts := make(map[string]float64, len(splits))
	for _, s := range splits {
		amounts[s.ParticipantID] = s.Amount
	}
	return models.UnequalSplit{Amounts: amounts}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// BuildSplits computes one split per selected participant, in selection order.
//
//   - equal: total / len(participants)
//   - unequal: the given amount (missing = 0); the sum must be within 0.01 of total
//   - proportional: share / sum(selected shares) × total
//
// names maps participant IDs to display names and doubles as the roster used
// to reject unknown IDs.
func BuildSplits(total float64, participantIDs []string, detail models.SplitDetail, names map[string]string) ([]models.ExpenseSplit, error) {
	if len(participantIDs) == 0 {
		return nil, ErrNoParticipants
	}
	if detail == nil {
		return nil, ErrMissingSplitDetail
	}
	if !isFinite(total) || total <= 0 {
		return nil, ErrInvalidAmount
	}

	seen := make(map[string]bool, len(participantIDs))
	for _, id := range participantIDs {
		if _, ok := names[id]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownParticipant, id)
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateParticipant, id)
		}
		seen[id] = true
	}

	amounts := make([]float64, len(participantIDs))

	switch d := detail.(type) {
	case models.EqualSplit:
		perPerson := total / float64(len(participantIDs))
		for i := range amounts {
			amounts[i] = perPerson
		}

	case models.UnequalSplit:
		sum := decimal.Zero
		for i, id := range participantIDs {
			amount := d.Amounts[id]
			if !isFinite(amount) {
				return nil, fmt.Errorf("%w: %s", ErrNonFiniteValue, id)
			}
			if amount < 0 {
				return nil, fmt.Errorf("%w: %s", ErrNegativeAmount, id)
			}
			amounts[i] = amount
			sum = sum.Add(decimal.NewFromFloat(amount))
		}
		if sum.Sub(decimal.NewFromFloat(total)).Abs().GreaterThan(unequalTolerance) {
			return nil, fmt.Errorf("%w: got %s, want %s", ErrUnequalTotal,
				sum.StringFixed(2), decimal.NewFromFloat(total).StringFixed(2))
		}

	case models.ProportionalSplit:
		var totalShares float64
		for _, id := range participantIDs {
			share := d.Shares[id]
			if !isFinite(share) {
				return nil, fmt.Errorf("%w: %s", ErrNonFiniteValue, id)
			}
			if share < 0 {
				return nil, fmt.Errorf("%w: %s", ErrNegativeShare, id)
			}
			totalShares += share
		}
		if !isFinite(totalShares) {
			return nil, ErrNonFiniteValue
		}
		if totalShares == 0 {
			return nil, ErrNoShares
		}
		for i, id := range participantIDs {
			amounts[i] = (d.Shares[id] / totalShares) * total
		}

	default:
		return nil, fmt.Errorf("unsupported split detail %T", detail)
	}

	splits := make([]models.ExpenseSplit, len(participantIDs))
	for i, id := range participantIDs {
		splits[i] = models.ExpenseSplit{
			ParticipantID:   id,
			ParticipantName: names[id],
			Amount:          amounts[i],
		}
	}
	return splits, nil
}
