package models

import "fmt"

// SplitType names the method used to divide an expense.
type SplitType string

const (
	SplitEqual        SplitType = "equal"
	SplitUnequal      SplitType = "unequal"
	SplitProportional SplitType = "proportional"
)

// ParseSplitType converts a wire or config string to a SplitType.
func ParseSplitType(s string) (SplitType, error) {
	switch SplitType(s) {
	case SplitEqual, SplitUnequal, SplitProportional:
		return SplitType(s), nil
	default:
		return "", fmt.Errorf("unknown split type: %q", s)
	}
}

// SplitDetail describes how an expense's splits were derived.
// The set of implementations is closed: EqualSplit, UnequalSplit and
// ProportionalSplit.
type SplitDetail interface {
	SplitType() SplitType
	sealed()
}

// EqualSplit divides the total evenly among the selected participants.
type EqualSplit struct{}

// UnequalSplit assigns an explicit amount to each selected participant.
// Participants missing from Amounts owe nothing. Recorded expenses carry
// exactly one entry per selected participant.
type UnequalSplit struct {
	Amounts map[string]float64
}

// ProportionalSplit divides the total by positive weights.
// Shares may include participants that were not selected; only the shares
// of selected participants count towards the total weight.
type ProportionalSplit struct {
	Shares map[string]float64
}

func (EqualSplit) SplitType() SplitType        { return SplitEqual }
func (UnequalSplit) SplitType() SplitType      { return SplitUnequal }
func (ProportionalSplit) SplitType() SplitType { return SplitProportional }

func (EqualSplit) sealed()        {}
func (UnequalSplit) sealed()      {}
func (ProportionalSplit) sealed() {}

// ExpenseSplit records how much of one expense a participant owes.
type ExpenseSplit struct {
	ParticipantID string

	// ParticipantName is the participant's name when the expense was created.
	ParticipantName string

	Amount float64
}

// Expense is an immutable record of one payment and how it is shared.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// Description is the human-readable label (e.g., "Dinner").
	Description string

	// TotalAmount is the full amount advanced by the payee, in currency units.
	TotalAmount float64

	// PayeeID is the participant who paid.
	PayeeID string

	// PayeeName is the payee's name when the expense was created.
	PayeeName string

	// Detail records the split method and its inputs.
	Detail SplitDetail

	// Splits holds one entry per involved participant, in selection order.
	Splits []ExpenseSplit

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}

// SplitType returns the split method of the expense, defaulting to equal
// when no detail was recorded.
func (e *Expense) SplitType() SplitType {
	if e.Detail == nil {
		return SplitEqual
	}
	return e.Detail.SplitType()
}

// ParticipantIDs returns the IDs of all split participants in order.
func (e *Expense) ParticipantIDs() []string {
	ids := make([]string, len(e.Splits))
	for i, s := range e.Splits {
		ids[i] = s.ParticipantID
	}
	return ids
}
