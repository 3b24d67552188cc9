// Package api defines the wire messages of the settleup.v1 services.
//
// Messages are plain structs encoded as JSON by Codec. Field names follow
// the lowerCamelCase convention of protojson so browser clients see the same
// shapes they would from generated protobuf types.
package api

// Participant is a member of the ledger roster.
type Participant struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	CreatedAt int64  `json:"createdAt"`
}

type AddParticipantRequest struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

type AddParticipantResponse struct {
	Participant *Participant `json:"participant"`
}

// RegisterParticipantRequest adds a participant unless one with the same
// email already exists.
type RegisterParticipantRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type RegisterParticipantResponse struct {
	Participant *Participant `json:"participant"`
	// Created is false when an existing participant was returned.
	Created bool `json:"created"`
}

type ListParticipantsResponse struct {
	Participants []*Participant `json:"participants"`
}

type RemoveParticipantRequest struct {
	ParticipantID string `json:"participantId"`
}

// Split is one participant's share of an expense.
type Split struct {
	ParticipantID   string  `json:"participantId"`
	ParticipantName string  `json:"participantName"`
	Amount          float64 `json:"amount"`
}

// Expense is a recorded payment.
type Expense struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	TotalAmount float64 `json:"totalAmount"`
	PayeeID     string  `json:"payeeId"`
	PayeeName   string  `json:"payeeName"`
	// SplitType is one of "equal", "unequal", "proportional".
	SplitType string `json:"splitType"`
	// Shares holds proportional weights; empty for other split types.
	Shares    map[string]float64 `json:"shares,omitempty"`
	Splits    []*Split           `json:"splits"`
	CreatedAt int64              `json:"createdAt"`
}

type CreateExpenseRequest struct {
	Description    string   `json:"description"`
	TotalAmount    float64  `json:"totalAmount"`
	PayeeID        string   `json:"payeeId"`
	ParticipantIDs []string `json:"participantIds"`
	// SplitType defaults to "equal" when empty.
	SplitType string `json:"splitType,omitempty"`
	// Amounts is read for unequal splits.
	Amounts map[string]float64 `json:"amounts,omitempty"`
	// Shares is read for proportional splits.
	Shares map[string]float64 `json:"shares,omitempty"`
}

type CreateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type GetExpenseRequest struct {
	ExpenseID string `json:"expenseId"`
}

type GetExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type ListExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

type DeleteExpenseRequest struct {
	ExpenseID string `json:"expenseId"`
}

// Transfer is one payment that moves the group towards settled.
type Transfer struct {
	FromID   string  `json:"fromId"`
	FromName string  `json:"fromName"`
	ToID     string  `json:"toId"`
	ToName   string  `json:"toName"`
	Amount   float64 `json:"amount"`
	// DisplayAmount is Amount rounded to cents, e.g. "33.33".
	DisplayAmount string `json:"displayAmount"`
}

// Balance is a participant's standing across all expenses.
type Balance struct {
	ParticipantID string  `json:"participantId"`
	Name          string  `json:"name"`
	Net           float64 `json:"net"`
	TotalPaid     float64 `json:"totalPaid"`
	TotalOwed     float64 `json:"totalOwed"`
	DisplayNet    string  `json:"displayNet"`
}

type GetSummaryResponse struct {
	Transfers []*Transfer `json:"transfers"`
	Balances  []*Balance  `json:"balances"`
	SettledUp bool        `json:"settledUp"`
	// StaleParticipantIDs lists ids referenced by expenses but missing from
	// the roster. Their contributions are excluded from the balances.
	StaleParticipantIDs  []string `json:"staleParticipantIds,omitempty"`
	DroppedContributions int32    `json:"droppedContributions"`
}
