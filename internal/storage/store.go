// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/settleup/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when a participant email is already registered.
var ErrEmailExists = errors.New("email already registered")

// Store defines the interface for ledger storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// AddParticipant persists a new participant.
	// The ID and CreatedAt fields are populated by the store when empty.
	AddParticipant(ctx context.Context, participant *models.Participant) error

	// GetParticipant retrieves a participant by ID.
	// Returns an error wrapping ErrNotFound if missing.
	GetParticipant(ctx context.Context, participantID string) (*models.Participant, error)

	// GetParticipantByEmail retrieves a participant by normalized email.
	// Returns an error wrapping ErrNotFound if missing.
	GetParticipantByEmail(ctx context.Context, email string) (*models.Participant, error)

	// ListParticipants returns the active roster in the order participants
	// were added. Settlement results depend on this order.
	ListParticipants(ctx context.Context) ([]models.Participant, error)

	// RemoveParticipant deletes a participant. Expenses that reference the
	// participant are left untouched.
	RemoveParticipant(ctx context.Context, participantID string) error

	// CreateExpense persists a new expense with its splits.
	// The ID and CreatedAt fields are populated by the store when empty.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense by ID, including splits and detail.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// ListExpenses returns all expenses in the order they were recorded.
	ListExpenses(ctx context.Context) ([]models.Expense, error)

	// DeleteExpense removes an expense and its splits.
	DeleteExpense(ctx context.Context, expenseID string) error

	// Close releases any resources held by the store.
	Close() error
}
