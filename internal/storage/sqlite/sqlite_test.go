package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "nested", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore_Participants(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("AddParticipant generates ID and timestamp", func(t *testing.T) {
		p := &models.Participant{Name: "Alice", Email: "  Alice@Example.com "}
		require.NoError(t, store.AddParticipant(ctx, p))

		assert.NotEmpty(t, p.ID)
		assert.NotZero(t, p.CreatedAt)
		assert.Equal(t, "alice@example.com", p.Email)

		got, err := store.GetParticipant(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, p, got)
	})

	t.Run("GetParticipantByEmail is case-insensitive", func(t *testing.T) {
		got, err := store.GetParticipantByEmail(ctx, "ALICE@example.COM")
		require.NoError(t, err)
		assert.Equal(t, "Alice", got.Name)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		err := store.AddParticipant(ctx, &models.Participant{Name: "Other", Email: "alice@example.com"})
		assert.ErrorIs(t, err, storage.ErrEmailExists)
	})

	t.Run("participants without email do not collide", func(t *testing.T) {
		require.NoError(t, store.AddParticipant(ctx, &models.Participant{Name: "Bob"}))
		require.NoError(t, store.AddParticipant(ctx, &models.Participant{Name: "Charlie"}))
	})

	t.Run("ListParticipants keeps insertion order", func(t *testing.T) {
		list, err := store.ListParticipants(ctx)
		require.NoError(t, err)
		names := make([]string, len(list))
		for i, p := range list {
			names[i] = p.Name
		}
		assert.Equal(t, []string{"Alice", "Bob", "Charlie"}, names)
	})

	t.Run("missing participant returns ErrNotFound", func(t *testing.T) {
		_, err := store.GetParticipant(ctx, "nope")
		assert.ErrorIs(t, err, storage.ErrNotFound)
		_, err = store.GetParticipantByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, storage.ErrNotFound)
		assert.ErrorIs(t, store.RemoveParticipant(ctx, "nope"), storage.ErrNotFound)
	})
}

func TestSQLiteStore_Expenses(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateExpense round-trips an equal split", func(t *testing.T) {
		expense := &models.Expense{
			Description: "Dinner",
			TotalAmount: 90,
			PayeeID:     "a",
			PayeeName:   "Alice",
			Detail:      models.EqualSplit{},
			Splits: []models.ExpenseSplit{
				{ParticipantID: "c", ParticipantName: "Charlie", Amount: 30},
				{ParticipantID: "a", ParticipantName: "Alice", Amount: 30},
				{ParticipantID: "b", ParticipantName: "Bob", Amount: 30},
			},
		}
		require.NoError(t, store.CreateExpense(ctx, expense))
		assert.NotEmpty(t, expense.ID)
		assert.NotZero(t, expense.CreatedAt)

		got, err := store.GetExpense(ctx, expense.ID)
		require.NoError(t, err)
		assert.Equal(t, expense, got)
	})

	t.Run("unequal and proportional details are restored", func(t *testing.T) {
		unequal := &models.Expense{
			Description: "Groceries",
			TotalAmount: 50,
			PayeeID:     "b",
			PayeeName:   "Bob",
			Detail:      models.UnequalSplit{Amounts: map[string]float64{"a": 20, "b": 30}},
			Splits: []models.ExpenseSplit{
				{ParticipantID: "a", ParticipantName: "Alice", Amount: 20},
				{ParticipantID: "b", ParticipantName: "Bob", Amount: 30},
			},
		}
		require.NoError(t, store.CreateExpense(ctx, unequal))

		proportional := &models.Expense{
			Description: "Rent",
			TotalAmount: 300,
			PayeeID:     "a",
			PayeeName:   "Alice",
			Detail:      models.ProportionalSplit{Shares: map[string]float64{"a": 2, "b": 1}},
			Splits: []models.ExpenseSplit{
				{ParticipantID: "a", ParticipantName: "Alice", Amount: 200},
				{ParticipantID: "b", ParticipantName: "Bob", Amount: 100},
			},
		}
		require.NoError(t, store.CreateExpense(ctx, proportional))

		got, err := store.GetExpense(ctx, unequal.ID)
		require.NoError(t, err)
		assert.Equal(t, unequal.Detail, got.Detail)

		got, err = store.GetExpense(ctx, proportional.ID)
		require.NoError(t, err)
		assert.Equal(t, proportional.Detail, got.Detail)
	})

	t.Run("ListExpenses returns recording order", func(t *testing.T) {
		list, err := store.ListExpenses(ctx)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, "Dinner", list[0].Description)
		assert.Equal(t, "Groceries", list[1].Description)
		assert.Equal(t, "Rent", list[2].Description)
		assert.Equal(t, "c", list[0].Splits[0].ParticipantID)
		assert.Equal(t, models.SplitProportional, list[2].SplitType())
	})

	t.Run("DeleteExpense removes expense and splits", func(t *testing.T) {
		list, err := store.ListExpenses(ctx)
		require.NoError(t, err)
		id := list[0].ID

		require.NoError(t, store.DeleteExpense(ctx, id))
		_, err = store.GetExpense(ctx, id)
		assert.ErrorIs(t, err, storage.ErrNotFound)
		assert.ErrorIs(t, store.DeleteExpense(ctx, id), storage.ErrNotFound)

		var orphans int
		require.NoError(t, store.db.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM expense_splits WHERE expense_id = ?", id).Scan(&orphans))
		assert.Zero(t, orphans)
	})
}

func TestSQLiteStore_RemoveParticipantKeepsExpenses(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	alice := &models.Participant{Name: "Alice"}
	bob := &models.Participant{Name: "Bob"}
	require.NoError(t, store.AddParticipant(ctx, alice))
	require.NoError(t, store.AddParticipant(ctx, bob))

	expense := &models.Expense{
		Description: "Taxi",
		TotalAmount: 20,
		PayeeID:     alice.ID,
		PayeeName:   "Alice",
		Detail:      models.EqualSplit{},
		Splits: []models.ExpenseSplit{
			{ParticipantID: alice.ID, ParticipantName: "Alice", Amount: 10},
			{ParticipantID: bob.ID, ParticipantName: "Bob", Amount: 10},
		},
	}
	require.NoError(t, store.CreateExpense(ctx, expense))

	require.NoError(t, store.RemoveParticipant(ctx, bob.ID))

	got, err := store.GetExpense(ctx, expense.ID)
	require.NoError(t, err)
	assert.Equal(t, bob.ID, got.Splits[1].ParticipantID)

	roster, err := store.ListParticipants(ctx)
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, alice.ID, roster[0].ID)
}

func TestSQLiteStore_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.db")
	ctx := context.Background()

	store, err := New(path)
	require.NoError(t, err)
	require.NoError(t, store.AddParticipant(ctx, &models.Participant{Name: "Alice"}))
	require.NoError(t, store.Close())

	store, err = New(path)
	require.NoError(t, err)
	defer store.Close()

	roster, err := store.ListParticipants(ctx)
	require.NoError(t, err)
	assert.Len(t, roster, 1)
}
