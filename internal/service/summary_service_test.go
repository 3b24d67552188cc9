package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/settleup/pkg/api"
)

func TestGetSummary_Empty(t *testing.T) {
	c := setupTestServer(t)

	summary := getSummary(t, c)
	assert.True(t, summary.SettledUp)
	assert.Empty(t, summary.Transfers)
	assert.Empty(t, summary.Balances)
	assert.Zero(t, summary.DroppedContributions)
}

func TestGetSummary_DinnerSplitEqually(t *testing.T) {
	c := setupTestServer(t)
	alice := addParticipant(t, c, "Alice")
	bob := addParticipant(t, c, "Bob")
	charlie := addParticipant(t, c, "Charlie")

	_, err := c.expenses.CreateExpense(context.Background(), connect.NewRequest(&api.CreateExpenseRequest{
		Description:    "Dinner",
		TotalAmount:    100,
		PayeeID:        alice,
		ParticipantIDs: []string{alice, bob, charlie},
	}))
	require.NoError(t, err)

	summary := getSummary(t, c)
	assert.False(t, summary.SettledUp)
	require.Len(t, summary.Transfers, 2)

	first := summary.Transfers[0]
	assert.Equal(t, bob, first.FromID)
	assert.Equal(t, "Bob", first.FromName)
	assert.Equal(t, alice, first.ToID)
	assert.Equal(t, "Alice", first.ToName)
	assert.InDelta(t, 100.0/3, first.Amount, 1e-9)
	assert.Equal(t, "33.33", first.DisplayAmount)

	assert.Equal(t, charlie, summary.Transfers[1].FromID)

	require.Len(t, summary.Balances, 3)
	assert.Equal(t, "66.67", summary.Balances[0].DisplayNet)
	assert.Equal(t, 100.0, summary.Balances[0].TotalPaid)
}

func TestGetSummary_RemovedParticipantIsDropped(t *testing.T) {
	c := setupTestServer(t)
	ctx := context.Background()
	alice := addParticipant(t, c, "Alice")
	bob := addParticipant(t, c, "Bob")

	_, err := c.expenses.CreateExpense(ctx, connect.NewRequest(&api.CreateExpenseRequest{
		Description:    "Taxi",
		TotalAmount:    20,
		PayeeID:        alice,
		ParticipantIDs: []string{alice, bob},
	}))
	require.NoError(t, err)

	_, err = c.participants.RemoveParticipant(ctx, connect.NewRequest(&api.RemoveParticipantRequest{ParticipantID: bob}))
	require.NoError(t, err)

	summary := getSummary(t, c)
	// Alice is still credited the full 20 while only her own 10 is debited,
	// and nobody remains to pay her.
	assert.True(t, summary.SettledUp)
	assert.Equal(t, []string{bob}, summary.StaleParticipantIDs)
	assert.Equal(t, int32(1), summary.DroppedContributions)
	require.Len(t, summary.Balances, 1)
	assert.InDelta(t, 10.0, summary.Balances[0].Net, 1e-9)
}
