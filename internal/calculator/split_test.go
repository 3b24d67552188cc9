package calculator

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/settleup/internal/models"
)

var testNames = map[string]string{
	"a": "Alice",
	"b": "Bob",
	"c": "Charlie",
}

func TestBuildSplits(t *testing.T) {
	tests := []struct {
		name         string
		total        float64
		participants []string
		detail       models.SplitDetail
		wantErr      error
		validateFunc func(t *testing.T, splits []models.ExpenseSplit)
	}{
		{
			name:         "equal split among three",
			total:        30,
			participants: []string{"a", "b", "c"},
			detail:       models.EqualSplit{},
			validateFunc: func(t *testing.T, splits []models.ExpenseSplit) {
				require.Len(t, splits, 3)
				for _, s := range splits {
					assert.Equal(t, 10.0, s.Amount)
				}
				assert.Equal(t, "Alice", splits[0].ParticipantName)
				assert.Equal(t, "c", splits[2].ParticipantID)
			},
		},
		{
			name:         "equal split keeps selection order",
			total:        9,
			participants: []string{"c", "a"},
			detail:       models.EqualSplit{},
			validateFunc: func(t *testing.T, splits []models.ExpenseSplit) {
				require.Len(t, splits, 2)
				assert.Equal(t, "c", splits[0].ParticipantID)
				assert.Equal(t, "a", splits[1].ParticipantID)
				assert.Equal(t, 4.5, splits[0].Amount)
			},
		},
		{
			name:         "unequal split within tolerance",
			total:        100,
			participants: []string{"a", "b"},
			detail:       models.UnequalSplit{Amounts: map[string]float64{"a": 60.005, "b": 40}},
			validateFunc: func(t *testing.T, splits []models.ExpenseSplit) {
				assert.Equal(t, 60.005, splits[0].Amount)
				assert.Equal(t, 40.0, splits[1].Amount)
			},
		},
		{
			name:         "unequal split missing amount owes nothing",
			total:        50,
			participants: []string{"a", "b"},
			detail:       models.UnequalSplit{Amounts: map[string]float64{"a": 50}},
			validateFunc: func(t *testing.T, splits []models.ExpenseSplit) {
				assert.Equal(t, 0.0, splits[1].Amount)
			},
		},
		{
			name:         "unequal split not adding up",
			total:        100,
			participants: []string{"a", "b"},
			detail:       models.UnequalSplit{Amounts: map[string]float64{"a": 50, "b": 49.98}},
			wantErr:      ErrUnequalTotal,
		},
		{
			name:         "unequal negative amount",
			total:        10,
			participants: []string{"a", "b"},
			detail:       models.UnequalSplit{Amounts: map[string]float64{"a": 20, "b": -10}},
			wantErr:      ErrNegativeAmount,
		},
		{
			name:         "proportional ignores shares of unselected",
			total:        100,
			participants: []string{"b", "c"},
			detail:       models.ProportionalSplit{Shares: map[string]float64{"a": 0, "b": 1, "c": 3}},
			validateFunc: func(t *testing.T, splits []models.ExpenseSplit) {
				require.Len(t, splits, 2)
				assert.Equal(t, 25.0, splits[0].Amount)
				assert.Equal(t, 75.0, splits[1].Amount)
			},
		},
		{
			name:         "proportional zero share still listed",
			total:        10,
			participants: []string{"a", "b"},
			detail:       models.ProportionalSplit{Shares: map[string]float64{"b": 2}},
			validateFunc: func(t *testing.T, splits []models.ExpenseSplit) {
				require.Len(t, splits, 2)
				assert.Equal(t, 0.0, splits[0].Amount)
				assert.Equal(t, 10.0, splits[1].Amount)
			},
		},
		{
			name:         "proportional without shares",
			total:        10,
			participants: []string{"a", "b"},
			detail:       models.ProportionalSplit{Shares: map[string]float64{"c": 5}},
			wantErr:      ErrNoShares,
		},
		{
			name:         "proportional negative share",
			total:        10,
			participants: []string{"a", "b"},
			detail:       models.ProportionalSplit{Shares: map[string]float64{"a": 2, "b": -1}},
			wantErr:      ErrNegativeShare,
		},
		{
			name:         "no participants",
			total:        10,
			participants: nil,
			detail:       models.EqualSplit{},
			wantErr:      ErrNoParticipants,
		},
		{
			name:         "unknown participant",
			total:        10,
			participants: []string{"a", "zed"},
			detail:       models.EqualSplit{},
			wantErr:      ErrUnknownParticipant,
		},
		{
			name:         "duplicate participant",
			total:        10,
			participants: []string{"a", "a"},
			detail:       models.EqualSplit{},
			wantErr:      ErrDuplicateParticipant,
		},
		{
			name:         "NaN total",
			total:        math.NaN(),
			participants: []string{"a", "b"},
			detail:       models.EqualSplit{},
			wantErr:      ErrInvalidAmount,
		},
		{
			name:         "infinite total with unequal split",
			total:        math.Inf(1),
			participants: []string{"a", "b"},
			detail:       models.UnequalSplit{Amounts: map[string]float64{"a": 1, "b": 1}},
			wantErr:      ErrInvalidAmount,
		},
		{
			name:         "infinite unequal amount",
			total:        10,
			participants: []string{"a", "b"},
			detail:       models.UnequalSplit{Amounts: map[string]float64{"a": math.Inf(1), "b": 1}},
			wantErr:      ErrNonFiniteValue,
		},
		{
			name:         "NaN unequal amount",
			total:        10,
			participants: []string{"a", "b"},
			detail:       models.UnequalSplit{Amounts: map[string]float64{"a": 10, "b": math.NaN()}},
			wantErr:      ErrNonFiniteValue,
		},
		{
			name:         "NaN share",
			total:        10,
			participants: []string{"a", "b"},
			detail:       models.ProportionalSplit{Shares: map[string]float64{"a": math.NaN(), "b": 1}},
			wantErr:      ErrNonFiniteValue,
		},
		{
			name:         "shares overflowing to infinity",
			total:        10,
			participants: []string{"a", "b"},
			detail:       models.ProportionalSplit{Shares: map[string]float64{"a": math.MaxFloat64, "b": math.MaxFloat64}},
			wantErr:      ErrNonFiniteValue,
		},
		{
			name:         "missing detail",
			total:        10,
			participants: []string{"a"},
			wantErr:      ErrMissingSplitDetail,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			splits, err := BuildSplits(tt.total, tt.participants, tt.detail, testNames)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			if tt.validateFunc != nil {
				tt.validateFunc(t, splits)
			}
		})
	}
}

func TestNewExpense(t *testing.T) {
	roster := []models.Participant{
		{ID: "a", Name: "Alice"},
		{ID: "b", Name: "Bob"},
	}

	t.Run("valid expense snapshots names", func(t *testing.T) {
		expense, err := NewExpense(ExpenseInput{
			Description:    "  Groceries ",
			TotalAmount:    40,
			PayeeID:        "b",
			ParticipantIDs: []string{"a", "b"},
			Detail:         models.EqualSplit{},
		}, roster)
		require.NoError(t, err)

		assert.Equal(t, "Groceries", expense.Description)
		assert.Equal(t, "Bob", expense.PayeeName)
		assert.Equal(t, models.SplitEqual, expense.SplitType())
		assert.Equal(t, []string{"a", "b"}, expense.ParticipantIDs())
		assert.Empty(t, expense.ID)
	})

	t.Run("unequal detail is trimmed to selected participants", func(t *testing.T) {
		expense, err := NewExpense(ExpenseInput{
			Description:    "Taxi",
			TotalAmount:    40,
			PayeeID:        "a",
			ParticipantIDs: []string{"a", "b"},
			Detail:         models.UnequalSplit{Amounts: map[string]float64{"a": 40, "c": 15}},
		}, roster)
		require.NoError(t, err)

		assert.Equal(t, models.UnequalSplit{Amounts: map[string]float64{"a": 40, "b": 0}}, expense.Detail)
	})

	invalid := []struct {
		name    string
		in      ExpenseInput
		wantErr error
	}{
		{"blank description", ExpenseInput{Description: " ", TotalAmount: 1, PayeeID: "a", ParticipantIDs: []string{"a"}, Detail: models.EqualSplit{}}, ErrMissingDescription},
		{"zero amount", ExpenseInput{Description: "x", TotalAmount: 0, PayeeID: "a", ParticipantIDs: []string{"a"}, Detail: models.EqualSplit{}}, ErrInvalidAmount},
		{"NaN amount", ExpenseInput{Description: "x", TotalAmount: math.NaN(), PayeeID: "a", ParticipantIDs: []string{"a"}, Detail: models.EqualSplit{}}, ErrInvalidAmount},
		{"infinite amount", ExpenseInput{Description: "x", TotalAmount: math.Inf(1), PayeeID: "a", ParticipantIDs: []string{"a", "b"}, Detail: models.UnequalSplit{Amounts: map[string]float64{"a": 1}}}, ErrInvalidAmount},
		{"negative amount", ExpenseInput{Description: "x", TotalAmount: -5, PayeeID: "a", ParticipantIDs: []string{"a"}, Detail: models.EqualSplit{}}, ErrInvalidAmount},
		{"no payee", ExpenseInput{Description: "x", TotalAmount: 1, ParticipantIDs: []string{"a"}, Detail: models.EqualSplit{}}, ErrMissingPayee},
		{"unknown payee", ExpenseInput{Description: "x", TotalAmount: 1, PayeeID: "z", ParticipantIDs: []string{"a"}, Detail: models.EqualSplit{}}, ErrUnknownPayee},
		{"no participants", ExpenseInput{Description: "x", TotalAmount: 1, PayeeID: "a", Detail: models.EqualSplit{}}, ErrNoParticipants},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewExpense(tt.in, roster)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
