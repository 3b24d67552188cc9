package service

import (
	"errors"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/settleup/internal/calculator"
	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/storage"
	"github.com/mmynk/settleup/pkg/api"
)

// connectError maps domain and storage errors to Connect codes.
func connectError(err error) *connect.Error {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, storage.ErrEmailExists):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case isValidationError(err):
		return connect.NewError(connect.CodeInvalidArgument, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

var validationErrors = []error{
	calculator.ErrMissingDescription,
	calculator.ErrInvalidAmount,
	calculator.ErrMissingPayee,
	calculator.ErrUnknownPayee,
	calculator.ErrNoParticipants,
	calculator.ErrUnknownParticipant,
	calculator.ErrDuplicateParticipant,
	calculator.ErrNegativeAmount,
	calculator.ErrUnequalTotal,
	calculator.ErrNegativeShare,
	calculator.ErrNoShares,
	calculator.ErrMissingSplitDetail,
	calculator.ErrNonFiniteValue,
}

func isValidationError(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func toAPIParticipant(p *models.Participant) *api.Participant {
	return &api.Participant{
		ID:        p.ID,
		Name:      p.Name,
		Email:     p.Email,
		CreatedAt: p.CreatedAt,
	}
}

func toAPIExpense(e *models.Expense) *api.Expense {
	splits := make([]*api.Split, len(e.Splits))
	for i, s := range e.Splits {
		splits[i] = &api.Split{
			ParticipantID:   s.ParticipantID,
			ParticipantName: s.ParticipantName,
			Amount:          s.Amount,
		}
	}

	out := &api.Expense{
		ID:          e.ID,
		Description: e.Description,
		TotalAmount: e.TotalAmount,
		PayeeID:     e.PayeeID,
		PayeeName:   e.PayeeName,
		SplitType:   string(e.SplitType()),
		Splits:      splits,
		CreatedAt:   e.CreatedAt,
	}
	if d, ok := e.Detail.(models.ProportionalSplit); ok {
		out.Shares = d.Shares
	}
	return out
}

// splitDetail converts the request's split fields to a models.SplitDetail.
// An empty split type means equal.
func splitDetail(req *api.CreateExpenseRequest) (models.SplitDetail, error) {
	if req.SplitType == "" {
		return models.EqualSplit{}, nil
	}
	splitType, err := models.ParseSplitType(req.SplitType)
	if err != nil {
		return nil, err
	}

	switch splitType {
	case models.SplitUnequal:
		return models.UnequalSplit{Amounts: req.Amounts}, nil
	case models.SplitProportional:
		return models.ProportionalSplit{Shares: req.Shares}, nil
	default:
		return models.EqualSplit{}, nil
	}
}

// displayAmount rounds to cents for presentation. Engine values stay unrounded.
func displayAmount(amount float64) string {
	return decimal.NewFromFloat(amount).StringFixed(2)
}
