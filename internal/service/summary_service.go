package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/mmynk/settleup/internal/calculator"
	"github.com/mmynk/settleup/internal/metrics"
	"github.com/mmynk/settleup/internal/storage"
	"github.com/mmynk/settleup/pkg/api"
	"github.com/mmynk/settleup/pkg/api/apiconnect"
)

// SummaryService implements the Connect SummaryService
type SummaryService struct {
	apiconnect.UnimplementedSummaryServiceHandler
	store   storage.Store
	metrics *metrics.Metrics
}

// NewSummaryService creates a new SummaryService. m may be nil.
func NewSummaryService(store storage.Store, m *metrics.Metrics) *SummaryService {
	return &SummaryService{store: store, metrics: m}
}

// GetSummary settles the current roster against every recorded expense.
func (s *SummaryService) GetSummary(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[api.GetSummaryResponse], error) {
	roster, err := s.store.ListParticipants(ctx)
	if err != nil {
		slog.Error("GetSummary failed to load roster", "error", err)
		return nil, connectError(err)
	}
	expenses, err := s.store.ListExpenses(ctx)
	if err != nil {
		slog.Error("GetSummary failed to load expenses", "error", err)
		return nil, connectError(err)
	}

	settlement := calculator.Settle(roster, expenses)

	if s.metrics != nil {
		s.metrics.ObserveSettlement(len(settlement.Transfers), settlement.DroppedContributions, len(settlement.StaleParticipantIDs))
	}
	if len(settlement.StaleParticipantIDs) > 0 {
		slog.Warn("Expenses reference removed participants",
			"stale_ids", settlement.StaleParticipantIDs,
			"dropped_contributions", settlement.DroppedContributions,
		)
	}

	names := make(map[string]string, len(roster))
	for _, p := range roster {
		names[p.ID] = p.Name
	}

	transfers := make([]*api.Transfer, len(settlement.Transfers))
	for i, t := range settlement.Transfers {
		transfers[i] = &api.Transfer{
			FromID:        t.FromID,
			FromName:      names[t.FromID],
			ToID:          t.ToID,
			ToName:        names[t.ToID],
			Amount:        t.Amount,
			DisplayAmount: displayAmount(t.Amount),
		}
	}

	balances := make([]*api.Balance, len(settlement.Balances))
	for i, b := range settlement.Balances {
		balances[i] = &api.Balance{
			ParticipantID: b.ParticipantID,
			Name:          names[b.ParticipantID],
			Net:           b.Net,
			TotalPaid:     b.TotalPaid,
			TotalOwed:     b.TotalOwed,
			DisplayNet:    displayAmount(b.Net),
		}
	}

	slog.Info("GetSummary successful",
		"participants", len(roster),
		"expenses", len(expenses),
		"transfers", len(transfers),
	)

	return connect.NewResponse(&api.GetSummaryResponse{
		Transfers:            transfers,
		Balances:             balances,
		SettledUp:            settlement.SettledUp(),
		StaleParticipantIDs:  settlement.StaleParticipantIDs,
		DroppedContributions: int32(settlement.DroppedContributions),
	}), nil
}
