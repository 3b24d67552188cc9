package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/mmynk/settleup/internal/metrics"
	"github.com/mmynk/settleup/internal/middleware"
	"github.com/mmynk/settleup/internal/storage/sqlite"
	"github.com/mmynk/settleup/pkg/api"
	"github.com/mmynk/settleup/pkg/api/apiconnect"
)

type testClients struct {
	participants apiconnect.ParticipantServiceClient
	expenses     apiconnect.ExpenseServiceClient
	summary      apiconnect.SummaryServiceClient
}

// setupTestServer serves all three services from a fresh database.
func setupTestServer(t *testing.T) testClients {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	interceptors := connect.WithInterceptors(middleware.LoggingInterceptor())

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewParticipantServiceHandler(NewParticipantService(store), interceptors))
	mux.Handle(apiconnect.NewExpenseServiceHandler(NewExpenseService(store), interceptors))
	mux.Handle(apiconnect.NewSummaryServiceHandler(NewSummaryService(store, metrics.Get()), interceptors))

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return testClients{
		participants: apiconnect.NewParticipantServiceClient(server.Client(), server.URL),
		expenses:     apiconnect.NewExpenseServiceClient(server.Client(), server.URL),
		summary:      apiconnect.NewSummaryServiceClient(server.Client(), server.URL),
	}
}

func addParticipant(t *testing.T, c testClients, name string) string {
	t.Helper()
	resp, err := c.participants.AddParticipant(context.Background(), connect.NewRequest(&api.AddParticipantRequest{Name: name}))
	require.NoError(t, err)
	return resp.Msg.Participant.ID
}

func getSummary(t *testing.T, c testClients) *api.GetSummaryResponse {
	t.Helper()
	resp, err := c.summary.GetSummary(context.Background(), connect.NewRequest(&emptypb.Empty{}))
	require.NoError(t, err)
	return resp.Msg
}
