// Package apiconnect wires the settleup.v1 services to Connect handlers and
// clients. Every constructor installs api.Codec ahead of caller options.
package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/mmynk/settleup/pkg/api"
)

const (
	ParticipantServiceName = "settleup.v1.ParticipantService"
	ExpenseServiceName     = "settleup.v1.ExpenseService"
	SummaryServiceName     = "settleup.v1.SummaryService"
)

const (
	ParticipantServiceAddParticipantProcedure      = "/settleup.v1.ParticipantService/AddParticipant"
	ParticipantServiceRegisterParticipantProcedure = "/settleup.v1.ParticipantService/RegisterParticipant"
	ParticipantServiceListParticipantsProcedure    = "/settleup.v1.ParticipantService/ListParticipants"
	ParticipantServiceRemoveParticipantProcedure   = "/settleup.v1.ParticipantService/RemoveParticipant"

	ExpenseServiceCreateExpenseProcedure = "/settleup.v1.ExpenseService/CreateExpense"
	ExpenseServiceGetExpenseProcedure    = "/settleup.v1.ExpenseService/GetExpense"
	ExpenseServiceListExpensesProcedure  = "/settleup.v1.ExpenseService/ListExpenses"
	ExpenseServiceDeleteExpenseProcedure = "/settleup.v1.ExpenseService/DeleteExpense"

	SummaryServiceGetSummaryProcedure = "/settleup.v1.SummaryService/GetSummary"
)

// PathPrefix is shared by every procedure path.
const PathPrefix = "/settleup.v1."

func handlerOptions(opts []connect.HandlerOption) []connect.HandlerOption {
	return append([]connect.HandlerOption{connect.WithCodec(api.Codec{})}, opts...)
}

func clientOptions(opts []connect.ClientOption) []connect.ClientOption {
	return append([]connect.ClientOption{connect.WithCodec(api.Codec{})}, opts...)
}

// route dispatches on the full procedure path.
func route(handlers map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}

func unimplemented(procedure string) error {
	return connect.NewError(connect.CodeUnimplemented, errors.New(strings.TrimPrefix(procedure, "/")+" is not implemented"))
}

// ParticipantServiceHandler manages the ledger roster.
type ParticipantServiceHandler interface {
	AddParticipant(context.Context, *connect.Request[api.AddParticipantRequest]) (*connect.Response[api.AddParticipantResponse], error)
	RegisterParticipant(context.Context, *connect.Request[api.RegisterParticipantRequest]) (*connect.Response[api.RegisterParticipantResponse], error)
	ListParticipants(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[api.ListParticipantsResponse], error)
	RemoveParticipant(context.Context, *connect.Request[api.RemoveParticipantRequest]) (*connect.Response[emptypb.Empty], error)
}

// NewParticipantServiceHandler returns the mount path and handler for svc.
func NewParticipantServiceHandler(svc ParticipantServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + ParticipantServiceName + "/", route(map[string]http.Handler{
		ParticipantServiceAddParticipantProcedure:      connect.NewUnaryHandler(ParticipantServiceAddParticipantProcedure, svc.AddParticipant, opts...),
		ParticipantServiceRegisterParticipantProcedure: connect.NewUnaryHandler(ParticipantServiceRegisterParticipantProcedure, svc.RegisterParticipant, opts...),
		ParticipantServiceListParticipantsProcedure:    connect.NewUnaryHandler(ParticipantServiceListParticipantsProcedure, svc.ListParticipants, opts...),
		ParticipantServiceRemoveParticipantProcedure:   connect.NewUnaryHandler(ParticipantServiceRemoveParticipantProcedure, svc.RemoveParticipant, opts...),
	})
}

// UnimplementedParticipantServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedParticipantServiceHandler struct{}

func (UnimplementedParticipantServiceHandler) AddParticipant(context.Context, *connect.Request[api.AddParticipantRequest]) (*connect.Response[api.AddParticipantResponse], error) {
	return nil, unimplemented(ParticipantServiceAddParticipantProcedure)
}

func (UnimplementedParticipantServiceHandler) RegisterParticipant(context.Context, *connect.Request[api.RegisterParticipantRequest]) (*connect.Response[api.RegisterParticipantResponse], error) {
	return nil, unimplemented(ParticipantServiceRegisterParticipantProcedure)
}

func (UnimplementedParticipantServiceHandler) ListParticipants(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[api.ListParticipantsResponse], error) {
	return nil, unimplemented(ParticipantServiceListParticipantsProcedure)
}

func (UnimplementedParticipantServiceHandler) RemoveParticipant(context.Context, *connect.Request[api.RemoveParticipantRequest]) (*connect.Response[emptypb.Empty], error) {
	return nil, unimplemented(ParticipantServiceRemoveParticipantProcedure)
}

// ParticipantServiceClient is a client for settleup.v1.ParticipantService.
type ParticipantServiceClient interface {
	AddParticipant(context.Context, *connect.Request[api.AddParticipantRequest]) (*connect.Response[api.AddParticipantResponse], error)
	RegisterParticipant(context.Context, *connect.Request[api.RegisterParticipantRequest]) (*connect.Response[api.RegisterParticipantResponse], error)
	ListParticipants(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[api.ListParticipantsResponse], error)
	RemoveParticipant(context.Context, *connect.Request[api.RemoveParticipantRequest]) (*connect.Response[emptypb.Empty], error)
}

// NewParticipantServiceClient builds a client against baseURL, e.g.
// http://localhost:8080.
func NewParticipantServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ParticipantServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &participantServiceClient{
		addParticipant:      connect.NewClient[api.AddParticipantRequest, api.AddParticipantResponse](httpClient, baseURL+ParticipantServiceAddParticipantProcedure, opts...),
		registerParticipant: connect.NewClient[api.RegisterParticipantRequest, api.RegisterParticipantResponse](httpClient, baseURL+ParticipantServiceRegisterParticipantProcedure, opts...),
		listParticipants:    connect.NewClient[emptypb.Empty, api.ListParticipantsResponse](httpClient, baseURL+ParticipantServiceListParticipantsProcedure, opts...),
		removeParticipant:   connect.NewClient[api.RemoveParticipantRequest, emptypb.Empty](httpClient, baseURL+ParticipantServiceRemoveParticipantProcedure, opts...),
	}
}

type participantServiceClient struct {
	addParticipant      *connect.Client[api.AddParticipantRequest, api.AddParticipantResponse]
	registerParticipant *connect.Client[api.RegisterParticipantRequest, api.RegisterParticipantResponse]
	listParticipants    *connect.Client[emptypb.Empty, api.ListParticipantsResponse]
	removeParticipant   *connect.Client[api.RemoveParticipantRequest, emptypb.Empty]
}

func (c *participantServiceClient) AddParticipant(ctx context.Context, req *connect.Request[api.AddParticipantRequest]) (*connect.Response[api.AddParticipantResponse], error) {
	return c.addParticipant.CallUnary(ctx, req)
}

func (c *participantServiceClient) RegisterParticipant(ctx context.Context, req *connect.Request[api.RegisterParticipantRequest]) (*connect.Response[api.RegisterParticipantResponse], error) {
	return c.registerParticipant.CallUnary(ctx, req)
}

func (c *participantServiceClient) ListParticipants(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[api.ListParticipantsResponse], error) {
	return c.listParticipants.CallUnary(ctx, req)
}

func (c *participantServiceClient) RemoveParticipant(ctx context.Context, req *connect.Request[api.RemoveParticipantRequest]) (*connect.Response[emptypb.Empty], error) {
	return c.removeParticipant.CallUnary(ctx, req)
}

// ExpenseServiceHandler records and retrieves expenses.
type ExpenseServiceHandler interface {
	CreateExpense(context.Context, *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error)
	GetExpense(context.Context, *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[api.ListExpensesResponse], error)
	DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[emptypb.Empty], error)
}

// NewExpenseServiceHandler returns the mount path and handler for svc.
func NewExpenseServiceHandler(svc ExpenseServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + ExpenseServiceName + "/", route(map[string]http.Handler{
		ExpenseServiceCreateExpenseProcedure: connect.NewUnaryHandler(ExpenseServiceCreateExpenseProcedure, svc.CreateExpense, opts...),
		ExpenseServiceGetExpenseProcedure:    connect.NewUnaryHandler(ExpenseServiceGetExpenseProcedure, svc.GetExpense, opts...),
		ExpenseServiceListExpensesProcedure:  connect.NewUnaryHandler(ExpenseServiceListExpensesProcedure, svc.ListExpenses, opts...),
		ExpenseServiceDeleteExpenseProcedure: connect.NewUnaryHandler(ExpenseServiceDeleteExpenseProcedure, svc.DeleteExpense, opts...),
	})
}

// UnimplementedExpenseServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedExpenseServiceHandler struct{}

func (UnimplementedExpenseServiceHandler) CreateExpense(context.Context, *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	return nil, unimplemented(ExpenseServiceCreateExpenseProcedure)
}

func (UnimplementedExpenseServiceHandler) GetExpense(context.Context, *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error) {
	return nil, unimplemented(ExpenseServiceGetExpenseProcedure)
}

func (UnimplementedExpenseServiceHandler) ListExpenses(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[api.ListExpensesResponse], error) {
	return nil, unimplemented(ExpenseServiceListExpensesProcedure)
}

func (UnimplementedExpenseServiceHandler) DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[emptypb.Empty], error) {
	return nil, unimplemented(ExpenseServiceDeleteExpenseProcedure)
}

// ExpenseServiceClient is a client for settleup.v1.ExpenseService.
type ExpenseServiceClient interface {
	CreateExpense(context.Context, *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error)
	GetExpense(context.Context, *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[api.ListExpensesResponse], error)
	DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[emptypb.Empty], error)
}

func NewExpenseServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ExpenseServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &expenseServiceClient{
		createExpense: connect.NewClient[api.CreateExpenseRequest, api.CreateExpenseResponse](httpClient, baseURL+ExpenseServiceCreateExpenseProcedure, opts...),
		getExpense:    connect.NewClient[api.GetExpenseRequest, api.GetExpenseResponse](httpClient, baseURL+ExpenseServiceGetExpenseProcedure, opts...),
		listExpenses:  connect.NewClient[emptypb.Empty, api.ListExpensesResponse](httpClient, baseURL+ExpenseServiceListExpensesProcedure, opts...),
		deleteExpense: connect.NewClient[api.DeleteExpenseRequest, emptypb.Empty](httpClient, baseURL+ExpenseServiceDeleteExpenseProcedure, opts...),
	}
}

type expenseServiceClient struct {
	createExpense *connect.Client[api.CreateExpenseRequest, api.CreateExpenseResponse]
	getExpense    *connect.Client[api.GetExpenseRequest, api.GetExpenseResponse]
	listExpenses  *connect.Client[emptypb.Empty, api.ListExpensesResponse]
	deleteExpense *connect.Client[api.DeleteExpenseRequest, emptypb.Empty]
}

func (c *expenseServiceClient) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	return c.createExpense.CallUnary(ctx, req)
}

func (c *expenseServiceClient) GetExpense(ctx context.Context, req *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error) {
	return c.getExpense.CallUnary(ctx, req)
}

func (c *expenseServiceClient) ListExpenses(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[api.ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

func (c *expenseServiceClient) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[emptypb.Empty], error) {
	return c.deleteExpense.CallUnary(ctx, req)
}

// SummaryServiceHandler reports balances and the transfers that settle them.
type SummaryServiceHandler interface {
	GetSummary(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[api.GetSummaryResponse], error)
}

func NewSummaryServiceHandler(svc SummaryServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + SummaryServiceName + "/", route(map[string]http.Handler{
		SummaryServiceGetSummaryProcedure: connect.NewUnaryHandler(SummaryServiceGetSummaryProcedure, svc.GetSummary, opts...),
	})
}

// UnimplementedSummaryServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedSummaryServiceHandler struct{}

func (UnimplementedSummaryServiceHandler) GetSummary(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[api.GetSummaryResponse], error) {
	return nil, unimplemented(SummaryServiceGetSummaryProcedure)
}

// SummaryServiceClient is a client for settleup.v1.SummaryService.
type SummaryServiceClient interface {
	GetSummary(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[api.GetSummaryResponse], error)
}

func NewSummaryServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) SummaryServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	return &summaryServiceClient{
		getSummary: connect.NewClient[emptypb.Empty, api.GetSummaryResponse](httpClient, baseURL+SummaryServiceGetSummaryProcedure, clientOptions(opts)...),
	}
}

type summaryServiceClient struct {
	getSummary *connect.Client[emptypb.Empty, api.GetSummaryResponse]
}

func (c *summaryServiceClient) GetSummary(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[api.GetSummaryResponse], error) {
	return c.getSummary.CallUnary(ctx, req)
}
