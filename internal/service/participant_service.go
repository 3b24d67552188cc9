package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/storage"
	"github.com/mmynk/settleup/pkg/api"
	"github.com/mmynk/settleup/pkg/api/apiconnect"
)

// ParticipantService implements the Connect ParticipantService
type ParticipantService struct {
	apiconnect.UnimplementedParticipantServiceHandler
	store storage.Store
}

// NewParticipantService creates a new ParticipantService with the given storage backend.
func NewParticipantService(store storage.Store) *ParticipantService {
	return &ParticipantService{store: store}
}

// AddParticipant adds a participant to the roster.
func (s *ParticipantService) AddParticipant(ctx context.Context, req *connect.Request[api.AddParticipantRequest]) (*connect.Response[api.AddParticipantResponse], error) {
	name := strings.TrimSpace(req.Msg.Name)
	slog.Info("AddParticipant request received", "name", name)

	if name == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("name is required"))
	}

	participant := &models.Participant{Name: name, Email: req.Msg.Email}
	if err := s.store.AddParticipant(ctx, participant); err != nil {
		slog.Error("AddParticipant failed", "name", name, "error", err)
		return nil, connectError(err)
	}

	slog.Info("Participant added", "participant_id", participant.ID)

	return connect.NewResponse(&api.AddParticipantResponse{
		Participant: toAPIParticipant(participant),
	}), nil
}

// RegisterParticipant returns the participant with the given email, adding
// one if none exists yet.
func (s *ParticipantService) RegisterParticipant(ctx context.Context, req *connect.Request[api.RegisterParticipantRequest]) (*connect.Response[api.RegisterParticipantResponse], error) {
	name := strings.TrimSpace(req.Msg.Name)
	email := models.NormalizeEmail(req.Msg.Email)
	slog.Info("RegisterParticipant request received", "email", email)

	if email == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("email is required"))
	}

	existing, err := s.store.GetParticipantByEmail(ctx, email)
	if err == nil {
		slog.Info("Participant already registered", "participant_id", existing.ID)
		return connect.NewResponse(&api.RegisterParticipantResponse{
			Participant: toAPIParticipant(existing),
		}), nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		slog.Error("RegisterParticipant lookup failed", "email", email, "error", err)
		return nil, connectError(err)
	}

	if name == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("name is required"))
	}

	participant := &models.Participant{Name: name, Email: email}
	err = s.store.AddParticipant(ctx, participant)
	if errors.Is(err, storage.ErrEmailExists) {
		// Lost a race with a concurrent registration.
		existing, getErr := s.store.GetParticipantByEmail(ctx, email)
		if getErr != nil {
			return nil, connectError(getErr)
		}
		return connect.NewResponse(&api.RegisterParticipantResponse{
			Participant: toAPIParticipant(existing),
		}), nil
	}
	if err != nil {
		slog.Error("RegisterParticipant failed", "email", email, "error", err)
		return nil, connectError(err)
	}

	slog.Info("Participant registered", "participant_id", participant.ID)

	return connect.NewResponse(&api.RegisterParticipantResponse{
		Participant: toAPIParticipant(participant),
		Created:     true,
	}), nil
}

// ListParticipants returns the roster in the order participants were added.
func (s *ParticipantService) ListParticipants(ctx context.Context, req *connect.Request[emptypb.Empty]) (*connect.Response[api.ListParticipantsResponse], error) {
	participants, err := s.store.ListParticipants(ctx)
	if err != nil {
		slog.Error("ListParticipants failed", "error", err)
		return nil, connectError(err)
	}

	out := make([]*api.Participant, len(participants))
	for i := range participants {
		out[i] = toAPIParticipant(&participants[i])
	}

	slog.Debug("ListParticipants successful", "count", len(out))

	return connect.NewResponse(&api.ListParticipantsResponse{Participants: out}), nil
}

// RemoveParticipant deletes a participant from the roster. Recorded expenses
// still reference the id; their contributions are dropped from summaries.
func (s *ParticipantService) RemoveParticipant(ctx context.Context, req *connect.Request[api.RemoveParticipantRequest]) (*connect.Response[emptypb.Empty], error) {
	slog.Info("RemoveParticipant request received", "participant_id", req.Msg.ParticipantID)

	if req.Msg.ParticipantID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("participant_id is required"))
	}

	if err := s.store.RemoveParticipant(ctx, req.Msg.ParticipantID); err != nil {
		slog.Error("RemoveParticipant failed", "participant_id", req.Msg.ParticipantID, "error", err)
		return nil, connectError(err)
	}

	slog.Info("Participant removed", "participant_id", req.Msg.ParticipantID)

	return connect.NewResponse(&emptypb.Empty{}), nil
}
