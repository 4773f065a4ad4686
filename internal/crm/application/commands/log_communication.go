package commands

import (
	"context"
	"time"

	"github.com/felixgeelhaar/pulso/internal/crm/domain"
	"github.com/google/uuid"
)

// LogCommunicationCommand records a touchpoint with a client.
type LogCommunicationCommand struct {
	ClientID         uuid.UUID
	Channel          string
	Direction        string
	Subject          string
	Summary          string
	OccurredAt       time.Time
	RequiresFollowup bool
	FollowupDue      *time.Time
}

// LogCommunicationResult contains the result of logging a communication.
type LogCommunicationResult struct {
	CommunicationID uuid.UUID
}

// LogCommunicationHandler handles the LogCommunicationCommand.
type LogCommunicationHandler struct {
	clientRepo domain.ClientRepository
	commRepo   domain.CommunicationRepository
}

// NewLogCommunicationHandler creates a new LogCommunicationHandler.
func NewLogCommunicationHandler(clientRepo domain.ClientRepository, commRepo domain.CommunicationRepository) *LogCommunicationHandler {
	return &LogCommunicationHandler{clientRepo: clientRepo, commRepo: commRepo}
}

// Handle executes the LogCommunicationCommand.
func (h *LogCommunicationHandler) Handle(ctx context.Context, cmd LogCommunicationCommand) (*LogCommunicationResult, error) {
	// The touchpoint must belong to a known client.
	if _, err := h.clientRepo.FindByID(ctx, cmd.ClientID); err != nil {
		return nil, err
	}

	comm, err := domain.NewCommunication(cmd.ClientID, domain.Channel(cmd.Channel), domain.Direction(cmd.Direction), cmd.Summary, cmd.OccurredAt)
	if err != nil {
		return nil, err
	}

	if cmd.Subject != "" {
		comm.SetSubject(cmd.Subject)
	}
	if cmd.RequiresFollowup {
		comm.FlagFollowup(cmd.FollowupDue)
	}

	if err := h.commRepo.Save(ctx, comm); err != nil {
		return nil, err
	}

	return &LogCommunicationResult{CommunicationID: comm.ID()}, nil
}
