package commands

import (
	"context"

	"github.com/felixgeelhaar/pulso/internal/crm/domain"
	"github.com/google/uuid"
)

// ResolveFollowupCommand clears the follow-up flag on a communication.
type ResolveFollowupCommand struct {
	CommunicationID uuid.UUID
}

// ResolveFollowupHandler handles the ResolveFollowupCommand.
type ResolveFollowupHandler struct {
	commRepo domain.CommunicationRepository
}

// NewResolveFollowupHandler creates a new ResolveFollowupHandler.
func NewResolveFollowupHandler(commRepo domain.CommunicationRepository) *ResolveFollowupHandler {
	return &ResolveFollowupHandler{commRepo: commRepo}
}

// Handle executes the ResolveFollowupCommand.
func (h *ResolveFollowupHandler) Handle(ctx context.Context, cmd ResolveFollowupCommand) error {
	comm, err := h.commRepo.FindByID(ctx, cmd.CommunicationID)
	if err != nil {
		return err
	}

	if err := comm.ResolveFollowup(); err != nil {
		return err
	}

	return h.commRepo.Save(ctx, comm)
}
