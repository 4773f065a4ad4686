package commands

import (
	"context"
	"errors"

	"github.com/felixgeelhaar/pulso/internal/crm/domain"
	"github.com/google/uuid"
)

var ErrInvalidStatusTarget = errors.New("invalid client status target")

// ChangeClientStatusCommand moves a client to a new lifecycle state.
type ChangeClientStatusCommand struct {
	ClientID uuid.UUID
	Target   domain.ClientStatus
}

// ChangeClientStatusHandler handles the ChangeClientStatusCommand.
type ChangeClientStatusHandler struct {
	clientRepo domain.ClientRepository
}

// NewChangeClientStatusHandler creates a new ChangeClientStatusHandler.
func NewChangeClientStatusHandler(clientRepo domain.ClientRepository) *ChangeClientStatusHandler {
	return &ChangeClientStatusHandler{clientRepo: clientRepo}
}

// Handle executes the ChangeClientStatusCommand.
func (h *ChangeClientStatusHandler) Handle(ctx context.Context, cmd ChangeClientStatusCommand) error {
	client, err := h.clientRepo.FindByID(ctx, cmd.ClientID)
	if err != nil {
		return err
	}

	switch cmd.Target {
	case domain.ClientPaused:
		err = client.Pause()
	case domain.ClientActive:
		err = client.Reactivate()
	case domain.ClientFinished:
		err = client.Finish()
	default:
		return ErrInvalidStatusTarget
	}
	if err != nil {
		return err
	}

	return h.clientRepo.Save(ctx, client)
}
