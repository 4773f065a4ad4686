package commands

import (
	"context"

	"github.com/felixgeelhaar/pulso/internal/crm/domain"
	"github.com/google/uuid"
)

// UpdateClientBudgetCommand sets or clears a client's monthly budget.
type UpdateClientBudgetCommand struct {
	ClientID uuid.UUID
	// Budget of nil clears the budget.
	Budget *float64
}

// UpdateClientBudgetHandler handles the UpdateClientBudgetCommand.
type UpdateClientBudgetHandler struct {
	clientRepo domain.ClientRepository
}

// NewUpdateClientBudgetHandler creates a new UpdateClientBudgetHandler.
func NewUpdateClientBudgetHandler(clientRepo domain.ClientRepository) *UpdateClientBudgetHandler {
	return &UpdateClientBudgetHandler{clientRepo: clientRepo}
}

// Handle executes the UpdateClientBudgetCommand.
func (h *UpdateClientBudgetHandler) Handle(ctx context.Context, cmd UpdateClientBudgetCommand) error {
	client, err := h.clientRepo.FindByID(ctx, cmd.ClientID)
	if err != nil {
		return err
	}

	if cmd.Budget == nil {
		client.ClearMonthlyBudget()
	} else if err := client.SetMonthlyBudget(*cmd.Budget); err != nil {
		return err
	}

	return h.clientRepo.Save(ctx, client)
}
