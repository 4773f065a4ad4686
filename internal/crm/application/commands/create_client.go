package commands

import (
	"context"

	"github.com/felixgeelhaar/pulso/internal/crm/domain"
	"github.com/google/uuid"
)

// CreateClientCommand contains the data needed to create a client.
type CreateClientCommand struct {
	Name          string
	Email         string
	Company       string
	ContractType  string
	Currency      string
	MonthlyBudget *float64
}

// CreateClientResult contains the result of creating a client.
type CreateClientResult struct {
	ClientID uuid.UUID
}

// CreateClientHandler handles the CreateClientCommand.
type CreateClientHandler struct {
	clientRepo domain.ClientRepository
}

// NewCreateClientHandler creates a new CreateClientHandler.
func NewCreateClientHandler(clientRepo domain.ClientRepository) *CreateClientHandler {
	return &CreateClientHandler{clientRepo: clientRepo}
}

// Handle executes the CreateClientCommand.
func (h *CreateClientHandler) Handle(ctx context.Context, cmd CreateClientCommand) (*CreateClientResult, error) {
	client, err := domain.NewClient(cmd.Name, cmd.Email, cmd.Company, domain.ContractType(cmd.ContractType))
	if err != nil {
		return nil, err
	}

	if cmd.Currency != "" {
		client.SetCurrency(cmd.Currency)
	}

	if cmd.MonthlyBudget != nil {
		if err := client.SetMonthlyBudget(*cmd.MonthlyBudget); err != nil {
			return nil, err
		}
	}

	if err := h.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}

	return &CreateClientResult{ClientID: client.ID()}, nil
}
