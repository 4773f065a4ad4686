package queries

import (
	"context"
	"time"

	"github.com/felixgeelhaar/pulso/internal/crm/domain"
	"github.com/google/uuid"
)

// ClientDTO is a data transfer object for clients.
type ClientDTO struct {
	ID              uuid.UUID
	Name            string
	Email           string
	Company         string
	ContractType    string
	Status          string
	Currency        string
	MonthlyBudget   *float64
	HoldedContactID string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// GetClientQuery contains the parameters for fetching a single client.
type GetClientQuery struct {
	ClientID uuid.UUID
}

// GetClientHandler handles the GetClientQuery.
type GetClientHandler struct {
	clientRepo domain.ClientRepository
}

// NewGetClientHandler creates a new GetClientHandler.
func NewGetClientHandler(clientRepo domain.ClientRepository) *GetClientHandler {
	return &GetClientHandler{clientRepo: clientRepo}
}

// Handle executes the GetClientQuery.
func (h *GetClientHandler) Handle(ctx context.Context, query GetClientQuery) (*ClientDTO, error) {
	client, err := h.clientRepo.FindByID(ctx, query.ClientID)
	if err != nil {
		return nil, err
	}

	dto := toClientDTO(client)
	return &dto, nil
}

func toClientDTO(c *domain.Client) ClientDTO {
	dto := ClientDTO{
		ID:              c.ID(),
		Name:            c.Name(),
		Email:           c.Email(),
		Company:         c.Company(),
		ContractType:    string(c.ContractType()),
		Status:          string(c.Status()),
		Currency:        c.Currency(),
		HoldedContactID: c.HoldedContactID(),
		CreatedAt:       c.CreatedAt(),
		UpdatedAt:       c.UpdatedAt(),
	}
	if amount, set := c.MonthlyBudget(); set {
		dto.MonthlyBudget = &amount
	}
	return dto
}
