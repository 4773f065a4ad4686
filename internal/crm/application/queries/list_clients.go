package queries

import (
	"context"

	"github.com/felixgeelhaar/pulso/internal/crm/domain"
)

// ListClientsQuery contains the parameters for listing clients.
type ListClientsQuery struct {
	// Status filters by lifecycle state when non-empty.
	Status string
}

// ListClientsHandler handles the ListClientsQuery.
type ListClientsHandler struct {
	clientRepo domain.ClientRepository
}

// NewListClientsHandler creates a new ListClientsHandler.
func NewListClientsHandler(clientRepo domain.ClientRepository) *ListClientsHandler {
	return &ListClientsHandler{clientRepo: clientRepo}
}

// Handle executes the ListClientsQuery.
func (h *ListClientsHandler) Handle(ctx context.Context, query ListClientsQuery) ([]ClientDTO, error) {
	var status *domain.ClientStatus
	if query.Status != "" {
		s := domain.ClientStatus(query.Status)
		status = &s
	}

	clients, err := h.clientRepo.List(ctx, status)
	if err != nil {
		return nil, err
	}

	dtos := make([]ClientDTO, len(clients))
	for i, c := range clients {
		dtos[i] = toClientDTO(c)
	}
	return dtos, nil
}
