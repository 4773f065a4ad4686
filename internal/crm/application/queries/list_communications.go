package queries

import (
	"context"
	"time"

	"github.com/felixgeelhaar/pulso/internal/crm/domain"
	"github.com/google/uuid"
)

// CommunicationDTO is a data transfer object for touchpoints.
type CommunicationDTO struct {
	ID               uuid.UUID
	ClientID         uuid.UUID
	Channel          string
	Direction        string
	Subject          string
	Summary          string
	OccurredAt       time.Time
	RequiresFollowup bool
	FollowupDue      *time.Time
}

// ListCommunicationsQuery contains the parameters for listing a client's
// touchpoints.
type ListCommunicationsQuery struct {
	ClientID uuid.UUID
	Limit    int
}

// ListCommunicationsHandler handles the ListCommunicationsQuery.
type ListCommunicationsHandler struct {
	commRepo domain.CommunicationRepository
}

// NewListCommunicationsHandler creates a new ListCommunicationsHandler.
func NewListCommunicationsHandler(commRepo domain.CommunicationRepository) *ListCommunicationsHandler {
	return &ListCommunicationsHandler{commRepo: commRepo}
}

// Handle executes the ListCommunicationsQuery.
func (h *ListCommunicationsHandler) Handle(ctx context.Context, query ListCommunicationsQuery) ([]CommunicationDTO, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = 50
	}

	comms, err := h.commRepo.FindByClientID(ctx, query.ClientID, limit)
	if err != nil {
		return nil, err
	}

	return toCommunicationDTOs(comms), nil
}

func toCommunicationDTOs(comms []*domain.Communication) []CommunicationDTO {
	dtos := make([]CommunicationDTO, len(comms))
	for i, c := range comms {
		dtos[i] = CommunicationDTO{
			ID:               c.ID(),
			ClientID:         c.ClientID(),
			Channel:          string(c.Channel()),
			Direction:        string(c.Direction()),
			Subject:          c.Subject(),
			Summary:          c.Summary(),
			OccurredAt:       c.OccurredAt(),
			RequiresFollowup: c.RequiresFollowup(),
			FollowupDue:      c.FollowupDue(),
		}
	}
	return dtos
}
