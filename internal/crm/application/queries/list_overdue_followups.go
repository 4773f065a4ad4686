package queries

import (
	"context"
	"time"

	"github.com/felixgeelhaar/pulso/internal/crm/domain"
)

// ListOverdueFollowupsQuery lists unresolved follow-ups past their due date.
type ListOverdueFollowupsQuery struct {
	// Now defaults to the current time when zero.
	Now time.Time
}

// ListOverdueFollowupsHandler handles the ListOverdueFollowupsQuery.
type ListOverdueFollowupsHandler struct {
	commRepo domain.CommunicationRepository
}

// NewListOverdueFollowupsHandler creates a new ListOverdueFollowupsHandler.
func NewListOverdueFollowupsHandler(commRepo domain.CommunicationRepository) *ListOverdueFollowupsHandler {
	return &ListOverdueFollowupsHandler{commRepo: commRepo}
}

// Handle executes the ListOverdueFollowupsQuery.
func (h *ListOverdueFollowupsHandler) Handle(ctx context.Context, query ListOverdueFollowupsQuery) ([]CommunicationDTO, error) {
	now := query.Now
	if now.IsZero() {
		now = time.Now().UTC()
	}

	comms, err := h.commRepo.FindOverdueFollowups(ctx, now)
	if err != nil {
		return nil, err
	}

	return toCommunicationDTOs(comms), nil
}
