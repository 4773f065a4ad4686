package queries

import (
	"context"
	"time"

	"github.com/felixgeelhaar/pulso/internal/billing/domain"
	"github.com/google/uuid"
)

// BillingEventDTO is the read model for one journal entry.
type BillingEventDTO struct {
	ID          uuid.UUID
	ClientID    uuid.UUID
	Type        string
	Amount      *float64
	EventDate   time.Time
	Description string
}

// ListBillingEventsQuery lists a client's billing journal, newest
// event first.
type ListBillingEventsQuery struct {
	ClientID uuid.UUID
	Limit    int
}

// ListBillingEventsHandler handles the ListBillingEventsQuery.
type ListBillingEventsHandler struct {
	eventRepo domain.BillingEventRepository
}

// NewListBillingEventsHandler creates a new ListBillingEventsHandler.
func NewListBillingEventsHandler(eventRepo domain.BillingEventRepository) *ListBillingEventsHandler {
	return &ListBillingEventsHandler{eventRepo: eventRepo}
}

// Handle executes the ListBillingEventsQuery.
func (h *ListBillingEventsHandler) Handle(ctx context.Context, query ListBillingEventsQuery) ([]BillingEventDTO, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = 20
	}

	events, err := h.eventRepo.FindByClientID(ctx, query.ClientID, limit)
	if err != nil {
		return nil, err
	}

	dtos := make([]BillingEventDTO, len(events))
	for i, event := range events {
		dtos[i] = BillingEventDTO{
			ID:          event.ID,
			ClientID:    event.ClientID,
			Type:        string(event.Type),
			Amount:      event.Amount,
			EventDate:   event.EventDate,
			Description: event.Description,
		}
	}
	return dtos, nil
}
