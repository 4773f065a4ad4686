package commands

import (
	"context"
	"time"

	"github.com/felixgeelhaar/pulso/internal/billing/domain"
	"github.com/google/uuid"
)

// RecordBillingEventCommand appends an entry to a client's billing
// journal.
type RecordBillingEventCommand struct {
	ClientID    uuid.UUID
	Type        string
	Amount      *float64
	EventDate   time.Time
	Description string
}

// RecordBillingEventResult contains the result of recording an event.
type RecordBillingEventResult struct {
	EventID uuid.UUID
}

// RecordBillingEventHandler handles the RecordBillingEventCommand.
type RecordBillingEventHandler struct {
	eventRepo domain.BillingEventRepository
}

// NewRecordBillingEventHandler creates a new RecordBillingEventHandler.
func NewRecordBillingEventHandler(eventRepo domain.BillingEventRepository) *RecordBillingEventHandler {
	return &RecordBillingEventHandler{eventRepo: eventRepo}
}

// Handle executes the RecordBillingEventCommand.
func (h *RecordBillingEventHandler) Handle(ctx context.Context, cmd RecordBillingEventCommand) (*RecordBillingEventResult, error) {
	event, err := domain.NewBillingEvent(cmd.ClientID, domain.EventType(cmd.Type),
		cmd.Amount, cmd.EventDate, cmd.Description)
	if err != nil {
		return nil, err
	}

	if err := h.eventRepo.Save(ctx, event); err != nil {
		return nil, err
	}

	return &RecordBillingEventResult{EventID: event.ID}, nil
}
