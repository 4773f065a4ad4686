package domain

import (
	"context"

	"github.com/google/uuid"
)

// BillingEventRepository defines the interface for billing journal
// persistence. The journal is append-only, so there is no update or
// delete.
type BillingEventRepository interface {
	// Save persists a billing event.
	Save(ctx context.Context, event *BillingEvent) error

	// FindByID finds a billing event by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*BillingEvent, error)

	// FindByClientID returns a client's billing events, most recent
	// event date first. A limit of 0 means no limit.
	FindByClientID(ctx context.Context, clientID uuid.UUID, limit int) ([]*BillingEvent, error)
}
