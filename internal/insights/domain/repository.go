package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrInsightNotFound = errors.New("insight not found")

// InsightRepository defines the persistence contract for insights.
type InsightRepository interface {
	Save(ctx context.Context, insight *Insight) error
	FindByID(ctx context.Context, id uuid.UUID) (*Insight, error)
	// FindActiveByClientAndType returns the client's active insight of
	// the given type, or ErrInsightNotFound. Generation uses it to avoid
	// stacking duplicate alerts sweep after sweep.
	FindActiveByClientAndType(ctx context.Context, clientID uuid.UUID, insightType InsightType) (*Insight, error)
	// List returns insights newest first, optionally filtered by client
	// and status.
	List(ctx context.Context, clientID *uuid.UUID, status *InsightStatus) ([]*Insight, error)
}
