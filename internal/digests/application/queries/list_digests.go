package queries

import (
	"context"
	"time"

	"github.com/felixgeelhaar/pulso/internal/digests/domain"
	"github.com/google/uuid"
)

// DigestDTO is a data transfer object for weekly digests.
type DigestDTO struct {
	ID          uuid.UUID
	ClientID    uuid.UUID
	PeriodStart time.Time
	PeriodEnd   time.Time
	Status      string
	SentAt      *time.Time
}

// ListDigestsQuery contains the parameters for listing a client's
// recent digests.
type ListDigestsQuery struct {
	ClientID uuid.UUID
	Limit    int
}

// ListDigestsHandler handles the ListDigestsQuery.
type ListDigestsHandler struct {
	digestRepo domain.DigestRepository
}

// NewListDigestsHandler creates a new ListDigestsHandler.
func NewListDigestsHandler(digestRepo domain.DigestRepository) *ListDigestsHandler {
	return &ListDigestsHandler{digestRepo: digestRepo}
}

// Handle executes the ListDigestsQuery.
func (h *ListDigestsHandler) Handle(ctx context.Context, query ListDigestsQuery) ([]DigestDTO, error) {
	limit := query.Limit
	if limit <= 0 {
		limit = 8
	}

	digests, err := h.digestRepo.FindByClientID(ctx, query.ClientID, limit)
	if err != nil {
		return nil, err
	}

	dtos := make([]DigestDTO, len(digests))
	for i, d := range digests {
		dtos[i] = DigestDTO{
			ID:          d.ID(),
			ClientID:    d.ClientID(),
			PeriodStart: d.PeriodStart(),
			PeriodEnd:   d.PeriodEnd(),
			Status:      string(d.Status()),
			SentAt:      d.SentAt(),
		}
	}
	return dtos, nil
}
