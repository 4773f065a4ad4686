package queries

import (
	"context"
	"time"

	"github.com/felixgeelhaar/pulso/internal/insights/domain"
	"github.com/google/uuid"
)

// InsightDTO is a data transfer object for operational alerts.
type InsightDTO struct {
	ID              uuid.UUID
	ClientID        uuid.UUID
	Type            string
	Priority        string
	Status          string
	Title           string
	Detail          string
	SuggestedAction string
	GeneratedAt     time.Time
}

// ListInsightsQuery contains the parameters for listing insights.
type ListInsightsQuery struct {
	// ClientID narrows the list to one client when set.
	ClientID *uuid.UUID
	// Status filters by handling state when non-empty.
	Status string
}

// ListInsightsHandler handles the ListInsightsQuery.
type ListInsightsHandler struct {
	insightRepo domain.InsightRepository
}

// NewListInsightsHandler creates a new ListInsightsHandler.
func NewListInsightsHandler(insightRepo domain.InsightRepository) *ListInsightsHandler {
	return &ListInsightsHandler{insightRepo: insightRepo}
}

// Handle executes the ListInsightsQuery.
func (h *ListInsightsHandler) Handle(ctx context.Context, query ListInsightsQuery) ([]InsightDTO, error) {
	var status *domain.InsightStatus
	if query.Status != "" {
		s := domain.InsightStatus(query.Status)
		status = &s
	}

	insights, err := h.insightRepo.List(ctx, query.ClientID, status)
	if err != nil {
		return nil, err
	}

	dtos := make([]InsightDTO, len(insights))
	for i, insight := range insights {
		dtos[i] = InsightDTO{
			ID:              insight.ID,
			ClientID:        insight.ClientID,
			Type:            string(insight.Type),
			Priority:        string(insight.Priority),
			Status:          string(insight.Status),
			Title:           insight.Title,
			Detail:          insight.Detail,
			SuggestedAction: insight.SuggestedAction,
			GeneratedAt:     insight.GeneratedAt,
		}
	}
	return dtos, nil
}
