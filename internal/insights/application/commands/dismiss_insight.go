package commands

import (
	"context"

	"github.com/felixgeelhaar/pulso/internal/insights/domain"
	"github.com/google/uuid"
)

// DismissInsightCommand marks an insight as not worth acting on.
type DismissInsightCommand struct {
	InsightID uuid.UUID
}

// DismissInsightHandler handles the DismissInsightCommand.
type DismissInsightHandler struct {
	insightRepo domain.InsightRepository
}

// NewDismissInsightHandler creates a new DismissInsightHandler.
func NewDismissInsightHandler(insightRepo domain.InsightRepository) *DismissInsightHandler {
	return &DismissInsightHandler{insightRepo: insightRepo}
}

// Handle executes the DismissInsightCommand.
func (h *DismissInsightHandler) Handle(ctx context.Context, cmd DismissInsightCommand) error {
	insight, err := h.insightRepo.FindByID(ctx, cmd.InsightID)
	if err != nil {
		return err
	}

	if err := insight.Dismiss(); err != nil {
		return err
	}

	return h.insightRepo.Save(ctx, insight)
}
