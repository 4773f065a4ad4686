package commands

import (
	"context"

	"github.com/felixgeelhaar/pulso/internal/insights/domain"
	"github.com/google/uuid"
)

// MarkInsightActedCommand records that the underlying problem was handled.
type MarkInsightActedCommand struct {
	InsightID uuid.UUID
}

// MarkInsightActedHandler handles the MarkInsightActedCommand.
type MarkInsightActedHandler struct {
	insightRepo domain.InsightRepository
}

// NewMarkInsightActedHandler creates a new MarkInsightActedHandler.
func NewMarkInsightActedHandler(insightRepo domain.InsightRepository) *MarkInsightActedHandler {
	return &MarkInsightActedHandler{insightRepo: insightRepo}
}

// Handle executes the MarkInsightActedCommand.
func (h *MarkInsightActedHandler) Handle(ctx context.Context, cmd MarkInsightActedCommand) error {
	insight, err := h.insightRepo.FindByID(ctx, cmd.InsightID)
	if err != nil {
		return err
	}

	if err := insight.MarkActed(); err != nil {
		return err
	}

	return h.insightRepo.Save(ctx, insight)
}
