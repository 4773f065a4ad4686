package queries

import (
	"context"

	"github.com/felixgeelhaar/pulso/internal/health/application"
	"github.com/felixgeelhaar/pulso/internal/health/domain"
	"github.com/google/uuid"
)

// GetClientHealthQuery requests a fresh health evaluation for one client.
type GetClientHealthQuery struct {
	ClientID uuid.UUID
}

// GetClientHealthHandler resolves the client and evaluates it on demand.
type GetClientHealthHandler struct {
	catalog   domain.ClientCatalog
	evaluator *application.Evaluator
}

// NewGetClientHealthHandler creates a new handler.
func NewGetClientHealthHandler(catalog domain.ClientCatalog, evaluator *application.Evaluator) *GetClientHealthHandler {
	return &GetClientHealthHandler{
		catalog:   catalog,
		evaluator: evaluator,
	}
}

// Handle returns the client's current health score. Unknown clients
// yield domain.ErrClientNotFound.
func (h *GetClientHealthHandler) Handle(ctx context.Context, query GetClientHealthQuery) (domain.HealthScore, error) {
	ref, err := h.catalog.Find(ctx, query.ClientID)
	if err != nil {
		return domain.HealthScore{}, err
	}

	return h.evaluator.Evaluate(ctx, ref)
}
