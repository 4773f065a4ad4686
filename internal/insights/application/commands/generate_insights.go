package commands

import (
	"context"
	"time"

	healthApplication "github.com/felixgeelhaar/pulso/internal/health/application"
	healthDomain "github.com/felixgeelhaar/pulso/internal/health/domain"
	"github.com/felixgeelhaar/pulso/internal/insights/application/services"
	"github.com/google/uuid"
)

// GenerateInsightsCommand regenerates operational alerts. With a
// ClientID only that client is analyzed, otherwise the whole active
// portfolio is.
type GenerateInsightsCommand struct {
	ClientID *uuid.UUID
}

// GenerateInsightsResult summarizes a generation run.
type GenerateInsightsResult struct {
	ClientsAnalyzed  int
	Generated        int
	SkippedDuplicate int
}

// GenerateInsightsHandler handles the GenerateInsightsCommand.
type GenerateInsightsHandler struct {
	catalog   healthDomain.ClientCatalog
	source    healthDomain.SignalSource
	evaluator *healthApplication.Evaluator
	generator *services.InsightGenerator
	now       func() time.Time
}

// NewGenerateInsightsHandler creates a new GenerateInsightsHandler.
func NewGenerateInsightsHandler(
	catalog healthDomain.ClientCatalog,
	source healthDomain.SignalSource,
	evaluator *healthApplication.Evaluator,
	generator *services.InsightGenerator,
) *GenerateInsightsHandler {
	return &GenerateInsightsHandler{
		catalog:   catalog,
		source:    source,
		evaluator: evaluator,
		generator: generator,
		now:       time.Now,
	}
}

// WithNow overrides the clock used for the signal snapshot.
func (h *GenerateInsightsHandler) WithNow(now func() time.Time) *GenerateInsightsHandler {
	h.now = now
	return h
}

// Handle executes the GenerateInsightsCommand.
func (h *GenerateInsightsHandler) Handle(ctx context.Context, cmd GenerateInsightsCommand) (*GenerateInsightsResult, error) {
	var refs []healthDomain.ClientRef
	if cmd.ClientID != nil {
		ref, err := h.catalog.Find(ctx, *cmd.ClientID)
		if err != nil {
			return nil, err
		}
		refs = []healthDomain.ClientRef{ref}
	} else {
		var err error
		refs, err = h.catalog.ListActive(ctx)
		if err != nil {
			return nil, err
		}
	}

	scores, err := h.evaluator.EvaluateBatch(ctx, refs)
	if err != nil {
		return nil, err
	}

	// The rules need the raw signals behind the factors, which the
	// evaluator does not hand back, so they are fetched once more.
	now := h.now().UTC()
	ids := make([]uuid.UUID, len(refs))
	for i, ref := range refs {
		ids[i] = ref.ID
	}
	set, err := h.source.FetchSignalsBatch(ctx, ids, now)
	if err != nil {
		return nil, err
	}

	reports := make([]services.ClientReport, len(scores))
	for i, score := range scores {
		reports[i] = services.ClientReport{Score: score, Signals: set.For(score.ClientID)}
	}

	result, err := h.generator.Generate(ctx, reports, now)
	if err != nil {
		return nil, err
	}

	return &GenerateInsightsResult{
		ClientsAnalyzed:  len(reports),
		Generated:        result.Generated,
		SkippedDuplicate: result.SkippedDuplicate,
	}, nil
}
