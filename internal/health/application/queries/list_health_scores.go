package queries

import (
	"context"
	"log/slog"
	"sort"

	"github.com/felixgeelhaar/pulso/internal/health/application"
	"github.com/felixgeelhaar/pulso/internal/health/domain"
	"github.com/felixgeelhaar/pulso/pkg/observability"
)

// ListHealthScoresQuery requests health scores for the active portfolio.
type ListHealthScoresQuery struct {
	// RiskLevel narrows the listing to one band when set.
	RiskLevel domain.RiskLevel
}

// ListHealthScoresHandler evaluates the active portfolio, serving from
// the sweep worker's cached snapshot when one is fresh. Results come
// back worst-first so the accounts needing attention lead the list.
type ListHealthScoresHandler struct {
	catalog   domain.ClientCatalog
	evaluator *application.Evaluator
	cache     application.ScoreCache
	logger    *slog.Logger
	metrics   observability.Metrics
}

// NewListHealthScoresHandler creates a new handler. The cache is
// optional; without one every call evaluates fresh.
func NewListHealthScoresHandler(
	catalog domain.ClientCatalog,
	evaluator *application.Evaluator,
	cache application.ScoreCache,
	logger *slog.Logger,
	metrics observability.Metrics,
) *ListHealthScoresHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	return &ListHealthScoresHandler{
		catalog:   catalog,
		evaluator: evaluator,
		cache:     cache,
		logger:    logger,
		metrics:   metrics,
	}
}

// Handle returns the portfolio's health scores, ascending by score.
func (h *ListHealthScoresHandler) Handle(ctx context.Context, query ListHealthScoresQuery) ([]domain.HealthScore, error) {
	scores, err := h.portfolioScores(ctx)
	if err != nil {
		return nil, err
	}

	if query.RiskLevel != "" {
		filtered := make([]domain.HealthScore, 0, len(scores))
		for _, score := range scores {
			if score.RiskLevel == query.RiskLevel {
				filtered = append(filtered, score)
			}
		}
		scores = filtered
	}

	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score < scores[j].Score
		}
		return scores[i].ClientName < scores[j].ClientName
	})

	return scores, nil
}

// portfolioScores serves from the cache when possible. Cache failures
// degrade to a fresh evaluation; they never fail the listing.
func (h *ListHealthScoresHandler) portfolioScores(ctx context.Context) ([]domain.HealthScore, error) {
	if h.cache != nil {
		cached, ok, err := h.cache.Get(ctx)
		switch {
		case err != nil:
			h.logger.Warn("health score cache unavailable", "error", err)
		case ok:
			h.metrics.Counter(observability.MetricHealthCacheHits, 1)
			return cached, nil
		default:
			h.metrics.Counter(observability.MetricHealthCacheMisses, 1)
		}
	}

	refs, err := h.catalog.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	timer := observability.StartTimer("portfolio_evaluation").WithMetrics(h.metrics)
	scores, err := h.evaluator.EvaluateBatch(ctx, refs)
	timer.StopWithError(err)
	return scores, err
}
