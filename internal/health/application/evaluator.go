package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/felixgeelhaar/pulso/internal/health/domain"
	"github.com/felixgeelhaar/pulso/pkg/observability"
	"github.com/google/uuid"
)

// Evaluator turns activity signals into health scores. It owns the
// orchestration only; the scoring policy lives in the domain factor
// functions, so the single and batch paths cannot drift apart.
type Evaluator struct {
	source  domain.SignalSource
	logger  *slog.Logger
	metrics observability.Metrics
	now     func() time.Time
}

// NewEvaluator creates an evaluator reading signals from the given source.
func NewEvaluator(source domain.SignalSource, logger *slog.Logger, metrics observability.Metrics) *Evaluator {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	return &Evaluator{
		source:  source,
		logger:  logger,
		metrics: metrics,
		now:     time.Now,
	}
}

// WithNow overrides the evaluation clock. Tests use it to pin boundaries
// such as "contacted exactly three days ago".
func (e *Evaluator) WithNow(now func() time.Time) *Evaluator {
	e.now = now
	return e
}

// Evaluate scores a single client. Fetch failures from the signal
// source are returned unmodified so callers can distinguish storage
// trouble from scoring trouble.
func (e *Evaluator) Evaluate(ctx context.Context, ref domain.ClientRef) (domain.HealthScore, error) {
	now := e.now().UTC()

	signals, err := e.source.FetchSignals(ctx, ref.ID, now)
	if err != nil {
		return domain.HealthScore{}, err
	}

	result, err := e.score(ref, signals, now)
	if err != nil {
		return domain.HealthScore{}, err
	}

	e.metrics.Counter(observability.MetricHealthEvaluations, 1,
		observability.T("mode", "single"))
	e.logger.Debug("client evaluated",
		"client_id", ref.ID,
		"score", result.Score,
		"risk_level", result.RiskLevel,
	)

	return result, nil
}

// EvaluateBatch scores many clients from one grouped signal fetch. The
// result preserves the input order and is equivalent to calling
// Evaluate per client at the same instant. Ordering for presentation is
// the caller's concern.
func (e *Evaluator) EvaluateBatch(ctx context.Context, refs []domain.ClientRef) ([]domain.HealthScore, error) {
	results := make([]domain.HealthScore, 0, len(refs))
	if len(refs) == 0 {
		return results, nil
	}

	now := e.now().UTC()

	ids := make([]uuid.UUID, len(refs))
	for i, ref := range refs {
		ids[i] = ref.ID
	}

	set, err := e.source.FetchSignalsBatch(ctx, ids, now)
	if err != nil {
		return nil, err
	}

	for _, ref := range refs {
		result, err := e.score(ref, set.For(ref.ID), now)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	e.metrics.Counter(observability.MetricHealthEvaluations, 1,
		observability.T("mode", "batch"))
	e.logger.Debug("portfolio evaluated", "clients", len(results))

	return results, nil
}

// score validates signals and applies the five factor functions. Both
// evaluation paths funnel through here.
func (e *Evaluator) score(ref domain.ClientRef, signals domain.Signals, now time.Time) (domain.HealthScore, error) {
	if err := signals.Validate(); err != nil {
		return domain.HealthScore{}, fmt.Errorf("client %s: %w", ref.ID, err)
	}

	factors := domain.FactorBreakdown{
		Communication: domain.ScoreCommunication(domain.DaysSince(signals.LastContactAt, now)),
		Tasks:         domain.ScoreTasks(signals.Tasks),
		Digests:       domain.ScoreDigests(signals.RecentDigests),
		Profitability: domain.ScoreProfitability(signals.Budget, signals.EstimatedCost),
		Followups:     domain.ScoreFollowups(signals.OverdueFollowups),
	}

	return domain.NewHealthScore(ref, factors), nil
}
