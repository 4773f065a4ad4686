package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	healthApplication "github.com/felixgeelhaar/pulso/internal/health/application"
	healthDomain "github.com/felixgeelhaar/pulso/internal/health/domain"
	insightServices "github.com/felixgeelhaar/pulso/internal/insights/application/services"
	"github.com/felixgeelhaar/pulso/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/pulso/pkg/observability"
	"github.com/google/uuid"
)

// SweeperConfig controls the sweep schedule.
type SweeperConfig struct {
	// Interval between portfolio sweeps.
	Interval time.Duration

	// RunOnStart triggers a sweep immediately instead of waiting for
	// the first tick.
	RunOnStart bool
}

// SweepResult summarizes one portfolio sweep.
type SweepResult struct {
	ClientsScored     int
	AtRisk            int
	InsightsGenerated int
	SkippedDuplicate  int
	Duration          time.Duration
}

// SweepStats captures worker loop statistics for health reporting.
type SweepStats struct {
	IsRunning     bool
	SweepCount    uint64
	ClientsScored int
	AtRisk        int
	LastError     string
	LastErrorAt   *time.Time
	LastSweepAt   *time.Time
}

// atRiskEvent is the advisory payload published for every client whose
// score lands in the at-risk band.
type atRiskEvent struct {
	ClientID   uuid.UUID `json:"client_id"`
	ClientName string    `json:"client_name"`
	Score      int       `json:"score"`
	RiskLevel  string    `json:"risk_level"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Sweeper periodically scores the active portfolio, refreshes the
// cached snapshot, publishes at-risk events and regenerates insights.
// Scores are derived data, so a crashed sweep loses nothing; the next
// run recomputes everything from the journals.
type Sweeper struct {
	catalog   healthDomain.ClientCatalog
	source    healthDomain.SignalSource
	evaluator *healthApplication.Evaluator
	generator *insightServices.InsightGenerator
	cache     healthApplication.ScoreCache
	publisher eventbus.Publisher
	config    SweeperConfig
	logger    *slog.Logger
	metrics   observability.Metrics
	now       func() time.Time

	mu       sync.Mutex
	running  bool
	stopChan chan struct{}
	wg       sync.WaitGroup

	statsMu sync.Mutex
	stats   SweepStats
}

// NewSweeper creates a sweeper. The cache may be nil, in which case
// snapshots are simply not stored.
func NewSweeper(
	catalog healthDomain.ClientCatalog,
	evaluator *healthApplication.Evaluator,
	source healthDomain.SignalSource,
	generator *insightServices.InsightGenerator,
	cache healthApplication.ScoreCache,
	publisher eventbus.Publisher,
	config SweeperConfig,
	logger *slog.Logger,
	metrics observability.Metrics,
) *Sweeper {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = observability.NoopMetrics{}
	}
	if config.Interval <= 0 {
		config.Interval = 15 * time.Minute
	}
	return &Sweeper{
		catalog:   catalog,
		source:    source,
		evaluator: evaluator,
		generator: generator,
		cache:     cache,
		publisher: publisher,
		config:    config,
		logger:    logger,
		metrics:   metrics,
		now:       time.Now,
		stopChan:  make(chan struct{}),
	}
}

// NewSweeper builds a sweeper from the container's wiring.
func (c *Container) NewSweeper() *Sweeper {
	return NewSweeper(
		c.ClientCatalog,
		c.Evaluator,
		c.SignalSource,
		c.InsightGenerator,
		c.ScoreCache,
		c.EventPublisher,
		SweeperConfig{
			Interval:   c.Config.SweepInterval,
			RunOnStart: c.Config.SweepOnStart,
		},
		c.Logger,
		c.Metrics,
	)
}

// WithNow overrides the sweep clock for tests.
func (s *Sweeper) WithNow(now func() time.Time) *Sweeper {
	s.now = now
	return s
}

// Start begins the sweep loop in a goroutine.
func (s *Sweeper) Start(ctx context.Context) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.stopChan = make(chan struct{})
	s.mu.Unlock()

	s.wg.Add(1)
	go s.run(ctx)

	s.logger.Info("sweep worker started",
		"interval", s.config.Interval,
		"run_on_start", s.config.RunOnStart,
	)
}

// Stop gracefully stops the sweep loop, waiting for an in-flight sweep
// to finish.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopChan)
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Info("sweep worker stopped")
}

// IsRunning reports whether the sweep loop is active.
func (s *Sweeper) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// GetStats returns current sweep statistics.
func (s *Sweeper) GetStats() SweepStats {
	s.statsMu.Lock()
	defer s.statsMu.Unlock()

	stats := s.stats
	stats.IsRunning = s.IsRunning()
	return stats
}

func (s *Sweeper) recordSweep(result *SweepResult) {
	s.statsMu.Lock()
	defer s.statsMu.Unlock()

	now := s.now()
	s.stats.SweepCount++
	s.stats.ClientsScored = result.ClientsScored
	s.stats.AtRisk = result.AtRisk
	s.stats.LastSweepAt = &now
}

func (s *Sweeper) recordFailure(err error) {
	s.statsMu.Lock()
	defer s.statsMu.Unlock()

	now := s.now()
	s.stats.LastError = err.Error()
	s.stats.LastErrorAt = &now
}

func (s *Sweeper) run(ctx context.Context) {
	defer s.wg.Done()

	if s.config.RunOnStart {
		s.sweep(ctx)
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	result, err := s.RunOnce(ctx)
	if err != nil {
		s.recordFailure(err)
		s.logger.Error("portfolio sweep failed", "error", err)
		return
	}

	s.recordSweep(result)
	s.logger.Info("portfolio sweep complete",
		"clients_scored", result.ClientsScored,
		"at_risk", result.AtRisk,
		"insights_generated", result.InsightsGenerated,
		"duration", result.Duration,
	)
}

// RunOnce performs a single sweep: score the portfolio, cache the
// snapshot, publish at-risk events, regenerate insights. Publish and
// cache failures are logged and skipped; the sweep carries on because
// the score data itself is still good.
func (s *Sweeper) RunOnce(ctx context.Context) (*SweepResult, error) {
	started := time.Now()

	refs, err := s.catalog.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active clients: %w", err)
	}

	scores, err := s.evaluator.EvaluateBatch(ctx, refs)
	if err != nil {
		return nil, fmt.Errorf("evaluate portfolio: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Put(ctx, scores); err != nil {
			s.logger.Warn("failed to cache health snapshot", "error", err)
		}
	}

	result := &SweepResult{ClientsScored: len(scores)}
	occurredAt := s.now().UTC()
	for _, score := range scores {
		if score.RiskLevel != healthDomain.RiskAtRisk {
			continue
		}
		result.AtRisk++

		event := atRiskEvent{
			ClientID:   score.ClientID,
			ClientName: score.ClientName,
			Score:      score.Score,
			RiskLevel:  string(score.RiskLevel),
			OccurredAt: occurredAt,
		}
		if err := eventbus.PublishJSON(ctx, s.publisher, eventbus.RoutingKeyHealthAtRisk, event); err != nil {
			s.logger.Warn("failed to publish at-risk event",
				"client_id", score.ClientID,
				"error", err,
			)
		}
	}

	generated, err := s.regenerateInsights(ctx, refs, scores, occurredAt)
	if err != nil {
		return nil, err
	}
	result.InsightsGenerated = generated.Generated
	result.SkippedDuplicate = generated.SkippedDuplicate
	result.Duration = time.Since(started)

	s.metrics.Counter(observability.MetricSweepRuns, 1)
	s.metrics.Counter(observability.MetricSweepClientsScored, int64(result.ClientsScored))
	s.metrics.Counter(observability.MetricHealthAtRisk, int64(result.AtRisk))
	s.metrics.Timing(observability.MetricSweepDuration, result.Duration)

	return result, nil
}

// regenerateInsights feeds the fresh scores plus their underlying
// signals through the insight rules.
func (s *Sweeper) regenerateInsights(ctx context.Context, refs []healthDomain.ClientRef, scores []healthDomain.HealthScore, now time.Time) (*insightServices.GenerationResult, error) {
	ids := make([]uuid.UUID, len(refs))
	for i, ref := range refs {
		ids[i] = ref.ID
	}

	set, err := s.source.FetchSignalsBatch(ctx, ids, now)
	if err != nil {
		return nil, fmt.Errorf("fetch signals for insights: %w", err)
	}

	reports := make([]insightServices.ClientReport, len(scores))
	for i, score := range scores {
		reports[i] = insightServices.ClientReport{
			Score:   score,
			Signals: set.For(score.ClientID),
		}
	}

	generated, err := s.generator.Generate(ctx, reports, now)
	if err != nil {
		return nil, fmt.Errorf("generate insights: %w", err)
	}
	return generated, nil
}
