package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/felixgeelhaar/pulso/internal/health/application"
	"github.com/felixgeelhaar/pulso/internal/health/application/queries"
	"github.com/felixgeelhaar/pulso/internal/health/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScoreCache struct {
	snapshot []domain.HealthScore
	getErr   error
	puts     int
}

func (f *fakeScoreCache) Get(_ context.Context) ([]domain.HealthScore, bool, error) {
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	if f.snapshot == nil {
		return nil, false, nil
	}
	return f.snapshot, true, nil
}

func (f *fakeScoreCache) Put(_ context.Context, scores []domain.HealthScore) error {
	f.puts++
	f.snapshot = scores
	return nil
}

func portfolioFixture(now time.Time) (*fakeCatalog, *fakeSignalSource) {
	healthy := domain.ClientRef{ID: uuid.New(), Name: "Healthy SL"}
	quiet := domain.ClientRef{ID: uuid.New(), Name: "Quiet GmbH"}
	slipping := domain.ClientRef{ID: uuid.New(), Name: "Slipping AB"}

	recent := now.Add(-24 * time.Hour)
	stale := now.AddDate(0, 0, -20)

	catalog := &fakeCatalog{
		clients: map[uuid.UUID]domain.ClientRef{
			healthy.ID: healthy, quiet.ID: quiet, slipping.ID: slipping,
		},
		active: []domain.ClientRef{healthy, quiet, slipping},
	}
	source := &fakeSignalSource{signals: map[uuid.UUID]domain.Signals{
		healthy.ID: {
			LastContactAt: &recent,
			Tasks:         domain.TaskCounts{Total: 3, Completed: 3},
			RecentDigests: 4,
			Budget:        domain.BudgetOf(3000),
			EstimatedCost: 900,
		},
		slipping.ID: {
			LastContactAt:    &stale,
			Tasks:            domain.TaskCounts{Total: 5, Completed: 1, Overdue: 3},
			OverdueFollowups: 1,
		},
		// quiet has no signals at all
	}}
	return catalog, source
}

func newListHandler(catalog *fakeCatalog, source *fakeSignalSource, cache application.ScoreCache, now time.Time) *queries.ListHealthScoresHandler {
	evaluator := application.NewEvaluator(source, nil, nil).WithNow(func() time.Time { return now })
	return queries.NewListHealthScoresHandler(catalog, evaluator, cache, nil, nil)
}

func TestListHealthScoresHandler_SortsAscendingByScore(t *testing.T) {
	now := time.Date(2026, 4, 20, 10, 0, 0, 0, time.UTC)
	catalog, source := portfolioFixture(now)
	handler := newListHandler(catalog, source, nil, now)

	scores, err := handler.Handle(context.Background(), queries.ListHealthScoresQuery{})

	require.NoError(t, err)
	require.Len(t, scores, 3)
	for i := 1; i < len(scores); i++ {
		assert.LessOrEqual(t, scores[i-1].Score, scores[i].Score, "worst accounts must lead the list")
	}
}

func TestListHealthScoresHandler_TieBreaksByName(t *testing.T) {
	now := time.Date(2026, 4, 20, 10, 0, 0, 0, time.UTC)
	a := domain.ClientRef{ID: uuid.New(), Name: "Zeta"}
	b := domain.ClientRef{ID: uuid.New(), Name: "Alpha"}
	catalog := &fakeCatalog{
		clients: map[uuid.UUID]domain.ClientRef{a.ID: a, b.ID: b},
		active:  []domain.ClientRef{a, b},
	}
	// Identical (absent) signals give identical scores.
	handler := newListHandler(catalog, &fakeSignalSource{}, nil, now)

	scores, err := handler.Handle(context.Background(), queries.ListHealthScoresQuery{})

	require.NoError(t, err)
	require.Len(t, scores, 2)
	assert.Equal(t, "Alpha", scores[0].ClientName)
	assert.Equal(t, "Zeta", scores[1].ClientName)
}

func TestListHealthScoresHandler_FiltersByRiskLevel(t *testing.T) {
	now := time.Date(2026, 4, 20, 10, 0, 0, 0, time.UTC)
	catalog, source := portfolioFixture(now)
	handler := newListHandler(catalog, source, nil, now)

	scores, err := handler.Handle(context.Background(), queries.ListHealthScoresQuery{RiskLevel: domain.RiskAtRisk})

	require.NoError(t, err)
	require.NotEmpty(t, scores)
	for _, score := range scores {
		assert.Equal(t, domain.RiskAtRisk, score.RiskLevel)
	}
}

func TestListHealthScoresHandler_ServesFromCache(t *testing.T) {
	now := time.Date(2026, 4, 20, 10, 0, 0, 0, time.UTC)
	catalog, source := portfolioFixture(now)
	cached := []domain.HealthScore{
		{ClientID: uuid.New(), ClientName: "Cached Co", Score: 55, RiskLevel: domain.RiskWarning},
	}
	cache := &fakeScoreCache{snapshot: cached}
	handler := newListHandler(catalog, source, cache, now)

	scores, err := handler.Handle(context.Background(), queries.ListHealthScoresQuery{})

	require.NoError(t, err)
	assert.Equal(t, cached, scores)
	assert.Zero(t, source.batchCalls, "cache hit must not re-evaluate")
}

func TestListHealthScoresHandler_CacheMissEvaluatesWithoutWriting(t *testing.T) {
	now := time.Date(2026, 4, 20, 10, 0, 0, 0, time.UTC)
	catalog, source := portfolioFixture(now)
	cache := &fakeScoreCache{}
	handler := newListHandler(catalog, source, cache, now)

	scores, err := handler.Handle(context.Background(), queries.ListHealthScoresQuery{})

	require.NoError(t, err)
	assert.Len(t, scores, 3)
	assert.Equal(t, 1, source.batchCalls)
	assert.Zero(t, cache.puts, "only the sweep worker refreshes the snapshot")
}

func TestListHealthScoresHandler_CacheFailureDegradesToEvaluation(t *testing.T) {
	now := time.Date(2026, 4, 20, 10, 0, 0, 0, time.UTC)
	catalog, source := portfolioFixture(now)
	cache := &fakeScoreCache{getErr: errors.New("redis: connection refused")}
	handler := newListHandler(catalog, source, cache, now)

	scores, err := handler.Handle(context.Background(), queries.ListHealthScoresQuery{})

	require.NoError(t, err, "cache trouble must not fail the listing")
	assert.Len(t, scores, 3)
	assert.Equal(t, 1, source.batchCalls)
}
