package app

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	healthApplication "github.com/felixgeelhaar/pulso/internal/health/application"
	healthDomain "github.com/felixgeelhaar/pulso/internal/health/domain"
	insightServices "github.com/felixgeelhaar/pulso/internal/insights/application/services"
	insightsDomain "github.com/felixgeelhaar/pulso/internal/insights/domain"
	"github.com/felixgeelhaar/pulso/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/pulso/pkg/observability"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var sweepNow = time.Date(2026, 5, 15, 12, 0, 0, 0, time.UTC)

type mockCatalog struct {
	mock.Mock
}

func (m *mockCatalog) Find(ctx context.Context, clientID uuid.UUID) (healthDomain.ClientRef, error) {
	args := m.Called(ctx, clientID)
	return args.Get(0).(healthDomain.ClientRef), args.Error(1)
}

func (m *mockCatalog) ListActive(ctx context.Context) ([]healthDomain.ClientRef, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]healthDomain.ClientRef), args.Error(1)
}

type mockSignalSource struct {
	mock.Mock
}

func (m *mockSignalSource) FetchSignals(ctx context.Context, clientID uuid.UUID, now time.Time) (healthDomain.Signals, error) {
	args := m.Called(ctx, clientID, now)
	return args.Get(0).(healthDomain.Signals), args.Error(1)
}

func (m *mockSignalSource) FetchSignalsBatch(ctx context.Context, clientIDs []uuid.UUID, now time.Time) (healthDomain.SignalSet, error) {
	args := m.Called(ctx, clientIDs, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(healthDomain.SignalSet), args.Error(1)
}

type mockInsightRepo struct {
	mock.Mock
}

func (m *mockInsightRepo) Save(ctx context.Context, insight *insightsDomain.Insight) error {
	args := m.Called(ctx, insight)
	return args.Error(0)
}

func (m *mockInsightRepo) FindByID(ctx context.Context, id uuid.UUID) (*insightsDomain.Insight, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*insightsDomain.Insight), args.Error(1)
}

func (m *mockInsightRepo) FindActiveByClientAndType(ctx context.Context, clientID uuid.UUID, insightType insightsDomain.InsightType) (*insightsDomain.Insight, error) {
	args := m.Called(ctx, clientID, insightType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*insightsDomain.Insight), args.Error(1)
}

func (m *mockInsightRepo) List(ctx context.Context, clientID *uuid.UUID, status *insightsDomain.InsightStatus) ([]*insightsDomain.Insight, error) {
	args := m.Called(ctx, clientID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*insightsDomain.Insight), args.Error(1)
}

type recordedEvent struct {
	routingKey string
	payload    []byte
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (p *recordingPublisher) Publish(_ context.Context, routingKey string, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, recordedEvent{routingKey: routingKey, payload: payload})
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

type memoryScoreCache struct {
	scores []healthDomain.HealthScore
	stored bool
}

func (c *memoryScoreCache) Get(context.Context) ([]healthDomain.HealthScore, bool, error) {
	return c.scores, c.stored, nil
}

func (c *memoryScoreCache) Put(_ context.Context, scores []healthDomain.HealthScore) error {
	c.scores = scores
	c.stored = true
	return nil
}

type sweepFixture struct {
	catalog   *mockCatalog
	source    *mockSignalSource
	repo      *mockInsightRepo
	publisher *recordingPublisher
	cache     *memoryScoreCache
	metrics   *observability.InMemoryMetrics
	sweeper   *Sweeper
}

func newSweepFixture(t *testing.T) *sweepFixture {
	t.Helper()

	f := &sweepFixture{
		catalog:   new(mockCatalog),
		source:    new(mockSignalSource),
		repo:      new(mockInsightRepo),
		publisher: &recordingPublisher{},
		cache:     &memoryScoreCache{},
		metrics:   observability.NewInMemoryMetrics(),
	}

	evaluator := healthApplication.NewEvaluator(f.source, nil, nil).
		WithNow(func() time.Time { return sweepNow })
	generator := insightServices.NewInsightGenerator(f.repo, insightsDomain.DefaultThresholds(), nil, nil)

	f.sweeper = NewSweeper(f.catalog, evaluator, f.source, generator,
		f.cache, f.publisher, SweeperConfig{Interval: time.Hour}, nil, f.metrics).
		WithNow(func() time.Time { return sweepNow })
	return f
}

func TestSweeper_RunOnce(t *testing.T) {
	f := newSweepFixture(t)

	healthy := healthDomain.ClientRef{ID: uuid.New(), Name: "Acme"}
	troubled := healthDomain.ClientRef{ID: uuid.New(), Name: "Beta"}

	lastContact := sweepNow.AddDate(0, 0, -2)
	set := healthDomain.SignalSet{
		healthy.ID: {
			LastContactAt: &lastContact,
			Tasks:         healthDomain.TaskCounts{Total: 4, Completed: 4},
			RecentDigests: 4,
			Budget:        healthDomain.BudgetOf(2000),
			EstimatedCost: 600,
		},
		troubled.ID: {
			Tasks:            healthDomain.TaskCounts{Total: 6, Completed: 1, Overdue: 4},
			Budget:           healthDomain.BudgetOf(1000),
			EstimatedCost:    1300,
			OverdueFollowups: 4,
		},
	}

	f.catalog.On("ListActive", mock.Anything).Return([]healthDomain.ClientRef{healthy, troubled}, nil)
	f.source.On("FetchSignalsBatch", mock.Anything, mock.Anything, mock.Anything).Return(set, nil)
	f.repo.On("FindActiveByClientAndType", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, insightsDomain.ErrInsightNotFound)
	f.repo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Insight")).Return(nil)

	result, err := f.sweeper.RunOnce(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, result.ClientsScored)
	assert.Equal(t, 1, result.AtRisk)
	assert.Greater(t, result.InsightsGenerated, 0)

	// Snapshot cached for the CLI to read.
	require.True(t, f.cache.stored)
	require.Len(t, f.cache.scores, 2)
	assert.Equal(t, 100, f.cache.scores[0].Score)
	assert.Equal(t, healthDomain.RiskAtRisk, f.cache.scores[1].RiskLevel)

	// One advisory event for the at-risk client.
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, eventbus.RoutingKeyHealthAtRisk, f.publisher.events[0].routingKey)

	var event struct {
		ClientID   uuid.UUID `json:"client_id"`
		ClientName string    `json:"client_name"`
		Score      int       `json:"score"`
		RiskLevel  string    `json:"risk_level"`
	}
	require.NoError(t, json.Unmarshal(f.publisher.events[0].payload, &event))
	assert.Equal(t, troubled.ID, event.ClientID)
	assert.Equal(t, "Beta", event.ClientName)
	assert.Equal(t, 0, event.Score)
	assert.Equal(t, "at_risk", event.RiskLevel)

	assert.Equal(t, int64(1), f.metrics.GetCounter(observability.MetricSweepRuns))
	assert.Equal(t, int64(2), f.metrics.GetCounter(observability.MetricSweepClientsScored))
	assert.Equal(t, int64(1), f.metrics.GetCounter(observability.MetricHealthAtRisk))
}

func TestSweeper_RunOnce_SecondSweepSkipsDuplicates(t *testing.T) {
	f := newSweepFixture(t)

	troubled := healthDomain.ClientRef{ID: uuid.New(), Name: "Beta"}
	set := healthDomain.SignalSet{
		troubled.ID: {OverdueFollowups: 4},
	}

	f.catalog.On("ListActive", mock.Anything).Return([]healthDomain.ClientRef{troubled}, nil)
	f.source.On("FetchSignalsBatch", mock.Anything, mock.Anything, mock.Anything).Return(set, nil)

	existing, err := insightsDomain.NewInsight(troubled.ID, insightsDomain.InsightFollowup,
		insightsDomain.InsightPriorityHigh, "Follow-ups overdue for Beta", "", "", sweepNow)
	require.NoError(t, err)

	f.repo.On("FindActiveByClientAndType", mock.Anything, troubled.ID, insightsDomain.InsightFollowup).
		Return(existing, nil)
	f.repo.On("FindActiveByClientAndType", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, insightsDomain.ErrInsightNotFound)
	f.repo.On("Save", mock.Anything, mock.AnythingOfType("*domain.Insight")).Return(nil)

	result, err := f.sweeper.RunOnce(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, result.SkippedDuplicate)
}

func TestSweeper_RunOnce_CatalogError(t *testing.T) {
	f := newSweepFixture(t)

	f.catalog.On("ListActive", mock.Anything).Return(nil, assert.AnError)

	_, err := f.sweeper.RunOnce(context.Background())

	assert.ErrorIs(t, err, assert.AnError)
	assert.Empty(t, f.publisher.events)
}

func TestSweeper_StartStop(t *testing.T) {
	f := newSweepFixture(t)

	f.sweeper.Start(context.Background())
	assert.True(t, f.sweeper.IsRunning())

	f.sweeper.Stop()
	assert.False(t, f.sweeper.IsRunning())
}
