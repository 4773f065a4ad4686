package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	billingCommands "github.com/felixgeelhaar/pulso/internal/billing/application/commands"
	billingQueries "github.com/felixgeelhaar/pulso/internal/billing/application/queries"
	billingDomain "github.com/felixgeelhaar/pulso/internal/billing/domain"
	"github.com/felixgeelhaar/pulso/internal/billing/infrastructure/holded"
	billingPersistence "github.com/felixgeelhaar/pulso/internal/billing/infrastructure/persistence"
	crmCommands "github.com/felixgeelhaar/pulso/internal/crm/application/commands"
	crmQueries "github.com/felixgeelhaar/pulso/internal/crm/application/queries"
	crmDomain "github.com/felixgeelhaar/pulso/internal/crm/domain"
	crmPersistence "github.com/felixgeelhaar/pulso/internal/crm/infrastructure/persistence"
	digestCommands "github.com/felixgeelhaar/pulso/internal/digests/application/commands"
	digestQueries "github.com/felixgeelhaar/pulso/internal/digests/application/queries"
	digestsDomain "github.com/felixgeelhaar/pulso/internal/digests/domain"
	digestsPersistence "github.com/felixgeelhaar/pulso/internal/digests/infrastructure/persistence"
	healthApplication "github.com/felixgeelhaar/pulso/internal/health/application"
	healthQueries "github.com/felixgeelhaar/pulso/internal/health/application/queries"
	healthDomain "github.com/felixgeelhaar/pulso/internal/health/domain"
	healthCache "github.com/felixgeelhaar/pulso/internal/health/infrastructure/cache"
	healthPersistence "github.com/felixgeelhaar/pulso/internal/health/infrastructure/persistence"
	insightCommands "github.com/felixgeelhaar/pulso/internal/insights/application/commands"
	insightQueries "github.com/felixgeelhaar/pulso/internal/insights/application/queries"
	insightServices "github.com/felixgeelhaar/pulso/internal/insights/application/services"
	insightsDomain "github.com/felixgeelhaar/pulso/internal/insights/domain"
	insightsPersistence "github.com/felixgeelhaar/pulso/internal/insights/infrastructure/persistence"
	"github.com/felixgeelhaar/pulso/internal/shared/infrastructure/database"
	"github.com/felixgeelhaar/pulso/internal/shared/infrastructure/database/postgres"
	"github.com/felixgeelhaar/pulso/internal/shared/infrastructure/database/sqlite"
	"github.com/felixgeelhaar/pulso/internal/shared/infrastructure/eventbus"
	"github.com/felixgeelhaar/pulso/internal/shared/infrastructure/migrations"
	workCommands "github.com/felixgeelhaar/pulso/internal/work/application/commands"
	workQueries "github.com/felixgeelhaar/pulso/internal/work/application/queries"
	workDomain "github.com/felixgeelhaar/pulso/internal/work/domain"
	workPersistence "github.com/felixgeelhaar/pulso/internal/work/infrastructure/persistence"
	"github.com/felixgeelhaar/pulso/pkg/config"
	"github.com/felixgeelhaar/pulso/pkg/observability"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Container holds all application dependencies for the CLI and the
// sweep worker.
type Container struct {
	Config  *config.Config
	Logger  *slog.Logger
	Metrics observability.Metrics

	// Storage. Exactly one of Pool and SQLite is set, depending on the
	// driver detected from DATABASE_URL.
	Driver database.Driver
	Pool   *pgxpool.Pool
	SQLite *sql.DB

	// Redis, nil when no REDIS_URL is configured.
	RedisClient *redis.Client

	// Repositories
	ClientRepo        crmDomain.ClientRepository
	CommunicationRepo crmDomain.CommunicationRepository
	TaskRepo          workDomain.TaskRepository
	MemberRepo        workDomain.MemberRepository
	TimeEntryRepo     workDomain.TimeEntryRepository
	DigestRepo        digestsDomain.DigestRepository
	InsightRepo       insightsDomain.InsightRepository
	BillingEventRepo  billingDomain.BillingEventRepository

	// Health engine
	SignalSource  healthDomain.SignalSource
	ClientCatalog healthDomain.ClientCatalog
	Evaluator     *healthApplication.Evaluator
	ScoreCache    healthApplication.ScoreCache

	// Integrations
	EventPublisher eventbus.Publisher
	Holded         *holded.Client

	// Services
	InsightGenerator *insightServices.InsightGenerator

	// CRM handlers
	CreateClientHandler         *crmCommands.CreateClientHandler
	ChangeClientStatusHandler   *crmCommands.ChangeClientStatusHandler
	UpdateClientBudgetHandler   *crmCommands.UpdateClientBudgetHandler
	LogCommunicationHandler     *crmCommands.LogCommunicationHandler
	ResolveFollowupHandler      *crmCommands.ResolveFollowupHandler
	GetClientHandler            *crmQueries.GetClientHandler
	ListClientsHandler          *crmQueries.ListClientsHandler
	ListCommunicationsHandler   *crmQueries.ListCommunicationsHandler
	ListOverdueFollowupsHandler *crmQueries.ListOverdueFollowupsHandler

	// Work handlers
	CreateTaskHandler   *workCommands.CreateTaskHandler
	StartTaskHandler    *workCommands.StartTaskHandler
	CompleteTaskHandler *workCommands.CompleteTaskHandler
	LogTimeHandler      *workCommands.LogTimeHandler
	AddMemberHandler    *workCommands.AddMemberHandler
	ListTasksHandler    *workQueries.ListTasksHandler
	ListMembersHandler  *workQueries.ListMembersHandler

	// Digest handlers
	RecordDigestHandler   *digestCommands.RecordDigestHandler
	ReviewDigestHandler   *digestCommands.ReviewDigestHandler
	MarkDigestSentHandler *digestCommands.MarkDigestSentHandler
	ListDigestsHandler    *digestQueries.ListDigestsHandler

	// Health handlers
	GetClientHealthHandler  *healthQueries.GetClientHealthHandler
	ListHealthScoresHandler *healthQueries.ListHealthScoresHandler

	// Insight handlers
	GenerateInsightsHandler *insightCommands.GenerateInsightsHandler
	DismissInsightHandler   *insightCommands.DismissInsightHandler
	MarkInsightActedHandler *insightCommands.MarkInsightActedHandler
	ListInsightsHandler     *insightQueries.ListInsightsHandler

	// Billing handlers
	RecordBillingEventHandler *billingCommands.RecordBillingEventHandler
	SyncContactsHandler       *billingCommands.SyncContactsHandler
	ListBillingEventsHandler  *billingQueries.ListBillingEventsHandler
}

// NewContainer connects to the configured backends and wires every
// repository, service and handler. SQLite migrations run here so local
// mode needs no setup step; Postgres schemas are migrated explicitly
// via the migrate command.
func NewContainer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}

	c := &Container{
		Config:  cfg,
		Logger:  logger,
		Metrics: observability.NoopMetrics{},
		Driver:  database.DetectDriver(cfg.DatabaseURL),
	}

	if err := c.connectDatabase(ctx); err != nil {
		return nil, err
	}
	if err := c.connectRedis(ctx); err != nil {
		c.Close()
		return nil, err
	}
	if err := c.connectEventBus(); err != nil {
		c.Close()
		return nil, err
	}

	c.buildRepositories()
	c.buildHealthEngine()
	c.buildHandlers()

	return c, nil
}

func (c *Container) connectDatabase(ctx context.Context) error {
	cfg := c.Config

	switch c.Driver {
	case database.DriverPostgres:
		pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("connect to postgres: %w", err)
		}
		c.Pool = pool
		c.Logger.Info("connected to database", "driver", c.Driver)

	case database.DriverSQLite:
		path := cfg.SQLitePath()
		if cfg.DatabaseURL != "" {
			path = database.SQLitePathFromURL(cfg.DatabaseURL)
		}
		db, err := sqlite.Open(ctx, path)
		if err != nil {
			return fmt.Errorf("open sqlite database: %w", err)
		}
		if err := migrations.RunSQLiteMigrations(ctx, db); err != nil {
			db.Close()
			return fmt.Errorf("migrate sqlite database: %w", err)
		}
		c.SQLite = db
		c.Logger.Info("connected to database", "driver", c.Driver, "path", path)

	default:
		return fmt.Errorf("unsupported database driver: %s", c.Driver)
	}
	return nil
}

func (c *Container) connectRedis(ctx context.Context) error {
	cfg := c.Config
	if cfg.RedisURL == "" {
		return nil
	}

	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		if !cfg.IsDevelopment() {
			return fmt.Errorf("parse redis URL: %w", err)
		}
		c.Logger.Warn("invalid redis URL, health scores will not be cached", "error", err)
		return nil
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		if !cfg.IsDevelopment() {
			return fmt.Errorf("connect to redis: %w", err)
		}
		c.Logger.Warn("redis not available, health scores will not be cached", "error", err)
		return nil
	}

	c.RedisClient = client
	c.ScoreCache = healthCache.NewRedisScoreCache(client, cfg.HealthCacheTTL)
	c.Logger.Info("connected to redis")
	return nil
}

func (c *Container) connectEventBus() error {
	cfg := c.Config
	if cfg.RabbitMQURL == "" {
		c.EventPublisher = eventbus.NewNoopPublisher(c.Logger)
		return nil
	}

	publisher, err := eventbus.NewRabbitMQPublisher(cfg.RabbitMQURL, c.Logger)
	if err != nil {
		if !cfg.IsDevelopment() {
			return fmt.Errorf("connect to rabbitmq: %w", err)
		}
		c.Logger.Warn("rabbitmq not available, using noop publisher", "error", err)
		c.EventPublisher = eventbus.NewNoopPublisher(c.Logger)
		return nil
	}

	c.EventPublisher = publisher
	return nil
}

func (c *Container) buildRepositories() {
	if c.Driver == database.DriverPostgres {
		c.ClientRepo = crmPersistence.NewPostgresClientRepository(c.Pool)
		c.CommunicationRepo = crmPersistence.NewPostgresCommunicationRepository(c.Pool)
		c.TaskRepo = workPersistence.NewPostgresTaskRepository(c.Pool)
		c.MemberRepo = workPersistence.NewPostgresMemberRepository(c.Pool)
		c.TimeEntryRepo = workPersistence.NewPostgresTimeEntryRepository(c.Pool)
		c.DigestRepo = digestsPersistence.NewPostgresDigestRepository(c.Pool)
		c.InsightRepo = insightsPersistence.NewPostgresInsightRepository(c.Pool)
		c.BillingEventRepo = billingPersistence.NewPostgresBillingEventRepository(c.Pool)
		return
	}

	c.ClientRepo = crmPersistence.NewSQLiteClientRepository(c.SQLite)
	c.CommunicationRepo = crmPersistence.NewSQLiteCommunicationRepository(c.SQLite)
	c.TaskRepo = workPersistence.NewSQLiteTaskRepository(c.SQLite)
	c.MemberRepo = workPersistence.NewSQLiteMemberRepository(c.SQLite)
	c.TimeEntryRepo = workPersistence.NewSQLiteTimeEntryRepository(c.SQLite)
	c.DigestRepo = digestsPersistence.NewSQLiteDigestRepository(c.SQLite)
	c.InsightRepo = insightsPersistence.NewSQLiteInsightRepository(c.SQLite)
	c.BillingEventRepo = billingPersistence.NewSQLiteBillingEventRepository(c.SQLite)
}

func (c *Container) buildHealthEngine() {
	costing := healthPersistence.CostingConfig{DefaultHourlyRate: c.Config.DefaultHourlyRate}

	if c.Driver == database.DriverPostgres {
		c.SignalSource = healthPersistence.NewPostgresSignalSource(c.Pool, costing)
		c.ClientCatalog = healthPersistence.NewPostgresClientCatalog(c.Pool)
	} else {
		c.SignalSource = healthPersistence.NewSQLiteSignalSource(c.SQLite, costing)
		c.ClientCatalog = healthPersistence.NewSQLiteClientCatalog(c.SQLite)
	}

	c.Evaluator = healthApplication.NewEvaluator(c.SignalSource, c.Logger, c.Metrics)
}

func (c *Container) buildHandlers() {
	cfg := c.Config

	// CRM
	c.CreateClientHandler = crmCommands.NewCreateClientHandler(c.ClientRepo)
	c.ChangeClientStatusHandler = crmCommands.NewChangeClientStatusHandler(c.ClientRepo)
	c.UpdateClientBudgetHandler = crmCommands.NewUpdateClientBudgetHandler(c.ClientRepo)
	c.LogCommunicationHandler = crmCommands.NewLogCommunicationHandler(c.ClientRepo, c.CommunicationRepo)
	c.ResolveFollowupHandler = crmCommands.NewResolveFollowupHandler(c.CommunicationRepo)
	c.GetClientHandler = crmQueries.NewGetClientHandler(c.ClientRepo)
	c.ListClientsHandler = crmQueries.NewListClientsHandler(c.ClientRepo)
	c.ListCommunicationsHandler = crmQueries.NewListCommunicationsHandler(c.CommunicationRepo)
	c.ListOverdueFollowupsHandler = crmQueries.NewListOverdueFollowupsHandler(c.CommunicationRepo)

	// Work
	c.CreateTaskHandler = workCommands.NewCreateTaskHandler(c.TaskRepo)
	c.StartTaskHandler = workCommands.NewStartTaskHandler(c.TaskRepo)
	c.CompleteTaskHandler = workCommands.NewCompleteTaskHandler(c.TaskRepo)
	c.LogTimeHandler = workCommands.NewLogTimeHandler(c.TaskRepo, c.MemberRepo, c.TimeEntryRepo)
	c.AddMemberHandler = workCommands.NewAddMemberHandler(c.MemberRepo)
	c.ListTasksHandler = workQueries.NewListTasksHandler(c.TaskRepo)
	c.ListMembersHandler = workQueries.NewListMembersHandler(c.MemberRepo)

	// Digests
	c.RecordDigestHandler = digestCommands.NewRecordDigestHandler(c.DigestRepo)
	c.ReviewDigestHandler = digestCommands.NewReviewDigestHandler(c.DigestRepo)
	c.MarkDigestSentHandler = digestCommands.NewMarkDigestSentHandler(c.DigestRepo)
	c.ListDigestsHandler = digestQueries.NewListDigestsHandler(c.DigestRepo)

	// Health
	c.GetClientHealthHandler = healthQueries.NewGetClientHealthHandler(c.ClientCatalog, c.Evaluator)
	c.ListHealthScoresHandler = healthQueries.NewListHealthScoresHandler(
		c.ClientCatalog, c.Evaluator, c.ScoreCache, c.Logger, c.Metrics)

	// Insights
	thresholds := insightsDomain.AlertThresholds{
		DaysWithoutContact:  cfg.AlertDaysWithoutContact,
		DaysBeforeDeadline:  cfg.AlertDaysBeforeDeadline,
		DaysWithoutActivity: cfg.AlertDaysWithoutActivity,
		MaxOpenTasks:        cfg.AlertMaxOpenTasks,
	}
	c.InsightGenerator = insightServices.NewInsightGenerator(c.InsightRepo, thresholds, c.Logger, c.Metrics)
	c.GenerateInsightsHandler = insightCommands.NewGenerateInsightsHandler(
		c.ClientCatalog, c.SignalSource, c.Evaluator, c.InsightGenerator)
	c.DismissInsightHandler = insightCommands.NewDismissInsightHandler(c.InsightRepo)
	c.MarkInsightActedHandler = insightCommands.NewMarkInsightActedHandler(c.InsightRepo)
	c.ListInsightsHandler = insightQueries.NewListInsightsHandler(c.InsightRepo)

	// Billing. Without an API key the Holded client stays nil and the
	// sync handler reports the integration as disabled.
	var directory billingDomain.ContactDirectory
	if cfg.HoldedAPIKey != "" {
		c.Holded = holded.NewClient(cfg.HoldedAPIKey, c.Logger, c.Metrics,
			holded.WithBaseURL(cfg.HoldedBaseURL))
		directory = c.Holded
	}
	c.RecordBillingEventHandler = billingCommands.NewRecordBillingEventHandler(c.BillingEventRepo)
	c.SyncContactsHandler = billingCommands.NewSyncContactsHandler(directory, c.ClientRepo, c.Logger)
	c.ListBillingEventsHandler = billingQueries.NewListBillingEventsHandler(c.BillingEventRepo)
}

// MigratePostgres applies the embedded migrations to the connected
// PostgreSQL database.
func (c *Container) MigratePostgres(ctx context.Context) error {
	if c.Driver != database.DriverPostgres {
		return fmt.Errorf("migrate: container is running on %s, not postgres", c.Driver)
	}
	return migrations.RunPostgresMigrations(ctx, c.Pool)
}

// Ping checks the database connection, whichever driver is active.
func (c *Container) Ping(ctx context.Context) error {
	if c.Pool != nil {
		return c.Pool.Ping(ctx)
	}
	if c.SQLite != nil {
		return c.SQLite.PingContext(ctx)
	}
	return fmt.Errorf("no database connection")
}

// Probes builds the readiness probe set for the active backends. The
// database is required; Redis and RabbitMQ only degrade readiness when
// they fail.
func (c *Container) Probes() *observability.ProbeRegistry {
	registry := observability.NewProbeRegistry()
	registry.Register("database", observability.DatabaseProbe(c.Ping))

	if c.RedisClient != nil {
		registry.Register("redis", observability.RedisProbe(func(ctx context.Context) error {
			return c.RedisClient.Ping(ctx).Err()
		}))
	}

	if rabbit, ok := c.EventPublisher.(*eventbus.RabbitMQPublisher); ok {
		registry.Register("rabbitmq", observability.RabbitMQProbe(rabbit.HealthCheck))
	}

	return registry
}

// Close releases all resources in reverse dependency order.
func (c *Container) Close() {
	if c.EventPublisher != nil {
		if err := c.EventPublisher.Close(); err != nil {
			c.Logger.Warn("error closing event publisher", "error", err)
		}
	}

	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			c.Logger.Warn("error closing redis connection", "error", err)
		}
	}

	if c.Pool != nil {
		c.Pool.Close()
	}

	if c.SQLite != nil {
		if err := c.SQLite.Close(); err != nil {
			c.Logger.Warn("error closing sqlite database", "error", err)
		}
	}
}
