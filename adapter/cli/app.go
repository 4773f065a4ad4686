package cli

import (
	"context"
	"fmt"
	"strings"

	billingCommands "github.com/felixgeelhaar/pulso/internal/billing/application/commands"
	billingQueries "github.com/felixgeelhaar/pulso/internal/billing/application/queries"
	crmCommands "github.com/felixgeelhaar/pulso/internal/crm/application/commands"
	crmQueries "github.com/felixgeelhaar/pulso/internal/crm/application/queries"
	digestCommands "github.com/felixgeelhaar/pulso/internal/digests/application/commands"
	digestQueries "github.com/felixgeelhaar/pulso/internal/digests/application/queries"
	healthQueries "github.com/felixgeelhaar/pulso/internal/health/application/queries"
	insightCommands "github.com/felixgeelhaar/pulso/internal/insights/application/commands"
	insightQueries "github.com/felixgeelhaar/pulso/internal/insights/application/queries"
	workCommands "github.com/felixgeelhaar/pulso/internal/work/application/commands"
	workQueries "github.com/felixgeelhaar/pulso/internal/work/application/queries"
	"github.com/google/uuid"
)

// Migrator applies database schema migrations.
type Migrator interface {
	MigratePostgres(ctx context.Context) error
}

// App holds the CLI application dependencies.
type App struct {
	// Client Command Handlers
	CreateClientHandler       *crmCommands.CreateClientHandler
	ChangeClientStatusHandler *crmCommands.ChangeClientStatusHandler
	UpdateClientBudgetHandler *crmCommands.UpdateClientBudgetHandler
	LogCommunicationHandler   *crmCommands.LogCommunicationHandler
	ResolveFollowupHandler    *crmCommands.ResolveFollowupHandler

	// Client Query Handlers
	GetClientHandler            *crmQueries.GetClientHandler
	ListClientsHandler          *crmQueries.ListClientsHandler
	ListCommunicationsHandler   *crmQueries.ListCommunicationsHandler
	ListOverdueFollowupsHandler *crmQueries.ListOverdueFollowupsHandler

	// Work Command Handlers
	CreateTaskHandler   *workCommands.CreateTaskHandler
	StartTaskHandler    *workCommands.StartTaskHandler
	CompleteTaskHandler *workCommands.CompleteTaskHandler
	LogTimeHandler      *workCommands.LogTimeHandler
	AddMemberHandler    *workCommands.AddMemberHandler

	// Work Query Handlers
	ListTasksHandler   *workQueries.ListTasksHandler
	ListMembersHandler *workQueries.ListMembersHandler

	// Digest Command Handlers
	RecordDigestHandler   *digestCommands.RecordDigestHandler
	ReviewDigestHandler   *digestCommands.ReviewDigestHandler
	MarkDigestSentHandler *digestCommands.MarkDigestSentHandler

	// Digest Query Handlers
	ListDigestsHandler *digestQueries.ListDigestsHandler

	// Health Query Handlers
	GetClientHealthHandler  *healthQueries.GetClientHealthHandler
	ListHealthScoresHandler *healthQueries.ListHealthScoresHandler

	// Insight Command Handlers
	GenerateInsightsHandler *insightCommands.GenerateInsightsHandler
	DismissInsightHandler   *insightCommands.DismissInsightHandler
	MarkInsightActedHandler *insightCommands.MarkInsightActedHandler

	// Insight Query Handlers
	ListInsightsHandler *insightQueries.ListInsightsHandler

	// Billing Command Handlers
	RecordBillingEventHandler *billingCommands.RecordBillingEventHandler
	SyncContactsHandler       *billingCommands.SyncContactsHandler

	// Billing Query Handlers
	ListBillingEventsHandler *billingQueries.ListBillingEventsHandler

	// Migrations (configured per environment)
	Migrator Migrator
}

// NewApp creates a new CLI application with the provided handlers.
func NewApp(
	createClientHandler *crmCommands.CreateClientHandler,
	changeClientStatusHandler *crmCommands.ChangeClientStatusHandler,
	updateClientBudgetHandler *crmCommands.UpdateClientBudgetHandler,
	logCommunicationHandler *crmCommands.LogCommunicationHandler,
	resolveFollowupHandler *crmCommands.ResolveFollowupHandler,
	getClientHandler *crmQueries.GetClientHandler,
	listClientsHandler *crmQueries.ListClientsHandler,
	listCommunicationsHandler *crmQueries.ListCommunicationsHandler,
	listOverdueFollowupsHandler *crmQueries.ListOverdueFollowupsHandler,
	createTaskHandler *workCommands.CreateTaskHandler,
	startTaskHandler *workCommands.StartTaskHandler,
	completeTaskHandler *workCommands.CompleteTaskHandler,
	logTimeHandler *workCommands.LogTimeHandler,
	addMemberHandler *workCommands.AddMemberHandler,
	listTasksHandler *workQueries.ListTasksHandler,
	listMembersHandler *workQueries.ListMembersHandler,
	recordDigestHandler *digestCommands.RecordDigestHandler,
	reviewDigestHandler *digestCommands.ReviewDigestHandler,
	markDigestSentHandler *digestCommands.MarkDigestSentHandler,
	listDigestsHandler *digestQueries.ListDigestsHandler,
	getClientHealthHandler *healthQueries.GetClientHealthHandler,
	listHealthScoresHandler *healthQueries.ListHealthScoresHandler,
	generateInsightsHandler *insightCommands.GenerateInsightsHandler,
	dismissInsightHandler *insightCommands.DismissInsightHandler,
	markInsightActedHandler *insightCommands.MarkInsightActedHandler,
	listInsightsHandler *insightQueries.ListInsightsHandler,
	recordBillingEventHandler *billingCommands.RecordBillingEventHandler,
	syncContactsHandler *billingCommands.SyncContactsHandler,
	listBillingEventsHandler *billingQueries.ListBillingEventsHandler,
) *App {
	return &App{
		CreateClientHandler:         createClientHandler,
		ChangeClientStatusHandler:   changeClientStatusHandler,
		UpdateClientBudgetHandler:   updateClientBudgetHandler,
		LogCommunicationHandler:     logCommunicationHandler,
		ResolveFollowupHandler:      resolveFollowupHandler,
		GetClientHandler:            getClientHandler,
		ListClientsHandler:          listClientsHandler,
		ListCommunicationsHandler:   listCommunicationsHandler,
		ListOverdueFollowupsHandler: listOverdueFollowupsHandler,
		CreateTaskHandler:           createTaskHandler,
		StartTaskHandler:            startTaskHandler,
		CompleteTaskHandler:         completeTaskHandler,
		LogTimeHandler:              logTimeHandler,
		AddMemberHandler:            addMemberHandler,
		ListTasksHandler:            listTasksHandler,
		ListMembersHandler:          listMembersHandler,
		RecordDigestHandler:         recordDigestHandler,
		ReviewDigestHandler:         reviewDigestHandler,
		MarkDigestSentHandler:       markDigestSentHandler,
		ListDigestsHandler:          listDigestsHandler,
		GetClientHealthHandler:      getClientHealthHandler,
		ListHealthScoresHandler:     listHealthScoresHandler,
		GenerateInsightsHandler:     generateInsightsHandler,
		DismissInsightHandler:       dismissInsightHandler,
		MarkInsightActedHandler:     markInsightActedHandler,
		ListInsightsHandler:         listInsightsHandler,
		RecordBillingEventHandler:   recordBillingEventHandler,
		SyncContactsHandler:         syncContactsHandler,
		ListBillingEventsHandler:    listBillingEventsHandler,
	}
}

// SetMigrator updates the migrator.
func (a *App) SetMigrator(m Migrator) {
	a.Migrator = m
}

// ResolveClientID turns a client reference into an ID. The reference
// may be a full UUID or a case-insensitive client name, so commands
// read naturally: pulso health score "Acme Corp".
func (a *App) ResolveClientID(ctx context.Context, ref string) (uuid.UUID, error) {
	if id, err := uuid.Parse(ref); err == nil {
		return id, nil
	}

	if a.ListClientsHandler == nil {
		return uuid.Nil, fmt.Errorf("invalid client ID: %s", ref)
	}

	clients, err := a.ListClientsHandler.Handle(ctx, crmQueries.ListClientsQuery{})
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to look up client %q: %w", ref, err)
	}

	var matches []uuid.UUID
	for _, c := range clients {
		if strings.EqualFold(strings.TrimSpace(ref), c.Name) {
			matches = append(matches, c.ID)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return uuid.Nil, fmt.Errorf("no client named %q", ref)
	default:
		return uuid.Nil, fmt.Errorf("%d clients named %q, use the ID instead", len(matches), ref)
	}
}

// app is the global CLI application instance
var app *App

// SetApp sets the global CLI application instance.
func SetApp(a *App) {
	app = a
}

// GetApp returns the global CLI application instance.
func GetApp() *App {
	return app
}
