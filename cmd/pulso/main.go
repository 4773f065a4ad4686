package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/pulso/adapter/cli"
	cliBilling "github.com/felixgeelhaar/pulso/adapter/cli/billing"
	cliClient "github.com/felixgeelhaar/pulso/adapter/cli/client"
	"github.com/felixgeelhaar/pulso/adapter/cli/comm"
	"github.com/felixgeelhaar/pulso/adapter/cli/digest"
	cliHealth "github.com/felixgeelhaar/pulso/adapter/cli/health"
	cliInsights "github.com/felixgeelhaar/pulso/adapter/cli/insights"
	"github.com/felixgeelhaar/pulso/adapter/cli/member"
	"github.com/felixgeelhaar/pulso/adapter/cli/task"
	"github.com/felixgeelhaar/pulso/adapter/cli/timelog"
	"github.com/felixgeelhaar/pulso/internal/app"
	"github.com/felixgeelhaar/pulso/pkg/config"
	"github.com/felixgeelhaar/pulso/pkg/observability"
)

func main() {
	// Setup logger. CLI output goes to stdout, logs stay on stderr.
	logCfg := observability.DefaultLogConfig()
	logCfg.ServiceVersion = cli.Version
	logger := observability.NewLogger(logCfg)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		cancel()
	}()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		// In development without .env, use defaults
		logger.Warn("failed to load config, using development mode", "error", err)
		cfg = &config.Config{AppEnv: "development"}
	}

	// Update logger from config. Development always logs debug.
	logCfg.Level = observability.LogLevel(cfg.LogLevel)
	if cfg.IsDevelopment() {
		logCfg.Level = observability.LogLevelDebug
	}
	if cfg.LogFormat != "" {
		logCfg.Format = observability.LogFormat(cfg.LogFormat)
	}
	logger = observability.NewLogger(logCfg)
	cli.SetLogger(logger)

	// Try to initialize the full container
	var cliApp *cli.App
	container, err := app.NewContainer(ctx, cfg, logger)
	if err != nil {
		if cfg.IsDevelopment() {
			logger.Warn("failed to initialize container, running in limited mode", "error", err)
			// In development, allow CLI to run without database
			cliApp = nil
		} else {
			logger.Error("failed to initialize container", "error", err)
			os.Exit(1)
		}
	} else {
		defer container.Close()

		// Create CLI app with handlers
		cliApp = cli.NewApp(
			container.CreateClientHandler,
			container.ChangeClientStatusHandler,
			container.UpdateClientBudgetHandler,
			container.LogCommunicationHandler,
			container.ResolveFollowupHandler,
			container.GetClientHandler,
			container.ListClientsHandler,
			container.ListCommunicationsHandler,
			container.ListOverdueFollowupsHandler,
			container.CreateTaskHandler,
			container.StartTaskHandler,
			container.CompleteTaskHandler,
			container.LogTimeHandler,
			container.AddMemberHandler,
			container.ListTasksHandler,
			container.ListMembersHandler,
			container.RecordDigestHandler,
			container.ReviewDigestHandler,
			container.MarkDigestSentHandler,
			container.ListDigestsHandler,
			container.GetClientHealthHandler,
			container.ListHealthScoresHandler,
			container.GenerateInsightsHandler,
			container.DismissInsightHandler,
			container.MarkInsightActedHandler,
			container.ListInsightsHandler,
			container.RecordBillingEventHandler,
			container.SyncContactsHandler,
			container.ListBillingEventsHandler,
		)
		cliApp.SetMigrator(container)
	}

	// Set the CLI app
	cli.SetApp(cliApp)

	// Register commands
	cli.AddCommand(cliClient.Cmd)
	cli.AddCommand(comm.Cmd)
	cli.AddCommand(task.Cmd)
	cli.AddCommand(timelog.Cmd)
	cli.AddCommand(member.Cmd)
	cli.AddCommand(digest.Cmd)
	cli.AddCommand(cliHealth.Cmd)
	cli.AddCommand(cliInsights.Cmd)
	cli.AddCommand(cliBilling.Cmd)

	// Execute CLI
	cli.Execute()
}
