package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kubev2v/squad-to-scale-migrator/internal/config"
	"github.com/kubev2v/squad-to-scale-migrator/internal/handlers"
	"github.com/kubev2v/squad-to-scale-migrator/internal/models"
	"github.com/kubev2v/squad-to-scale-migrator/internal/server"
	"github.com/kubev2v/squad-to-scale-migrator/internal/services"
	"github.com/kubev2v/squad-to-scale-migrator/internal/store"
	"github.com/kubev2v/squad-to-scale-migrator/internal/store/migrations"
	"github.com/kubev2v/squad-to-scale-migrator/pkg/httpclient"
	"github.com/kubev2v/squad-to-scale-migrator/pkg/jira"
	"github.com/kubev2v/squad-to-scale-migrator/pkg/scale"
	"github.com/kubev2v/squad-to-scale-migrator/pkg/scheduler"
	"github.com/kubev2v/squad-to-scale-migrator/pkg/squad"
)

var (
	statusAddr string
	logLevel   string
	logFormat  string
)

var migrateCmd = &cobra.Command{
	Use:   "migrate <username> <password> [projectKey]",
	Short: "Run the migration",
	Long: `Migrates a single project when projectKey is given, otherwise every
project listed by Zephyr Squad, one after the other.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: runMigrate,
}

func init() {
	flags := migrateCmd.Flags()
	flags.StringVar(&statusAddr, "status-addr", "", "Serve the migration status on this address (e.g. :8080)")
	flags.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn or error")
	flags.StringVar(&logFormat, "log-format", "", "Log format: console or json")
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(files)
	if err != nil {
		return err
	}

	cfg.Jira.Username = args[0]
	cfg.Jira.Password = args[1]
	if len(args) == 3 {
		cfg.Migration.ProjectKey = args[2]
	}
	if cmd.Flags().Changed("status-addr") {
		cfg.Server.StatusAddr = statusAddr
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if logFormat != "" {
		cfg.LogFormat = logFormat
	}

	logger, err := newLogger(cfg.LogFormat, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	undo := zap.ReplaceGlobals(logger)
	defer undo()

	if err := cfg.Validate(); err != nil {
		zap.S().Errorw("invalid configuration", "error", err)
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runID := uuid.NewString()
	zap.S().Infow("starting migration", "runId", runID, "config", cfg.DebugMap())

	started := time.Now()
	tracker := services.NewStatusTracker(runID)

	err = migrate(ctx, cfg, tracker)
	printSummary(tracker.Status(), time.Since(started))
	if err != nil {
		zap.S().Errorw("failed to execute the migration", "error", err)
		return err
	}
	return nil
}

func migrate(ctx context.Context, cfg *config.Configuration, tracker *services.StatusTracker) error {
	db, dialect, err := openDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	st := store.NewStore(db, dialect)
	defer func() { _ = st.Close() }()

	client, err := httpclient.New(httpclient.Options{
		Host:              cfg.Jira.Host,
		Username:          cfg.Jira.Username,
		Password:          cfg.Jira.Password,
		HTTPVersion:       cfg.Jira.HTTPVersion,
		MaxAttempts:       cfg.Jira.MaxAttempts,
		BackoffBase:       time.Duration(cfg.Jira.BackoffBaseMs) * time.Millisecond,
		BackoffMultiplier: cfg.Jira.BackoffMultiplier,
	})
	if err != nil {
		return fmt.Errorf("failed to create http client: %w", err)
	}

	jiraClient := jira.NewClient(client)
	squadClient := squad.NewClient(client)
	scaleClient := scale.NewClient(client)

	sched := scheduler.NewScheduler(cfg.Migration.Workers)
	defer sched.Close()

	sinks := []services.AttachmentSink{services.NewCSVExporter(cfg.Migration.AttachmentsMappedCsvFile)}
	if cfg.Migration.AttachmentsMappedXlsxFile != "" {
		xlsx := services.NewXLSXExporter(cfg.Migration.AttachmentsMappedXlsxFile)
		defer func() {
			if err := xlsx.Close(); err != nil {
				zap.S().Warnw("failed to close xlsx mapping", "error", err)
			}
		}()
		sinks = append(sinks, xlsx)
	}

	attachments := services.NewAttachmentsMigrator(
		jiraClient,
		squadClient,
		scaleClient,
		st.TestCases(),
		sched,
		services.NewAttachmentsCopier(cfg.Migration.AttachmentsBaseFolder),
		sinks...,
	)

	migrator := services.NewMigrator(jiraClient, squadClient, scaleClient, attachments, tracker, services.MigratorOptions{
		BatchSize:            cfg.Migration.BatchSize,
		CycleNamePlaceholder: cfg.Migration.CycleNamePlaceHolder,
	})

	if cfg.Server.StatusAddr != "" {
		srv := server.NewServer(cfg.Server.StatusAddr, func(router *gin.RouterGroup) {
			handlers.RegisterHandlers(router, handlers.New(tracker))
		})
		go func() {
			if err := srv.Start(ctx); err != nil {
				zap.S().Named("server").Errorw("status server stopped", "error", err)
			}
		}()
		defer func() { _ = srv.Stop(context.Background()) }()
	}

	if cfg.Migration.ProjectKey != "" {
		return migrator.RunProject(ctx, cfg.Migration.ProjectKey)
	}
	return migrator.RunAll(ctx)
}

func openDatabase(ctx context.Context, cfg config.Database) (*sql.DB, store.Dialect, error) {
	t, err := store.ParseDatabaseType(cfg.Type)
	if err != nil {
		return nil, store.Dialect{}, err
	}
	dialect, err := store.NewDialect(t, cfg.Schema)
	if err != nil {
		return nil, store.Dialect{}, err
	}

	db, err := store.NewDB(dialect, cfg.URL, store.Credentials{Username: cfg.Username, Password: cfg.Password})
	if err != nil {
		return nil, store.Dialect{}, err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, store.Dialect{}, fmt.Errorf("failed to connect to %s database: %w", t, err)
	}

	if t == store.DuckDB {
		if err := migrations.Run(ctx, db); err != nil {
			_ = db.Close()
			return nil, store.Dialect{}, err
		}
	}
	return db, dialect, nil
}

func printSummary(status models.MigrationStatus, elapsed time.Duration) {
	bold := color.New(color.Bold)
	_, _ = bold.Println("\nMigration summary")
	fmt.Println(strings.Repeat("-", 40))
	fmt.Printf("Run id:    %s\n", status.RunID)

	stateColor := color.New(color.FgGreen)
	switch status.State {
	case models.MigrationStateError:
		stateColor = color.New(color.FgRed)
	case models.MigrationStateNoData:
		stateColor = color.New(color.FgYellow)
	}
	fmt.Printf("State:     %s\n", stateColor.Sprint(status.State))

	if status.ProjectsTotal > 1 {
		fmt.Printf("Projects:  %d/%d\n", status.ProjectIndex+1, status.ProjectsTotal)
	}
	if status.CurrentProject != "" {
		fmt.Printf("Project:   %s (%d/%d issues)\n", status.CurrentProject, status.IssuesProcessed, status.IssuesTotal)
	}
	fmt.Printf("Elapsed:   %s\n", elapsed.Round(time.Second))

	if status.Error != nil {
		msg := status.Error.Error()
		if errors.Is(status.Error, context.Canceled) {
			msg = "interrupted"
		}
		fmt.Printf("Error:     %s\n", color.RedString(msg))
	}
}
