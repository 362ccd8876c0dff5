package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/marchen/vocabforge/internal/anki"
	"github.com/marchen/vocabforge/internal/config"
	"github.com/marchen/vocabforge/internal/generation"
	"github.com/marchen/vocabforge/internal/platform/gemini"
	"github.com/marchen/vocabforge/internal/platform/logger"
	"github.com/marchen/vocabforge/internal/platform/openai"
	"github.com/marchen/vocabforge/internal/platform/postgres"
	"github.com/marchen/vocabforge/internal/selection"
	"github.com/marchen/vocabforge/internal/service"
	"github.com/marchen/vocabforge/internal/task"
	"github.com/marchen/vocabforge/internal/worker"
)

// application holds the fully wired dependency graph of the server.
type application struct {
	config   *config.Config
	logger   *slog.Logger
	db       *sql.DB
	registry *task.Registry
	metrics  *prometheus.Registry

	studyService service.StudyService
	exporter     *anki.Exporter
}

// newApplication loads configuration and wires every component, from the
// database connection up to the HTTP handlers' dependencies.
func newApplication(ctx context.Context) (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("llm_provider", cfg.LLM.Provider))

	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := postgres.RunMigrations(ctx, db, appLogger); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	wordStore := postgres.NewPostgresWordStore(db, appLogger)
	essayStore := postgres.NewPostgresEssayStore(db, appLogger)

	generator, err := newGenerator(ctx, cfg.LLM, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create generator: %w", err)
	}

	job, err := worker.NewEssayJob(selection.NewPolicy(wordStore), generator, wordStore, essayStore, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create essay job: %w", err)
	}

	metrics := prometheus.NewRegistry()
	metrics.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	registry := task.NewRegistry(task.RegistryConfig{
		MaxTasks:      cfg.Task.MaxTasks,
		TaskTimeout:   cfg.Task.Timeout,
		Retention:     cfg.Task.Retention,
		SweepInterval: cfg.Task.SweepInterval,
	}, appLogger, metrics)

	studyService, err := service.NewStudyService(registry, job, wordStore, essayStore, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create study service: %w", err)
	}

	exporter, err := anki.NewExporter(wordStore, essayStore, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create anki exporter: %w", err)
	}

	return &application{
		config:       cfg,
		logger:       appLogger,
		db:           db,
		registry:     registry,
		metrics:      metrics,
		studyService: studyService,
		exporter:     exporter,
	}, nil
}

// newGenerator builds the configured LLM backend.
func newGenerator(ctx context.Context, cfg config.LLMConfig, appLogger *slog.Logger) (generation.Generator, error) {
	switch cfg.Provider {
	case "openai":
		return openai.NewGenerator(cfg, appLogger)
	case "gemini":
		return gemini.NewGenerator(ctx, cfg, appLogger)
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

// run starts the background sweeper and the HTTP server, blocking until
// shutdown completes.
func (app *application) run(ctx context.Context) error {
	go app.registry.Run(ctx)

	return app.startHTTPServer(ctx, app.newRouter())
}

// cleanup releases resources on shutdown.
func (app *application) cleanup() {
	app.registry.Stop()
	if err := app.db.Close(); err != nil {
		app.logger.Error("failed to close database", slog.String("error", err.Error()))
	}
}
