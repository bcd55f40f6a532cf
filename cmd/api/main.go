package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	httptransport "github.com/supportdesk/ticket-triage/internal/api/http"
	"github.com/supportdesk/ticket-triage/internal/api/http/handlers"
	"github.com/supportdesk/ticket-triage/internal/config"
	"github.com/supportdesk/ticket-triage/internal/events"
	"github.com/supportdesk/ticket-triage/internal/observability"
	"github.com/supportdesk/ticket-triage/internal/persistence"
	"github.com/supportdesk/ticket-triage/internal/pipeline"
	"github.com/supportdesk/ticket-triage/internal/report"
	"github.com/supportdesk/ticket-triage/internal/repository"
	"github.com/supportdesk/ticket-triage/internal/rules"
	"github.com/supportdesk/ticket-triage/internal/service"
	"github.com/supportdesk/ticket-triage/internal/worker"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ruleSet := rules.Default()
	if cfg.Pipeline.RulesFile != "" {
		ruleSet, err = rules.Load(cfg.Pipeline.RulesFile)
		if err != nil {
			logger.Fatal("failed to load rules", zap.String("path", cfg.Pipeline.RulesFile), zap.Error(err))
		}
		logger.Info("loaded rules", zap.String("path", cfg.Pipeline.RulesFile))
	}

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if pg.PoolHandle() != nil && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	sqlite, err := persistence.NewSQLite(ctx, cfg.SQLite, logger)
	if err != nil {
		logger.Fatal("failed to open sqlite", zap.Error(err))
	}
	defer sqlite.Close()

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	dependencies := map[string]handlers.Pinger{}
	var runRepo repository.RunRepository = repository.NopRunRepository{}
	switch {
	case pg.PoolHandle() != nil:
		runRepo = repository.NewRunRepository(pg.PoolHandle())
		dependencies["postgres"] = pg
	case sqlite != nil:
		runRepo = repository.NewSQLiteRunRepository(sqlite.DB)
		dependencies["sqlite"] = sqlite
	}

	var publisher service.Publisher
	if redis != nil {
		publisher = redis
		dependencies["redis"] = redis
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	var metrics *observability.Metrics
	if cfg.Metrics.Enabled {
		metrics = observability.NewMetrics(registry)
	}

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartNotificationWorker(service.NewNotificationService(dispatcher, publisher, cfg.Redis.Channel, logger))

	store := report.NewStore(cfg.Pipeline.OutputPath, time.Local)
	coordinator := pipeline.NewDefault(pipeline.Options{
		Rules:    ruleSet,
		Seed:     cfg.Pipeline.ResponderSeed,
		Location: time.Local,
	}, logger)
	processService := service.NewProcessService(service.ProcessDependencies{
		Runner:     coordinator,
		Store:      store,
		RunRepo:    runRepo,
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
	})

	if cfg.Pipeline.ProcessOnStart && !processService.ReportExists() {
		logger.Info("no processed data found; processing input", zap.String("path", cfg.Pipeline.InputPath))
		if _, err := processService.Process(ctx, cfg.Pipeline.InputPath); err != nil {
			logger.Warn("initial processing failed", zap.Error(err))
		}
	}

	if cfg.Pipeline.WatchInput {
		watcher := worker.NewInputWatcher(cfg.Pipeline.InputPath, cfg.Pipeline.WatchDebounce(), processService, logger)
		if err := watcher.Start(ctx); err != nil {
			logger.Fatal("failed to watch input", zap.Error(err))
		}
	}

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: !cfg.App.Debug,
		ErrorHandler:          httptransport.ErrorHandler,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	routes := httptransport.RouteConfig{
		Health:  handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, dependencies),
		Tickets: handlers.NewTicketsHandler(processService, time.Local),
		Process: handlers.NewProcessHandler(processService, cfg.Pipeline.InputPath),
		Runs:    handlers.NewRunsHandler(processService),
	}
	if cfg.Metrics.Enabled {
		routes.Metrics = httptransport.MetricsHandler(registry)
	}
	httptransport.RegisterRoutes(app, routes)

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()), zap.String("env", cfg.App.Env))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)
	cancel()

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
