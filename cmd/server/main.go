package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/aurumlens/goldlens/internal/clients/marketdata"
	"github.com/aurumlens/goldlens/internal/clients/news"
	"github.com/aurumlens/goldlens/internal/config"
	"github.com/aurumlens/goldlens/internal/database"
	"github.com/aurumlens/goldlens/internal/modules/attribution"
	"github.com/aurumlens/goldlens/internal/modules/briefing"
	"github.com/aurumlens/goldlens/internal/modules/events"
	"github.com/aurumlens/goldlens/internal/modules/prices"
	"github.com/aurumlens/goldlens/internal/modules/taxonomy"
	"github.com/aurumlens/goldlens/internal/scheduler"
	"github.com/aurumlens/goldlens/internal/server"
	"github.com/aurumlens/goldlens/pkg/logger"
)

func main() {
	// Load configuration first so the logger picks up the configured level
	cfg, err := config.Load()
	if err != nil {
		fallback := logger.New(logger.Config{Level: "info", Pretty: true})
		fallback.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})

	log.Info().Msg("Starting GoldLens")

	// Initialize database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	// Run migrations
	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	// Load the factor taxonomy (built-in defaults when no file configured)
	tax, err := taxonomy.NewLoader(log).Load(cfg.TaxonomyPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load taxonomy")
	}

	// Repositories
	eventsRepo := events.NewRepository(db.Conn(), log)
	articlesRepo := events.NewArticleRepository(db.Conn(), log)
	pricesRepo := prices.NewRepository(db.Conn(), log)
	historyDB := prices.NewHistoryDB(cfg.HistoryDir, log)

	// External clients
	marketClient := marketdata.NewClient(log)
	newsClient := news.NewClient(cfg.NewsAPIKey, log)

	// Attribution pipeline and services
	pipeline := attribution.NewPipeline(tax, log)
	attrService := attribution.NewService(pipeline, eventsRepo, pricesRepo, db.Conn(), log)
	briefService := briefing.NewService(tax, pipeline.Scorer(), log)

	// Handlers
	eventHandlers := events.NewHandlers(eventsRepo, log)
	attrHandlers := attribution.NewHandlers(attrService, cfg, log)
	briefHandlers := briefing.NewHandlers(briefService, attrService, eventsRepo, pricesRepo, cfg, log)

	// Initialize scheduler
	sched := scheduler.New(log)
	systemHandlers := server.NewSystemHandlers(log, cfg.DatabasePath, cfg.HistoryDir, db, sched)

	// Register background jobs
	if err := registerJobs(sched, systemHandlers, marketClient, newsClient, historyDB, pricesRepo, articlesRepo, attrService, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("Failed to register jobs")
	}

	sched.Start()
	defer sched.Stop()

	// Initialize HTTP server
	srv := server.New(server.Config{
		Port:                cfg.Port,
		Log:                 log,
		DB:                  db,
		Config:              cfg,
		DevMode:             cfg.DevMode,
		EventHandlers:       eventHandlers,
		AttributionHandlers: attrHandlers,
		BriefingHandlers:    briefHandlers,
		SystemHandlers:      systemHandlers,
	})

	// Start server in goroutine
	go func() {
		if err := srv.Start(); err != nil {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}

func registerJobs(
	sched *scheduler.Scheduler,
	system *server.SystemHandlers,
	marketClient *marketdata.Client,
	newsClient *news.Client,
	historyDB *prices.HistoryDB,
	pricesRepo *prices.Repository,
	articlesRepo *events.ArticleRepository,
	attrService *attribution.Service,
	cfg *config.Config,
	log zerolog.Logger,
) error {
	marketSync := scheduler.NewMarketSyncJob(marketClient, historyDB, pricesRepo, cfg.LookbackDays, log)
	newsSync := scheduler.NewNewsSyncJob(newsClient, articlesRepo, 24*time.Hour, log)
	analysis := scheduler.NewAnalysisJob(attrService, cfg, log)

	// Market data after the US close, news hourly, analysis once prices settle
	if err := sched.AddJob("30 22 * * MON-FRI", marketSync); err != nil {
		return err
	}
	if err := sched.AddJob("@hourly", newsSync); err != nil {
		return err
	}
	if err := sched.AddJob("0 23 * * *", analysis); err != nil {
		return err
	}

	system.SetJobs(marketSync, newsSync, analysis)

	return nil
}
