package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/aurumlens/goldlens/internal/config"
	"github.com/aurumlens/goldlens/internal/database"
	"github.com/aurumlens/goldlens/internal/modules/attribution"
	"github.com/aurumlens/goldlens/internal/modules/briefing"
	"github.com/aurumlens/goldlens/internal/modules/events"
)

// Config holds server configuration
type Config struct {
	Port    int
	Log     zerolog.Logger
	DB      *database.DB
	Config  *config.Config
	DevMode bool

	EventHandlers       *events.Handlers
	AttributionHandlers *attribution.Handlers
	BriefingHandlers    *briefing.Handlers
	SystemHandlers      *SystemHandlers
}

// Server represents the HTTP server
type Server struct {
	router *chi.Mux
	server *http.Server
	log    zerolog.Logger
	db     *database.DB
	cfg    *config.Config

	eventHandlers       *events.Handlers
	attributionHandlers *attribution.Handlers
	briefingHandlers    *briefing.Handlers
	systemHandlers      *SystemHandlers
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router:              chi.NewRouter(),
		log:                 cfg.Log.With().Str("component", "server").Logger(),
		db:                  cfg.DB,
		cfg:                 cfg.Config,
		eventHandlers:       cfg.EventHandlers,
		attributionHandlers: cfg.AttributionHandlers,
		briefingHandlers:    cfg.BriefingHandlers,
		systemHandlers:      cfg.SystemHandlers,
	}

	s.setupMiddleware(cfg.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(devMode bool) {
	// Recovery from panics
	s.router.Use(middleware.Recoverer)

	// Request ID
	s.router.Use(middleware.RequestID)

	// Real IP
	s.router.Use(middleware.RealIP)

	// Logging
	s.router.Use(s.loggingMiddleware)

	// Timeout
	s.router.Use(middleware.Timeout(60 * time.Second))

	// CORS
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Compress responses
	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	// Health check
	s.router.Get("/health", s.handleHealth)

	// API routes
	s.router.Route("/api", func(r chi.Router) {
		// Event ingestion and listing
		r.Route("/events", func(r chi.Router) {
			r.Post("/", s.eventHandlers.HandleIngest)
			r.Get("/", s.eventHandlers.HandleList)
		})

		// Factor attribution
		r.Get("/analysis", s.attributionHandlers.HandleAnalyze)
		r.Get("/factors/top", s.attributionHandlers.HandleTopFactors)

		// Daily brief
		r.Get("/brief", s.briefingHandlers.HandleBrief)

		// System
		r.Route("/system", func(r chi.Router) {
			r.Get("/status", s.systemHandlers.HandleSystemStatus)
		})

		// Manual job triggers
		r.Route("/jobs", func(r chi.Router) {
			r.Post("/market-sync", s.systemHandlers.HandleTriggerMarketSync)
			r.Post("/news-sync", s.systemHandlers.HandleTriggerNewsSync)
			r.Post("/analysis", s.systemHandlers.HandleTriggerAnalysis)
		})
	})
}

// handleHealth responds to health checks
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"ok","time":"%s"}`, time.Now().UTC().Format(time.RFC3339))
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Int("port", s.cfg.Port).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
