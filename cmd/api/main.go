// Package main is the entry point for the conversation intelligence API.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/fluxstudio/conversation-intelligence/internal/classifier"
	"github.com/fluxstudio/conversation-intelligence/internal/config"
	"github.com/fluxstudio/conversation-intelligence/internal/handler"
	"github.com/fluxstudio/conversation-intelligence/internal/middleware"
	natsclient "github.com/fluxstudio/conversation-intelligence/internal/nats"
	"github.com/fluxstudio/conversation-intelligence/internal/service"
	"github.com/fluxstudio/conversation-intelligence/pkg/logger"
	"github.com/fluxstudio/conversation-intelligence/pkg/tracing"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	logger.SetGlobal(log)

	log.Info("starting conversation intelligence API")

	// Initialize tracing if enabled
	ctx := context.Background()
	if cfg.TracingEnabled {
		tp, err := tracing.InitTracer(ctx, "conversation-intelligence", cfg.TracingEndpoint)
		if err != nil {
			log.Warn("failed to initialize tracing", zap.Error(err))
		} else {
			defer tracing.Shutdown(ctx, tp)
		}
	}

	// Connect to NATS
	var (
		nc        *natsclient.Client
		publisher *natsclient.EventPublisher
	)
	if cfg.NATSEnabled {
		nc, err = natsclient.Connect(ctx, natsclient.Config{
			URL:      cfg.NATSURL,
			CAFile:   cfg.NATSCAFile,
			CertFile: cfg.NATSCertFile,
			KeyFile:  cfg.NATSKeyFile,
			Token:    cfg.NATSToken,
		}, log)
		if err != nil {
			log.Error("failed to connect to NATS", zap.Error(err))
			os.Exit(1)
		}
		defer nc.Close()

		publisher = natsclient.NewEventPublisher(nc)
		if err := publisher.EnsureStream(ctx); err != nil {
			log.Error("failed to ensure intelligence stream", zap.Error(err))
			os.Exit(1)
		}
	}

	// Initialize classifier
	cls, err := buildClassifier(cfg)
	if err != nil {
		log.Error("failed to create classifier", zap.Error(err))
		os.Exit(1)
	}
	log.Info("classifier ready", zap.String("provider", cls.Name()))

	// Initialize services
	store := service.NewConversationStore()
	intelligenceSvc := service.NewIntelligenceService(store, cls, publisher, cfg.ClassifierConcurrency, log)

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(nc)
	insightHandler := handler.NewInsightHandler(intelligenceSvc, log)
	syncHandler := handler.NewSyncHandler(intelligenceSvc, log)
	eventHandler := handler.NewEventHandler(intelligenceSvc, log)

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"Link", "X-Correlation-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health endpoints (no auth required)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// Metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	// API routes with authentication
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWTSecret))
		r.Use(middleware.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow))

		// Snapshot ingest from the messaging subsystem
		r.With(middleware.RequireScope(middleware.ScopeSync)).
			Put("/conversations", syncHandler.Sync)
		r.With(middleware.RequireScope(middleware.ScopeSync)).
			Post("/conversations/refresh", syncHandler.Refresh)

		// Derived results
		r.Get("/insights", insightHandler.Insights)
		r.Get("/suggestions", insightHandler.Suggestions)
		r.Get("/conversations/grouped", insightHandler.Grouped)

		// Consumer callbacks
		r.Post("/events/select", eventHandler.Select)
		r.Post("/events/action", eventHandler.Action)
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      r,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info("server listening", zap.String("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server stopped")
}

// buildClassifier picks the classification provider: an explicit setting
// wins, otherwise whichever API key is configured, falling back to the
// keyword classifier.
func buildClassifier(cfg *config.Config) (classifier.Client, error) {
	switch {
	case cfg.ClassifierProvider != "":
		apiKey := cfg.AnthropicAPIKey
		if classifier.Provider(cfg.ClassifierProvider) == classifier.ProviderOpenAI {
			apiKey = cfg.OpenAIAPIKey
		}
		return classifier.NewClient(classifier.Provider(cfg.ClassifierProvider), apiKey)
	case cfg.AnthropicAPIKey != "":
		return classifier.NewAnthropicClassifier(cfg.AnthropicAPIKey)
	case cfg.OpenAIAPIKey != "":
		return classifier.NewOpenAIClassifier(cfg.OpenAIAPIKey)
	default:
		return classifier.NewKeywordClassifier(), nil
	}
}
