// WhatsApp review collector server.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/tej-mahender/hyperint-whatsapp-review-collector/internal/api"
	"github.com/tej-mahender/hyperint-whatsapp-review-collector/internal/config"
	"github.com/tej-mahender/hyperint-whatsapp-review-collector/internal/convo"
	"github.com/tej-mahender/hyperint-whatsapp-review-collector/internal/feed"
	"github.com/tej-mahender/hyperint-whatsapp-review-collector/internal/middleware"
	"github.com/tej-mahender/hyperint-whatsapp-review-collector/internal/store"
	"github.com/tej-mahender/hyperint-whatsapp-review-collector/web"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting server",
		"port", cfg.Port,
		"dev", cfg.IsDevelopment(),
		"session_timeout", cfg.SessionTimeout,
		"signature_validation", cfg.Twilio.ValidateSignature)

	// Initialize dependencies.
	repo, err := store.NewSQLite(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if closeErr := repo.Close(); closeErr != nil {
			slog.Error("Failed to close repository", "error", closeErr)
		}
	}()

	if err := repo.Ping(context.Background()); err != nil {
		slog.Error("Database health check failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database connected")

	// Conversation engine. Sessions are in-memory only: a restart drops
	// every open dialogue. Completed reviews are the durable artifact.
	sessions := convo.NewSessionStore(cfg.SessionTimeout)
	engine := convo.NewEngine(sessions)

	hub := feed.NewHub()

	// Initialize handlers.
	baseHandler := api.NewHandler(repo)
	webhookHandler := api.NewWebhookHandler(baseHandler, engine, hub, cfg)
	reviewHandler := api.NewReviewHandler(baseHandler, sessions)
	healthHandler := api.NewHealthHandler(repo)
	wsHandler := feed.NewWebSocketHandler(hub, cfg.FrontendURL, cfg.IsDevelopment())

	// Setup router.
	r := chi.NewRouter()

	// Global middleware.
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.CORS(corsOrigins(cfg)))

	healthHandler.RegisterHealth(r)
	webhookHandler.RegisterRoutes(r)
	reviewHandler.RegisterRoutes(r)

	// WebSocket live review feed for the dashboard.
	r.Get("/ws/reviews", wsHandler.ServeHTTP)

	// Serve the embedded dashboard.
	r.Handle("/*", web.DashboardHandler())

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0, // feed WebSocket connections are long-lived
		IdleTimeout:  120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Stale sessions are also evicted lazily on access; the sweeper just
	// reclaims memory for contacts that never return.
	sessions.StartSweeper(ctx, cfg.SweepInterval)

	go func() {
		slog.Info("Server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	stop()

	slog.Info("Shutting down gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("Server stopped successfully")
}

func corsOrigins(cfg *config.Config) []string {
	if cfg.FrontendURL != "" {
		return []string{cfg.FrontendURL}
	}
	return []string{"*"}
}
