package main

import (
	"context"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"content-hub/internal/app"
	"content-hub/internal/config"
	"content-hub/internal/handler"
	"content-hub/internal/logger"
	"content-hub/internal/metrics"
	"content-hub/internal/service"
)

// Set at build time with -ldflags.
var version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration",
			slog.String("error", err.Error()))
	}
	logger.SetLevel(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Open the data source
	backend, err := app.Open(ctx, cfg)
	if err != nil {
		logger.Fatal("Failed to open data source",
			slog.String("source", cfg.DataSource),
			slog.String("error", err.Error()))
	}
	defer backend.Close()

	// Start database pool metrics collector
	if backend.Pool != nil {
		poolStatsCollector := metrics.NewPoolStatsCollector(backend.Pool)
		poolStatsCollector.Start(15 * time.Second)
		defer poolStatsCollector.Stop()
	}

	// Initialize services
	svcs := app.NewServices(backend, cfg)
	go svcs.Content.PublishCounts(ctx)

	loadCtx, cancel := context.WithTimeout(ctx, app.LoadTimeout)
	// A failed load is kept in the view state; the server starts regardless.
	_ = svcs.Content.Load(loadCtx, service.TriggerStartup)
	cancel()

	refresher := service.NewAutoRefresher(svcs.Content, svcs.Preferences.AutoRefresh, backend.Notifier(), cfg.StaleTime)
	refresher.Start(ctx)

	// Initialize handlers
	checks := make(map[string]handler.Pinger, len(backend.Checks))
	for name, ping := range backend.Checks {
		checks[name] = handler.PingFunc(ping)
	}

	gin.SetMode(gin.ReleaseMode)
	router := handler.NewRouter(handler.Handlers{
		Content:     handler.NewContentHandler(svcs.Content),
		Guides:      handler.NewGuideHandler(svcs.Content),
		Preferences: handler.NewPreferencesHandler(svcs.Preferences),
		Health:      handler.NewHealthHandler(version, checks),
		Transfer:    handler.NewTransferHandler(svcs.Transfer),
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Starting server",
			slog.String("port", cfg.ServerPort),
			slog.String("source", backend.Source.Name()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server",
				slog.String("error", err.Error()))
		}
	}()

	// Wait for interrupt signal
	<-ctx.Done()
	logger.Info("Shutting down server")

	// Stop background refreshes before the source goes away
	refresher.Stop()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error",
			slog.String("error", err.Error()))
	}

	logger.Info("Server exited")
}
