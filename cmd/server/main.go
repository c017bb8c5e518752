// cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"jari-backend/internal/assistant"
	"jari-backend/internal/common/config"
	"jari-backend/internal/common/logger"
	"jari-backend/internal/common/observability"
	"jari-backend/internal/directory"
	"jari-backend/internal/functions"
	"jari-backend/internal/functions/checkavailability"
	"jari-backend/internal/scheduling"
	transport "jari-backend/internal/transport/http"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info", "console")
		bootLog.Fatal("Failed to load configuration", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	log.Info("Starting webhook backend", map[string]interface{}{
		"name":        cfg.App.Name,
		"environment": cfg.App.Environment,
		"addr":        cfg.Server.Addr,
	})

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	directoryClient := directory.NewClient(cfg.Directory, log)
	schedulingClient := scheduling.NewClient(cfg.Scheduling, log)

	dispatcher := functions.NewDispatcher(log,
		checkavailability.NewService(directoryClient, schedulingClient, cfg.Directory.DefaultCompany, log),
	)

	manifest := assistant.NewManifest(cfg.Assistant)
	handler := transport.NewHandler(manifest, dispatcher, obs, log)
	router := transport.NewRouter(handler, cfg.Server.WebhookSecret, log)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("Server error", zap.Error(err))
		}
	}()

	log.Info("Webhook backend started", map[string]interface{}{"addr": cfg.Server.Addr})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		zapLog.Fatal("Graceful shutdown failed", zap.Error(err))
	}

	log.Info("Shutdown complete", nil)
}
