package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arashpr/cheatbot/internal/bootstrap"
	"github.com/arashpr/cheatbot/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}

	metricsSrv := app.MetricsServer()
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics server error: %v", err)
		}
	}()

	app.Logger.Info("bot_started",
		"model", cfg.GeminiModel,
		"metrics_port", cfg.MetricsPort,
	)

	app.Handler.Run(ctx, app.Bot.Updates(ctx))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		app.Logger.Warn("metrics_shutdown_failed", "error", err)
	}
	app.Logger.Info("bot_stopped")
}
