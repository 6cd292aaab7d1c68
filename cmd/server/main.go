package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/EuclidesAnchundia/Tutorias/common_library/logging"
	"github.com/EuclidesAnchundia/Tutorias/internal/app"
	"github.com/EuclidesAnchundia/Tutorias/internal/config"
	"github.com/EuclidesAnchundia/Tutorias/internal/observability"
)

var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.New()
	if err != nil {
		panic(err)
	}

	zapLogger, err := logging.NewZap(cfg.LogLevel, cfg.AppEnv)
	if err != nil {
		panic(err)
	}
	logger := logging.New(zapLogger)
	defer logger.Sync()

	if err := cfg.ValidateServer(); err != nil {
		logger.Fatal(ctx, "invalid config", zap.Error(err))
	}

	flush, err := observability.InitSentry(cfg.SentryDSN, cfg.AppEnv, version)
	if err != nil {
		logger.Fatal(ctx, "cannot init sentry", zap.Error(err))
	}
	defer flush()

	a, err := app.New(ctx, cfg, logger)
	if err != nil {
		logger.Fatal(ctx, "cannot create app", zap.Error(err))
	}
	defer a.Close()
	a.Watch(ctx)

	port := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info(ctx, "Starting server",
		zap.String("port", port),
		zap.String("storage", cfg.StorageDriver),
		zap.String("events", cfg.EventsDriver),
	)

	srv := &http.Server{
		Addr:              port,
		Handler:           a.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal(ctx, "cannot start http server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info(ctx, "Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal(ctx, "server forced to shutdown", zap.Error(err))
	}
	logger.Info(ctx, "Server stopped")
}
