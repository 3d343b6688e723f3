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

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"obrago/internal/config"
	"obrago/internal/database"
	"obrago/internal/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.AppEnv,
		ServiceName: "obrago-api",
	}); err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.L().Fatal("api stopped", zap.Error(err))
	}
}

func run(cfg *config.Config) error {
	// Money travels as JSON numbers, the way the SPA sends it.
	decimal.MarshalJSONWithoutQuotes = true

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		return err
	}
	if cfg.RunMigrations {
		if err := database.Migrate(db, database.Models()...); err != nil {
			return err
		}
	}

	mailer := newMailer(cfg)
	if mailer == nil {
		logger.L().Warn("no mailer configured; email endpoints will fail")
	}

	router, err := newRouter(cfg, db, mailer)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.L().Info("api listening", zap.String("addr", cfg.HTTPAddr), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.L().Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
