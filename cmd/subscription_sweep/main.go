package main

import (
	"context"
	"log"
	"time"

	"go.uber.org/zap"

	"obrago/internal/config"
	"obrago/internal/database"
	"obrago/internal/domain/account"
	"obrago/internal/domain/admin"
	"obrago/internal/pkg/logger"
)

// subscription_sweep marks lapsed subscriptions overdue and purges spent
// recovery tokens. It is meant to run from cron once an hour.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.AppEnv,
		ServiceName: "obrago-subscription-sweep",
	}); err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.L().Fatal("db connect failed", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	now := time.Now().UTC()

	overdue, err := admin.NewRepository(db).ExpireSubscriptions(ctx, now)
	if err != nil {
		logger.L().Fatal("expire subscriptions failed", zap.Error(err))
	}

	purged, err := account.NewRepository(db).PurgeRecoveryTokens(ctx, now)
	if err != nil {
		logger.L().Fatal("purge recovery tokens failed", zap.Error(err))
	}

	logger.L().Info("subscription sweep completed",
		zap.Int64("subscriptions_overdue", overdue),
		zap.Int64("recovery_tokens_purged", purged),
	)
}
