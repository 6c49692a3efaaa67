package main

import (
	"context"
	"flag"

	"go.uber.org/zap"

	"inventory-system/pkg/config"
	"inventory-system/pkg/database/postgresql"
	applogger "inventory-system/pkg/logger"
)

func main() {
	down := flag.Bool("down", false, "Roll back the most recent migration instead of migrating up")
	flag.Parse()

	cfg := config.New()
	logger := applogger.NewLogger(cfg.Log)
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	dbPool, err := postgresql.ConnectDB(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer dbPool.Close()

	if *down {
		if err := postgresql.Rollback(ctx, dbPool); err != nil {
			logger.Fatal("Rollback failed", zap.Error(err))
		}
		logger.Info("Rolled back one migration")
		return
	}

	if err := postgresql.Migrate(ctx, dbPool, logger); err != nil {
		logger.Fatal("Migration failed", zap.Error(err))
	}
}
