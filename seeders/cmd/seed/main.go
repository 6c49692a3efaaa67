package main

import (
	"context"
	"flag"
	"os"

	"go.uber.org/zap"

	"inventory-system/pkg/config"
	"inventory-system/pkg/database/postgresql"
	applogger "inventory-system/pkg/logger"
	"inventory-system/seeders"
)

func main() {
	runCore := flag.Bool("core", false, "Seed categories and demo offices")
	runAdmin := flag.Bool("admin", false, "Seed the administrator persona")
	runAll := flag.Bool("all", false, "Run every seeder (same as -core -admin)")
	adminUser := flag.String("admin-user", "admin", "Username of the administrator persona")
	flag.Parse()

	if !*runCore && !*runAdmin && !*runAll {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.New()
	logger := applogger.NewLogger(cfg.Log)
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()
	dbPool, err := postgresql.ConnectDB(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("Failed to connect to PostgreSQL", zap.Error(err))
	}
	defer dbPool.Close()

	if err := postgresql.Migrate(ctx, dbPool, logger); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}

	if *runAll || *runCore {
		if err := seeders.SeedDictionaries(ctx, dbPool, logger); err != nil {
			logger.Fatal("Seeding dictionaries failed", zap.Error(err))
		}
	}
	if *runAll || *runAdmin {
		if err := seeders.SeedAdmin(ctx, dbPool, *adminUser, logger); err != nil {
			logger.Fatal("Seeding administrator failed", zap.Error(err))
		}
	}

	logger.Info("Seeding finished")
}
