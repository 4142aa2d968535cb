package main

import (
	"context"
	"flag"

	"go.uber.org/zap"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/logger"
	"storefront/internal/migrate"
)

func main() {
	var down bool
	flag.BoolVar(&down, "down", false, "Revert the most recent migration instead of applying all")
	flag.Parse()

	cfg := config.FromEnv()
	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat}).Named("migrate")
	defer func() { _ = log.Sync() }()

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		log.Fatal("connect db", zap.Error(err))
	}
	defer pool.Close()

	if down {
		if err := migrate.Rollback(ctx, pool); err != nil {
			log.Fatal("rollback migration", zap.Error(err))
		}
		log.Info("last migration reverted")
		return
	}

	if err := migrate.Apply(ctx, pool); err != nil {
		log.Fatal("apply migrations", zap.Error(err))
	}
	log.Info("migrations applied")
}
