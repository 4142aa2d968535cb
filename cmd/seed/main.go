package main

import (
	"context"

	"go.uber.org/zap"

	"storefront/internal/app"
	"storefront/internal/config"
	"storefront/internal/logger"
	"storefront/internal/seed"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat}).Named("seed")
	defer func() { _ = log.Sync() }()

	ctx := context.Background()
	storage, err := app.OpenStorage(ctx, cfg)
	if err != nil {
		log.Fatal("open storage", zap.Error(err))
	}
	defer storage.Close()

	cart, _, _ := storage.Cart(cfg, log)
	n, err := seed.Apply(ctx, cart)
	if err != nil {
		log.Fatal("seed apply", zap.Error(err))
	}

	log.Info("seed applied", zap.Int("items", n), zap.String("backend", cfg.StorageBackend))
}
