package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"storefront/internal/app"
	"storefront/internal/config"
	"storefront/internal/importer"
	"storefront/internal/logger"
)

func main() {
	var filePath string
	flag.StringVar(&filePath, "file", "", "Path to cart CSV export (id,nombre,precio,imagen,cantidad)")
	flag.Parse()

	if filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.FromEnv()
	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat}).Named("importer")
	defer func() { _ = log.Sync() }()

	ctx := context.Background()
	storage, err := app.OpenStorage(ctx, cfg)
	if err != nil {
		log.Fatal("open storage", zap.Error(err))
	}
	defer storage.Close()

	f, err := os.Open(filePath)
	if err != nil {
		log.Fatal("open file", zap.Error(err))
	}
	defer f.Close()

	cart, _, _ := storage.Cart(cfg, log)
	imp := importer.NewCSVImporter(f, cart)

	start := time.Now()
	res, err := imp.Run(ctx)
	if err != nil {
		log.Fatal("import failed", zap.Int("imported", res.Imported), zap.Error(err))
	}

	fmt.Printf("Imported %d rows (%d skipped) into cart %q in %s\n", res.Imported, res.Skipped, cfg.CartKey, time.Since(start).Truncate(time.Millisecond))
}
