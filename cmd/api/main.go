package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"storefront/internal/app"
	"storefront/internal/config"
	"storefront/internal/format"
	"storefront/internal/httpserver"
	"storefront/internal/logger"
	catalogrepo "storefront/internal/repository/catalog"
	catalogsvc "storefront/internal/service/catalog"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat}).Named("api")
	defer func() { _ = log.Sync() }()
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	storage, err := app.OpenStorage(ctx, cfg)
	if err != nil {
		log.Fatal("open storage", zap.String("backend", cfg.StorageBackend), zap.Error(err))
	}
	defer storage.Close()

	cartService, bus, relay := storage.Cart(cfg, log)
	if relay != nil {
		go func() {
			if err := relay.Run(ctx); err != nil {
				log.Error("cart relay stopped", zap.Error(err))
			}
		}()
	}

	catalogRepo := catalogrepo.NewHTTP(cfg.CatalogBaseURL, cfg.CatalogTimeout, log.Named("catalog"))
	catalogService := catalogsvc.New(catalogRepo, decimal.NewFromInt(cfg.OfferMaxPrice), log.Named("catalog"))

	srv, err := httpserver.New(cfg.HTTPAddr, log, httpserver.Deps{
		CartSvc:     cartService,
		CatalogSvc:  catalogService,
		Events:      bus,
		Prices:      format.NewPriceFormatter(cfg.PriceLocale),
		Images:      format.NewImageResolver(cfg.CatalogBaseURL, cfg.ImagePlaceholder),
		Storage:     storage.Pinger(),
		CORSOrigins: cfg.CORSOrigins,
	})
	if err != nil {
		log.Fatal("init server", zap.Error(err))
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		log.Info("shutting down", zap.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server error", zap.Error(err))
	}
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	} else {
		log.Info("server stopped")
	}
}
