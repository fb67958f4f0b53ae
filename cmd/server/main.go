package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/macrolens/nutrilookup/config"
	"github.com/macrolens/nutrilookup/internal/app/wiring"
	httpDelivery "github.com/macrolens/nutrilookup/internal/delivery/http"
	"github.com/macrolens/nutrilookup/internal/infrastructure/logging"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Server.Environment)

	logger.Info("Starting nutrilookup v1.0.0",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("cache_type", cfg.Cache.Type),
		zap.String("cache_path", cfg.Cache.Path),
		zap.Int("workers", cfg.Workers.PoolSize),
	)

	container := wiring.New(cfg, logger)
	defer container.Close()

	if container.MockMode() {
		logger.Warn("FatSecret credentials not configured, uncached lookups return placeholder data",
			zap.String("client_id", cfg.FatSecret.ClientID))
	} else {
		logger.Info("FatSecret API configured", zap.String("api_url", cfg.FatSecret.APIURL))
	}

	handler := httpDelivery.NewHandler(container.Coordinator)
	router := httpDelivery.SetupRouter(cfg, handler, logger, container.Metrics.Handler())

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("Server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Shutting down server")

	// In-flight batches finish before the worker pool is closed
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
