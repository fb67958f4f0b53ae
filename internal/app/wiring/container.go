// Package wiring builds the lookup component graph from configuration.
// Both the HTTP server and the lookup CLI start from New.
package wiring

import (
	"go.uber.org/zap"

	"github.com/macrolens/nutrilookup/config"
	"github.com/macrolens/nutrilookup/internal/domain"
	"github.com/macrolens/nutrilookup/internal/infrastructure/cache"
	"github.com/macrolens/nutrilookup/internal/infrastructure/fatsecret"
	"github.com/macrolens/nutrilookup/internal/infrastructure/metrics"
	"github.com/macrolens/nutrilookup/internal/usecase"
)

// Container holds the wired components
type Container struct {
	Config *config.Config
	Logger *zap.Logger

	Cache       domain.FoodCache
	Tokens      *fatsecret.TokenManager
	Client      *fatsecret.Client
	Metrics     *metrics.Recorder
	Resolver    *usecase.FoodResolver
	Coordinator *usecase.BatchCoordinator
}

// New wires every component. The caller owns the container and must call Close.
func New(cfg *config.Config, logger *zap.Logger) *Container {
	if logger == nil {
		logger = zap.NewNop()
	}

	var store domain.FoodCache
	switch cfg.Cache.Type {
	case "memory":
		store = cache.NewMemoryStore()
	default:
		store = cache.NewFileStore(cfg.Cache.Path, logger)
	}

	tokens := fatsecret.NewTokenManager(fatsecret.TokenConfig{
		ClientID:     cfg.FatSecret.ClientID,
		ClientSecret: cfg.FatSecret.ClientSecret,
		TokenURL:     cfg.FatSecret.TokenURL,
		Timeout:      cfg.FatSecret.Timeout,
	}, logger)

	client := fatsecret.NewClient(cfg.FatSecret.APIURL, cfg.FatSecret.Timeout, logger)

	recorder := metrics.NewRecorder()

	resolver := usecase.NewFoodResolver(store, tokens, client, usecase.FoodResolverConfig{
		Observer: recorder,
		Logger:   logger,
	})

	coordinator := usecase.NewBatchCoordinator(resolver, usecase.BatchConfig{
		Workers:  cfg.Workers.PoolSize,
		Observer: recorder,
		Logger:   logger,
	})

	return &Container{
		Config:      cfg,
		Logger:      logger,
		Cache:       store,
		Tokens:      tokens,
		Client:      client,
		Metrics:     recorder,
		Resolver:    resolver,
		Coordinator: coordinator,
	}
}

// MockMode reports whether FatSecret credentials are the mock sentinel
func (c *Container) MockMode() bool {
	return fatsecret.IsMockClientID(c.Config.FatSecret.ClientID)
}

// Close stops the worker pool and flushes the logger
func (c *Container) Close() {
	c.Coordinator.Close()
	_ = c.Logger.Sync()
}
