package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ljb001/orderboard/config"
	"ljb001/orderboard/internal/pipeline"
	"ljb001/orderboard/internal/portal"
	"ljb001/orderboard/internal/wechat"
	"ljb001/orderboard/logger"
	"ljb001/orderboard/server"
	"ljb001/orderboard/services/cache"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize logger first
	logger.Init()
	log := logger.Default

	// Load and validate configuration
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	log.Info().
		Str("environment", cfg.Environment).
		Str("portal", cfg.PortalBaseURL).
		Str("cache_backend", cfg.CacheBackend).
		Msg("Starting application")

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Initialize caches, portal client and pipeline
	detailCache, itemsCache := initializeCaches(ctx, cfg)
	client := portal.NewClient(cfg, detailCache, itemsCache)
	orders := pipeline.New(client, cfg)
	menuAPI := wechat.NewAPIClient(cfg.WechatAppID, cfg.WechatSecret)

	srv := server.New(cfg, orders, menuAPI)

	// Start the server in a goroutine
	serverDone := make(chan error, 1)
	go func() {
		serverDone <- srv.Start(cfg.ListenAddr)
	}()

	// Wait for shutdown signal or server error
	select {
	case sig := <-sigChan:
		log.Info().
			Str("signal", sig.String()).
			Msg("Received shutdown signal")
	case err := <-serverDone:
		if err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("Server exited with error")
		}
	}

	// Graceful shutdown
	log.Info().Msg("Shutting down gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}
}

// initializeCaches builds the two cache surfaces: the TTL-bound detail cache
// and the process-lifetime line-items memo. The memory backend keeps them as
// separate instances so the memo's capacity bound never evicts details; the
// external backends share one connection.
func initializeCaches(ctx context.Context, cfg *config.Config) (cache.CacheService, cache.CacheService) {
	switch cfg.CacheBackend {
	case "memcache":
		svc := cache.NewMemcacheService(cfg.MemcacheAddr)
		logger.Info("Connected to Memcache at %s", cfg.MemcacheAddr)
		return svc, svc
	case "redis":
		svc := cache.NewRedisService(ctx, cfg.RedisAddr, cfg.RedisDB)
		logger.Info("Connected to Redis at %s (DB: %d)", cfg.RedisAddr, cfg.RedisDB)
		return svc, svc
	default:
		return cache.NewMemoryService(0), cache.NewMemoryService(cfg.ItemsCacheSize)
	}
}
