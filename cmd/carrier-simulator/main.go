package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"carrier-simulator/internal/api"
	"carrier-simulator/internal/carriers/policy"
	"carrier-simulator/internal/carriers/quote"
	"carrier-simulator/internal/common/config"
	"carrier-simulator/internal/common/database"
	"carrier-simulator/internal/common/logger"
	"carrier-simulator/internal/common/observability"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting carrier simulator...",
		zap.String("environment", cfg.App.Environment),
		zap.String("addr", cfg.Server.Addr()),
	)

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	// --- Quote cache backend ---
	var cache quote.CacheStore
	switch cfg.Cache.Backend {
	case "redis":
		var redisClient *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			redisClient, err = database.NewRedis(cfg.Redis)
			return err
		}, 5, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis unavailable", zap.Error(err))
		}
		defer redisClient.Close()
		cache = quote.NewRedisCache(redisClient.GetClient(), time.Duration(cfg.Cache.TTLSeconds)*time.Second)
		zapLog.Info("using redis quote cache", zap.String("address", cfg.Redis.Address))
	default:
		cache = quote.NewMemoryCache()
		zapLog.Info("using in-memory quote cache")
	}

	engine := quote.NewEngine(cache, log)
	policies := policy.NewService(engine, log)
	server := api.NewServer(*cfg, engine, policies, obs, log)

	// --- Metrics endpoint (unauthenticated, internal) ---
	go func() {
		http.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(":8080", nil); err != nil {
			zapLog.Error("metrics server failed", zap.Error(err))
		}
	}()

	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("shutdown error", zap.Error(err))
	}

	zapLog.Info("Carrier simulator stopped")
}
