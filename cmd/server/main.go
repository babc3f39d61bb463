// Package main is the entrypoint for the SafeTrip API server.
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/safetrip/safetrip/internal/api"
	"github.com/safetrip/safetrip/internal/cache"
	"github.com/safetrip/safetrip/internal/config"
	"github.com/safetrip/safetrip/internal/logger"
	"github.com/safetrip/safetrip/internal/repository/postgres"
	"github.com/safetrip/safetrip/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zlog, err := logger.New(cfg.LogLevel, cfg.IsProduction())
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zlog.Sync()

	ctx := context.Background()

	// Initialize the store accessor; the first acquire connects and migrates.
	store := postgres.NewStore(cfg.DatabaseURL, cfg.StoreConnectTimeout, cfg.StoreOpTimeout, zlog)
	defer store.Close()

	if _, err := store.Acquire(ctx); err != nil {
		zlog.Fatal("failed to connect to store",
			zap.Error(err),
			zap.String("database_url", redactURL(cfg.DatabaseURL)),
		)
	}

	// Optional spot cache
	var cacheClient *cache.Cache
	if cfg.RedisURL != "" {
		cacheClient, err = cache.New(ctx, cfg.RedisURL)
		if err != nil {
			zlog.Fatal("failed to connect to Redis",
				zap.Error(err),
				zap.String("redis_url", redactURL(cfg.RedisURL)),
			)
		}
		defer cacheClient.Close()
		zlog.Info("spot cache enabled")
	}

	repos := postgres.NewRepositories(store)
	services := service.NewServices(repos, cacheClient, cfg, zlog)

	router := api.NewRouter(services, func(r *http.Request) error {
		return store.Ping(r.Context())
	}, cfg, zlog)

	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		zlog.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zlog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Fatal("server forced to shutdown", zap.Error(err))
	}

	zlog.Info("server stopped")
}

// redactURL strips credentials from a connection string before logging.
func redactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "invalid-url"
	}
	if u.User != nil {
		u.User = url.User("redacted")
	}
	return u.String()
}
