// cmd/api/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/your-org/easyway-storefront/internal/api"
	"github.com/your-org/easyway-storefront/internal/config"
	"github.com/your-org/easyway-storefront/internal/domain/catalog"
	"github.com/your-org/easyway-storefront/internal/infrastructure/database/postgres"
	"github.com/your-org/easyway-storefront/internal/infrastructure/database/redis"
	"github.com/your-org/easyway-storefront/internal/infrastructure/storage"
	"github.com/your-org/easyway-storefront/internal/interfaces/http"
	"github.com/your-org/easyway-storefront/internal/pkg/auth"
	"github.com/your-org/easyway-storefront/internal/pkg/logger"
	"github.com/your-org/easyway-storefront/internal/store"
	"github.com/your-org/easyway-storefront/internal/storefront"
	"github.com/your-org/easyway-storefront/internal/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log := logger.New(cfg)
	log.WithFields(logrus.Fields{
		"name":        cfg.App.Name,
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
	}).Info("Starting storefront gateway")

	var redisClient *redis.Client
	if cfg.NeedsRedis() {
		redisClient, err = redis.NewConnection(cfg, log)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisClient.Close()
	}

	backend, closeBackend, err := openStorage(cfg, redisClient, log)
	if err != nil {
		log.Fatalf("Failed to open device storage: %v", err)
	}
	defer closeBackend()

	if cfg.Storage.EncryptionKey != "" {
		key, err := storage.ParseKey(cfg.Storage.EncryptionKey)
		if err != nil {
			log.Fatalf("Invalid STORAGE_ENCRYPTION_KEY: %v", err)
		}
		if backend, err = storage.NewSealed(backend, key); err != nil {
			log.Fatalf("Failed to enable storage encryption: %v", err)
		}
		log.Info("Device state encryption enabled")
	}

	client, err := api.NewClient(api.Options{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
		Logger:  log,
	})
	if err != nil {
		log.Fatalf("Failed to create backend client: %v", err)
	}

	defaults := store.Defaults{Language: catalog.Locale(cfg.Session.DefaultLanguage), Location: cfg.Session.DefaultLocation}
	registry := store.NewRegistry(backend, cfg.Storage.Namespace, defaults, log,
		store.WithCapacity(cfg.Session.MaxDevices, cfg.Session.IdleTTL))

	healthCtx, cancelHealth := context.WithTimeout(context.Background(), 5*time.Second)
	if err := registry.Health(healthCtx); err != nil {
		cancelHealth()
		log.Fatalf("Device storage health check failed: %v", err)
	}
	cancelHealth()

	svc := storefront.NewService(
		client,
		registry,
		validation.New(),
		auth.NewTokenInspector(cfg.Session.TokenRefreshSkew),
		cfg,
		log,
	)

	var limiter *goredis.Client
	if redisClient != nil && cfg.Security.RateLimitEnabled {
		limiter = redisClient.GetClient()
	}
	server := http.NewServer(cfg, svc, limiter, log)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		log.WithError(err).Error("Failed to shutdown HTTP server gracefully")
	}

	log.Info("Server shutdown completed")
}

// openStorage connects the configured durable backend for device state
func openStorage(cfg *config.Config, redisClient *redis.Client, log logrus.FieldLogger) (storage.Durable, func(), error) {
	noop := func() {}

	switch cfg.Storage.Provider {
	case config.StorageMemory:
		log.Warn("Using in-memory device storage, state is lost on restart")
		return storage.NewMemory(), noop, nil

	case config.StorageFile:
		f, err := storage.NewFile(cfg.Storage.FilePath)
		if err != nil {
			return nil, nil, err
		}
		return f, noop, nil

	case config.StorageRedis:
		return redisClient, noop, nil

	case config.StoragePostgres:
		db, err := postgres.NewConnection(cfg, log)
		if err != nil {
			return nil, nil, err
		}
		closeDB := func() {
			if err := db.Close(); err != nil {
				log.WithError(err).Warn("Failed to close database")
			}
		}

		migration := postgres.NewMigration(db.GetDB(), log)
		if err := migration.RunAutoMigrations(); err != nil {
			closeDB()
			return nil, nil, fmt.Errorf("database migration failed: %w", err)
		}
		if cfg.Storage.PruneAfter > 0 {
			if _, err := migration.PruneStale(cfg.Storage.PruneAfter); err != nil {
				log.WithError(err).Warn("Failed to prune stale device records")
			}
		}
		return db, closeDB, nil
	}

	return nil, nil, fmt.Errorf("unknown storage provider %q", cfg.Storage.Provider)
}
