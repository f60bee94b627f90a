// cmd/api/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/coffee-storefront/internal/config"
	"github.com/your-org/coffee-storefront/internal/domain/catalog"
	"github.com/your-org/coffee-storefront/internal/infrastructure/database/postgres"
	"github.com/your-org/coffee-storefront/internal/infrastructure/database/redis"
	"github.com/your-org/coffee-storefront/internal/infrastructure/storage"
	"github.com/your-org/coffee-storefront/internal/interfaces/http"
	"github.com/your-org/coffee-storefront/internal/pkg/logger"
)

// backend is the storage driver picked by configuration
type backend struct {
	store   storage.Store
	expirer storage.Expirer
	redis   *goredis.Client
	checks  map[string]http.HealthChecker
	close   func()
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLog := logger.New(cfg)
	appLog.WithFields(logrus.Fields{
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
		"storage":     cfg.Storage.Driver,
	}).Infof("Starting %s", cfg.App.Name)

	be, err := openBackend(cfg, appLog)
	if err != nil {
		appLog.WithError(err).Fatal("Failed to open storage")
	}
	defer be.close()

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	if be.expirer != nil {
		sweeper := storage.NewSweeper(be.expirer, cfg.Storage.SessionTTL, cfg.Storage.SweepInterval, logger.Component(appLog, "sweeper"))
		go sweeper.Run(sweepCtx)
	}

	client := catalog.NewClient(cfg.Catalog.BaseURL, cfg.Catalog.Timeout, logger.Component(appLog, "catalog"))
	source := catalog.NewCache(client, cfg.Catalog.CacheTTL)

	server := http.NewServer(cfg, appLog, http.Options{
		Store:        be.store,
		Catalog:      source,
		Redis:        be.redis,
		HealthChecks: be.checks,
	})

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			appLog.WithError(err).Fatal("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLog.Info("Shutting down gracefully")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		appLog.WithError(err).Error("Failed to shutdown HTTP server gracefully")
	}

	appLog.Info("Server shutdown completed")
}

func openBackend(cfg *config.Config, appLog *logrus.Logger) (*backend, error) {
	switch cfg.Storage.Driver {
	case config.StorageRedis:
		client, err := redis.NewConnection(cfg, logger.Component(appLog, "redis"))
		if err != nil {
			return nil, err
		}
		return &backend{
			store:  redis.NewStore(client.GetClient(), cfg.Storage.SessionTTL),
			redis:  client.GetClient(),
			checks: map[string]http.HealthChecker{"redis": client},
			close: func() {
				if err := client.Close(); err != nil {
					appLog.WithError(err).Warn("Failed to close Redis connection")
				}
			},
		}, nil

	case config.StoragePostgres:
		db, err := postgres.NewConnection(cfg, logger.Component(appLog, "postgres"))
		if err != nil {
			return nil, err
		}
		migration := postgres.NewMigration(db.GetDB(), logger.Component(appLog, "migration"))
		if err := migration.RunAutoMigrations(); err != nil {
			_ = db.Close()
			return nil, err
		}
		if err := migration.CreateIndexes(); err != nil {
			appLog.WithError(err).Warn("Index creation failed")
		}
		store := postgres.NewStore(db.GetDB())
		return &backend{
			store:   store,
			expirer: store,
			checks:  map[string]http.HealthChecker{"postgres": db},
			close: func() {
				if err := db.Close(); err != nil {
					appLog.WithError(err).Warn("Failed to close database connection")
				}
			},
		}, nil

	default:
		return &backend{store: storage.NewMemory(), close: func() {}}, nil
	}
}
