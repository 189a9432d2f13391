package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/burgerhub/menu-ordering/app/server"
	"github.com/burgerhub/menu-ordering/auth"
	"github.com/burgerhub/menu-ordering/config"
	"github.com/burgerhub/menu-ordering/logging"
	"github.com/burgerhub/menu-ordering/models"
	"github.com/burgerhub/menu-ordering/storage"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.IsProduction(), cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	docs, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.StorageDriver, err)
	}
	defer closeStore()
	logger.Info("document store ready", zap.String("driver", cfg.StorageDriver))

	repo := models.NewCatalogRepository(docs)
	seeded, err := repo.Initialize(ctx)
	if err != nil {
		return fmt.Errorf("initialize catalog: %w", err)
	}
	if seeded {
		logger.Info("catalog seeded with default menu")
	}

	cart, err := models.LoadCart(ctx, docs)
	if err != nil {
		return fmt.Errorf("load cart: %w", err)
	}

	session := auth.NewSession(docs, auth.StaticCredentials{
		Identifier: cfg.AdminEmail,
		Secret:     cfg.AdminPassword,
	})

	srv := &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: server.NewRouter(server.Deps{
			Catalog:        repo,
			Cart:           cart,
			Session:        session,
			Link:           models.DeepLink{Host: cfg.WhatsAppHost, Recipient: cfg.WhatsAppRecipient},
			RestaurantName: cfg.RestaurantName,
			Logger:         logger,
		}),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// openStore builds the document store for the configured driver. The returned
// func releases its connections.
func openStore(ctx context.Context, cfg *config.Config) (storage.Documents, func(), error) {
	switch cfg.StorageDriver {
	case config.DriverMemory:
		return storage.NewMemory(cfg.MemoryQuotaBytes), func() {}, nil

	case config.DriverRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, err
		}
		return storage.NewRedisDocuments(client, cfg.RedisPrefix), func() { client.Close() }, nil

	default:
		var dialector gorm.Dialector
		if cfg.StorageDriver == config.DriverPostgres {
			dsn, err := cfg.PostgresDSN()
			if err != nil {
				return nil, nil, err
			}
			dialector = postgres.Open(dsn)
		} else {
			dialector = sqlite.Open(cfg.SQLitePath)
		}

		db, err := gorm.Open(dialector, &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		if cfg.StorageDriver == config.DriverSQLite {
			sqlDB.SetMaxOpenConns(1)
		}

		store := storage.NewGormDocuments(db)
		if err := store.Migrate(ctx); err != nil {
			sqlDB.Close()
			return nil, nil, err
		}
		return store, func() { sqlDB.Close() }, nil
	}
}
