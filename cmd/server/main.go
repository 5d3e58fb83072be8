package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	httpAdapter "github.com/demobank/demobank/internal/adapter/http"
	"github.com/demobank/demobank/internal/adapter/http/handler"
	"github.com/demobank/demobank/internal/bus"
	"github.com/demobank/demobank/internal/infrastructure/auth"
	"github.com/demobank/demobank/internal/infrastructure/config"
	"github.com/demobank/demobank/internal/infrastructure/logger"
	"github.com/demobank/demobank/internal/infrastructure/postgres"
	"github.com/demobank/demobank/internal/infrastructure/redis"
	"github.com/demobank/demobank/internal/ledger"
	"github.com/demobank/demobank/internal/session"
	"github.com/demobank/demobank/internal/storage"
)

func main() {
	// Optional .env for local development
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})
	log.Logger = appLogger
	zerolog.DefaultContextLogger = &appLogger

	ctx := context.Background()

	blobs, cleanup, err := newBlobStore(ctx, cfg)
	if err != nil {
		appLogger.Fatal().Err(err).Str("backend", cfg.StorageBackend).Msg("failed to open blob store")
	}
	defer cleanup()
	appLogger.Info().Str("backend", cfg.StorageBackend).Msg("blob store ready")

	changes := bus.New(nil)
	store := ledger.NewStore(blobs, changes, appLogger)
	if err := store.LoadFromStorage(ctx); err != nil {
		appLogger.Fatal().Err(err).Msg("failed to load ledger state")
	}

	idGen := ledger.NewULIDGenerator()
	transfers := ledger.NewTransferService(store, idGen, appLogger)

	tokens := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
	sessions := session.NewService(store, tokens, appLogger)

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		AccountHandler:     handler.NewAccountHandler(store),
		TransactionHandler: handler.NewTransactionHandler(transfers, store),
		AuthHandler:        handler.NewAuthHandler(sessions),
		DemoHandler:        handler.NewDemoHandler(store),
		HealthHandler:      handler.NewHealthHandler(blobs),
		Tokens:             tokens,
		AuthEnabled:        cfg.AuthEnabled,
		SimulatedLatency:   cfg.SimulatedLatency,
		Logger:             appLogger,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	go func() {
		appLogger.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info().Msg("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	appLogger.Info().Msg("server stopped")
}

// newBlobStore opens the configured blob store backend.
func newBlobStore(ctx context.Context, cfg *config.Config) (storage.Store, func(), error) {
	noop := func() {}

	switch cfg.StorageBackend {
	case "file":
		store, err := storage.NewFileStore(cfg.DataDir)
		return store, noop, err

	case "memory":
		return storage.NewMemoryStore(), noop, nil

	case "redis":
		client, err := redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, noop, err
		}
		return storage.NewRedisStore(client), func() { client.Close() }, nil

	case "postgres":
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			return nil, noop, err
		}
		pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
		if err != nil {
			return nil, noop, err
		}
		return storage.NewPostgresStore(pool), pool.Close, nil

	default:
		return nil, noop, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
	}
}
