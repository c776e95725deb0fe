package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/wardrobe/backend/config"
	httpDelivery "github.com/wardrobe/backend/internal/delivery/http"
	"github.com/wardrobe/backend/internal/domain"
	"github.com/wardrobe/backend/internal/infrastructure/cache"
	"github.com/wardrobe/backend/internal/infrastructure/memstore"
	"github.com/wardrobe/backend/internal/infrastructure/postgres"
	"github.com/wardrobe/backend/internal/logger"
	"github.com/wardrobe/backend/internal/usecase"
)

const shutdownTimeout = 15 * time.Second

// cacheBackend is a result cache the server can probe and close
type cacheBackend interface {
	domain.CacheRepository
	httpDelivery.Pinger
	io.Closer
}

// dbPinger adapts *sql.DB to the health check
type dbPinger struct {
	db *sql.DB
}

func (p dbPinger) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zapLogger, err := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	if err := run(cfg, zapLogger); err != nil {
		zapLogger.Error("server stopped with error", zap.Error(err))
		_ = zapLogger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, zapLogger *zap.Logger) error {
	zapLogger.Info("starting wardrobe backend",
		zap.String("version", "1.0.0"),
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("database", cfg.Database.Driver),
		zap.String("cache", cfg.Cache.Type),
		zap.Duration("cache_ttl", cfg.Cache.TTL),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	checks := make(map[string]httpDelivery.Pinger)

	// Initialize infrastructure dependencies
	closetRepo, wishlistRepo, db, err := openStore(ctx, cfg.Database)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
		checks["database"] = dbPinger{db: db}
	}

	resultCache, err := openCache(cfg.Cache)
	if err != nil {
		return err
	}
	defer resultCache.Close()
	checks["cache"] = resultCache

	tables := usecase.DefaultMatchTables()
	if cfg.Matching.TablesFile != "" {
		tables, err = usecase.LoadMatchTables(cfg.Matching.TablesFile)
		if err != nil {
			return fmt.Errorf("failed to load match tables: %w", err)
		}
		zapLogger.Info("match tables loaded", zap.String("file", cfg.Matching.TablesFile))
	}

	// Initialize usecase layer
	serviceConfig := usecase.WishlistServiceConfig{
		CacheTTL:         cfg.Cache.TTL,
		DefaultThreshold: &cfg.Matching.DefaultThreshold,
		DefaultLimit:     cfg.Matching.DefaultLimit,
		MaxLimit:         cfg.Matching.MaxLimit,
	}
	matcher := usecase.NewSimilarityMatcher(tables)
	closetService := usecase.NewClosetService(closetRepo, resultCache, zapLogger, serviceConfig)
	wishlistService := usecase.NewWishlistService(wishlistRepo, closetRepo, resultCache, matcher, zapLogger, serviceConfig)

	zapLogger.Info("matching configured",
		zap.Float64("default_threshold", cfg.Matching.DefaultThreshold),
		zap.Int("default_limit", cfg.Matching.DefaultLimit),
		zap.Int("max_limit", cfg.Matching.MaxLimit),
	)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(closetService, wishlistService, zapLogger, checks)
	router := httpDelivery.SetupRouter(cfg, handler, zapLogger)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zapLogger.Info("server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	zapLogger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

func openStore(ctx context.Context, cfg config.DatabaseConfig) (domain.ClosetRepository, domain.WishlistRepository, *sql.DB, error) {
	switch cfg.Driver {
	case "postgres":
		db, err := postgres.Open(ctx, cfg.URL, postgres.Options{
			MaxOpenConns: cfg.MaxOpenConns,
			MaxIdleConns: cfg.MaxIdleConns,
		})
		if err != nil {
			return nil, nil, nil, err
		}
		return postgres.NewClosetRepository(db), postgres.NewWishlistRepository(db), db, nil
	default:
		store := memstore.New(memstore.DefaultCategories)
		return store.Closet(), store.Wishlist(), nil, nil
	}
}

func openCache(cfg config.CacheConfig) (cacheBackend, error) {
	switch cfg.Type {
	case "redis":
		redisCache, err := cache.NewRedisCache(cfg.RedisURL, "wardrobe:")
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return redisCache, nil
	default:
		return cache.NewMemoryCache(), nil
	}
}
