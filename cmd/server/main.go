package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"
	"warehouse-cost-service/internal/adapters/cache"
	"warehouse-cost-service/internal/adapters/repositories"
	"warehouse-cost-service/internal/api"
	"warehouse-cost-service/internal/config"
	"warehouse-cost-service/internal/platform/db"
	"warehouse-cost-service/internal/ports"
	"warehouse-cost-service/internal/services"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It loads the catalog through the configured repository, builds the immutable
// cost engine, picks a quote cache and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := openCatalogRepository(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeRepo()

	catalog, err := repo.LoadCatalog(ctx)
	if err != nil {
		log.Fatal(err)
	}

	policy, err := services.ParseUnsourcedPolicy(cfg.UnsourcedPolicy)
	if err != nil {
		log.Fatal(err)
	}

	engine, err := services.NewEngine(catalog, cfg.Rates, policy)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Catalog loaded source=%s hub=%s centers=%d items=%d fingerprint=%s policy=%s",
		cfg.CatalogSource, catalog.Hub, len(catalog.Centers), len(catalog.Items), engine.Fingerprint(), policy)

	quoteCache, closeCache := openQuoteCache(ctx, cfg)
	defer closeCache()

	router := api.NewRouter(engine, quoteCache, cfg.CORSAllowedOrigins)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server listening addr=:%s", cfg.Port)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	case <-ctx.Done():
		log.Println("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown failed: %v", err)
		}
	}
}

// openCatalogRepository returns the configured catalog source and a close func.
// The sqlite source is (re)seeded from CATALOG_PATH on every start for local runs.
func openCatalogRepository(ctx context.Context, cfg config.Config) (ports.CatalogRepository, func(), error) {
	noop := func() {}

	switch cfg.CatalogSource {
	case "sqlite":
		sqlDB, err := db.OpenSQLite(ctx, cfg.DBPath)
		if err != nil {
			return nil, noop, err
		}
		if err := initAndSeed(ctx, sqlDB, cfg.CatalogPath); err != nil {
			sqlDB.Close()
			return nil, noop, err
		}
		return repositories.NewSQLCatalogRepository(sqlDB, repositories.DialectSQLite), closeDB(sqlDB), nil

	case "postgres":
		sqlDB, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, noop, err
		}
		return repositories.NewSQLCatalogRepository(sqlDB, repositories.DialectPostgres), closeDB(sqlDB), nil

	default:
		return repositories.NewFileCatalogRepository(cfg.CatalogPath), noop, nil
	}
}

func initAndSeed(ctx context.Context, sqlDB *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(ctx, sqlDB); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if err := repositories.SeedFromFile(ctx, sqlDB, repositories.DialectSQLite, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}

func closeDB(sqlDB *sql.DB) func() {
	return func() {
		if err := sqlDB.Close(); err != nil {
			log.Printf("close db failed: %v", err)
		}
	}
}

// openQuoteCache prefers Redis when REDIS_ADDR is set and reachable, otherwise an in-process cache.
func openQuoteCache(ctx context.Context, cfg config.Config) (ports.QuoteCache, func()) {
	if cfg.RedisAddr == "" {
		log.Printf("Quote cache backend=memory ttl=%s", cfg.QuoteCacheTTL)
		return cache.NewMemoryQuoteCache(cfg.QuoteCacheTTL, 0), func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Printf("redis unreachable addr=%s err=%v (falling back to memory cache)", cfg.RedisAddr, err)
		client.Close()
		return cache.NewMemoryQuoteCache(cfg.QuoteCacheTTL, 0), func() {}
	}

	log.Printf("Quote cache backend=redis addr=%s db=%d ttl=%s", cfg.RedisAddr, cfg.RedisDB, cfg.QuoteCacheTTL)
	return cache.NewRedisQuoteCache(client, cfg.QuoteCacheTTL), func() { _ = client.Close() }
}
