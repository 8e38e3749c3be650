package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"removal-pricing-service/internal/adapters/catalog"
	"removal-pricing-service/internal/adapters/distance"
	"removal-pricing-service/internal/adapters/repositories"
	"removal-pricing-service/internal/adapters/slots"
	"removal-pricing-service/internal/api"
	"removal-pricing-service/internal/config"
	"removal-pricing-service/internal/platform/db"
	"removal-pricing-service/internal/platform/metrics"
	"removal-pricing-service/internal/ports"
	"removal-pricing-service/internal/services"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// main is the application composition root.
// It picks concrete adapters from the environment, wires them behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg := config.Load()
	metrics.RegisterDefault()

	root := cfg.DataRoot
	if root == "" {
		var err error
		root, err = catalog.DiscoverRoot(".")
		if err != nil {
			log.Fatal(err)
		}
	}

	loader := services.NewDataLoader(catalog.NewFileSource(root))
	loader.OnFailure = func(err error) {
		metrics.CatalogLoadFailures.Inc()
		log.Printf("op=pricing.data.load err=%v", err)
	}
	// Load eagerly so a broken catalog is visible at startup; requests retry on their own.
	if data, err := loader.Get(context.Background()); err != nil {
		log.Printf("pricing data not loaded at startup: %v", err)
	} else {
		log.Printf("pricing data loaded version=%s root=%s", data.Version(), root)
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("parse REDIS_URL: %v", err)
		}
		rdb = redis.NewClient(opts)
		defer rdb.Close()
	}

	var sqlDB *sql.DB
	if cfg.DatabaseURL != "" {
		var err error
		sqlDB, err = db.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer sqlDB.Close()

		if err := repositories.InitSchema(sqlDB); err != nil {
			log.Fatal(err)
		}
	}

	calendar := slots.NewCalendarSlotFinder(cfg.EconomyHorizonDays)
	var slotFinder ports.SlotFinder = calendar
	if rdb != nil {
		slotFinder = slots.NewRedisSlotFinder(rdb, calendar)
	}

	repo, backend := snapshotRepository(sqlDB, rdb)
	log.Printf("quote snapshots backend=%s", backend)

	engine := services.NewEngine(loader, distance.NewHaversineProvider(), slotFinder)
	quotes := services.NewQuoteService(engine, repo)
	limiter := api.NewClientLimiter(cfg.RateRPS, cfg.RateBurst)
	if limiter != nil {
		proxies, err := api.ParseTrustedProxies(cfg.TrustedProxies)
		if err != nil {
			log.Fatalf("invalid TRUSTED_PROXIES: %v", err)
		}
		limiter.TrustedProxies = proxies
	}
	router := api.NewRouter(quotes, loader, limiter)

	log.Printf("Server listening addr=:%s", cfg.Port)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		log.Fatal(fmt.Errorf("server: %w", err))
	}
}

// Postgres is preferred for snapshots, then Redis, then process memory.
func snapshotRepository(sqlDB *sql.DB, rdb *redis.Client) (ports.QuoteRepository, string) {
	switch {
	case sqlDB != nil:
		return repositories.NewSQLQuoteRepository(sqlDB), "postgres"
	case rdb != nil:
		return repositories.NewRedisQuoteRepository(rdb, 0), "redis"
	default:
		return repositories.NewMemoryQuoteRepository(), "memory"
	}
}
