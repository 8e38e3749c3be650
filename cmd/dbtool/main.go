package main

import (
	"context"
	"log"
	"removal-pricing-service/internal/adapters/repositories"
	"removal-pricing-service/internal/adapters/slots"
	"removal-pricing-service/internal/config"
	"removal-pricing-service/internal/platform/db"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

// dbtool prepares backing stores. It creates the quote snapshot schema in DATABASE_URL and,
// when ECONOMY_SLOTS is set, publishes per-day economy capacity to REDIS_URL.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := config.Get("DATABASE_URL", "")
	schedule := config.Get("ECONOMY_SLOTS", "")
	if databaseURL == "" && schedule == "" {
		log.Fatal("DATABASE_URL or ECONOMY_SLOTS is required")
	}

	if databaseURL != "" {
		initSchema(databaseURL)
	}
	if schedule != "" {
		publishSlots(config.Get("REDIS_URL", ""), schedule)
	}
}

func initSchema(databaseURL string) {
	conn, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	log.Println("Initializing quote snapshot schema...")
	if err := repositories.InitSchema(conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")
}

func publishSlots(redisURL, schedule string) {
	if redisURL == "" {
		log.Fatal("REDIS_URL is required to publish ECONOMY_SLOTS")
	}
	days, err := slots.ParseSchedule(schedule)
	if err != nil {
		log.Fatal(err)
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatalf("invalid REDIS_URL: %v", err)
	}
	rdb := redis.NewClient(opts)
	defer rdb.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := slots.NewRedisSlotFinder(rdb, nil).Publish(ctx, days); err != nil {
		log.Fatalf("publishing economy slots failed: %v", err)
	}
	log.Printf("Published economy capacity for %d day(s).", len(days))
}
