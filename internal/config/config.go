package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// Get returns the environment value for key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) int {
	v := Get(key, "")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: %s=%q is not an integer, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func GetFloat(key string, fallback float64) float64 {
	v := Get(key, "")
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("config: %s=%q is not a number, using %v", key, v, fallback)
		return fallback
	}
	return f
}

// Server is the process configuration read by cmd/server.
type Server struct {
	Port               string
	DataRoot           string
	DatabaseURL        string
	RedisURL           string
	RateRPS            float64
	RateBurst          int
	TrustedProxies     string
	EconomyHorizonDays int
}

func Load() Server {
	return Server{
		Port:               Get("PORT", "8080"),
		DataRoot:           Get("PRICING_DATA_ROOT", ""),
		DatabaseURL:        Get("DATABASE_URL", ""),
		RedisURL:           Get("REDIS_URL", ""),
		RateRPS:            GetFloat("RATE_RPS", 20),
		RateBurst:          GetInt("RATE_BURST", 40),
		TrustedProxies:     Get("TRUSTED_PROXIES", ""),
		EconomyHorizonDays: GetInt("ECONOMY_HORIZON_DAYS", 7),
	}
}
