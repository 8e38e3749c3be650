package api

import (
	"net/http"
	"removal-pricing-service/internal/api/handlers"
	"removal-pricing-service/internal/platform/metrics"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
// A nil limiter disables rate limiting.
func NewRouter(quotes handlers.QuoteService, data handlers.PricingData, limiter *ClientLimiter) http.Handler {
	mux := http.NewServeMux()

	quoteHandler := &handlers.QuoteHandler{Service: quotes}
	healthHandler := &handlers.HealthHandler{Data: data}

	mux.HandleFunc("/health", healthHandler.Health)
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/quotes", quoteHandler.Create)
	mux.HandleFunc("/quotes/{id}", quoteHandler.Get)
	mux.HandleFunc("/quotes/{id}/verify", quoteHandler.Verify)

	return requestIDMiddleware(observeMiddleware(rateLimitMiddleware(limiter, mux)))
}
