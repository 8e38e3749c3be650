package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for the service.
	Registry = prometheus.NewRegistry()

	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests."},
		[]string{"method", "path", "status"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "http_request_duration_seconds", Help: "HTTP request duration in seconds.", Buckets: prometheus.DefBuckets},
		[]string{"method", "path", "status"},
	)
	RateLimited = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "http_rate_limited_total", Help: "Requests rejected by the rate limiter."},
	)

	QuotesIssued = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "quotes_issued_total", Help: "Quotes issued by pricing tier."},
		[]string{"tier"},
	)
	// QuoteAmount tracks VAT-inclusive quote amounts in pounds.
	QuoteAmount = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "quote_amount_gbp", Help: "VAT-inclusive quote amount in GBP.", Buckets: []float64{50, 100, 200, 400, 800, 1600, 3200, 6400}},
		[]string{"tier"},
	)
	QuoteLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "quote_calculation_seconds", Help: "Quote calculation latency in seconds.", Buckets: prometheus.DefBuckets},
	)
	CatalogLoadFailures = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "catalog_load_failures_total", Help: "Failed catalog/config load attempts."},
	)
)

var regOnce sync.Once

// RegisterDefault registers all collectors on Registry. Safe to call more than once.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(HTTPRequests)
		Registry.MustRegister(HTTPDuration)
		Registry.MustRegister(RateLimited)
		Registry.MustRegister(QuotesIssued)
		Registry.MustRegister(QuoteAmount)
		Registry.MustRegister(QuoteLatency)
		Registry.MustRegister(CatalogLoadFailures)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}

func ObserveQuote(tier string, amountPence int64, took time.Duration) {
	QuotesIssued.WithLabelValues(tier).Inc()
	QuoteAmount.WithLabelValues(tier).Observe(float64(amountPence) / 100)
	QuoteLatency.Observe(took.Seconds())
}
