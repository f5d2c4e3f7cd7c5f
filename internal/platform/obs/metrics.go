package obs

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "costsvc_http_requests_total",
		Help: "HTTP requests by route and status code",
	}, []string{"path", "status"})
	HTTPDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "costsvc_http_request_duration_ms",
		Help:    "HTTP request duration in milliseconds",
		Buckets: []float64{1, 5, 10, 20, 50, 100, 200, 500, 1000},
	}, []string{"path"})
	OpDurationMs = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "costsvc_op_duration_ms",
		Help:    "Internal operation duration in milliseconds",
		Buckets: []float64{0.1, 0.5, 1, 5, 10, 50, 100, 500},
	}, []string{"op"})
	QuotesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "costsvc_quotes_total",
		Help: "Quotes by outcome (computed, cached, rejected, failed)",
	}, []string{"outcome"})
	QuoteCacheTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "costsvc_quote_cache_total",
		Help: "Quote cache lookups by result (hit, miss, error)",
	}, []string{"result"})
	QuoteCost = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "costsvc_quote_cost",
		Help:    "Distribution of quoted total cost",
		Buckets: []float64{10, 25, 50, 100, 250, 500, 1000, 2500},
	})
)

func init() {
	prometheus.MustRegister(HTTPRequestsTotal)
	prometheus.MustRegister(HTTPDurationMs)
	prometheus.MustRegister(OpDurationMs)
	prometheus.MustRegister(QuotesTotal)
	prometheus.MustRegister(QuoteCacheTotal)
	prometheus.MustRegister(QuoteCost)
}

// Handler exposes the registered metrics for scraping.
func Handler() http.Handler { return promhttp.Handler() }
