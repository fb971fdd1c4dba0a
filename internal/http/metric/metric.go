package metric

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the HTTP server metrics.
type Metrics struct {
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	InflightRequests prometheus.Gauge
}

var (
	once    sync.Once
	metrics *Metrics
)

// New returns the process-wide HTTP metrics. Collectors register against
// the default registry exactly once.
func New() *Metrics {
	once.Do(func() {
		metrics = &Metrics{
			RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "pos_http_requests_total",
				Help: "Number of HTTP requests by method and path.",
			}, []string{"method", "path"}),
			RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
				Name:    "pos_http_request_duration_seconds",
				Help:    "HTTP request latency by method and path.",
				Buckets: prometheus.DefBuckets,
			}, []string{"method", "path"}),
			InflightRequests: promauto.NewGauge(prometheus.GaugeOpts{
				Name: "pos_http_inflight_requests",
				Help: "Number of HTTP requests currently being served.",
			}),
		}
	})
	return metrics
}
