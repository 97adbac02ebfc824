package metric

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Calls to the remote catalog service.
	UpstreamRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: "catalog",
		Name:      "requests_total",
		Help:      "Requests sent to the remote catalog service",
	}, []string{"method", "status"}) // status: HTTP code or "transport_error"

	UpstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "storefront",
		Subsystem: "catalog",
		Name:      "request_duration_seconds",
		Help:      "Latency of requests to the remote catalog service",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method"})

	OrderSubmissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: "orders",
		Name:      "submissions_total",
		Help:      "Order form submissions by outcome",
	}, []string{"result"}) // succeeded, failed, invalid, replayed

	NavStateEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "storefront",
		Subsystem: "navstate",
		Name:      "entries",
		Help:      "Navigation state entries currently held in memory",
	})

	NavStateEvictionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: "navstate",
		Name:      "evictions_total",
		Help:      "Navigation state entries dropped to stay under the size limit",
	})

	RequestMetrics = promauto.NewSummaryVec(prometheus.SummaryOpts{
		Namespace:  "storefront",
		Subsystem:  "http",
		Name:       "request_duration_seconds",
		Help:       "Storefront page latency",
		Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
	}, []string{"status"})
)

func ObserveRequest(t time.Duration, status int) {
	RequestMetrics.WithLabelValues(strconv.Itoa(status)).Observe(t.Seconds())
}

func ObserveUpstream(method string, status string, t time.Duration) {
	UpstreamRequestsTotal.WithLabelValues(method, status).Inc()
	UpstreamDuration.WithLabelValues(method).Observe(t.Seconds())
}
