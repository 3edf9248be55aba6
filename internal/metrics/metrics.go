// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "volumeapi",
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by route pattern and status.",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "volumeapi",
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})

	StoreOpsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "volumeapi",
		Name:      "store_operations_total",
		Help:      "Volume store calls by operation and outcome (ok, not_found, error).",
	}, []string{"op", "outcome"})

	StoreOpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "volumeapi",
		Name:      "store_operation_duration_seconds",
		Help:      "Latency of volume store calls in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"op"})
)

// ObserveStore records one store call.
func ObserveStore(op, outcome string, took time.Duration) {
	StoreOpsTotal.WithLabelValues(op, outcome).Inc()
	StoreOpDuration.WithLabelValues(op).Observe(took.Seconds())
}

// Handler serves the default registry.
func Handler() http.Handler { return promhttp.Handler() }
