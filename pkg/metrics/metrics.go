// Package metrics registers the service's Prometheus collectors.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles every collector exposed on /metrics.
type Metrics struct {
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	consultationsCreated prometheus.Counter
	slotCacheHits        prometheus.Counter
	slotCacheMisses      prometheus.Counter
}

// New registers all collectors on the default registry.
func New(serviceName string) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		httpRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total HTTP requests by method, route and status code.",
			ConstLabels: labels,
		}, []string{"method", "route", "code"}),
		httpRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency by method and route.",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		consultationsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "consultations_created_total",
			Help:        "Consultations admitted into PENDING state.",
			ConstLabels: labels,
		}),
		slotCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "slot_cache_hits_total",
			Help:        "Open-slot listings served from the Redis cache.",
			ConstLabels: labels,
		}),
		slotCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name:        "slot_cache_misses_total",
			Help:        "Open-slot listings computed from the database.",
			ConstLabels: labels,
		}),
	}
}

// ObserveRequest records one completed HTTP request.
func (m *Metrics) ObserveRequest(method, route string, code int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// IncConsultationsCreated counts a successful booking admission.
func (m *Metrics) IncConsultationsCreated() {
	m.consultationsCreated.Inc()
}

// IncSlotCacheHit counts a cache hit on the slot listing.
func (m *Metrics) IncSlotCacheHit() {
	m.slotCacheHits.Inc()
}

// IncSlotCacheMiss counts a cache miss on the slot listing.
func (m *Metrics) IncSlotCacheMiss() {
	m.slotCacheMisses.Inc()
}
