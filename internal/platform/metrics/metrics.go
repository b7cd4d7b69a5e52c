package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the verification service.
type Metrics struct {
	VerificationsTotal   *prometheus.CounterVec
	VerificationDuration *prometheus.HistogramVec
	ProviderErrors       *prometheus.CounterVec
	LookupCacheHits      prometheus.Counter
	LookupCacheMisses    prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		VerificationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ekyc_verifications_total",
			Help: "Verification requests by type and terminal status",
		}, []string{"type", "status"}),
		VerificationDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ekyc_verification_duration_seconds",
			Help:    "End-to-end pipeline latency per verification",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"type"}),
		ProviderErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ekyc_provider_errors_total",
			Help: "Provider call failures by normalized category",
		}, []string{"category"}),
		LookupCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ekyc_lookup_cache_hits_total",
			Help: "Provider lookups served from the Redis cache",
		}),
		LookupCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ekyc_lookup_cache_misses_total",
			Help: "Provider lookups that missed the Redis cache",
		}),
	}
}

// ObserveVerification records one finished verification request.
func (m *Metrics) ObserveVerification(verificationType, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.VerificationsTotal.WithLabelValues(verificationType, status).Inc()
	m.VerificationDuration.WithLabelValues(verificationType).Observe(elapsed.Seconds())
}

// ProviderError counts one normalized provider failure.
func (m *Metrics) ProviderError(category string) {
	if m == nil {
		return
	}
	m.ProviderErrors.WithLabelValues(category).Inc()
}

func (m *Metrics) CacheHit() {
	if m == nil {
		return
	}
	m.LookupCacheHits.Inc()
}

func (m *Metrics) CacheMiss() {
	if m == nil {
		return
	}
	m.LookupCacheMisses.Inc()
}
