package observability

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yungbote/profile-backend/internal/platform/logger"
)

// Metrics owns a private registry so tests can build as many as they need.
type Metrics struct {
	registry *prometheus.Registry

	apiRequests *prometheus.CounterVec
	apiLatency  *prometheus.HistogramVec
	apiInflight prometheus.Gauge

	resolutions  *prometheus.CounterVec
	merges       *prometheus.CounterVec
	uploads      *prometheus.CounterVec
	enrichment   *prometheus.HistogramVec
	corruptions  prometheus.Counter
	cacheLookups *prometheus.CounterVec
}

func NewMetrics(log *logger.Logger) *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		apiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "profile_api_requests_total",
			Help: "Total API requests by method/route/status.",
		}, []string{"method", "route", "status"}),
		apiLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "profile_api_request_duration_seconds",
			Help:    "API request latency in seconds by method/route/status.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
		}, []string{"method", "route", "status"}),
		apiInflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "profile_api_inflight_requests",
			Help: "In-flight API requests.",
		}),
		resolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "profile_resolutions_total",
			Help: "Profile reads by resolving stage and result.",
		}, []string{"source", "result"}),
		merges: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "profile_merges_total",
			Help: "Profile writes by outcome.",
		}, []string{"outcome"}),
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "profile_image_uploads_total",
			Help: "Image uploads by result.",
		}, []string{"result"}),
		enrichment: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "profile_enrichment_duration_seconds",
			Help:    "Enrichment service call latency by operation and result.",
			Buckets: prometheus.DefBuckets,
		}, []string{"op", "result"}),
		corruptions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "profile_corrupt_records_total",
			Help: "Stored documents that failed to parse.",
		}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "profile_generated_cache_lookups_total",
			Help: "Generated document cache lookups by result.",
		}, []string{"result"}),
	}
	reg.MustRegister(
		m.apiRequests,
		m.apiLatency,
		m.apiInflight,
		m.resolutions,
		m.merges,
		m.uploads,
		m.enrichment,
		m.corruptions,
		m.cacheLookups,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if log != nil {
		log.Info("metrics initialized")
	}
	return m
}

// RegisterDBStats exports connection pool stats for db.
func (m *Metrics) RegisterDBStats(db *sql.DB, name string) {
	if m == nil || db == nil {
		return
	}
	m.registry.MustRegister(collectors.NewDBStatsCollector(db, name))
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	m.apiRequests.WithLabelValues(method, route, status).Inc()
	m.apiLatency.WithLabelValues(method, route, status).Observe(dur.Seconds())
}

func (m *Metrics) ApiInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) ApiInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

func (m *Metrics) ObserveResolution(source, result string) {
	if m == nil {
		return
	}
	m.resolutions.WithLabelValues(source, result).Inc()
}

func (m *Metrics) ObserveMerge(outcome string) {
	if m == nil {
		return
	}
	m.merges.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveUpload(result string) {
	if m == nil {
		return
	}
	m.uploads.WithLabelValues(result).Inc()
}

func (m *Metrics) ObserveEnrichment(op, result string, dur time.Duration) {
	if m == nil {
		return
	}
	m.enrichment.WithLabelValues(op, result).Observe(dur.Seconds())
}

func (m *Metrics) IncCorruption() {
	if m == nil {
		return
	}
	m.corruptions.Inc()
}

func (m *Metrics) ObserveCacheLookup(result string) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(result).Inc()
}
