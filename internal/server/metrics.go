package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/iksnae/question-digest/internal"
)

// Metrics records request and upload statistics.
type Metrics interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	IncUploads(outcome string)
	ObserveUploadQuestions(count int)
}

type promMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	uploads         *prometheus.CounterVec
	uploadQuestions prometheus.Histogram
}

// NewRegistry returns the registry /metrics is served from, with Go runtime
// and process collectors registered.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// NewMetrics registers the server metrics on reg, or returns a no-op
// implementation when metrics are disabled.
func NewMetrics(conf *internal.Config, reg *prometheus.Registry, datasets *DatasetStore) Metrics {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	factory := promauto.With(reg)
	m := &promMetrics{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "qd_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "qd_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "qd_cache_hits_total",
			Help: "Total number of response cache hits",
		}),

		cacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "qd_cache_misses_total",
			Help: "Total number of response cache misses",
		}),

		uploads: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "qd_uploads_total",
			Help: "Uploaded exports by outcome",
		}, []string{"outcome"}),

		uploadQuestions: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "qd_upload_questions",
			Help:    "Questions extracted per uploaded export",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
	}

	factory.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "qd_datasets_stored",
		Help: "Local datasets accepted since start",
	}, func() float64 {
		return float64(datasets.Stored())
	})

	return m
}

func (m *promMetrics) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *promMetrics) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *promMetrics) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *promMetrics) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *promMetrics) IncUploads(outcome string) {
	m.uploads.WithLabelValues(outcome).Inc()
}

func (m *promMetrics) ObserveUploadQuestions(count int) {
	m.uploadQuestions.Observe(float64(count))
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) IncUploads(_ string)                              {}
func (n *noopMetrics) ObserveUploadQuestions(_ int)                     {}
