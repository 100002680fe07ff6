package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type HTTPServerMetrics struct {
	registry *prometheus.Registry

	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	requestInFlight prometheus.Gauge

	queryTotal         *prometheus.CounterVec
	extractorHitsTotal *prometheus.CounterVec
	weakRetrievalTotal *prometheus.CounterVec
	retrievedChunks    *prometheus.HistogramVec
	queryDuration      *prometheus.HistogramVec
}

func NewHTTPServerMetrics(service string) *HTTPServerMetrics {
	registry := prometheus.NewRegistry()

	requestTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "densho",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests processed.",
		},
		[]string{"service", "method", "path", "status"},
	)
	requestDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "densho",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "method", "path"},
	)
	requestInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "densho",
			Subsystem: "http",
			Name:      "in_flight_requests",
			Help:      "Number of in-flight HTTP requests.",
			ConstLabels: prometheus.Labels{
				"service": service,
			},
		},
	)
	queryTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "densho",
			Subsystem: "query",
			Name:      "requests_total",
			Help:      "Total answered queries by outcome.",
		},
		[]string{"service", "outcome"},
	)
	extractorHitsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "densho",
			Subsystem: "query",
			Name:      "extractor_hits_total",
			Help:      "Total deterministic answers by extractor path.",
		},
		[]string{"service", "path"},
	)
	weakRetrievalTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "densho",
			Subsystem: "query",
			Name:      "weak_retrieval_total",
			Help:      "Total queries answered in hybrid mode after weak retrieval.",
		},
		[]string{"service"},
	)
	retrievedChunks := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "densho",
			Subsystem: "query",
			Name:      "retrieved_chunks",
			Help:      "Distribution of context chunks per retrieval-backed query.",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21},
		},
		[]string{"service"},
	)
	queryDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "densho",
			Subsystem: "query",
			Name:      "duration_seconds",
			Help:      "Query pipeline duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"service", "outcome"},
	)

	registry.MustRegister(
		requestTotal,
		requestDuration,
		requestInFlight,
		queryTotal,
		extractorHitsTotal,
		weakRetrievalTotal,
		retrievedChunks,
		queryDuration,
	)

	return &HTTPServerMetrics{
		registry:           registry,
		requestTotal:       requestTotal,
		requestDuration:    requestDuration,
		requestInFlight:    requestInFlight,
		queryTotal:         queryTotal,
		extractorHitsTotal: extractorHitsTotal,
		weakRetrievalTotal: weakRetrievalTotal,
		retrievedChunks:    retrievedChunks,
		queryDuration:      queryDuration,
	}
}

func (m *HTTPServerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *HTTPServerMetrics) Middleware(service string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		path := normalizePath(r.URL.Path)
		recorder := &statusRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		m.requestInFlight.Inc()
		defer m.requestInFlight.Dec()

		next.ServeHTTP(recorder, r)

		m.requestTotal.WithLabelValues(
			service,
			r.Method,
			path,
			strconv.Itoa(recorder.statusCode),
		).Inc()
		m.requestDuration.WithLabelValues(service, r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// normalizePath caps label cardinality: anything outside the served routes
// is folded into one bucket.
func normalizePath(path string) string {
	switch path {
	case "/v1/query", "/healthz", "/metrics":
		return path
	default:
		return "/other"
	}
}

// RecordQuery observes one completed query. Outcome is "deterministic",
// "rag", "hybrid", or "error".
func (m *HTTPServerMetrics) RecordQuery(service, outcome string, retrieved int, duration time.Duration) {
	if outcome == "" {
		outcome = "unknown"
	}
	m.queryTotal.WithLabelValues(service, outcome).Inc()
	m.queryDuration.WithLabelValues(service, outcome).Observe(duration.Seconds())
	if outcome == "rag" || outcome == "hybrid" {
		m.retrievedChunks.WithLabelValues(service).Observe(float64(retrieved))
	}
	if outcome == "hybrid" {
		m.weakRetrievalTotal.WithLabelValues(service).Inc()
	}
}

func (m *HTTPServerMetrics) RecordExtractorHit(service, path string) {
	if path == "" {
		path = "unknown"
	}
	m.extractorHitsTotal.WithLabelValues(service, path).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *statusRecorder) Flush() {
	flusher, ok := w.ResponseWriter.(http.Flusher)
	if ok {
		flusher.Flush()
	}
}

func (w *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not implement http.Hijacker")
	}
	return hijacker.Hijack()
}

func (w *statusRecorder) Push(target string, opts *http.PushOptions) error {
	pusher, ok := w.ResponseWriter.(http.Pusher)
	if !ok {
		return http.ErrNotSupported
	}
	return pusher.Push(target, opts)
}
