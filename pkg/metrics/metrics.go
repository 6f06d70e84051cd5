package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application's Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rising_bms",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "rising_bms",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "path"},
	)

	cacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rising_bms",
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Dashboard cache lookups by outcome.",
		},
		[]string{"outcome"},
	)

	webhookExecutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rising_bms",
			Subsystem: "automation",
			Name:      "webhook_executions_total",
			Help:      "Total number of webhook executions.",
		},
		[]string{"status"},
	)
)

func init() {
	Registry.MustRegister(httpRequests, httpDuration, cacheHits, webhookExecutions)
}

// Handler serves the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// ObserveCacheLookup records a dashboard cache hit or miss.
func ObserveCacheLookup(hit bool) {
	outcome := "miss"
	if hit {
		outcome = "hit"
	}
	cacheHits.WithLabelValues(outcome).Inc()
}

// ObserveWebhookExecution records a webhook execution outcome.
func ObserveWebhookExecution(success bool) {
	status := "failure"
	if success {
		status = "success"
	}
	webhookExecutions.WithLabelValues(status).Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware records request counts and latencies. The chi route pattern
// is used as the path label so IDs do not blow up cardinality.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			path = rctx.RoutePattern()
		}

		httpRequests.WithLabelValues(r.Method, path, strconv.Itoa(rec.status)).Inc()
		httpDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}
