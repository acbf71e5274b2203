// Package metrics holds the Prometheus collectors of the back-office and the
// /metrics handler. Everything is registered on DefaultRegistry so tests and
// the HTTP handler see the same series.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "backoffice"

// DefaultRegistry is the registry served on /metrics.
var DefaultRegistry = prometheus.NewRegistry()

func counter(subsystem, name, help string, labels ...string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace, Subsystem: subsystem, Name: name, Help: help,
	}, labels)
}

func histogram(subsystem, name, help string, buckets []float64, labels ...string) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace, Subsystem: subsystem, Name: name, Help: help, Buckets: buckets,
	}, labels)
}

// HTTP
var (
	RequestTotal    = counter("http", "requests_total", "HTTP requests by route and status.", "method", "path", "status")
	RequestDuration = histogram("http", "request_duration_seconds", "HTTP request latency.", prometheus.DefBuckets, "method", "path", "status")
	RequestInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace, Subsystem: "http", Name: "requests_in_flight",
		Help: "Requests currently being served.",
	})
)

// Storage layers
var (
	DBQueryDuration = histogram("db", "query_duration_seconds", "gorm statement latency by operation.",
		[]float64{.001, .005, .01, .025, .05, .1, .5, 1}, "operation")
	CacheHits   = counter("cache", "hits_total", "Banner cache hits.", "driver")
	CacheMisses = counter("cache", "misses_total", "Banner cache misses.", "driver")
)

// Domain
var (
	BannerImagesPublished = counter("banner", "images_published_total", "Banner images written to the storage disk.", "result")
	OrderStatusChanges    = counter("order", "status_changes_total", "Order updates that changed status_order, by new status.", "status")
)

func init() {
	DefaultRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		RequestTotal, RequestDuration, RequestInFlight,
		DBQueryDuration, CacheHits, CacheMisses,
		BannerImagesPublished, OrderStatusChanges,
	)
}

// MustRegister adds collectors owned by other packages (the gRPC server).
func MustRegister(c ...prometheus.Collector) {
	DefaultRegistry.MustRegister(c...)
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Middleware observes every request. The path label is the chi route
// pattern, so /api/orders/7 and /api/orders/8 share one series.
func Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			RequestInFlight.Inc()
			defer RequestInFlight.Dec()

			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)

			labels := []string{r.Method, routePattern(r), strconv.Itoa(sw.status)}
			RequestTotal.WithLabelValues(labels...).Inc()
			RequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
		})
	}
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}

// Handler serves DefaultRegistry.
func Handler() http.HandlerFunc {
	return promhttp.HandlerFor(DefaultRegistry, promhttp.HandlerOpts{EnableOpenMetrics: true}).ServeHTTP
}

// ObserveDBQuery records one statement:
//
//	defer metrics.ObserveDBQuery("select", time.Now())
func ObserveDBQuery(operation string, start time.Time) {
	DBQueryDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// RecordBannerPublish counts one image publish attempt.
func RecordBannerPublish(err error) {
	result := "success"
	if err != nil {
		result = "failed"
	}
	BannerImagesPublished.WithLabelValues(result).Inc()
}

// RecordOrderStatus counts an order moved to status.
func RecordOrderStatus(status int) {
	OrderStatusChanges.WithLabelValues(strconv.Itoa(status)).Inc()
}
