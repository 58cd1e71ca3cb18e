package observability

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the service's Prometheus collectors. A nil *Metrics is a no-op.
type Metrics struct {
	requests       *prometheus.CounterVec
	duration       *prometheus.HistogramVec
	errors         *prometheus.CounterVec
	authRejections *prometheus.CounterVec
}

// NewMetrics registers collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "peerprep_http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"method", "path", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "peerprep_http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "peerprep_http_errors_total",
			Help: "Handler errors by domain error code.",
		}, []string{"method", "path", "code"}),
		authRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "peerprep_auth_rejections_total",
			Help: "Requests rejected by the auth pipeline by reason.",
		}, []string{"reason"}),
	}

	reg.MustRegister(m.requests, m.duration, m.errors, m.authRejections)
	return m
}

// RecordRequest counts a finished request.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordError counts a handler error.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	m.errors.WithLabelValues(method, path, code).Inc()
}

// RecordAuthRejection counts an auth pipeline rejection.
func (m *Metrics) RecordAuthRejection(reason string) {
	if m == nil {
		return
	}
	m.authRejections.WithLabelValues(reason).Inc()
}

// Handler serves the gatherer in the Prometheus exposition format.
func Handler(gatherer prometheus.Gatherer) fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
}
