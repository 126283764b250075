package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics exposes request-level Prometheus instruments.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
}

// Metrics exposes application-level instruments.
type Metrics struct {
	invoicesCreated   *prometheus.CounterVec
	documentsRendered *prometheus.CounterVec
}

// NewHTTPMetrics registers and returns HTTP metrics.
func NewHTTPMetrics() *HTTPMetrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "facturio_http_requests_total",
		Help: "Counts HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "facturio_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	prometheus.MustRegister(requests, latency)

	return &HTTPMetrics{requests: requests, latency: latency}
}

// New registers and returns the domain instruments.
func New() *Metrics {
	invoicesCreated := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "facturio_invoices_created_total",
		Help: "Invoices created by status.",
	}, []string{"status"})
	documentsRendered := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "facturio_invoice_documents_rendered_total",
		Help: "Invoice documents rendered by output format.",
	}, []string{"format"})

	prometheus.MustRegister(invoicesCreated, documentsRendered)

	return &Metrics{
		invoicesCreated:   invoicesCreated,
		documentsRendered: documentsRendered,
	}
}

// RecordInvoiceCreated increments invoice creation counts.
func (m *Metrics) RecordInvoiceCreated(status string) {
	if m == nil {
		return
	}
	m.invoicesCreated.WithLabelValues(strings.TrimSpace(status)).Inc()
}

// RecordDocumentRendered increments rendered document counts.
func (m *Metrics) RecordDocumentRendered(format string) {
	if m == nil {
		return
	}
	m.documentsRendered.WithLabelValues(strings.TrimSpace(format)).Inc()
}

// GinMiddleware records request counts and latency per route.
func GinMiddleware(m *HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if strings.TrimSpace(route) == "" {
			route = "unknown"
		}
		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())

		m.requests.WithLabelValues(method, route, status).Inc()
		m.latency.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}
