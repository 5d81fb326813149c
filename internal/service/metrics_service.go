package service

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	importRows      *prometheus.CounterVec
	narrativeCalls  *prometheus.CounterVec
}

// NewMetricsService registers the core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	importRows := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "csv_import_rows_total",
		Help: "CSV import rows by disposition",
	}, []string{"disposition"})

	narrativeCalls := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "narrative_requests_total",
		Help: "Narrative generation attempts by outcome",
	}, []string{"outcome"})

	registry.MustRegister(requestDuration, requestTotal, importRows, narrativeCalls)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		importRows:      importRows,
		narrativeCalls:  narrativeCalls,
	}
}

// Handler exposes the Prometheus scrape endpoint.
func (s *MetricsService) Handler() http.Handler {
	return s.handler
}

// ObserveHTTPRequest records one handled request.
func (s *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	labels := []string{method, path, strconv.Itoa(status)}
	s.requestDuration.WithLabelValues(labels...).Observe(duration.Seconds())
	s.requestTotal.WithLabelValues(labels...).Inc()
}

// CountImportRows records CSV import dispositions.
func (s *MetricsService) CountImportRows(imported, skipped, unmatched int) {
	s.importRows.WithLabelValues("imported").Add(float64(imported))
	s.importRows.WithLabelValues("skipped").Add(float64(skipped))
	s.importRows.WithLabelValues("unmatched").Add(float64(unmatched))
}

// CountNarrative records one narrative generation attempt.
func (s *MetricsService) CountNarrative(outcome string) {
	s.narrativeCalls.WithLabelValues(outcome).Inc()
}
