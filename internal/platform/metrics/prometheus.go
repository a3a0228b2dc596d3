package metrics

import (
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/Rushibhatt10/HBEstate/internal/platform/logger"
)

var invalidNamespaceChars = regexp.MustCompile(`[^a-zA-Z0-9_]`)

// Manager holds the service's Prometheus metrics. All methods are safe on a
// nil *Manager so that metrics stay optional in tests.
type Manager struct {
	Registry *prometheus.Registry

	PropertiesCreatedTotal prometheus.Counter
	PropertiesUpdatedTotal prometheus.Counter
	PropertiesDeletedTotal prometheus.Counter
	QueriesSubmittedTotal  prometheus.Counter
	PropertyViewsTotal     prometheus.Counter
	ImagesUploadedTotal    prometheus.Counter

	HTTPRequestsTotal  *prometheus.CounterVec
	HTTPRequestLatency *prometheus.HistogramVec
}

// NewManager creates the metrics on a private registry.
func NewManager(serviceName string) *Manager {
	ns := invalidNamespaceChars.ReplaceAllString(serviceName, "_")
	registry := prometheus.NewRegistry()

	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{Namespace: ns, Name: name, Help: help})
	}

	m := &Manager{
		Registry:               registry,
		PropertiesCreatedTotal: counter("properties_created_total", "Total number of properties created."),
		PropertiesUpdatedTotal: counter("properties_updated_total", "Total number of properties updated."),
		PropertiesDeletedTotal: counter("properties_deleted_total", "Total number of properties deleted."),
		QueriesSubmittedTotal:  counter("queries_submitted_total", "Total number of contact queries submitted."),
		PropertyViewsTotal:     counter("property_views_total", "Total number of property detail views logged."),
		ImagesUploadedTotal:    counter("images_uploaded_total", "Total number of images uploaded."),
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: ns,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		HTTPRequestLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: ns,
			Name:      "http_request_latency_seconds",
			Help:      "Latency of HTTP requests by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}

	registry.MustRegister(
		m.PropertiesCreatedTotal,
		m.PropertiesUpdatedTotal,
		m.PropertiesDeletedTotal,
		m.QueriesSubmittedTotal,
		m.PropertyViewsTotal,
		m.ImagesUploadedTotal,
		m.HTTPRequestsTotal,
		m.HTTPRequestLatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Manager) PropertyCreated() {
	if m != nil {
		m.PropertiesCreatedTotal.Inc()
	}
}

func (m *Manager) PropertyUpdated() {
	if m != nil {
		m.PropertiesUpdatedTotal.Inc()
	}
}

func (m *Manager) PropertyDeleted() {
	if m != nil {
		m.PropertiesDeletedTotal.Inc()
	}
}

func (m *Manager) QuerySubmitted() {
	if m != nil {
		m.QueriesSubmittedTotal.Inc()
	}
}

func (m *Manager) PropertyViewed() {
	if m != nil {
		m.PropertyViewsTotal.Inc()
	}
}

func (m *Manager) ImagesUploaded(n int) {
	if m != nil && n > 0 {
		m.ImagesUploadedTotal.Add(float64(n))
	}
}

// ObserveHTTP records one served request. route is the router pattern, not
// the raw path, to keep label cardinality bounded.
func (m *Manager) ObserveHTTP(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestLatency.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// NewMetricsServer returns the HTTP server exposing /metrics for registry,
// or nil when port is empty.
func NewMetricsServer(port string, registry *prometheus.Registry) *http.Server {
	if port == "" {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	return &http.Server{
		Addr:              ":" + port,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// StartMetricsServer serves /metrics until the server fails or is shut down.
func StartMetricsServer(server *http.Server, appLogger *logger.Logger) error {
	if server == nil {
		appLogger.Info("Prometheus metrics server port not configured, server will not start.")
		return nil
	}
	appLogger.Info("Prometheus metrics server starting", zap.String("addr", server.Addr), zap.String("path", "/metrics"))
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
