package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus-коллекторов сервиса
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// База данных
	DBQueryDuration     *prometheus.HistogramVec
	DBQueryErrors       *prometheus.CounterVec
	DBOpenConnections   *prometheus.GaugeVec
	DBInUseConnections  *prometheus.GaugeVec
	DBIdleConnections   *prometheus.GaugeVec
	DBWaitCount         *prometheus.GaugeVec
	DBWaitDurationTotal *prometheus.GaugeVec

	// Бизнес-метрики распределения доков
	AllocationsTotal    *prometheus.CounterVec
	AllocationDockTries *prometheus.HistogramVec
	QuotaRejections     *prometheus.CounterVec
}

// New регистрирует коллекторы в prometheus.DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry регистрирует коллекторы в указанном реестре (используется в тестах)
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),

		DBQueryErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Total number of failed database operations",
			ConstLabels: constLabels,
		}, []string{"operation"}),

		DBOpenConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}, []string{}),

		DBInUseConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}, []string{}),

		DBIdleConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}, []string{}),

		DBWaitCount: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}, []string{}),

		DBWaitDurationTotal: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_duration_seconds_total",
			Help:        "Total time blocked waiting for a new connection",
			ConstLabels: constLabels,
		}, []string{}),

		AllocationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_allocations_total",
			Help:        "Booking allocation attempts by outcome",
			ConstLabels: constLabels,
		}, []string{"direction", "outcome"}),

		AllocationDockTries: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "booking_allocation_dock_attempts",
			Help:        "Number of candidate docks tried per allocation",
			ConstLabels: constLabels,
			Buckets:     []float64{1, 2, 3, 5, 8, 13},
		}, []string{"direction"}),

		QuotaRejections: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "volume_quota_rejections_total",
			Help:        "Bookings rejected by volume quota admission",
			ConstLabels: constLabels,
		}, []string{"direction", "reason"}),
	}
}

// ObserveAllocation фиксирует исход распределения и число опробованных доков
func (m *Metrics) ObserveAllocation(direction, outcome string, dockTries int) {
	m.AllocationsTotal.WithLabelValues(direction, outcome).Inc()
	if dockTries > 0 {
		m.AllocationDockTries.WithLabelValues(direction).Observe(float64(dockTries))
	}
}

// ObserveQuotaRejection фиксирует отказ по квоте
func (m *Metrics) ObserveQuotaRejection(direction, reason string) {
	m.QuotaRejections.WithLabelValues(direction, reason).Inc()
}

// ObserveHTTPRequest фиксирует HTTP запрос: route это шаблон маршрута, а не фактический путь
func (m *Metrics) ObserveHTTPRequest(method, route, status string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
