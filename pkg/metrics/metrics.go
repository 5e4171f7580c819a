package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Результаты обращения к кэшу слотов
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

// События записей
const (
	AppointmentCreated   = "created"
	AppointmentCancelled = "cancelled"
	AppointmentRejected  = "rejected"
)

// Metrics набор Prometheus метрик сервиса
// Все методы безопасны для nil получателя (метрики выключены)
type Metrics struct {
	serviceName string

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration    *prometheus.HistogramVec
	DBQueryErrors      *prometheus.CounterVec
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec
	DBWaitCount        *prometheus.GaugeVec

	SlotsGenerated    *prometheus.CounterVec
	SlotCacheRequests *prometheus.CounterVec
	AppointmentsTotal *prometheus.CounterVec
}

// New регистрирует метрики в глобальном реестре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer регистрирует метрики в переданном реестре (используется в тестах)
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		serviceName: serviceName,

		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "route", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "route"}),

		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation"}),

		DBQueryErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "db_query_errors_total",
			Help: "Total number of failed database queries",
		}, []string{"service", "operation"}),

		DBOpenConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established connections to the database",
		}, []string{"service"}),

		DBInUseConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of connections currently in use",
		}, []string{"service"}),

		DBIdleConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle connections",
		}, []string{"service"}),

		DBWaitCount: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_wait_count",
			Help: "Total number of connections waited for",
		}, []string{"service"}),

		SlotsGenerated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "availability_slots_generated_total",
			Help: "Total number of generated time slots",
		}, []string{"service", "available"}),

		SlotCacheRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "availability_slot_cache_requests_total",
			Help: "Slot cache lookups by result",
		}, []string{"service", "result"}),

		AppointmentsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "appointments_total",
			Help: "Appointment lifecycle events",
		}, []string{"service", "event"}),
	}
}

// RecordHTTPRequest фиксирует завершенный HTTP запрос
func (m *Metrics) RecordHTTPRequest(service, method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(service, method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(service, method, route).Observe(duration.Seconds())
}

// RecordDBQuery фиксирует выполненный запрос к БД
func (m *Metrics) RecordDBQuery(service, operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.DBQueryDuration.WithLabelValues(service, operation).Observe(duration.Seconds())
	if err != nil && err != sql.ErrNoRows {
		m.DBQueryErrors.WithLabelValues(service, operation).Inc()
	}
}

// SetDBStats обновляет метрики пула соединений
func (m *Metrics) SetDBStats(service string, stats sql.DBStats) {
	if m == nil {
		return
	}
	m.DBOpenConnections.WithLabelValues(service).Set(float64(stats.OpenConnections))
	m.DBInUseConnections.WithLabelValues(service).Set(float64(stats.InUse))
	m.DBIdleConnections.WithLabelValues(service).Set(float64(stats.Idle))
	m.DBWaitCount.WithLabelValues(service).Set(float64(stats.WaitCount))
}

// RecordSlotsGenerated фиксирует количество сгенерированных слотов
func (m *Metrics) RecordSlotsGenerated(available, unavailable int) {
	if m == nil {
		return
	}
	m.SlotsGenerated.WithLabelValues(m.serviceName, "true").Add(float64(available))
	m.SlotsGenerated.WithLabelValues(m.serviceName, "false").Add(float64(unavailable))
}

// RecordSlotCache фиксирует результат обращения к кэшу (CacheHit, CacheMiss, CacheError)
func (m *Metrics) RecordSlotCache(result string) {
	if m == nil {
		return
	}
	m.SlotCacheRequests.WithLabelValues(m.serviceName, result).Inc()
}

// RecordAppointment фиксирует событие жизненного цикла записи
func (m *Metrics) RecordAppointment(event string) {
	if m == nil {
		return
	}
	m.AppointmentsTotal.WithLabelValues(m.serviceName, event).Inc()
}
