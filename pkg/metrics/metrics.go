// Package metrics содержит Prometheus-метрики сервиса
package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор коллекторов сервиса.
// Все методы безопасно вызывать на nil (метрики выключены).
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration *prometheus.HistogramVec
	dbOpenConns     *prometheus.GaugeVec
	dbInUseConns    *prometheus.GaugeVec
	dbIdleConns     *prometheus.GaugeVec
	dbWaitCount     *prometheus.GaugeVec

	appointmentsTotal     *prometheus.CounterVec
	slotSearchDuration    *prometheus.HistogramVec
	calendarNotifications *prometheus.CounterVec
	sweepCancelled        *prometheus.CounterVec
}

// New создает метрики и регистрирует их в глобальном реестре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает метрики и регистрирует их в переданном реестре
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}, []string{"method", "route"}),
		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			ConstLabels: constLabels,
		}, []string{"operation", "status"}),
		dbOpenConns: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_pool_open_connections",
			Help: "Number of established connections",
		}, []string{"service"}),
		dbInUseConns: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_pool_in_use_connections",
			Help: "Number of connections currently in use",
		}, []string{"service"}),
		dbIdleConns: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_pool_idle_connections",
			Help: "Number of idle connections",
		}, []string{"service"}),
		dbWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_pool_wait_count",
			Help: "Total number of connections waited for",
		}, []string{"service"}),
		appointmentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "appointments_total",
			Help:        "Appointment lifecycle operations by kind",
			ConstLabels: constLabels,
		}, []string{"operation"}),
		slotSearchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "slot_search_duration_seconds",
			Help:        "Best slot search duration by strategy and outcome",
			Buckets:     []float64{.005, .01, .05, .1, .25, .5, 1, 2.5, 5, 10},
			ConstLabels: constLabels,
		}, []string{"strategy", "outcome"}),
		calendarNotifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "calendar_notifications_total",
			Help:        "External calendar notifications by operation and result",
			ConstLabels: constLabels,
		}, []string{"operation", "result"}),
		sweepCancelled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "missed_appointments_cancelled_total",
			Help:        "Appointments cancelled by the finalize-missed sweep",
			ConstLabels: constLabels,
		}, []string{"trigger"}),
	}

	reg.MustRegister(
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.dbQueryDuration,
		m.dbOpenConns,
		m.dbInUseConns,
		m.dbIdleConns,
		m.dbWaitCount,
		m.appointmentsTotal,
		m.slotSearchDuration,
		m.calendarNotifications,
		m.sweepCancelled,
	)

	return m
}

// RecordHTTPRequest фиксирует обработанный HTTP запрос
func (m *Metrics) RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует длительность запроса к БД
func (m *Metrics) ObserveDBQuery(operation string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil && err != sql.ErrNoRows {
		status = "error"
	}
	m.dbQueryDuration.WithLabelValues(operation, status).Observe(duration.Seconds())
}

// SetDBPoolStats обновляет метрики connection pool
func (m *Metrics) SetDBPoolStats(serviceName string, stats sql.DBStats) {
	if m == nil {
		return
	}
	m.dbOpenConns.WithLabelValues(serviceName).Set(float64(stats.OpenConnections))
	m.dbInUseConns.WithLabelValues(serviceName).Set(float64(stats.InUse))
	m.dbIdleConns.WithLabelValues(serviceName).Set(float64(stats.Idle))
	m.dbWaitCount.WithLabelValues(serviceName).Set(float64(stats.WaitCount))
}

// RecordCalendarNotification фиксирует результат уведомления внешнего календаря
func (m *Metrics) RecordCalendarNotification(operation string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.calendarNotifications.WithLabelValues(operation, result).Inc()
}

// AddSweepCancelled увеличивает счетчик отмененных просроченных записей
func (m *Metrics) AddSweepCancelled(trigger string, count int) {
	if m == nil {
		return
	}
	m.sweepCancelled.WithLabelValues(trigger).Add(float64(count))
}

// RecordAppointment увеличивает счетчик операций жизненного цикла записи
func (m *Metrics) RecordAppointment(operation string) {
	if m == nil {
		return
	}
	m.appointmentsTotal.WithLabelValues(operation).Inc()
}

// ObserveSlotSearch фиксирует длительность поиска слота
func (m *Metrics) ObserveSlotSearch(strategy, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.slotSearchDuration.WithLabelValues(strategy, outcome).Observe(duration.Seconds())
}
