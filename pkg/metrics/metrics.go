// Package metrics собирает prometheus-метрики сервиса: HTTP, БД и результаты бизнес-правил
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор коллекторов сервиса.
// Все методы безопасны для nil-получателя: при выключенных метриках передаётся nil.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration   *prometheus.HistogramVec
	DBQueryErrors     *prometheus.CounterVec
	DBOpenConnections *prometheus.GaugeVec
	DBInUse           *prometheus.GaugeVec

	QuotesTotal           *prometheus.CounterVec
	ConflictsFlagged      *prometheus.CounterVec
	CancellationFeesTotal *prometheus.CounterVec
}

// New создаёт и регистрирует метрики в переданном регистраторе
func New(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"operation"}),
		DBQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Total number of failed database queries",
			ConstLabels: constLabels,
		}, []string{"operation"}),
		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Open database connections",
			ConstLabels: constLabels,
		}, []string{"pool"}),
		DBInUse: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Database connections currently in use",
			ConstLabels: constLabels,
		}, []string{"pool"}),
		QuotesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "quotes_total",
			Help:        "Price quotes by price source and result",
			ConstLabels: constLabels,
		}, []string{"source", "result"}),
		ConflictsFlagged: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "conflicts_flagged_total",
			Help:        "Appointments flagged with a resource conflict",
			ConstLabels: constLabels,
		}, []string{"resource"}),
		CancellationFeesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "cancellation_fees_total",
			Help:        "Cancellation fees computed, by policy window",
			ConstLabels: constLabels,
		}, []string{"window"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBQueryErrors,
		m.DBOpenConnections,
		m.DBInUse,
		m.QuotesTotal,
		m.ConflictsFlagged,
		m.CancellationFeesTotal,
	)

	return m
}

// ObserveHTTPRequest фиксирует завершённый HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует запрос к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.DBQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		m.DBQueryErrors.WithLabelValues(operation).Inc()
	}
}

// SetDBPoolStats обновляет состояние пула соединений
func (m *Metrics) SetDBPoolStats(pool string, open, inUse int) {
	if m == nil {
		return
	}
	m.DBOpenConnections.WithLabelValues(pool).Set(float64(open))
	m.DBInUse.WithLabelValues(pool).Set(float64(inUse))
}

// ObserveQuote фиксирует результат расчёта цены (source: table|manual, result: ok|not_found|error)
func (m *Metrics) ObserveQuote(source, result string) {
	if m == nil {
		return
	}
	m.QuotesTotal.WithLabelValues(source, result).Inc()
}

// ObserveConflict фиксирует найденный конфликт ресурса (resource: vehicle|driver)
func (m *Metrics) ObserveConflict(resource string) {
	if m == nil {
		return
	}
	m.ConflictsFlagged.WithLabelValues(resource).Inc()
}

// ObserveCancellationFee фиксирует применённое окно политики отмены
func (m *Metrics) ObserveCancellationFee(window string) {
	if m == nil {
		return
	}
	m.CancellationFeesTotal.WithLabelValues(window).Inc()
}
