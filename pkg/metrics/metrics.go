package metrics

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "smc"

// Metrics коллектор метрик сервиса
type Metrics struct {
	serviceName string

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration   *prometheus.HistogramVec
	DBQueryErrors     *prometheus.CounterVec
	DBOpenConnections *prometheus.GaugeVec

	SessionTransitions *prometheus.CounterVec
	Verdicts           *prometheus.CounterVec
	ActiveSessions     *prometheus.GaugeVec

	EventsPublished *prometheus.CounterVec
}

// New создает метрики и регистрирует их в DefaultRegisterer
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики и регистрирует их в переданном registerer
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		serviceName: serviceName,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"service", "method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"service", "method", "path"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "db_query_duration_seconds",
			Help:      "Database query latency",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"service", "operation"}),
		DBQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "db_query_errors_total",
			Help:      "Total number of failed database queries",
		}, []string{"service", "operation"}),
		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "db_connections",
			Help:      "Database connection pool state",
		}, []string{"service", "state"}),
		SessionTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservation_session_transitions_total",
			Help:      "Reservation form session state transitions",
		}, []string{"service", "state"}),
		Verdicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservation_verdicts_total",
			Help:      "Reservation validation verdicts by reason",
		}, []string{"service", "reason"}),
		ActiveSessions: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "reservation_sessions_active",
			Help:      "Number of open reservation form sessions",
		}, []string{"service"}),
		EventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservation_events_published_total",
			Help:      "Reservation events sent to the broker",
		}, []string{"service", "event", "result"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBQueryErrors,
		m.DBOpenConnections,
		m.SessionTransitions,
		m.Verdicts,
		m.ActiveSessions,
		m.EventsPublished,
	)
	return m
}

// ObserveHTTPRequest фиксирует обработанный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(m.serviceName, method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(m.serviceName, method, path).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует выполненный запрос к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	m.DBQueryDuration.WithLabelValues(m.serviceName, operation).Observe(duration.Seconds())
	if err != nil && err != sql.ErrNoRows {
		m.DBQueryErrors.WithLabelValues(m.serviceName, operation).Inc()
	}
}

// SetDBStats обновляет состояние пула соединений
func (m *Metrics) SetDBStats(stats sql.DBStats) {
	m.DBOpenConnections.WithLabelValues(m.serviceName, "open").Set(float64(stats.OpenConnections))
	m.DBOpenConnections.WithLabelValues(m.serviceName, "in_use").Set(float64(stats.InUse))
	m.DBOpenConnections.WithLabelValues(m.serviceName, "idle").Set(float64(stats.Idle))
}

// RecordSessionTransition фиксирует переход сессии формы
func (m *Metrics) RecordSessionTransition(state string) {
	m.SessionTransitions.WithLabelValues(m.serviceName, state).Inc()
}

// RecordVerdict фиксирует результат валидации черновика
func (m *Metrics) RecordVerdict(reason string) {
	m.Verdicts.WithLabelValues(m.serviceName, reason).Inc()
}

// SetActiveSessions обновляет количество открытых сессий
func (m *Metrics) SetActiveSessions(n int) {
	m.ActiveSessions.WithLabelValues(m.serviceName).Set(float64(n))
}

// RecordEventPublished фиксирует попытку публикации события
func (m *Metrics) RecordEventPublished(event string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.EventsPublished.WithLabelValues(m.serviceName, event, result).Inc()
}
