package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор Prometheus метрик сервиса
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// База данных
	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec
	DBWaitCount        *prometheus.GaugeVec
	DBTxRetriesTotal   *prometheus.CounterVec

	// Бизнес-метрики
	BookingOperationsTotal *prometheus.CounterVec
	CalendarSyncTotal      *prometheus.CounterVec
	NotificationsTotal     *prometheus.CounterVec
}

// New создает метрики и регистрирует их в глобальном реестре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики и регистрирует их в переданном реестре
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"operation"}),

		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections to the database",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBInUseConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBIdleConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBTxRetriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_tx_retries_total",
			Help:        "Number of retried serializable transactions",
			ConstLabels: constLabels,
		}, []string{"reason"}),

		BookingOperationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_operations_total",
			Help:        "Booking lifecycle operations by outcome",
			ConstLabels: constLabels,
		}, []string{"operation", "result"}),

		CalendarSyncTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "calendar_sync_total",
			Help:        "Google Calendar sync attempts by outcome",
			ConstLabels: constLabels,
		}, []string{"operation", "result"}),

		NotificationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "notifications_total",
			Help:        "Email notifications by outcome",
			ConstLabels: constLabels,
		}, []string{"kind", "result"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.DBTxRetriesTotal,
		m.BookingOperationsTotal,
		m.CalendarSyncTotal,
		m.NotificationsTotal,
	)

	return m
}

// IncBookingOperation учитывает результат операции жизненного цикла бронирования
// Безопасно вызывать на nil (метрики выключены)
func (m *Metrics) IncBookingOperation(operation, result string) {
	if m == nil {
		return
	}
	m.BookingOperationsTotal.WithLabelValues(operation, result).Inc()
}

// IncCalendarSync учитывает результат синхронизации с календарем
func (m *Metrics) IncCalendarSync(operation, result string) {
	if m == nil {
		return
	}
	m.CalendarSyncTotal.WithLabelValues(operation, result).Inc()
}

// IncNotification учитывает результат отправки уведомления
func (m *Metrics) IncNotification(kind, result string) {
	if m == nil {
		return
	}
	m.NotificationsTotal.WithLabelValues(kind, result).Inc()
}

// IncTxRetry учитывает повтор транзакции
func (m *Metrics) IncTxRetry(reason string) {
	if m == nil {
		return
	}
	m.DBTxRetriesTotal.WithLabelValues(reason).Inc()
}
