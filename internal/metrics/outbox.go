package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
)

// Результаты попытки публикации из outbox.
const (
	PublishSent       = "sent"
	PublishRetryError = "retry_error"
	PublishFailed     = "failed"
	PublishDLQFailed  = "dlq_failed"
)

// OutboxMetrics: метрики публикации transactional outbox.
type OutboxMetrics struct {
	attempts  *prometheus.CounterVec
	pending   prometheus.Gauge
	oldestAge prometheus.Gauge
}

// NewOutboxMetrics регистрирует метрики outbox в registerer.
func NewOutboxMetrics(registerer prometheus.Registerer) *OutboxMetrics {
	return &OutboxMetrics{
		attempts: register(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "outbox_publish_attempts_total",
			Help:      "Outbox publish attempts grouped by result.",
		}, []string{"result"})),
		pending: register(registerer, prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "outbox_pending_records",
			Help:      "Pending records in the outbox.",
		})),
		oldestAge: register(registerer, prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "outbox_oldest_pending_age_seconds",
			Help:      "Age of the oldest pending outbox record.",
		})),
	}
}

// Attempt учитывает попытку публикации с результатом result.
func (m *OutboxMetrics) Attempt(result string) {
	if m == nil {
		return
	}
	m.attempts.WithLabelValues(result).Inc()
}

// Backlog обновляет gauges по статистике outbox.
func (m *OutboxMetrics) Backlog(stats domain.OutboxStats, now time.Time) {
	if m == nil {
		return
	}
	m.pending.Set(float64(stats.PendingCount))
	if stats.PendingCount == 0 || stats.OldestPendingAt.IsZero() {
		m.oldestAge.Set(0)
		return
	}
	m.oldestAge.Set(max(now.Sub(stats.OldestPendingAt).Seconds(), 0))
}
