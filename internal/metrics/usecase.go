package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
)

// OutcomeOK: значение метки kind для успешного вызова.
const OutcomeOK = "ok"

// UseCaseMetrics считает вызовы use case'ов по классу результата.
type UseCaseMetrics struct {
	calls    *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewUseCaseMetrics регистрирует метрики use case'ов в registerer.
func NewUseCaseMetrics(registerer prometheus.Registerer) *UseCaseMetrics {
	return &UseCaseMetrics{
		calls: register(registerer, prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "usecase_calls_total",
			Help:      "Use case invocations grouped by outcome kind.",
		}, []string{"usecase", "kind"})),
		duration: register(registerer, prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "usecase_duration_seconds",
			Help:      "Use case execution time in seconds.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"usecase"})),
	}
}

// Observe записывает результат вызова, начатого в started.
func (m *UseCaseMetrics) Observe(useCase string, started time.Time, err error) {
	if m == nil {
		return
	}
	kind := OutcomeOK
	if err != nil {
		kind = string(domain.KindOf(err))
	}
	m.calls.WithLabelValues(useCase, kind).Inc()
	m.duration.WithLabelValues(useCase).Observe(time.Since(started).Seconds())
}
