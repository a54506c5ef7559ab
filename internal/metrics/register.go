// Пакет metrics содержит Prometheus-метрики сервиса.
package metrics

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Namespace: общий префикс метрик сервиса.
const Namespace = "burger"

// register регистрирует коллектор или возвращает уже зарегистрированный с тем же описанием.
// Повторная сборка метрик (тесты, несколько экземпляров App) не должна падать.
func register[T prometheus.Collector](registerer prometheus.Registerer, collector T) T {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	err := registerer.Register(collector)
	if err == nil {
		return collector
	}

	var already prometheus.AlreadyRegisteredError
	if errors.As(err, &already) {
		existing, ok := already.ExistingCollector.(T)
		if !ok {
			panic(fmt.Sprintf("metrics: collector already registered with type %T", already.ExistingCollector))
		}
		return existing
	}
	panic(fmt.Sprintf("metrics: register collector: %v", err))
}
