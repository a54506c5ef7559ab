package kafka

import "github.com/vladislavdragonenkov/burger-oms/internal/domain"

// Топики по умолчанию.
const (
	TopicCatalogEvents = "burger.catalog.events"
	TopicOrderEvents   = "burger.order.events"
	TopicDeadLetter    = "burger.dlq"
)

// Заголовки сообщений.
const (
	HeaderEventType     = "x-event-type"
	HeaderAggregateType = "x-aggregate-type"
	HeaderOriginalTopic = "x-original-topic"
	HeaderErrorMessage  = "x-error-message"
	HeaderFailedAt      = "x-failed-at"
)

// Topics сопоставляет тип агрегата с топиком.
type Topics struct {
	Catalog    string
	Order      string
	DeadLetter string
}

// DefaultTopics возвращает топики по умолчанию.
func DefaultTopics() Topics {
	return Topics{
		Catalog:    TopicCatalogEvents,
		Order:      TopicOrderEvents,
		DeadLetter: TopicDeadLetter,
	}
}

// For возвращает топик для типа агрегата. Категории и товары идут в каталог.
func (t Topics) For(aggregateType string) string {
	switch aggregateType {
	case domain.AggregateOrder:
		return orDefault(t.Order, TopicOrderEvents)
	default:
		return orDefault(t.Catalog, TopicCatalogEvents)
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
