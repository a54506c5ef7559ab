package domain

// Типы агрегатов для outbox.
const (
	AggregateCategory = "category"
	AggregateProduct  = "product"
	AggregateOrder    = "order"
)

// Типы доменных событий.
const (
	EventCategoryCreated    = "category.created"
	EventCategoryUpdated    = "category.updated"
	EventProductCreated     = "product.created"
	EventProductUpdated     = "product.updated"
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)
