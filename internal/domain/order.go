package domain

import "time"

// OrderStatusPlaced: статус, который хранилище выставляет новому заказу.
const OrderStatusPlaced = "order placed"

// OrderItem: позиция заказа со снимком товара на момент оформления.
type OrderItem struct {
	ProductID  string
	Name       string
	Price      float64
	CategoryID string
	ImagePath  string
	Quantity   int
}

// Order: заказ пользователя. Статус, произвольная строка.
type Order struct {
	ID        string
	UserID    string
	Status    string
	Items     []OrderItem
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Total возвращает сумму заказа по снимкам цен.
func (o Order) Total() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}
