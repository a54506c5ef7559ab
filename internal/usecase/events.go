package usecase

import (
	"time"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
)

type categoryEvent struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ImagePath string    `json:"image_path"`
	At        time.Time `json:"at"`
}

func newCategoryEvent(c domain.Category) categoryEvent {
	return categoryEvent{ID: c.ID, Name: c.Name, ImagePath: c.ImagePath, At: c.UpdatedAt}
}

type productEvent struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Price      float64   `json:"price"`
	CategoryID string    `json:"category_id"`
	Offer      bool      `json:"offer"`
	At         time.Time `json:"at"`
}

func newProductEvent(p domain.Product) productEvent {
	return productEvent{
		ID:         p.ID,
		Name:       p.Name,
		Price:      p.Price,
		CategoryID: p.CategoryID,
		Offer:      p.Offer,
		At:         p.UpdatedAt,
	}
}

type orderItemEvent struct {
	ProductID string  `json:"product_id"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

type orderEvent struct {
	ID     string           `json:"id"`
	UserID string           `json:"user_id"`
	Status string           `json:"status"`
	Total  float64          `json:"total"`
	Items  []orderItemEvent `json:"items,omitempty"`
	At     time.Time        `json:"at"`
}

func newOrderEvent(o domain.Order, withItems bool) orderEvent {
	event := orderEvent{
		ID:     o.ID,
		UserID: o.UserID,
		Status: o.Status,
		Total:  o.Total(),
		At:     o.UpdatedAt,
	}
	if withItems {
		event.Items = make([]orderItemEvent, 0, len(o.Items))
		for _, item := range o.Items {
			event.Items = append(event.Items, orderItemEvent{
				ProductID: item.ProductID,
				Price:     item.Price,
				Quantity:  item.Quantity,
			})
		}
	}
	return event
}
