package usecase

import (
	"context"
	"fmt"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
)

// Catalog: чтение каталога.
type Catalog struct {
	categories domain.CategoryRepository
	products   domain.ProductRepository
}

// NewCatalog собирает use case чтения каталога.
func NewCatalog(categories domain.CategoryRepository, products domain.ProductRepository) (*Catalog, error) {
	switch {
	case categories == nil:
		return nil, domain.MissingDependency("catalog", "categories")
	case products == nil:
		return nil, domain.MissingDependency("catalog", "products")
	}
	return &Catalog{categories: categories, products: products}, nil
}

// ListCategories возвращает все категории.
func (c *Catalog) ListCategories(ctx context.Context) ([]domain.Category, error) {
	categories, err := c.categories.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// ListProducts возвращает все товары.
func (c *Catalog) ListProducts(ctx context.Context) ([]domain.Product, error) {
	products, err := c.products.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// GetProduct возвращает товар по идентификатору.
func (c *Catalog) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	product, err := c.products.FindByID(ctx, id)
	if err != nil {
		return domain.Product{}, lookupError(err, domain.ErrProductNotFound, "product", id)
	}
	return product, nil
}

// ListOrders возвращает заказы.
type ListOrders struct {
	orders domain.OrderRepository
}

// NewListOrders собирает use case.
func NewListOrders(orders domain.OrderRepository) (*ListOrders, error) {
	if orders == nil {
		return nil, domain.MissingDependency("list_orders", "orders")
	}
	return &ListOrders{orders: orders}, nil
}

// Execute возвращает все заказы, если all, иначе только заказы userID.
func (uc *ListOrders) Execute(ctx context.Context, userID string, all bool) ([]domain.Order, error) {
	if all {
		orders, err := uc.orders.FindAll(ctx)
		if err != nil {
			return nil, fmt.Errorf("list orders: %w", err)
		}
		return orders, nil
	}

	orders, err := uc.orders.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders of user %s: %w", userID, err)
	}
	return orders, nil
}
