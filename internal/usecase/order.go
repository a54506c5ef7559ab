package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
)

// CreateOrder оформляет заказ из существующих товаров.
type CreateOrder struct {
	orders    domain.OrderRepository
	products  domain.ProductRepository
	validator domain.Validator
	opts      options
}

// NewCreateOrder собирает use case.
func NewCreateOrder(orders domain.OrderRepository, products domain.ProductRepository, validator domain.Validator, opts ...Option) (*CreateOrder, error) {
	const name = "create_order"
	switch {
	case orders == nil:
		return nil, domain.MissingDependency(name, "orders")
	case products == nil:
		return nil, domain.MissingDependency(name, "products")
	case validator == nil:
		return nil, domain.MissingDependency(name, "validator")
	}
	return &CreateOrder{
		orders:    orders,
		products:  products,
		validator: validator,
		opts:      buildOptions(name, opts),
	}, nil
}

// Execute загружает товары позиций по порядку и сохраняет заказ одной вставкой.
// Первая ненайденная позиция прерывает операцию до любой записи.
func (uc *CreateOrder) Execute(ctx context.Context, in *CreateOrderInput) (order domain.Order, err error) {
	if in == nil {
		return domain.Order{}, domain.ErrMissingInput
	}
	defer func() {
		if err != nil {
			logFailure(uc.opts.logger, err, log.Fields{"user_id": in.UserID})
		}
	}()

	if err := uc.validator.Validate(SchemaOrderCreate, in); err != nil {
		return domain.Order{}, err
	}

	items := make([]domain.OrderItem, 0, len(in.Items))
	for _, item := range in.Items {
		product, err := uc.products.FindByID(ctx, item.ProductID)
		if err != nil {
			return domain.Order{}, lookupError(err, domain.ErrProductNotFound, "product", item.ProductID)
		}
		items = append(items, domain.OrderItem{
			ProductID:  product.ID,
			Name:       product.Name,
			Price:      product.Price,
			CategoryID: product.CategoryID,
			ImagePath:  product.ImagePath,
			Quantity:   item.Quantity,
		})
	}

	order, err = uc.orders.Insert(ctx, domain.Order{UserID: in.UserID, Items: items})
	if err != nil {
		return domain.Order{}, fmt.Errorf("insert order: %w", err)
	}

	uc.opts.logger.WithFields(log.Fields{
		"order_id": order.ID,
		"user_id":  order.UserID,
		"items":    len(order.Items),
	}).Info("order created")
	recordEvent(ctx, uc.opts, domain.AggregateOrder, order.ID, domain.EventOrderCreated, newOrderEvent(order, true))
	return order, nil
}

// UpdateOrder меняет статус заказа. Статус принимается как есть.
type UpdateOrder struct {
	orders domain.OrderRepository
	opts   options
}

// NewUpdateOrder собирает use case.
func NewUpdateOrder(orders domain.OrderRepository, opts ...Option) (*UpdateOrder, error) {
	if orders == nil {
		return nil, domain.MissingDependency("update_order", "orders")
	}
	return &UpdateOrder{orders: orders, opts: buildOptions("update_order", opts)}, nil
}

// Execute проверяет существование заказа и записывает новый статус.
func (uc *UpdateOrder) Execute(ctx context.Context, in *UpdateOrderInput) (order domain.Order, err error) {
	if in == nil {
		return domain.Order{}, domain.ErrMissingInput
	}
	defer func() {
		if err != nil {
			logFailure(uc.opts.logger, err, log.Fields{"order_id": in.OrderID})
		}
	}()

	if in.Status == "" {
		return domain.Order{}, domain.ErrMissingFields
	}

	order, err = uc.orders.FindByID(ctx, in.OrderID)
	if err != nil {
		return domain.Order{}, lookupError(err, domain.ErrOrderNotFound, "order", in.OrderID)
	}

	if err := uc.orders.UpdateStatus(ctx, order.ID, in.Status); err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			return domain.Order{}, domain.WithReference(domain.ErrOrderNotFound, in.OrderID)
		}
		return domain.Order{}, fmt.Errorf("update order %s status: %w", order.ID, err)
	}

	previousStatus := order.Status
	order.Status = in.Status
	order.UpdatedAt = time.Now().UTC()

	uc.opts.logger.WithFields(log.Fields{
		"order_id": order.ID,
		"from":     previousStatus,
		"to":       order.Status,
	}).Info("order status changed")
	recordEvent(ctx, uc.opts, domain.AggregateOrder, order.ID, domain.EventOrderStatusChanged, newOrderEvent(order, false))
	return order, nil
}
