package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
)

// orderRepositoryInMemory: простая in-memory реализация OrderRepository.
type orderRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Order
}

// NewOrderRepository возвращает in-memory репозиторий для локальной разработки и тестов.
func NewOrderRepository() domain.OrderRepository {
	return &orderRepositoryInMemory{
		items: make(map[string]domain.Order),
	}
}

// FindByID возвращает заказ или ErrOrderNotFound, если его нет.
func (r *orderRepositoryInMemory) FindByID(_ context.Context, id string) (domain.Order, error) {
	key, err := parseID(id)
	if err != nil {
		return domain.Order{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.items[key]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return cloneOrder(order), nil
}

func (r *orderRepositoryInMemory) FindAll(_ context.Context) ([]domain.Order, error) {
	return r.list(func(domain.Order) bool { return true }), nil
}

// FindByUser возвращает заказы пользователя, новые первыми.
func (r *orderRepositoryInMemory) FindByUser(_ context.Context, userID string) ([]domain.Order, error) {
	return r.list(func(o domain.Order) bool { return o.UserID == userID }), nil
}

// Insert сохраняет заказ целиком; позиции копируются, чтобы избежать мутаций извне.
func (r *orderRepositoryInMemory) Insert(_ context.Context, order domain.Order) (domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order = cloneOrder(order)
	order.ID = uuid.NewString()
	if order.Status == "" {
		order.Status = domain.OrderStatusPlaced
	}
	order.CreatedAt = now()
	order.UpdatedAt = order.CreatedAt
	r.items[order.ID] = order
	return cloneOrder(order), nil
}

func (r *orderRepositoryInMemory) UpdateStatus(_ context.Context, id, status string) error {
	key, err := parseID(id)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[key]
	if !ok {
		return domain.ErrOrderNotFound
	}
	current.Status = status
	current.UpdatedAt = now()
	r.items[key] = current
	return nil
}

func (r *orderRepositoryInMemory) list(keep func(domain.Order) bool) []domain.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Order, 0, len(r.items))
	for _, order := range r.items {
		if !keep(order) {
			continue
		}
		result = append(result, cloneOrder(order))
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result
}

func cloneOrder(order domain.Order) domain.Order {
	items := make([]domain.OrderItem, len(order.Items))
	copy(items, order.Items)
	order.Items = items
	return order
}

var _ domain.OrderRepository = (*orderRepositoryInMemory)(nil)
