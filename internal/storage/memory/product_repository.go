package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
)

// productRepositoryInMemory: in-memory реализация ProductRepository.
// Ссылочную целостность category_id проверяет use case, а не хранилище.
type productRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Product
}

// NewProductRepository возвращает in-memory репозиторий товаров.
func NewProductRepository() domain.ProductRepository {
	return &productRepositoryInMemory{items: make(map[string]domain.Product)}
}

func (r *productRepositoryInMemory) FindByID(_ context.Context, id string) (domain.Product, error) {
	key, err := parseID(id)
	if err != nil {
		return domain.Product{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.items[key]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return product, nil
}

func (r *productRepositoryInMemory) FindAll(_ context.Context) ([]domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Product, 0, len(r.items))
	for _, product := range r.items {
		result = append(result, product)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (r *productRepositoryInMemory) Insert(_ context.Context, product domain.Product) (domain.Product, error) {
	if product.CategoryID != "" {
		key, err := parseID(product.CategoryID)
		if err != nil {
			return domain.Product{}, err
		}
		product.CategoryID = key
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	product.ID = uuid.NewString()
	product.CreatedAt = now()
	product.UpdatedAt = product.CreatedAt
	r.items[product.ID] = product
	return product, nil
}

func (r *productRepositoryInMemory) UpdateByID(_ context.Context, id string, patch domain.ProductPatch) error {
	key, err := parseID(id)
	if err != nil {
		return err
	}
	if patch.CategoryID != nil {
		categoryKey, err := parseID(*patch.CategoryID)
		if err != nil {
			return err
		}
		patch.CategoryID = &categoryKey
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[key]
	if !ok {
		return domain.ErrProductNotFound
	}
	updated := patch.Apply(current)
	updated.UpdatedAt = now()
	r.items[key] = updated
	return nil
}

var _ domain.ProductRepository = (*productRepositoryInMemory)(nil)
