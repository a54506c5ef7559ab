package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
)

// categoryRepositoryInMemory: in-memory реализация CategoryRepository.
type categoryRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Category
}

// NewCategoryRepository возвращает in-memory репозиторий для локальной разработки и тестов.
func NewCategoryRepository() domain.CategoryRepository {
	return &categoryRepositoryInMemory{items: make(map[string]domain.Category)}
}

func (r *categoryRepositoryInMemory) FindByID(_ context.Context, id string) (domain.Category, error) {
	key, err := parseID(id)
	if err != nil {
		return domain.Category{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	category, ok := r.items[key]
	if !ok {
		return domain.Category{}, domain.ErrCategoryNotFound
	}
	return category, nil
}

func (r *categoryRepositoryInMemory) FindByName(_ context.Context, name string) (domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, category := range r.items {
		if category.Name == name {
			return category, nil
		}
	}
	return domain.Category{}, domain.ErrCategoryNotFound
}

func (r *categoryRepositoryInMemory) FindAll(_ context.Context) ([]domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Category, 0, len(r.items))
	for _, category := range r.items {
		result = append(result, category)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// Insert проверяет уникальность имени под тем же локом, что и запись.
func (r *categoryRepositoryInMemory) Insert(_ context.Context, category domain.Category) (domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.nameTakenLocked(category.Name, "") {
		return domain.Category{}, domain.ErrDuplicateName
	}

	category.ID = uuid.NewString()
	category.CreatedAt = now()
	category.UpdatedAt = category.CreatedAt
	r.items[category.ID] = category
	return category, nil
}

func (r *categoryRepositoryInMemory) UpdateByID(_ context.Context, id string, patch domain.CategoryPatch) error {
	key, err := parseID(id)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[key]
	if !ok {
		return domain.ErrCategoryNotFound
	}
	if patch.Name != nil && r.nameTakenLocked(*patch.Name, key) {
		return domain.ErrDuplicateName
	}

	updated := patch.Apply(current)
	updated.UpdatedAt = now()
	r.items[key] = updated
	return nil
}

func (r *categoryRepositoryInMemory) nameTakenLocked(name, exceptID string) bool {
	for id, category := range r.items {
		if id != exceptID && category.Name == name {
			return true
		}
	}
	return false
}

var _ domain.CategoryRepository = (*categoryRepositoryInMemory)(nil)
