package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
)

type userRepositoryInMemory struct {
	mu      sync.RWMutex
	items   map[string]domain.User
	byEmail map[string]string
}

// NewUserRepository создаёт in-memory реализацию UserRepository.
func NewUserRepository() domain.UserRepository {
	return &userRepositoryInMemory{
		items:   make(map[string]domain.User),
		byEmail: make(map[string]string),
	}
}

func (r *userRepositoryInMemory) FindByID(_ context.Context, id string) (domain.User, error) {
	key, err := parseID(id)
	if err != nil {
		return domain.User{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.items[key]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return user, nil
}

func (r *userRepositoryInMemory) FindByEmail(_ context.Context, email string) (domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return r.items[id], nil
}

func (r *userRepositoryInMemory) Insert(_ context.Context, user domain.User) (domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return domain.User{}, domain.ErrDuplicateEmail
	}

	user.ID = uuid.NewString()
	user.CreatedAt = now()
	r.items[user.ID] = user
	r.byEmail[user.Email] = user.ID
	return user, nil
}

var _ domain.UserRepository = (*userRepositoryInMemory)(nil)
