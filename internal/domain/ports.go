package domain

import (
	"context"
	"time"
)

// CategoryRepository описывает хранилище категорий.
type CategoryRepository interface {
	// FindByID возвращает категорию или ErrCategoryNotFound; ErrMalformedID для некорректного id.
	FindByID(ctx context.Context, id string) (Category, error)
	// FindByName ищет категорию по точному совпадению имени.
	FindByName(ctx context.Context, name string) (Category, error)
	FindAll(ctx context.Context) ([]Category, error)
	// Insert сохраняет категорию и возвращает её с присвоенным ID.
	// Возвращает ErrDuplicateName, если имя уже занято.
	Insert(ctx context.Context, category Category) (Category, error)
	UpdateByID(ctx context.Context, id string, patch CategoryPatch) error
}

// ProductRepository описывает хранилище товаров.
type ProductRepository interface {
	FindByID(ctx context.Context, id string) (Product, error)
	FindAll(ctx context.Context) ([]Product, error)
	Insert(ctx context.Context, product Product) (Product, error)
	UpdateByID(ctx context.Context, id string, patch ProductPatch) error
}

// OrderRepository описывает хранилище заказов.
type OrderRepository interface {
	FindByID(ctx context.Context, id string) (Order, error)
	FindAll(ctx context.Context) ([]Order, error)
	FindByUser(ctx context.Context, userID string) ([]Order, error)
	// Insert сохраняет заказ вместе со всеми позициями одной операцией.
	// Пустой статус заменяется на OrderStatusPlaced.
	Insert(ctx context.Context, order Order) (Order, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

// UserRepository описывает хранилище пользователей.
type UserRepository interface {
	FindByID(ctx context.Context, id string) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	// Insert возвращает ErrDuplicateEmail, если email уже занят.
	Insert(ctx context.Context, user User) (User, error)
}

// Validator проверяет форму входных данных по схеме и возвращает *ShapeError.
type Validator interface {
	Validate(schema SchemaID, data any) error
}

// UploadRemover удаляет сохранённый файл по ключу.
type UploadRemover interface {
	Remove(ctx context.Context, key string) error
}

// PasswordHasher хеширует и сверяет пароли.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer выпускает токен сессии для пользователя.
type TokenIssuer interface {
	Issue(user User) (string, error)
}

// OutboxPublisher публикует события из transactional outbox.
type OutboxPublisher interface {
	// Publish передаёт событие наружу; должен быть идемпотентным.
	Publish(ctx context.Context, event OutboxMessage) error
}

// OutboxRepository позволяет сохранять события для последующей публикации.
type OutboxRepository interface {
	Enqueue(ctx context.Context, msg OutboxMessage) (OutboxMessage, error)
	PullPending(ctx context.Context, limit int) ([]OutboxMessage, error)
	Stats(ctx context.Context) (OutboxStats, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string) error
}

// OutboxMessage хранит данные для публикуемого события.
type OutboxMessage struct {
	ID            string
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
}

// OutboxStats описывает текущее состояние backlog transactional outbox.
type OutboxStats struct {
	PendingCount    int
	OldestPendingAt time.Time
}
