package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
)

const userColumns = `id, name, email, password_hash, admin, created_at`

type userRepository struct {
	db *sql.DB
}

// NewUserRepository создаёт PostgreSQL-реализацию UserRepository.
func NewUserRepository(store *Store) domain.UserRepository {
	return &userRepository{db: store.DB()}
}

func (r *userRepository) FindByID(ctx context.Context, id string) (domain.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *userRepository) Insert(ctx context.Context, user domain.User) (domain.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	user.ID = uuid.NewString()
	user.CreatedAt = time.Now().UTC()

	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, name, email, password_hash, admin, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, user.ID, user.Name, user.Email, user.PasswordHash, user.Admin, user.CreatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, domain.ErrDuplicateEmail
		}
		return domain.User{}, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

func (r *userRepository) findOne(ctx context.Context, query string, arg string) (domain.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var u domain.User
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Admin, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.User{}, domain.ErrUserNotFound
		}
		return domain.User{}, malformedID(err, "select user")
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return u, nil
}

var _ domain.UserRepository = (*userRepository)(nil)
