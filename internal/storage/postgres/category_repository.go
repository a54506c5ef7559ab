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

const categoryColumns = `id, name, image_path, created_at, updated_at`

type categoryRepository struct {
	db *sql.DB
}

// NewCategoryRepository создаёт PostgreSQL-реализацию CategoryRepository.
// Уникальность имени обеспечивает индекс categories_name_key.
func NewCategoryRepository(store *Store) domain.CategoryRepository {
	return &categoryRepository{db: store.DB()}
}

func (r *categoryRepository) FindByID(ctx context.Context, id string) (domain.Category, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	category, err := scanCategory(r.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Category{}, domain.ErrCategoryNotFound
		}
		return domain.Category{}, malformedID(err, "select category")
	}
	return category, nil
}

func (r *categoryRepository) FindByName(ctx context.Context, name string) (domain.Category, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	category, err := scanCategory(r.db.QueryRowContext(ctx,
		`SELECT `+categoryColumns+` FROM categories WHERE name = $1`, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Category{}, domain.ErrCategoryNotFound
		}
		return domain.Category{}, fmt.Errorf("select category by name: %w", err)
	}
	return category, nil
}

func (r *categoryRepository) FindAll(ctx context.Context) ([]domain.Category, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	result := make([]domain.Category, 0)
	for rows.Next() {
		category, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		result = append(result, category)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}
	return result, nil
}

func (r *categoryRepository) Insert(ctx context.Context, category domain.Category) (domain.Category, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	category.ID = uuid.NewString()
	category.CreatedAt = time.Now().UTC()
	category.UpdatedAt = category.CreatedAt

	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO categories (id, name, image_path, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`, category.ID, category.Name, category.ImagePath, category.CreatedAt, category.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return domain.Category{}, domain.ErrDuplicateName
		}
		return domain.Category{}, fmt.Errorf("insert category: %w", err)
	}
	return category, nil
}

func (r *categoryRepository) UpdateByID(ctx context.Context, id string, patch domain.CategoryPatch) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		UPDATE categories
		SET name = COALESCE($2, name),
		    image_path = COALESCE($3, image_path),
		    updated_at = $4
		WHERE id = $1
	`, id, patch.Name, patch.ImagePath, time.Now().UTC())
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return malformedID(err, "update category")
	}
	return expectAffected(res, domain.ErrCategoryNotFound)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCategory(row rowScanner) (domain.Category, error) {
	var c domain.Category
	if err := row.Scan(&c.ID, &c.Name, &c.ImagePath, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return domain.Category{}, err
	}
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
	return c, nil
}

// expectAffected возвращает notFound, если запрос не затронул ни одной строки.
func expectAffected(res sql.Result, notFound error) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return notFound
	}
	return nil
}

var _ domain.CategoryRepository = (*categoryRepository)(nil)
