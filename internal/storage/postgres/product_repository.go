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

const productColumns = `id, name, price, category_id, image_path, offer, created_at, updated_at`

type productRepository struct {
	db *sql.DB
}

// NewProductRepository создаёт PostgreSQL-реализацию ProductRepository.
func NewProductRepository(store *Store) domain.ProductRepository {
	return &productRepository{db: store.DB()}
}

func (r *productRepository) FindByID(ctx context.Context, id string) (domain.Product, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	product, err := scanProduct(r.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Product{}, domain.ErrProductNotFound
		}
		return domain.Product{}, malformedID(err, "select product")
	}
	return product, nil
}

func (r *productRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `SELECT `+productColumns+` FROM products ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	result := make([]domain.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		result = append(result, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return result, nil
}

// Insert возвращает ErrCategoryNotFound, если category_id нарушает внешний ключ.
func (r *productRepository) Insert(ctx context.Context, product domain.Product) (domain.Product, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	product.ID = uuid.NewString()
	product.CreatedAt = time.Now().UTC()
	product.UpdatedAt = product.CreatedAt

	if _, err := r.db.ExecContext(ctx, `
		INSERT INTO products (id, name, price, category_id, image_path, offer, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		product.ID, product.Name, product.Price, product.CategoryID,
		product.ImagePath, product.Offer, product.CreatedAt, product.UpdatedAt,
	); err != nil {
		if isForeignKeyViolation(err) {
			return domain.Product{}, domain.ErrCategoryNotFound
		}
		return domain.Product{}, malformedID(err, "insert product")
	}
	return product, nil
}

func (r *productRepository) UpdateByID(ctx context.Context, id string, patch domain.ProductPatch) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `
		UPDATE products
		SET name = COALESCE($2, name),
		    price = COALESCE($3, price),
		    offer = COALESCE($4, offer),
		    category_id = COALESCE($5::uuid, category_id),
		    image_path = COALESCE($6, image_path),
		    updated_at = $7
		WHERE id = $1
	`, id, patch.Name, patch.Price, patch.Offer, patch.CategoryID, patch.ImagePath, time.Now().UTC())
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrCategoryNotFound
		}
		return malformedID(err, "update product")
	}
	return expectAffected(res, domain.ErrProductNotFound)
}

func scanProduct(row rowScanner) (domain.Product, error) {
	var p domain.Product
	if err := row.Scan(
		&p.ID, &p.Name, &p.Price, &p.CategoryID,
		&p.ImagePath, &p.Offer, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return domain.Product{}, err
	}
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return p, nil
}

var _ domain.ProductRepository = (*productRepository)(nil)
