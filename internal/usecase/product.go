package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
)

// CreateProduct создаёт товар в существующей категории.
type CreateProduct struct {
	products   domain.ProductRepository
	categories domain.CategoryRepository
	validator  domain.Validator
	uploads    domain.UploadRemover
	opts       options
}

// NewCreateProduct собирает use case.
func NewCreateProduct(products domain.ProductRepository, categories domain.CategoryRepository, validator domain.Validator, uploads domain.UploadRemover, opts ...Option) (*CreateProduct, error) {
	const name = "create_product"
	switch {
	case products == nil:
		return nil, domain.MissingDependency(name, "products")
	case categories == nil:
		return nil, domain.MissingDependency(name, "categories")
	case validator == nil:
		return nil, domain.MissingDependency(name, "validator")
	case uploads == nil:
		return nil, domain.MissingDependency(name, "uploads")
	}
	return &CreateProduct{
		products:   products,
		categories: categories,
		validator:  validator,
		uploads:    uploads,
		opts:       buildOptions(name, opts),
	}, nil
}

// Execute проверяет вход и категорию, затем сохраняет товар.
func (uc *CreateProduct) Execute(ctx context.Context, in *CreateProductInput) (product domain.Product, err error) {
	if in == nil {
		return domain.Product{}, domain.ErrMissingInput
	}

	cleanup := uploadCleanup{remover: uc.uploads, logger: uc.opts.logger, key: in.ImagePath}
	defer func() {
		if err != nil {
			logFailure(uc.opts.logger, err, log.Fields{"category_id": in.CategoryID})
		}
		cleanup.onFailure(ctx, err)
	}()

	if err := uc.validator.Validate(SchemaProductCreate, in); err != nil {
		return domain.Product{}, err
	}

	category, err := uc.categories.FindByID(ctx, in.CategoryID)
	if err != nil {
		return domain.Product{}, lookupError(err, domain.ErrCategoryNotFound, "category", in.CategoryID)
	}

	product, err = uc.products.Insert(ctx, domain.Product{
		Name:       in.Name,
		Price:      in.Price,
		CategoryID: category.ID,
		ImagePath:  in.ImagePath,
		Offer:      in.Offer,
	})
	if err != nil {
		if errors.Is(err, domain.ErrCategoryNotFound) {
			return domain.Product{}, domain.WithReference(domain.ErrCategoryNotFound, in.CategoryID)
		}
		return domain.Product{}, fmt.Errorf("insert product: %w", err)
	}

	uc.opts.logger.WithFields(log.Fields{
		"product_id":  product.ID,
		"category_id": product.CategoryID,
	}).Info("product created")
	recordEvent(ctx, uc.opts, domain.AggregateProduct, product.ID, domain.EventProductCreated, newProductEvent(product))
	return product, nil
}

// UpdateProduct частично обновляет товар.
//
// По умолчанию заменённое изображение не удаляется (см. WithSupersededImageCleanup).
type UpdateProduct struct {
	products   domain.ProductRepository
	categories domain.CategoryRepository
	validator  domain.Validator
	uploads    domain.UploadRemover
	opts       options
}

// NewUpdateProduct собирает use case.
func NewUpdateProduct(products domain.ProductRepository, categories domain.CategoryRepository, validator domain.Validator, uploads domain.UploadRemover, opts ...Option) (*UpdateProduct, error) {
	const name = "update_product"
	switch {
	case products == nil:
		return nil, domain.MissingDependency(name, "products")
	case categories == nil:
		return nil, domain.MissingDependency(name, "categories")
	case validator == nil:
		return nil, domain.MissingDependency(name, "validator")
	case uploads == nil:
		return nil, domain.MissingDependency(name, "uploads")
	}
	return &UpdateProduct{
		products:   products,
		categories: categories,
		validator:  validator,
		uploads:    uploads,
		opts:       buildOptions(name, opts),
	}, nil
}

// Execute обновляет товар; при смене категории проверяет, что новая существует.
func (uc *UpdateProduct) Execute(ctx context.Context, in *UpdateProductInput) (product domain.Product, err error) {
	if in == nil {
		return domain.Product{}, domain.ErrMissingInput
	}

	cleanup := uploadCleanup{remover: uc.uploads, logger: uc.opts.logger, key: in.newImage()}
	defer func() {
		if err != nil {
			logFailure(uc.opts.logger, err, log.Fields{"product_id": in.ProductID})
		}
		cleanup.onFailure(ctx, err)
	}()

	patch := in.patch()
	if patch.Empty() {
		return domain.Product{}, domain.ErrMissingFields
	}
	if err := uc.validator.Validate(SchemaProductUpdate, in); err != nil {
		return domain.Product{}, err
	}

	previous, err := uc.products.FindByID(ctx, in.ProductID)
	if err != nil {
		return domain.Product{}, lookupError(err, domain.ErrProductNotFound, "product", in.ProductID)
	}

	if in.CategoryID != nil {
		category, err := uc.categories.FindByID(ctx, *in.CategoryID)
		if err != nil {
			return domain.Product{}, lookupError(err, domain.ErrCategoryNotFound, "category", *in.CategoryID)
		}
		patch.CategoryID = &category.ID
	}

	if err := uc.products.UpdateByID(ctx, previous.ID, patch); err != nil {
		switch {
		case errors.Is(err, domain.ErrProductNotFound):
			return domain.Product{}, domain.WithReference(domain.ErrProductNotFound, in.ProductID)
		case errors.Is(err, domain.ErrCategoryNotFound) && in.CategoryID != nil:
			return domain.Product{}, domain.WithReference(domain.ErrCategoryNotFound, *in.CategoryID)
		}
		return domain.Product{}, fmt.Errorf("update product %s: %w", previous.ID, err)
	}

	product = patch.Apply(previous)
	product.UpdatedAt = time.Now().UTC()

	if uc.opts.cleanupSupersededImage {
		if newImage := in.newImage(); newImage != "" && previous.ImagePath != "" && previous.ImagePath != newImage {
			removeUpload(ctx, uc.uploads, uc.opts.logger, previous.ImagePath, "superseded")
		}
	}

	uc.opts.logger.WithField("product_id", product.ID).Info("product updated")
	recordEvent(ctx, uc.opts, domain.AggregateProduct, product.ID, domain.EventProductUpdated, newProductEvent(product))
	return product, nil
}
