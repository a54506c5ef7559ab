package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
)

// CreateCategory создаёт категорию с уникальным именем.
type CreateCategory struct {
	categories domain.CategoryRepository
	validator  domain.Validator
	uploads    domain.UploadRemover
	opts       options
}

// NewCreateCategory собирает use case.
func NewCreateCategory(categories domain.CategoryRepository, validator domain.Validator, uploads domain.UploadRemover, opts ...Option) (*CreateCategory, error) {
	const name = "create_category"
	switch {
	case categories == nil:
		return nil, domain.MissingDependency(name, "categories")
	case validator == nil:
		return nil, domain.MissingDependency(name, "validator")
	case uploads == nil:
		return nil, domain.MissingDependency(name, "uploads")
	}
	return &CreateCategory{
		categories: categories,
		validator:  validator,
		uploads:    uploads,
		opts:       buildOptions(name, opts),
	}, nil
}

// Execute проверяет вход, уникальность имени и сохраняет категорию.
// При любой ошибке загруженный файл удаляется.
func (uc *CreateCategory) Execute(ctx context.Context, in *CreateCategoryInput) (category domain.Category, err error) {
	if in == nil {
		return domain.Category{}, domain.ErrMissingInput
	}

	cleanup := uploadCleanup{remover: uc.uploads, logger: uc.opts.logger, key: in.ImagePath}
	defer func() {
		if err != nil {
			logFailure(uc.opts.logger, err, log.Fields{"name": in.Name})
		}
		cleanup.onFailure(ctx, err)
	}()

	if err := uc.validator.Validate(SchemaCategoryCreate, in); err != nil {
		return domain.Category{}, err
	}

	_, err = uc.categories.FindByName(ctx, in.Name)
	switch {
	case err == nil:
		return domain.Category{}, domain.ErrDuplicateName
	case !errors.Is(err, domain.ErrCategoryNotFound):
		return domain.Category{}, fmt.Errorf("find category by name: %w", err)
	}

	category, err = uc.categories.Insert(ctx, domain.Category{Name: in.Name, ImagePath: in.ImagePath})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateName) {
			return domain.Category{}, domain.ErrDuplicateName
		}
		return domain.Category{}, fmt.Errorf("insert category: %w", err)
	}

	uc.opts.logger.WithFields(log.Fields{
		"category_id": category.ID,
		"name":        category.Name,
	}).Info("category created")
	recordEvent(ctx, uc.opts, domain.AggregateCategory, category.ID, domain.EventCategoryCreated, newCategoryEvent(category))
	return category, nil
}

// UpdateCategory меняет имя и/или изображение категории.
type UpdateCategory struct {
	categories domain.CategoryRepository
	validator  domain.Validator
	uploads    domain.UploadRemover
	opts       options
}

// NewUpdateCategory собирает use case.
func NewUpdateCategory(categories domain.CategoryRepository, validator domain.Validator, uploads domain.UploadRemover, opts ...Option) (*UpdateCategory, error) {
	const name = "update_category"
	switch {
	case categories == nil:
		return nil, domain.MissingDependency(name, "categories")
	case validator == nil:
		return nil, domain.MissingDependency(name, "validator")
	case uploads == nil:
		return nil, domain.MissingDependency(name, "uploads")
	}
	return &UpdateCategory{
		categories: categories,
		validator:  validator,
		uploads:    uploads,
		opts:       buildOptions(name, opts),
	}, nil
}

// Execute обновляет категорию. После успешной замены изображения старый файл удаляется,
// при ошибке удаляется только что загруженный.
func (uc *UpdateCategory) Execute(ctx context.Context, in *UpdateCategoryInput) (category domain.Category, err error) {
	if in == nil {
		return domain.Category{}, domain.ErrMissingInput
	}

	cleanup := uploadCleanup{remover: uc.uploads, logger: uc.opts.logger, key: in.newImage()}
	defer func() {
		if err != nil {
			logFailure(uc.opts.logger, err, log.Fields{"category_id": in.CategoryID})
		}
		cleanup.onFailure(ctx, err)
	}()

	patch := in.patch()
	if patch.Empty() {
		return domain.Category{}, domain.ErrMissingFields
	}
	if err := uc.validator.Validate(SchemaCategoryUpdate, in); err != nil {
		return domain.Category{}, err
	}

	previous, err := uc.categories.FindByID(ctx, in.CategoryID)
	if err != nil {
		return domain.Category{}, lookupError(err, domain.ErrCategoryNotFound, "category", in.CategoryID)
	}

	if in.Name != nil {
		existing, err := uc.categories.FindByName(ctx, *in.Name)
		switch {
		case err == nil && existing.ID != previous.ID:
			return domain.Category{}, domain.ErrDuplicateName
		case err != nil && !errors.Is(err, domain.ErrCategoryNotFound):
			return domain.Category{}, fmt.Errorf("find category by name: %w", err)
		}
	}

	if err := uc.categories.UpdateByID(ctx, previous.ID, patch); err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateName):
			return domain.Category{}, domain.ErrDuplicateName
		case errors.Is(err, domain.ErrCategoryNotFound):
			return domain.Category{}, domain.WithReference(domain.ErrCategoryNotFound, in.CategoryID)
		}
		return domain.Category{}, fmt.Errorf("update category %s: %w", previous.ID, err)
	}

	category = patch.Apply(previous)
	category.UpdatedAt = time.Now().UTC()

	if newImage := in.newImage(); newImage != "" && previous.ImagePath != "" && previous.ImagePath != newImage {
		removeUpload(ctx, uc.uploads, uc.opts.logger, previous.ImagePath, "superseded")
	}

	uc.opts.logger.WithField("category_id", category.ID).Info("category updated")
	recordEvent(ctx, uc.opts, domain.AggregateCategory, category.ID, domain.EventCategoryUpdated, newCategoryEvent(category))
	return category, nil
}
