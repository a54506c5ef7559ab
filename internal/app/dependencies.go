package app

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/burger-oms/internal/auth"
	"github.com/vladislavdragonenkov/burger-oms/internal/transport/httpapi"
	"github.com/vladislavdragonenkov/burger-oms/internal/upload"
	"github.com/vladislavdragonenkov/burger-oms/internal/usecase"
	"github.com/vladislavdragonenkov/burger-oms/internal/validation"
)

// Dependencies: собранные use case'ы и их инфраструктура.
type Dependencies struct {
	UseCases httpapi.UseCases
	Uploads  *upload.DiskStore
	Tokens   *auth.Tokens
}

// newDependencies собирает use case'ы поверх выбранных хранилищ.
func newDependencies(cfg Config, storage *runtimeDependencies, logger *log.Entry) (*Dependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	uploads, err := upload.NewDiskStore(cfg.UploadDir, logger.WithField("component", "upload"))
	if err != nil {
		return nil, err
	}
	tokens, err := auth.NewTokens(cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		return nil, err
	}
	validator := validation.New(usecase.Schemas())
	hasher := auth.NewBcryptHasher(cfg.BcryptCost)

	opts := []usecase.Option{usecase.WithOutbox(storage.outbox)}
	productOpts := opts
	if cfg.ReplaceProductImage {
		productOpts = append(append([]usecase.Option(nil), opts...), usecase.WithSupersededImageCleanup())
	}

	var uc httpapi.UseCases
	steps := []struct {
		name  string
		build func() error
	}{
		{"create_user", func() (err error) {
			uc.CreateUser, err = usecase.NewCreateUser(storage.users, validator, hasher, opts...)
			return err
		}},
		{"create_session", func() (err error) {
			uc.CreateSession, err = usecase.NewCreateSession(storage.users, validator, hasher, tokens, opts...)
			return err
		}},
		{"create_category", func() (err error) {
			uc.CreateCategory, err = usecase.NewCreateCategory(storage.categories, validator, uploads, opts...)
			return err
		}},
		{"update_category", func() (err error) {
			uc.UpdateCategory, err = usecase.NewUpdateCategory(storage.categories, validator, uploads, opts...)
			return err
		}},
		{"create_product", func() (err error) {
			uc.CreateProduct, err = usecase.NewCreateProduct(storage.products, storage.categories, validator, uploads, opts...)
			return err
		}},
		{"update_product", func() (err error) {
			uc.UpdateProduct, err = usecase.NewUpdateProduct(storage.products, storage.categories, validator, uploads, productOpts...)
			return err
		}},
		{"create_order", func() (err error) {
			uc.CreateOrder, err = usecase.NewCreateOrder(storage.orders, storage.products, validator, opts...)
			return err
		}},
		{"update_order", func() (err error) {
			uc.UpdateOrder, err = usecase.NewUpdateOrder(storage.orders, opts...)
			return err
		}},
		{"list_orders", func() (err error) {
			uc.ListOrders, err = usecase.NewListOrders(storage.orders)
			return err
		}},
		{"catalog", func() (err error) {
			uc.Catalog, err = usecase.NewCatalog(storage.categories, storage.products)
			return err
		}},
	}
	for _, step := range steps {
		if err := step.build(); err != nil {
			return nil, fmt.Errorf("build %s: %w", step.name, err)
		}
	}

	return &Dependencies{UseCases: uc, Uploads: uploads, Tokens: tokens}, nil
}
