package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
	"github.com/vladislavdragonenkov/burger-oms/internal/health"
	"github.com/vladislavdragonenkov/burger-oms/internal/storage/memory"
	"github.com/vladislavdragonenkov/burger-oms/internal/storage/postgres"
)

// runtimeDependencies: хранилища выбранного драйвера.
type runtimeDependencies struct {
	categories domain.CategoryRepository
	products   domain.ProductRepository
	orders     domain.OrderRepository
	users      domain.UserRepository
	outbox     domain.OutboxRepository
	// pinger nil для in-memory хранилища.
	pinger  health.Pinger
	closeFn func() error
}

func (d *runtimeDependencies) close() error {
	if d == nil || d.closeFn == nil {
		return nil
	}
	return d.closeFn()
}

func initRuntimeDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*runtimeDependencies, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.StorageDriver))
	if driver == "" {
		driver = StorageDriverMemory
	}

	switch driver {
	case StorageDriverMemory:
		logger.Info("using in-memory storage")
		return &runtimeDependencies{
			categories: memory.NewCategoryRepository(),
			products:   memory.NewProductRepository(),
			orders:     memory.NewOrderRepository(),
			users:      memory.NewUserRepository(),
			outbox:     memory.NewOutboxRepository(),
		}, nil
	case StorageDriverPostgres:
		if strings.TrimSpace(cfg.PostgresDSN) == "" {
			return nil, errors.New("postgres dsn is required")
		}

		store, err := postgres.Open(ctx, cfg.PostgresDSN, postgres.DefaultPoolConfig())
		if err != nil {
			return nil, err
		}
		if cfg.PostgresAutoMigrate {
			if err := store.MigrateUp(ctx, 0); err != nil {
				_ = store.Close()
				return nil, fmt.Errorf("apply migrations: %w", err)
			}
			status, err := store.MigrationStatus(ctx)
			if err != nil {
				_ = store.Close()
				return nil, fmt.Errorf("migration status: %w", err)
			}
			logger.WithFields(log.Fields{
				"version": status.Version,
				"applied": status.Applied,
			}).Info("postgres migrations applied")
		}

		logger.Info("using postgres storage")
		return &runtimeDependencies{
			categories: postgres.NewCategoryRepository(store),
			products:   postgres.NewProductRepository(store),
			orders:     postgres.NewOrderRepository(store),
			users:      postgres.NewUserRepository(store),
			outbox:     postgres.NewOutboxRepository(store),
			pinger:     store,
			closeFn:    store.Close,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.StorageDriver)
	}
}
