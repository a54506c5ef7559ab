package app

import (
	"context"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
	"github.com/vladislavdragonenkov/burger-oms/internal/storage/memory"
	"github.com/vladislavdragonenkov/burger-oms/internal/usecase"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	cfg := DefaultConfig()
	cfg.JWTSecret = "test-secret"
	cfg.UploadDir = t.TempDir()
	cfg.BcryptCost = 4
	return cfg
}

func TestNewDependencies_BuildsEveryUseCase(t *testing.T) {
	logger := log.WithField("test", "dependencies")
	storage, err := initRuntimeDependencies(context.Background(), testConfig(t), logger)
	require.NoError(t, err)

	deps, err := newDependencies(testConfig(t), storage, logger)
	require.NoError(t, err)

	uc := deps.UseCases
	assert.NotNil(t, uc.CreateUser)
	assert.NotNil(t, uc.CreateSession)
	assert.NotNil(t, uc.CreateCategory)
	assert.NotNil(t, uc.UpdateCategory)
	assert.NotNil(t, uc.CreateProduct)
	assert.NotNil(t, uc.UpdateProduct)
	assert.NotNil(t, uc.CreateOrder)
	assert.NotNil(t, uc.UpdateOrder)
	assert.NotNil(t, uc.ListOrders)
	assert.NotNil(t, uc.Catalog)
	assert.NotNil(t, deps.Uploads)
	assert.NotNil(t, deps.Tokens)
}

func TestNewDependencies_RecordsEventsInOutbox(t *testing.T) {
	logger := log.WithField("test", "dependencies-outbox")
	storage, err := initRuntimeDependencies(context.Background(), testConfig(t), logger)
	require.NoError(t, err)

	deps, err := newDependencies(testConfig(t), storage, logger)
	require.NoError(t, err)

	_, err = deps.UseCases.CreateCategory.Execute(context.Background(), &usecase.CreateCategoryInput{Name: "Burgers"})
	require.NoError(t, err)

	outbox, ok := storage.outbox.(*memory.OutboxRepository)
	require.True(t, ok)
	pending := outbox.AllPending()
	require.Len(t, pending, 1)
	assert.Equal(t, domain.EventCategoryCreated, pending[0].EventType)
}

func TestNewDependencies_RequiresSecret(t *testing.T) {
	logger := log.WithField("test", "dependencies-secret")
	cfg := testConfig(t)
	storage, err := initRuntimeDependencies(context.Background(), cfg, logger)
	require.NoError(t, err)

	cfg.JWTSecret = ""
	_, err = newDependencies(cfg, storage, logger)
	assert.Error(t, err)
}

func TestInitPublishers_WithoutBrokersUsesLog(t *testing.T) {
	pubs, err := initPublishers(Config{}, log.WithField("test", "publishers"))
	require.NoError(t, err)

	assert.Nil(t, pubs.producer)
	assert.Nil(t, pubs.deadLetter)
	require.NotNil(t, pubs.events)
	assert.NoError(t, pubs.events.Publish(context.Background(), domain.OutboxMessage{ID: "m-1"}))
	pubs.close(log.WithField("test", "publishers"))
}

func TestInitPublishers_InvalidBrokers(t *testing.T) {
	_, err := initPublishers(Config{KafkaBrokers: "invalid-broker:9999"}, log.WithField("test", "publishers"))
	assert.Error(t, err)
}
