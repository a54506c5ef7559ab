package usecase

import (
	"context"
	"sync"
	"testing"

	log "github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
	"github.com/vladislavdragonenkov/burger-oms/internal/storage/memory"
	"github.com/vladislavdragonenkov/burger-oms/internal/validation"
)

// stubCategories оборачивает memory-хранилище, считает вызовы и позволяет подменить ошибки.
type stubCategories struct {
	domain.CategoryRepository

	mu            sync.Mutex
	findByIDErr   error
	findByNameErr error
	insertErr     error
	updateErr     error
	inserts       int
	updates       int
}

func newStubCategories() *stubCategories {
	return &stubCategories{CategoryRepository: memory.NewCategoryRepository()}
}

func (s *stubCategories) FindByID(ctx context.Context, id string) (domain.Category, error) {
	if s.findByIDErr != nil {
		return domain.Category{}, s.findByIDErr
	}
	return s.CategoryRepository.FindByID(ctx, id)
}

func (s *stubCategories) FindByName(ctx context.Context, name string) (domain.Category, error) {
	if s.findByNameErr != nil {
		return domain.Category{}, s.findByNameErr
	}
	return s.CategoryRepository.FindByName(ctx, name)
}

func (s *stubCategories) Insert(ctx context.Context, category domain.Category) (domain.Category, error) {
	s.mu.Lock()
	s.inserts++
	s.mu.Unlock()
	if s.insertErr != nil {
		return domain.Category{}, s.insertErr
	}
	return s.CategoryRepository.Insert(ctx, category)
}

func (s *stubCategories) UpdateByID(ctx context.Context, id string, patch domain.CategoryPatch) error {
	s.mu.Lock()
	s.updates++
	s.mu.Unlock()
	if s.updateErr != nil {
		return s.updateErr
	}
	return s.CategoryRepository.UpdateByID(ctx, id, patch)
}

func (s *stubCategories) seed(t *testing.T, name, image string) domain.Category {
	t.Helper()
	category, err := s.CategoryRepository.Insert(context.Background(), domain.Category{Name: name, ImagePath: image})
	if err != nil {
		t.Fatalf("seed category: %v", err)
	}
	return category
}

type stubProducts struct {
	domain.ProductRepository

	findErr   error
	insertErr error
	updateErr error
	lookups   []string
	inserts   int
	updates   int
}

func newStubProducts() *stubProducts {
	return &stubProducts{ProductRepository: memory.NewProductRepository()}
}

func (s *stubProducts) FindByID(ctx context.Context, id string) (domain.Product, error) {
	s.lookups = append(s.lookups, id)
	if s.findErr != nil {
		return domain.Product{}, s.findErr
	}
	return s.ProductRepository.FindByID(ctx, id)
}

func (s *stubProducts) Insert(ctx context.Context, product domain.Product) (domain.Product, error) {
	s.inserts++
	if s.insertErr != nil {
		return domain.Product{}, s.insertErr
	}
	return s.ProductRepository.Insert(ctx, product)
}

func (s *stubProducts) UpdateByID(ctx context.Context, id string, patch domain.ProductPatch) error {
	s.updates++
	if s.updateErr != nil {
		return s.updateErr
	}
	return s.ProductRepository.UpdateByID(ctx, id, patch)
}

func (s *stubProducts) seed(t *testing.T, name string, price float64, categoryID, image string) domain.Product {
	t.Helper()
	product, err := s.ProductRepository.Insert(context.Background(), domain.Product{
		Name:       name,
		Price:      price,
		CategoryID: categoryID,
		ImagePath:  image,
	})
	if err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return product
}

type stubOrders struct {
	domain.OrderRepository

	findErr   error
	insertErr error
	inserts   int
	updates   int
}

func newStubOrders() *stubOrders {
	return &stubOrders{OrderRepository: memory.NewOrderRepository()}
}

func (s *stubOrders) FindByID(ctx context.Context, id string) (domain.Order, error) {
	if s.findErr != nil {
		return domain.Order{}, s.findErr
	}
	return s.OrderRepository.FindByID(ctx, id)
}

func (s *stubOrders) Insert(ctx context.Context, order domain.Order) (domain.Order, error) {
	s.inserts++
	if s.insertErr != nil {
		return domain.Order{}, s.insertErr
	}
	return s.OrderRepository.Insert(ctx, order)
}

func (s *stubOrders) UpdateStatus(ctx context.Context, id, status string) error {
	s.updates++
	return s.OrderRepository.UpdateStatus(ctx, id, status)
}

// stubUploads запоминает удалённые ключи.
type stubUploads struct {
	mu      sync.Mutex
	err     error
	removed []string
}

func (s *stubUploads) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removed = append(s.removed, key)
	return s.err
}

func (s *stubUploads) keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.removed...)
}

type stubHasher struct{}

func (stubHasher) Hash(password string) (string, error) {
	return "hashed:" + password, nil
}

func (stubHasher) Compare(hash, password string) error {
	if hash != "hashed:"+password {
		return domain.ErrInvalidCredentials
	}
	return nil
}

type stubTokens struct{}

func (stubTokens) Issue(user domain.User) (string, error) {
	return "token-" + user.ID, nil
}

func newValidator() domain.Validator {
	return validation.New(Schemas())
}

func silentLogger() *log.Entry {
	logger, _ := logtest.NewNullLogger()
	return log.NewEntry(logger)
}

func ptr[T any](v T) *T {
	return &v
}

func assertKind(t *testing.T, err error, want domain.Kind) {
	t.Helper()
	if got := domain.KindOf(err); got != want {
		t.Fatalf("expected kind %q, got %q (err=%v)", want, got, err)
	}
}

func assertRemoved(t *testing.T, uploads *stubUploads, want ...string) {
	t.Helper()
	got := uploads.keys()
	if len(got) != len(want) {
		t.Fatalf("expected removed %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected removed %v, got %v", want, got)
		}
	}
}
