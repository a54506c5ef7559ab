package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
	"github.com/vladislavdragonenkov/burger-oms/internal/storage/memory"
)

func newOrder(userID string) domain.Order {
	return domain.Order{
		UserID: userID,
		Items: []domain.OrderItem{
			{ProductID: "p-1", Name: "X-Burger", Price: 20, Quantity: 2},
			{ProductID: "p-2", Name: "Soda", Price: 5, Quantity: 1},
		},
	}
}

func TestOrderRepository_InsertDefaultsStatus(t *testing.T) {
	repo := memory.NewOrderRepository()
	ctx := context.Background()

	order, err := repo.Insert(ctx, newOrder("user-1"))
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if order.Status != domain.OrderStatusPlaced {
		t.Fatalf("expected default status %q, got %q", domain.OrderStatusPlaced, order.Status)
	}

	stored, err := repo.FindByID(ctx, order.ID)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if len(stored.Items) != 2 || stored.Items[0].ProductID != "p-1" || stored.Items[1].ProductID != "p-2" {
		t.Fatalf("items must keep input order, got %+v", stored.Items)
	}

	// Мутация результата не должна менять состояние хранилища.
	stored.Items[0].Quantity = 99
	again, _ := repo.FindByID(ctx, order.ID)
	if again.Items[0].Quantity != 2 {
		t.Fatal("repository leaked internal slice")
	}
}

func TestOrderRepository_UpdateStatus(t *testing.T) {
	repo := memory.NewOrderRepository()
	ctx := context.Background()

	order, err := repo.Insert(ctx, newOrder("user-1"))
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	if err := repo.UpdateStatus(ctx, order.ID, "on the way"); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	stored, _ := repo.FindByID(ctx, order.ID)
	if stored.Status != "on the way" {
		t.Fatalf("expected updated status, got %q", stored.Status)
	}

	if err := repo.UpdateStatus(ctx, "6f1c2f4e-7d4b-4a57-9a43-0f4f5cb9a111", "x"); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
	if err := repo.UpdateStatus(ctx, "42", "x"); !errors.Is(err, domain.ErrMalformedID) {
		t.Fatalf("expected ErrMalformedID, got %v", err)
	}
}

func TestOrderRepository_FindByUser(t *testing.T) {
	repo := memory.NewOrderRepository()
	ctx := context.Background()

	for _, user := range []string{"user-1", "user-2", "user-1"} {
		if _, err := repo.Insert(ctx, newOrder(user)); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}

	orders, err := repo.FindByUser(ctx, "user-1")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}

	all, _ := repo.FindAll(ctx)
	if len(all) != 3 {
		t.Fatalf("expected 3 orders, got %d", len(all))
	}
}

func TestUserRepository_UniqueEmail(t *testing.T) {
	repo := memory.NewUserRepository()
	ctx := context.Background()

	user, err := repo.Insert(ctx, domain.User{Name: "Ana", Email: "ana@example.com", PasswordHash: "h"})
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if _, err := repo.Insert(ctx, domain.User{Name: "Other", Email: "ana@example.com"}); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	found, err := repo.FindByEmail(ctx, "ana@example.com")
	if err != nil || found.ID != user.ID {
		t.Fatalf("find by email: %+v, %v", found, err)
	}
	if _, err := repo.FindByID(ctx, user.ID); err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if _, err := repo.FindByEmail(ctx, "nobody@example.com"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
