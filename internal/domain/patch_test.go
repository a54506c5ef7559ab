package domain

import "testing"

func strPtr(s string) *string { return &s }

func TestCategoryPatch(t *testing.T) {
	if !(CategoryPatch{}).Empty() {
		t.Fatal("zero patch must be empty")
	}

	base := Category{ID: "c-1", Name: "Burgers", ImagePath: "old.png"}
	got := CategoryPatch{ImagePath: strPtr("new.png")}.Apply(base)
	if got.Name != "Burgers" || got.ImagePath != "new.png" {
		t.Fatalf("unexpected patched category: %+v", got)
	}
}

func TestProductPatch(t *testing.T) {
	if !(ProductPatch{}).Empty() {
		t.Fatal("zero patch must be empty")
	}

	offer := true
	price := 0.0
	patch := ProductPatch{Offer: &offer, Price: &price}
	if patch.Empty() {
		t.Fatal("patch with offer must not be empty")
	}

	got := patch.Apply(Product{ID: "p-1", Name: "X-Burger", Price: 19.9, CategoryID: "c-1"})
	if !got.Offer || got.Price != 0 || got.Name != "X-Burger" || got.CategoryID != "c-1" {
		t.Fatalf("unexpected patched product: %+v", got)
	}
}

func TestOrderTotal(t *testing.T) {
	order := Order{Items: []OrderItem{
		{ProductID: "p-1", Price: 10, Quantity: 2},
		{ProductID: "p-2", Price: 2.5, Quantity: 4},
	}}
	if got := order.Total(); got != 30 {
		t.Fatalf("expected total 30, got %v", got)
	}
}
