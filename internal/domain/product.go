package domain

import "time"

// Product: товар, всегда привязанный к существующей категории.
type Product struct {
	ID         string
	Name       string
	Price      float64
	CategoryID string
	ImagePath  string
	Offer      bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ProductPatch описывает частичное обновление товара.
type ProductPatch struct {
	Name       *string
	Price      *float64
	Offer      *bool
	CategoryID *string
	ImagePath  *string
}

// Empty сообщает, что патч не содержит ни одного изменяемого поля.
func (p ProductPatch) Empty() bool {
	return p.Name == nil && p.Price == nil && p.Offer == nil && p.CategoryID == nil && p.ImagePath == nil
}

// Apply возвращает копию товара с применённым патчем.
func (p ProductPatch) Apply(product Product) Product {
	if p.Name != nil {
		product.Name = *p.Name
	}
	if p.Price != nil {
		product.Price = *p.Price
	}
	if p.Offer != nil {
		product.Offer = *p.Offer
	}
	if p.CategoryID != nil {
		product.CategoryID = *p.CategoryID
	}
	if p.ImagePath != nil {
		product.ImagePath = *p.ImagePath
	}
	return product
}
