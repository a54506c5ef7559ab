package domain

import "time"

// Category: категория каталога. Имя уникально среди всех категорий.
type Category struct {
	ID        string
	Name      string
	ImagePath string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CategoryPatch описывает частичное обновление категории; nil-поля не меняются.
type CategoryPatch struct {
	Name      *string
	ImagePath *string
}

// Empty сообщает, что патч не содержит ни одного изменяемого поля.
func (p CategoryPatch) Empty() bool {
	return p.Name == nil && p.ImagePath == nil
}

// Apply возвращает копию категории с применённым патчем.
func (p CategoryPatch) Apply(c Category) Category {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.ImagePath != nil {
		c.ImagePath = *p.ImagePath
	}
	return c
}
