package usecase

import "github.com/vladislavdragonenkov/burger-oms/internal/domain"

// Идентификаторы схем валидации.
const (
	SchemaCategoryCreate domain.SchemaID = "category.create"
	SchemaCategoryUpdate domain.SchemaID = "category.update"
	SchemaProductCreate  domain.SchemaID = "product.create"
	SchemaProductUpdate  domain.SchemaID = "product.update"
	SchemaOrderCreate    domain.SchemaID = "order.create"
	SchemaUserCreate     domain.SchemaID = "user.create"
	SchemaSessionCreate  domain.SchemaID = "session.create"
)

// Schemas возвращает образцы входов для регистрации в валидаторе.
func Schemas() map[domain.SchemaID]any {
	return map[domain.SchemaID]any{
		SchemaCategoryCreate: CreateCategoryInput{},
		SchemaCategoryUpdate: UpdateCategoryInput{},
		SchemaProductCreate:  CreateProductInput{},
		SchemaProductUpdate:  UpdateProductInput{},
		SchemaOrderCreate:    CreateOrderInput{},
		SchemaUserCreate:     CreateUserInput{},
		SchemaSessionCreate:  CreateSessionInput{},
	}
}

// CreateCategoryInput: вход CreateCategory.
type CreateCategoryInput struct {
	Name string `json:"name" validate:"required,max=100"`
	// ImagePath: ключ уже сохранённого файла.
	ImagePath string `json:"image_path"`
}

// UpdateCategoryInput: вход UpdateCategory. nil-поля не меняются.
type UpdateCategoryInput struct {
	CategoryID string  `json:"id" validate:"required"`
	Name       *string `json:"name" validate:"omitempty,min=1,max=100"`
	ImagePath  *string `json:"image_path" validate:"omitempty,min=1"`
}

func (in *UpdateCategoryInput) patch() domain.CategoryPatch {
	return domain.CategoryPatch{Name: in.Name, ImagePath: in.ImagePath}
}

func (in *UpdateCategoryInput) newImage() string {
	if in.ImagePath == nil {
		return ""
	}
	return *in.ImagePath
}

// CreateProductInput: вход CreateProduct.
type CreateProductInput struct {
	Name       string  `json:"name" validate:"required,max=100"`
	Price      float64 `json:"price" validate:"finite,gte=0"`
	CategoryID string  `json:"category_id" validate:"required"`
	ImagePath  string  `json:"image_path"`
	Offer      bool    `json:"offer"`
}

// UpdateProductInput: вход UpdateProduct. nil-поля не меняются.
type UpdateProductInput struct {
	ProductID  string   `json:"id" validate:"required"`
	Name       *string  `json:"name" validate:"omitempty,min=1,max=100"`
	Price      *float64 `json:"price" validate:"omitempty,finite,gte=0"`
	Offer      *bool    `json:"offer"`
	CategoryID *string  `json:"category_id" validate:"omitempty,min=1"`
	ImagePath  *string  `json:"image_path" validate:"omitempty,min=1"`
}

func (in *UpdateProductInput) patch() domain.ProductPatch {
	return domain.ProductPatch{
		Name:       in.Name,
		Price:      in.Price,
		Offer:      in.Offer,
		CategoryID: in.CategoryID,
		ImagePath:  in.ImagePath,
	}
}

func (in *UpdateProductInput) newImage() string {
	if in.ImagePath == nil {
		return ""
	}
	return *in.ImagePath
}

// OrderItemInput: позиция заказа во входе CreateOrder.
type OrderItemInput struct {
	ProductID string `json:"id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=1"`
}

// CreateOrderInput: вход CreateOrder.
type CreateOrderInput struct {
	UserID string           `json:"user_id" validate:"required"`
	Items  []OrderItemInput `json:"products" validate:"required,min=1,dive"`
}

// UpdateOrderInput: вход UpdateOrder.
type UpdateOrderInput struct {
	OrderID string `json:"id"`
	Status  string `json:"status"`
}

// CreateUserInput: вход CreateUser.
type CreateUserInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	// Password: bcrypt принимает не больше 72 байт.
	Password string `json:"password" validate:"required,min=6,maxbytes=72"`
	Admin    bool   `json:"admin"`
}

// CreateSessionInput: вход CreateSession.
type CreateSessionInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
