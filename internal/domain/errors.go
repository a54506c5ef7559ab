package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Kind: устойчивый тег класса ошибки, по которому транспорт выбирает ответ.
type Kind string

const (
	KindMissingInput       Kind = "missing_input"
	KindMissingFields      Kind = "missing_fields"
	KindShapeError         Kind = "shape_error"
	KindDuplicateName      Kind = "duplicate_name"
	KindDuplicateEmail     Kind = "duplicate_email"
	KindCategoryNotFound   Kind = "category_not_found"
	KindProductNotFound    Kind = "product_not_found"
	KindOrderNotFound      Kind = "order_not_found"
	KindUserNotFound       Kind = "user_not_found"
	KindInvalidInput       Kind = "invalid_input"
	KindInvalidCredentials Kind = "invalid_credentials"
	// KindInternal: всё, что не распознано как клиентская ошибка.
	KindInternal Kind = "internal"
)

var (
	// ErrMissingInput возвращается, если use case вызван без входных данных.
	ErrMissingInput = errors.New("input is required")
	// ErrMissingFields: обновление без единого изменяемого поля.
	ErrMissingFields = errors.New("at least one field must be provided")
	// ErrDuplicateName: категория с таким именем уже существует.
	ErrDuplicateName = errors.New("category already exists")
	// ErrDuplicateEmail: пользователь с таким email уже зарегистрирован.
	ErrDuplicateEmail = errors.New("user already exists")
	// ErrCategoryNotFound возвращается, если категория не найдена в хранилище.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrProductNotFound возвращается, если товар не найден в хранилище.
	ErrProductNotFound = errors.New("product not found")
	// ErrOrderNotFound возвращается, если заказ не найден в хранилище.
	ErrOrderNotFound = errors.New("order not found")
	// ErrUserNotFound возвращается, если пользователь не найден в хранилище.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidInput: пользователь передал идентификатор некорректного формата.
	ErrInvalidInput = errors.New("invalid identifier")
	// ErrInvalidCredentials: неверная пара email/пароль.
	ErrInvalidCredentials = errors.New("make sure your email or password are correct")

	// ErrMalformedID: ошибка хранилища: идентификатор не соответствует формату ключа.
	// Наружу не уходит, use case переводит её в ErrInvalidInput.
	ErrMalformedID = errors.New("malformed identifier")
	// ErrMissingDependency: use case собран без обязательного коллаборатора.
	ErrMissingDependency = errors.New("missing required dependency")
	// ErrOutboxPublish: ошибка при публикации сообщения из outbox.
	ErrOutboxPublish = errors.New("outbox publish failed")
)

// SchemaID идентифицирует схему валидации входных данных.
type SchemaID string

// FieldError описывает нарушение схемы для одного поля.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ShapeError: вход не соответствует схеме.
type ShapeError struct {
	Schema SchemaID
	Fields []FieldError
}

func (e *ShapeError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("payload does not match schema %s", e.Schema)
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return fmt.Sprintf("payload does not match schema %s: %s", e.Schema, strings.Join(parts, "; "))
}

// ReferenceError привязывает бизнес-ошибку к идентификатору, на котором она возникла.
type ReferenceError struct {
	Err error
	ID  string
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s: %s", e.Err, e.ID)
}

func (e *ReferenceError) Unwrap() error {
	return e.Err
}

// WithReference оборачивает err идентификатором id.
func WithReference(err error, id string) error {
	return &ReferenceError{Err: err, ID: id}
}

// MissingDependency сообщает, какой коллаборатор не передан в конструктор.
func MissingDependency(useCase, name string) error {
	return fmt.Errorf("%s: %w: %s", useCase, ErrMissingDependency, name)
}

// KindOf классифицирует ошибку. Для nil возвращает пустой Kind.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}

	var shapeErr *ShapeError
	switch {
	case errors.As(err, &shapeErr):
		return KindShapeError
	case errors.Is(err, ErrMissingInput):
		return KindMissingInput
	case errors.Is(err, ErrMissingFields):
		return KindMissingFields
	case errors.Is(err, ErrDuplicateName):
		return KindDuplicateName
	case errors.Is(err, ErrDuplicateEmail):
		return KindDuplicateEmail
	case errors.Is(err, ErrCategoryNotFound):
		return KindCategoryNotFound
	case errors.Is(err, ErrProductNotFound):
		return KindProductNotFound
	case errors.Is(err, ErrOrderNotFound):
		return KindOrderNotFound
	case errors.Is(err, ErrUserNotFound):
		return KindUserNotFound
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, ErrInvalidCredentials):
		return KindInvalidCredentials
	default:
		return KindInternal
	}
}

// IsClientError сообщает, что ошибка вызвана входными данными, а не сбоем сервера.
func IsClientError(err error) bool {
	kind := KindOf(err)
	return kind != "" && kind != KindInternal
}
