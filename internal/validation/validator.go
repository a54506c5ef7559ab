// Пакет validation реализует проверку формы входных данных use case'ов
// поверх go-playground/validator. Схема: это зарегистрированный тип входа
// с тегами `validate`.
package validation

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
)

// ErrUnknownSchema возвращается для незарегистрированной схемы.
var ErrUnknownSchema = errors.New("unknown validation schema")

// Validator проверяет данные по зарегистрированным схемам.
type Validator struct {
	mu       sync.RWMutex
	schemas  map[domain.SchemaID]reflect.Type
	validate *validator.Validate
}

// New создаёт валидатор и регистрирует переданные схемы.
// Значение карты: образец входа (значение или указатель на структуру).
func New(schemas map[domain.SchemaID]any) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	mustRegister(v, "finite", isFinite)
	mustRegister(v, "maxbytes", maxBytes)

	result := &Validator{
		schemas:  make(map[domain.SchemaID]reflect.Type, len(schemas)),
		validate: v,
	}
	for id, sample := range schemas {
		result.Register(id, sample)
	}
	return result
}

// Register добавляет или заменяет схему.
func (v *Validator) Register(id domain.SchemaID, sample any) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.schemas[id] = structType(reflect.TypeOf(sample))
}

// Validate возвращает *domain.ShapeError, если data не проходит схему.
func (v *Validator) Validate(schema domain.SchemaID, data any) error {
	v.mu.RLock()
	expected, ok := v.schemas[schema]
	v.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSchema, schema)
	}

	value := reflect.ValueOf(data)
	if !value.IsValid() || (value.Kind() == reflect.Pointer && value.IsNil()) {
		return &domain.ShapeError{Schema: schema, Fields: []domain.FieldError{{Field: "body", Message: "is required"}}}
	}
	if got := structType(value.Type()); got != expected {
		return fmt.Errorf("schema %s expects %s, got %s", schema, expected, got)
	}

	err := v.validate.Struct(data)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate %s: %w", schema, err)
	}

	shapeErr := &domain.ShapeError{Schema: schema, Fields: make([]domain.FieldError, 0, len(fieldErrs))}
	for _, fe := range fieldErrs {
		shapeErr.Fields = append(shapeErr.Fields, domain.FieldError{
			Field:   fieldPath(fe),
			Message: describe(fe),
		})
	}
	return shapeErr
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register validation %q: %v", tag, err))
	}
}

// isFinite отклоняет NaN и ±Inf: такие числа не сериализуются в JSON.
func isFinite(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.Float32, reflect.Float64:
		value := field.Float()
		return !math.IsNaN(value) && !math.IsInf(value, 0)
	default:
		return true
	}
}

// maxBytes ограничивает длину строки в байтах, а не в рунах, как встроенный max.
func maxBytes(fl validator.FieldLevel) bool {
	limit, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}
	return len(field.String()) <= limit
}

func structType(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

// fieldPath отбрасывает имя корневой структуры: "CreateOrderInput.items[0].quantity" → "items[0].quantity".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if idx := strings.Index(ns, "."); idx >= 0 {
		return ns[idx+1:]
	}
	return ns
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email"
	case "min":
		if isCollection(fe.Kind()) {
			return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
		}
		return fmt.Sprintf("must be at least %s characters long", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters long", fe.Param())
	case "maxbytes":
		return fmt.Sprintf("must be at most %s bytes long", fe.Param())
	case "finite":
		return "must be a finite number"
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	default:
		return fmt.Sprintf("failed on %q rule", fe.Tag())
	}
}

func isCollection(kind reflect.Kind) bool {
	return kind == reflect.Slice || kind == reflect.Array || kind == reflect.Map
}

var _ domain.Validator = (*Validator)(nil)
