// Пакет outcome переводит ошибки use case'ов в устойчивый результат для транспорта.
package outcome

import (
	"errors"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
)

// InternalMessage: единственное сообщение, которое уходит клиенту при сбое сервера.
const InternalMessage = "internal server error"

// Outcome: классифицированный результат операции.
type Outcome struct {
	Kind    domain.Kind
	Message string
	// Ref: идентификатор, на котором сработала проверка ссылок.
	Ref    string
	Fields []domain.FieldError
}

// OK сообщает, что операция завершилась без ошибки.
func (o Outcome) OK() bool {
	return o.Kind == ""
}

var messages = map[domain.Kind]string{
	domain.KindMissingInput:       domain.ErrMissingInput.Error(),
	domain.KindMissingFields:      domain.ErrMissingFields.Error(),
	domain.KindShapeError:         "validation failed",
	domain.KindDuplicateName:      domain.ErrDuplicateName.Error(),
	domain.KindDuplicateEmail:     domain.ErrDuplicateEmail.Error(),
	domain.KindCategoryNotFound:   domain.ErrCategoryNotFound.Error(),
	domain.KindProductNotFound:    domain.ErrProductNotFound.Error(),
	domain.KindOrderNotFound:      domain.ErrOrderNotFound.Error(),
	domain.KindUserNotFound:       domain.ErrUserNotFound.Error(),
	domain.KindInvalidInput:       domain.ErrInvalidInput.Error(),
	domain.KindInvalidCredentials: domain.ErrInvalidCredentials.Error(),
	domain.KindInternal:           InternalMessage,
}

// FromError классифицирует ошибку. Детали внутренних ошибок наружу не попадают.
func FromError(err error) Outcome {
	if err == nil {
		return Outcome{}
	}

	kind := domain.KindOf(err)
	out := Outcome{Kind: kind, Message: messages[kind]}
	if kind == domain.KindInternal {
		return out
	}

	var refErr *domain.ReferenceError
	if errors.As(err, &refErr) {
		out.Ref = refErr.ID
	}

	var shapeErr *domain.ShapeError
	if errors.As(err, &shapeErr) {
		out.Fields = append([]domain.FieldError(nil), shapeErr.Fields...)
	}
	return out
}
