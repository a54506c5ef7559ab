package validation

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/burger-oms/internal/domain"
)

type lineInput struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=1"`
}

type basketInput struct {
	Owner string      `json:"owner" validate:"required"`
	Email string      `json:"email" validate:"omitempty,email"`
	Note  *string     `json:"note" validate:"omitempty,min=2"`
	Lines []lineInput `json:"lines" validate:"required,min=1,dive"`
}

const schemaBasket domain.SchemaID = "basket.create"

func newValidator() *Validator {
	return New(map[domain.SchemaID]any{schemaBasket: basketInput{}})
}

func TestValidate_OK(t *testing.T) {
	v := newValidator()

	err := v.Validate(schemaBasket, &basketInput{
		Owner: "user-1",
		Lines: []lineInput{{ProductID: "p-1", Quantity: 2}},
	})
	require.NoError(t, err)
}

func TestValidate_ShapeErrorFields(t *testing.T) {
	v := newValidator()
	note := "x"

	err := v.Validate(schemaBasket, &basketInput{
		Email: "not-an-email",
		Note:  &note,
		Lines: []lineInput{{ProductID: "p-1", Quantity: 1}, {Quantity: 0}},
	})

	var shapeErr *domain.ShapeError
	require.True(t, errors.As(err, &shapeErr), "expected ShapeError, got %v", err)
	assert.Equal(t, schemaBasket, shapeErr.Schema)

	messages := map[string]string{}
	for _, f := range shapeErr.Fields {
		messages[f.Field] = f.Message
	}
	assert.Equal(t, "is required", messages["owner"])
	assert.Equal(t, "must be a valid email", messages["email"])
	assert.Equal(t, "must be at least 2 characters long", messages["note"])
	assert.Equal(t, "is required", messages["lines[1].product_id"])
	assert.Equal(t, "must be greater than or equal to 1", messages["lines[1].quantity"])
}

func TestValidate_EmptyCollection(t *testing.T) {
	v := newValidator()

	err := v.Validate(schemaBasket, basketInput{Owner: "user-1", Lines: []lineInput{}})

	var shapeErr *domain.ShapeError
	require.True(t, errors.As(err, &shapeErr))
	require.Len(t, shapeErr.Fields, 1)
	assert.Equal(t, "lines", shapeErr.Fields[0].Field)
	assert.Equal(t, "must contain at least 1 item(s)", shapeErr.Fields[0].Message)
}

func TestValidate_NilData(t *testing.T) {
	v := newValidator()

	var in *basketInput
	err := v.Validate(schemaBasket, in)

	var shapeErr *domain.ShapeError
	require.True(t, errors.As(err, &shapeErr))
}

func TestValidate_UnknownSchema(t *testing.T) {
	v := newValidator()

	err := v.Validate("missing.schema", &basketInput{})
	require.ErrorIs(t, err, ErrUnknownSchema)
	assert.Equal(t, domain.KindInternal, domain.KindOf(err))
}

func TestValidate_TypeMismatch(t *testing.T) {
	v := newValidator()

	err := v.Validate(schemaBasket, &lineInput{ProductID: "p-1", Quantity: 1})
	require.Error(t, err)

	var shapeErr *domain.ShapeError
	assert.False(t, errors.As(err, &shapeErr), "type mismatch is a programming error, not a shape error")
}

type tariffInput struct {
	Amount float64  `json:"amount" validate:"finite,gte=0"`
	Bonus  *float64 `json:"bonus" validate:"omitempty,finite"`
	Code   string   `json:"code" validate:"required,maxbytes=4"`
}

const schemaTariff domain.SchemaID = "tariff.create"

func TestValidate_FiniteAndMaxBytes(t *testing.T) {
	v := New(map[domain.SchemaID]any{schemaTariff: tariffInput{}})

	tests := []struct {
		name   string
		in     tariffInput
		fields map[string]string
	}{
		{
			name: "valid",
			in:   tariffInput{Amount: 1.5, Code: "abcd"},
		},
		{
			name:   "positive infinity",
			in:     tariffInput{Amount: math.Inf(1), Code: "a"},
			fields: map[string]string{"amount": "must be a finite number"},
		},
		{
			name:   "nan pointer",
			in:     tariffInput{Bonus: func() *float64 { nan := math.NaN(); return &nan }(), Code: "a"},
			fields: map[string]string{"bonus": "must be a finite number"},
		},
		{
			name:   "multibyte runes counted as bytes",
			in:     tariffInput{Code: "яя1"},
			fields: map[string]string{"code": "must be at most 4 bytes long"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(schemaTariff, &tt.in)
			if tt.fields == nil {
				require.NoError(t, err)
				return
			}

			var shapeErr *domain.ShapeError
			require.True(t, errors.As(err, &shapeErr), "expected ShapeError, got %v", err)
			got := map[string]string{}
			for _, f := range shapeErr.Fields {
				got[f.Field] = f.Message
			}
			assert.Equal(t, tt.fields, got)
		})
	}
}
