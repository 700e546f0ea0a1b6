package validator

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinic-api/pkg/errors"
)

type sample struct {
	Name       string          `json:"name" validate:"min=4,max=10"`
	Email      string          `json:"email" validate:"omitempty,email"`
	Types      []string        `json:"types" validate:"min=1,dive,oneof=Tablet Syrup"`
	Stock      int             `json:"stock" validate:"gte=0"`
	Price      decimal.Decimal `json:"price" validate:"gt=0"`
	Expiration time.Time       `json:"expiration" validate:"future"`
}

func validSample() sample {
	return sample{
		Name:       "aspirin",
		Types:      []string{"Tablet"},
		Stock:      3,
		Price:      decimal.RequireFromString("2.50"),
		Expiration: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func newTestValidator() *Validator {
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return New(WithClock(func() time.Time { return now }))
}

func TestStructValid(t *testing.T) {
	v := newTestValidator()
	assert.Nil(t, v.Struct(validSample()))
	assert.NoError(t, v.Validate(validSample()))
}

func TestStructFieldOrderAndNames(t *testing.T) {
	v := newTestValidator()

	s := validSample()
	s.Name = "abc"
	s.Email = "not-an-email"
	s.Stock = -1
	s.Price = decimal.Zero

	fields := v.Struct(s)
	require.Len(t, fields, 4)
	assert.Equal(t, errors.FieldError{Field: "name", Message: "must be at least 4 characters"}, fields[0])
	assert.Equal(t, "email", fields[1].Field)
	assert.Equal(t, "must be a valid email address", fields[1].Message)
	assert.Equal(t, "stock", fields[2].Field)
	assert.Equal(t, "price", fields[3].Field)
	assert.Equal(t, "must be greater than 0", fields[3].Message)
}

func TestStructDiveAndEmptyList(t *testing.T) {
	v := newTestValidator()

	s := validSample()
	s.Types = []string{"Tablet", "Powder"}
	fields := v.Struct(s)
	require.Len(t, fields, 1)
	assert.Equal(t, "types[1]", fields[0].Field)
	assert.Equal(t, "must be one of: Tablet, Syrup", fields[0].Message)

	s.Types = []string{}
	fields = v.Struct(s)
	require.Len(t, fields, 1)
	assert.Equal(t, "types", fields[0].Field)
	assert.Equal(t, "must contain at least 1 item(s)", fields[0].Message)
}

func TestFutureRule(t *testing.T) {
	v := newTestValidator()

	s := validSample()
	s.Expiration = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	err := v.Validate(s)
	require.Error(t, err)

	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.KindInvalidInput, appErr.Kind)
	require.Len(t, appErr.Fields, 1)
	assert.Equal(t, "expiration", appErr.Fields[0].Field)
	assert.Equal(t, "must be a date in the future", appErr.Fields[0].Message)
}
