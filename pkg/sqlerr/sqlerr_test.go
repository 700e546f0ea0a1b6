package sqlerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertUniqueViolation(t *testing.T) {
	err := fmt.Errorf("failed to create user: %w", &pq.Error{
		Code:       "23505",
		Message:    "duplicate key value violates unique constraint",
		Table:      "users",
		Constraint: "users_email_key",
	})

	sqlErr, ok := Convert(err)
	require.True(t, ok)
	assert.Equal(t, UniqueViolation, sqlErr.Code)
	assert.Equal(t, "email", sqlErr.Field())
	assert.Equal(t, "A record with this Email already exists", sqlErr.UserMessage())
	assert.Equal(t, UniqueViolation, ErrCode(err))
}

func TestConvertForeignKey(t *testing.T) {
	sqlErr, ok := Convert(&pq.Error{
		Code:       "23503",
		Table:      "medicines",
		Constraint: "medicines_category_id_fkey",
	})
	require.True(t, ok)
	assert.Equal(t, ForeignKeyViolation, sqlErr.Code)
	assert.Equal(t, "category_id", sqlErr.Field())
	assert.Equal(t, "The referenced Category Id does not exist", sqlErr.UserMessage())
}

func TestConvertNonDriverError(t *testing.T) {
	_, ok := Convert(errors.New("plain"))
	assert.False(t, ok)
	assert.Equal(t, Other, ErrCode(errors.New("plain")))
}

func TestHumanize(t *testing.T) {
	assert.Equal(t, "Prescription Id", Humanize("prescription_id"))
}
