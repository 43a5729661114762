package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "email already exists", (&UniqueViolationError{Field: "email"}).Error())
	assert.Equal(t, "a record with the same value already exists", (&UniqueViolationError{}).Error())
	assert.Equal(t, "record is still referenced by other records", (&ForeignKeyViolationError{Table: "employees"}).Error())
	assert.Equal(t, "order not found with ID: 1", (&ErrNotFound{Entity: "order", ID: "1"}).Error())
	assert.Equal(t, "validation error: bad", NewValidationError("bad").Error())
}

func TestProvisioningErrorUnwrap(t *testing.T) {
	cause := errors.New("permission denied for database")
	err := error(&ProvisioningError{Schema: "acme", Step: "create schema", Err: cause})

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "acme")
	assert.Contains(t, err.Error(), "create schema")
}
