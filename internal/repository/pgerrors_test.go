package repository

import (
	"errors"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"github.com/Etiti27/saas-platform-sub000/internal/domain"
)

func uniqueViolation(table, constraint string) error {
	return &pq.Error{Code: pgUniqueViolation, Table: table, Constraint: constraint}
}

func foreignKeyViolation(table, constraint string) error {
	return &pq.Error{Code: pgForeignKeyViolation, Table: table, Constraint: constraint}
}

func TestMapPgError(t *testing.T) {
	t.Run("unique", func(t *testing.T) {
		var unique *domain.UniqueViolationError
		assert.True(t, errors.As(mapPgError(uniqueViolation("employees", "employees_email_key")), &unique))
		assert.Equal(t, "email", unique.Field)
	})

	t.Run("foreign key", func(t *testing.T) {
		var fk *domain.ForeignKeyViolationError
		assert.True(t, errors.As(mapPgError(foreignKeyViolation("refunds", "refunds_order_id_fkey")), &fk))
		assert.Equal(t, "refunds_order_id_fkey", fk.Constraint)
	})

	t.Run("check", func(t *testing.T) {
		err := mapPgError(&pq.Error{Code: pgCheckViolation, Table: "products", Constraint: "products_quantity_check"})
		var validation domain.ValidationError
		assert.True(t, errors.As(err, &validation))
		assert.Contains(t, err.Error(), "quantity")
	})

	t.Run("numeric overflow", func(t *testing.T) {
		var validation domain.ValidationError
		assert.True(t, errors.As(mapPgError(&pq.Error{Code: pgNumericOutOfRange}), &validation))
	})

	t.Run("duplicate schema", func(t *testing.T) {
		var unique *domain.UniqueViolationError
		assert.True(t, errors.As(mapPgError(&pq.Error{Code: pgDuplicateSchema}), &unique))
		assert.Equal(t, "schema_name", unique.Field)
	})

	t.Run("other errors pass through", func(t *testing.T) {
		plain := errors.New("connection reset")
		assert.Same(t, plain, mapPgError(plain))

		other := &pq.Error{Code: "40001"}
		assert.Equal(t, error(other), mapPgError(other))
	})
}

func TestConstraintField(t *testing.T) {
	assert.Equal(t, "sku", constraintField("products", "products_sku_key"))
	assert.Equal(t, "order_number", constraintField("orders", "orders_order_number_key"))
	assert.Equal(t, "custom_name", constraintField("", "custom_name"))
}
