package repository

import (
	"errors"
	"strings"

	"github.com/lib/pq"

	"github.com/Etiti27/saas-platform-sub000/internal/domain"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgNumericOutOfRange   = "22003"
	pgDuplicateSchema     = "42P06"
)

// mapPgError turns constraint failures into domain errors so raw driver
// messages never reach the caller. Other errors are returned unchanged.
func mapPgError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch pqErr.Code {
	case pgUniqueViolation:
		return &domain.UniqueViolationError{Field: constraintField(pqErr.Table, pqErr.Constraint)}
	case pgForeignKeyViolation:
		return &domain.ForeignKeyViolationError{Table: pqErr.Table, Constraint: pqErr.Constraint}
	case pgCheckViolation:
		return domain.NewValidationError("value out of range for " + constraintField(pqErr.Table, pqErr.Constraint))
	case pgNumericOutOfRange:
		return domain.NewValidationError("numeric value out of range")
	case pgDuplicateSchema:
		return &domain.UniqueViolationError{Field: "schema_name"}
	}
	return err
}

// constraintField extracts "email" from "employees_email_key" or
// "products_quantity_check"
func constraintField(table, constraint string) string {
	field := constraint
	if table != "" {
		field = strings.TrimPrefix(field, table+"_")
	}
	for _, suffix := range []string{"_key", "_check", "_fkey", "_pkey"} {
		field = strings.TrimSuffix(field, suffix)
	}
	return field
}
