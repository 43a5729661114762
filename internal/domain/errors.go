package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/Etiti27/saas-platform-sub000/internal/tenancy"
)

// InvalidIdentifierError is raised for schema names and sort columns rejected
// before any SQL is built
type InvalidIdentifierError = tenancy.InvalidIdentifierError

// ErrNotFound is used where a miss must travel as an error, e.g. a refund
// against an unknown order. Plain lookups return nil instead.
type ErrNotFound struct {
	Entity string
	ID     string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found with ID: %s", e.Entity, e.ID)
}

// ValidationError represents an error that occurs due to invalid input or parameters
type ValidationError struct {
	Message string
}

// Error implements the error interface
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s", e.Message)
}

// NewValidationError creates a new validation error with the given message
func NewValidationError(message string) error {
	return ValidationError{
		Message: message,
	}
}

// UniqueViolationError is a unique constraint conflict on Field
type UniqueViolationError struct {
	Field string
}

func (e *UniqueViolationError) Error() string {
	if e.Field == "" {
		return "a record with the same value already exists"
	}
	return fmt.Sprintf("%s already exists", e.Field)
}

// ForeignKeyViolationError means a row is still referenced, or references a
// row that does not exist
type ForeignKeyViolationError struct {
	Table      string
	Constraint string
}

func (e *ForeignKeyViolationError) Error() string {
	return "record is still referenced by other records"
}

// ProvisioningError wraps any failure while creating a tenant schema or its tables.
// The request that triggered it must not serve tenant data.
type ProvisioningError struct {
	Schema string
	Step   string
	Err    error
}

func (e *ProvisioningError) Error() string {
	return fmt.Sprintf("failed to provision schema %s at %s: %v", e.Schema, e.Step, e.Err)
}

func (e *ProvisioningError) Unwrap() error {
	return e.Err
}

// InsufficientStockError is returned when an order line asks for more than is on hand
type InsufficientStockError struct {
	ProductID string
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %s (requested %d)", e.ProductID, e.Requested)
}

// RateLimitedError carries how long the caller should wait
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e *RateLimitedError) Error() string {
	return "too many attempts, please try again later"
}

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrTenantMismatch     = errors.New("tenant schema does not match the authenticated tenant")
	ErrTenantSchemaHeader = errors.New("Tenant-Schema header is required")
)
