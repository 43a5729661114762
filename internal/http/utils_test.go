package http

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Etiti27/saas-platform-sub000/internal/domain"
	"github.com/Etiti27/saas-platform-sub000/pkg/logger"
	"github.com/stretchr/testify/assert"
)

func TestWriteJSONError(t *testing.T) {
	testCases := []struct {
		name       string
		statusCode int
		code       string
	}{
		{name: "bad request", statusCode: http.StatusBadRequest, code: CodeValidation},
		{name: "unauthorized", statusCode: http.StatusUnauthorized, code: CodeUnauthorized},
		{name: "method not allowed", statusCode: http.StatusMethodNotAllowed, code: CodeMethodNotAllowed},
		{name: "internal", statusCode: http.StatusInternalServerError, code: CodeInternal},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			WriteJSONError(w, "something happened", tc.statusCode)

			assert.Equal(t, tc.statusCode, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			body := decodeBody(t, w)
			assert.Equal(t, "something happened", body["error"])
			assert.Equal(t, tc.code, body["code"])
		})
	}
}

func TestWriteServiceError(t *testing.T) {
	testCases := []struct {
		name       string
		err        error
		statusCode int
		code       string
	}{
		{
			name:       "invalid identifier",
			err:        &domain.InvalidIdentifierError{Value: "bad-col", Reason: "unsupported sort column"},
			statusCode: http.StatusBadRequest,
			code:       CodeInvalidIdentifier,
		},
		{
			name:       "validation",
			err:        domain.NewValidationError("title is required"),
			statusCode: http.StatusBadRequest,
			code:       CodeValidation,
		},
		{
			name:       "schema rename",
			err:        domain.ErrSchemaRenameNotAllowed,
			statusCode: http.StatusBadRequest,
			code:       CodeValidation,
		},
		{
			name:       "wrapped unique violation",
			err:        fmt.Errorf("failed to create product: %w", &domain.UniqueViolationError{Field: "sku"}),
			statusCode: http.StatusConflict,
			code:       CodeUniqueViolation,
		},
		{
			name:       "foreign key",
			err:        &domain.ForeignKeyViolationError{Table: "orders"},
			statusCode: http.StatusConflict,
			code:       CodeForeignKeyViolation,
		},
		{
			name:       "not found",
			err:        &domain.ErrNotFound{Entity: "job", ID: testRowID},
			statusCode: http.StatusNotFound,
			code:       CodeNotFound,
		},
		{
			name:       "insufficient stock",
			err:        &domain.InsufficientStockError{ProductID: testRowID, Requested: 3},
			statusCode: http.StatusConflict,
			code:       CodeInsufficientStock,
		},
		{
			name:       "provisioning",
			err:        &domain.ProvisioningError{Schema: testSchema, Step: "create schema", Err: errors.New("permission denied")},
			statusCode: http.StatusInternalServerError,
			code:       CodeProvisioningFailed,
		},
		{
			name:       "invalid credentials",
			err:        domain.ErrInvalidCredentials,
			statusCode: http.StatusUnauthorized,
			code:       CodeUnauthorized,
		},
		{
			name:       "tenant mismatch",
			err:        domain.ErrTenantMismatch,
			statusCode: http.StatusForbidden,
			code:       CodeForbidden,
		},
		{
			name:       "unknown",
			err:        errors.New(`pq: relation "jobs" does not exist`),
			statusCode: http.StatusInternalServerError,
			code:       CodeInternal,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			writeServiceError(w, logger.NewTestLogger(t), "Failed to do thing", tc.err)

			assert.Equal(t, tc.statusCode, w.Code)
			assert.NotContains(t, w.Body.String(), "pq:")
			assert.NotContains(t, w.Body.String(), "permission denied")
			body := decodeBody(t, w)
			assert.Equal(t, tc.code, body["code"])
		})
	}
}

func TestWriteServiceErrorRateLimited(t *testing.T) {
	w := httptest.NewRecorder()

	writeServiceError(w, logger.NewTestLogger(t), "Failed to log in", &domain.RateLimitedError{RetryAfter: 1500 * time.Millisecond})

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "2", w.Header().Get("Retry-After"))
}

func TestWriteServiceErrorUniqueField(t *testing.T) {
	w := httptest.NewRecorder()

	writeServiceError(w, logger.NewTestLogger(t), "Failed to register tenant", &domain.UniqueViolationError{Field: "admin_email"})

	body := decodeBody(t, w)
	assert.Equal(t, "admin_email", body["field"])
	assert.Equal(t, "admin_email already exists", body["error"])
}
