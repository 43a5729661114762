package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/Etiti27/saas-platform-sub000/internal/domain"
	"github.com/Etiti27/saas-platform-sub000/pkg/logger"
)

// Machine readable error codes returned next to the message
const (
	CodeInvalidIdentifier   = "invalid_identifier"
	CodeValidation          = "validation_error"
	CodeUniqueViolation     = "unique_violation"
	CodeForeignKeyViolation = "foreign_key_violation"
	CodeNotFound            = "not_found"
	CodeConflict            = "conflict"
	CodeInsufficientStock   = "insufficient_stock"
	CodeProvisioningFailed  = "provisioning_failed"
	CodeUnauthorized        = "unauthorized"
	CodeForbidden           = "forbidden"
	CodeRateLimited         = "rate_limited"
	CodeMethodNotAllowed    = "method_not_allowed"
	CodeInternal            = "internal_error"
)

// maxBodyBytes bounds JSON request bodies; logo uploads have their own limit
const maxBodyBytes = 1 << 20

// WriteJSONError writes a JSON error response with the given message and status code.
// The body is {"error": message, "code": code} where code is derived from the status.
func WriteJSONError(w http.ResponseWriter, message string, statusCode int) {
	writeErrorCode(w, statusCode, codeForStatus(statusCode), message)
}

func writeErrorCode(w http.ResponseWriter, statusCode int, code string, message string) {
	writeJSON(w, statusCode, map[string]string{
		"error": message,
		"code":  code,
	})
}

// writeJSON writes a JSON response with the given status code and data.
// It sets the Content-Type header to application/json.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return CodeValidation
	case http.StatusUnauthorized:
		return CodeUnauthorized
	case http.StatusForbidden:
		return CodeForbidden
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusMethodNotAllowed:
		return CodeMethodNotAllowed
	case http.StatusConflict:
		return CodeConflict
	case http.StatusTooManyRequests:
		return CodeRateLimited
	default:
		return CodeInternal
	}
}

// writeServiceError maps a service error onto a status and code. Anything
// unrecognised is logged and answered with a generic 500 so driver messages
// never reach the client.
func writeServiceError(w http.ResponseWriter, log logger.Logger, msg string, err error) {
	var (
		invalidIdent *domain.InvalidIdentifierError
		validation   domain.ValidationError
		unique       *domain.UniqueViolationError
		foreignKey   *domain.ForeignKeyViolationError
		notFound     *domain.ErrNotFound
		stock        *domain.InsufficientStockError
		provisioning *domain.ProvisioningError
		limited      *domain.RateLimitedError
	)

	switch {
	case errors.As(err, &invalidIdent):
		writeErrorCode(w, http.StatusBadRequest, CodeInvalidIdentifier, invalidIdent.Error())
	case errors.As(err, &validation):
		writeErrorCode(w, http.StatusBadRequest, CodeValidation, validation.Message)
	case errors.As(err, &unique):
		writeJSON(w, http.StatusConflict, map[string]string{
			"error": unique.Error(),
			"code":  CodeUniqueViolation,
			"field": unique.Field,
		})
	case errors.As(err, &foreignKey):
		writeErrorCode(w, http.StatusConflict, CodeForeignKeyViolation, foreignKey.Error())
	case errors.As(err, &notFound):
		writeErrorCode(w, http.StatusNotFound, CodeNotFound, fmt.Sprintf("%s not found", notFound.Entity))
	case errors.As(err, &stock):
		writeErrorCode(w, http.StatusConflict, CodeInsufficientStock, stock.Error())
	case errors.As(err, &limited):
		seconds := int(math.Ceil(limited.RetryAfter.Seconds()))
		if seconds < 1 {
			seconds = 1
		}
		w.Header().Set("Retry-After", strconv.Itoa(seconds))
		writeErrorCode(w, http.StatusTooManyRequests, CodeRateLimited, limited.Error())
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeErrorCode(w, http.StatusUnauthorized, CodeUnauthorized, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeErrorCode(w, http.StatusUnauthorized, CodeUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrTenantMismatch):
		writeErrorCode(w, http.StatusForbidden, CodeForbidden, err.Error())
	case errors.As(err, &provisioning):
		log.WithFields(map[string]interface{}{
			"error":  err.Error(),
			"schema": provisioning.Schema,
			"step":   provisioning.Step,
		}).Error(msg)
		writeErrorCode(w, http.StatusInternalServerError, CodeProvisioningFailed, "tenant provisioning failed")
	default:
		log.WithField("error", err.Error()).Error(msg)
		writeErrorCode(w, http.StatusInternalServerError, CodeInternal, msg)
	}
}

// decodeJSON reads a bounded JSON body into v
func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return false
	}
	return true
}
