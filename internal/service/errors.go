package service

import (
	"errors"

	"github.com/Etiti27/saas-platform-sub000/internal/domain"
	"github.com/Etiti27/saas-platform-sub000/pkg/logger"
)

// isCallerError reports whether err is a domain outcome the caller caused,
// as opposed to an infrastructure failure worth logging
func isCallerError(err error) bool {
	var (
		invalid    *domain.InvalidIdentifierError
		validation domain.ValidationError
		unique     *domain.UniqueViolationError
		fk         *domain.ForeignKeyViolationError
		notFound   *domain.ErrNotFound
		stock      *domain.InsufficientStockError
		limited    *domain.RateLimitedError
	)
	switch {
	case errors.As(err, &invalid),
		errors.As(err, &validation),
		errors.As(err, &unique),
		errors.As(err, &fk),
		errors.As(err, &notFound),
		errors.As(err, &stock),
		errors.As(err, &limited),
		errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrUnauthorized):
		return true
	}
	return false
}

// logFailure logs unexpected errors with the tenant and entity attached
func logFailure(log logger.Logger, schema string, msg string, err error, fields map[string]interface{}) {
	if isCallerError(err) {
		return
	}
	all := map[string]interface{}{
		"tenant_schema": schema,
		"error":         err.Error(),
	}
	for k, v := range fields {
		all[k] = v
	}
	log.WithFields(all).Error(msg)
}
