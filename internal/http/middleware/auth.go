package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/Etiti27/saas-platform-sub000/internal/domain"
	"github.com/Etiti27/saas-platform-sub000/internal/tenancy"
	"github.com/Etiti27/saas-platform-sub000/pkg/cache"
	"github.com/Etiti27/saas-platform-sub000/pkg/logger"
)

// TenantSchemaHeader names the schema a tenant-scoped request targets
const TenantSchemaHeader = "Tenant-Schema"

// TokenVerifier checks a bearer token and returns its claims
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*domain.AuthClaims, error)
}

// TenantLookup reads a tenant from the registry
type TenantLookup interface {
	GetTenantByID(ctx context.Context, id string) (*domain.Tenant, error)
}

// AuthConfig holds what the auth middleware needs. Schemas caches
// tenant id -> schema name so the registry is not read on every request.
type AuthConfig struct {
	Verifier TokenVerifier
	Tenants  TenantLookup
	Schemas  *cache.TTL[string, string]
	Logger   logger.Logger
}

func NewAuthMiddleware(verifier TokenVerifier, tenants TenantLookup, schemas *cache.TTL[string, string], log logger.Logger) *AuthConfig {
	return &AuthConfig{
		Verifier: verifier,
		Tenants:  tenants,
		Schemas:  schemas,
		Logger:   log,
	}
}

// RequireAuth verifies the bearer token, confirms the tenant still owns the
// schema named in the claims and stores the claims in the request context
func (ac *AuthConfig) RequireAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeError(w, http.StatusUnauthorized, "unauthorized", "Authorization header is required")
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
				writeError(w, http.StatusUnauthorized, "unauthorized", "Invalid authorization header format")
				return
			}

			claims, err := ac.Verifier.VerifyToken(r.Context(), parts[1])
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthorized", "Invalid token")
				return
			}

			schema, err := ac.tenantSchema(r.Context(), claims.TenantID)
			if err != nil {
				var notFound *domain.ErrNotFound
				if errors.As(err, &notFound) {
					writeError(w, http.StatusUnauthorized, "unauthorized", "Tenant no longer exists")
					return
				}
				ac.Logger.WithFields(map[string]interface{}{
					"error":     err.Error(),
					"tenant_id": claims.TenantID,
				}).Error("Failed to look up tenant")
				writeError(w, http.StatusInternalServerError, "internal_error", "Failed to authenticate")
				return
			}
			if schema != claims.TenantSchema {
				writeError(w, http.StatusUnauthorized, "unauthorized", "Token no longer matches the tenant")
				return
			}

			ctx := context.WithValue(r.Context(), domain.AuthClaimsKey, claims)
			ctx = context.WithValue(ctx, domain.UserIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireTenantSchema must run after RequireAuth. The Tenant-Schema header is
// mandatory and must name the caller's own schema.
func (ac *AuthConfig) RequireTenantSchema() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := domain.ClaimsFromContext(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "unauthorized", "unauthorized")
				return
			}

			header := strings.TrimSpace(r.Header.Get(TenantSchemaHeader))
			if header == "" {
				writeError(w, http.StatusBadRequest, "missing_tenant_schema", domain.ErrTenantSchemaHeader.Error())
				return
			}
			schema, err := tenancy.ValidateSchemaName(header)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_identifier", err.Error())
				return
			}
			if schema.String() != claims.TenantSchema {
				writeError(w, http.StatusForbidden, "tenant_mismatch", domain.ErrTenantMismatch.Error())
				return
			}

			ctx := context.WithValue(r.Context(), domain.TenantSchemaKey, schema.String())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireTenant chains RequireAuth and RequireTenantSchema
func (ac *AuthConfig) RequireTenant() func(http.Handler) http.Handler {
	requireAuth := ac.RequireAuth()
	requireSchema := ac.RequireTenantSchema()
	return func(next http.Handler) http.Handler {
		return requireAuth(requireSchema(next))
	}
}

// RequireRole must run after RequireAuth
func RequireRole(role domain.UserRole) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := domain.ClaimsFromContext(r.Context())
			if !ok || claims.Role != role {
				writeError(w, http.StatusForbidden, "forbidden", "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// TenantSchemaFromContext returns the schema stored by RequireTenantSchema
func TenantSchemaFromContext(ctx context.Context) (string, bool) {
	schema, ok := ctx.Value(domain.TenantSchemaKey).(string)
	return schema, ok && schema != ""
}

func (ac *AuthConfig) tenantSchema(ctx context.Context, tenantID string) (string, error) {
	return ac.Schemas.GetOrLoad(tenantID, func() (string, error) {
		tenant, err := ac.Tenants.GetTenantByID(ctx, tenantID)
		if err != nil {
			return "", err
		}
		if tenant == nil {
			return "", &domain.ErrNotFound{Entity: "tenant", ID: tenantID}
		}
		return tenant.SchemaName, nil
	})
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error": message,
		"code":  code,
	})
}
