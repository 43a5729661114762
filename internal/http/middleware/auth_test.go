package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Etiti27/saas-platform-sub000/internal/domain"
	"github.com/Etiti27/saas-platform-sub000/pkg/cache"
	"github.com/Etiti27/saas-platform-sub000/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testTenantID = "6f1c1b9e-5d8a-4f5e-9a57-0c2a3c1d9b11"
	testSchema   = "acme_x1y2"
)

type stubVerifier struct {
	claims *domain.AuthClaims
	err    error
}

func (s *stubVerifier) VerifyToken(_ context.Context, token string) (*domain.AuthClaims, error) {
	if token != "good-token" {
		return nil, domain.ErrUnauthorized
	}
	return s.claims, s.err
}

type stubTenants struct {
	tenants map[string]*domain.Tenant
	err     error
	calls   int32
}

func (s *stubTenants) GetTenantByID(_ context.Context, id string) (*domain.Tenant, error) {
	atomic.AddInt32(&s.calls, 1)
	if s.err != nil {
		return nil, s.err
	}
	tenant, ok := s.tenants[id]
	if !ok {
		return nil, nil
	}
	return tenant, nil
}

func newTestAuth(t *testing.T, tenants *stubTenants) *AuthConfig {
	t.Helper()
	schemas := cache.NewTTL[string, string](time.Minute, time.Minute)
	t.Cleanup(schemas.Stop)
	verifier := &stubVerifier{claims: &domain.AuthClaims{
		UserID:       "user-1",
		TenantID:     testTenantID,
		TenantSchema: testSchema,
		Role:         domain.UserRoleAdmin,
	}}
	return NewAuthMiddleware(verifier, tenants, schemas, logger.NewTestLogger(t))
}

func defaultTenants() *stubTenants {
	return &stubTenants{tenants: map[string]*domain.Tenant{
		testTenantID: {ID: testTenantID, SchemaName: testSchema},
	}}
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRequireAuth(t *testing.T) {
	t.Run("missing authorization header", func(t *testing.T) {
		handler := newTestAuth(t, defaultTenants()).RequireAuth()(okHandler())
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Authorization header is required", decodeError(t, w)["error"])
	})

	t.Run("invalid header format", func(t *testing.T) {
		handler := newTestAuth(t, defaultTenants()).RequireAuth()(okHandler())
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Token good-token")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		handler := newTestAuth(t, defaultTenants()).RequireAuth()(okHandler())
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer forged")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "unauthorized", decodeError(t, w)["code"])
	})

	t.Run("valid token stores claims and caches the tenant", func(t *testing.T) {
		tenants := defaultTenants()
		var got *domain.AuthClaims
		handler := newTestAuth(t, tenants).RequireAuth()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, _ = domain.ClaimsFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		}))

		for i := 0; i < 3; i++ {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set("Authorization", "Bearer good-token")
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			assert.Equal(t, http.StatusOK, w.Code)
		}

		require.NotNil(t, got)
		assert.Equal(t, testSchema, got.TenantSchema)
		assert.Equal(t, int32(1), atomic.LoadInt32(&tenants.calls))
	})

	t.Run("deleted tenant", func(t *testing.T) {
		handler := newTestAuth(t, &stubTenants{tenants: map[string]*domain.Tenant{}}).RequireAuth()(okHandler())
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("renamed schema", func(t *testing.T) {
		tenants := &stubTenants{tenants: map[string]*domain.Tenant{
			testTenantID: {ID: testTenantID, SchemaName: "acme_new1"},
		}}
		handler := newTestAuth(t, tenants).RequireAuth()(okHandler())
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("registry failure", func(t *testing.T) {
		handler := newTestAuth(t, &stubTenants{err: errors.New("connection refused")}).RequireAuth()(okHandler())
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "connection refused")
	})
}

func TestRequireTenant(t *testing.T) {
	newRequest := func(schema string) *http.Request {
		req := httptest.NewRequest(http.MethodGet, "/api/jobs.list", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		if schema != "" {
			req.Header.Set(TenantSchemaHeader, schema)
		}
		return req
	}

	t.Run("missing header", func(t *testing.T) {
		handler := newTestAuth(t, defaultTenants()).RequireTenant()(okHandler())
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, newRequest(""))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "missing_tenant_schema", decodeError(t, w)["code"])
	})

	t.Run("malformed header", func(t *testing.T) {
		handler := newTestAuth(t, defaultTenants()).RequireTenant()(okHandler())
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, newRequest(`acme"; DROP SCHEMA public; --`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "invalid_identifier", decodeError(t, w)["code"])
	})

	t.Run("other tenant's schema", func(t *testing.T) {
		handler := newTestAuth(t, defaultTenants()).RequireTenant()(okHandler())
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, newRequest("globex_ab12"))

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, "tenant_mismatch", decodeError(t, w)["code"])
	})

	t.Run("matching schema", func(t *testing.T) {
		var schema string
		handler := newTestAuth(t, defaultTenants()).RequireTenant()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			schema, _ = TenantSchemaFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		}))
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, newRequest(testSchema))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, testSchema, schema)
	})
}

func TestRequireRole(t *testing.T) {
	handler := RequireRole(domain.UserRoleAdmin)(okHandler())

	t.Run("no claims", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("staff", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req = req.WithContext(context.WithValue(req.Context(), domain.AuthClaimsKey, &domain.AuthClaims{Role: domain.UserRoleStaff}))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req = req.WithContext(context.WithValue(req.Context(), domain.AuthClaimsKey, &domain.AuthClaims{Role: domain.UserRoleAdmin}))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
