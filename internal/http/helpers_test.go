package http

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Etiti27/saas-platform-sub000/internal/domain"
	"github.com/Etiti27/saas-platform-sub000/internal/domain/mocks"
	"github.com/Etiti27/saas-platform-sub000/internal/http/middleware"
	"github.com/Etiti27/saas-platform-sub000/pkg/cache"
	"github.com/Etiti27/saas-platform-sub000/pkg/logger"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
)

const (
	testToken    = "test-token"
	testSchema   = "acme_x1y2"
	testTenantID = "2b0e7f3c-9c4e-4a8d-8f57-3a1f6f5f2a01"
	testUserID   = "7d9a6c1e-0b2f-4b6e-9f3a-5c8d2e1f0a11"
	testRowID    = "c3a8e2f1-4d5b-4c6a-8e9f-0a1b2c3d4e5f"
)

func testClaims(role domain.UserRole) *domain.AuthClaims {
	return &domain.AuthClaims{
		UserID:       testUserID,
		TenantID:     testTenantID,
		TenantSchema: testSchema,
		Role:         role,
	}
}

// newTestAuth returns middleware that accepts testToken with the given role
func newTestAuth(t *testing.T, ctrl *gomock.Controller, role domain.UserRole) *middleware.AuthConfig {
	t.Helper()
	authSvc := mocks.NewMockAuthService(ctrl)
	authSvc.EXPECT().VerifyToken(gomock.Any(), testToken).Return(testClaims(role), nil).AnyTimes()

	tenants := mocks.NewMockTenantRepository(ctrl)
	tenants.EXPECT().GetTenantByID(gomock.Any(), testTenantID).
		Return(&domain.Tenant{ID: testTenantID, SchemaName: testSchema}, nil).AnyTimes()

	schemas := cache.NewTTL[string, string](time.Minute, time.Minute)
	t.Cleanup(schemas.Stop)
	return middleware.NewAuthMiddleware(authSvc, tenants, schemas, logger.NewTestLogger(t))
}

func tenantRequest(method, target string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Authorization", "Bearer "+testToken)
	req.Header.Set(middleware.TenantSchemaHeader, testSchema)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}
