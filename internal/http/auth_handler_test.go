package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Etiti27/saas-platform-sub000/internal/domain"
	"github.com/Etiti27/saas-platform-sub000/internal/domain/mocks"
	"github.com/Etiti27/saas-platform-sub000/pkg/logger"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
)

func TestAuthHandler_Login(t *testing.T) {
	setup := func(t *testing.T) (*mocks.MockAuthService, *http.ServeMux) {
		ctrl := gomock.NewController(t)
		svc := mocks.NewMockAuthService(ctrl)
		mux := http.NewServeMux()
		NewAuthHandler(svc, logger.NewTestLogger(t)).RegisterRoutes(mux)
		return svc, mux
	}
	payload := `{"email":"owner@acme.test","password":"s3cret-pass"}`

	t.Run("success", func(t *testing.T) {
		svc, mux := setup(t)
		svc.EXPECT().Login(gomock.Any(), &domain.LoginRequest{Email: "owner@acme.test", Password: "s3cret-pass"}).
			Return(&domain.LoginResponse{Token: "jwt", Tenant: &domain.Tenant{SchemaName: testSchema}}, nil)

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/auth.login", strings.NewReader(payload)))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "jwt", decodeBody(t, w)["token"])
	})

	t.Run("bad credentials", func(t *testing.T) {
		svc, mux := setup(t)
		svc.EXPECT().Login(gomock.Any(), gomock.Any()).Return(nil, domain.ErrInvalidCredentials)

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/auth.login", strings.NewReader(payload)))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "invalid email or password", decodeBody(t, w)["error"])
	})

	t.Run("rate limited", func(t *testing.T) {
		svc, mux := setup(t)
		svc.EXPECT().Login(gomock.Any(), gomock.Any()).Return(nil, &domain.RateLimitedError{RetryAfter: 30 * time.Second})

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/auth.login", strings.NewReader(payload)))

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "30", w.Header().Get("Retry-After"))
	})

	t.Run("method not allowed", func(t *testing.T) {
		_, mux := setup(t)

		w := httptest.NewRecorder()
		mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/auth.login", nil))

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}
