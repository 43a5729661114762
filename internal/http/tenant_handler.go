package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/Etiti27/saas-platform-sub000/internal/domain"
	"github.com/Etiti27/saas-platform-sub000/internal/http/middleware"
	"github.com/Etiti27/saas-platform-sub000/pkg/logger"
)

// logoFormField is the multipart field carrying the image
const logoFormField = "logo"

type TenantHandler struct {
	service      domain.TenantService
	logger       logger.Logger
	maxLogoBytes int64
}

func NewTenantHandler(service domain.TenantService, logger logger.Logger, maxLogoBytes int64) *TenantHandler {
	return &TenantHandler{
		service:      service,
		logger:       logger,
		maxLogoBytes: maxLogoBytes,
	}
}

func (h *TenantHandler) RegisterRoutes(mux *http.ServeMux, auth *middleware.AuthConfig) {
	requireAuth := auth.RequireAuth()
	requireAdmin := func(next http.Handler) http.Handler {
		return requireAuth(middleware.RequireRole(domain.UserRoleAdmin)(next))
	}

	mux.HandleFunc("/api/tenants.register", h.handleRegister)
	mux.Handle("/api/tenants.get", requireAuth(http.HandlerFunc(h.handleGet)))
	mux.Handle("/api/tenants.update", requireAdmin(http.HandlerFunc(h.handleUpdate)))
	mux.Handle("/api/tenants.uploadLogo", requireAdmin(http.HandlerFunc(h.handleUploadLogo)))
}

func (h *TenantHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.RegisterTenantRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.service.Register(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.logger, "Failed to register tenant", err)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (h *TenantHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	claims, ok := domain.ClaimsFromContext(r.Context())
	if !ok {
		WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	tenant, err := h.service.GetTenant(r.Context(), claims.TenantID)
	if err != nil {
		writeServiceError(w, h.logger, "Failed to get tenant", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"tenant": tenant,
	})
}

func (h *TenantHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	claims, ok := domain.ClaimsFromContext(r.Context())
	if !ok {
		WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req domain.UpdateTenantRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tenant, err := h.service.UpdateTenant(r.Context(), claims.TenantID, &req)
	if err != nil {
		writeServiceError(w, h.logger, "Failed to update tenant", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"tenant": tenant,
	})
}

func (h *TenantHandler) handleUploadLogo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	claims, ok := domain.ClaimsFromContext(r.Context())
	if !ok {
		WriteJSONError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	// room for the multipart envelope around the file
	r.Body = http.MaxBytesReader(w, r.Body, h.maxLogoBytes+64<<10)
	if err := r.ParseMultipartForm(h.maxLogoBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeErrorCode(w, http.StatusRequestEntityTooLarge, CodeValidation, "logo is too large")
			return
		}
		WriteJSONError(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	file, header, err := r.FormFile(logoFormField)
	if err != nil {
		WriteJSONError(w, "logo file is required", http.StatusBadRequest)
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, h.maxLogoBytes+1))
	if err != nil {
		WriteJSONError(w, "Failed to read logo", http.StatusBadRequest)
		return
	}

	tenant, err := h.service.UploadLogo(r.Context(), claims.TenantID, header.Filename, data)
	if err != nil {
		writeServiceError(w, h.logger, "Failed to upload logo", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"tenant": tenant,
	})
}
