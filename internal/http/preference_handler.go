package http

import (
	"net/http"

	"github.com/Etiti27/saas-platform-sub000/internal/domain"
	"github.com/Etiti27/saas-platform-sub000/internal/http/middleware"
	"github.com/Etiti27/saas-platform-sub000/pkg/logger"
)

// PreferenceHandler serves the caller's own preference document
type PreferenceHandler struct {
	service domain.PreferenceService
	logger  logger.Logger
}

func NewPreferenceHandler(service domain.PreferenceService, logger logger.Logger) *PreferenceHandler {
	return &PreferenceHandler{service: service, logger: logger}
}

func (h *PreferenceHandler) RegisterRoutes(mux *http.ServeMux, auth *middleware.AuthConfig) {
	requireTenant := auth.RequireTenant()
	mux.Handle("/api/preferences.get", requireTenant(http.HandlerFunc(h.handleGet)))
	mux.Handle("/api/preferences.update", requireTenant(http.HandlerFunc(h.handleUpdate)))
}

func (h *PreferenceHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	schema, ok := tenantSchema(w, r)
	if !ok {
		return
	}
	claims, _ := domain.ClaimsFromContext(r.Context())

	pref, err := h.service.GetPreference(r.Context(), schema, claims.UserID, r.URL.Query().Get("path"))
	if err != nil {
		writeServiceError(w, h.logger, "Failed to get preferences", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"preference": pref,
	})
}

func (h *PreferenceHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	schema, ok := tenantSchema(w, r)
	if !ok {
		return
	}
	claims, _ := domain.ClaimsFromContext(r.Context())

	var req domain.UpdatePreferenceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.service.UpdatePreference(r.Context(), schema, claims.UserID, &req)
	if err != nil {
		writeServiceError(w, h.logger, "Failed to update preferences", err)
		return
	}

	if result.Conflict {
		writeJSON(w, http.StatusConflict, map[string]interface{}{
			"error":           "preference was modified concurrently",
			"code":            CodeConflict,
			"conflict":        true,
			"current_version": result.CurrentVersion,
			"preference":      result.Value,
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"updated":         true,
		"current_version": result.CurrentVersion,
		"preference":      result.Value,
	})
}
