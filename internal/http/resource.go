package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Etiti27/saas-platform-sub000/internal/domain"
	"github.com/Etiti27/saas-platform-sub000/internal/http/middleware"
	"github.com/Etiti27/saas-platform-sub000/pkg/logger"
)

// resourceEndpoints binds one tenant entity's service methods to the
// /api/<name>.list|get|create|update|delete routes. C and U are the create
// and update request bodies.
type resourceEndpoints[T any, C any, U any] struct {
	name   string
	entity string
	logger logger.Logger

	create func(ctx context.Context, schema string, req *C) (*T, error)
	get    func(ctx context.Context, schema string, id string) (*T, error)
	list   func(ctx context.Context, schema string, params domain.ListParams) (*domain.ListResult[T], error)
	update func(ctx context.Context, schema string, req *U) (*T, error)
	remove func(ctx context.Context, schema string, id string) (bool, error)
}

func (e *resourceEndpoints[T, C, U]) register(mux *http.ServeMux, requireTenant func(http.Handler) http.Handler) {
	prefix := "/api/" + e.name
	mux.Handle(prefix+".list", requireTenant(http.HandlerFunc(e.handleList)))
	mux.Handle(prefix+".get", requireTenant(http.HandlerFunc(e.handleGet)))
	mux.Handle(prefix+".create", requireTenant(http.HandlerFunc(e.handleCreate)))
	mux.Handle(prefix+".update", requireTenant(http.HandlerFunc(e.handleUpdate)))
	mux.Handle(prefix+".delete", requireTenant(http.HandlerFunc(e.handleDelete)))
}

func (e *resourceEndpoints[T, C, U]) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	schema, ok := tenantSchema(w, r)
	if !ok {
		return
	}

	var params domain.ListParams
	if err := params.FromURLParams(r.URL.Query()); err != nil {
		writeServiceError(w, e.logger, "Failed to list "+e.name, err)
		return
	}

	result, err := e.list(r.Context(), schema, params)
	if err != nil {
		writeServiceError(w, e.logger, "Failed to list "+e.name, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (e *resourceEndpoints[T, C, U]) handleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	schema, ok := tenantSchema(w, r)
	if !ok {
		return
	}

	req := domain.GetByIDRequest{ID: r.URL.Query().Get("id")}
	if err := req.Validate(); err != nil {
		writeServiceError(w, e.logger, "Failed to get "+e.entity, err)
		return
	}

	item, err := e.get(r.Context(), schema, req.ID)
	if err != nil {
		writeServiceError(w, e.logger, "Failed to get "+e.entity, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		e.entity: item,
	})
}

func (e *resourceEndpoints[T, C, U]) handleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	schema, ok := tenantSchema(w, r)
	if !ok {
		return
	}

	req := new(C)
	if !decodeJSON(w, r, req) {
		return
	}

	item, err := e.create(r.Context(), schema, req)
	if err != nil {
		writeServiceError(w, e.logger, "Failed to create "+e.entity, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		e.entity: item,
	})
}

func (e *resourceEndpoints[T, C, U]) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	schema, ok := tenantSchema(w, r)
	if !ok {
		return
	}

	req := new(U)
	if !decodeJSON(w, r, req) {
		return
	}

	item, err := e.update(r.Context(), schema, req)
	if err != nil {
		writeServiceError(w, e.logger, "Failed to update "+e.entity, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		e.entity: item,
	})
}

func (e *resourceEndpoints[T, C, U]) handleDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	schema, ok := tenantSchema(w, r)
	if !ok {
		return
	}

	var req domain.GetByIDRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		writeServiceError(w, e.logger, "Failed to delete "+e.entity, err)
		return
	}

	deleted, err := e.remove(r.Context(), schema, req.ID)
	if err != nil {
		writeServiceError(w, e.logger, "Failed to delete "+e.entity, err)
		return
	}
	if !deleted {
		writeErrorCode(w, http.StatusNotFound, CodeNotFound, fmt.Sprintf("%s not found", e.entity))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
	})
}

// tenantSchema reads the schema placed in the context by RequireTenantSchema
func tenantSchema(w http.ResponseWriter, r *http.Request) (string, bool) {
	schema, ok := middleware.TenantSchemaFromContext(r.Context())
	if !ok {
		writeErrorCode(w, http.StatusBadRequest, "missing_tenant_schema", domain.ErrTenantSchemaHeader.Error())
		return "", false
	}
	return schema, true
}
