package domain

import (
	"context"
	"database/sql"
	"time"
)

//go:generate mockgen -destination mocks/mock_tenant_repository.go -package mocks github.com/Etiti27/saas-platform-sub000/internal/domain TenantRepository
//go:generate mockgen -destination mocks/mock_tenant_service.go -package mocks github.com/Etiti27/saas-platform-sub000/internal/domain TenantService
//go:generate mockgen -destination mocks/mock_schema_provisioner.go -package mocks github.com/Etiti27/saas-platform-sub000/internal/domain SchemaProvisioner

// Tenant is a customer organisation. SchemaName is its PostgreSQL schema and
// does not change after registration.
type Tenant struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	SchemaName string     `json:"schema_name"`
	AdminEmail string     `json:"admin_email"`
	Logo       string     `json:"logo,omitempty"`
	Sector     string     `json:"sector,omitempty"`
	StartDate  *time.Time `json:"start_date,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type RegisterTenantRequest struct {
	BusinessName string `json:"business_name"`
	Sector       string `json:"sector,omitempty"`
	StartDate    *Date  `json:"start_date,omitempty"`
	AdminEmail   string `json:"admin_email"`
	Password     string `json:"password"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Phone        string `json:"phone,omitempty"`
	Currency     string `json:"currency,omitempty"`
}

func (r *RegisterTenantRequest) Validate() error {
	var err error
	if r.BusinessName, err = requireString(r.BusinessName, "business_name", 255); err != nil {
		return err
	}
	if r.Sector, err = optionalString(r.Sector, "sector", 100); err != nil {
		return err
	}
	if r.AdminEmail, err = requireEmail(r.AdminEmail); err != nil {
		return err
	}
	if len(r.Password) < 8 || len(r.Password) > 72 {
		return NewValidationError("password length must be between 8 and 72")
	}
	if r.FirstName, err = requireString(r.FirstName, "first_name", 100); err != nil {
		return err
	}
	if r.LastName, err = requireString(r.LastName, "last_name", 100); err != nil {
		return err
	}
	if r.Phone, err = optionalString(r.Phone, "phone", 50); err != nil {
		return err
	}
	if r.Currency == "" {
		r.Currency = DefaultCurrency
	}
	if r.Currency, err = normalizeCurrency(r.Currency); err != nil {
		return err
	}
	return nil
}

type RegisterTenantResponse struct {
	Tenant   *Tenant   `json:"tenant"`
	User     *User     `json:"user"`
	Employee *Employee `json:"employee"`
}

// UpdateTenantRequest is a partial update; SchemaName is only honoured with AllowSchemaRename
type UpdateTenantRequest struct {
	Name              *string `json:"name,omitempty"`
	Sector            *string `json:"sector,omitempty"`
	StartDate         *Date   `json:"start_date,omitempty"`
	AdminEmail        *string `json:"admin_email,omitempty"`
	SchemaName        *string `json:"schema_name,omitempty"`
	AllowSchemaRename bool    `json:"allow_schema_rename,omitempty"`
}

func (r *UpdateTenantRequest) Patch() (Patch, error) {
	patch := Patch{}
	if r.Name != nil {
		v, err := requireString(*r.Name, "name", 255)
		if err != nil {
			return nil, err
		}
		patch["name"] = v
	}
	if r.Sector != nil {
		v, err := optionalString(*r.Sector, "sector", 100)
		if err != nil {
			return nil, err
		}
		patch["sector"] = v
	}
	if r.StartDate != nil {
		patch["start_date"] = r.StartDate.Ptr()
	}
	if r.AdminEmail != nil {
		v, err := requireEmail(*r.AdminEmail)
		if err != nil {
			return nil, err
		}
		patch["admin_email"] = v
	}
	if r.SchemaName != nil {
		patch["schema_name"] = *r.SchemaName
	}
	if len(patch) == 0 {
		return nil, NewValidationError("no fields to update")
	}
	return patch, nil
}

// ErrSchemaRenameNotAllowed is returned when an update touches schema_name without the explicit flag
var ErrSchemaRenameNotAllowed = NewValidationError("schema_name cannot be changed")

// TenantRepository stores tenants in public.tenants. It never switches search_path.
type TenantRepository interface {
	WithTransaction(ctx context.Context, fn func(*sql.Tx) error) error
	CreateTenantTx(ctx context.Context, tx *sql.Tx, tenant *Tenant) error
	GetTenantByID(ctx context.Context, id string) (*Tenant, error)
	UpdateTenant(ctx context.Context, id string, patch Patch, allowSchemaRename bool) (*Tenant, error)
	DeleteTenant(ctx context.Context, id string) error
	ListSchemaNames(ctx context.Context) ([]string, error)
}

// SchemaProvisioner creates a tenant schema and its tables idempotently
type SchemaProvisioner interface {
	ProvisionTenantSchema(ctx context.Context, schemaName string) error
	ProvisionAll(ctx context.Context, schemaNames []string) error
}

type TenantService interface {
	Register(ctx context.Context, req *RegisterTenantRequest) (*RegisterTenantResponse, error)
	GetTenant(ctx context.Context, tenantID string) (*Tenant, error)
	UpdateTenant(ctx context.Context, tenantID string, req *UpdateTenantRequest) (*Tenant, error)
	UploadLogo(ctx context.Context, tenantID string, filename string, data []byte) (*Tenant, error)
	ReconcileSchemas(ctx context.Context) error
}
