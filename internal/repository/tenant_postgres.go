package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/Etiti27/saas-platform-sub000/internal/domain"
	"github.com/Etiti27/saas-platform-sub000/internal/tenancy"
)

var tenantColumns = []string{"id", "name", "schema_name", "admin_email", "logo", "sector", "start_date", "created_at", "updated_at"}

var tenantPatchColumns = map[string]bool{
	"name":        true,
	"sector":      true,
	"start_date":  true,
	"admin_email": true,
	"logo":        true,
	"schema_name": true,
}

// tenantRepository works on public.tenants with the pool's default search_path
type tenantRepository struct {
	db *sql.DB
}

func NewTenantRepository(db *sql.DB) domain.TenantRepository {
	return &tenantRepository{db: db}
}

func scanTenant(row rowScanner) (*domain.Tenant, error) {
	var t domain.Tenant
	err := row.Scan(&t.ID, &t.Name, &t.SchemaName, &t.AdminEmail, &t.Logo, &t.Sector, &t.StartDate, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *tenantRepository) WithTransaction(ctx context.Context, fn func(*sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func (r *tenantRepository) CreateTenantTx(ctx context.Context, tx *sql.Tx, tenant *domain.Tenant) error {
	if _, err := tenancy.ValidateSchemaName(tenant.SchemaName); err != nil {
		return err
	}
	if tenant.ID == "" {
		tenant.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	tenant.CreatedAt = now
	tenant.UpdatedAt = now

	query, args, err := psql.Insert("public.tenants").
		Columns(tenantColumns...).
		Values(tenant.ID, tenant.Name, tenant.SchemaName, tenant.AdminEmail, tenant.Logo, tenant.Sector, tenant.StartDate, tenant.CreatedAt, tenant.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build query: %w", err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to create tenant: %w", mapPgError(err))
	}
	return nil
}

// GetTenantByID returns nil when the id is unknown
func (r *tenantRepository) GetTenantByID(ctx context.Context, id string) (*domain.Tenant, error) {
	query, args, err := psql.Select(tenantColumns...).
		From("public.tenants").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	tenant, err := scanTenant(r.db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}
	return tenant, nil
}

// UpdateTenant applies patch. A schema_name change is refused unless
// allowSchemaRename is set, in which case the schema itself is renamed in the
// same transaction as the registry row.
func (r *tenantRepository) UpdateTenant(ctx context.Context, id string, patch domain.Patch, allowSchemaRename bool) (*domain.Tenant, error) {
	if len(patch) == 0 {
		return nil, domain.NewValidationError("no fields to update")
	}
	for column := range patch {
		if !tenantPatchColumns[column] {
			return nil, fmt.Errorf("cannot update column %s on tenants", column)
		}
	}

	var newSchema tenancy.Identifier
	if raw, ok := patch["schema_name"]; ok {
		if !allowSchemaRename {
			return nil, domain.ErrSchemaRenameNotAllowed
		}
		name, _ := raw.(string)
		schema, err := tenancy.ValidateSchemaName(name)
		if err != nil {
			return nil, err
		}
		newSchema = schema
	}

	var updated *domain.Tenant
	err := r.WithTransaction(ctx, func(tx *sql.Tx) error {
		if newSchema != "" {
			var current string
			err := tx.QueryRowContext(ctx, `SELECT schema_name FROM public.tenants WHERE id = $1 FOR UPDATE`, id).Scan(&current)
			if err == sql.ErrNoRows {
				return &domain.ErrNotFound{Entity: "tenant", ID: id}
			}
			if err != nil {
				return fmt.Errorf("failed to lock tenant: %w", err)
			}
			oldSchema, err := tenancy.ValidateSchemaName(current)
			if err != nil {
				return err
			}
			if oldSchema != newSchema {
				stmt := fmt.Sprintf("ALTER SCHEMA %s RENAME TO %s", oldSchema.Quoted(), newSchema.Quoted())
				if _, err := tx.ExecContext(ctx, stmt); err != nil {
					return fmt.Errorf("failed to rename tenant schema: %w", mapPgError(err))
				}
			}
		}

		values := make(map[string]interface{}, len(patch)+1)
		for column, value := range patch {
			values[column] = value
		}
		values["updated_at"] = time.Now().UTC()

		query, args, err := psql.Update("public.tenants").
			SetMap(values).
			Where(sq.Eq{"id": id}).
			Suffix("RETURNING " + strings.Join(tenantColumns, ", ")).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build query: %w", err)
		}

		updated, err = scanTenant(tx.QueryRowContext(ctx, query, args...))
		if err == sql.ErrNoRows {
			return &domain.ErrNotFound{Entity: "tenant", ID: id}
		}
		if err != nil {
			return fmt.Errorf("failed to update tenant: %w", mapPgError(err))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteTenant removes the registry row; users go with it by cascade. The
// schema is left to the caller.
func (r *tenantRepository) DeleteTenant(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM public.tenants WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tenant: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return &domain.ErrNotFound{Entity: "tenant", ID: id}
	}
	return nil
}

func (r *tenantRepository) ListSchemaNames(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT schema_name FROM public.tenants ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tenant schemas: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan tenant schema: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tenant rows: %w", err)
	}
	return names, nil
}
