package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Etiti27/saas-platform-sub000/internal/domain"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) domain.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUserTx(ctx context.Context, tx *sql.Tx, user *domain.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	if user.Role == "" {
		user.Role = domain.UserRoleStaff
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	query := `
		INSERT INTO public.users (id, email, password_hash, role, tenant_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := tx.ExecContext(ctx, query,
		user.ID,
		user.Email,
		user.PasswordHash,
		user.Role,
		user.TenantID,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", mapPgError(err))
	}
	return nil
}

const userWithTenantQuery = `
	SELECT u.id, u.email, u.password_hash, u.role, u.tenant_id, u.created_at, u.updated_at,
		t.id, t.name, t.schema_name, t.admin_email, t.logo, t.sector, t.start_date, t.created_at, t.updated_at
	FROM public.users u
	JOIN public.tenants t ON t.id = u.tenant_id
`

func (r *userRepository) getUser(ctx context.Context, where string, arg interface{}) (*domain.User, error) {
	var user domain.User
	var tenant domain.Tenant

	err := r.db.QueryRowContext(ctx, userWithTenantQuery+where, arg).Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.TenantID,
		&user.CreatedAt,
		&user.UpdatedAt,
		&tenant.ID,
		&tenant.Name,
		&tenant.SchemaName,
		&tenant.AdminEmail,
		&tenant.Logo,
		&tenant.Sector,
		&tenant.StartDate,
		&tenant.CreatedAt,
		&tenant.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	user.Tenant = &tenant
	return &user, nil
}

// GetUserByEmail loads the user with their tenant, or nil when no user has
// that email. The password hash is only populated when includePassword is set.
func (r *userRepository) GetUserByEmail(ctx context.Context, email string, includePassword bool) (*domain.User, error) {
	user, err := r.getUser(ctx, "WHERE u.email = $1", email)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if !includePassword {
		user.PasswordHash = ""
	}
	return user, nil
}

// GetUserByID returns nil when the id is unknown
func (r *userRepository) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := r.getUser(ctx, "WHERE u.id = $1", id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	user.PasswordHash = ""
	return user, nil
}
