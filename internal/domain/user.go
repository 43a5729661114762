package domain

import (
	"context"
	"database/sql"
	"time"
)

//go:generate mockgen -destination mocks/mock_user_repository.go -package mocks github.com/Etiti27/saas-platform-sub000/internal/domain UserRepository
//go:generate mockgen -destination mocks/mock_auth_service.go -package mocks github.com/Etiti27/saas-platform-sub000/internal/domain AuthService

type contextKey string

const (
	UserIDKey       contextKey = "user_id"
	AuthClaimsKey   contextKey = "auth_claims"
	TenantSchemaKey contextKey = "tenant_schema"
)

type UserRole string

const (
	UserRoleAdmin   UserRole = "admin"
	UserRoleManager UserRole = "manager"
	UserRoleStaff   UserRole = "staff"
)

// User lives in public.users and belongs to exactly one tenant
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	TenantID     string    `json:"tenant_id"`
	Tenant       *Tenant   `json:"tenant,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var err error
	if r.Email, err = requireEmail(r.Email); err != nil {
		return err
	}
	if r.Password == "" {
		return NewValidationError("password is required")
	}
	return nil
}

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      *User     `json:"user"`
	Tenant    *Tenant   `json:"tenant"`
	Employee  *Employee `json:"employee,omitempty"`
}

// AuthClaims is what a verified token tells us about the caller
type AuthClaims struct {
	UserID       string   `json:"user_id"`
	TenantID     string   `json:"tenant_id"`
	TenantSchema string   `json:"tenant_schema"`
	Role         UserRole `json:"role"`
}

// ClaimsFromContext returns the claims stored by the auth middleware
func ClaimsFromContext(ctx context.Context) (*AuthClaims, bool) {
	claims, ok := ctx.Value(AuthClaimsKey).(*AuthClaims)
	return claims, ok
}

// UserRepository stores users in public.users
type UserRepository interface {
	CreateUserTx(ctx context.Context, tx *sql.Tx, user *User) error
	GetUserByEmail(ctx context.Context, email string, includePassword bool) (*User, error)
	GetUserByID(ctx context.Context, id string) (*User, error)
}

type AuthService interface {
	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error)
	VerifyToken(ctx context.Context, token string) (*AuthClaims, error)
}
