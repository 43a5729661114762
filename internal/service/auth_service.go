package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Etiti27/saas-platform-sub000/internal/domain"
	"github.com/Etiti27/saas-platform-sub000/internal/tenancy"
	"github.com/Etiti27/saas-platform-sub000/pkg/crypto"
	"github.com/Etiti27/saas-platform-sub000/pkg/logger"
	"github.com/Etiti27/saas-platform-sub000/pkg/ratelimiter"
)

const (
	loginRateNamespace = "login"
	tokenIssuer        = "saas-platform"
	defaultTokenExpiry = 24 * time.Hour
)

// tokenClaims is the JWT payload; the subject is the user id
type tokenClaims struct {
	TenantID     string          `json:"tid"`
	TenantSchema string          `json:"tsc"`
	Role         domain.UserRole `json:"role"`
	jwt.RegisteredClaims
}

type AuthService struct {
	users       domain.UserRepository
	provisioner domain.SchemaProvisioner
	transactor  tenancy.Transactor
	employees   domain.EmployeeRepository
	limiter     *ratelimiter.RateLimiter
	secret      []byte
	expiry      time.Duration
	logger      logger.Logger
	now         func() time.Time
}

type AuthServiceConfig struct {
	UserRepository     domain.UserRepository
	Provisioner        domain.SchemaProvisioner
	Transactor         tenancy.Transactor
	EmployeeRepository domain.EmployeeRepository
	// RateLimiter must have a policy for the "login" namespace; nil disables limiting
	RateLimiter *ratelimiter.RateLimiter
	JWTSecret   string
	TokenExpiry time.Duration
	Logger      logger.Logger
}

func NewAuthService(cfg AuthServiceConfig) (*AuthService, error) {
	if len(cfg.JWTSecret) == 0 {
		return nil, errors.New("jwt secret is required")
	}
	expiry := cfg.TokenExpiry
	if expiry <= 0 {
		expiry = defaultTokenExpiry
	}
	return &AuthService{
		users:       cfg.UserRepository,
		provisioner: cfg.Provisioner,
		transactor:  cfg.Transactor,
		employees:   cfg.EmployeeRepository,
		limiter:     cfg.RateLimiter,
		secret:      []byte(cfg.JWTSecret),
		expiry:      expiry,
		logger:      cfg.Logger,
		now:         time.Now,
	}, nil
}

// Login checks the password, makes sure the tenant schema is fully
// provisioned and returns a signed token with the caller's employee profile
func (s *AuthService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if s.limiter != nil && !s.limiter.Allow(loginRateNamespace, req.Email) {
		return nil, &domain.RateLimitedError{RetryAfter: s.limiter.RetryAfter(loginRateNamespace, req.Email)}
	}

	user, err := s.users.GetUserByEmail(ctx, req.Email, true)
	if err != nil {
		s.logger.WithField("error", err.Error()).Error("Failed to load user for login")
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !crypto.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}
	user.PasswordHash = ""
	if s.limiter != nil {
		s.limiter.Reset(loginRateNamespace, req.Email)
	}

	tenant := user.Tenant
	if tenant == nil {
		return nil, fmt.Errorf("user %s has no tenant", user.ID)
	}

	if err := s.provisioner.ProvisionTenantSchema(ctx, tenant.SchemaName); err != nil {
		s.logger.WithFields(map[string]interface{}{
			"tenant_schema": tenant.SchemaName,
			"error":         err.Error(),
		}).Error("Failed to provision tenant schema at login")
		return nil, err
	}

	employee, err := tenancy.Run(ctx, s.transactor, tenant.SchemaName, func(ctx context.Context, tx *tenancy.Tx) (*domain.Employee, error) {
		return s.employees.GetByUserID(ctx, tx, user.ID)
	})
	if err != nil {
		logFailure(s.logger, tenant.SchemaName, "Failed to load employee profile", err, map[string]interface{}{"user_id": user.ID})
		return nil, err
	}

	token, expiresAt, err := s.issueToken(user, tenant)
	if err != nil {
		return nil, err
	}

	user.Tenant = nil
	return &domain.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user,
		Tenant:    tenant,
		Employee:  employee,
	}, nil
}

func (s *AuthService) issueToken(user *domain.User, tenant *domain.Tenant) (string, time.Time, error) {
	now := s.now().UTC()
	expiresAt := now.Add(s.expiry)

	claims := tokenClaims{
		TenantID:     tenant.ID,
		TenantSchema: tenant.SchemaName,
		Role:         user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// VerifyToken checks signature, algorithm and expiry. Any failure is ErrUnauthorized.
func (s *AuthService) VerifyToken(ctx context.Context, token string) (*domain.AuthClaims, error) {
	claims := &tokenClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	if claims.Subject == "" || claims.TenantSchema == "" {
		return nil, fmt.Errorf("%w: incomplete token claims", domain.ErrUnauthorized)
	}

	return &domain.AuthClaims{
		UserID:       claims.Subject,
		TenantID:     claims.TenantID,
		TenantSchema: claims.TenantSchema,
		Role:         claims.Role,
	}, nil
}
