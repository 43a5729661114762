package service

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/Etiti27/saas-platform-sub000/internal/domain"
	"github.com/Etiti27/saas-platform-sub000/internal/tenancy"
	"github.com/Etiti27/saas-platform-sub000/pkg/crypto"
	"github.com/Etiti27/saas-platform-sub000/pkg/logger"
	"github.com/Etiti27/saas-platform-sub000/pkg/storage"
)

const administratorDepartment = "Management"

var logoExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type TenantService struct {
	tenants      domain.TenantRepository
	users        domain.UserRepository
	provisioner  domain.SchemaProvisioner
	transactor   tenancy.Transactor
	jobs         domain.JobRepository
	payrolls     domain.PayrollRepository
	employees    domain.EmployeeRepository
	store        storage.ObjectStore
	maxLogoBytes int64
	passwordCost int
	logger       logger.Logger
}

type TenantServiceConfig struct {
	TenantRepository   domain.TenantRepository
	UserRepository     domain.UserRepository
	Provisioner        domain.SchemaProvisioner
	Transactor         tenancy.Transactor
	JobRepository      domain.JobRepository
	PayrollRepository  domain.PayrollRepository
	EmployeeRepository domain.EmployeeRepository
	// Store may be nil when logo uploads are not configured
	Store        storage.ObjectStore
	MaxLogoBytes int64
	PasswordCost int
	Logger       logger.Logger
}

func NewTenantService(cfg TenantServiceConfig) *TenantService {
	cost := cfg.PasswordCost
	if cost == 0 {
		cost = crypto.DefaultPasswordCost
	}
	return &TenantService{
		tenants:      cfg.TenantRepository,
		users:        cfg.UserRepository,
		provisioner:  cfg.Provisioner,
		transactor:   cfg.Transactor,
		jobs:         cfg.JobRepository,
		payrolls:     cfg.PayrollRepository,
		employees:    cfg.EmployeeRepository,
		store:        cfg.Store,
		maxLogoBytes: cfg.MaxLogoBytes,
		passwordCost: cost,
		logger:       cfg.Logger,
	}
}

// Register creates the tenant and its admin user, provisions the tenant
// schema and seeds the admin's job, payroll and employee rows. If anything
// after the registry insert fails the registry rows are removed again.
func (s *TenantService) Register(ctx context.Context, req *domain.RegisterTenantRequest) (*domain.RegisterTenantResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	schema, err := tenancy.SchemaNameFor(req.BusinessName)
	if err != nil {
		return nil, err
	}

	hash, err := crypto.HashPassword(req.Password, s.passwordCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	tenant := &domain.Tenant{
		Name:       req.BusinessName,
		SchemaName: schema.String(),
		AdminEmail: req.AdminEmail,
		Sector:     req.Sector,
		StartDate:  req.StartDate.Ptr(),
	}
	user := &domain.User{
		Email:        req.AdminEmail,
		PasswordHash: hash,
		Role:         domain.UserRoleAdmin,
	}

	err = s.tenants.WithTransaction(ctx, func(tx *sql.Tx) error {
		if err := s.tenants.CreateTenantTx(ctx, tx, tenant); err != nil {
			return err
		}
		user.TenantID = tenant.ID
		return s.users.CreateUserTx(ctx, tx, user)
	})
	if err != nil {
		logFailure(s.logger, tenant.SchemaName, "Failed to register tenant", err, map[string]interface{}{"admin_email": req.AdminEmail})
		return nil, err
	}

	if err := s.provisioner.ProvisionTenantSchema(ctx, tenant.SchemaName); err != nil {
		s.abandonRegistration(ctx, tenant, err)
		return nil, err
	}

	employee, err := tenancy.Run(ctx, s.transactor, tenant.SchemaName, func(ctx context.Context, tx *tenancy.Tx) (*domain.Employee, error) {
		return s.seedAdministrator(ctx, tx, req, user)
	})
	if err != nil {
		s.abandonRegistration(ctx, tenant, err)
		return nil, &domain.ProvisioningError{Schema: tenant.SchemaName, Step: "seed administrator", Err: err}
	}

	s.logger.WithFields(map[string]interface{}{
		"tenant_id":     tenant.ID,
		"tenant_schema": tenant.SchemaName,
	}).Info("Tenant registered")

	user.Tenant = tenant
	return &domain.RegisterTenantResponse{Tenant: tenant, User: user, Employee: employee}, nil
}

func (s *TenantService) seedAdministrator(ctx context.Context, tx *tenancy.Tx, req *domain.RegisterTenantRequest, user *domain.User) (*domain.Employee, error) {
	job, err := s.jobs.GetByTitle(ctx, tx, domain.AdministratorJobTitle)
	if err != nil {
		return nil, err
	}
	if job == nil {
		job = &domain.Job{Title: domain.AdministratorJobTitle, Department: administratorDepartment}
		if err := s.jobs.Create(ctx, tx, job); err != nil {
			return nil, err
		}
	}

	payroll := &domain.Payroll{Currency: req.Currency, PayFrequency: domain.PayMonthly}
	if err := s.payrolls.Create(ctx, tx, payroll); err != nil {
		return nil, err
	}

	hireDate := req.StartDate.Ptr()
	if hireDate == nil {
		today := time.Now().UTC().Truncate(24 * time.Hour)
		hireDate = &today
	}

	employee := &domain.Employee{
		UserID:    &user.ID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.AdminEmail,
		Phone:     req.Phone,
		JobID:     job.ID,
		PayrollID: payroll.ID,
		Status:    domain.EmployeeActive,
		HireDate:  hireDate,
	}
	if err := s.employees.Create(ctx, tx, employee); err != nil {
		return nil, err
	}
	return employee, nil
}

// abandonRegistration deletes the registry row; the admin user goes with it
// by cascade. An empty or half-built schema may remain and is reused by the
// idempotent provisioner if the name is ever issued again.
func (s *TenantService) abandonRegistration(ctx context.Context, tenant *domain.Tenant, cause error) {
	log := s.logger.WithFields(map[string]interface{}{
		"tenant_id":     tenant.ID,
		"tenant_schema": tenant.SchemaName,
		"error":         cause.Error(),
	})
	log.Error("Tenant provisioning failed, removing registration")

	if err := s.tenants.DeleteTenant(context.WithoutCancel(ctx), tenant.ID); err != nil {
		log.WithField("cleanup_error", err.Error()).Error("Failed to remove tenant after provisioning failure")
	}
}

func (s *TenantService) GetTenant(ctx context.Context, tenantID string) (*domain.Tenant, error) {
	tenant, err := s.tenants.GetTenantByID(ctx, tenantID)
	if err != nil {
		logFailure(s.logger, "", "Failed to get tenant", err, map[string]interface{}{"tenant_id": tenantID})
		return nil, err
	}
	if tenant == nil {
		return nil, &domain.ErrNotFound{Entity: "tenant", ID: tenantID}
	}
	return tenant, nil
}

func (s *TenantService) UpdateTenant(ctx context.Context, tenantID string, req *domain.UpdateTenantRequest) (*domain.Tenant, error) {
	patch, err := req.Patch()
	if err != nil {
		return nil, err
	}

	tenant, err := s.tenants.UpdateTenant(ctx, tenantID, patch, req.AllowSchemaRename)
	if err != nil {
		logFailure(s.logger, "", "Failed to update tenant", err, map[string]interface{}{"tenant_id": tenantID})
		return nil, err
	}

	if _, renamed := patch["schema_name"]; renamed {
		s.logger.WithFields(map[string]interface{}{
			"tenant_id":     tenantID,
			"tenant_schema": tenant.SchemaName,
		}).Warn("Tenant schema renamed")
	}
	return tenant, nil
}

// UploadLogo stores the image and records its public URL on the tenant
func (s *TenantService) UploadLogo(ctx context.Context, tenantID string, filename string, data []byte) (*domain.Tenant, error) {
	if s.store == nil {
		return nil, domain.NewValidationError("logo uploads are not configured")
	}
	if len(data) == 0 {
		return nil, domain.NewValidationError("logo file is empty")
	}
	if s.maxLogoBytes > 0 && int64(len(data)) > s.maxLogoBytes {
		return nil, domain.NewValidationError(fmt.Sprintf("logo must be at most %d bytes", s.maxLogoBytes))
	}

	contentType := http.DetectContentType(data)
	ext, ok := logoExtensions[contentType]
	if !ok {
		return nil, domain.NewValidationError("logo must be a PNG, JPEG, GIF or WebP image")
	}

	current, err := s.tenants.GetTenantByID(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, &domain.ErrNotFound{Entity: "tenant", ID: tenantID}
	}

	base := strings.TrimSuffix(path.Base(filename), path.Ext(filename))
	if base == "" || base == "." || base == "/" {
		base = "logo"
	}
	key := fmt.Sprintf("tenants/%s/%d-%s%s", tenantID, time.Now().UTC().Unix(), tenancy.Slugify(base), ext)

	url, err := s.store.Put(ctx, key, data)
	if err != nil {
		s.logger.WithFields(map[string]interface{}{
			"tenant_id": tenantID,
			"error":     err.Error(),
		}).Error("Failed to upload tenant logo")
		return nil, fmt.Errorf("failed to upload logo: %w", err)
	}

	tenant, err := s.tenants.UpdateTenant(ctx, tenantID, domain.Patch{"logo": url}, false)
	if err != nil {
		if delErr := s.store.Delete(context.WithoutCancel(ctx), key); delErr != nil {
			s.logger.WithField("key", key).Warn("Failed to remove orphaned logo object")
		}
		logFailure(s.logger, "", "Failed to record tenant logo", err, map[string]interface{}{"tenant_id": tenantID})
		return nil, err
	}
	return tenant, nil
}

// ReconcileSchemas re-provisions every registered tenant schema
func (s *TenantService) ReconcileSchemas(ctx context.Context) error {
	names, err := s.tenants.ListSchemaNames(ctx)
	if err != nil {
		return fmt.Errorf("failed to list tenant schemas: %w", err)
	}
	s.logger.WithField("tenant_count", len(names)).Info("Reconciling tenant schemas")
	return s.provisioner.ProvisionAll(ctx, names)
}
