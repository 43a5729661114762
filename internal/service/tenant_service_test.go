package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Etiti27/saas-platform-sub000/internal/domain"
	"github.com/Etiti27/saas-platform-sub000/internal/domain/mocks"
	"github.com/Etiti27/saas-platform-sub000/internal/tenancy"
	"github.com/Etiti27/saas-platform-sub000/pkg/crypto"
)

type tenantServiceMocks struct {
	tenants     *mocks.MockTenantRepository
	users       *mocks.MockUserRepository
	provisioner *mocks.MockSchemaProvisioner
	jobs        *mocks.MockJobRepository
	payrolls    *mocks.MockPayrollRepository
	employees   *mocks.MockEmployeeRepository
	transactor  *fakeTransactor
	store       *fakeStore
}

type fakeStore struct {
	puts    map[string][]byte
	deleted []string
	err     error
}

func (f *fakeStore) Put(_ context.Context, key string, body []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	if f.puts == nil {
		f.puts = map[string][]byte{}
	}
	f.puts[key] = body
	return "https://cdn.example.test/" + key, nil
}

func (f *fakeStore) Delete(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return nil
}

func setupTenantService(t *testing.T) (*TenantService, *tenantServiceMocks) {
	ctrl := gomock.NewController(t)
	m := &tenantServiceMocks{
		tenants:     mocks.NewMockTenantRepository(ctrl),
		users:       mocks.NewMockUserRepository(ctrl),
		provisioner: mocks.NewMockSchemaProvisioner(ctrl),
		jobs:        mocks.NewMockJobRepository(ctrl),
		payrolls:    mocks.NewMockPayrollRepository(ctrl),
		employees:   mocks.NewMockEmployeeRepository(ctrl),
		transactor:  &fakeTransactor{},
		store:       &fakeStore{},
	}
	svc := NewTenantService(TenantServiceConfig{
		TenantRepository:   m.tenants,
		UserRepository:     m.users,
		Provisioner:        m.provisioner,
		Transactor:         m.transactor,
		JobRepository:      m.jobs,
		PayrollRepository:  m.payrolls,
		EmployeeRepository: m.employees,
		Store:              m.store,
		MaxLogoBytes:       1024,
		PasswordCost:       4,
		Logger:             testLogger(t),
	})
	return svc, m
}

func registerRequest() *domain.RegisterTenantRequest {
	return &domain.RegisterTenantRequest{
		BusinessName: "Acme Coffee & Co",
		AdminEmail:   "Owner@Acme.test",
		Password:     "correct horse",
		FirstName:    "Ada",
		LastName:     "Lovelace",
	}
}

func expectRegistryInsert(m *tenantServiceMocks) {
	m.tenants.EXPECT().WithTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fn func(*sql.Tx) error) error { return fn(nil) })
	m.tenants.EXPECT().CreateTenantTx(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sql.Tx, tenant *domain.Tenant) error {
			tenant.ID = testID1
			return nil
		})
	m.users.EXPECT().CreateUserTx(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sql.Tx, user *domain.User) error {
			user.ID = testID2
			return nil
		})
}

func TestTenantService_Register(t *testing.T) {
	t.Run("creates registry rows, schema and administrator", func(t *testing.T) {
		svc, m := setupTenantService(t)
		expectRegistryInsert(m)

		var schema string
		m.provisioner.EXPECT().ProvisionTenantSchema(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, name string) error {
				schema = name
				return nil
			})
		m.jobs.EXPECT().GetByTitle(gomock.Any(), gomock.Any(), domain.AdministratorJobTitle).Return(nil, nil)
		m.jobs.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *tenancy.Tx, job *domain.Job) error {
				job.ID = "job-1"
				return nil
			})
		m.payrolls.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *tenancy.Tx, p *domain.Payroll) error {
				assert.Equal(t, "USD", p.Currency)
				p.ID = "payroll-1"
				return nil
			})
		m.employees.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		resp, err := svc.Register(context.Background(), registerRequest())
		require.NoError(t, err)

		assert.True(t, strings.HasPrefix(schema, "acme_coffee_co_"), schema)
		_, err = tenancy.ValidateSchemaName(schema)
		assert.NoError(t, err)
		assert.Equal(t, schema, resp.Tenant.SchemaName)
		assert.Equal(t, "owner@acme.test", resp.User.Email)
		assert.Equal(t, domain.UserRoleAdmin, resp.User.Role)
		assert.Equal(t, testID1, resp.User.TenantID)
		assert.True(t, crypto.CheckPasswordHash("correct horse", resp.User.PasswordHash))
		assert.Equal(t, "job-1", resp.Employee.JobID)
		assert.Equal(t, "payroll-1", resp.Employee.PayrollID)
		require.NotNil(t, resp.Employee.UserID)
		assert.Equal(t, testID2, *resp.Employee.UserID)
		assert.Equal(t, []string{schema}, m.transactor.calls())
	})

	t.Run("provisioning failure removes the registration", func(t *testing.T) {
		svc, m := setupTenantService(t)
		expectRegistryInsert(m)

		failure := &domain.ProvisioningError{Schema: "x", Step: "create schema", Err: errors.New("disk full")}
		m.provisioner.EXPECT().ProvisionTenantSchema(gomock.Any(), gomock.Any()).Return(failure)
		m.tenants.EXPECT().DeleteTenant(gomock.Any(), testID1).Return(nil)

		_, err := svc.Register(context.Background(), registerRequest())
		var provisioning *domain.ProvisioningError
		assert.True(t, errors.As(err, &provisioning))
		assert.Empty(t, m.transactor.calls())
	})

	t.Run("seeding failure is a provisioning failure", func(t *testing.T) {
		svc, m := setupTenantService(t)
		expectRegistryInsert(m)
		m.provisioner.EXPECT().ProvisionTenantSchema(gomock.Any(), gomock.Any()).Return(nil)
		m.jobs.EXPECT().GetByTitle(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("relation \"jobs\" does not exist"))
		m.tenants.EXPECT().DeleteTenant(gomock.Any(), testID1).Return(nil)

		_, err := svc.Register(context.Background(), registerRequest())
		var provisioning *domain.ProvisioningError
		require.True(t, errors.As(err, &provisioning))
		assert.Equal(t, "seed administrator", provisioning.Step)
	})

	t.Run("duplicate admin email stops before provisioning", func(t *testing.T) {
		svc, m := setupTenantService(t)
		m.tenants.EXPECT().WithTransaction(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fn func(*sql.Tx) error) error { return fn(nil) })
		m.tenants.EXPECT().CreateTenantTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&domain.UniqueViolationError{Field: "admin_email"})

		_, err := svc.Register(context.Background(), registerRequest())
		var unique *domain.UniqueViolationError
		assert.True(t, errors.As(err, &unique))
	})

	t.Run("invalid request", func(t *testing.T) {
		svc, _ := setupTenantService(t)
		req := registerRequest()
		req.Password = "short"

		_, err := svc.Register(context.Background(), req)
		var validation domain.ValidationError
		assert.True(t, errors.As(err, &validation))
	})
}

func TestTenantService_UpdateTenantPassesRenameFlag(t *testing.T) {
	svc, m := setupTenantService(t)
	name := "acme_renamed"

	m.tenants.EXPECT().UpdateTenant(gomock.Any(), testID1, domain.Patch{"schema_name": name}, false).
		Return(nil, domain.ErrSchemaRenameNotAllowed)
	_, err := svc.UpdateTenant(context.Background(), testID1, &domain.UpdateTenantRequest{SchemaName: &name})
	assert.ErrorIs(t, err, domain.ErrSchemaRenameNotAllowed)

	m.tenants.EXPECT().UpdateTenant(gomock.Any(), testID1, domain.Patch{"schema_name": name}, true).
		Return(&domain.Tenant{ID: testID1, SchemaName: name}, nil)
	tenant, err := svc.UpdateTenant(context.Background(), testID1, &domain.UpdateTenantRequest{SchemaName: &name, AllowSchemaRename: true})
	require.NoError(t, err)
	assert.Equal(t, name, tenant.SchemaName)
}

func TestTenantService_GetTenant_Missing(t *testing.T) {
	svc, m := setupTenantService(t)
	m.tenants.EXPECT().GetTenantByID(gomock.Any(), testID1).Return(nil, nil)

	_, err := svc.GetTenant(context.Background(), testID1)
	var notFound *domain.ErrNotFound
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "tenant", notFound.Entity)
}

func TestTenantService_UploadLogo(t *testing.T) {
	png := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 32)...)

	t.Run("stores the image and records its url", func(t *testing.T) {
		svc, m := setupTenantService(t)
		m.tenants.EXPECT().GetTenantByID(gomock.Any(), testID1).Return(&domain.Tenant{ID: testID1}, nil)
		m.tenants.EXPECT().UpdateTenant(gomock.Any(), testID1, gomock.Any(), false).
			DoAndReturn(func(_ context.Context, _ string, patch domain.Patch, _ bool) (*domain.Tenant, error) {
				return &domain.Tenant{ID: testID1, Logo: patch["logo"].(string)}, nil
			})

		tenant, err := svc.UploadLogo(context.Background(), testID1, "My Logo.png", png)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(tenant.Logo, "https://cdn.example.test/tenants/"+testID1+"/"))
		assert.True(t, strings.HasSuffix(tenant.Logo, "my_logo.png"), tenant.Logo)
		assert.Len(t, m.store.puts, 1)
	})

	t.Run("rejects non-images and oversized files", func(t *testing.T) {
		svc, _ := setupTenantService(t)

		_, err := svc.UploadLogo(context.Background(), testID1, "notes.txt", []byte("plain text"))
		var validation domain.ValidationError
		assert.True(t, errors.As(err, &validation))

		_, err = svc.UploadLogo(context.Background(), testID1, "big.png", append(png, make([]byte, 2048)...))
		assert.True(t, errors.As(err, &validation))
	})

	t.Run("unknown tenant uploads nothing", func(t *testing.T) {
		svc, m := setupTenantService(t)
		m.tenants.EXPECT().GetTenantByID(gomock.Any(), testID1).Return(nil, nil)

		_, err := svc.UploadLogo(context.Background(), testID1, "logo.png", png)
		var notFound *domain.ErrNotFound
		assert.True(t, errors.As(err, &notFound))
		assert.Empty(t, m.store.puts)
	})

	t.Run("removes the object when the tenant update fails", func(t *testing.T) {
		svc, m := setupTenantService(t)
		m.tenants.EXPECT().GetTenantByID(gomock.Any(), testID1).Return(&domain.Tenant{ID: testID1}, nil)
		m.tenants.EXPECT().UpdateTenant(gomock.Any(), testID1, gomock.Any(), false).Return(nil, errors.New("db down"))

		_, err := svc.UploadLogo(context.Background(), testID1, "logo.png", png)
		require.Error(t, err)
		assert.Len(t, m.store.deleted, 1)
	})
}

func TestTenantService_ReconcileSchemas(t *testing.T) {
	svc, m := setupTenantService(t)
	names := []string{"a_1111", "b_2222"}

	m.tenants.EXPECT().ListSchemaNames(gomock.Any()).Return(names, nil)
	m.provisioner.EXPECT().ProvisionAll(gomock.Any(), names).Return(nil)

	assert.NoError(t, svc.ReconcileSchemas(context.Background()))
}
