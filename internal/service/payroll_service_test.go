package service

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Etiti27/saas-platform-sub000/internal/domain"
	"github.com/Etiti27/saas-platform-sub000/internal/domain/mocks"
	"github.com/Etiti27/saas-platform-sub000/internal/tenancy"
	"github.com/Etiti27/saas-platform-sub000/pkg/crypto"
)

const testSecretKey = "0123456789abcdef0123456789abcdef"

func TestPayrollService_BankAccountIsEncryptedAtRest(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockPayrollRepository(ctrl)
	svc := NewPayrollService(&fakeTransactor{}, repo, testSecretKey, testLogger(t))

	var stored string
	repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *tenancy.Tx, p *domain.Payroll) error {
			stored = p.BankAccount
			p.ID = testID1
			return nil
		})

	payroll, err := svc.CreatePayroll(context.Background(), testSchema, &domain.CreatePayrollRequest{
		BaseSalary:  domain.Number(4200),
		BankAccount: "DE89 3704 0044 0532 0130 00",
	})
	require.NoError(t, err)
	assert.Equal(t, "DE89370400440532013000", payroll.BankAccount)
	assert.NotContains(t, stored, "DE89")

	plain, err := crypto.DecryptFromHexString(stored, testSecretKey)
	require.NoError(t, err)
	assert.Equal(t, "DE89370400440532013000", plain)

	repo.EXPECT().GetByID(gomock.Any(), gomock.Any(), testID1).
		Return(&domain.Payroll{ID: testID1, BankAccount: stored}, nil)
	fetched, err := svc.GetPayroll(context.Background(), testSchema, testID1)
	require.NoError(t, err)
	assert.Equal(t, "DE89370400440532013000", fetched.BankAccount)

	repo.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(&domain.ListResult[domain.Payroll]{Items: []domain.Payroll{{ID: testID1, BankAccount: stored}, {ID: testID2}}, Total: 2}, nil)
	list, err := svc.ListPayrolls(context.Background(), testSchema, domain.ListParams{})
	require.NoError(t, err)
	assert.Equal(t, "******************3000", list.Items[0].BankAccount)
	assert.Equal(t, "", list.Items[1].BankAccount)
}

func TestPayrollService_UpdateEncryptsPatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockPayrollRepository(ctrl)
	svc := NewPayrollService(&fakeTransactor{}, repo, testSecretKey, testLogger(t))
	account := "NL91ABNA0417164300"

	repo.EXPECT().Update(gomock.Any(), gomock.Any(), testID1, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *tenancy.Tx, _ string, patch domain.Patch) (*domain.Payroll, error) {
			sealed, ok := patch["bank_account"].(string)
			require.True(t, ok)
			assert.NotEqual(t, account, sealed)
			return &domain.Payroll{ID: testID1, BankAccount: sealed}, nil
		})

	payroll, err := svc.UpdatePayroll(context.Background(), testSchema, &domain.UpdatePayrollRequest{ID: testID1, BankAccount: &account})
	require.NoError(t, err)
	assert.Equal(t, account, payroll.BankAccount)
}

func TestPayrollService_WrongKeyFailsClosed(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockPayrollRepository(ctrl)
	svc := NewPayrollService(&fakeTransactor{}, repo, testSecretKey, testLogger(t))

	sealed, err := crypto.EncryptString("ACCOUNT", "another-key-another-key-another-k")
	require.NoError(t, err)
	repo.EXPECT().GetByID(gomock.Any(), gomock.Any(), testID1).
		Return(&domain.Payroll{ID: testID1, BankAccount: sealed}, nil)

	_, err = svc.GetPayroll(context.Background(), testSchema, testID1)
	assert.Error(t, err)
}

func TestMaskBankAccount(t *testing.T) {
	assert.Equal(t, "", domain.MaskBankAccount(""))
	assert.Equal(t, "1234", domain.MaskBankAccount("1234"))
	assert.Equal(t, "**3456", domain.MaskBankAccount("123456"))
}
