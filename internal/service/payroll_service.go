package service

import (
	"context"
	"fmt"

	"github.com/Etiti27/saas-platform-sub000/internal/domain"
	"github.com/Etiti27/saas-platform-sub000/internal/tenancy"
	"github.com/Etiti27/saas-platform-sub000/pkg/crypto"
	"github.com/Etiti27/saas-platform-sub000/pkg/logger"
)

// PayrollService encrypts bank_account before it reaches the repository and
// decrypts it on the way out
type PayrollService struct {
	transactor tenancy.Transactor
	repo       domain.PayrollRepository
	secretKey  string
	logger     logger.Logger
}

func NewPayrollService(transactor tenancy.Transactor, repo domain.PayrollRepository, secretKey string, logger logger.Logger) *PayrollService {
	return &PayrollService{
		transactor: transactor,
		repo:       repo,
		secretKey:  secretKey,
		logger:     logger,
	}
}

func (s *PayrollService) seal(account string) (string, error) {
	if account == "" {
		return "", nil
	}
	sealed, err := crypto.EncryptString(account, s.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to encrypt bank account: %w", err)
	}
	return sealed, nil
}

func (s *PayrollService) open(payroll *domain.Payroll) error {
	if payroll == nil || payroll.BankAccount == "" {
		return nil
	}
	plain, err := crypto.DecryptFromHexString(payroll.BankAccount, s.secretKey)
	if err != nil {
		return fmt.Errorf("failed to decrypt bank account for payroll %s: %w", payroll.ID, err)
	}
	payroll.BankAccount = plain
	return nil
}

func (s *PayrollService) CreatePayroll(ctx context.Context, schema string, req *domain.CreatePayrollRequest) (*domain.Payroll, error) {
	payroll, err := req.Validate()
	if err != nil {
		return nil, err
	}

	plain := payroll.BankAccount
	if payroll.BankAccount, err = s.seal(plain); err != nil {
		return nil, err
	}

	err = s.transactor.WithTenantTransaction(ctx, schema, func(ctx context.Context, tx *tenancy.Tx) error {
		return s.repo.Create(ctx, tx, payroll)
	})
	if err != nil {
		logFailure(s.logger, schema, "Failed to create payroll", err, nil)
		return nil, err
	}

	payroll.BankAccount = plain
	return payroll, nil
}

func (s *PayrollService) GetPayroll(ctx context.Context, schema string, id string) (*domain.Payroll, error) {
	payroll, err := tenancy.Run(ctx, s.transactor, schema, func(ctx context.Context, tx *tenancy.Tx) (*domain.Payroll, error) {
		return s.repo.GetByID(ctx, tx, id)
	})
	if err != nil {
		logFailure(s.logger, schema, "Failed to get payroll", err, map[string]interface{}{"payroll_id": id})
		return nil, err
	}
	if payroll == nil {
		return nil, &domain.ErrNotFound{Entity: "payroll", ID: id}
	}
	if err := s.open(payroll); err != nil {
		logFailure(s.logger, schema, "Failed to read payroll", err, map[string]interface{}{"payroll_id": id})
		return nil, err
	}
	return payroll, nil
}

// ListPayrolls masks bank accounts; the full value is only returned by GetPayroll
func (s *PayrollService) ListPayrolls(ctx context.Context, schema string, params domain.ListParams) (*domain.ListResult[domain.Payroll], error) {
	result, err := tenancy.Run(ctx, s.transactor, schema, func(ctx context.Context, tx *tenancy.Tx) (*domain.ListResult[domain.Payroll], error) {
		return s.repo.List(ctx, tx, params)
	})
	if err != nil {
		logFailure(s.logger, schema, "Failed to list payrolls", err, nil)
		return nil, err
	}

	for i := range result.Items {
		if err := s.open(&result.Items[i]); err != nil {
			logFailure(s.logger, schema, "Failed to read payroll", err, map[string]interface{}{"payroll_id": result.Items[i].ID})
			return nil, err
		}
		result.Items[i].BankAccount = domain.MaskBankAccount(result.Items[i].BankAccount)
	}
	return result, nil
}

func (s *PayrollService) UpdatePayroll(ctx context.Context, schema string, req *domain.UpdatePayrollRequest) (*domain.Payroll, error) {
	patch, err := req.Validate()
	if err != nil {
		return nil, err
	}
	if account, ok := patch["bank_account"].(string); ok {
		if patch["bank_account"], err = s.seal(account); err != nil {
			return nil, err
		}
	}

	payroll, err := tenancy.Run(ctx, s.transactor, schema, func(ctx context.Context, tx *tenancy.Tx) (*domain.Payroll, error) {
		return s.repo.Update(ctx, tx, req.ID, patch)
	})
	if err != nil {
		logFailure(s.logger, schema, "Failed to update payroll", err, map[string]interface{}{"payroll_id": req.ID})
		return nil, err
	}
	if payroll == nil {
		return nil, &domain.ErrNotFound{Entity: "payroll", ID: req.ID}
	}
	if err := s.open(payroll); err != nil {
		return nil, err
	}
	return payroll, nil
}

func (s *PayrollService) DeletePayroll(ctx context.Context, schema string, id string) (bool, error) {
	deleted, err := tenancy.Run(ctx, s.transactor, schema, func(ctx context.Context, tx *tenancy.Tx) (bool, error) {
		return s.repo.Delete(ctx, tx, id)
	})
	if err != nil {
		logFailure(s.logger, schema, "Failed to delete payroll", err, map[string]interface{}{"payroll_id": id})
		return false, err
	}
	return deleted, nil
}
