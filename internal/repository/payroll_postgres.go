package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Etiti27/saas-platform-sub000/internal/domain"
	"github.com/Etiti27/saas-platform-sub000/internal/tenancy"
)

var payrollTable = tableSpec{
	entity:        "payroll",
	table:         "payrolls",
	columns:       []string{"id", "base_salary", "currency", "pay_frequency", "bank_account", "tax_id", "created_at", "updated_at"},
	searchColumns: []string{"currency", "pay_frequency", "tax_id"},
	sortColumns:   []string{"base_salary", "currency", "pay_frequency", "created_at", "updated_at"},
	defaultSort:   "created_at",
}

type payrollRepository struct{}

func NewPayrollRepository() domain.PayrollRepository {
	return &payrollRepository{}
}

func scanPayroll(row rowScanner) (*domain.Payroll, error) {
	var p domain.Payroll
	if err := row.Scan(&p.ID, &p.BaseSalary, &p.Currency, &p.PayFrequency, &p.BankAccount, &p.TaxID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *payrollRepository) Create(ctx context.Context, tx *tenancy.Tx, payroll *domain.Payroll) error {
	if payroll.ID == "" {
		payroll.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	payroll.CreatedAt = now
	payroll.UpdatedAt = now

	return insertRow(ctx, tx, payrollTable, map[string]interface{}{
		"id":            payroll.ID,
		"base_salary":   payroll.BaseSalary,
		"currency":      payroll.Currency,
		"pay_frequency": payroll.PayFrequency,
		"bank_account":  payroll.BankAccount,
		"tax_id":        payroll.TaxID,
		"created_at":    payroll.CreatedAt,
		"updated_at":    payroll.UpdatedAt,
	})
}

func (r *payrollRepository) GetByID(ctx context.Context, tx *tenancy.Tx, id string) (*domain.Payroll, error) {
	return getByID(ctx, tx, payrollTable, id, scanPayroll)
}

func (r *payrollRepository) List(ctx context.Context, tx *tenancy.Tx, params domain.ListParams) (*domain.ListResult[domain.Payroll], error) {
	return listRows(ctx, tx, payrollTable, params, scanPayroll)
}

func (r *payrollRepository) Update(ctx context.Context, tx *tenancy.Tx, id string, patch domain.Patch) (*domain.Payroll, error) {
	return updateRow(ctx, tx, payrollTable, id, patch, scanPayroll)
}

func (r *payrollRepository) Delete(ctx context.Context, tx *tenancy.Tx, id string) (bool, error) {
	return deleteRow(ctx, tx, payrollTable, id)
}
