package domain

import (
	"context"
	"strings"
	"time"

	"github.com/asaskevich/govalidator"

	"github.com/Etiti27/saas-platform-sub000/internal/tenancy"
)

//go:generate mockgen -destination mocks/mock_payroll_repository.go -package mocks github.com/Etiti27/saas-platform-sub000/internal/domain PayrollRepository
//go:generate mockgen -destination mocks/mock_payroll_service.go -package mocks github.com/Etiti27/saas-platform-sub000/internal/domain PayrollService

const DefaultCurrency = "USD"

type PayFrequency string

const (
	PayWeekly   PayFrequency = "weekly"
	PayBiweekly PayFrequency = "biweekly"
	PayMonthly  PayFrequency = "monthly"
)

// Payroll holds compensation for exactly one employee.
// BankAccount is plaintext in memory and encrypted at rest.
type Payroll struct {
	ID           string       `json:"id"`
	BaseSalary   float64      `json:"base_salary"`
	Currency     string       `json:"currency"`
	PayFrequency PayFrequency `json:"pay_frequency"`
	BankAccount  string       `json:"bank_account,omitempty"`
	TaxID        string       `json:"tax_id,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

func normalizeCurrency(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if !govalidator.IsISO4217(code) {
		return "", NewValidationError("currency must be an ISO 4217 code")
	}
	return code, nil
}

type CreatePayrollRequest struct {
	BaseSalary   Number `json:"base_salary"`
	Currency     string `json:"currency,omitempty"`
	PayFrequency string `json:"pay_frequency,omitempty"`
	BankAccount  string `json:"bank_account,omitempty"`
	TaxID        string `json:"tax_id,omitempty"`
}

func (r *CreatePayrollRequest) Validate() (*Payroll, error) {
	salary, err := nonNegativeMoney(r.BaseSalary, "base_salary")
	if err != nil {
		return nil, err
	}
	currency := r.Currency
	if currency == "" {
		currency = DefaultCurrency
	}
	if currency, err = normalizeCurrency(currency); err != nil {
		return nil, err
	}
	frequency := r.PayFrequency
	if frequency == "" {
		frequency = string(PayMonthly)
	}
	if frequency, err = oneOf(frequency, "pay_frequency", string(PayWeekly), string(PayBiweekly), string(PayMonthly)); err != nil {
		return nil, err
	}
	bank, err := optionalString(r.BankAccount, "bank_account", 64)
	if err != nil {
		return nil, err
	}
	taxID, err := optionalString(r.TaxID, "tax_id", 64)
	if err != nil {
		return nil, err
	}
	return &Payroll{
		BaseSalary:   salary,
		Currency:     currency,
		PayFrequency: PayFrequency(frequency),
		BankAccount:  strings.ReplaceAll(bank, " ", ""),
		TaxID:        taxID,
	}, nil
}

type UpdatePayrollRequest struct {
	ID           string  `json:"id"`
	BaseSalary   *Number `json:"base_salary,omitempty"`
	Currency     *string `json:"currency,omitempty"`
	PayFrequency *string `json:"pay_frequency,omitempty"`
	BankAccount  *string `json:"bank_account,omitempty"`
	TaxID        *string `json:"tax_id,omitempty"`
}

// Validate returns the patch. bank_account is plaintext here; the service
// encrypts it before it reaches the repository.
func (r *UpdatePayrollRequest) Validate() (Patch, error) {
	var err error
	if r.ID, err = requireUUID(r.ID, "id"); err != nil {
		return nil, err
	}

	patch := Patch{}
	if r.BaseSalary != nil {
		v, err := nonNegativeMoney(*r.BaseSalary, "base_salary")
		if err != nil {
			return nil, err
		}
		patch["base_salary"] = v
	}
	if r.Currency != nil {
		v, err := normalizeCurrency(*r.Currency)
		if err != nil {
			return nil, err
		}
		patch["currency"] = v
	}
	if r.PayFrequency != nil {
		v, err := oneOf(*r.PayFrequency, "pay_frequency", string(PayWeekly), string(PayBiweekly), string(PayMonthly))
		if err != nil {
			return nil, err
		}
		patch["pay_frequency"] = v
	}
	if r.BankAccount != nil {
		v, err := optionalString(*r.BankAccount, "bank_account", 64)
		if err != nil {
			return nil, err
		}
		patch["bank_account"] = strings.ReplaceAll(v, " ", "")
	}
	if r.TaxID != nil {
		v, err := optionalString(*r.TaxID, "tax_id", 64)
		if err != nil {
			return nil, err
		}
		patch["tax_id"] = v
	}
	if len(patch) == 0 {
		return nil, NewValidationError("no fields to update")
	}
	return patch, nil
}

// MaskBankAccount keeps the last four characters visible
func MaskBankAccount(account string) string {
	if len(account) <= 4 {
		return account
	}
	return strings.Repeat("*", len(account)-4) + account[len(account)-4:]
}

// PayrollRepository stores bank_account exactly as given; callers pass ciphertext
type PayrollRepository interface {
	Create(ctx context.Context, tx *tenancy.Tx, payroll *Payroll) error
	GetByID(ctx context.Context, tx *tenancy.Tx, id string) (*Payroll, error)
	List(ctx context.Context, tx *tenancy.Tx, params ListParams) (*ListResult[Payroll], error)
	Update(ctx context.Context, tx *tenancy.Tx, id string, patch Patch) (*Payroll, error)
	Delete(ctx context.Context, tx *tenancy.Tx, id string) (bool, error)
}

type PayrollService interface {
	CreatePayroll(ctx context.Context, schema string, req *CreatePayrollRequest) (*Payroll, error)
	GetPayroll(ctx context.Context, schema string, id string) (*Payroll, error)
	ListPayrolls(ctx context.Context, schema string, params ListParams) (*ListResult[Payroll], error)
	UpdatePayroll(ctx context.Context, schema string, req *UpdatePayrollRequest) (*Payroll, error)
	DeletePayroll(ctx context.Context, schema string, id string) (bool, error)
}
