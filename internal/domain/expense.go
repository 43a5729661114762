package domain

import (
	"context"
	"time"

	"github.com/Etiti27/saas-platform-sub000/internal/tenancy"
)

//go:generate mockgen -destination mocks/mock_expense_repository.go -package mocks github.com/Etiti27/saas-platform-sub000/internal/domain ExpenseRepository
//go:generate mockgen -destination mocks/mock_expense_service.go -package mocks github.com/Etiti27/saas-platform-sub000/internal/domain ExpenseService

type Expense struct {
	ID          string     `json:"id"`
	Description string     `json:"description"`
	Category    string     `json:"category,omitempty"`
	Amount      float64    `json:"amount"`
	IncurredOn  *time.Time `json:"incurred_on,omitempty"`
	EmployeeID  *string    `json:"employee_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type CreateExpenseRequest struct {
	Description string  `json:"description"`
	Category    string  `json:"category,omitempty"`
	Amount      Number  `json:"amount"`
	IncurredOn  *Date   `json:"incurred_on,omitempty"`
	EmployeeID  *string `json:"employee_id,omitempty"`
}

func (r *CreateExpenseRequest) Validate() (*Expense, error) {
	description, err := requireString(r.Description, "description", 500)
	if err != nil {
		return nil, err
	}
	category, err := optionalString(r.Category, "category", 100)
	if err != nil {
		return nil, err
	}
	amount, err := positiveMoney(r.Amount, "amount")
	if err != nil {
		return nil, err
	}

	var employeeID *string
	if r.EmployeeID != nil && *r.EmployeeID != "" {
		v, err := requireUUID(*r.EmployeeID, "employee_id")
		if err != nil {
			return nil, err
		}
		employeeID = &v
	}

	return &Expense{
		Description: description,
		Category:    category,
		Amount:      amount,
		IncurredOn:  r.IncurredOn.Ptr(),
		EmployeeID:  employeeID,
	}, nil
}

type UpdateExpenseRequest struct {
	ID          string  `json:"id"`
	Description *string `json:"description,omitempty"`
	Category    *string `json:"category,omitempty"`
	Amount      *Number `json:"amount,omitempty"`
	IncurredOn  *Date   `json:"incurred_on,omitempty"`
}

func (r *UpdateExpenseRequest) Validate() (Patch, error) {
	var err error
	if r.ID, err = requireUUID(r.ID, "id"); err != nil {
		return nil, err
	}

	patch := Patch{}
	if r.Description != nil {
		v, err := requireString(*r.Description, "description", 500)
		if err != nil {
			return nil, err
		}
		patch["description"] = v
	}
	if r.Category != nil {
		v, err := optionalString(*r.Category, "category", 100)
		if err != nil {
			return nil, err
		}
		patch["category"] = v
	}
	if r.Amount != nil {
		v, err := positiveMoney(*r.Amount, "amount")
		if err != nil {
			return nil, err
		}
		patch["amount"] = v
	}
	if r.IncurredOn != nil {
		patch["incurred_on"] = r.IncurredOn.Ptr()
	}
	if len(patch) == 0 {
		return nil, NewValidationError("no fields to update")
	}
	return patch, nil
}

type ExpenseRepository interface {
	Create(ctx context.Context, tx *tenancy.Tx, expense *Expense) error
	GetByID(ctx context.Context, tx *tenancy.Tx, id string) (*Expense, error)
	List(ctx context.Context, tx *tenancy.Tx, params ListParams) (*ListResult[Expense], error)
	Update(ctx context.Context, tx *tenancy.Tx, id string, patch Patch) (*Expense, error)
	Delete(ctx context.Context, tx *tenancy.Tx, id string) (bool, error)
}

type ExpenseService interface {
	CreateExpense(ctx context.Context, schema string, req *CreateExpenseRequest) (*Expense, error)
	GetExpense(ctx context.Context, schema string, id string) (*Expense, error)
	ListExpenses(ctx context.Context, schema string, params ListParams) (*ListResult[Expense], error)
	UpdateExpense(ctx context.Context, schema string, req *UpdateExpenseRequest) (*Expense, error)
	DeleteExpense(ctx context.Context, schema string, id string) (bool, error)
}
