package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Etiti27/saas-platform-sub000/internal/domain"
	"github.com/Etiti27/saas-platform-sub000/internal/tenancy"
)

var expenseTable = tableSpec{
	entity:        "expense",
	table:         "expenses",
	columns:       []string{"id", "description", "category", "amount", "incurred_on", "employee_id", "created_at", "updated_at"},
	searchColumns: []string{"description", "category"},
	sortColumns:   []string{"description", "category", "amount", "incurred_on", "created_at", "updated_at"},
	defaultSort:   "created_at",
}

type expenseRepository struct{}

func NewExpenseRepository() domain.ExpenseRepository {
	return &expenseRepository{}
}

func scanExpense(row rowScanner) (*domain.Expense, error) {
	var e domain.Expense
	err := row.Scan(&e.ID, &e.Description, &e.Category, &e.Amount, &e.IncurredOn, &e.EmployeeID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *expenseRepository) Create(ctx context.Context, tx *tenancy.Tx, expense *domain.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	expense.CreatedAt = now
	expense.UpdatedAt = now

	return insertRow(ctx, tx, expenseTable, map[string]interface{}{
		"id":          expense.ID,
		"description": expense.Description,
		"category":    expense.Category,
		"amount":      expense.Amount,
		"incurred_on": expense.IncurredOn,
		"employee_id": expense.EmployeeID,
		"created_at":  expense.CreatedAt,
		"updated_at":  expense.UpdatedAt,
	})
}

func (r *expenseRepository) GetByID(ctx context.Context, tx *tenancy.Tx, id string) (*domain.Expense, error) {
	return getByID(ctx, tx, expenseTable, id, scanExpense)
}

func (r *expenseRepository) List(ctx context.Context, tx *tenancy.Tx, params domain.ListParams) (*domain.ListResult[domain.Expense], error) {
	return listRows(ctx, tx, expenseTable, params, scanExpense)
}

func (r *expenseRepository) Update(ctx context.Context, tx *tenancy.Tx, id string, patch domain.Patch) (*domain.Expense, error) {
	return updateRow(ctx, tx, expenseTable, id, patch, scanExpense)
}

func (r *expenseRepository) Delete(ctx context.Context, tx *tenancy.Tx, id string) (bool, error) {
	return deleteRow(ctx, tx, expenseTable, id)
}
