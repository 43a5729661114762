package repository

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/Etiti27/saas-platform-sub000/internal/domain"
	"github.com/Etiti27/saas-platform-sub000/internal/tenancy"
)

var employeeTable = tableSpec{
	entity:        "employee",
	table:         "employees",
	columns:       []string{"id", "user_id", "first_name", "last_name", "email", "phone", "job_id", "payroll_id", "status", "hire_date", "created_at", "updated_at"},
	searchColumns: []string{"first_name", "last_name", "email"},
	sortColumns:   []string{"first_name", "last_name", "email", "status", "hire_date", "created_at", "updated_at"},
	defaultSort:   "created_at",
}

type employeeRepository struct{}

func NewEmployeeRepository() domain.EmployeeRepository {
	return &employeeRepository{}
}

func scanEmployee(row rowScanner) (*domain.Employee, error) {
	var e domain.Employee
	err := row.Scan(
		&e.ID,
		&e.UserID,
		&e.FirstName,
		&e.LastName,
		&e.Email,
		&e.Phone,
		&e.JobID,
		&e.PayrollID,
		&e.Status,
		&e.HireDate,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *employeeRepository) Create(ctx context.Context, tx *tenancy.Tx, employee *domain.Employee) error {
	if employee.ID == "" {
		employee.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	employee.CreatedAt = now
	employee.UpdatedAt = now

	return insertRow(ctx, tx, employeeTable, map[string]interface{}{
		"id":         employee.ID,
		"user_id":    employee.UserID,
		"first_name": employee.FirstName,
		"last_name":  employee.LastName,
		"email":      employee.Email,
		"phone":      employee.Phone,
		"job_id":     employee.JobID,
		"payroll_id": employee.PayrollID,
		"status":     employee.Status,
		"hire_date":  employee.HireDate,
		"created_at": employee.CreatedAt,
		"updated_at": employee.UpdatedAt,
	})
}

func (r *employeeRepository) GetByID(ctx context.Context, tx *tenancy.Tx, id string) (*domain.Employee, error) {
	return getByID(ctx, tx, employeeTable, id, scanEmployee)
}

func (r *employeeRepository) GetByUserID(ctx context.Context, tx *tenancy.Tx, userID string) (*domain.Employee, error) {
	return getOne(ctx, tx, employeeTable, sq.Eq{"user_id": userID}, scanEmployee)
}

func (r *employeeRepository) List(ctx context.Context, tx *tenancy.Tx, params domain.ListParams) (*domain.ListResult[domain.Employee], error) {
	return listRows(ctx, tx, employeeTable, params, scanEmployee)
}

func (r *employeeRepository) Update(ctx context.Context, tx *tenancy.Tx, id string, patch domain.Patch) (*domain.Employee, error) {
	return updateRow(ctx, tx, employeeTable, id, patch, scanEmployee)
}

func (r *employeeRepository) Delete(ctx context.Context, tx *tenancy.Tx, id string) (bool, error) {
	return deleteRow(ctx, tx, employeeTable, id)
}
