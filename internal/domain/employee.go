package domain

import (
	"context"
	"time"

	"github.com/Etiti27/saas-platform-sub000/internal/tenancy"
)

//go:generate mockgen -destination mocks/mock_employee_repository.go -package mocks github.com/Etiti27/saas-platform-sub000/internal/domain EmployeeRepository
//go:generate mockgen -destination mocks/mock_employee_service.go -package mocks github.com/Etiti27/saas-platform-sub000/internal/domain EmployeeService

type EmployeeStatus string

const (
	EmployeeActive     EmployeeStatus = "active"
	EmployeeOnLeave    EmployeeStatus = "on_leave"
	EmployeeTerminated EmployeeStatus = "terminated"
)

// Employee has one payroll and one job. UserID links to public.users when the
// employee can log in.
type Employee struct {
	ID        string         `json:"id"`
	UserID    *string        `json:"user_id,omitempty"`
	FirstName string         `json:"first_name"`
	LastName  string         `json:"last_name"`
	Email     string         `json:"email"`
	Phone     string         `json:"phone,omitempty"`
	JobID     string         `json:"job_id"`
	PayrollID string         `json:"payroll_id"`
	Status    EmployeeStatus `json:"status"`
	HireDate  *time.Time     `json:"hire_date,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type CreateEmployeeRequest struct {
	UserID    *string `json:"user_id,omitempty"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Email     string  `json:"email"`
	Phone     string  `json:"phone,omitempty"`
	JobID     string  `json:"job_id"`
	PayrollID string  `json:"payroll_id"`
	Status    string  `json:"status,omitempty"`
	HireDate  *Date   `json:"hire_date,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() (*Employee, error) {
	first, err := requireString(r.FirstName, "first_name", 100)
	if err != nil {
		return nil, err
	}
	last, err := requireString(r.LastName, "last_name", 100)
	if err != nil {
		return nil, err
	}
	email, err := requireEmail(r.Email)
	if err != nil {
		return nil, err
	}
	phone, err := optionalString(r.Phone, "phone", 50)
	if err != nil {
		return nil, err
	}
	jobID, err := requireUUID(r.JobID, "job_id")
	if err != nil {
		return nil, err
	}
	payrollID, err := requireUUID(r.PayrollID, "payroll_id")
	if err != nil {
		return nil, err
	}
	status := r.Status
	if status == "" {
		status = string(EmployeeActive)
	}
	if status, err = oneOf(status, "status", string(EmployeeActive), string(EmployeeOnLeave), string(EmployeeTerminated)); err != nil {
		return nil, err
	}

	var userID *string
	if r.UserID != nil && *r.UserID != "" {
		v, err := requireUUID(*r.UserID, "user_id")
		if err != nil {
			return nil, err
		}
		userID = &v
	}

	return &Employee{
		UserID:    userID,
		FirstName: first,
		LastName:  last,
		Email:     email,
		Phone:     phone,
		JobID:     jobID,
		PayrollID: payrollID,
		Status:    EmployeeStatus(status),
		HireDate:  r.HireDate.Ptr(),
	}, nil
}

type UpdateEmployeeRequest struct {
	ID        string  `json:"id"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	JobID     *string `json:"job_id,omitempty"`
	Status    *string `json:"status,omitempty"`
	HireDate  *Date   `json:"hire_date,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() (Patch, error) {
	var err error
	if r.ID, err = requireUUID(r.ID, "id"); err != nil {
		return nil, err
	}

	patch := Patch{}
	if r.FirstName != nil {
		v, err := requireString(*r.FirstName, "first_name", 100)
		if err != nil {
			return nil, err
		}
		patch["first_name"] = v
	}
	if r.LastName != nil {
		v, err := requireString(*r.LastName, "last_name", 100)
		if err != nil {
			return nil, err
		}
		patch["last_name"] = v
	}
	if r.Email != nil {
		v, err := requireEmail(*r.Email)
		if err != nil {
			return nil, err
		}
		patch["email"] = v
	}
	if r.Phone != nil {
		v, err := optionalString(*r.Phone, "phone", 50)
		if err != nil {
			return nil, err
		}
		patch["phone"] = v
	}
	if r.JobID != nil {
		v, err := requireUUID(*r.JobID, "job_id")
		if err != nil {
			return nil, err
		}
		patch["job_id"] = v
	}
	if r.Status != nil {
		v, err := oneOf(*r.Status, "status", string(EmployeeActive), string(EmployeeOnLeave), string(EmployeeTerminated))
		if err != nil {
			return nil, err
		}
		patch["status"] = v
	}
	if r.HireDate != nil {
		patch["hire_date"] = r.HireDate.Ptr()
	}
	if len(patch) == 0 {
		return nil, NewValidationError("no fields to update")
	}
	return patch, nil
}

type EmployeeRepository interface {
	Create(ctx context.Context, tx *tenancy.Tx, employee *Employee) error
	GetByID(ctx context.Context, tx *tenancy.Tx, id string) (*Employee, error)
	GetByUserID(ctx context.Context, tx *tenancy.Tx, userID string) (*Employee, error)
	List(ctx context.Context, tx *tenancy.Tx, params ListParams) (*ListResult[Employee], error)
	Update(ctx context.Context, tx *tenancy.Tx, id string, patch Patch) (*Employee, error)
	Delete(ctx context.Context, tx *tenancy.Tx, id string) (bool, error)
}

type EmployeeService interface {
	CreateEmployee(ctx context.Context, schema string, req *CreateEmployeeRequest) (*Employee, error)
	GetEmployee(ctx context.Context, schema string, id string) (*Employee, error)
	ListEmployees(ctx context.Context, schema string, params ListParams) (*ListResult[Employee], error)
	UpdateEmployee(ctx context.Context, schema string, req *UpdateEmployeeRequest) (*Employee, error)
	DeleteEmployee(ctx context.Context, schema string, id string) (bool, error)
}
