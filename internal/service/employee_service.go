package service

import (
	"context"

	"github.com/Etiti27/saas-platform-sub000/internal/domain"
	"github.com/Etiti27/saas-platform-sub000/internal/tenancy"
	"github.com/Etiti27/saas-platform-sub000/pkg/logger"
)

type EmployeeService struct {
	transactor tenancy.Transactor
	repo       domain.EmployeeRepository
	logger     logger.Logger
}

func NewEmployeeService(transactor tenancy.Transactor, repo domain.EmployeeRepository, logger logger.Logger) *EmployeeService {
	return &EmployeeService{
		transactor: transactor,
		repo:       repo,
		logger:     logger,
	}
}

func (s *EmployeeService) CreateEmployee(ctx context.Context, schema string, req *domain.CreateEmployeeRequest) (*domain.Employee, error) {
	employee, err := req.Validate()
	if err != nil {
		return nil, err
	}

	err = s.transactor.WithTenantTransaction(ctx, schema, func(ctx context.Context, tx *tenancy.Tx) error {
		return s.repo.Create(ctx, tx, employee)
	})
	if err != nil {
		logFailure(s.logger, schema, "Failed to create employee", err, nil)
		return nil, err
	}
	return employee, nil
}

func (s *EmployeeService) GetEmployee(ctx context.Context, schema string, id string) (*domain.Employee, error) {
	employee, err := tenancy.Run(ctx, s.transactor, schema, func(ctx context.Context, tx *tenancy.Tx) (*domain.Employee, error) {
		return s.repo.GetByID(ctx, tx, id)
	})
	if err != nil {
		logFailure(s.logger, schema, "Failed to get employee", err, map[string]interface{}{"employee_id": id})
		return nil, err
	}
	if employee == nil {
		return nil, &domain.ErrNotFound{Entity: "employee", ID: id}
	}
	return employee, nil
}

func (s *EmployeeService) ListEmployees(ctx context.Context, schema string, params domain.ListParams) (*domain.ListResult[domain.Employee], error) {
	result, err := tenancy.Run(ctx, s.transactor, schema, func(ctx context.Context, tx *tenancy.Tx) (*domain.ListResult[domain.Employee], error) {
		return s.repo.List(ctx, tx, params)
	})
	if err != nil {
		logFailure(s.logger, schema, "Failed to list employees", err, nil)
		return nil, err
	}
	return result, nil
}

func (s *EmployeeService) UpdateEmployee(ctx context.Context, schema string, req *domain.UpdateEmployeeRequest) (*domain.Employee, error) {
	patch, err := req.Validate()
	if err != nil {
		return nil, err
	}

	employee, err := tenancy.Run(ctx, s.transactor, schema, func(ctx context.Context, tx *tenancy.Tx) (*domain.Employee, error) {
		return s.repo.Update(ctx, tx, req.ID, patch)
	})
	if err != nil {
		logFailure(s.logger, schema, "Failed to update employee", err, map[string]interface{}{"employee_id": req.ID})
		return nil, err
	}
	if employee == nil {
		return nil, &domain.ErrNotFound{Entity: "employee", ID: req.ID}
	}
	return employee, nil
}

func (s *EmployeeService) DeleteEmployee(ctx context.Context, schema string, id string) (bool, error) {
	deleted, err := tenancy.Run(ctx, s.transactor, schema, func(ctx context.Context, tx *tenancy.Tx) (bool, error) {
		return s.repo.Delete(ctx, tx, id)
	})
	if err != nil {
		logFailure(s.logger, schema, "Failed to delete employee", err, map[string]interface{}{"employee_id": id})
		return false, err
	}
	return deleted, nil
}
