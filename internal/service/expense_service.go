package service

import (
	"context"

	"github.com/Etiti27/saas-platform-sub000/internal/domain"
	"github.com/Etiti27/saas-platform-sub000/internal/tenancy"
	"github.com/Etiti27/saas-platform-sub000/pkg/logger"
)

type ExpenseService struct {
	transactor tenancy.Transactor
	repo       domain.ExpenseRepository
	logger     logger.Logger
}

func NewExpenseService(transactor tenancy.Transactor, repo domain.ExpenseRepository, logger logger.Logger) *ExpenseService {
	return &ExpenseService{
		transactor: transactor,
		repo:       repo,
		logger:     logger,
	}
}

func (s *ExpenseService) CreateExpense(ctx context.Context, schema string, req *domain.CreateExpenseRequest) (*domain.Expense, error) {
	expense, err := req.Validate()
	if err != nil {
		return nil, err
	}

	err = s.transactor.WithTenantTransaction(ctx, schema, func(ctx context.Context, tx *tenancy.Tx) error {
		return s.repo.Create(ctx, tx, expense)
	})
	if err != nil {
		logFailure(s.logger, schema, "Failed to create expense", err, nil)
		return nil, err
	}
	return expense, nil
}

func (s *ExpenseService) GetExpense(ctx context.Context, schema string, id string) (*domain.Expense, error) {
	expense, err := tenancy.Run(ctx, s.transactor, schema, func(ctx context.Context, tx *tenancy.Tx) (*domain.Expense, error) {
		return s.repo.GetByID(ctx, tx, id)
	})
	if err != nil {
		logFailure(s.logger, schema, "Failed to get expense", err, map[string]interface{}{"expense_id": id})
		return nil, err
	}
	if expense == nil {
		return nil, &domain.ErrNotFound{Entity: "expense", ID: id}
	}
	return expense, nil
}

func (s *ExpenseService) ListExpenses(ctx context.Context, schema string, params domain.ListParams) (*domain.ListResult[domain.Expense], error) {
	result, err := tenancy.Run(ctx, s.transactor, schema, func(ctx context.Context, tx *tenancy.Tx) (*domain.ListResult[domain.Expense], error) {
		return s.repo.List(ctx, tx, params)
	})
	if err != nil {
		logFailure(s.logger, schema, "Failed to list expenses", err, nil)
		return nil, err
	}
	return result, nil
}

func (s *ExpenseService) UpdateExpense(ctx context.Context, schema string, req *domain.UpdateExpenseRequest) (*domain.Expense, error) {
	patch, err := req.Validate()
	if err != nil {
		return nil, err
	}

	expense, err := tenancy.Run(ctx, s.transactor, schema, func(ctx context.Context, tx *tenancy.Tx) (*domain.Expense, error) {
		return s.repo.Update(ctx, tx, req.ID, patch)
	})
	if err != nil {
		logFailure(s.logger, schema, "Failed to update expense", err, map[string]interface{}{"expense_id": req.ID})
		return nil, err
	}
	if expense == nil {
		return nil, &domain.ErrNotFound{Entity: "expense", ID: req.ID}
	}
	return expense, nil
}

func (s *ExpenseService) DeleteExpense(ctx context.Context, schema string, id string) (bool, error) {
	deleted, err := tenancy.Run(ctx, s.transactor, schema, func(ctx context.Context, tx *tenancy.Tx) (bool, error) {
		return s.repo.Delete(ctx, tx, id)
	})
	if err != nil {
		logFailure(s.logger, schema, "Failed to delete expense", err, map[string]interface{}{"expense_id": id})
		return false, err
	}
	return deleted, nil
}
