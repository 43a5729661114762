package service

import (
	"context"
	"fmt"

	"github.com/Etiti27/saas-platform-sub000/internal/domain"
	"github.com/Etiti27/saas-platform-sub000/internal/tenancy"
	"github.com/Etiti27/saas-platform-sub000/pkg/logger"
)

type RefundService struct {
	transactor tenancy.Transactor
	refunds    domain.RefundRepository
	orders     domain.OrderRepository
	logger     logger.Logger
}

func NewRefundService(transactor tenancy.Transactor, refunds domain.RefundRepository, orders domain.OrderRepository, logger logger.Logger) *RefundService {
	return &RefundService{
		transactor: transactor,
		refunds:    refunds,
		orders:     orders,
		logger:     logger,
	}
}

// CreateRefund holds the order row lock while summing earlier refunds so two
// concurrent refunds cannot together exceed the order total
func (s *RefundService) CreateRefund(ctx context.Context, schema string, req *domain.CreateRefundRequest) (*domain.Refund, error) {
	refund, err := req.Validate()
	if err != nil {
		return nil, err
	}

	err = s.transactor.WithTenantTransaction(ctx, schema, func(ctx context.Context, tx *tenancy.Tx) error {
		order, err := s.orders.GetForUpdate(ctx, tx, refund.OrderID)
		if err != nil {
			return err
		}
		if order == nil {
			return &domain.ErrNotFound{Entity: "order", ID: refund.OrderID}
		}

		refunded, err := s.refunds.TotalForOrder(ctx, tx, order.ID)
		if err != nil {
			return err
		}
		remaining := roundMoney(order.Total - refunded)
		if refund.Amount > remaining {
			return domain.NewValidationError(fmt.Sprintf("refund amount exceeds the refundable balance of %.2f", remaining))
		}

		return s.refunds.Create(ctx, tx, refund)
	})
	if err != nil {
		logFailure(s.logger, schema, "Failed to create refund", err, map[string]interface{}{"order_id": refund.OrderID})
		return nil, err
	}
	return refund, nil
}

func (s *RefundService) GetRefund(ctx context.Context, schema string, id string) (*domain.Refund, error) {
	refund, err := tenancy.Run(ctx, s.transactor, schema, func(ctx context.Context, tx *tenancy.Tx) (*domain.Refund, error) {
		return s.refunds.GetByID(ctx, tx, id)
	})
	if err != nil {
		logFailure(s.logger, schema, "Failed to get refund", err, map[string]interface{}{"refund_id": id})
		return nil, err
	}
	if refund == nil {
		return nil, &domain.ErrNotFound{Entity: "refund", ID: id}
	}
	return refund, nil
}

func (s *RefundService) ListRefunds(ctx context.Context, schema string, params domain.ListParams) (*domain.ListResult[domain.Refund], error) {
	result, err := tenancy.Run(ctx, s.transactor, schema, func(ctx context.Context, tx *tenancy.Tx) (*domain.ListResult[domain.Refund], error) {
		return s.refunds.List(ctx, tx, params)
	})
	if err != nil {
		logFailure(s.logger, schema, "Failed to list refunds", err, nil)
		return nil, err
	}
	return result, nil
}

func (s *RefundService) UpdateRefund(ctx context.Context, schema string, req *domain.UpdateRefundRequest) (*domain.Refund, error) {
	patch, err := req.Validate()
	if err != nil {
		return nil, err
	}

	refund, err := tenancy.Run(ctx, s.transactor, schema, func(ctx context.Context, tx *tenancy.Tx) (*domain.Refund, error) {
		return s.refunds.Update(ctx, tx, req.ID, patch)
	})
	if err != nil {
		logFailure(s.logger, schema, "Failed to update refund", err, map[string]interface{}{"refund_id": req.ID})
		return nil, err
	}
	if refund == nil {
		return nil, &domain.ErrNotFound{Entity: "refund", ID: req.ID}
	}
	return refund, nil
}

func (s *RefundService) DeleteRefund(ctx context.Context, schema string, id string) (bool, error) {
	deleted, err := tenancy.Run(ctx, s.transactor, schema, func(ctx context.Context, tx *tenancy.Tx) (bool, error) {
		return s.refunds.Delete(ctx, tx, id)
	})
	if err != nil {
		logFailure(s.logger, schema, "Failed to delete refund", err, map[string]interface{}{"refund_id": id})
		return false, err
	}
	return deleted, nil
}
