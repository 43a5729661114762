package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Etiti27/saas-platform-sub000/internal/domain"
	"github.com/Etiti27/saas-platform-sub000/internal/tenancy"
)

var refundTable = tableSpec{
	entity:        "refund",
	table:         "refunds",
	columns:       []string{"id", "order_id", "employee_id", "amount", "reason", "created_at", "updated_at"},
	searchColumns: []string{"reason"},
	sortColumns:   []string{"amount", "created_at", "updated_at"},
	defaultSort:   "created_at",
}

type refundRepository struct{}

func NewRefundRepository() domain.RefundRepository {
	return &refundRepository{}
}

func scanRefund(row rowScanner) (*domain.Refund, error) {
	var rf domain.Refund
	if err := row.Scan(&rf.ID, &rf.OrderID, &rf.EmployeeID, &rf.Amount, &rf.Reason, &rf.CreatedAt, &rf.UpdatedAt); err != nil {
		return nil, err
	}
	return &rf, nil
}

func (r *refundRepository) Create(ctx context.Context, tx *tenancy.Tx, refund *domain.Refund) error {
	if refund.ID == "" {
		refund.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	refund.CreatedAt = now
	refund.UpdatedAt = now

	return insertRow(ctx, tx, refundTable, map[string]interface{}{
		"id":          refund.ID,
		"order_id":    refund.OrderID,
		"employee_id": refund.EmployeeID,
		"amount":      refund.Amount,
		"reason":      refund.Reason,
		"created_at":  refund.CreatedAt,
		"updated_at":  refund.UpdatedAt,
	})
}

func (r *refundRepository) GetByID(ctx context.Context, tx *tenancy.Tx, id string) (*domain.Refund, error) {
	return getByID(ctx, tx, refundTable, id, scanRefund)
}

func (r *refundRepository) List(ctx context.Context, tx *tenancy.Tx, params domain.ListParams) (*domain.ListResult[domain.Refund], error) {
	return listRows(ctx, tx, refundTable, params, scanRefund)
}

func (r *refundRepository) Update(ctx context.Context, tx *tenancy.Tx, id string, patch domain.Patch) (*domain.Refund, error) {
	return updateRow(ctx, tx, refundTable, id, patch, scanRefund)
}

func (r *refundRepository) Delete(ctx context.Context, tx *tenancy.Tx, id string) (bool, error) {
	return deleteRow(ctx, tx, refundTable, id)
}

func (r *refundRepository) TotalForOrder(ctx context.Context, tx *tenancy.Tx, orderID string) (float64, error) {
	var total float64
	err := tx.QueryRowContext(ctx, `SELECT COALESCE(SUM(amount), 0) FROM refunds WHERE order_id = $1`, orderID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("failed to sum refunds: %w", err)
	}
	return total, nil
}
