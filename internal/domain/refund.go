package domain

import (
	"context"
	"time"

	"github.com/Etiti27/saas-platform-sub000/internal/tenancy"
)

//go:generate mockgen -destination mocks/mock_refund_repository.go -package mocks github.com/Etiti27/saas-platform-sub000/internal/domain RefundRepository
//go:generate mockgen -destination mocks/mock_refund_service.go -package mocks github.com/Etiti27/saas-platform-sub000/internal/domain RefundService

// Refund returns money against an order, processed by an employee
type Refund struct {
	ID         string    `json:"id"`
	OrderID    string    `json:"order_id"`
	EmployeeID string    `json:"employee_id"`
	Amount     float64   `json:"amount"`
	Reason     string    `json:"reason,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type CreateRefundRequest struct {
	OrderID    string `json:"order_id"`
	EmployeeID string `json:"employee_id"`
	Amount     Number `json:"amount"`
	Reason     string `json:"reason,omitempty"`
}

func (r *CreateRefundRequest) Validate() (*Refund, error) {
	orderID, err := requireUUID(r.OrderID, "order_id")
	if err != nil {
		return nil, err
	}
	employeeID, err := requireUUID(r.EmployeeID, "employee_id")
	if err != nil {
		return nil, err
	}
	amount, err := positiveMoney(r.Amount, "amount")
	if err != nil {
		return nil, err
	}
	reason, err := optionalString(r.Reason, "reason", 1000)
	if err != nil {
		return nil, err
	}
	return &Refund{OrderID: orderID, EmployeeID: employeeID, Amount: amount, Reason: reason}, nil
}

// UpdateRefundRequest can only amend the reason; amounts are immutable once booked
type UpdateRefundRequest struct {
	ID     string  `json:"id"`
	Reason *string `json:"reason,omitempty"`
}

func (r *UpdateRefundRequest) Validate() (Patch, error) {
	var err error
	if r.ID, err = requireUUID(r.ID, "id"); err != nil {
		return nil, err
	}
	if r.Reason == nil {
		return nil, NewValidationError("no fields to update")
	}
	reason, err := optionalString(*r.Reason, "reason", 1000)
	if err != nil {
		return nil, err
	}
	return Patch{"reason": reason}, nil
}

type RefundRepository interface {
	Create(ctx context.Context, tx *tenancy.Tx, refund *Refund) error
	GetByID(ctx context.Context, tx *tenancy.Tx, id string) (*Refund, error)
	List(ctx context.Context, tx *tenancy.Tx, params ListParams) (*ListResult[Refund], error)
	Update(ctx context.Context, tx *tenancy.Tx, id string, patch Patch) (*Refund, error)
	Delete(ctx context.Context, tx *tenancy.Tx, id string) (bool, error)
	// TotalForOrder sums refunds already booked against orderID
	TotalForOrder(ctx context.Context, tx *tenancy.Tx, orderID string) (float64, error)
}

type RefundService interface {
	CreateRefund(ctx context.Context, schema string, req *CreateRefundRequest) (*Refund, error)
	GetRefund(ctx context.Context, schema string, id string) (*Refund, error)
	ListRefunds(ctx context.Context, schema string, params ListParams) (*ListResult[Refund], error)
	UpdateRefund(ctx context.Context, schema string, req *UpdateRefundRequest) (*Refund, error)
	DeleteRefund(ctx context.Context, schema string, id string) (bool, error)
}
