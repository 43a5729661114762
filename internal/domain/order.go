package domain

import (
	"context"
	"strings"
	"time"

	"github.com/Etiti27/saas-platform-sub000/internal/tenancy"
)

//go:generate mockgen -destination mocks/mock_order_repository.go -package mocks github.com/Etiti27/saas-platform-sub000/internal/domain OrderRepository
//go:generate mockgen -destination mocks/mock_order_service.go -package mocks github.com/Etiti27/saas-platform-sub000/internal/domain OrderService

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderShipped   OrderStatus = "shipped"
	OrderCancelled OrderStatus = "cancelled"
)

// CanTransitionTo reports whether an order in s may move to next
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	if s == next {
		return true
	}
	switch s {
	case OrderPending:
		return next == OrderPaid || next == OrderCancelled
	case OrderPaid:
		return next == OrderShipped || next == OrderCancelled
	default:
		return false
	}
}

type Order struct {
	ID           string      `json:"id"`
	OrderNumber  string      `json:"order_number"`
	SellerID     string      `json:"seller_id"`
	CustomerName string      `json:"customer_name,omitempty"`
	Status       OrderStatus `json:"status"`
	Total        float64     `json:"total"`
	Items        []OrderItem `json:"items,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

type OrderItem struct {
	ID        string  `json:"id"`
	OrderID   string  `json:"order_id"`
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}

type OrderItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  Number `json:"quantity"`
}

type CreateOrderRequest struct {
	OrderNumber  string             `json:"order_number,omitempty"`
	SellerID     string             `json:"seller_id"`
	CustomerName string             `json:"customer_name,omitempty"`
	Items        []OrderItemRequest `json:"items"`
}

// Validate returns the order with its lines; lines for the same product are merged
func (r *CreateOrderRequest) Validate() (*Order, error) {
	number, err := optionalString(r.OrderNumber, "order_number", 64)
	if err != nil {
		return nil, err
	}
	sellerID, err := requireUUID(r.SellerID, "seller_id")
	if err != nil {
		return nil, err
	}
	customer, err := optionalString(r.CustomerName, "customer_name", 255)
	if err != nil {
		return nil, err
	}
	if len(r.Items) == 0 {
		return nil, NewValidationError("items must contain at least one line")
	}

	var items []OrderItem
	index := map[string]int{}
	for _, line := range r.Items {
		productID, err := requireUUID(line.ProductID, "items.product_id")
		if err != nil {
			return nil, err
		}
		qty, ok := line.Quantity.Int()
		if !ok || qty < 1 {
			return nil, NewValidationError("items.quantity must be a positive integer")
		}
		if i, seen := index[productID]; seen {
			if items[i].Quantity+qty > MaxQuantity {
				return nil, NewValidationError("items.quantity is too large")
			}
			items[i].Quantity += qty
			continue
		}
		index[productID] = len(items)
		items = append(items, OrderItem{ProductID: productID, Quantity: qty})
	}

	return &Order{
		OrderNumber:  strings.ToUpper(number),
		SellerID:     sellerID,
		CustomerName: customer,
		Status:       OrderPending,
		Items:        items,
	}, nil
}

// UpdateOrderRequest only changes status; lines and totals are fixed at creation
type UpdateOrderRequest struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

func (r *UpdateOrderRequest) Validate() (OrderStatus, error) {
	var err error
	if r.ID, err = requireUUID(r.ID, "id"); err != nil {
		return "", err
	}
	status, err := oneOf(r.Status, "status", string(OrderPending), string(OrderPaid), string(OrderShipped), string(OrderCancelled))
	if err != nil {
		return "", err
	}
	return OrderStatus(status), nil
}

type OrderRepository interface {
	// Create inserts the order and its items; stock is handled by the caller
	Create(ctx context.Context, tx *tenancy.Tx, order *Order) error
	GetByID(ctx context.Context, tx *tenancy.Tx, id string) (*Order, error)
	// GetForUpdate returns the order without items and holds its row lock
	// until the transaction ends
	GetForUpdate(ctx context.Context, tx *tenancy.Tx, id string) (*Order, error)
	List(ctx context.Context, tx *tenancy.Tx, params ListParams) (*ListResult[Order], error)
	UpdateStatus(ctx context.Context, tx *tenancy.Tx, id string, status OrderStatus) (*Order, error)
	Delete(ctx context.Context, tx *tenancy.Tx, id string) (bool, error)
}

type OrderService interface {
	CreateOrder(ctx context.Context, schema string, req *CreateOrderRequest) (*Order, error)
	GetOrder(ctx context.Context, schema string, id string) (*Order, error)
	ListOrders(ctx context.Context, schema string, params ListParams) (*ListResult[Order], error)
	UpdateOrder(ctx context.Context, schema string, req *UpdateOrderRequest) (*Order, error)
	DeleteOrder(ctx context.Context, schema string, id string) (bool, error)
}
