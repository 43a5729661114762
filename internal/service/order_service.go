package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Etiti27/saas-platform-sub000/internal/domain"
	"github.com/Etiti27/saas-platform-sub000/internal/tenancy"
	"github.com/Etiti27/saas-platform-sub000/pkg/logger"
)

type OrderService struct {
	transactor tenancy.Transactor
	orders     domain.OrderRepository
	products   domain.ProductRepository
	logger     logger.Logger
}

func NewOrderService(transactor tenancy.Transactor, orders domain.OrderRepository, products domain.ProductRepository, logger logger.Logger) *OrderService {
	return &OrderService{
		transactor: transactor,
		orders:     orders,
		products:   products,
		logger:     logger,
	}
}

func newOrderNumber(now time.Time) string {
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), strings.ToUpper(uuid.New().String()[:8]))
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}

// CreateOrder reserves stock for every line and inserts the order in one
// tenant transaction. Any failing line rolls back the decrements already made.
func (s *OrderService) CreateOrder(ctx context.Context, schema string, req *domain.CreateOrderRequest) (*domain.Order, error) {
	order, err := req.Validate()
	if err != nil {
		return nil, err
	}
	if order.OrderNumber == "" {
		order.OrderNumber = newOrderNumber(time.Now().UTC())
	}

	// Rows are locked in product id order so concurrent orders cannot deadlock
	sort.Slice(order.Items, func(i, j int) bool {
		return order.Items[i].ProductID < order.Items[j].ProductID
	})

	err = s.transactor.WithTenantTransaction(ctx, schema, func(ctx context.Context, tx *tenancy.Tx) error {
		var total float64
		for i := range order.Items {
			item := &order.Items[i]
			price, err := s.products.DecrementStock(ctx, tx, item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			item.UnitPrice = price
			total += price * float64(item.Quantity)
		}
		order.Total = roundMoney(total)
		return s.orders.Create(ctx, tx, order)
	})
	if err != nil {
		logFailure(s.logger, schema, "Failed to create order", err, map[string]interface{}{"order_number": order.OrderNumber})
		return nil, err
	}
	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, schema string, id string) (*domain.Order, error) {
	order, err := tenancy.Run(ctx, s.transactor, schema, func(ctx context.Context, tx *tenancy.Tx) (*domain.Order, error) {
		return s.orders.GetByID(ctx, tx, id)
	})
	if err != nil {
		logFailure(s.logger, schema, "Failed to get order", err, map[string]interface{}{"order_id": id})
		return nil, err
	}
	if order == nil {
		return nil, &domain.ErrNotFound{Entity: "order", ID: id}
	}
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, schema string, params domain.ListParams) (*domain.ListResult[domain.Order], error) {
	result, err := tenancy.Run(ctx, s.transactor, schema, func(ctx context.Context, tx *tenancy.Tx) (*domain.ListResult[domain.Order], error) {
		return s.orders.List(ctx, tx, params)
	})
	if err != nil {
		logFailure(s.logger, schema, "Failed to list orders", err, nil)
		return nil, err
	}
	return result, nil
}

// UpdateOrder moves the order to a new status. Cancelling does not restock.
func (s *OrderService) UpdateOrder(ctx context.Context, schema string, req *domain.UpdateOrderRequest) (*domain.Order, error) {
	status, err := req.Validate()
	if err != nil {
		return nil, err
	}

	order, err := tenancy.Run(ctx, s.transactor, schema, func(ctx context.Context, tx *tenancy.Tx) (*domain.Order, error) {
		current, err := s.orders.GetForUpdate(ctx, tx, req.ID)
		if err != nil || current == nil {
			return nil, err
		}
		if !current.Status.CanTransitionTo(status) {
			return nil, domain.NewValidationError(fmt.Sprintf("order cannot move from %s to %s", current.Status, status))
		}
		return s.orders.UpdateStatus(ctx, tx, req.ID, status)
	})
	if err != nil {
		logFailure(s.logger, schema, "Failed to update order", err, map[string]interface{}{"order_id": req.ID})
		return nil, err
	}
	if order == nil {
		return nil, &domain.ErrNotFound{Entity: "order", ID: req.ID}
	}
	return order, nil
}

func (s *OrderService) DeleteOrder(ctx context.Context, schema string, id string) (bool, error) {
	deleted, err := tenancy.Run(ctx, s.transactor, schema, func(ctx context.Context, tx *tenancy.Tx) (bool, error) {
		return s.orders.Delete(ctx, tx, id)
	})
	if err != nil {
		logFailure(s.logger, schema, "Failed to delete order", err, map[string]interface{}{"order_id": id})
		return false, err
	}
	return deleted, nil
}
