package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/Etiti27/saas-platform-sub000/internal/domain"
	"github.com/Etiti27/saas-platform-sub000/internal/tenancy"
)

var orderTable = tableSpec{
	entity:        "order",
	table:         "orders",
	columns:       []string{"id", "order_number", "seller_id", "customer_name", "status", "total", "created_at", "updated_at"},
	searchColumns: []string{"order_number", "customer_name", "status"},
	sortColumns:   []string{"order_number", "customer_name", "status", "total", "created_at", "updated_at"},
	defaultSort:   "created_at",
}

var orderItemTable = tableSpec{
	entity:  "order item",
	table:   "order_items",
	columns: []string{"id", "order_id", "product_id", "quantity", "unit_price"},
}

type orderRepository struct{}

func NewOrderRepository() domain.OrderRepository {
	return &orderRepository{}
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var o domain.Order
	if err := row.Scan(&o.ID, &o.OrderNumber, &o.SellerID, &o.CustomerName, &o.Status, &o.Total, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *orderRepository) Create(ctx context.Context, tx *tenancy.Tx, order *domain.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	order.CreatedAt = now
	order.UpdatedAt = now

	err := insertRow(ctx, tx, orderTable, map[string]interface{}{
		"id":            order.ID,
		"order_number":  order.OrderNumber,
		"seller_id":     order.SellerID,
		"customer_name": order.CustomerName,
		"status":        order.Status,
		"total":         order.Total,
		"created_at":    order.CreatedAt,
		"updated_at":    order.UpdatedAt,
	})
	if err != nil {
		return err
	}

	for i := range order.Items {
		item := &order.Items[i]
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		item.OrderID = order.ID

		err := insertRow(ctx, tx, orderItemTable, map[string]interface{}{
			"id":         item.ID,
			"order_id":   item.OrderID,
			"product_id": item.ProductID,
			"quantity":   item.Quantity,
			"unit_price": item.UnitPrice,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, tx *tenancy.Tx, id string) (*domain.Order, error) {
	order, err := getByID(ctx, tx, orderTable, id, scanOrder)
	if err != nil || order == nil {
		return order, err
	}
	if order.Items, err = r.items(ctx, tx, order.ID); err != nil {
		return nil, err
	}
	return order, nil
}

// GetForUpdate locks the order row until the transaction ends
func (r *orderRepository) GetForUpdate(ctx context.Context, tx *tenancy.Tx, id string) (*domain.Order, error) {
	query, args, err := psql.Select(orderTable.columns...).
		From(orderTable.table).
		Where(sq.Eq{"id": id}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	order, err := scanOrder(tx.QueryRowContext(ctx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to lock order: %w", err)
	}
	return order, nil
}

func (r *orderRepository) items(ctx context.Context, tx *tenancy.Tx, orderID string) ([]domain.OrderItem, error) {
	query, args, err := psql.Select(orderItemTable.columns...).
		From(orderItemTable.table).
		Where(sq.Eq{"order_id": orderID}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get order items: %w", err)
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.Quantity, &it.UnitPrice); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order item rows: %w", err)
	}
	return items, nil
}

func (r *orderRepository) List(ctx context.Context, tx *tenancy.Tx, params domain.ListParams) (*domain.ListResult[domain.Order], error) {
	return listRows(ctx, tx, orderTable, params, scanOrder)
}

func (r *orderRepository) UpdateStatus(ctx context.Context, tx *tenancy.Tx, id string, status domain.OrderStatus) (*domain.Order, error) {
	order, err := updateRow(ctx, tx, orderTable, id, domain.Patch{"status": status}, scanOrder)
	if err != nil || order == nil {
		return order, err
	}
	if order.Items, err = r.items(ctx, tx, order.ID); err != nil {
		return nil, err
	}
	return order, nil
}

// Delete removes the order and, by cascade, its items. Stock is not restored.
func (r *orderRepository) Delete(ctx context.Context, tx *tenancy.Tx, id string) (bool, error) {
	return deleteRow(ctx, tx, orderTable, id)
}
