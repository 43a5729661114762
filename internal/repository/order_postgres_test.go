package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Etiti27/saas-platform-sub000/internal/domain"
	"github.com/Etiti27/saas-platform-sub000/internal/repository/testutil"
	"github.com/Etiti27/saas-platform-sub000/internal/tenancy"
)

var orderColumns = []string{"id", "order_number", "seller_id", "customer_name", "status", "total", "created_at", "updated_at"}

func TestOrderRepository_CreateWritesItems(t *testing.T) {
	repo := NewOrderRepository()
	mock, run := testutil.SetupTenantTx(t, testSchema)
	testutil.ExpectTenantBegin(mock, testSchema)
	mock.ExpectExec(`INSERT INTO orders`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO order_items \(id,order_id,product_id,quantity,unit_price\)`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "prod-1", 2, 5.0).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO order_items`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "prod-2", 1, 7.5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	order := &domain.Order{
		OrderNumber: "ORD-1",
		SellerID:    "emp-1",
		Status:      domain.OrderPending,
		Total:       17.5,
		Items: []domain.OrderItem{
			{ProductID: "prod-1", Quantity: 2, UnitPrice: 5},
			{ProductID: "prod-2", Quantity: 1, UnitPrice: 7.5},
		},
	}
	err := run(func(ctx context.Context, tx *tenancy.Tx) error {
		return repo.Create(ctx, tx, order)
	})
	require.NoError(t, err)
	for _, item := range order.Items {
		assert.Equal(t, order.ID, item.OrderID)
		assert.NotEmpty(t, item.ID)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_GetByIDLoadsItems(t *testing.T) {
	repo := NewOrderRepository()
	now := time.Now().UTC()

	mock, run := testutil.SetupTenantTx(t, testSchema)
	testutil.ExpectTenantBegin(mock, testSchema)
	mock.ExpectQuery(`SELECT .* FROM orders WHERE id = \$1 LIMIT 1`).
		WithArgs("ord-1").
		WillReturnRows(sqlmock.NewRows(orderColumns).AddRow("ord-1", "ORD-1", "emp-1", "Ada", "paid", 10.0, now, now))
	mock.ExpectQuery(`SELECT id, order_id, product_id, quantity, unit_price FROM order_items WHERE order_id = \$1 ORDER BY id`).
		WithArgs("ord-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "product_id", "quantity", "unit_price"}).
			AddRow("item-1", "ord-1", "prod-1", 2, 5.0))
	mock.ExpectCommit()

	var order *domain.Order
	err := run(func(ctx context.Context, tx *tenancy.Tx) error {
		var err error
		order, err = repo.GetByID(ctx, tx, "ord-1")
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderPaid, order.Status)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderRepository_GetForUpdate(t *testing.T) {
	repo := NewOrderRepository()

	mock, run := testutil.SetupTenantTx(t, testSchema)
	testutil.ExpectTenantBegin(mock, testSchema)
	mock.ExpectQuery(`FROM orders WHERE id = \$1 FOR UPDATE`).
		WithArgs("ord-1").
		WillReturnRows(sqlmock.NewRows(orderColumns))
	mock.ExpectCommit()

	var order *domain.Order
	err := run(func(ctx context.Context, tx *tenancy.Tx) error {
		var err error
		order, err = repo.GetForUpdate(ctx, tx, "ord-1")
		return err
	})
	require.NoError(t, err)
	assert.Nil(t, order)
	assert.NoError(t, mock.ExpectationsWereMet())
}
