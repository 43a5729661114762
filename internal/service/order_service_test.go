package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Etiti27/saas-platform-sub000/internal/domain"
	"github.com/Etiti27/saas-platform-sub000/internal/domain/mocks"
	"github.com/Etiti27/saas-platform-sub000/internal/tenancy"
)

func TestOrderService_CreateOrderPricesLinesFromStock(t *testing.T) {
	ctrl := gomock.NewController(t)
	orders := mocks.NewMockOrderRepository(ctrl)
	products := mocks.NewMockProductRepository(ctrl)
	svc := NewOrderService(&fakeTransactor{}, orders, products, testLogger(t))

	gomock.InOrder(
		products.EXPECT().DecrementStock(gomock.Any(), gomock.Any(), testID1, 1).Return(2.5, nil),
		products.EXPECT().DecrementStock(gomock.Any(), gomock.Any(), testID2, 3).Return(1.1, nil),
		orders.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *tenancy.Tx, o *domain.Order) error {
				assert.InDelta(t, 5.8, o.Total, 0.001)
				assert.Equal(t, domain.OrderPending, o.Status)
				assert.NotEmpty(t, o.OrderNumber)
				return nil
			}),
	)

	order, err := svc.CreateOrder(context.Background(), testSchema, &domain.CreateOrderRequest{
		SellerID: testID3,
		Items: []domain.OrderItemRequest{
			{ProductID: testID2, Quantity: 2},
			{ProductID: testID1, Quantity: 1},
			{ProductID: testID2, Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.Len(t, order.Items, 2)
	assert.Equal(t, 2.5, order.Items[0].UnitPrice)
	assert.Equal(t, 3, order.Items[1].Quantity)
}

func TestOrderService_CreateOrderStopsOnShortage(t *testing.T) {
	ctrl := gomock.NewController(t)
	orders := mocks.NewMockOrderRepository(ctrl)
	products := mocks.NewMockProductRepository(ctrl)
	svc := NewOrderService(&fakeTransactor{}, orders, products, testLogger(t))

	products.EXPECT().DecrementStock(gomock.Any(), gomock.Any(), testID1, 4).
		Return(0.0, &domain.InsufficientStockError{ProductID: testID1, Requested: 4})

	_, err := svc.CreateOrder(context.Background(), testSchema, &domain.CreateOrderRequest{
		SellerID: testID3,
		Items:    []domain.OrderItemRequest{{ProductID: testID1, Quantity: 4}},
	})
	var shortage *domain.InsufficientStockError
	assert.True(t, errors.As(err, &shortage))
}

func TestOrderService_UpdateOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		name    string
		current domain.OrderStatus
		next    string
		allowed bool
	}{
		{"pending to paid", domain.OrderPending, "paid", true},
		{"paid to shipped", domain.OrderPaid, "shipped", true},
		{"paid to cancelled", domain.OrderPaid, "cancelled", true},
		{"shipped to pending", domain.OrderShipped, "pending", false},
		{"cancelled to paid", domain.OrderCancelled, "paid", false},
		{"pending to shipped", domain.OrderPending, "shipped", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			orders := mocks.NewMockOrderRepository(ctrl)
			svc := NewOrderService(&fakeTransactor{}, orders, mocks.NewMockProductRepository(ctrl), testLogger(t))

			orders.EXPECT().GetForUpdate(gomock.Any(), gomock.Any(), testID1).
				Return(&domain.Order{ID: testID1, Status: tc.current}, nil)
			if tc.allowed {
				orders.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), testID1, domain.OrderStatus(tc.next)).
					Return(&domain.Order{ID: testID1, Status: domain.OrderStatus(tc.next)}, nil)
			}

			order, err := svc.UpdateOrder(context.Background(), testSchema, &domain.UpdateOrderRequest{ID: testID1, Status: tc.next})
			if tc.allowed {
				require.NoError(t, err)
				assert.Equal(t, domain.OrderStatus(tc.next), order.Status)
				return
			}
			var validation domain.ValidationError
			assert.True(t, errors.As(err, &validation))
		})
	}

	t.Run("missing order", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		orders := mocks.NewMockOrderRepository(ctrl)
		svc := NewOrderService(&fakeTransactor{}, orders, mocks.NewMockProductRepository(ctrl), testLogger(t))
		orders.EXPECT().GetForUpdate(gomock.Any(), gomock.Any(), testID1).Return(nil, nil)

		_, err := svc.UpdateOrder(context.Background(), testSchema, &domain.UpdateOrderRequest{ID: testID1, Status: "paid"})
		var notFound *domain.ErrNotFound
		assert.True(t, errors.As(err, &notFound))
	})
}

// memInventory stands in for the products and orders tables. A tenant
// transaction holds the lock for its whole body and restores the snapshot
// when the body fails, like a serialized database transaction.
type memInventory struct {
	mu     sync.Mutex
	stock  map[string]int
	prices map[string]float64
	orders []*domain.Order
}

func (m *memInventory) WithTenantTransaction(ctx context.Context, schemaName string, fn func(ctx context.Context, tx *tenancy.Tx) error) error {
	if _, err := tenancy.ValidateSchemaName(schemaName); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	snapshot := make(map[string]int, len(m.stock))
	for k, v := range m.stock {
		snapshot[k] = v
	}
	placed := len(m.orders)

	if err := fn(ctx, &tenancy.Tx{}); err != nil {
		m.stock = snapshot
		m.orders = m.orders[:placed]
		return err
	}
	return nil
}

type memProducts struct {
	domain.ProductRepository
	inv *memInventory
}

func (p *memProducts) DecrementStock(_ context.Context, _ *tenancy.Tx, id string, quantity int) (float64, error) {
	have, ok := p.inv.stock[id]
	if !ok {
		return 0, &domain.ErrNotFound{Entity: "product", ID: id}
	}
	if have < quantity {
		return 0, &domain.InsufficientStockError{ProductID: id, Requested: quantity}
	}
	p.inv.stock[id] = have - quantity
	return p.inv.prices[id], nil
}

type memOrders struct {
	domain.OrderRepository
	inv *memInventory
}

func (o *memOrders) Create(_ context.Context, _ *tenancy.Tx, order *domain.Order) error {
	o.inv.orders = append(o.inv.orders, order)
	return nil
}

func TestOrderService_ConcurrentOrdersNeverOversell(t *testing.T) {
	// testID1 sorts first, so each order decrements it before discovering
	// that testID2 has run out; those decrements must be rolled back.
	inv := &memInventory{
		stock:  map[string]int{testID1: 100, testID2: 5},
		prices: map[string]float64{testID1: 1, testID2: 10},
	}
	svc := NewOrderService(inv, &memOrders{inv: inv}, &memProducts{inv: inv}, testLogger(t))

	const buyers = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		shortages int
	)
	for i := 0; i < buyers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CreateOrder(context.Background(), testSchema, &domain.CreateOrderRequest{
				SellerID: testID3,
				Items: []domain.OrderItemRequest{
					{ProductID: testID2, Quantity: 1},
					{ProductID: testID1, Quantity: 1},
				},
			})
			mu.Lock()
			defer mu.Unlock()
			var shortage *domain.InsufficientStockError
			switch {
			case err == nil:
				succeeded++
			case errors.As(err, &shortage):
				shortages++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, succeeded)
	assert.Equal(t, buyers-5, shortages)
	assert.Equal(t, 0, inv.stock[testID2])
	assert.Equal(t, 95, inv.stock[testID1])
	assert.Len(t, inv.orders, 5)
}
