package service

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Etiti27/saas-platform-sub000/internal/domain"
	"github.com/Etiti27/saas-platform-sub000/internal/domain/mocks"
	"github.com/Etiti27/saas-platform-sub000/internal/tenancy"
)

func setupProductService(t *testing.T) (*ProductService, *mocks.MockProductRepository, *fakeTransactor) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockProductRepository(ctrl)
	tx := &fakeTransactor{}
	return NewProductService(tx, repo, testLogger(t)), repo, tx
}

func TestProductService_CreateProduct(t *testing.T) {
	t.Run("rounds the price and upper-cases the sku", func(t *testing.T) {
		svc, repo, _ := setupProductService(t)
		repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *tenancy.Tx, p *domain.Product) error {
				assert.Equal(t, "WID-1", p.SKU)
				assert.Equal(t, 10.0, p.Price)
				return nil
			})

		_, err := svc.CreateProduct(context.Background(), testSchema, &domain.CreateProductRequest{SKU: "wid-1", Name: "Widget", Price: 9.999, Quantity: 3})
		require.NoError(t, err)
	})

	t.Run("duplicate sku", func(t *testing.T) {
		svc, repo, _ := setupProductService(t)
		repo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&domain.UniqueViolationError{Field: "sku"})

		_, err := svc.CreateProduct(context.Background(), testSchema, &domain.CreateProductRequest{SKU: "wid-1", Name: "Widget", Price: 1, Quantity: 1})
		var unique *domain.UniqueViolationError
		require.True(t, errors.As(err, &unique))
		assert.Equal(t, "sku", unique.Field)
	})

	t.Run("quantity beyond the integer column never reaches the database", func(t *testing.T) {
		svc, _, tx := setupProductService(t)

		_, err := svc.CreateProduct(context.Background(), testSchema, &domain.CreateProductRequest{SKU: "wid-1", Name: "Widget", Price: 1, Quantity: 3e9})
		var validation domain.ValidationError
		assert.True(t, errors.As(err, &validation))
		assert.Empty(t, tx.calls())
	})
}

func TestProductService_UpdateAndDelete(t *testing.T) {
	svc, repo, _ := setupProductService(t)
	price := domain.Number(12.5)

	repo.EXPECT().Update(gomock.Any(), gomock.Any(), testID1, domain.Patch{"price": 12.5}).
		Return(&domain.Product{ID: testID1, Price: 12.5}, nil)
	product, err := svc.UpdateProduct(context.Background(), testSchema, &domain.UpdateProductRequest{ID: testID1, Price: &price})
	require.NoError(t, err)
	assert.Equal(t, 12.5, product.Price)

	repo.EXPECT().GetByID(gomock.Any(), gomock.Any(), testID2).Return(nil, nil)
	_, err = svc.GetProduct(context.Background(), testSchema, testID2)
	var notFound *domain.ErrNotFound
	assert.True(t, errors.As(err, &notFound))

	repo.EXPECT().Delete(gomock.Any(), gomock.Any(), testID1).
		Return(false, &domain.ForeignKeyViolationError{Table: "order_items", Constraint: "order_items_product_id_fkey"})
	_, err = svc.DeleteProduct(context.Background(), testSchema, testID1)
	var fk *domain.ForeignKeyViolationError
	assert.True(t, errors.As(err, &fk))
}
