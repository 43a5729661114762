package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Etiti27/saas-platform-sub000/internal/domain"
	"github.com/Etiti27/saas-platform-sub000/internal/repository/testutil"
	"github.com/Etiti27/saas-platform-sub000/internal/tenancy"
)

func TestProductRepository_Create(t *testing.T) {
	repo := NewProductRepository()
	mock, run := testutil.SetupTenantTx(t, testSchema)
	testutil.ExpectTenantBegin(mock, testSchema)
	mock.ExpectExec(`INSERT INTO products \(created_at,description,id,name,price,quantity,sku,updated_at\)`).
		WithArgs(sqlmock.AnyArg(), "", sqlmock.AnyArg(), "Widget", 9.5, 3, "WID-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	product := &domain.Product{SKU: "WID-1", Name: "Widget", Price: 9.5, Quantity: 3}
	err := run(func(ctx context.Context, tx *tenancy.Tx) error {
		return repo.Create(ctx, tx, product)
	})
	require.NoError(t, err)
	assert.NotEmpty(t, product.ID)
	assert.False(t, product.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProductRepository_DecrementStock(t *testing.T) {
	repo := NewProductRepository()

	t.Run("returns the unit price", func(t *testing.T) {
		mock, run := testutil.SetupTenantTx(t, testSchema)
		testutil.ExpectTenantBegin(mock, testSchema)
		mock.ExpectQuery(`UPDATE products SET quantity = quantity - \$1, updated_at = \$2 WHERE id = \$3 AND quantity >= \$1 RETURNING price`).
			WithArgs(2, sqlmock.AnyArg(), "prod-1").
			WillReturnRows(sqlmock.NewRows([]string{"price"}).AddRow(12.25))
		mock.ExpectCommit()

		var price float64
		err := run(func(ctx context.Context, tx *tenancy.Tx) error {
			var err error
			price, err = repo.DecrementStock(ctx, tx, "prod-1", 2)
			return err
		})
		require.NoError(t, err)
		assert.Equal(t, 12.25, price)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("insufficient stock leaves the row untouched", func(t *testing.T) {
		mock, run := testutil.SetupTenantTx(t, testSchema)
		testutil.ExpectTenantBegin(mock, testSchema)
		mock.ExpectQuery(`UPDATE products SET quantity`).
			WillReturnRows(sqlmock.NewRows([]string{"price"}))
		mock.ExpectQuery(`SELECT EXISTS\(SELECT 1 FROM products WHERE id = \$1\)`).
			WithArgs("prod-1").
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectRollback()

		err := run(func(ctx context.Context, tx *tenancy.Tx) error {
			_, err := repo.DecrementStock(ctx, tx, "prod-1", 5)
			return err
		})
		var insufficient *domain.InsufficientStockError
		require.True(t, errors.As(err, &insufficient))
		assert.Equal(t, 5, insufficient.Requested)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown product", func(t *testing.T) {
		mock, run := testutil.SetupTenantTx(t, testSchema)
		testutil.ExpectTenantBegin(mock, testSchema)
		mock.ExpectQuery(`UPDATE products SET quantity`).
			WillReturnRows(sqlmock.NewRows([]string{"price"}))
		mock.ExpectQuery(`SELECT EXISTS`).
			WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
		mock.ExpectRollback()

		err := run(func(ctx context.Context, tx *tenancy.Tx) error {
			_, err := repo.DecrementStock(ctx, tx, "nope", 1)
			return err
		})
		var notFound *domain.ErrNotFound
		require.True(t, errors.As(err, &notFound))
		assert.Equal(t, "product", notFound.Entity)
	})

	t.Run("non-positive quantity is rejected before any query", func(t *testing.T) {
		mock, run := testutil.SetupTenantTx(t, testSchema)
		testutil.ExpectTenantBegin(mock, testSchema)
		mock.ExpectRollback()

		err := run(func(ctx context.Context, tx *tenancy.Tx) error {
			_, err := repo.DecrementStock(ctx, tx, "prod-1", 0)
			return err
		})
		var validation domain.ValidationError
		assert.True(t, errors.As(err, &validation))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
