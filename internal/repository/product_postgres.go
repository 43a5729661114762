package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Etiti27/saas-platform-sub000/internal/domain"
	"github.com/Etiti27/saas-platform-sub000/internal/tenancy"
)

var productTable = tableSpec{
	entity:        "product",
	table:         "products",
	columns:       []string{"id", "sku", "name", "description", "price", "quantity", "created_at", "updated_at"},
	searchColumns: []string{"sku", "name", "description"},
	sortColumns:   []string{"sku", "name", "price", "quantity", "created_at", "updated_at"},
	defaultSort:   "created_at",
}

// The quantity guard and the decrement are one statement, so concurrent
// orders for the last unit cannot both succeed and stock never goes negative.
const decrementStockQuery = `UPDATE products SET quantity = quantity - $1, updated_at = $2 WHERE id = $3 AND quantity >= $1 RETURNING price`

type productRepository struct{}

func NewProductRepository() domain.ProductRepository {
	return &productRepository{}
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var p domain.Product
	if err := row.Scan(&p.ID, &p.SKU, &p.Name, &p.Description, &p.Price, &p.Quantity, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepository) Create(ctx context.Context, tx *tenancy.Tx, product *domain.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	return insertRow(ctx, tx, productTable, map[string]interface{}{
		"id":          product.ID,
		"sku":         product.SKU,
		"name":        product.Name,
		"description": product.Description,
		"price":       product.Price,
		"quantity":    product.Quantity,
		"created_at":  product.CreatedAt,
		"updated_at":  product.UpdatedAt,
	})
}

func (r *productRepository) GetByID(ctx context.Context, tx *tenancy.Tx, id string) (*domain.Product, error) {
	return getByID(ctx, tx, productTable, id, scanProduct)
}

func (r *productRepository) List(ctx context.Context, tx *tenancy.Tx, params domain.ListParams) (*domain.ListResult[domain.Product], error) {
	return listRows(ctx, tx, productTable, params, scanProduct)
}

func (r *productRepository) Update(ctx context.Context, tx *tenancy.Tx, id string, patch domain.Patch) (*domain.Product, error) {
	return updateRow(ctx, tx, productTable, id, patch, scanProduct)
}

func (r *productRepository) Delete(ctx context.Context, tx *tenancy.Tx, id string) (bool, error) {
	return deleteRow(ctx, tx, productTable, id)
}

func (r *productRepository) DecrementStock(ctx context.Context, tx *tenancy.Tx, id string, quantity int) (float64, error) {
	if quantity < 1 {
		return 0, domain.NewValidationError("quantity must be a positive integer")
	}

	var price float64
	err := tx.QueryRowContext(ctx, decrementStockQuery, quantity, time.Now().UTC(), id).Scan(&price)
	if err == nil {
		return price, nil
	}
	if err != sql.ErrNoRows {
		return 0, fmt.Errorf("failed to decrement stock: %w", mapPgError(err))
	}

	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM products WHERE id = $1)`, id).Scan(&exists); err != nil {
		return 0, fmt.Errorf("failed to check product existence: %w", err)
	}
	if !exists {
		return 0, &domain.ErrNotFound{Entity: "product", ID: id}
	}
	return 0, &domain.InsufficientStockError{ProductID: id, Requested: quantity}
}
