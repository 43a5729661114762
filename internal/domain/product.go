package domain

import (
	"context"
	"strings"
	"time"

	"github.com/Etiti27/saas-platform-sub000/internal/tenancy"
)

//go:generate mockgen -destination mocks/mock_product_repository.go -package mocks github.com/Etiti27/saas-platform-sub000/internal/domain ProductRepository
//go:generate mockgen -destination mocks/mock_product_service.go -package mocks github.com/Etiti27/saas-platform-sub000/internal/domain ProductService

// Product is a stock item; Quantity never goes below zero
type Product struct {
	ID          string    `json:"id"`
	SKU         string    `json:"sku"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Price       float64   `json:"price"`
	Quantity    int       `json:"quantity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateProductRequest struct {
	SKU         string `json:"sku"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       Number `json:"price"`
	Quantity    Number `json:"quantity"`
}

func (r *CreateProductRequest) Validate() (*Product, error) {
	sku, err := requireString(r.SKU, "sku", 64)
	if err != nil {
		return nil, err
	}
	name, err := requireString(r.Name, "name", 255)
	if err != nil {
		return nil, err
	}
	description, err := optionalString(r.Description, "description", 2000)
	if err != nil {
		return nil, err
	}
	price, err := nonNegativeMoney(r.Price, "price")
	if err != nil {
		return nil, err
	}
	quantity, err := nonNegativeInt(r.Quantity, "quantity")
	if err != nil {
		return nil, err
	}
	return &Product{
		SKU:         strings.ToUpper(sku),
		Name:        name,
		Description: description,
		Price:       price,
		Quantity:    quantity,
	}, nil
}

type UpdateProductRequest struct {
	ID          string  `json:"id"`
	SKU         *string `json:"sku,omitempty"`
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Price       *Number `json:"price,omitempty"`
	Quantity    *Number `json:"quantity,omitempty"`
}

func (r *UpdateProductRequest) Validate() (Patch, error) {
	var err error
	if r.ID, err = requireUUID(r.ID, "id"); err != nil {
		return nil, err
	}

	patch := Patch{}
	if r.SKU != nil {
		v, err := requireString(*r.SKU, "sku", 64)
		if err != nil {
			return nil, err
		}
		patch["sku"] = strings.ToUpper(v)
	}
	if r.Name != nil {
		v, err := requireString(*r.Name, "name", 255)
		if err != nil {
			return nil, err
		}
		patch["name"] = v
	}
	if r.Description != nil {
		v, err := optionalString(*r.Description, "description", 2000)
		if err != nil {
			return nil, err
		}
		patch["description"] = v
	}
	if r.Price != nil {
		v, err := nonNegativeMoney(*r.Price, "price")
		if err != nil {
			return nil, err
		}
		patch["price"] = v
	}
	if r.Quantity != nil {
		v, err := nonNegativeInt(*r.Quantity, "quantity")
		if err != nil {
			return nil, err
		}
		patch["quantity"] = v
	}
	if len(patch) == 0 {
		return nil, NewValidationError("no fields to update")
	}
	return patch, nil
}

type ProductRepository interface {
	Create(ctx context.Context, tx *tenancy.Tx, product *Product) error
	GetByID(ctx context.Context, tx *tenancy.Tx, id string) (*Product, error)
	List(ctx context.Context, tx *tenancy.Tx, params ListParams) (*ListResult[Product], error)
	Update(ctx context.Context, tx *tenancy.Tx, id string, patch Patch) (*Product, error)
	Delete(ctx context.Context, tx *tenancy.Tx, id string) (bool, error)
	// DecrementStock takes quantity units if available and returns the unit price.
	// It returns *ErrNotFound for an unknown product and *InsufficientStockError
	// when fewer than quantity units remain.
	DecrementStock(ctx context.Context, tx *tenancy.Tx, id string, quantity int) (float64, error)
}

type ProductService interface {
	CreateProduct(ctx context.Context, schema string, req *CreateProductRequest) (*Product, error)
	GetProduct(ctx context.Context, schema string, id string) (*Product, error)
	ListProducts(ctx context.Context, schema string, params ListParams) (*ListResult[Product], error)
	UpdateProduct(ctx context.Context, schema string, req *UpdateProductRequest) (*Product, error)
	DeleteProduct(ctx context.Context, schema string, id string) (bool, error)
}
