package service

import (
	"context"

	"github.com/Etiti27/saas-platform-sub000/internal/domain"
	"github.com/Etiti27/saas-platform-sub000/internal/tenancy"
	"github.com/Etiti27/saas-platform-sub000/pkg/logger"
)

type ProductService struct {
	transactor tenancy.Transactor
	repo       domain.ProductRepository
	logger     logger.Logger
}

func NewProductService(transactor tenancy.Transactor, repo domain.ProductRepository, logger logger.Logger) *ProductService {
	return &ProductService{
		transactor: transactor,
		repo:       repo,
		logger:     logger,
	}
}

func (s *ProductService) CreateProduct(ctx context.Context, schema string, req *domain.CreateProductRequest) (*domain.Product, error) {
	product, err := req.Validate()
	if err != nil {
		return nil, err
	}

	err = s.transactor.WithTenantTransaction(ctx, schema, func(ctx context.Context, tx *tenancy.Tx) error {
		return s.repo.Create(ctx, tx, product)
	})
	if err != nil {
		logFailure(s.logger, schema, "Failed to create product", err, nil)
		return nil, err
	}
	return product, nil
}

func (s *ProductService) GetProduct(ctx context.Context, schema string, id string) (*domain.Product, error) {
	product, err := tenancy.Run(ctx, s.transactor, schema, func(ctx context.Context, tx *tenancy.Tx) (*domain.Product, error) {
		return s.repo.GetByID(ctx, tx, id)
	})
	if err != nil {
		logFailure(s.logger, schema, "Failed to get product", err, map[string]interface{}{"product_id": id})
		return nil, err
	}
	if product == nil {
		return nil, &domain.ErrNotFound{Entity: "product", ID: id}
	}
	return product, nil
}

func (s *ProductService) ListProducts(ctx context.Context, schema string, params domain.ListParams) (*domain.ListResult[domain.Product], error) {
	result, err := tenancy.Run(ctx, s.transactor, schema, func(ctx context.Context, tx *tenancy.Tx) (*domain.ListResult[domain.Product], error) {
		return s.repo.List(ctx, tx, params)
	})
	if err != nil {
		logFailure(s.logger, schema, "Failed to list products", err, nil)
		return nil, err
	}
	return result, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, schema string, req *domain.UpdateProductRequest) (*domain.Product, error) {
	patch, err := req.Validate()
	if err != nil {
		return nil, err
	}

	product, err := tenancy.Run(ctx, s.transactor, schema, func(ctx context.Context, tx *tenancy.Tx) (*domain.Product, error) {
		return s.repo.Update(ctx, tx, req.ID, patch)
	})
	if err != nil {
		logFailure(s.logger, schema, "Failed to update product", err, map[string]interface{}{"product_id": req.ID})
		return nil, err
	}
	if product == nil {
		return nil, &domain.ErrNotFound{Entity: "product", ID: req.ID}
	}
	return product, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, schema string, id string) (bool, error) {
	deleted, err := tenancy.Run(ctx, s.transactor, schema, func(ctx context.Context, tx *tenancy.Tx) (bool, error) {
		return s.repo.Delete(ctx, tx, id)
	})
	if err != nil {
		logFailure(s.logger, schema, "Failed to delete product", err, map[string]interface{}{"product_id": id})
		return false, err
	}
	return deleted, nil
}
