package services

import (
	"context"
	"strings"
	"time"

	"qkart/apierror"
	"qkart/models"
)

const (
	MsgProductNotFound = "Product not found"
	MsgNoProductsFound = "No products found"
)

type ProductService struct {
	products ProductStore
	now      func() time.Time
}

func NewProductService(products ProductStore) *ProductService {
	return &ProductService{products: products, now: time.Now}
}

func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, apierror.Internal("Failed to fetch products", err)
	}
	return products, nil
}

func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.Internal("Failed to fetch product", err)
	}
	if product == nil {
		return nil, apierror.NotFound(MsgProductNotFound)
	}
	return product, nil
}

// Search matches value against product name and category, case-insensitively.
// An empty result is reported as NotFound.
func (s *ProductService) Search(ctx context.Context, value string) ([]models.Product, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return s.List(ctx)
	}
	products, err := s.products.Search(ctx, value)
	if err != nil {
		return nil, apierror.Internal("Failed to search products", err)
	}
	if len(products) == 0 {
		return nil, apierror.NotFound(MsgNoProductsFound)
	}
	return products, nil
}

func (s *ProductService) Create(ctx context.Context, product *models.Product) error {
	now := s.now()
	product.CreatedAt = now
	product.UpdatedAt = now
	if err := s.products.Create(ctx, product); err != nil {
		return apierror.Internal("Failed to create product", err)
	}
	return nil
}

func (s *ProductService) Update(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error) {
	product, err := s.products.Update(ctx, id, patch)
	if err != nil {
		return nil, apierror.Internal("Failed to update product", err)
	}
	if product == nil {
		return nil, apierror.NotFound(MsgProductNotFound)
	}
	return product, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	deleted, err := s.products.Delete(ctx, id)
	if err != nil {
		return apierror.Internal("Failed to delete product", err)
	}
	if !deleted {
		return apierror.NotFound(MsgProductNotFound)
	}
	return nil
}
