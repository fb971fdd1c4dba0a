package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/cafebonheur/pos/internal/apperr"
	"github.com/cafebonheur/pos/internal/model"
	"github.com/cafebonheur/pos/internal/store"
	"github.com/cafebonheur/pos/pkg/validator"
)

type CreateProductParams struct {
	Name     string  `validate:"required"`
	Price    float64 `validate:"gte=0"`
	Category string
	Stock    int `validate:"gte=0"`
	Barcode  string
	Supplier string
}

// UpdateProductParams is a partial update; nil fields are left unchanged.
type UpdateProductParams struct {
	Name     *string  `validate:"omitempty,min=1"`
	Price    *float64 `validate:"omitempty,gte=0"`
	Category *string
	Stock    *int `validate:"omitempty,gte=0"`
	Barcode  *string
	Supplier *string
}

type ProductService interface {
	ListProducts(ctx context.Context, query string) ([]model.Product, error)
	CreateProduct(ctx context.Context, params CreateProductParams) (model.Product, error)
	UpdateProduct(ctx context.Context, id int64, params UpdateProductParams) (model.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
}

type productService struct {
	st       *store.Store
	validate validator.Validator
}

func NewProductService(st *store.Store, validate validator.Validator) ProductService {
	return &productService{
		st:       st,
		validate: validate,
	}
}

func (s *productService) ListProducts(_ context.Context, query string) ([]model.Product, error) {
	products := s.st.Snapshot().Products
	if query == "" {
		return products, nil
	}

	filtered := make([]model.Product, 0, len(products))
	for _, p := range products {
		if matchProduct(p, query) {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// matchProduct is the products view's search predicate: name, category or
// barcode.
func matchProduct(p model.Product, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Category), q) ||
		strings.Contains(p.Barcode, query)
}

func (s *productService) CreateProduct(_ context.Context, params CreateProductParams) (model.Product, error) {
	if err := s.validate.Validate(params); err != nil {
		return model.Product{}, fmt.Errorf("validate create product params: %w", err)
	}

	product := s.st.AddProduct(store.ProductInput{
		Name:     params.Name,
		Price:    params.Price,
		Category: params.Category,
		Stock:    params.Stock,
		Barcode:  params.Barcode,
		Supplier: params.Supplier,
	})

	return product, nil
}

func (s *productService) UpdateProduct(_ context.Context, id int64, params UpdateProductParams) (model.Product, error) {
	if err := s.validate.Validate(params); err != nil {
		return model.Product{}, fmt.Errorf("validate update product params: %w", err)
	}

	product, ok := s.st.UpdateProduct(id, store.ProductUpdate{
		Name:     params.Name,
		Price:    params.Price,
		Category: params.Category,
		Stock:    params.Stock,
		Barcode:  params.Barcode,
		Supplier: params.Supplier,
	})
	if !ok {
		return model.Product{}, apperr.ProductNotFoundErr
	}

	return product, nil
}

func (s *productService) DeleteProduct(_ context.Context, id int64) error {
	if ok := s.st.DeleteProduct(id); !ok {
		return apperr.ProductNotFoundErr
	}
	return nil
}
