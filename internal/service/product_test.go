package service_test

import (
	"context"
	"errors"
	"testing"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cafebonheur/pos/internal/service"
	"github.com/cafebonheur/pos/internal/store"
	"github.com/cafebonheur/pos/pkg/ptr"
	"github.com/cafebonheur/pos/pkg/validator"
	"github.com/cafebonheur/pos/pkg/zerror"
)

func newValidator(t *testing.T) validator.Validator {
	t.Helper()
	v, err := validator.NewDefaultValidator()
	require.NoError(t, err)
	return v
}

func TestProductServiceCreate(t *testing.T) {
	st := store.New(nil)
	svc := service.NewProductService(st, newValidator(t))

	t.Run("Should create a product", func(t *testing.T) {
		product, err := svc.CreateProduct(context.Background(), service.CreateProductParams{
			Name:     "Thé vert",
			Price:    3.00,
			Category: "Boissons",
			Stock:    20,
			Barcode:  "999",
			Supplier: "X",
		})

		require.NoError(t, err)
		assert.Equal(t, "Thé vert", product.Name)
		assert.NotZero(t, product.ID)

		products, err := svc.ListProducts(context.Background(), "")
		require.NoError(t, err)
		assert.Len(t, products, 6)
	})

	t.Run("Should reject a nameless product", func(t *testing.T) {
		_, err := svc.CreateProduct(context.Background(), service.CreateProductParams{Price: 2.00})

		var validationErrs govalidator.ValidationErrors
		require.ErrorAs(t, err, &validationErrs)
	})

	t.Run("Should reject a negative price", func(t *testing.T) {
		_, err := svc.CreateProduct(context.Background(), service.CreateProductParams{Name: "Brioche", Price: -1})

		var validationErrs govalidator.ValidationErrors
		require.ErrorAs(t, err, &validationErrs)
	})
}

func TestProductServiceUpdate(t *testing.T) {
	st := store.New(nil)
	svc := service.NewProductService(st, newValidator(t))

	t.Run("Should signal not found on unknown id", func(t *testing.T) {
		_, err := svc.UpdateProduct(context.Background(), 999999, service.UpdateProductParams{
			Price: ptr.New(2.00),
		})

		var zErr zerror.ZError
		require.True(t, errors.As(err, &zErr))
		assert.Equal(t, "PRODUCT_NOT_FOUND", zErr.Code())
	})

	t.Run("Should merge partial fields", func(t *testing.T) {
		target := st.Snapshot().Products[0]

		updated, err := svc.UpdateProduct(context.Background(), target.ID, service.UpdateProductParams{
			Stock: ptr.New(99),
		})

		require.NoError(t, err)
		assert.Equal(t, 99, updated.Stock)
		assert.Equal(t, target.Name, updated.Name)
	})
}

func TestProductServiceDelete(t *testing.T) {
	st := store.New(nil)
	svc := service.NewProductService(st, newValidator(t))

	target := st.Snapshot().Products[0]
	require.NoError(t, svc.DeleteProduct(context.Background(), target.ID))

	err := svc.DeleteProduct(context.Background(), target.ID)
	var zErr zerror.ZError
	require.True(t, errors.As(err, &zErr))
	assert.Equal(t, zerror.StatusNotFound, zErr.Status())
}

func TestProductServiceListFilter(t *testing.T) {
	st := store.New(nil)
	svc := service.NewProductService(st, newValidator(t))

	t.Run("Should match by name", func(t *testing.T) {
		products, err := svc.ListProducts(context.Background(), "croissant")
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Croissant", products[0].Name)
	})

	t.Run("Should match by category", func(t *testing.T) {
		products, err := svc.ListProducts(context.Background(), "boissons")
		require.NoError(t, err)
		assert.Len(t, products, 2)
	})

	t.Run("Should match by barcode", func(t *testing.T) {
		products, err := svc.ListProducts(context.Background(), "1234567890127")
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Sandwich jambon", products[0].Name)
	})

	t.Run("Should return nothing on a miss", func(t *testing.T) {
		products, err := svc.ListProducts(context.Background(), "pizza")
		require.NoError(t, err)
		assert.Empty(t, products)
	})
}
