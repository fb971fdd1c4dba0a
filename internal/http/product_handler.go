package http

import (
	"fmt"
	"net/http"

	"github.com/cafebonheur/pos/internal/service"
)

type productHandler struct {
	productSvc service.ProductService
}

func newProductHandler(productSvc service.ProductService) *productHandler {
	return &productHandler{
		productSvc: productSvc,
	}
}

type createProductRequest struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	Stock    int     `json:"stock"`
	Barcode  string  `json:"barcode"`
	Supplier string  `json:"supplier"`
}

type updateProductRequest struct {
	Name     *string  `json:"name"`
	Price    *float64 `json:"price"`
	Category *string  `json:"category"`
	Stock    *int     `json:"stock"`
	Barcode  *string  `json:"barcode"`
	Supplier *string  `json:"supplier"`
}

func (h *productHandler) list(w http.ResponseWriter, r *http.Request) error {
	products, err := h.productSvc.ListProducts(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		return fmt.Errorf("product service list products: %w", err)
	}

	return respondJSON(w, http.StatusOK, products)
}

func (h *productHandler) create(w http.ResponseWriter, r *http.Request) error {
	req, err := decodeJSON[createProductRequest](r)
	if err != nil {
		return err
	}

	product, err := h.productSvc.CreateProduct(r.Context(), service.CreateProductParams{
		Name:     req.Name,
		Price:    req.Price,
		Category: req.Category,
		Stock:    req.Stock,
		Barcode:  req.Barcode,
		Supplier: req.Supplier,
	})
	if err != nil {
		return fmt.Errorf("product service create product: %w", err)
	}

	return respondJSON(w, http.StatusCreated, product)
}

func (h *productHandler) update(w http.ResponseWriter, r *http.Request) error {
	id, err := idParam(r)
	if err != nil {
		return err
	}

	req, err := decodeJSON[updateProductRequest](r)
	if err != nil {
		return err
	}

	product, err := h.productSvc.UpdateProduct(r.Context(), id, service.UpdateProductParams{
		Name:     req.Name,
		Price:    req.Price,
		Category: req.Category,
		Stock:    req.Stock,
		Barcode:  req.Barcode,
		Supplier: req.Supplier,
	})
	if err != nil {
		return fmt.Errorf("product service update product: %w", err)
	}

	return respondJSON(w, http.StatusOK, product)
}

func (h *productHandler) delete(w http.ResponseWriter, r *http.Request) error {
	id, err := idParam(r)
	if err != nil {
		return err
	}

	if err := h.productSvc.DeleteProduct(r.Context(), id); err != nil {
		return fmt.Errorf("product service delete product: %w", err)
	}

	return respondJSON(w, http.StatusNoContent, nil)
}
