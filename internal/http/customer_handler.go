package http

import (
	"fmt"
	"net/http"

	"github.com/cafebonheur/pos/internal/service"
)

type customerHandler struct {
	customerSvc service.CustomerService
}

func newCustomerHandler(customerSvc service.CustomerService) *customerHandler {
	return &customerHandler{
		customerSvc: customerSvc,
	}
}

type createCustomerRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

type updateCustomerRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Email     *string `json:"email"`
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
	Points    *int    `json:"points"`
	Visits    *int    `json:"visits"`
	LastVisit *string `json:"lastVisit"`
}

func (h *customerHandler) list(w http.ResponseWriter, r *http.Request) error {
	customers, err := h.customerSvc.ListCustomers(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		return fmt.Errorf("customer service list customers: %w", err)
	}

	return respondJSON(w, http.StatusOK, customers)
}

func (h *customerHandler) create(w http.ResponseWriter, r *http.Request) error {
	req, err := decodeJSON[createCustomerRequest](r)
	if err != nil {
		return err
	}

	customer, err := h.customerSvc.CreateCustomer(r.Context(), service.CreateCustomerParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
	})
	if err != nil {
		return fmt.Errorf("customer service create customer: %w", err)
	}

	return respondJSON(w, http.StatusCreated, customer)
}

func (h *customerHandler) update(w http.ResponseWriter, r *http.Request) error {
	id, err := idParam(r)
	if err != nil {
		return err
	}

	req, err := decodeJSON[updateCustomerRequest](r)
	if err != nil {
		return err
	}

	customer, err := h.customerSvc.UpdateCustomer(r.Context(), id, service.UpdateCustomerParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		Points:    req.Points,
		Visits:    req.Visits,
		LastVisit: req.LastVisit,
	})
	if err != nil {
		return fmt.Errorf("customer service update customer: %w", err)
	}

	return respondJSON(w, http.StatusOK, customer)
}

func (h *customerHandler) delete(w http.ResponseWriter, r *http.Request) error {
	id, err := idParam(r)
	if err != nil {
		return err
	}

	if err := h.customerSvc.DeleteCustomer(r.Context(), id); err != nil {
		return fmt.Errorf("customer service delete customer: %w", err)
	}

	return respondJSON(w, http.StatusNoContent, nil)
}
