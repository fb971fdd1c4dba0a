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

// CreateCustomerParams carries the caller-supplied customer fields.
// Loyalty points, visit count and last visit are always generated.
type CreateCustomerParams struct {
	FirstName string `validate:"required"`
	LastName  string `validate:"required"`
	Email     string `validate:"omitempty,email"`
	Phone     string
	Address   string
}

// UpdateCustomerParams is a partial update; nil fields are left unchanged.
type UpdateCustomerParams struct {
	FirstName *string `validate:"omitempty,min=1"`
	LastName  *string `validate:"omitempty,min=1"`
	Email     *string `validate:"omitempty,email"`
	Phone     *string
	Address   *string
	Points    *int `validate:"omitempty,gte=0"`
	Visits    *int `validate:"omitempty,gte=0"`
	LastVisit *string
}

type CustomerService interface {
	ListCustomers(ctx context.Context, query string) ([]model.Customer, error)
	CreateCustomer(ctx context.Context, params CreateCustomerParams) (model.Customer, error)
	UpdateCustomer(ctx context.Context, id int64, params UpdateCustomerParams) (model.Customer, error)
	DeleteCustomer(ctx context.Context, id int64) error
}

type customerService struct {
	st       *store.Store
	validate validator.Validator
}

func NewCustomerService(st *store.Store, validate validator.Validator) CustomerService {
	return &customerService{
		st:       st,
		validate: validate,
	}
}

func (s *customerService) ListCustomers(_ context.Context, query string) ([]model.Customer, error) {
	customers := s.st.Snapshot().Customers
	if query == "" {
		return customers, nil
	}

	filtered := make([]model.Customer, 0, len(customers))
	for _, c := range customers {
		if matchCustomer(c, query) {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

// matchCustomer is the customers view's search predicate: name, email or
// phone.
func matchCustomer(c model.Customer, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(c.FirstName), q) ||
		strings.Contains(strings.ToLower(c.LastName), q) ||
		strings.Contains(strings.ToLower(c.Email), q) ||
		strings.Contains(c.Phone, query)
}

func (s *customerService) CreateCustomer(_ context.Context, params CreateCustomerParams) (model.Customer, error) {
	if err := s.validate.Validate(params); err != nil {
		return model.Customer{}, fmt.Errorf("validate create customer params: %w", err)
	}

	customer := s.st.AddCustomer(store.CustomerInput{
		FirstName: params.FirstName,
		LastName:  params.LastName,
		Email:     params.Email,
		Phone:     params.Phone,
		Address:   params.Address,
	})

	return customer, nil
}

func (s *customerService) UpdateCustomer(_ context.Context, id int64, params UpdateCustomerParams) (model.Customer, error) {
	if err := s.validate.Validate(params); err != nil {
		return model.Customer{}, fmt.Errorf("validate update customer params: %w", err)
	}

	customer, ok := s.st.UpdateCustomer(id, store.CustomerUpdate{
		FirstName: params.FirstName,
		LastName:  params.LastName,
		Email:     params.Email,
		Phone:     params.Phone,
		Address:   params.Address,
		Points:    params.Points,
		Visits:    params.Visits,
		LastVisit: params.LastVisit,
	})
	if !ok {
		return model.Customer{}, apperr.CustomerNotFoundErr
	}

	return customer, nil
}

func (s *customerService) DeleteCustomer(_ context.Context, id int64) error {
	if ok := s.st.DeleteCustomer(id); !ok {
		return apperr.CustomerNotFoundErr
	}
	return nil
}
