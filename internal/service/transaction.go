package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/cafebonheur/pos/internal/model"
	"github.com/cafebonheur/pos/internal/store"
	"github.com/cafebonheur/pos/pkg/validator"
)

// taxRate is the flat sales tax applied at checkout.
const taxRate = 0.08

type LineItemParams struct {
	Name  string  `validate:"required"`
	Qty   int     `validate:"gt=0"`
	Price float64 `validate:"gte=0"`
	// Total is caller-supplied, never recomputed from Qty and Price.
	Total float64 `validate:"gte=0"`
}

// CreateTransactionParams carries a fully priced transaction. Date and
// time default to now when empty.
type CreateTransactionParams struct {
	Items         []LineItemParams `validate:"required,min=1,dive"`
	Subtotal      float64          `validate:"gte=0"`
	Tax           float64          `validate:"gte=0"`
	Discount      float64          `validate:"gte=0"`
	Total         float64          `validate:"gte=0"`
	PaymentMethod string           `validate:"required"`
	Date          string
	Time          string
	Customer      string
	Cashier       string `validate:"required"`
}

// CheckoutLine is one cart row before pricing.
type CheckoutLine struct {
	Name  string  `validate:"required"`
	Qty   int     `validate:"gt=0"`
	Price float64 `validate:"gte=0"`
}

// CheckoutParams is a cart to be priced and recorded: line totals, the
// percentage discount, the flat tax and the grand total are computed here.
type CheckoutParams struct {
	Lines           []CheckoutLine `validate:"required,min=1,dive"`
	DiscountPercent float64        `validate:"gte=0,lte=100"`
	PaymentMethod   string         `validate:"required"`
	Customer        string
	Cashier         string `validate:"required"`
}

type TransactionService interface {
	ListTransactions(ctx context.Context, query string) ([]model.Transaction, error)
	CreateTransaction(ctx context.Context, params CreateTransactionParams) (model.Transaction, error)
	Checkout(ctx context.Context, params CheckoutParams) (model.Transaction, error)
}

type transactionService struct {
	st       *store.Store
	validate validator.Validator
}

func NewTransactionService(st *store.Store, validate validator.Validator) TransactionService {
	return &transactionService{
		st:       st,
		validate: validate,
	}
}

func (s *transactionService) ListTransactions(_ context.Context, query string) ([]model.Transaction, error) {
	transactions := s.st.Snapshot().Transactions
	if query == "" {
		return transactions, nil
	}

	filtered := make([]model.Transaction, 0, len(transactions))
	for _, txn := range transactions {
		if matchTransaction(txn, query) {
			filtered = append(filtered, txn)
		}
	}
	return filtered, nil
}

// matchTransaction is the receipts view's search predicate: id, customer
// or date.
func matchTransaction(txn model.Transaction, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(txn.ID), q) ||
		(txn.Customer != "" && strings.Contains(strings.ToLower(txn.Customer), q)) ||
		strings.Contains(txn.Date, query)
}

func (s *transactionService) CreateTransaction(_ context.Context, params CreateTransactionParams) (model.Transaction, error) {
	if err := s.validate.Validate(params); err != nil {
		return model.Transaction{}, fmt.Errorf("validate create transaction params: %w", err)
	}

	txn := s.st.AddTransaction(transactionInput(params))
	return txn, nil
}

// Checkout prices the cart and records the resulting transaction.
func (s *transactionService) Checkout(ctx context.Context, params CheckoutParams) (model.Transaction, error) {
	if err := s.validate.Validate(params); err != nil {
		return model.Transaction{}, fmt.Errorf("validate checkout params: %w", err)
	}

	priced := PriceCart(params)

	txn, err := s.CreateTransaction(ctx, priced)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}
	return txn, nil
}

// PriceCart turns cart lines into a fully priced transaction: per-line
// totals, subtotal, percentage discount and flat tax on the subtotal.
// The tax is recorded on the transaction but not charged; the grand
// total is subtotal minus discount.
func PriceCart(params CheckoutParams) CreateTransactionParams {
	items := make([]LineItemParams, 0, len(params.Lines))
	var subtotal float64
	for _, line := range params.Lines {
		total := line.Price * float64(line.Qty)
		subtotal += total
		items = append(items, LineItemParams{
			Name:  line.Name,
			Qty:   line.Qty,
			Price: line.Price,
			Total: total,
		})
	}

	discount := subtotal * params.DiscountPercent / 100
	tax := subtotal * taxRate

	return CreateTransactionParams{
		Items:         items,
		Subtotal:      subtotal,
		Tax:           tax,
		Discount:      discount,
		Total:         subtotal - discount,
		PaymentMethod: params.PaymentMethod,
		Customer:      params.Customer,
		Cashier:       params.Cashier,
	}
}

func transactionInput(params CreateTransactionParams) store.TransactionInput {
	items := make([]model.LineItem, 0, len(params.Items))
	for _, item := range params.Items {
		items = append(items, model.LineItem{
			Name:  item.Name,
			Qty:   item.Qty,
			Price: item.Price,
			Total: item.Total,
		})
	}

	return store.TransactionInput{
		Items:         items,
		Subtotal:      params.Subtotal,
		Tax:           params.Tax,
		Discount:      params.Discount,
		Total:         params.Total,
		PaymentMethod: params.PaymentMethod,
		Date:          params.Date,
		Time:          params.Time,
		Customer:      params.Customer,
		Cashier:       params.Cashier,
	}
}
