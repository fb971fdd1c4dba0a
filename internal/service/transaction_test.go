package service_test

import (
	"context"
	"strings"
	"testing"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cafebonheur/pos/internal/service"
	"github.com/cafebonheur/pos/internal/store"
)

func TestPriceCart(t *testing.T) {
	priced := service.PriceCart(service.CheckoutParams{
		Lines: []service.CheckoutLine{
			{Name: "Café noir", Qty: 2, Price: 2.50},
			{Name: "Croissant", Qty: 1, Price: 2.00},
		},
		DiscountPercent: 10,
		PaymentMethod:   "Carte",
		Cashier:         "Jean Dupont",
	})

	require.Len(t, priced.Items, 2)
	assert.InDelta(t, 5.00, priced.Items[0].Total, 1e-9)
	assert.InDelta(t, 2.00, priced.Items[1].Total, 1e-9)
	assert.InDelta(t, 7.00, priced.Subtotal, 1e-9)
	assert.InDelta(t, 0.70, priced.Discount, 1e-9)
	assert.InDelta(t, 0.56, priced.Tax, 1e-9)
	assert.InDelta(t, 6.30, priced.Total, 1e-9)
}

func TestPriceCartTaxNotCharged(t *testing.T) {
	priced := service.PriceCart(service.CheckoutParams{
		Lines:         []service.CheckoutLine{{Name: "Sandwich jambon", Qty: 1, Price: 7.00}},
		PaymentMethod: "Carte",
		Cashier:       "Jean Dupont",
	})

	assert.InDelta(t, 0.56, priced.Tax, 1e-9)
	assert.InDelta(t, 7.00, priced.Total, 1e-9)
}

func TestTransactionServiceCreate(t *testing.T) {
	st := store.New(nil)
	svc := service.NewTransactionService(st, newValidator(t))

	t.Run("Should record a transaction", func(t *testing.T) {
		txn, err := svc.CreateTransaction(context.Background(), service.CreateTransactionParams{
			Items:         []service.LineItemParams{{Name: "Café noir", Qty: 2, Price: 2.50, Total: 5.00}},
			Subtotal:      5.00,
			Tax:           0.40,
			Total:         5.40,
			PaymentMethod: "Carte",
			Cashier:       "Jean",
		})

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(txn.ID, "TXN-"))
		assert.NotEmpty(t, txn.Date)
		assert.NotEmpty(t, txn.Time)
	})

	t.Run("Should reject an empty cart", func(t *testing.T) {
		_, err := svc.CreateTransaction(context.Background(), service.CreateTransactionParams{
			PaymentMethod: "Carte",
			Cashier:       "Jean",
		})

		var validationErrs govalidator.ValidationErrors
		require.ErrorAs(t, err, &validationErrs)
	})

	t.Run("Should reject a zero-quantity line", func(t *testing.T) {
		_, err := svc.CreateTransaction(context.Background(), service.CreateTransactionParams{
			Items:         []service.LineItemParams{{Name: "Café noir", Qty: 0, Price: 2.50}},
			PaymentMethod: "Carte",
			Cashier:       "Jean",
		})

		var validationErrs govalidator.ValidationErrors
		require.ErrorAs(t, err, &validationErrs)
	})
}

func TestTransactionServiceCheckout(t *testing.T) {
	st := store.New(nil)
	svc := service.NewTransactionService(st, newValidator(t))

	txn, err := svc.Checkout(context.Background(), service.CheckoutParams{
		Lines:           []service.CheckoutLine{{Name: "Jus d'orange", Qty: 3, Price: 4.00}},
		DiscountPercent: 0,
		PaymentMethod:   "Espèces",
		Customer:        "Marie Dubois",
		Cashier:         "Pierre Bernard",
	})

	require.NoError(t, err)
	assert.InDelta(t, 12.00, txn.Subtotal, 1e-9)
	assert.InDelta(t, 0.96, txn.Tax, 1e-9)
	assert.InDelta(t, 12.00, txn.Total, 1e-9)

	transactions, err := svc.ListTransactions(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, transactions, 2)
}

func TestTransactionServiceListFilter(t *testing.T) {
	st := store.New(nil)
	svc := service.NewTransactionService(st, newValidator(t))

	t.Run("Should match by id", func(t *testing.T) {
		transactions, err := svc.ListTransactions(context.Background(), "txn-001")
		require.NoError(t, err)
		assert.Len(t, transactions, 1)
	})

	t.Run("Should match by customer", func(t *testing.T) {
		transactions, err := svc.ListTransactions(context.Background(), "marie")
		require.NoError(t, err)
		assert.Len(t, transactions, 1)
	})

	t.Run("Should match by date", func(t *testing.T) {
		transactions, err := svc.ListTransactions(context.Background(), "2024-01-15")
		require.NoError(t, err)
		assert.Len(t, transactions, 1)
	})
}
