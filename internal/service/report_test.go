package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cafebonheur/pos/internal/model"
	"github.com/cafebonheur/pos/internal/service"
	"github.com/cafebonheur/pos/internal/store"
)

func fixtureTransactions() []model.Transaction {
	return []model.Transaction{
		{
			ID:    "TXN-001",
			Items: []model.LineItem{{Name: "Café noir", Qty: 2, Price: 2.50, Total: 5.00}},
			Total: 5.40, PaymentMethod: "Carte", Date: "2024-01-14", Customer: "Marie Dubois",
		},
		{
			ID:    "TXN-002",
			Items: []model.LineItem{{Name: "Croissant", Qty: 3, Price: 2.00, Total: 6.00}},
			Total: 6.48, PaymentMethod: "Espèces", Date: "2024-01-15", Customer: "Jean Martin",
		},
		{
			ID:    "TXN-003",
			Items: []model.LineItem{{Name: "Café noir", Qty: 1, Price: 2.50, Total: 2.50}},
			Total: 2.70, PaymentMethod: "Carte", Date: "2024-01-15", Customer: "Marie Dubois",
		},
	}
}

func TestComputeSummary(t *testing.T) {
	customers := []model.Customer{
		{ID: 1, Points: 1250},
		{ID: 2, Points: 850},
		{ID: 3, Points: 2100},
	}

	summary := service.ComputeSummary(fixtureTransactions(), customers)

	assert.InDelta(t, 14.58, summary.TotalRevenue, 1e-9)
	assert.Equal(t, 3, summary.Transactions)
	assert.Equal(t, 2, summary.UniqueCustomers)
	assert.Equal(t, 2, summary.LoyalCustomers)
}

func TestComputeSalesByDay(t *testing.T) {
	series := service.ComputeSalesByDay(fixtureTransactions(), 7)

	require.Len(t, series, 2)
	assert.Equal(t, "2024-01-14", series[0].Date)
	assert.InDelta(t, 5.40, series[0].Revenue, 1e-9)
	assert.Equal(t, 1, series[0].Orders)
	assert.Equal(t, "2024-01-15", series[1].Date)
	assert.InDelta(t, 9.18, series[1].Revenue, 1e-9)
	assert.Equal(t, 2, series[1].Orders)
}

func TestComputeSalesByDayWindow(t *testing.T) {
	transactions := make([]model.Transaction, 0, 10)
	for _, date := range []string{
		"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04", "2024-01-05",
		"2024-01-06", "2024-01-07", "2024-01-08", "2024-01-09", "2024-01-10",
	} {
		transactions = append(transactions, model.Transaction{Date: date, Total: 1})
	}

	series := service.ComputeSalesByDay(transactions, 7)

	require.Len(t, series, 7)
	assert.Equal(t, "2024-01-04", series[0].Date)
	assert.Equal(t, "2024-01-10", series[6].Date)
}

func TestComputeTopProducts(t *testing.T) {
	products := []model.Product{
		{Name: "Café noir", Price: 2.50},
		{Name: "Croissant", Price: 2.00},
	}

	ranking := service.ComputeTopProducts(fixtureTransactions(), products, 5)

	require.Len(t, ranking, 2)
	assert.Equal(t, "Café noir", ranking[0].Name)
	assert.Equal(t, 3, ranking[0].Sold)
	assert.InDelta(t, 7.50, ranking[0].Revenue, 1e-9)
	assert.Equal(t, "Croissant", ranking[1].Name)
	assert.Equal(t, 3, ranking[1].Sold)
}

func TestComputeTopProductsUnknownProduct(t *testing.T) {
	transactions := []model.Transaction{
		{Items: []model.LineItem{{Name: "Produit retiré", Qty: 4, Price: 1.00, Total: 4.00}}},
	}

	ranking := service.ComputeTopProducts(transactions, nil, 5)

	require.Len(t, ranking, 1)
	assert.Zero(t, ranking[0].Revenue)
}

func TestComputePaymentMethods(t *testing.T) {
	dist := service.ComputePaymentMethods(fixtureTransactions())

	require.Len(t, dist, 2)
	assert.Equal(t, service.PaymentMethodCount{Name: "Carte", Count: 2}, dist[0])
	assert.Equal(t, service.PaymentMethodCount{Name: "Espèces", Count: 1}, dist[1])
}

func TestReportServiceOverStore(t *testing.T) {
	st := store.New(nil)
	svc := service.NewReportService(st)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Transactions)
	assert.InDelta(t, 9.72, summary.TotalRevenue, 1e-9)
	assert.Equal(t, 2, summary.LoyalCustomers)
}
