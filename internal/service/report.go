package service

import (
	"context"
	"sort"

	"github.com/cafebonheur/pos/internal/model"
	"github.com/cafebonheur/pos/internal/store"
)

// Summary is the dashboard header: totals over all recorded transactions.
type Summary struct {
	TotalRevenue    float64 `json:"totalRevenue"`
	Transactions    int     `json:"transactions"`
	UniqueCustomers int     `json:"uniqueCustomers"`
	// LoyalCustomers counts customers holding more than 1000 points.
	LoyalCustomers int `json:"loyalCustomers"`
}

// DaySales is one point of the revenue-by-day series.
type DaySales struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

// ProductSales is one row of the top-products ranking.
type ProductSales struct {
	Name string `json:"name"`
	Sold int    `json:"sold"`
	// Revenue is quantity sold times the current catalog price, zero when
	// the product no longer exists.
	Revenue float64 `json:"revenue"`
}

// PaymentMethodCount is one slice of the payment-method distribution.
type PaymentMethodCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type ReportService interface {
	Summary(ctx context.Context) (Summary, error)
	SalesByDay(ctx context.Context) ([]DaySales, error)
	TopProducts(ctx context.Context) ([]ProductSales, error)
	PaymentMethods(ctx context.Context) ([]PaymentMethodCount, error)
}

type reportService struct {
	st *store.Store
}

func NewReportService(st *store.Store) ReportService {
	return &reportService{st: st}
}

func (s *reportService) Summary(_ context.Context) (Summary, error) {
	snap := s.st.Snapshot()
	return ComputeSummary(snap.Transactions, snap.Customers), nil
}

func (s *reportService) SalesByDay(_ context.Context) ([]DaySales, error) {
	return ComputeSalesByDay(s.st.Snapshot().Transactions, 7), nil
}

func (s *reportService) TopProducts(_ context.Context) ([]ProductSales, error) {
	snap := s.st.Snapshot()
	return ComputeTopProducts(snap.Transactions, snap.Products, 5), nil
}

func (s *reportService) PaymentMethods(_ context.Context) ([]PaymentMethodCount, error) {
	return ComputePaymentMethods(s.st.Snapshot().Transactions), nil
}

// ComputeSummary aggregates the headline figures.
func ComputeSummary(transactions []model.Transaction, customers []model.Customer) Summary {
	var revenue float64
	seen := map[string]struct{}{}
	for _, txn := range transactions {
		revenue += txn.Total
		if txn.Customer != "" {
			seen[txn.Customer] = struct{}{}
		}
	}

	loyal := 0
	for _, c := range customers {
		if c.Points > 1000 {
			loyal++
		}
	}

	return Summary{
		TotalRevenue:    revenue,
		Transactions:    len(transactions),
		UniqueCustomers: len(seen),
		LoyalCustomers:  loyal,
	}
}

// ComputeSalesByDay groups transactions by date, sorts ascending, and
// keeps the trailing lastN days.
func ComputeSalesByDay(transactions []model.Transaction, lastN int) []DaySales {
	grouped := map[string]*DaySales{}
	for _, txn := range transactions {
		day, ok := grouped[txn.Date]
		if !ok {
			day = &DaySales{Date: txn.Date}
			grouped[txn.Date] = day
		}
		day.Revenue += txn.Total
		day.Orders++
	}

	series := make([]DaySales, 0, len(grouped))
	for _, day := range grouped {
		series = append(series, *day)
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Date < series[j].Date })

	if lastN > 0 && len(series) > lastN {
		series = series[len(series)-lastN:]
	}
	return series
}

// ComputeTopProducts ranks line items by quantity sold and keeps the
// top n.
func ComputeTopProducts(transactions []model.Transaction, products []model.Product, n int) []ProductSales {
	sold := map[string]int{}
	for _, txn := range transactions {
		for _, item := range txn.Items {
			sold[item.Name] += item.Qty
		}
	}

	priceByName := map[string]float64{}
	for _, p := range products {
		priceByName[p.Name] = p.Price
	}

	ranking := make([]ProductSales, 0, len(sold))
	for name, qty := range sold {
		ranking = append(ranking, ProductSales{
			Name:    name,
			Sold:    qty,
			Revenue: float64(qty) * priceByName[name],
		})
	}
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Sold != ranking[j].Sold {
			return ranking[i].Sold > ranking[j].Sold
		}
		return ranking[i].Name < ranking[j].Name
	})

	if n > 0 && len(ranking) > n {
		ranking = ranking[:n]
	}
	return ranking
}

// ComputePaymentMethods counts transactions per payment-method label.
func ComputePaymentMethods(transactions []model.Transaction) []PaymentMethodCount {
	counts := map[string]int{}
	for _, txn := range transactions {
		counts[txn.PaymentMethod]++
	}

	dist := make([]PaymentMethodCount, 0, len(counts))
	for name, count := range counts {
		dist = append(dist, PaymentMethodCount{Name: name, Count: count})
	}
	sort.Slice(dist, func(i, j int) bool {
		if dist[i].Count != dist[j].Count {
			return dist[i].Count > dist[j].Count
		}
		return dist[i].Name < dist[j].Name
	})
	return dist
}
