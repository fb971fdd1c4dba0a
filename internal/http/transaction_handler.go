package http

import (
	"fmt"
	"net/http"

	"github.com/cafebonheur/pos/internal/model"
	"github.com/cafebonheur/pos/internal/service"
)

type transactionHandler struct {
	transactionSvc service.TransactionService
	offlineSvc     service.OfflineService
}

func newTransactionHandler(transactionSvc service.TransactionService, offlineSvc service.OfflineService) *transactionHandler {
	return &transactionHandler{
		transactionSvc: transactionSvc,
		offlineSvc:     offlineSvc,
	}
}

type lineItemRequest struct {
	Name  string  `json:"name"`
	Qty   int     `json:"qty"`
	Price float64 `json:"price"`
	Total float64 `json:"total"`
}

type createTransactionRequest struct {
	Items         []lineItemRequest `json:"items"`
	Subtotal      float64           `json:"subtotal"`
	Tax           float64           `json:"tax"`
	Discount      float64           `json:"discount"`
	Total         float64           `json:"total"`
	PaymentMethod string            `json:"paymentMethod"`
	Date          string            `json:"date"`
	Time          string            `json:"time"`
	Customer      string            `json:"customer"`
	Cashier       string            `json:"cashier"`
}

type checkoutLineRequest struct {
	Name  string  `json:"name"`
	Qty   int     `json:"qty"`
	Price float64 `json:"price"`
}

type checkoutRequest struct {
	Lines           []checkoutLineRequest `json:"lines"`
	DiscountPercent float64               `json:"discountPercent"`
	PaymentMethod   string                `json:"paymentMethod"`
	Customer        string                `json:"customer"`
	Cashier         string                `json:"cashier"`
}

type offlineRequest struct {
	Lines           []checkoutLineRequest `json:"lines"`
	DiscountPercent float64               `json:"discountPercent"`
	Customer        string                `json:"customer"`
	Cashier         string                `json:"cashier"`
}

func (h *transactionHandler) list(w http.ResponseWriter, r *http.Request) error {
	transactions, err := h.transactionSvc.ListTransactions(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		return fmt.Errorf("transaction service list transactions: %w", err)
	}

	return respondJSON(w, http.StatusOK, transactions)
}

func (h *transactionHandler) create(w http.ResponseWriter, r *http.Request) error {
	req, err := decodeJSON[createTransactionRequest](r)
	if err != nil {
		return err
	}

	items := make([]service.LineItemParams, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, service.LineItemParams{
			Name:  item.Name,
			Qty:   item.Qty,
			Price: item.Price,
			Total: item.Total,
		})
	}

	txn, err := h.transactionSvc.CreateTransaction(r.Context(), service.CreateTransactionParams{
		Items:         items,
		Subtotal:      req.Subtotal,
		Tax:           req.Tax,
		Discount:      req.Discount,
		Total:         req.Total,
		PaymentMethod: req.PaymentMethod,
		Date:          req.Date,
		Time:          req.Time,
		Customer:      req.Customer,
		Cashier:       req.Cashier,
	})
	if err != nil {
		return fmt.Errorf("transaction service create transaction: %w", err)
	}

	return respondJSON(w, http.StatusCreated, txn)
}

func (h *transactionHandler) checkout(w http.ResponseWriter, r *http.Request) error {
	req, err := decodeJSON[checkoutRequest](r)
	if err != nil {
		return err
	}

	txn, err := h.transactionSvc.Checkout(r.Context(), service.CheckoutParams{
		Lines:           checkoutLines(req.Lines),
		DiscountPercent: req.DiscountPercent,
		PaymentMethod:   req.PaymentMethod,
		Customer:        req.Customer,
		Cashier:         req.Cashier,
	})
	if err != nil {
		return fmt.Errorf("transaction service checkout: %w", err)
	}

	return respondJSON(w, http.StatusCreated, txn)
}

func (h *transactionHandler) listOffline(w http.ResponseWriter, r *http.Request) error {
	pending, err := h.offlineSvc.ListOffline(r.Context())
	if err != nil {
		return fmt.Errorf("offline service list offline: %w", err)
	}
	if pending == nil {
		pending = []model.Transaction{}
	}

	return respondJSON(w, http.StatusOK, pending)
}

func (h *transactionHandler) createOffline(w http.ResponseWriter, r *http.Request) error {
	req, err := decodeJSON[offlineRequest](r)
	if err != nil {
		return err
	}

	txn, err := h.offlineSvc.RecordOffline(r.Context(), service.OfflineParams{
		Lines:           checkoutLines(req.Lines),
		DiscountPercent: req.DiscountPercent,
		Customer:        req.Customer,
		Cashier:         req.Cashier,
	})
	if err != nil {
		return fmt.Errorf("offline service record offline: %w", err)
	}

	return respondJSON(w, http.StatusCreated, txn)
}

func (h *transactionHandler) syncOffline(w http.ResponseWriter, r *http.Request) error {
	synced, err := h.offlineSvc.SyncOffline(r.Context())
	if err != nil {
		return fmt.Errorf("offline service sync offline: %w", err)
	}

	return respondJSON(w, http.StatusOK, map[string]int{"synced": synced})
}

func checkoutLines(reqs []checkoutLineRequest) []service.CheckoutLine {
	lines := make([]service.CheckoutLine, 0, len(reqs))
	for _, line := range reqs {
		lines = append(lines, service.CheckoutLine{
			Name:  line.Name,
			Qty:   line.Qty,
			Price: line.Price,
		})
	}
	return lines
}
