package model

// LineItem is one product entry within a transaction. Total is supplied by
// the caller and never recomputed.
type LineItem struct {
	Name  string  `json:"name"`
	Qty   int     `json:"qty"`
	Price float64 `json:"price"`
	Total float64 `json:"total"`
}

// Transaction is an immutable record of a completed sale. There is no
// update or delete operation for it.
type Transaction struct {
	ID            string     `json:"id"`
	Items         []LineItem `json:"items"`
	Subtotal      float64    `json:"subtotal"`
	Tax           float64    `json:"tax"`
	Discount      float64    `json:"discount"`
	Total         float64    `json:"total"`
	PaymentMethod string     `json:"paymentMethod"`
	// Date is YYYY-MM-DD, Time is HH:MM.
	Date     string `json:"date"`
	Time     string `json:"time"`
	Customer string `json:"customer,omitempty"`
	Cashier  string `json:"cashier"`
}
