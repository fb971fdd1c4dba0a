package model

// Product is a catalog entry. JSON tags follow the persisted slot layout.
type Product struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	Stock    int     `json:"stock"`
	Barcode  string  `json:"barcode"`
	Supplier string  `json:"supplier"`
}
