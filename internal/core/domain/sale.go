package domain

import "time"

// SaleItem records one purchased line at the price it had when the sale was
// created. PriceAtSale is deliberate: catalog prices drift, sale records
// must not.
type SaleItem struct {
	ProductID   string  `json:"productId"`
	Name        string  `json:"name,omitempty"`
	Quantity    int     `json:"quantity"`
	PriceAtSale float64 `json:"priceAtSale"`
}

// Sale is a completed purchase as the backend records it. Total and Date
// are computed server-side; the client never derives them.
type Sale struct {
	ID     string     `json:"id"`
	UserID string     `json:"userId,omitempty"`
	Items  []SaleItem `json:"items"`
	Total  float64    `json:"total"`
	Date   time.Time  `json:"date"`
}
