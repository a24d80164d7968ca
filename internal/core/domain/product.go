package domain

// Product is a catalog entry as returned by the backend. Stock is
// informational only; the cart does not enforce it (the backend rejects
// oversold checkouts).
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Code        string  `json:"code,omitempty"`
	Category    string  `json:"category,omitempty"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	ImgURL      string  `json:"imgUrl,omitempty"`
}
