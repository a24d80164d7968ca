package domain

// CartLine is one product-quantity-price tuple in the cart. The cart holds
// at most one line per product id; repeated adds increment Quantity.
type CartLine struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImgURL    string  `json:"imgUrl,omitempty"`
	Quantity  int     `json:"quantity"`
}

// Subtotal is the line's contribution to the cart total.
func (l CartLine) Subtotal() float64 {
	return l.Price * float64(l.Quantity)
}
