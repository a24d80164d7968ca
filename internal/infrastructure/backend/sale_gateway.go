package backend

import (
	"context"
	"net/http"
	"time"

	"github.com/NahuFed/storefront/internal/core/domain"
	"github.com/NahuFed/storefront/internal/core/ports"
)

// SaleGateway covers sale creation and listing. All calls require the
// backend session cookie already present in the client's jar.
type SaleGateway struct {
	c *Client
}

func NewSaleGateway(c *Client) *SaleGateway {
	return &SaleGateway{c: c}
}

type wireSaleItem struct {
	ProductID   string  `json:"productId"`
	Name        string  `json:"name"`
	Quantity    int     `json:"quantity"`
	PriceAtSale float64 `json:"priceAtSale"`
	// Legacy records store the unit price under "price".
	Price float64 `json:"price"`
}

type wireSale struct {
	ID     string         `json:"id"`
	AltID  string         `json:"_id"`
	UserID string         `json:"userId"`
	Items  []wireSaleItem `json:"items"`
	Total  float64        `json:"total"`
	Date   time.Time      `json:"date"`
}

func (w wireSale) toDomain() domain.Sale {
	id := w.ID
	if id == "" {
		id = w.AltID
	}
	items := make([]domain.SaleItem, 0, len(w.Items))
	for _, it := range w.Items {
		price := it.PriceAtSale
		if price == 0 {
			price = it.Price
		}
		items = append(items, domain.SaleItem{
			ProductID:   it.ProductID,
			Name:        it.Name,
			Quantity:    it.Quantity,
			PriceAtSale: price,
		})
	}
	return domain.Sale{ID: id, UserID: w.UserID, Items: items, Total: w.Total, Date: w.Date}
}

func (g *SaleGateway) Create(ctx context.Context, input ports.SaleInput) (*domain.Sale, error) {
	var resp wireSale
	if err := g.c.do(ctx, "sales.create", http.MethodPost, "/api/sales", input, &resp); err != nil {
		return nil, err
	}
	sale := resp.toDomain()
	return &sale, nil
}

// MyHistory returns the authenticated user's purchases. The backend orders
// them newest first; the order is preserved as received.
func (g *SaleGateway) MyHistory(ctx context.Context) ([]domain.Sale, error) {
	return g.list(ctx, "sales.myhistory", "/api/sales/myhistory")
}

func (g *SaleGateway) List(ctx context.Context) ([]domain.Sale, error) {
	return g.list(ctx, "sales.list", "/api/sales")
}

func (g *SaleGateway) list(ctx context.Context, op, path string) ([]domain.Sale, error) {
	var resp []wireSale
	if err := g.c.do(ctx, op, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	sales := make([]domain.Sale, 0, len(resp))
	for _, ws := range resp {
		sales = append(sales, ws.toDomain())
	}
	return sales, nil
}

func (g *SaleGateway) Get(ctx context.Context, id string) (*domain.Sale, error) {
	var resp wireSale
	if err := g.c.do(ctx, "sales.get", http.MethodGet, "/api/sales/"+id, nil, &resp); err != nil {
		return nil, err
	}
	sale := resp.toDomain()
	return &sale, nil
}
