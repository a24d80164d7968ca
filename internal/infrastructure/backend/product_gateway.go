package backend

import (
	"context"
	"net/http"

	"github.com/NahuFed/storefront/internal/core/domain"
	"github.com/NahuFed/storefront/internal/core/ports"
)

type ProductGateway struct {
	c *Client
}

func NewProductGateway(c *Client) *ProductGateway {
	return &ProductGateway{c: c}
}

type wireProduct struct {
	ID          string  `json:"id"`
	AltID       string  `json:"_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Code        string  `json:"code"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	ImgURL      string  `json:"imgUrl"`
}

func (w wireProduct) toDomain() domain.Product {
	id := w.ID
	if id == "" {
		id = w.AltID
	}
	return domain.Product{
		ID:          id,
		Name:        w.Name,
		Description: w.Description,
		Code:        w.Code,
		Category:    w.Category,
		Price:       w.Price,
		Stock:       w.Stock,
		ImgURL:      w.ImgURL,
	}
}

func (g *ProductGateway) List(ctx context.Context) ([]domain.Product, error) {
	var resp []wireProduct
	if err := g.c.do(ctx, "products.list", http.MethodGet, "/api/products", nil, &resp); err != nil {
		return nil, err
	}
	products := make([]domain.Product, 0, len(resp))
	for _, wp := range resp {
		products = append(products, wp.toDomain())
	}
	return products, nil
}

func (g *ProductGateway) Get(ctx context.Context, id string) (*domain.Product, error) {
	var resp wireProduct
	if err := g.c.do(ctx, "products.get", http.MethodGet, "/api/products/"+id, nil, &resp); err != nil {
		return nil, err
	}
	p := resp.toDomain()
	return &p, nil
}

func (g *ProductGateway) Create(ctx context.Context, input ports.ProductInput) (*domain.Product, error) {
	var resp wireProduct
	if err := g.c.do(ctx, "products.create", http.MethodPost, "/api/products", input, &resp); err != nil {
		return nil, err
	}
	p := resp.toDomain()
	return &p, nil
}

func (g *ProductGateway) Update(ctx context.Context, id string, input ports.ProductInput) (*domain.Product, error) {
	var resp wireProduct
	if err := g.c.do(ctx, "products.update", http.MethodPut, "/api/products/"+id, input, &resp); err != nil {
		return nil, err
	}
	p := resp.toDomain()
	return &p, nil
}

func (g *ProductGateway) Delete(ctx context.Context, id string) error {
	return g.c.do(ctx, "products.delete", http.MethodDelete, "/api/products/"+id, nil, nil)
}
