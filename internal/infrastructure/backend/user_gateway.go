package backend

import (
	"context"
	"net/http"

	"github.com/NahuFed/storefront/internal/core/domain"
	"github.com/NahuFed/storefront/internal/core/ports"
)

// UserGateway covers account CRUD. Create doubles as self-registration
// (unauthenticated); the remaining operations are admin screens and rely
// on the session cookie.
type UserGateway struct {
	c *Client
}

func NewUserGateway(c *Client) *UserGateway {
	return &UserGateway{c: c}
}

func (g *UserGateway) List(ctx context.Context) ([]domain.User, error) {
	var resp []wireUser
	if err := g.c.do(ctx, "users.list", http.MethodGet, "/api/users", nil, &resp); err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(resp))
	for _, wu := range resp {
		users = append(users, *wu.toDomain(""))
	}
	return users, nil
}

func (g *UserGateway) Create(ctx context.Context, input ports.UserInput) (*domain.User, error) {
	var resp wireUser
	if err := g.c.do(ctx, "users.create", http.MethodPost, "/api/users", input, &resp); err != nil {
		return nil, err
	}
	return resp.toDomain(input.Email), nil
}

func (g *UserGateway) Update(ctx context.Context, id string, input ports.UserInput) (*domain.User, error) {
	var resp wireUser
	if err := g.c.do(ctx, "users.update", http.MethodPut, "/api/users/"+id, input, &resp); err != nil {
		return nil, err
	}
	return resp.toDomain(input.Email), nil
}

func (g *UserGateway) Delete(ctx context.Context, id string) error {
	return g.c.do(ctx, "users.delete", http.MethodDelete, "/api/users/"+id, nil, nil)
}
