package backend

import (
	"context"
	"net/http"

	"github.com/NahuFed/storefront/internal/core/domain"
)

// AuthGateway talks to the backend's session endpoints.
type AuthGateway struct {
	c *Client
}

func NewAuthGateway(c *Client) *AuthGateway {
	return &AuthGateway{c: c}
}

// wireUser tolerates both id shapes the backend emits (mongo-era "_id" and
// the newer "id") and backfills defaults the way the legacy client did.
type wireUser struct {
	ID       string `json:"id"`
	AltID    string `json:"_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func (w wireUser) toDomain(fallbackEmail string) *domain.User {
	id := w.ID
	if id == "" {
		id = w.AltID
	}
	email := w.Email
	if email == "" {
		email = fallbackEmail
	}
	role := w.Role
	if role == "" {
		role = domain.RoleUser
	}
	return &domain.User{ID: id, Name: w.Username, Email: email, Role: role}
}

type loginResponse struct {
	User wireUser `json:"user"`
}

func (g *AuthGateway) Login(ctx context.Context, email, password string) (*domain.User, error) {
	req := map[string]string{"email": email, "password": password}
	var resp loginResponse
	if err := g.c.do(ctx, "auth.login", http.MethodPost, "/api/login", req, &resp); err != nil {
		return nil, err
	}
	return resp.User.toDomain(email), nil
}

func (g *AuthGateway) Me(ctx context.Context) (*domain.User, error) {
	var resp wireUser
	if err := g.c.do(ctx, "auth.me", http.MethodGet, "/api/me", nil, &resp); err != nil {
		return nil, err
	}
	return resp.toDomain(""), nil
}

func (g *AuthGateway) Logout(ctx context.Context) error {
	// Body deliberately ignored; callers treat failures as best-effort.
	return g.c.do(ctx, "auth.logout", http.MethodPost, "/api/logout", struct{}{}, nil)
}
