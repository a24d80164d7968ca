// Package ports defines the interfaces between the storefront core and its
// collaborators: the remote commerce backend and the session mirror.
package ports

import (
	"context"

	"github.com/NahuFed/storefront/internal/core/domain"
)

// AuthGateway covers the backend's session endpoints. All calls ride the
// session's cookie jar; the auth cookie itself is httpOnly and never parsed
// by this client.
type AuthGateway interface {
	// Login exchanges credentials for an identity. The backend sets the
	// session cookie on success.
	Login(ctx context.Context, email, password string) (*domain.User, error)
	// Me returns the identity bound to the current session cookie.
	Me(ctx context.Context) (*domain.User, error)
	// Logout invalidates the backend session. The response body is ignored.
	Logout(ctx context.Context) error
}

// SaleInput is the checkout payload. Total, user id and date are computed
// by the backend.
type SaleInput struct {
	Items []SaleItemInput `json:"items"`
}

type SaleItemInput struct {
	ProductID   string  `json:"productId"`
	Quantity    int     `json:"quantity"`
	PriceAtSale float64 `json:"priceAtSale"`
}

type SaleGateway interface {
	Create(ctx context.Context, input SaleInput) (*domain.Sale, error)
	// MyHistory lists the current user's purchases, newest first.
	MyHistory(ctx context.Context) ([]domain.Sale, error)
	// List returns all sales (admin only, enforced by the backend too).
	List(ctx context.Context) ([]domain.Sale, error)
	Get(ctx context.Context, id string) (*domain.Sale, error)
}

// ProductInput carries the writable fields of a catalog entry.
type ProductInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Code        string  `json:"code,omitempty"`
	Category    string  `json:"category,omitempty"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	ImgURL      string  `json:"imgUrl,omitempty"`
}

type ProductGateway interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, input ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id string, input ProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
}

// UserInput carries the writable fields of a user account. Password is
// forwarded verbatim; hashing is the backend's job.
type UserInput struct {
	Name     string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role,omitempty"`
}

type UserGateway interface {
	List(ctx context.Context) ([]domain.User, error)
	Create(ctx context.Context, input UserInput) (*domain.User, error)
	Update(ctx context.Context, id string, input UserInput) (*domain.User, error)
	Delete(ctx context.Context, id string) error
}

// PasswordResetGateway covers the recovery flow. The token travels by mail,
// backend to user; this client only relays it.
type PasswordResetGateway interface {
	Request(ctx context.Context, email string) error
	VerifyToken(ctx context.Context, token string) error
	Reset(ctx context.Context, token, newPassword string) error
}
