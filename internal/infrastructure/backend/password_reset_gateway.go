package backend

import (
	"context"
	"net/http"
)

// PasswordResetGateway relays the recovery flow. The reset token reaches
// the user by mail; this client only forwards it back to the backend.
type PasswordResetGateway struct {
	c *Client
}

func NewPasswordResetGateway(c *Client) *PasswordResetGateway {
	return &PasswordResetGateway{c: c}
}

func (g *PasswordResetGateway) Request(ctx context.Context, email string) error {
	req := map[string]string{"email": email}
	return g.c.do(ctx, "password_reset.request", http.MethodPost, "/api/auth/forgot-password", req, nil)
}

func (g *PasswordResetGateway) VerifyToken(ctx context.Context, token string) error {
	return g.c.do(ctx, "password_reset.verify", http.MethodGet, "/api/auth/verify-reset-token/"+token, nil, nil)
}

func (g *PasswordResetGateway) Reset(ctx context.Context, token, newPassword string) error {
	req := map[string]string{"token": token, "newPassword": newPassword}
	return g.c.do(ctx, "password_reset.reset", http.MethodPost, "/api/auth/reset-password", req, nil)
}
