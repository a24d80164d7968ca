package handler

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	apimw "github.com/NahuFed/storefront/internal/api/middleware"
	"github.com/NahuFed/storefront/internal/core/domain"
	"github.com/NahuFed/storefront/internal/core/ports"
	"github.com/NahuFed/storefront/internal/core/store"
	"github.com/NahuFed/storefront/internal/session"
)

type authGatewayStub struct {
	user     *domain.User
	loginErr error
	meErr    error
}

func (s *authGatewayStub) Login(_ context.Context, _, _ string) (*domain.User, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return s.user, nil
}

func (s *authGatewayStub) Me(_ context.Context) (*domain.User, error) {
	if s.meErr != nil {
		return nil, s.meErr
	}
	return s.user, nil
}

func (s *authGatewayStub) Logout(_ context.Context) error { return nil }

type saleGatewayStub struct {
	created *ports.SaleInput
	sale    *domain.Sale
	err     error
}

func (s *saleGatewayStub) Create(_ context.Context, input ports.SaleInput) (*domain.Sale, error) {
	s.created = &input
	if s.err != nil {
		return nil, s.err
	}
	return s.sale, nil
}

func (s *saleGatewayStub) MyHistory(_ context.Context) ([]domain.Sale, error) { return nil, nil }
func (s *saleGatewayStub) List(_ context.Context) ([]domain.Sale, error)      { return nil, nil }
func (s *saleGatewayStub) Get(_ context.Context, _ string) (*domain.Sale, error) {
	return nil, domain.ErrSaleNotFound
}

func newTestBundle(auth ports.AuthGateway, sales ports.SaleGateway) *session.Bundle {
	return &session.Bundle{
		ID:            "sess-test",
		Session:       store.NewSessionStore(auth, nil, "sess-test", zerolog.Nop()),
		Cart:          store.NewCartStore(),
		Notifications: store.NewNotificationStore(),
		Sales:         sales,
	}
}

// newHandlerContext builds an echo context with the validator installed and
// the given bundle attached, mirroring what the session middleware does.
func newHandlerContext(t *testing.T, method, target, body string, bundle *session.Bundle) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(apimw.BundleKey, bundle)
	return c, rec
}
