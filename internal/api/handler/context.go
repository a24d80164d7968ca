package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	apimw "github.com/NahuFed/storefront/internal/api/middleware"
	"github.com/NahuFed/storefront/internal/session"
)

// sessionBundle extracts the storefront session attached by the Session
// middleware. Its absence means the route was registered outside the
// session chain, which is a wiring bug, not a client error.
func sessionBundle(c echo.Context) (*session.Bundle, error) {
	b, ok := apimw.BundleFrom(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "session not attached")
	}
	return b, nil
}

// notifier adapts a bundle's notification store to the store.NotifyFunc
// shape the cart expects, using the default display duration.
func notifier(b *session.Bundle) func(message, severity string) {
	return func(message, severity string) {
		b.Notifications.Add(message, severity, 0)
	}
}
