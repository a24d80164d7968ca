package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/NahuFed/storefront/internal/session"
)

// SessionCookie is the name of the signed storefront session cookie. It
// identifies the server-side bundle only; the backend's own auth cookie
// never reaches the browser.
const SessionCookie = "storefront_session"

// BundleKey is the echo context key the session bundle hangs on.
const BundleKey = "storefront_bundle"

// Session resolves the storefront session cookie to its bundle, issuing a
// fresh session (and cookie) when the token is absent, invalid or evicted.
func Session(reg *session.Registry, ttl time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			var bundle *session.Bundle

			if ck, err := c.Cookie(SessionCookie); err == nil && ck.Value != "" {
				if resolved, err := reg.Resolve(ck.Value); err == nil {
					bundle = resolved
				}
			}

			if bundle == nil {
				token, fresh, err := reg.Issue()
				if err != nil {
					return echo.NewHTTPError(http.StatusInternalServerError, "could not start session")
				}
				bundle = fresh
				c.SetCookie(&http.Cookie{
					Name:     SessionCookie,
					Value:    token,
					Path:     "/",
					MaxAge:   int(ttl.Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			c.Set(BundleKey, bundle)
			return next(c)
		}
	}
}

// BundleFrom extracts the session bundle attached by Session.
func BundleFrom(c echo.Context) (*session.Bundle, bool) {
	b, ok := c.Get(BundleKey).(*session.Bundle)
	return b, ok
}
