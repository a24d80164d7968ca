package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/NahuFed/storefront/internal/api/metrics"
)

// LoginPath is where denied requests are redirected. Wrong-role and
// not-logged-in land on the same entry point; only the denial metric
// distinguishes them.
const LoginPath = "/login"

// Guard gates access based on the session store's current state. With no
// roles it admits any authenticated user; with roles it additionally
// requires the user's role to be in the set. While an authentication
// operation is in flight it returns a pending response instead of
// deciding.
func Guard(requiredRoles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			bundle, ok := BundleFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusInternalServerError, "session not attached")
			}

			snap := bundle.Session.Snapshot()
			if snap.IsLoading {
				return c.JSON(http.StatusAccepted, map[string]string{"status": "pending"})
			}
			if !snap.IsAuthenticated {
				metrics.GuardDenialsTotal.WithLabelValues("anonymous").Inc()
				return c.Redirect(http.StatusSeeOther, LoginPath)
			}
			if len(requiredRoles) > 0 && !snap.User.HasRole(requiredRoles...) {
				metrics.GuardDenialsTotal.WithLabelValues("role").Inc()
				return c.Redirect(http.StatusSeeOther, LoginPath)
			}
			return next(c)
		}
	}
}
