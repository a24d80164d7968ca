package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/NahuFed/storefront/internal/api/handler"
	"github.com/NahuFed/storefront/internal/api/middleware"
	"github.com/NahuFed/storefront/internal/core/domain"
	"github.com/NahuFed/storefront/internal/session"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(reg *session.Registry, sessionTTL time.Duration, rdb *redis.Client, backendURL string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("storefront"))

	// --- Health probes and metrics (no session required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(rdb, backendURL)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Session-scoped surface ---
	s := e.Group("", middleware.Session(reg, sessionTTL))

	authHandler := handler.NewAuthHandler()
	s.POST("/auth/login", authHandler.Login)
	s.POST("/auth/logout", authHandler.Logout)
	s.GET("/auth/me", authHandler.Me)
	s.POST("/auth/register", authHandler.Register)
	s.POST("/auth/password-reset/request", authHandler.ForgotPassword)
	s.GET("/auth/password-reset/verify/:token", authHandler.VerifyResetToken)
	s.POST("/auth/password-reset/confirm", authHandler.ResetPassword)

	productHandler := handler.NewProductHandler()
	s.GET("/products", productHandler.List)
	s.GET("/products/:id", productHandler.Get)

	cartHandler := handler.NewCartHandler()
	s.GET("/cart", cartHandler.Get)
	s.POST("/cart/items", cartHandler.AddItem)
	s.PUT("/cart/items/:productId", cartHandler.UpdateQuantity)
	s.DELETE("/cart/items/:productId", cartHandler.RemoveItem)
	s.DELETE("/cart", cartHandler.Clear)

	notificationHandler := handler.NewNotificationHandler()
	s.GET("/notifications", notificationHandler.List)
	s.DELETE("/notifications/:id", notificationHandler.Remove)
	s.DELETE("/notifications", notificationHandler.Clear)

	// Authenticated storefront operations.
	authed := s.Group("", middleware.Guard())
	checkoutHandler := handler.NewCheckoutHandler()
	salesHandler := handler.NewSalesHandler()
	authed.POST("/checkout", checkoutHandler.Checkout)
	authed.GET("/sales/history", salesHandler.History)

	// Admin screens.
	admin := s.Group("", middleware.Guard(domain.RoleAdmin, domain.RoleSuperAdmin))
	admin.POST("/products", productHandler.Create)
	admin.PUT("/products/:id", productHandler.Update)
	admin.DELETE("/products/:id", productHandler.Delete)

	userHandler := handler.NewUserHandler()
	admin.GET("/users", userHandler.List)
	admin.POST("/users", userHandler.Create)
	admin.PUT("/users/:id", userHandler.Update)
	admin.DELETE("/users/:id", userHandler.Delete)

	admin.GET("/sales", salesHandler.List)
	admin.GET("/sales/:id", salesHandler.Get)

	return e
}
