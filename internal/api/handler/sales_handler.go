package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type SalesHandler struct{}

func NewSalesHandler() *SalesHandler {
	return &SalesHandler{}
}

// History lists the current user's purchases, newest first as the backend
// orders them.
func (h *SalesHandler) History(c echo.Context) error {
	bundle, err := sessionBundle(c)
	if err != nil {
		return err
	}

	sales, err := bundle.Sales.MyHistory(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sales)
}

// List returns all sales. Admin-only at the route level; the backend
// enforces it again server-side.
func (h *SalesHandler) List(c echo.Context) error {
	bundle, err := sessionBundle(c)
	if err != nil {
		return err
	}

	sales, err := bundle.Sales.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sales)
}

func (h *SalesHandler) Get(c echo.Context) error {
	bundle, err := sessionBundle(c)
	if err != nil {
		return err
	}

	sale, err := bundle.Sales.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sale)
}
