package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/NahuFed/storefront/internal/api/metrics"
	"github.com/NahuFed/storefront/internal/core/domain"
	"github.com/NahuFed/storefront/internal/session"
)

type CartHandler struct{}

func NewCartHandler() *CartHandler {
	return &CartHandler{}
}

// cartView is the cart as presented to the UI: lines, derived total and
// the badge count.
type cartView struct {
	Items []domain.CartLine `json:"items"`
	Total float64           `json:"total"`
	Count int               `json:"count"`
}

func viewOf(b *session.Bundle) cartView {
	return cartView{
		Items: b.Cart.Lines(),
		Total: b.Cart.Total(),
		Count: b.Cart.ItemsCount(),
	}
}

func (h *CartHandler) Get(c echo.Context) error {
	bundle, err := sessionBundle(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, viewOf(bundle))
}

type addItemRequest struct {
	ID     string  `json:"id" validate:"required"`
	Name   string  `json:"name" validate:"required"`
	Price  float64 `json:"price" validate:"gte=0"`
	ImgURL string  `json:"imgUrl"`
}

// AddItem puts one unit of the product in the cart, merging with an
// existing line for the same product.
func (h *CartHandler) AddItem(c echo.Context) error {
	bundle, err := sessionBundle(c)
	if err != nil {
		return err
	}

	var req addItemRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	bundle.Cart.AddItem(domain.Product{
		ID:     req.ID,
		Name:   req.Name,
		Price:  req.Price,
		ImgURL: req.ImgURL,
	}, notifier(bundle))
	metrics.CartMutationsTotal.WithLabelValues("add").Inc()

	return c.JSON(http.StatusOK, viewOf(bundle))
}

type updateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

// UpdateQuantity sets the line's quantity. The store's contract requires a
// validated integer, so binding rejects non-numeric input here; zero and
// below remove the line.
func (h *CartHandler) UpdateQuantity(c echo.Context) error {
	bundle, err := sessionBundle(c)
	if err != nil {
		return err
	}

	var req updateQuantityRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "quantity must be a number")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	bundle.Cart.UpdateQuantity(c.Param("productId"), *req.Quantity)
	metrics.CartMutationsTotal.WithLabelValues("update_quantity").Inc()

	return c.JSON(http.StatusOK, viewOf(bundle))
}

func (h *CartHandler) RemoveItem(c echo.Context) error {
	bundle, err := sessionBundle(c)
	if err != nil {
		return err
	}

	bundle.Cart.RemoveItem(c.Param("productId"), notifier(bundle))
	metrics.CartMutationsTotal.WithLabelValues("remove").Inc()

	return c.JSON(http.StatusOK, viewOf(bundle))
}

func (h *CartHandler) Clear(c echo.Context) error {
	bundle, err := sessionBundle(c)
	if err != nil {
		return err
	}

	bundle.Cart.ClearCart(notifier(bundle))
	metrics.CartMutationsTotal.WithLabelValues("clear").Inc()

	return c.JSON(http.StatusOK, viewOf(bundle))
}
