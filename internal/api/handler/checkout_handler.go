package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/NahuFed/storefront/internal/api/metrics"
	"github.com/NahuFed/storefront/internal/core/domain"
	"github.com/NahuFed/storefront/internal/core/ports"
)

type CheckoutHandler struct{}

func NewCheckoutHandler() *CheckoutHandler {
	return &CheckoutHandler{}
}

// Checkout turns the cart into a sale. The user snapshot is read at the
// point of use only; price-at-sale captures the line price as it stands.
// On backend failure the cart is left untouched and the user gets a
// dismissible error notification.
//
// @Summary      Create a sale from the cart
// @Tags         checkout
// @Produce      json
// @Success      201  {object}  domain.Sale
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /checkout [post]
func (h *CheckoutHandler) Checkout(c echo.Context) error {
	bundle, err := sessionBundle(c)
	if err != nil {
		return err
	}

	snap := bundle.Session.Snapshot()
	if !snap.IsAuthenticated {
		bundle.Notifications.Add("you must be logged in to make a purchase", domain.SeverityError, 5000)
		return domain.ErrNotAuthenticated
	}

	lines := bundle.Cart.Lines()
	if len(lines) == 0 {
		return domain.ErrCartEmpty
	}

	input := ports.SaleInput{Items: make([]ports.SaleItemInput, 0, len(lines))}
	for _, l := range lines {
		input.Items = append(input.Items, ports.SaleItemInput{
			ProductID:   l.ProductID,
			Quantity:    l.Quantity,
			PriceAtSale: l.Price,
		})
	}

	sale, err := bundle.Sales.Create(c.Request().Context(), input)
	if err != nil {
		metrics.CheckoutsTotal.WithLabelValues("failure").Inc()
		bundle.Notifications.Add(fmt.Sprintf("error: %s", checkoutMessage(err)), domain.SeverityError, 5000)
		return err
	}

	metrics.CheckoutsTotal.WithLabelValues("success").Inc()
	bundle.Notifications.Add("purchase completed successfully", domain.SeveritySuccess, 4000)
	bundle.Cart.ClearCart(nil)

	return c.JSON(http.StatusCreated, sale)
}

// checkoutMessage mirrors the session store's normalization: backend
// messages verbatim, anything else collapses to the connection-error
// class.
func checkoutMessage(err error) string {
	var re *domain.RemoteError
	if errors.As(err, &re) && re.Message != "" {
		return re.Message
	}
	return "could not process the purchase"
}
