package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// NotificationHandler exposes the pending notifications to the presenting
// UI, which schedules each removal after its durationMs.
type NotificationHandler struct{}

func NewNotificationHandler() *NotificationHandler {
	return &NotificationHandler{}
}

func (h *NotificationHandler) List(c echo.Context) error {
	bundle, err := sessionBundle(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bundle.Notifications.List())
}

// Remove deletes by id. Removing an id that already expired is a no-op,
// so this always succeeds.
func (h *NotificationHandler) Remove(c echo.Context) error {
	bundle, err := sessionBundle(c)
	if err != nil {
		return err
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid notification id")
	}

	bundle.Notifications.Remove(id)
	return c.NoContent(http.StatusNoContent)
}

func (h *NotificationHandler) Clear(c echo.Context) error {
	bundle, err := sessionBundle(c)
	if err != nil {
		return err
	}

	bundle.Notifications.ClearAll()
	return c.NoContent(http.StatusNoContent)
}
