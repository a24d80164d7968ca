package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/NahuFed/storefront/internal/core/domain"
	"github.com/NahuFed/storefront/internal/core/ports"
)

// UserHandler backs the admin user screens. Role values are forwarded as
// given; the backend is the authority on what an admin may assign.
type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

func (h *UserHandler) List(c echo.Context) error {
	bundle, err := sessionBundle(c)
	if err != nil {
		return err
	}

	users, err := bundle.Users.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

type userRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"omitempty,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin superadmin"`
}

func (r userRequest) toInput() ports.UserInput {
	return ports.UserInput{
		Name:     r.Username,
		Email:    r.Email,
		Password: r.Password,
		Role:     r.Role,
	}
}

func (h *UserHandler) Create(c echo.Context) error {
	bundle, err := sessionBundle(c)
	if err != nil {
		return err
	}

	var req userRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := bundle.Users.Create(c.Request().Context(), req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) Update(c echo.Context) error {
	bundle, err := sessionBundle(c)
	if err != nil {
		return err
	}

	var req userRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := bundle.Users.Update(c.Request().Context(), c.Param("id"), req.toInput())
	if err != nil {
		return err
	}

	// Editing your own profile keeps the session store in sync.
	if snap := bundle.Session.Snapshot(); snap.User != nil && snap.User.ID == user.ID {
		bundle.Session.UpdateUser(domain.UserPatch{Name: &user.Name, Email: &user.Email, Role: &user.Role})
	}

	return c.JSON(http.StatusOK, user)
}

func (h *UserHandler) Delete(c echo.Context) error {
	bundle, err := sessionBundle(c)
	if err != nil {
		return err
	}

	if err := bundle.Users.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
