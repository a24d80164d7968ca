package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/NahuFed/storefront/internal/api/metrics"
	"github.com/NahuFed/storefront/internal/core/domain"
	"github.com/NahuFed/storefront/internal/core/ports"
)

type AuthHandler struct{}

func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	User *domain.User `json:"user"`
}

// Login authenticates the storefront session against the backend.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	bundle, err := sessionBundle(c)
	if err != nil {
		return err
	}

	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	res := bundle.Session.Login(c.Request().Context(), req.Email, req.Password)
	if !res.Success {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": res.Message})
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, userResponse{User: res.User})
}

// Me returns the current identity, fetching it from the backend only when
// no user is cached yet.
func (h *AuthHandler) Me(c echo.Context) error {
	bundle, err := sessionBundle(c)
	if err != nil {
		return err
	}

	res := bundle.Session.VerifyAuth(c.Request().Context())
	if !res.Success {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": res.Message})
	}
	return c.JSON(http.StatusOK, userResponse{User: res.User})
}

// Logout always clears the local session; the backend call inside is
// best-effort, so this cannot fail from the client's point of view.
func (h *AuthHandler) Logout(c echo.Context) error {
	bundle, err := sessionBundle(c)
	if err != nil {
		return err
	}

	bundle.Session.Logout(c.Request().Context())
	return c.NoContent(http.StatusNoContent)
}

type registerRequest struct {
	Username        string `json:"username" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// Register creates a new account. Local validation (required fields, email
// shape, password confirmation) short-circuits before any remote call.
func (h *AuthHandler) Register(c echo.Context) error {
	bundle, err := sessionBundle(c)
	if err != nil {
		return err
	}

	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := bundle.Users.Create(c.Request().Context(), ports.UserInput{
		Name:     req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, userResponse{User: user})
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	bundle, err := sessionBundle(c)
	if err != nil {
		return err
	}

	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := bundle.PasswordReset.Request(c.Request().Context(), req.Email); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *AuthHandler) VerifyResetToken(c echo.Context) error {
	bundle, err := sessionBundle(c)
	if err != nil {
		return err
	}

	if err := bundle.PasswordReset.VerifyToken(c.Request().Context(), c.Param("token")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "valid"})
}

type resetPasswordRequest struct {
	Token           string `json:"token" validate:"required"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

func (h *AuthHandler) ResetPassword(c echo.Context) error {
	bundle, err := sessionBundle(c)
	if err != nil {
		return err
	}

	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := bundle.PasswordReset.Reset(c.Request().Context(), req.Token, req.Password); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
