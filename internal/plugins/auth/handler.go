package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/mesto/internal/apperror"
	"github.com/keyxmakerx/mesto/internal/sanitize"
)

// msgSignedOut is returned by GET /signout.
const msgSignedOut = "signed out"

// Handler handles HTTP requests for authentication (signup, signin, signout).
// Handlers are thin: they bind the request, call the service, and render the
// response. No business logic lives here.
type Handler struct {
	service AuthService
}

// NewHandler creates a new auth handler with the given service.
func NewHandler(service AuthService) *Handler {
	return &Handler{service: service}
}

// Register processes POST /signup and responds 201 with the public profile.
func (h *Handler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request body")
	}

	if req.Email == "" {
		return apperror.NewValidation("email is required")
	}
	if req.Password == "" {
		return apperror.NewValidation("password is required")
	}

	input := RegisterInput{
		Name:     sanitize.PlainText(req.Name),
		About:    sanitize.PlainText(req.About),
		Avatar:   req.Avatar,
		Email:    req.Email,
		Password: req.Password,
	}

	user, err := h.service.Register(c.Request().Context(), input)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, ProfileOf(user))
}

// Login processes POST /signin and responds with a session token.
func (h *Handler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request body")
	}

	if req.Email == "" || req.Password == "" {
		return apperror.NewValidation("email and password are required")
	}

	token, err := h.service.Login(c.Request().Context(), LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, LoginResponse{
		Message: MsgLoginSuccess,
		Token:   token,
	})
}

// Logout handles GET /signout. Tokens are stateless, so there is nothing to
// revoke; the client discards its token.
func (h *Handler) Logout(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"message": msgSignedOut})
}
