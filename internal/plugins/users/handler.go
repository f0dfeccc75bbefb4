package users

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/mesto/internal/apperror"
	"github.com/keyxmakerx/mesto/internal/plugins/auth"
	"github.com/keyxmakerx/mesto/internal/sanitize"
)

// updateProfileRequest is the body of PATCH /users/me.
type updateProfileRequest struct {
	Name  string `json:"name"`
	About string `json:"about"`
}

// updateAvatarRequest is the body of PATCH /users/me/avatar.
type updateAvatarRequest struct {
	Avatar string `json:"avatar"`
}

// Handler handles the /users routes. Every route sits behind
// auth.RequireAuth, so GetUserID is always populated.
type Handler struct {
	service ProfileService
}

// NewHandler creates a new users handler.
func NewHandler(service ProfileService) *Handler {
	return &Handler{service: service}
}

// List handles GET /users.
func (h *Handler) List(c echo.Context) error {
	users, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]any{"data": users})
}

// Me handles GET /users/me.
func (h *Handler) Me(c echo.Context) error {
	user, err := h.service.Get(c.Request().Context(), auth.GetUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Get handles GET /users/:userId.
func (h *Handler) Get(c echo.Context) error {
	user, err := h.service.Get(c.Request().Context(), c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile handles PATCH /users/me.
func (h *Handler) UpdateProfile(c echo.Context) error {
	var req updateProfileRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request body")
	}

	user, err := h.service.UpdateProfile(c.Request().Context(), auth.GetUserID(c), UpdateProfileInput{
		Name:  sanitize.PlainText(req.Name),
		About: sanitize.PlainText(req.About),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateAvatar handles PATCH /users/me/avatar.
func (h *Handler) UpdateAvatar(c echo.Context) error {
	var req updateAvatarRequest
	if err := c.Bind(&req); err != nil {
		return apperror.NewBadRequest("invalid request body")
	}

	user, err := h.service.UpdateAvatar(c.Request().Context(), auth.GetUserID(c), req.Avatar)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
