package users

import (
	"github.com/labstack/echo/v4"
)

// RegisterRoutes mounts the profile routes under /users behind requireAuth.
// The group is scoped to /users so unknown paths elsewhere still answer 404
// rather than 401.
func RegisterRoutes(e *echo.Echo, h *Handler, requireAuth echo.MiddlewareFunc) {
	g := e.Group("/users", requireAuth)
	g.GET("", h.List)
	g.GET("/me", h.Me)
	g.GET("/:userId", h.Get)
	g.PATCH("/me", h.UpdateProfile)
	g.PATCH("/me/avatar", h.UpdateAvatar)
}
