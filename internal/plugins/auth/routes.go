package auth

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/mesto/internal/middleware"
)

// RegisterRoutes sets up all auth-related routes on the given Echo instance.
// Auth routes are public (no token required) -- RequireAuth is exported
// separately for other plugins to use on their route groups.
//
// POST endpoints are rate-limited per IP to slow down credential stuffing:
// 10 attempts per minute for signin, 5 for signup.
func RegisterRoutes(e *echo.Echo, h *Handler, newLimiter middleware.LimiterFactory) {
	e.POST("/signin", h.Login, middleware.RateLimit(newLimiter("signin", 10, time.Minute)))
	e.POST("/signup", h.Register, middleware.RateLimit(newLimiter("signup", 5, time.Minute)))
	e.GET("/signout", h.Logout)
}
