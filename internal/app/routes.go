package app

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/keyxmakerx/mesto/internal/plugins/auth"
	"github.com/keyxmakerx/mesto/internal/plugins/users"
)

// healthTimeout bounds each backend ping made by /healthz.
const healthTimeout = 2 * time.Second

// Plugins carries the collaborators the plugins are built from. main.go
// fills it with the MariaDB repository; tests substitute their own.
type Plugins struct {
	Users  auth.UserRepository
	Hasher auth.PasswordHasher
	Tokens auth.TokenIssuer
}

// RegisterRoutes sets up all application routes. It registers public routes
// directly and delegates to each plugin's route registration function.
//
// This is the single place where all routes are aggregated.
func (a *App) RegisterRoutes(p Plugins) {
	e := a.Echo

	// --- Public Routes (no auth required) ---

	e.GET("/healthz", a.healthz)

	authService := auth.NewAuthService(p.Users, p.Hasher, p.Tokens)
	auth.RegisterRoutes(e, auth.NewHandler(authService), a.limiterFactory())

	// --- Authenticated Routes ---

	usersService := users.NewProfileService(p.Users)
	users.RegisterRoutes(e, users.NewHandler(usersService), auth.RequireAuth(authService))
}

// healthz pings every configured backend. Responds 503 naming the failed
// backend so orchestrators can restart the right container.
func (a *App) healthz(c echo.Context) error {
	checks := make(map[string]string)
	status := http.StatusOK

	for name, p := range a.pingers() {
		ctx, cancel := context.WithTimeout(c.Request().Context(), healthTimeout)
		err := p.Ping(ctx)
		cancel()

		if err != nil {
			slog.Warn("health check failed", slog.String("backend", name), slog.Any("error", err))
			checks[name] = "unavailable"
			status = http.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}

	state := "ok"
	if status != http.StatusOK {
		state = "degraded"
	}
	return c.JSON(status, map[string]any{
		"status": state,
		"checks": checks,
	})
}
